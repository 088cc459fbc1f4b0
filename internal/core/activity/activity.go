package activity

import (
	"time"

	"bloghub/internal/core/post"
)

// Kind نوع رویداد فعالیت
type Kind string

const (
	KindSubmitted Kind = "post.submitted"
	KindApproved  Kind = "post.approved"
	KindRejected  Kind = "post.rejected"
	KindLiked     Kind = "post.liked"
)

// Event is one change made to the post collection through the services.
// PostID is empty for submissions since the store does not report new ids.
type Event struct {
	Kind     Kind        `json:"kind"`
	PostID   string      `json:"postId,omitempty"`
	Title    string      `json:"title"`
	AuthorID string      `json:"authorId"`
	Status   post.Status `json:"status"`
	Likes    int         `json:"likes"`
	At       time.Time   `json:"at"`
}

// FromPost builds an event describing p after the change.
func FromPost(kind Kind, p post.Post, at time.Time) Event {
	return Event{
		Kind:     kind,
		PostID:   p.ID,
		Title:    p.Title,
		AuthorID: p.Author.ID,
		Status:   p.Status,
		Likes:    p.Likes,
		At:       at,
	}
}

// KindForStatus maps a moderation outcome to its event kind.
func KindForStatus(s post.Status) Kind {
	if s == post.StatusRejected {
		return KindRejected
	}
	return KindApproved
}
