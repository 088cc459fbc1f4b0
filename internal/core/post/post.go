package post

import (
	"fmt"
	"time"
)

// Status وضعیت بررسی یک پست
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the three moderation states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown post status %q", raw)
	}
	return s, nil
}

// Author is a copy of the submitter taken when the post was created.
// It is never refreshed from the user's current profile.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Author    Author    `json:"author"`
	Status    Status    `json:"status"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Draft holds the caller supplied fields of a new post. The store fills in
// ID, CreatedAt and UpdatedAt.
type Draft struct {
	Title   string
	Content string
	Excerpt string
	Author  Author
	Status  Status
	Likes   int
}
