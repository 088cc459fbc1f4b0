package post

import (
	"errors"
	"time"

	"bloghub/internal/core/post"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrPostNotPublished = errors.New("post is not published")
	ErrInvalidPost      = errors.New("title and content are required")
	ErrInvalidStatus    = errors.New("status must be approved or rejected")
)

// PostRepository پورت برای نگهداری و خواندن پست‌ها
//
// Mutations on an unknown id are silent no-ops. Every method returns
// copies; callers never hold a reference into the collection.
type PostRepository interface {
	Create(draft post.Draft)
	SetStatus(id string, status post.Status)
	Like(id string)
	FindByID(id string) (post.Post, bool)
	ListApproved() []post.Post
	ListTrending(limit int) []post.Post
	ListByAuthor(authorID string) []post.Post
	ListPending() []post.Post
	Version() uint64
}

// DTOها برای UseCase
type PostDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Author    AuthorDTO `json:"author"`
	Status    string    `json:"status"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AuthorDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthorStatsDTO struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

type DashboardStatsDTO struct {
	Pending    int `json:"pending"`
	Published  int `json:"published"`
	TotalLikes int `json:"totalLikes"`
}

// ToDTO converts a stored post into its transport shape.
func ToDTO(p post.Post) *PostDTO {
	return &PostDTO{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Excerpt: p.Excerpt,
		Author: AuthorDTO{
			ID:    p.Author.ID,
			Name:  p.Author.Name,
			Email: p.Author.Email,
		},
		Status:    string(p.Status),
		Likes:     p.Likes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToDTOs converts a projection, keeping its order.
func ToDTOs(posts []post.Post) []*PostDTO {
	out := make([]*PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToDTO(p))
	}
	return out
}

// SubmitPostInput فیلدهای فرم ارسال پست
type SubmitPostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
