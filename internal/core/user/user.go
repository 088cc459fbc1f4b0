package user

import "bloghub/internal/core/post"

// Identity کاربر جاری که توسط سرویس احراز هویت (ماک) ساخته می‌شود
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// AuthorSnapshot copies the fields a post keeps about its author.
func (u Identity) AuthorSnapshot() post.Author {
	return post.Author{ID: u.ID, Name: u.Name, Email: u.Email}
}
