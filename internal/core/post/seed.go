package post

import "time"

// SeedPosts returns the mock posts the demo starts with.
func SeedPosts() []Post {
	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return []Post{
		{
			ID:        "1",
			Title:     "Getting Started with React",
			Content:   "React is a powerful JavaScript library for building user interfaces. In this comprehensive guide, we'll explore the fundamentals of React development...",
			Excerpt:   "Learn the basics of React development and start building modern web applications.",
			Author:    Author{ID: "2", Name: "John Doe", Email: "john@example.com"},
			Status:    StatusApproved,
			Likes:     42,
			CreatedAt: day("2024-01-15"),
			UpdatedAt: day("2024-01-15"),
		},
		{
			ID:        "2",
			Title:     "Advanced TypeScript Patterns",
			Content:   "TypeScript has evolved significantly over the years, introducing powerful patterns that can help you write more maintainable and type-safe code...",
			Excerpt:   "Explore advanced TypeScript patterns and techniques for better code quality.",
			Author:    Author{ID: "3", Name: "Jane Smith", Email: "jane@example.com"},
			Status:    StatusApproved,
			Likes:     38,
			CreatedAt: day("2024-01-20"),
			UpdatedAt: day("2024-01-20"),
		},
		{
			ID:        "3",
			Title:     "Building Scalable APIs",
			Content:   "When building APIs that need to scale, there are several important considerations to keep in mind...",
			Excerpt:   "Best practices for creating APIs that can handle growing user bases.",
			Author:    Author{ID: "4", Name: "Mike Johnson", Email: "mike@example.com"},
			Status:    StatusApproved,
			Likes:     56,
			CreatedAt: day("2024-01-25"),
			UpdatedAt: day("2024-01-25"),
		},
	}
}
