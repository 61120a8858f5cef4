package model

import "time"

// Blog is a blog post. Posts are published on creation and deleted for real.
type Blog struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Summary     string     `json:"summary"`
	Author      string     `json:"author"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"image_url"`
	ReadTime    string     `json:"read_time"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BlogRequest is the create/update payload of the blog editor.
type BlogRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Content  string `json:"content" binding:"required"`
	Summary  string `json:"summary" binding:"max=1000"`
	Author   string `json:"author" binding:"max=100"`
	Category string `json:"category" binding:"max=100"`
	ImageURL string `json:"imageUrl" binding:"max=500"`
	ReadTime string `json:"readTime" binding:"max=50"`
}
