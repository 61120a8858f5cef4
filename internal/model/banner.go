package model

import "time"

// Banner is a home page slide, presented by Order ascending.
type Banner struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url"`
	IsActive  bool      `json:"is_active"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BannerRequest is the create/update payload of the banner editor.
type BannerRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Subtitle string `json:"subtitle" binding:"max=500"`
	ImageURL string `json:"imageUrl" binding:"required,max=500"`
	LinkURL  string `json:"linkUrl" binding:"max=500"`
	IsActive *bool  `json:"isActive"`
	Order    int    `json:"order" binding:"gte=0"`
}
