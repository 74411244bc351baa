package model

import "time"

// Post is a blog article managed through the admin CMS.  Title, excerpt
// and body are bilingual; the slug is shared across languages.
type Post struct {
	ID        uint64        `json:"id"`
	Slug      string        `json:"slug"`
	Title     LocalizedText `json:"title"`
	Excerpt   LocalizedText `json:"excerpt"`
	Body      LocalizedText `json:"body"`
	AuthorID  uint64        `json:"author_id"`
	ImagePath string        `json:"image_path,omitempty"`
	Published bool          `json:"published"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Author is a blog author shown on post pages.
type Author struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Title     string `json:"title,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
