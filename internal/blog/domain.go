package blog

import "time"

// Blog represents a published or draft content record. The slug is
// allocated once at creation and immutable afterwards.
type Blog struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         string    `json:"content"`
	Excerpt         string    `json:"excerpt,omitempty"`
	CoverImage      string    `json:"coverImage,omitempty"`
	Category        string    `json:"category,omitempty"`
	Tags            []string  `json:"tags"`
	MetaDescription string    `json:"metaDescription,omitempty"`
	Published       bool      `json:"published"`
	Featured        bool      `json:"featured"`
	ReadingTime     int       `json:"readingTime"`
	AuthorID        string    `json:"authorId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ListFilter narrows blog listings.
type ListFilter struct {
	Category      string
	Tag           string
	Featured      *bool
	PublishedOnly bool
	Page          int
	Limit         int
}
