package models

// Blog is an article published on the platform
type Blog struct {
	ID        string `json:"_id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Content   string `json:"content" yaml:"content"`
	Category  string `json:"category" yaml:"category"`
	Author    string `json:"author,omitempty" yaml:"author,omitempty"`
	Image     string `json:"image,omitempty" yaml:"image,omitempty"`
	CreatedAt string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

func (b Blog) GetID() string { return b.ID }

// BlogInput is the body of a blog upload or update
type BlogInput struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required"`
	Author   string `json:"author,omitempty"`

	Image *Attachment `json:"-"`
}
