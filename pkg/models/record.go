package models

// Record is anything the API identifies by an `_id` field.
type Record interface {
	GetID() string
}

// Update carries the identifier of the record being changed alongside the new data.
type Update[T any] struct {
	ID   string `json:"-"`
	Data T      `json:"-"`
}

// Attachment is a local file sent as multipart form data with a create or update.
type Attachment struct {
	// Field is the form field name the API expects (brandLogo, avatar, image)
	Field string
	// Path is the file on disk
	Path string
}
