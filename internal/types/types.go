package types

import "time"

// Category is a display category derived from a media file's MIME type.
// It drives icon selection and preview strategy in the presentation layer.
type Category string

const (
	CategoryImage   Category = "image"
	CategoryVideo   Category = "video"
	CategoryAudio   Category = "audio"
	CategoryPDF     Category = "pdf"
	CategoryDoc     Category = "doc"
	CategorySheet   Category = "sheet"
	CategoryArchive Category = "archive"
	CategoryFile    Category = "file"
)

// Media is a file record as returned by the media service. Records are owned
// by the server: the client never mutates one, it only reflects server state
// after the next list fetch.
type Media struct {
	ID        string    `json:"id" validate:"required"`
	Filename  string    `json:"filename" validate:"required"`
	MimeType  string    `json:"mimeType" validate:"required"`
	Size      int64     `json:"size" validate:"min=0"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
}
