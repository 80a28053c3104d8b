package models

// Document represents an uploaded supporting document as listed by the
// backend. IDs are server-assigned UUIDs.
type Document struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       int64  `json:"size"`
	UploadDate string `json:"uploadDate"`
	URL        string `json:"url"`
}
