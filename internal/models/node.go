package models

import "time"

const (
	TypeFolder       = "folder"
	TypeDocument     = "document"
	TypeSpreadsheet  = "spreadsheet"
	TypePresentation = "presentation"
	TypePDF          = "pdf"
	TypeImage        = "image"
	TypeFile         = "file"
)

type Node struct {
	ID         int64     `json:"id"`
	ParentID   *int64    `json:"parent_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	Path       string    `json:"path"`
	MimeType   string    `json:"mime_type,omitempty"`
	Owner      string    `json:"owner"`
	Starred    bool      `json:"starred"`
	Deleted    bool      `json:"deleted"`
	Shared     bool      `json:"shared"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

func (n *Node) IsFolder() bool {
	return n.Type == TypeFolder
}

// SameParent reports whether both parent references point at the same folder (nil meaning root).
func SameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
