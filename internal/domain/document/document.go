package document

import (
	"errors"
	"time"
)

// Access levels a document can carry.
const (
	AccessPublic  = "public"
	AccessPrivate = "private"
	AccessRole    = "role"
)

type Document struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Access    string    `json:"access"`
	OwnerID   int64     `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("document not found")

func ValidAccess(access string) bool {
	switch access {
	case AccessPublic, AccessPrivate, AccessRole:
		return true
	}
	return false
}

type CreateDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Access  string `json:"access"`
}

// Partial update payload; nil fields stay unchanged.
type UpdateDocumentRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Access  *string `json:"access"`
}

// with pointers if optional, it will be nil
type ListFilter struct {
	OwnerID *int64   // restrict to one owner's documents
	Terms   []string // case-insensitive substring match on title OR content
	SortAsc bool     // createdAt ascending; default is descending
	Limit   int      // <= 0 means no limit
	Offset  int
}
