package role

import (
	"errors"
	"time"
)

// Reserved role ids seeded at startup. They can never be updated or deleted.
const (
	AdminID   int64 = 1
	RegularID int64 = 2
)

type Role struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	ErrNotFound   = errors.New("role not found")
	ErrTitleTaken = errors.New("role title already exists")
)

func IsSystem(id int64) bool {
	return id == AdminID || id == RegularID
}

type CreateRoleRequest struct {
	Title string `json:"title"`
}

type UpdateRoleRequest struct {
	Title string `json:"title"`
}
