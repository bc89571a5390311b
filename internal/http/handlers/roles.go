package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dochub/internal/config"
	"dochub/internal/domain/role"
	"github.com/gin-gonic/gin"
)

type RolesStore interface {
	Create(ctx context.Context, title string) (role.Role, error)
	GetByID(ctx context.Context, id int64) (role.Role, error)
	List(ctx context.Context) ([]role.Role, error)
	Update(ctx context.Context, id int64, title string) (role.Role, error)
	Delete(ctx context.Context, id int64) error
}

// RolesHandler is admin-only; the router mounts it behind RequireAdmin.
type RolesHandler struct {
	store RolesStore
}

func NewRolesHandler(store RolesStore) *RolesHandler {
	return &RolesHandler{store: store}
}

func roleID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	return id, err == nil
}

// bindRoleTitle validates the title payload shared by create and
// update. Empty titles answer with the errorArray contract.
func bindRoleTitle(ctx *gin.Context) (string, bool) {
	var req role.CreateRoleRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondValidation(ctx, []FieldError{{Field: "title", Message: "Invalid request body"}})
		return "", false
	}

	title := strings.TrimSpace(req.Title)

	if title == "" {
		RespondValidation(ctx, []FieldError{
			{Field: "title", Message: "Input a valid title"},
			{Field: "title", Message: "This field cannot be empty"},
		})
		return "", false
	}

	return title, true
}

func (h *RolesHandler) CreateRole(ctx *gin.Context) {
	title, ok := bindRoleTitle(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	created, err := h.store.Create(cctx, title)

	if err != nil {
		if errors.Is(err, role.ErrTitleTaken) {
			RespondValidation(ctx, []FieldError{{Field: "title", Message: "role already exist"}})
			return
		}
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "This role has been created",
		"role":    created,
	})
}

func (h *RolesHandler) GetRole(ctx *gin.Context) {
	id, ok := roleID(ctx)
	if !ok {
		RespondNotFound(ctx, "This role does not exist")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	found, err := h.store.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, role.ErrNotFound) {
			RespondNotFound(ctx, "This role does not exist")
			return
		}
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "This role has been retrieved successfully",
		"role":    found,
	})
}

func (h *RolesHandler) ListRoles(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	roles, err := h.store.List(cctx)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "You have successfully retrived all roles",
		"roles":   roles,
	})
}

func (h *RolesHandler) UpdateRole(ctx *gin.Context) {
	id, ok := roleID(ctx)
	if !ok {
		RespondNotFound(ctx, "This role does not exist")
		return
	}

	// system roles stay frozen, even for admins
	if role.IsSystem(id) {
		RespondForbidden(ctx, "You are not permitted to modify this role")
		return
	}

	title, ok := bindRoleTitle(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	updated, err := h.store.Update(cctx, id, title)

	if err != nil {
		switch {
		case errors.Is(err, role.ErrNotFound):
			RespondNotFound(ctx, "This role does not exist")
		case errors.Is(err, role.ErrTitleTaken):
			RespondValidation(ctx, []FieldError{{Field: "title", Message: "role already exist"}})
		default:
			RespondInternal(ctx)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":     "This role has been updated",
		"updatedRole": updated,
	})
}

func (h *RolesHandler) DeleteRole(ctx *gin.Context) {
	id, ok := roleID(ctx)
	if !ok {
		RespondNotFound(ctx, "This role does not exist")
		return
	}

	if role.IsSystem(id) {
		RespondForbidden(ctx, "You are not permitted to modify this role")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.store.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, role.ErrNotFound) {
			RespondNotFound(ctx, "This role does not exist")
			return
		}
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "This role has been deleted",
	})
}
