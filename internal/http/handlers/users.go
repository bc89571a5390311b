package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"dochub/internal/config"
	"dochub/internal/domain/role"
	"dochub/internal/domain/user"
	"dochub/internal/security"
	"dochub/internal/utils"
	"github.com/gin-gonic/gin"
)

type UsersStore interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	GetByLogin(ctx context.Context, login string) (user.User, error)
	List(ctx context.Context, limit, offset int) ([]user.User, int, error)
	Update(ctx context.Context, id int64, firstname, lastname, email, passwordHash *string) (user.User, error)
	Delete(ctx context.Context, id int64) error
}

type TokenIssuer interface {
	GenerateAccessToken(userID, roleID int64) (string, error)
}

type UsersHandler struct {
	store UsersStore
	jwt   TokenIssuer
}

func NewUsersHandler(store UsersStore, jwt TokenIssuer) *UsersHandler {
	return &UsersHandler{store: store, jwt: jwt}
}

func mapUserConflict(ctx *gin.Context, err error) bool {
	switch {
	case errors.Is(err, user.ErrUsernameTaken):
		RespondValidation(ctx, []FieldError{{Field: "username", Message: "username already exist"}})
	case errors.Is(err, user.ErrEmailTaken):
		RespondValidation(ctx, []FieldError{{Field: "email", Message: "email already exist"}})
	default:
		return false
	}
	return true
}

func (h *UsersHandler) SignUp(ctx *gin.Context) {
	var req user.SignUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if err := security.ValidatePassword(req.Password); err != nil {
		RespondValidation(ctx, []FieldError{{Field: "password", Message: err.Error()}})
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	// every signup lands in the regular role
	created, err := h.store.Create(cctx, user.User{
		Username:     req.Username,
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       role.RegularID,
	})

	if err != nil {
		if !mapUserConflict(ctx, err) {
			RespondInternal(ctx)
		}
		return
	}

	token, err := h.jwt.GenerateAccessToken(created.ID, created.RoleID)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Your account has been created successfully",
		"user":    created,
		"token":   token,
	})
}

func (h *UsersHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.store.GetByLogin(cctx, req.Username)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotPermitted(ctx, "Please enter a valid username or password")
			return
		}
		RespondInternal(ctx)
		return
	}

	if security.CheckPassword(u.PasswordHash, req.Password) != nil {
		RespondNotPermitted(ctx, "Please enter a valid username or password")
		return
	}

	token, err := h.jwt.GenerateAccessToken(u.ID, u.RoleID)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "You have successfully logged in",
		"user":    u,
		"token":   token,
	})
}

func (h *UsersHandler) GetUser(ctx *gin.Context) {
	if _, ok := requester(ctx); !ok {
		return
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil {
		RespondNotFound(ctx, "This user does not exist")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.store.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "This user does not exist")
			return
		}
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "You have successfully retrieved this user",
		"user":    u,
	})
}

func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	r, ok := requester(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil {
		RespondNotFound(ctx, "This user does not exist")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	// existence first, so probing an unknown id answers 404 not 401
	if _, err := h.store.GetByID(cctx, id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "This user does not exist")
			return
		}
		RespondInternal(ctx)
		return
	}

	// only the account holder or an admin may change a profile
	if r.UserID != id && !r.IsAdmin() {
		RespondNotPermitted(ctx, "You are not permitted to modify this user")
		return
	}

	var req user.UpdateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// password changes re-derive the hash before anything is persisted
	var hash *string

	if req.Password != nil {
		if err := security.ValidatePassword(*req.Password); err != nil {
			RespondValidation(ctx, []FieldError{{Field: "password", Message: err.Error()}})
			return
		}

		hashed, err := security.HashPassword(*req.Password)

		if err != nil {
			RespondInternal(ctx)
			return
		}
		hash = &hashed
	}

	updated, err := h.store.Update(cctx, id, req.Firstname, req.Lastname, req.Email, hash)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "This user does not exist")
			return
		}
		if !mapUserConflict(ctx, err) {
			RespondInternal(ctx)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":     "Your profile has been updated",
		"updatedUser": updated,
	})
}

func (h *UsersHandler) DeleteUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil {
		RespondNotFound(ctx, "This user does not exist")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err = h.store.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "This user does not exist")
			return
		}
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "This user has been deleted successfully",
	})
}

func (h *UsersHandler) ListUsers(ctx *gin.Context) {
	page, err := utils.ParsePagination(ctx.Query("limit"), ctx.Query("offset"))

	if err != nil {
		RespondBadRequest(ctx, err.Error())
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rows, total, lerr := h.store.List(cctx, page.Limit, page.Offset)

	if lerr != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "You have successfully retrieved all users",
		"users": gin.H{
			"rows":  rows,
			"count": total,
		},
		"pagination": utils.NewPageInfo(total, page),
	})
}
