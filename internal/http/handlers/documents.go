package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dochub/internal/config"
	"dochub/internal/domain/document"
	"dochub/internal/domain/user"
	"dochub/internal/http/middlewares"
	"dochub/internal/policy"
	"dochub/internal/utils"
	"github.com/gin-gonic/gin"
)

type DocumentsStore interface {
	Create(ctx context.Context, ownerID int64, req document.CreateDocumentRequest) (document.Document, error)
	GetByID(ctx context.Context, id int64) (document.Document, int64, error)
	List(ctx context.Context, vis policy.Visibility, f document.ListFilter) ([]document.Document, int, error)
	Update(ctx context.Context, id int64, req document.UpdateDocumentRequest) (document.Document, error)
	Delete(ctx context.Context, id int64) error
}

type UserGetter interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}

type DocumentsHandler struct {
	store DocumentsStore
	users UserGetter
}

func NewDocumentsHandler(store DocumentsStore, users UserGetter) *DocumentsHandler {
	return &DocumentsHandler{store: store, users: users}
}

func requester(ctx *gin.Context) (policy.Requester, bool) {
	r, ok := middlewares.RequesterFromContext(ctx)

	if !ok {
		RespondBadRequest(ctx, "Please sign in or register to get a token")
	}
	return r, ok
}

func documentID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	return id, err == nil
}

func (h *DocumentsHandler) CreateDocument(ctx *gin.Context) {
	r, ok := requester(ctx)
	if !ok {
		return
	}

	var req document.CreateDocumentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(ctx, "Invalid request body")
		return
	}

	// field checks are ordered; clients assert the exact messages
	if strings.TrimSpace(req.Title) == "" {
		RespondBadRequest(ctx, "Title field is required")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		RespondBadRequest(ctx, "Content field is required")
		return
	}

	if req.Access == "" {
		req.Access = document.AccessPublic
	}

	if !document.ValidAccess(req.Access) {
		RespondBadRequest(ctx, "Access type can only be public, private or role")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	// owner is always the requester, whatever the payload says
	doc, err := h.store.Create(cctx, r.UserID, req)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":  "Your document has been successfully created",
		"document": doc,
	})
}

func (h *DocumentsHandler) GetDocument(ctx *gin.Context) {
	r, ok := requester(ctx)
	if !ok {
		return
	}

	id, ok := documentID(ctx)
	if !ok {
		RespondNotFound(ctx, "This document cannot be found")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	// existence first, permission second
	doc, ownerRoleID, err := h.store.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			RespondNotFound(ctx, "This document cannot be found")
			return
		}
		RespondInternal(ctx)
		return
	}

	if !policy.CanView(r, doc, ownerRoleID) {
		RespondNotPermitted(ctx, "You are not permitted to view this document")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "You have successfully retrived this document",
		"document": doc,
	})
}

func (h *DocumentsHandler) UpdateDocument(ctx *gin.Context) {
	r, ok := requester(ctx)
	if !ok {
		return
	}

	id, ok := documentID(ctx)
	if !ok {
		RespondNotFound(ctx, "This document does not exist")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	// existence first, permission second, payload last
	doc, _, err := h.store.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			RespondNotFound(ctx, "This document does not exist")
			return
		}
		RespondInternal(ctx)
		return
	}

	if !policy.CanMutate(r, doc) {
		RespondNotPermitted(ctx, "You are not permitted to modify this document")
		return
	}

	var req document.UpdateDocumentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(ctx, "Invalid request body")
		return
	}

	// a patch may omit title/content, but never blank them
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		RespondBadRequest(ctx, "Title field is required")
		return
	}

	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		RespondBadRequest(ctx, "Content field is required")
		return
	}

	if req.Access != nil && !document.ValidAccess(*req.Access) {
		RespondBadRequest(ctx, "Access type can only be public, private or role")
		return
	}

	updated, err := h.store.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			RespondNotFound(ctx, "This document does not exist")
			return
		}
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":         "This document has been updated successfully",
		"updatedDocument": updated,
	})
}

func (h *DocumentsHandler) DeleteDocument(ctx *gin.Context) {
	r, ok := requester(ctx)
	if !ok {
		return
	}

	id, ok := documentID(ctx)
	if !ok {
		RespondNotFound(ctx, "This document does not exist")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	doc, _, err := h.store.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			RespondNotFound(ctx, "This document does not exist")
			return
		}
		RespondInternal(ctx)
		return
	}

	if !policy.CanMutate(r, doc) {
		RespondNotPermitted(ctx, "You are not permitted to modify this document")
		return
	}

	err = h.store.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			RespondNotFound(ctx, "This document does not exist")
			return
		}
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "This document has been deleted successfully",
	})
}

func (h *DocumentsHandler) ListDocuments(ctx *gin.Context) {
	r, ok := requester(ctx)
	if !ok {
		return
	}

	page, err := utils.ParsePagination(ctx.Query("limit"), ctx.Query("offset"))

	if err != nil {
		RespondBadRequest(ctx, err.Error())
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rows, total, err := h.store.List(cctx, policy.VisibilityFor(r), document.ListFilter{
		Limit:  page.Limit,
		Offset: page.Offset,
	})

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "You have successfully retrieved all documents",
		"documents": gin.H{
			"rows":  rows,
			"count": total,
		},
		"pagination": utils.NewPageInfo(total, page),
	})
}

func (h *DocumentsHandler) SearchDocuments(ctx *gin.Context) {
	r, ok := requester(ctx)
	if !ok {
		return
	}

	terms := utils.SearchTerms(ctx.Query("query"))

	if len(terms) == 0 {
		RespondBadRequest(ctx, "Please enter a search query")
		return
	}

	page, err := utils.ParsePagination(ctx.Query("limit"), ctx.Query("offset"))

	if err != nil {
		RespondBadRequest(ctx, err.Error())
		return
	}

	sortAsc := strings.EqualFold(ctx.Query("publishedDate"), "ASC")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rows, total, err := h.store.List(cctx, policy.VisibilityFor(r), document.ListFilter{
		Terms:   terms,
		SortAsc: sortAsc,
		Limit:   page.Limit,
		Offset:  page.Offset,
	})

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "This search was successfull",
		"documents": gin.H{
			"rows":  rows,
			"count": total,
		},
		"pagination": utils.NewPageInfo(total, page),
	})
}

// ListUserDocuments serves /users/:id/documents: the target's documents
// as the requester is allowed to see them.
func (h *DocumentsHandler) ListUserDocuments(ctx *gin.Context) {
	r, ok := requester(ctx)
	if !ok {
		return
	}

	targetID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil {
		RespondNotFound(ctx, "This user does not exist")
		return
	}

	page, perr := utils.ParsePagination(ctx.Query("limit"), ctx.Query("offset"))

	if perr != nil {
		RespondBadRequest(ctx, perr.Error())
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	target, err := h.users.GetByID(cctx, targetID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "This user does not exist")
			return
		}
		RespondInternal(ctx)
		return
	}

	rows, total, err := h.store.List(cctx, policy.VisibilityFor(r), document.ListFilter{
		OwnerID: &target.ID,
		Limit:   page.Limit,
		Offset:  page.Offset,
	})

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "You have successfully retrieved this user's documents",
		"userDocuments": gin.H{
			"user": target,
			"documents": gin.H{
				"rows":  rows,
				"count": total,
			},
		},
		"pagination": utils.NewPageInfo(total, page),
	})
}
