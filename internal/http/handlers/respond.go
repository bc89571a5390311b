package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error bodies are {success:false, message} across the API; multi-field
// validation failures use {errorArray} instead. Both shapes are part of
// the wire contract.

type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, message)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message)
}

// RespondNotPermitted is the document-ownership failure; it answers 401
// while role-admin failures answer 403. Inconsistent, but observed
// clients assert both codes.
func RespondNotPermitted(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, message)
}

func RespondForbidden(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusForbidden, message)
}

func RespondInternal(ctx *gin.Context) {
	RespondError(ctx, http.StatusInternalServerError, "Something went wrong. Please try again")
}

func RespondValidation(ctx *gin.Context, fields []FieldError) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"errorArray": fields,
	})
}
