package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON decodes the request body and, on binder or validator
// failure, answers 400 with the errorArray contract.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		RespondValidation(ctx, fieldErrors(err))

		return false
	}

	return true
}

func fieldErrors(err error) []FieldError {
	var validatorError validator.ValidationErrors

	if errors.As(err, &validatorError) {
		fields := make([]FieldError, 0, len(validatorError))

		for _, fieldError := range validatorError {
			fields = append(fields, FieldError{
				Field:   strings.ToLower(fieldError.Field()),
				Message: validationMessage(fieldError.Tag(), strings.ToLower(fieldError.Field())),
			})
		}
		return fields
	}

	// bad JSON or a type mismatch; no field to point at
	return []FieldError{{Message: "Invalid request body"}}
}

func validationMessage(rule, field string) string {
	switch rule {
	case "required":
		return "This field cannot be empty"
	case "email":
		return "Input a valid email address"
	default:
		return "Input a valid " + field
	}
}
