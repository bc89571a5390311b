package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dochub/internal/domain/user"
	"dochub/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

func TestBindJSON_ValidationErrorsUseJSONFieldNames(t *testing.T) {
	r := gin.New()
	r.POST("/users", func(ctx *gin.Context) {
		var req user.SignUpRequest
		if !handlers.BindJSON(ctx, &req) {
			return
		}
		ctx.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"username":"jdoe","email":"bad"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
	}

	var resp validationBody
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v body=%s", err, w.Body.String())
	}

	wantMessages := map[string]string{
		"firstname": "This field cannot be empty",
		"lastname":  "This field cannot be empty",
		"email":     "Input a valid email address",
		"password":  "This field cannot be empty",
	}

	got := make(map[string]string, len(resp.ErrorArray))

	for _, fe := range resp.ErrorArray {
		got[fe.Field] = fe.Message
	}

	for field, want := range wantMessages {
		if got[field] != want {
			t.Fatalf("field %q: message = %q, want %q (all: %v)", field, got[field], want, got)
		}
	}

	// json tag names, not Go struct names
	if _, ok := got["Firstname"]; ok {
		t.Fatal("validation errors leaked Go field names")
	}
}

func TestBindJSON_MalformedBody(t *testing.T) {
	r := gin.New()
	r.POST("/users", func(ctx *gin.Context) {
		var req user.SignUpRequest
		if !handlers.BindJSON(ctx, &req) {
			return
		}
		ctx.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"username":`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusBadRequest)
	}
}
