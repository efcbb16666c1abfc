package common

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anoixa/tripill/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondAppError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "not found", err: apperr.NotFound("trip %d not found", 7), wantStatus: http.StatusNotFound, wantMsg: "trip 7 not found"},
		{name: "forbidden", err: apperr.Forbidden("not yours"), wantStatus: http.StatusForbidden, wantMsg: "not yours"},
		{name: "conflict", err: apperr.Conflict("taken"), wantStatus: http.StatusConflict, wantMsg: "taken"},
		{name: "invalid", err: apperr.Invalid("bad"), wantStatus: http.StatusBadRequest, wantMsg: "bad"},
		{name: "internal hides details", err: apperr.Internal(errors.New("db down"), "load"), wantStatus: http.StatusInternalServerError, wantMsg: "internal server error"},
		{name: "plain error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/test", func(c *gin.Context) {
				RespondAppError(c, tt.err)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"status":"error"`)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
			assert.NotContains(t, w.Body.String(), "db down")
		})
	}
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{path: "/items/12", wantStatus: http.StatusOK},
		{path: "/items/0", wantStatus: http.StatusBadRequest},
		{path: "/items/-3", wantStatus: http.StatusBadRequest},
		{path: "/items/abc", wantStatus: http.StatusBadRequest},
	}

	router := gin.New()
	router.GET("/items/:id", func(c *gin.Context) {
		id, ok := ParamID(c, "id")
		if !ok {
			return
		}
		RespondSuccess(c, id)
	})

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
