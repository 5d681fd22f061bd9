package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pskill9/PreclinicalResearch/pkg/logger"
)

func newRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		ctxID, _ := c.Request.Context().Value(logger.RequestIDKey).(string)
		c.JSON(http.StatusOK, gin.H{"request_id": GetRequestID(c), "ctx_id": ctxID})
	})
	return router
}

func TestRequestIDMiddleware(t *testing.T) {
	router := newRequestIDRouter()

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	responseID := w.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("Expected generated UUID, got %q", responseID)
	}
	if !strings.Contains(w.Body.String(), `"ctx_id":"`+responseID+`"`) {
		t.Errorf("Expected request ID in request context, got %s", w.Body.String())
	}
}

func TestRequestIDMiddlewareWithExistingID(t *testing.T) {
	router := newRequestIDRouter()

	existingID := "existing-request-id-123"
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, existingID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != existingID {
		t.Errorf("Expected request ID %s, got %s", existingID, got)
	}
}

func TestRequestIDMiddlewareRejectsMalformedID(t *testing.T) {
	router := newRequestIDRouter()

	tests := []struct {
		name string
		id   string
	}{
		{"too long", strings.Repeat("a", maxRequestIDLen+1)},
		{"whitespace", "abc def"},
		{"non ascii", "id-é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set(RequestIDHeader, tt.id)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if got == tt.id {
				t.Errorf("Expected malformed ID %q to be replaced", tt.id)
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("Expected generated UUID, got %q", got)
			}
		})
	}
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if id := GetRequestID(c); id != "" {
		t.Errorf("Expected empty request ID, got %s", id)
	}
}
