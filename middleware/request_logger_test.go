package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestRequestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogs(t, slog.LevelInfo)

	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger())
	router.GET("/index.html", func(c *gin.Context) {
		c.String(http.StatusOK, "<html></html>")
	})
	router.POST("/api/contact", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
	})
	router.POST("/hook/submissions", func(c *gin.Context) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "webhook down"})
	})

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		logLevel       string
	}{
		{"page request", "GET", "/index.html", http.StatusOK, "INFO"},
		{"client error", "POST", "/api/contact", http.StatusBadRequest, "WARN"},
		{"server error", "POST", "/hook/submissions", http.StatusBadGateway, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set(RequestIDHeader, "log-req-1")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			logOutput := buf.String()
			for _, want := range []string{"request completed", tt.path, "level=" + tt.logLevel, "request_id=log-req-1"} {
				if !strings.Contains(logOutput, want) {
					t.Errorf("Expected %q in log, got %s", want, logOutput)
				}
			}
		})
	}
}

func TestRequestLoggerWithQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogs(t, slog.LevelInfo)

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/contact.html", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest("GET", "/contact.html?ref=nav", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if !strings.Contains(buf.String(), "query=") {
		t.Error("Expected query parameters in log")
	}
}

func TestRequestLoggerQuietPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogs(t, slog.LevelInfo)

	router := gin.New()
	router.Use(RequestLogger("/health"))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if buf.Len() != 0 {
		t.Errorf("Expected health check to stay below info level, got %s", buf.String())
	}
}

func TestRequestLoggerRecordsHandlerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogs(t, slog.LevelInfo)

	router := gin.New()
	router.Use(RequestLogger())
	router.POST("/api/contact", func(c *gin.Context) {
		c.Error(errors.New("failed to send request: connection refused"))
		c.JSON(http.StatusBadGateway, gin.H{"error": "webhook unreachable"})
	})

	req := httptest.NewRequest("POST", "/api/contact", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if !strings.Contains(buf.String(), "connection refused") {
		t.Errorf("Expected handler error in log, got %s", buf.String())
	}
}
