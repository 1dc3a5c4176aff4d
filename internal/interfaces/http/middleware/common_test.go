package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c)+"|"+c.GetString("request_id"))
	})

	t.Run("generates a uuid when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(RequestIDKey)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id+"|"+id, w.Body.String())
	})

	t.Run("reuses the client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDKey, "client-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "client-42", w.Header().Get(RequestIDKey))
	})

	t.Run("truncates oversized ids", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDKey, strings.Repeat("a", 500))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Len(t, w.Header().Get(RequestIDKey), MaxRequestIDLength)
	})
}

func TestCORSWithConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://admin.example.com"}
	cfg.AllowCredentials = true

	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{"allowed origin", http.MethodGet, "https://admin.example.com", http.StatusOK, "https://admin.example.com"},
		{"unknown origin", http.MethodGet, "https://evil.example.com", http.StatusOK, ""},
		{"preflight allowed", http.MethodOptions, "https://admin.example.com", http.StatusNoContent, "https://admin.example.com"},
		{"preflight unknown", http.MethodOptions, "https://evil.example.com", http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/products", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantOrigin != "" {
				assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
				assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
			}
		})
	}
}

func TestCORSWithConfig_Wildcard(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"*"}
	cfg.AllowCredentials = true

	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestSecure(t *testing.T) {
	router := gin.New()
	router.Use(Secure())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

func TestBodyLimit(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), BodyLimit(100))
	router.POST("/upload", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("within limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("small")))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("declared length over limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(strings.Repeat("x", 200))))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_REQUEST_TOO_LARGE")
	})

	t.Run("streamed body over limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(strings.Repeat("x", 200)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
