package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/export"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/fontsettings"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/session"
)

func TestErrorCarriesNotice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	MountGroup(r, GroupConfig{Prefix: "/api"}, ModuleFunc(func(c *Controller) {
		c.Public(http.MethodGet, "/fail", func(ctx *gin.Context) (any, *APIError) {
			return nil, &APIError{Code: http.StatusBadGateway, Message: "HTTP 500: Internal Server Error"}
		})
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fail", nil))
	require.Equal(t, http.StatusBadGateway, w.Code)

	var body struct {
		Error  string `json:"error"`
		Notice Notice `json:"notice"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "HTTP 500: Internal Server Error", body.Error)
	assert.Equal(t, 5000, body.Notice.DismissAfterMs)
}

func TestSessionHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	m := session.NewManager(fontsettings.NewMemoryStore(), &export.Env{}, time.Hour)
	MountGroup(r, GroupConfig{Prefix: "/api", Sessions: m, SecretKey: "k"}, ModuleFunc(func(c *Controller) {
		c.GET("/me", func(ctx *gin.Context, s *session.Session) (any, *APIError) {
			return gin.H{"id": s.ID}, nil
		})
		c.GET("/file", func(ctx *gin.Context, s *session.Session) (any, *APIError) {
			return File{Name: "imsakiye-Köln-NRW-2026.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}, nil
		})
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/file", nil))
	assert.Equal(t, "%PDF", w.Body.String())
	cd := w.Header().Get("Content-Disposition")
	assert.Contains(t, cd, `filename="imsakiye-K_ln-NRW-2026.pdf"`)
	assert.Contains(t, cd, "filename*=utf-8''imsakiye-K%C3%B6ln-NRW-2026.pdf")
}

func TestSessionHandlerWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	MountGroup(r, GroupConfig{Prefix: "/api"}, ModuleFunc(func(c *Controller) {
		c.GET("/me", func(ctx *gin.Context, s *session.Session) (any, *APIError) { return nil, nil })
	}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestErrorCarriesDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	MountGroup(r, GroupConfig{Prefix: "/api"}, ModuleFunc(func(c *Controller) {
		c.Public(http.MethodGet, "/fail", func(ctx *gin.Context) (any, *APIError) {
			return nil, &APIError{Code: http.StatusBadGateway, Message: "boom", Detail: map[string]string{"placeholder": "-- Hata --"}}
		})
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fail", nil))
	var body struct {
		Detail map[string]string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "-- Hata --", body.Detail["placeholder"])
}
