package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"perpus-server/internal/api"
	"perpus-server/internal/config"
	"perpus-server/internal/repository"
	"perpus-server/internal/service"
	"perpus-server/internal/store"
)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router    *gin.Engine
	Store     *store.Store
	Service   service.Service
	JWTSecret []byte
	DB        *sqlx.DB
	Token     string
}

// SetupTestContext creates a new test context backed by a throwaway SQLite
// file. The store starts from the default seed data and the returned token
// belongs to the default admin pair.
func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080},
		Storage: config.StorageConfig{
			Path: filepath.Join(t.TempDir(), "perpus_test.db"),
			Slot: "perpusDB",
		},
		Auth: config.AuthConfig{
			JWTSecret: "test-secret-key",
			TokenTTL:  time.Hour,
		},
		Log: config.LogConfig{Level: "error", Format: "json"},
	}

	logger := zap.NewNop()

	db, err := config.SetupStorage(cfg)
	require.NoError(t, err, "Failed to set up test storage")
	t.Cleanup(func() { db.Close() })

	repo := repository.NewSQLiteSnapshotRepository(db, cfg.Storage.Slot)

	st, err := store.Open(context.Background(), repo, logger)
	require.NoError(t, err, "Failed to open test store")

	svc := service.NewDefaultService(st, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)

	handler := api.NewHandler(svc)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	handler.SetupRoutes(router)

	tc := &TestContext{
		Router:    router,
		Store:     st,
		Service:   svc,
		JWTSecret: []byte(cfg.Auth.JWTSecret),
		DB:        db,
	}
	tc.Token = loginAsAdmin(t, router)
	return tc
}

// loginAsAdmin obtains a session token through the API with the seeded pair.
func loginAsAdmin(t *testing.T, router http.Handler) string {
	t.Helper()

	w := PerformRequest(router, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "admin",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, "Failed to log in with default credentials")

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// PerformRequest executes an HTTP request with a JSON body against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// PerformRawRequest executes an HTTP request with an arbitrary body
func PerformRawRequest(r http.Handler, method, path string, body []byte, contentType string, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// PerformFileUpload posts a multipart form with one "file" field
func PerformFileUpload(t *testing.T, r http.Handler, path, filename string, content []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
