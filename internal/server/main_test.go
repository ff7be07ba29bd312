package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"simplesocial/internal/config"
	"simplesocial/internal/database"
	"simplesocial/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:             "test",
		Port:            "0",
		DBDriver:        config.DriverSQLite,
		DBPath:          filepath.Join(t.TempDir(), "server.db"),
		DBBusyTimeoutMS: 1000,
		DBMaxOpenConns:  4,
		AllowedOrigins:  "*",
		EventsChannel:   "test:events",
	}
}

type testEnv struct {
	srv *Server
	app *fiber.App
	db  *gorm.DB
}

func newTestEnv(t *testing.T, cfg *config.Config, rdb *redis.Client, opts ...service.Option) testEnv {
	t.Helper()
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	srv, err := NewServerWithDeps(cfg, db, rdb, opts...)
	require.NoError(t, err)

	return testEnv{srv: srv, app: srv.NewApp(), db: db}
}

// do sends a request to the app and returns the response with its body read.
// A non-empty body is sent as application/json.
func (e testEnv) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	contentType := ""
	if body != "" {
		contentType = fiber.MIMEApplicationJSON
	}
	return e.doWithType(t, method, path, body, contentType)
}

// doWithType is do with an explicit Content-Type; "" omits the header.
func (e testEnv) doWithType(t *testing.T, method, path, body, contentType string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeJSON(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}

func decodeJSONArray(t *testing.T, raw []byte) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}
