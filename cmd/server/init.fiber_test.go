package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezvirumon/user-billing-server/config"
	apirouter "github.com/rezvirumon/user-billing-server/internal/api/router"
	"github.com/rezvirumon/user-billing-server/internal/common"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func testConfig() *config.Configuration {
	return &config.Configuration{
		CORS_Origins:          "http://localhost:5173",
		CORS_AllowCredentials: true,
		RateLimit_Max:         100,
		RateLimit_Window:      60,
	}
}

func newTestServer(t *testing.T, cfg *config.Configuration, db stubPinger) *fiber.App {
	t.Helper()
	extra := func(root fiber.Router) error {
		root.Get("/boom", func(c fiber.Ctx) error { panic("kaboom") })
		root.Get("/fail", func(c fiber.Ctx) error { return errors.New("unclassified") })
		root.Get("/teapot", func(c fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })
		return nil
	}
	app, err := InitFiberApp(cfg, systemRoutes(db), apirouter.RegisterFunc(extra))
	require.NoError(t, err)
	return app
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestRoot(t *testing.T) {
	app := newTestServer(t, testConfig(), stubPinger{})
	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, common.MsgServiceRunning, body)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestUnmatchedRoute(t *testing.T) {
	app := newTestServer(t, testConfig(), stubPinger{})
	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/nope/at/all", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "404 Page Not Found", body)
}

func TestPanicAndUnhandledError(t *testing.T) {
	app := newTestServer(t, testConfig(), stubPinger{})

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Something went wrong!"}`, body)

	resp, body = send(t, app, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Something went wrong!"}`, body)

	resp, body = send(t, app, httptest.NewRequest(http.MethodGet, "/teapot", nil))
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "short and stout", body)
}

func TestHealth(t *testing.T) {
	resp, body := send(t, newTestServer(t, testConfig(), stubPinger{}), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"database":"ok"`)

	resp, body = send(t, newTestServer(t, testConfig(), stubPinger{err: errors.New("no primary")}), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, "no primary")
}

func TestCORS(t *testing.T) {
	app := newTestServer(t, testConfig(), stubPinger{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	resp, _ := send(t, app, req)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit_Enabled = true
	cfg.RateLimit_Max = 2
	app := newTestServer(t, cfg, stubPinger{})

	for i := 0; i < 2; i++ {
		resp, _ := send(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, _ := send(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// health không bị giới hạn
	resp, _ = send(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
