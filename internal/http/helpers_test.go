package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"farmtech/internal/config"
	"farmtech/internal/http/handlers"
	applog "farmtech/internal/log"
	"farmtech/internal/repos"
	"farmtech/internal/storage"
)

type testEnv struct {
	app      *fiber.App
	db       *sqlx.DB
	mediaDir string
}

func newTestApp(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Config{
		DBDSN:        ":memory:",
		MediaDir:     t.TempDir(),
		TemplatesDir: "../../web/templates",
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	deps := handlers.NewDeps(db, cfg, nil, storage.NewLocal(cfg.MediaDir))
	return &testEnv{app: handlers.NewApp(cfg, deps), db: db, mediaDir: cfg.MediaDir}
}

func cookieValue(resp *http.Response, name string) (string, bool) {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// client carries the csrf and session cookies between requests.
type client struct {
	t    *testing.T
	app  *fiber.App
	csrf string
	sid  string
}

func newClient(t *testing.T, app *fiber.App) *client {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	tok, _ := cookieValue(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return &client{t: t, app: app, csrf: tok}
}

func (c *client) send(req *http.Request) (*http.Response, []byte) {
	c.t.Helper()
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: c.csrf})
	req.Header.Set("X-Csrf-Token", c.csrf)
	if c.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: c.sid})
	}
	resp, err := c.app.Test(req, -1)
	if err != nil {
		c.t.Fatal(err)
	}
	if sid, ok := cookieValue(resp, "sid"); ok {
		c.sid = sid
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, body
}

func (c *client) do(method, path string, payload any) (*http.Response, []byte) {
	c.t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			c.t.Fatal(err)
		}
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req)
}

func (c *client) signin(email string) {
	c.t.Helper()
	resp, body := c.do("POST", "/api/auth/signin", map[string]string{"email": email, "password": "Passw0rd!"})
	if resp.StatusCode != http.StatusOK {
		c.t.Fatalf("signin %s: %d %s", email, resp.StatusCode, body)
	}
}

type apiErr struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return v
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Kind   string         `json:"kind"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.b.Write(p)
}

// captureLogs swaps the event log sink while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var w lockedWriter
	applog.SetOutput(&w)
	defer applog.SetOutput(os.Stdout)

	fn()

	w.mu.Lock()
	defer w.mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(w.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func hasAction(entries []logEntry, action string) bool {
	for _, e := range entries {
		if e.Action == action {
			return true
		}
	}
	return false
}
