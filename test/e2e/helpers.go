//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/helpbeacon/helpbeacon/internal/api/handlers"
	"github.com/helpbeacon/helpbeacon/internal/domain"
	"github.com/helpbeacon/helpbeacon/internal/repository"
	"github.com/helpbeacon/helpbeacon/internal/server"
	"github.com/helpbeacon/helpbeacon/internal/service"
	"github.com/helpbeacon/helpbeacon/internal/testutil"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Env runs the full API against a real database for one test.
type Env struct {
	t        *testing.T
	pc       *testutil.PostgresContainer
	Pool     *pgxpool.Pool
	Server   *httptest.Server
	Sessions *service.SessionService
	Tenants  *repository.TenantRepository
}

// APIResponse is the decoded envelope plus the HTTP status.
type APIResponse struct {
	StatusCode int
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Body       string
}

func SetupE2EEnv(t *testing.T) *Env {
	t.Helper()
	ctx := context.Background()

	pc := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")

	tenantRepo := repository.NewTenantRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	searchLogRepo := repository.NewSearchLogRepository(pool)

	sessions := service.NewSessionService(sessionRepo, "e2e-test-secret")
	settings := service.NewSettingsService(settingsRepo)
	search := service.NewSearchService(searchLogRepo, settings, sessions)
	stats := service.NewStatsService(searchLogRepo)

	router := server.NewRouter(server.RouterConfig{
		SessionValidator: sessions,
		SearchHandler:    handlers.NewSearchHandler(search),
		SettingsHandler:  handlers.NewSettingsHandler(settings),
		StatsHandler:     handlers.NewStatsHandler(stats),
	})

	return &Env{
		t:        t,
		pc:       pc,
		Pool:     pool,
		Server:   httptest.NewServer(router),
		Sessions: sessions,
		Tenants:  tenantRepo,
	}
}

func (e *Env) Cleanup() {
	ctx := context.Background()
	e.Server.Close()
	e.Pool.Close()
	_ = e.pc.Terminate(ctx)
}

// NewSessionToken opens a session directly in the database and returns
// it with its raw token, the way the admin CLI would.
func (e *Env) NewSessionToken(tenantID int64, userName, role string) (*domain.Session, string) {
	e.t.Helper()
	session, token, err := e.Sessions.CreateSession(context.Background(), tenantID, userName, role)
	require.NoError(e.t, err)
	return session, token
}

func (e *Env) do(req *http.Request, token string) *APIResponse {
	e.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)

	out := &APIResponse{StatusCode: resp.StatusCode, Body: string(body)}
	if len(body) > 0 {
		_ = json.Unmarshal(body, out)
	}
	return out
}

func (e *Env) Get(path, token string) *APIResponse {
	req, err := http.NewRequest(http.MethodGet, e.Server.URL+path, nil)
	require.NoError(e.t, err)
	return e.do(req, token)
}

func (e *Env) Put(path string, payload any, token string) *APIResponse {
	body, err := json.Marshal(payload)
	require.NoError(e.t, err)
	req, err := http.NewRequest(http.MethodPut, e.Server.URL+path, strings.NewReader(string(body)))
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/json")
	return e.do(req, token)
}

func (e *Env) Post(path string, payload any, token string) *APIResponse {
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(e.t, err)
		reader = strings.NewReader(string(body))
	}
	req, err := http.NewRequest(http.MethodPost, e.Server.URL+path, reader)
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/json")
	return e.do(req, token)
}

// PostForm sends a form-encoded POST the way the search box beacon does.
func (e *Env) PostForm(path string, form url.Values, token string) *APIResponse {
	req, err := http.NewRequest(http.MethodPost, e.Server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req, token)
}

func (e *Env) mustData(resp *APIResponse, v any) {
	e.t.Helper()
	require.NotEmpty(e.t, resp.Data, "expected data in response: %s", resp.Body)
	require.NoError(e.t, json.Unmarshal(resp.Data, v), fmt.Sprintf("body: %s", resp.Body))
}
