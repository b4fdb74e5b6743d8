package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/helpbeacon/helpbeacon/internal/api/handlers"
	"github.com/helpbeacon/helpbeacon/internal/domain"
	"github.com/helpbeacon/helpbeacon/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSessionValidator struct {
	mock.Mock
}

func (m *MockSessionValidator) ValidateToken(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockSettingsStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockSearchLogStore struct {
	mock.Mock
}

func (m *MockSearchLogStore) Upsert(ctx context.Context, tenantID int64, term, searchURL string, now time.Time) (*domain.SearchLogEntry, error) {
	args := m.Called(ctx, tenantID, term, searchURL, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchLogEntry), args.Error(1)
}

type MockStatsReader struct {
	mock.Mock
}

func (m *MockStatsReader) ListEntries(ctx context.Context, q service.StatsQuery) ([]*service.StatsRow, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*service.StatsRow), args.Error(1)
}

func (m *MockStatsReader) CountEntries(ctx context.Context, filter string) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type routerFixture struct {
	router    http.Handler
	validator *MockSessionValidator
	settings  *MockSettingsStore
	logs      *MockSearchLogStore
	stats     *MockStatsReader
	sessions  *service.SessionService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	validator := new(MockSessionValidator)
	settings := new(MockSettingsStore)
	logs := new(MockSearchLogStore)
	stats := new(MockStatsReader)

	sessions := service.NewSessionService(nil, "router-test-secret")
	settingsSvc := service.NewSettingsService(settings)
	searchSvc := service.NewSearchService(logs, settingsSvc, sessions)

	router := NewRouter(RouterConfig{
		SessionValidator: validator,
		SearchHandler:    handlers.NewSearchHandler(searchSvc),
		SettingsHandler:  handlers.NewSettingsHandler(settingsSvc),
		StatsHandler:     handlers.NewStatsHandler(service.NewStatsService(stats)),
	})

	return &routerFixture{
		router:    router,
		validator: validator,
		settings:  settings,
		logs:      logs,
		stats:     stats,
		sessions:  sessions,
	}
}

func staffSession() *domain.Session {
	return &domain.Session{ID: "sess-staff", TenantID: 1, UserName: "alice", Role: domain.RoleStaff}
}

func managerSession() *domain.Session {
	return &domain.Session{ID: "sess-mgr", TenantID: 1, UserName: "bob", Role: domain.RoleManager}
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_RequiresAuth(t *testing.T) {
	f := newRouterFixture(t)

	paths := []string{"/searchbox", "/stats", "/settings/"}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "path %s", path)
	}
}

func TestRouter_Searchbox(t *testing.T) {
	f := newRouterFixture(t)
	f.validator.On("ValidateToken", mock.Anything, "hbs_staff").Return(staffSession(), nil)
	f.settings.On("Get", mock.Anything, domain.SettingActionURL).Return("https://help.example.com/?q=", nil)
	f.settings.On("Get", mock.Anything, domain.SettingShowNotice).Return("0", nil)

	req := httptest.NewRequest(http.MethodGet, "/searchbox", nil)
	req.Header.Set("Authorization", "Bearer hbs_staff")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://help.example.com/?q=")
}

func TestRouter_LogBeacon(t *testing.T) {
	f := newRouterFixture(t)
	session := staffSession()
	f.validator.On("ValidateToken", mock.Anything, "hbs_staff").Return(session, nil)
	f.logs.On("Upsert", mock.Anything, int64(1), "billing", "https://h/?q=billing", mock.Anything).
		Return(&domain.SearchLogEntry{SearchCount: 1}, nil)

	form := url.Values{
		"search":     {"billing"},
		"search_url": {"https://h/?q=billing"},
		"security":   {f.sessions.LogToken(session.ID)},
	}
	req := httptest.NewRequest(http.MethodPost, "/log", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer hbs_staff")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	f.logs.AssertExpectations(t)
}

func TestRouter_LogBeaconWithoutSession(t *testing.T) {
	f := newRouterFixture(t)

	form := url.Values{"search": {"billing"}}
	req := httptest.NewRequest(http.MethodPost, "/log", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	f.logs.AssertNotCalled(t, "Upsert")
}

func TestRouter_LogBeaconBadToken(t *testing.T) {
	f := newRouterFixture(t)
	f.validator.On("ValidateToken", mock.Anything, "hbs_bogus").Return(nil, domain.ErrInvalidSession)

	form := url.Values{"search": {"billing"}}
	req := httptest.NewRequest(http.MethodPost, "/log", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer hbs_bogus")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	f.logs.AssertNotCalled(t, "Upsert")
}

func TestRouter_StatsRequiresManager(t *testing.T) {
	f := newRouterFixture(t)
	f.validator.On("ValidateToken", mock.Anything, "hbs_staff").Return(staffSession(), nil)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.Header.Set("Authorization", "Bearer hbs_staff")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_StatsForManager(t *testing.T) {
	f := newRouterFixture(t)
	f.validator.On("ValidateToken", mock.Anything, "hbs_mgr").Return(managerSession(), nil)
	f.stats.On("CountEntries", mock.Anything, "").Return(int64(0), nil)
	f.stats.On("ListEntries", mock.Anything, mock.Anything).Return([]*service.StatsRow(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.Header.Set("Authorization", "Bearer hbs_mgr")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_SettingsRequiresManager(t *testing.T) {
	f := newRouterFixture(t)
	f.validator.On("ValidateToken", mock.Anything, "hbs_staff").Return(staffSession(), nil)

	req := httptest.NewRequest(http.MethodPut, "/settings/", strings.NewReader(`{"action_url":"https://h/"}`))
	req.Header.Set("Authorization", "Bearer hbs_staff")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_RejectsOversizedBody(t *testing.T) {
	f := newRouterFixture(t)
	f.validator.On("ValidateToken", mock.Anything, "hbs_mgr").Return(managerSession(), nil)

	big := strings.Repeat("x", 65*1024)
	req := httptest.NewRequest(http.MethodPut, "/settings/", strings.NewReader(big))
	req.Header.Set("Authorization", "Bearer hbs_mgr")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
