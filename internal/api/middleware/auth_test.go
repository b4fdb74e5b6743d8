package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/helpbeacon/helpbeacon/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
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

func TestSessionAuth_Success(t *testing.T) {
	validator := new(MockSessionValidator)
	session := &domain.Session{ID: "sess-1", TenantID: 2, UserName: "alice", Role: domain.RoleStaff}
	validator.On("ValidateToken", mock.Anything, "hbs_valid").Return(session, nil)

	var got *domain.Session
	handler := SessionAuth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetSession(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/searchbox", nil)
	req.Header.Set("Authorization", "Bearer hbs_valid")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess-1", got.ID)
	validator.AssertExpectations(t)
}

func TestSessionAuth_MissingHeader(t *testing.T) {
	validator := new(MockSessionValidator)

	handler := SessionAuth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/searchbox", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing authorization header")
}

func TestSessionAuth_BadFormat(t *testing.T) {
	validator := new(MockSessionValidator)

	handler := SessionAuth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/searchbox", nil)
	req.Header.Set("Authorization", "Basic abc")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid authorization format")
}

func TestSessionAuth_InvalidToken(t *testing.T) {
	validator := new(MockSessionValidator)
	validator.On("ValidateToken", mock.Anything, "hbs_bad").Return(nil, domain.ErrInvalidSession)

	handler := SessionAuth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/searchbox", nil)
	req.Header.Set("Authorization", "Bearer hbs_bad")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid session token")
}

func TestSessionAuthOptional(t *testing.T) {
	t.Run("valid token resolves session", func(t *testing.T) {
		validator := new(MockSessionValidator)
		session := &domain.Session{ID: "sess-1", TenantID: 1, UserName: "alice", Role: domain.RoleStaff}
		validator.On("ValidateToken", mock.Anything, "hbs_valid").Return(session, nil)

		var got *domain.Session
		handler := SessionAuthOptional(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = GetSession(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}))

		req := httptest.NewRequest(http.MethodPost, "/log", nil)
		req.Header.Set("Authorization", "Bearer hbs_valid")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "sess-1", got.ID)
	})

	t.Run("missing header falls through without session", func(t *testing.T) {
		validator := new(MockSessionValidator)

		reached := false
		handler := SessionAuthOptional(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			assert.Nil(t, GetSession(r.Context()))
			w.WriteHeader(http.StatusNoContent)
		}))

		req := httptest.NewRequest(http.MethodPost, "/log", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.True(t, reached)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("invalid token falls through without session", func(t *testing.T) {
		validator := new(MockSessionValidator)
		validator.On("ValidateToken", mock.Anything, "hbs_bad").Return(nil, domain.ErrInvalidSession)

		reached := false
		handler := SessionAuthOptional(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			assert.Nil(t, GetSession(r.Context()))
			w.WriteHeader(http.StatusNoContent)
		}))

		req := httptest.NewRequest(http.MethodPost, "/log", nil)
		req.Header.Set("Authorization", "Bearer hbs_bad")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.True(t, reached)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestRequireManager(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("manager allowed", func(t *testing.T) {
		session := &domain.Session{ID: "sess-1", Role: domain.RoleManager}
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		req = req.WithContext(context.WithValue(req.Context(), SessionKey, session))
		w := httptest.NewRecorder()

		RequireManager(next).ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("staff forbidden", func(t *testing.T) {
		session := &domain.Session{ID: "sess-2", Role: domain.RoleStaff}
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		req = req.WithContext(context.WithValue(req.Context(), SessionKey, session))
		w := httptest.NewRecorder()

		RequireManager(next).ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "manager role required")
	})

	t.Run("no session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		w := httptest.NewRecorder()

		RequireManager(next).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
