//go:build e2e

package e2e

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/helpbeacon/helpbeacon/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchboxView struct {
	Configured bool   `json:"configured"`
	ActionURL  string `json:"action_url"`
	LogToken   string `json:"log_token"`
	ShowNotice bool   `json:"show_notice"`
}

type statsPage struct {
	Items []struct {
		SearchTerm  string `json:"search_term"`
		SearchCount int    `json:"search_count"`
		SearchURL   string `json:"search_url"`
	} `json:"items"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TestE2E_SearchFlow drives the whole loop: a manager configures the
// help site, staff render the search box, resolve a term, fire the log
// beacon twice and the manager reads the aggregated statistics.
func TestE2E_SearchFlow(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	tenant, err := env.Tenants.Create(context.Background(), "shop.example.com")
	require.NoError(t, err)

	_, managerToken := env.NewSessionToken(tenant.ID, "mabel", domain.RoleManager)
	_, staffToken := env.NewSessionToken(tenant.ID, "sam", domain.RoleStaff)

	t.Run("searchbox unconfigured shows notice", func(t *testing.T) {
		resp := env.Get("/searchbox", staffToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var view searchboxView
		env.mustData(resp, &view)
		assert.False(t, view.Configured)
		assert.True(t, view.ShowNotice)
		assert.NotEmpty(t, view.LogToken)
	})

	t.Run("resolve before configuration fails", func(t *testing.T) {
		resp := env.Get("/resolve?term=billing", staffToken)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("manager configures action URL", func(t *testing.T) {
		resp := env.Put("/settings/", map[string]string{
			"action_url": "https://help.example.com/search?q={query}",
		}, managerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
	})

	var logToken string
	t.Run("searchbox configured", func(t *testing.T) {
		resp := env.Get("/searchbox", staffToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var view searchboxView
		env.mustData(resp, &view)
		assert.True(t, view.Configured)
		assert.Equal(t, "https://help.example.com/search?q={query}", view.ActionURL)
		assert.False(t, view.ShowNotice, "notice clears once a URL is saved")
		logToken = view.LogToken
	})

	t.Run("resolve encodes the term into the template", func(t *testing.T) {
		resp := env.Get("/resolve?term=dark+mode", staffToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			URL string `json:"url"`
		}
		env.mustData(resp, &result)
		assert.Equal(t, "https://help.example.com/search?q=dark%20mode", result.URL)
	})

	t.Run("log beacon records and increments", func(t *testing.T) {
		form := url.Values{
			"security":   {logToken},
			"search":     {"  Dark Mode  "},
			"search_url": {"https://help.example.com/search?q=dark%20mode"},
		}
		for i := 0; i < 2; i++ {
			resp := env.PostForm("/log", form, staffToken)
			assert.Equal(t, http.StatusNoContent, resp.StatusCode)
			assert.Empty(t, resp.Body)
		}
	})

	t.Run("log beacon ignores forged tokens", func(t *testing.T) {
		form := url.Values{
			"security": {"forged"},
			"search":   {"never stored"},
		}
		resp := env.PostForm("/log", form, staffToken)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("manager reads statistics", func(t *testing.T) {
		resp := env.Get("/stats", managerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page statsPage
		env.mustData(resp, &page)
		require.Equal(t, int64(1), page.Total)
		assert.Equal(t, "Dark Mode", page.Items[0].SearchTerm)
		assert.Equal(t, 2, page.Items[0].SearchCount)
	})

	t.Run("stats filter", func(t *testing.T) {
		resp := env.Get("/stats?s=nothing", managerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page statsPage
		env.mustData(resp, &page)
		assert.Equal(t, int64(0), page.Total)
		assert.Empty(t, page.Items)
	})
}

// TestE2E_SettingsValidation checks that rejected URLs never overwrite
// the stored value.
func TestE2E_SettingsValidation(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	_, managerToken := env.NewSessionToken(0, "mabel", domain.RoleManager)

	resp := env.Put("/settings/", map[string]string{"action_url": "https://help.example.com/"}, managerToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tests := []struct {
		name    string
		value   string
		message string
	}{
		{"empty", "", "please enter a URL"},
		{"no scheme", "help.example.com", "the URL must start with http:// or https://"},
		{"ftp scheme", "ftp://help.example.com", "the URL must start with http:// or https://"},
		{"no host", "https://", "please enter a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.Put("/settings/", map[string]string{"action_url": tt.value}, managerToken)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, resp.Error, tt.message)
		})
	}

	resp = env.Get("/settings/", managerToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view struct {
		ActionURL string `json:"action_url"`
	}
	env.mustData(resp, &view)
	assert.Equal(t, "https://help.example.com/", view.ActionURL)
}

// TestE2E_AuthBoundaries covers token and role enforcement.
func TestE2E_AuthBoundaries(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	staffSession, staffToken := env.NewSessionToken(0, "sam", domain.RoleStaff)

	t.Run("missing token", func(t *testing.T) {
		resp := env.Get("/searchbox", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := env.Get("/searchbox", "hbs_0000000000000000000000000000000000000000000000000000000000000000")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("staff cannot read stats or settings", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, env.Get("/stats", staffToken).StatusCode)
		assert.Equal(t, http.StatusForbidden, env.Get("/settings/", staffToken).StatusCode)
	})

	t.Run("revoked token stops working", func(t *testing.T) {
		require.NoError(t, env.Sessions.RevokeSession(context.Background(), staffSession.ID))
		resp := env.Get("/searchbox", staffToken)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("log beacon without token still answers empty", func(t *testing.T) {
		resp := env.PostForm("/log", url.Values{"search": {"never stored"}}, "")
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Empty(t, resp.Body)
	})

	t.Run("health needs no token", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, env.Get("/health", "").StatusCode)
	})
}
