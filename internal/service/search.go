package service

import (
	"context"
	"fmt"
	"time"

	"github.com/helpbeacon/helpbeacon/internal/domain"
)

// SearchLogStore records search events.
type SearchLogStore interface {
	Upsert(ctx context.Context, tenantID int64, term, searchURL string, now time.Time) (*domain.SearchLogEntry, error)
}

// SearchService powers the help search box: it resolves destination
// URLs from the configured template and records searches.
type SearchService struct {
	logs     SearchLogStore
	settings *SettingsService
	sessions *SessionService
	now      func() time.Time
}

func NewSearchService(logs SearchLogStore, settings *SettingsService, sessions *SessionService) *SearchService {
	return &SearchService{
		logs:     logs,
		settings: settings,
		sessions: sessions,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SearchboxView is what a client needs to render the search box and
// make authenticated log calls.
type SearchboxView struct {
	Configured bool   `json:"configured"`
	ActionURL  string `json:"action_url,omitempty"`
	LogToken   string `json:"log_token"`
	ShowNotice bool   `json:"show_notice"`
}

// Searchbox assembles the search box state for a session.
func (s *SearchService) Searchbox(ctx context.Context, session *domain.Session) (*SearchboxView, error) {
	actionURL, err := s.settings.ActionURL(ctx)
	if err != nil {
		return nil, err
	}
	showNotice, err := s.settings.ShowNotice(ctx)
	if err != nil {
		return nil, err
	}
	return &SearchboxView{
		Configured: actionURL != "",
		ActionURL:  actionURL,
		LogToken:   s.sessions.LogToken(session.ID),
		ShowNotice: showNotice,
	}, nil
}

// Resolve builds the destination URL for a term from the configured
// template.
func (s *SearchService) Resolve(ctx context.Context, term string) (string, error) {
	actionURL, err := s.settings.ActionURL(ctx)
	if err != nil {
		return "", err
	}
	if actionURL == "" {
		return "", domain.ErrNotConfigured
	}
	return ResolveSearchURL(actionURL, term), nil
}

// RecordInput carries one search event from the log endpoint.
type RecordInput struct {
	Session   *domain.Session
	LogToken  string
	Term      string
	SearchURL string
}

// Record validates and stores one search event. The log token must
// match the session; the term is normalized before storage. When the
// client did not report a destination URL it is resolved server-side.
func (s *SearchService) Record(ctx context.Context, in RecordInput) (*domain.SearchLogEntry, error) {
	if !s.sessions.VerifyLogToken(in.Session.ID, in.LogToken) {
		return nil, domain.ErrInvalidLogToken
	}

	term := domain.NormalizeTerm(in.Term)
	if term == "" {
		return nil, domain.ErrEmptyTerm
	}

	searchURL := in.SearchURL
	if searchURL == "" {
		resolved, err := s.Resolve(ctx, term)
		if err != nil {
			return nil, err
		}
		searchURL = resolved
	}

	candidate := &domain.SearchLogEntry{
		TenantID:    in.Session.TenantID,
		SearchTerm:  term,
		SearchURL:   searchURL,
		SearchCount: 1,
	}
	if err := domain.ValidateSearchLogEntry(candidate); err != nil {
		return nil, err
	}

	entry, err := s.logs.Upsert(ctx, candidate.TenantID, candidate.SearchTerm, candidate.SearchURL, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to record search: %w", err)
	}
	return entry, nil
}
