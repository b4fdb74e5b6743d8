package service

import (
	"context"
	"strings"

	"github.com/helpbeacon/helpbeacon/internal/domain"
)

// SettingsStore persists key/value settings.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// SettingsService manages the action URL template and the
// unconfigured-state notice flag.
type SettingsService struct {
	store SettingsStore
}

func NewSettingsService(store SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

// ActionURL returns the configured action URL template, or "" when
// none is set.
func (s *SettingsService) ActionURL(ctx context.Context) (string, error) {
	value, err := s.store.Get(ctx, domain.SettingActionURL)
	if err != nil {
		if err == domain.ErrSettingNotFound {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// UpdateActionURL validates and stores a new action URL template. The
// value is trimmed before storage so stray whitespace never reaches
// URL resolution. Validation failure leaves the stored value
// untouched. A successful update clears the setup notice.
func (s *SettingsService) UpdateActionURL(ctx context.Context, raw string) error {
	value := strings.TrimSpace(raw)
	if err := domain.ValidateActionURL(value); err != nil {
		return err
	}
	if err := s.store.Set(ctx, domain.SettingActionURL, value); err != nil {
		return err
	}
	return s.store.Set(ctx, domain.SettingShowNotice, "0")
}

// ShowNotice reports whether the setup notice should be shown: the
// flag is set and no action URL is configured yet.
func (s *SettingsService) ShowNotice(ctx context.Context) (bool, error) {
	flag, err := s.store.Get(ctx, domain.SettingShowNotice)
	if err != nil {
		if err == domain.ErrSettingNotFound {
			return false, nil
		}
		return false, err
	}
	if flag != "1" {
		return false, nil
	}

	actionURL, err := s.ActionURL(ctx)
	if err != nil {
		return false, err
	}
	return actionURL == "", nil
}

// DismissNotice clears the setup notice without configuring a URL.
func (s *SettingsService) DismissNotice(ctx context.Context) error {
	return s.store.Set(ctx, domain.SettingShowNotice, "0")
}

// RemoveAll deletes the managed settings. Uninstall only.
func (s *SettingsService) RemoveAll(ctx context.Context) error {
	if err := s.store.Delete(ctx, domain.SettingActionURL); err != nil {
		return err
	}
	return s.store.Delete(ctx, domain.SettingShowNotice)
}
