package domain

import (
	"net/url"
	"strings"
)

// Setting keys. Settings are process-wide and shared across tenants.
const (
	SettingActionURL  = "action_url"
	SettingShowNotice = "show_notice"
)

// ValidateActionURL checks an administrator-submitted action-URL
// template before it may be persisted. The same rules run client-side
// for immediate feedback; this is the authoritative check.
func ValidateActionURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrActionURLEmpty
	}

	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return ErrActionURLScheme
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ErrActionURLInvalid
	}
	return nil
}
