package ai

import "errors"

var (
	// ErrNotConfigured means no API key is set; callers fall back to heuristics.
	ErrNotConfigured = errors.New("ai: not configured")
	// ErrProviderUnavailable covers transport failures and non-200 responses.
	ErrProviderUnavailable = errors.New("ai: provider unavailable")
	// ErrInvalidResponse means the model returned something that is not the
	// requested JSON.
	ErrInvalidResponse = errors.New("ai: invalid response")
)
