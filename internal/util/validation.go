package util

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL validates a management server URL.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got: %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a host")
	}

	return nil
}

// ValidateResourceName checks a cache or cache-manager name before it is
// placed in a request path.
func ValidateResourceName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s name cannot be empty: %w", kind, ErrInvalidInput)
	}
	if strings.ContainsAny(name, "/?#") {
		return fmt.Errorf("%s name %q contains reserved characters: %w", kind, name, ErrInvalidInput)
	}
	return nil
}
