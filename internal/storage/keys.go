package storage

import (
	"strings"

	"github.com/huntrbrooks/Money-sub001/internal/domain"
)

// CleanKey validates an object key and strips leading separators.
// Keys must be non-empty and must not contain "..".
func CleanKey(key string) (string, error) {
	if strings.Contains(key, "..") {
		return "", &domain.ValidationError{Message: "object key must not contain '..'"}
	}
	cleaned := strings.TrimLeft(key, `/\`)
	if cleaned == "" {
		return "", &domain.ValidationError{Message: "object key cannot be empty"}
	}
	return cleaned, nil
}
