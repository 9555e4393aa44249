package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxSlugLength bounds content slugs.
const MaxSlugLength = 200

// ValidateSlug rejects slugs that could escape a content directory.
func ValidateSlug(slug string) error {
	if strings.TrimSpace(slug) == "" {
		return fmt.Errorf("slug cannot be empty")
	}

	if len(slug) > MaxSlugLength {
		return fmt.Errorf("slug exceeds maximum length of %d characters", MaxSlugLength)
	}

	if strings.ContainsAny(slug, `/\`) {
		return fmt.Errorf("slug cannot contain path separators")
	}

	if strings.Contains(slug, "..") {
		return fmt.Errorf("slug cannot contain '..'")
	}

	return nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses everything except letters and digits
// into single hyphens ("Intake Call" -> "intake-call").
func Slugify(s string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
