package utils

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ParseFrontmatter splits a markdown document into its YAML front matter
// and body. Expected format:
// ---
// title: Managing anxiety
// date: 2024-05-01
// ---
// # Markdown content here
//
// A document without a leading "---" has no metadata; the whole input is
// the body. An opening delimiter without a closing one is an error.
// yaml.v3 decodes unquoted dates such as 2024-05-01 to time.Time; those
// values are turned back into strings with FormatDate, at any depth.
func ParseFrontmatter(content []byte) (map[string]interface{}, string, error) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return map[string]interface{}{}, string(content), nil
	}

	var closingDelim int
	lines := bytes.Split(content, []byte("\n"))

	// Skip the opening "---" line
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			closingDelim = i
			break
		}
	}

	if closingDelim == 0 {
		return nil, "", errors.New("missing closing frontmatter delimiter '---'")
	}

	yamlContent := bytes.Join(lines[1:closingDelim], []byte("\n"))

	var metadata map[string]interface{}
	if err := yaml.Unmarshal(yamlContent, &metadata); err != nil {
		return nil, "", fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	for k, v := range metadata {
		metadata[k] = stringifyTimes(v)
	}

	markdownContent := string(bytes.Join(lines[closingDelim+1:], []byte("\n")))

	return metadata, markdownContent, nil
}

// FormatDate renders t as a date alone when it has no clock part in UTC,
// otherwise as RFC 3339.
func FormatDate(t time.Time) string {
	if t.Location() == time.UTC && t.Equal(t.Truncate(24*time.Hour)) {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339Nano)
}

func stringifyTimes(v interface{}) interface{} {
	switch val := v.(type) {
	case time.Time:
		return FormatDate(val)
	case map[string]interface{}:
		for k, item := range val {
			val[k] = stringifyTimes(item)
		}
	case []interface{}:
		for i, item := range val {
			val[i] = stringifyTimes(item)
		}
	}
	return v
}

// RenderFrontmatter produces a document with the given metadata block
// followed by body.
func RenderFrontmatter(metadata map[string]interface{}, body string) (string, error) {
	out, err := yaml.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("failed to render YAML frontmatter: %w", err)
	}
	return "---\n" + string(out) + "---\n" + body, nil
}
