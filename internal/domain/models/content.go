package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ContentType partitions content entries. Slugs are unique per type.
type ContentType string

const (
	ContentPosts  ContentType = "posts"
	ContentVideos ContentType = "videos"
)

// ContentTypes lists every supported type.
var ContentTypes = []ContentType{ContentPosts, ContentVideos}

// ParseContentType validates a path or CLI value.
func ParseContentType(s string) (ContentType, error) {
	for _, t := range ContentTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown content type %q", s)
}

// Singular is used in user-facing messages ("post", "video").
func (t ContentType) Singular() string {
	switch t {
	case ContentPosts:
		return "post"
	case ContentVideos:
		return "video"
	default:
		return string(t)
	}
}

// ContentEntry is one markdown document (front matter + body).
type ContentEntry struct {
	Type      ContentType            `json:"type"`
	Slug      string                 `json:"slug"`
	Body      string                 `json:"body"`                // Raw text including front matter
	Source    string                 `json:"source"`              // "remote" or "local"
	Metadata  map[string]interface{} `json:"metadata,omitempty"`  // Parsed front matter
	Content   string                 `json:"content,omitempty"`   // Markdown after front matter
	UpdatedAt *time.Time             `json:"updatedAt,omitempty"` // Remote rows only
}

// ContentSummary is a listing row: the slug plus every front matter field.
type ContentSummary struct {
	Slug   string
	Source string
	Fields map[string]interface{}
}

// MarshalJSON flattens front matter fields next to slug and source
func (s ContentSummary) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(s.Fields)+2)
	for k, v := range s.Fields {
		m[k] = v
	}
	m["slug"] = s.Slug
	m["source"] = s.Source
	return json.Marshal(m)
}

// SaveResult reports where an update landed.
type SaveResult struct {
	OK      bool   `json:"ok"`
	SavedTo string `json:"savedTo"`
}
