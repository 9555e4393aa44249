package models

import (
	"encoding/json"
	"time"
)

// Section names of the site configuration document.
const (
	SectionMeta                = "meta"
	SectionTheme               = "theme"
	SectionSEO                 = "seo"
	SectionBrand               = "brand"
	SectionNavigation          = "navigation"
	SectionContact             = "contact"
	SectionHero                = "hero"
	SectionAbout               = "about"
	SectionServices            = "services"
	SectionConsultationOptions = "consultationOptions"
	SectionCrisisResources     = "crisisResources"
	SectionForms               = "forms"
	SectionSocial              = "social"
)

// SiteConfiguration is the single site-wide document. Every top-level key is
// a section holding either an object or an array. Values are kept in their
// decoded JSON form (map[string]interface{}, []interface{}, scalars) so the
// document round-trips through JSONB and the local file unchanged.
//
// Treat a SiteConfiguration as a value: helpers that change it return a new
// document and never modify the receiver.
type SiteConfiguration map[string]interface{}

// ConfigMeta is the reserved meta section stamped on every write.
type ConfigMeta struct {
	Version   string `json:"version,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ConfigVersion is an append-only snapshot of a past document (remote only).
type ConfigVersion struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Data      SiteConfiguration `json:"data"`
}

// WriteResult is returned by a successful write.
type WriteResult struct {
	Version   string    `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceItem is one entry of the services section.
type ServiceItem struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
	Duration    string `json:"duration,omitempty"`
}

// Clone returns a deep copy of the document.
func (c SiteConfiguration) Clone() SiteConfiguration {
	if c == nil {
		return nil
	}
	out := make(SiteConfiguration, len(c))
	for k, v := range c {
		out[k] = cloneValue(v)
	}
	return out
}

// Section returns the object section with the given name, or nil when the
// section is absent or not an object. The returned map must not be modified.
func (c SiteConfiguration) Section(name string) map[string]interface{} {
	sec, _ := c[name].(map[string]interface{})
	return sec
}

// String returns a string field of an object section.
func (c SiteConfiguration) String(section, key string) string {
	s, _ := c.Section(section)[key].(string)
	return s
}

// WithField returns a copy of the document with section.key set to value.
// A missing or non-object section is replaced by a new object.
func (c SiteConfiguration) WithField(section, key string, value interface{}) SiteConfiguration {
	out := c.Clone()
	if out == nil {
		out = SiteConfiguration{}
	}
	sec, ok := out[section].(map[string]interface{})
	if !ok {
		sec = map[string]interface{}{}
	}
	sec[key] = cloneValue(value)
	out[section] = sec
	return out
}

// Meta extracts the meta section.
func (c SiteConfiguration) Meta() ConfigMeta {
	return ConfigMeta{
		Version:   c.String(SectionMeta, "version"),
		UpdatedAt: c.String(SectionMeta, "updatedAt"),
	}
}

// WithMeta returns a copy of the document carrying meta.
func (c SiteConfiguration) WithMeta(meta ConfigMeta) SiteConfiguration {
	out := c.Clone()
	if out == nil {
		out = SiteConfiguration{}
	}
	sec := map[string]interface{}{}
	for k, v := range out.Section(SectionMeta) {
		sec[k] = v
	}
	if meta.Version != "" {
		sec["version"] = meta.Version
	}
	if meta.UpdatedAt != "" {
		sec["updatedAt"] = meta.UpdatedAt
	}
	out[SectionMeta] = sec
	return out
}

// WithoutMeta returns a copy of the document without the meta section.
func (c SiteConfiguration) WithoutMeta() SiteConfiguration {
	out := c.Clone()
	delete(out, SectionMeta)
	return out
}

// Services extracts the services section with type safety
func (c SiteConfiguration) Services() ([]ServiceItem, error) {
	raw, ok := c[SectionServices]
	if !ok || raw == nil {
		return []ServiceItem{}, nil
	}

	// Re-marshal to ensure type safety
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	var items []ServiceItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// WithServices returns a copy of the document with the services section replaced.
func (c SiteConfiguration) WithServices(items []ServiceItem) (SiteConfiguration, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	var list []interface{}
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []interface{}{}
	}

	out := c.Clone()
	if out == nil {
		out = SiteConfiguration{}
	}
	out[SectionServices] = list
	return out, nil
}

// Normalize converts an arbitrary Go value (typed structs, nested slices)
// into the decoded JSON form stored in a SiteConfiguration.
func Normalize(v interface{}) (SiteConfiguration, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out SiteConfiguration
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, inner := range t {
			m[k] = cloneValue(inner)
		}
		return m
	case SiteConfiguration:
		return t.Clone()
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, inner := range t {
			s[i] = cloneValue(inner)
		}
		return s
	default:
		return v
	}
}
