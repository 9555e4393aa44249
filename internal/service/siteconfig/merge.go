package siteconfig

import "github.com/huntrbrooks/Money-sub001/internal/domain/models"

// Merge overlays loaded on defaults one section at a time and returns a
// new document. Neither argument is modified.
//
// For each top-level section:
//   - object over object: the default section is copied and the loaded
//     keys replace it key by key. Nested values are replaced whole.
//   - array over array: the loaded array replaces the default.
//   - a loaded value of the wrong shape, or null, keeps the default.
//   - sections without a default are kept as loaded.
func Merge(defaults, loaded models.SiteConfiguration) models.SiteConfiguration {
	out := defaults.Clone()
	if out == nil {
		out = models.SiteConfiguration{}
	}

	for name, value := range loaded.Clone() {
		def, known := out[name]
		if !known {
			out[name] = value
			continue
		}

		switch d := def.(type) {
		case map[string]interface{}:
			sec, ok := value.(map[string]interface{})
			if !ok {
				continue
			}
			for k, v := range sec {
				d[k] = v
			}
		case []interface{}:
			if arr, ok := value.([]interface{}); ok {
				out[name] = arr
			}
		default:
			if value != nil {
				out[name] = value
			}
		}
	}

	return out
}
