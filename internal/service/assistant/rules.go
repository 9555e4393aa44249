package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/utils"
)

// Rule is one recognised phrase. Apply receives the submatches of a match
// and returns the edited document.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	// Repeat applies the rule to every match instead of the first one only.
	Repeat bool
	// NotAfter lists words that disqualify a match when they directly
	// precede it ("email address" is not an "address").
	NotAfter []string
	Apply    func(doc models.SiteConfiguration, match []string) (models.SiteConfiguration, error)
}

const (
	// a hex color or a single word such as "teal"
	colorValue = `(#[0-9a-fA-F]{3,8}|[a-zA-Z]+)\b`
	// "quoted text" or anything up to " and ", a comma, a semicolon or the end
	textValue = `(?:"([^"]*)"|(.+?))(?:\s+and\s+|\s*[,;]|\s*$)`
	setter    = `(?:\s+(?:to|as)\s+|\s*[=:]\s*)`
	price     = `(\$?\d+(?:\.\d{1,2})?)`
)

// DefaultRules is the built-in catalogue, evaluated in order.
func DefaultRules() []Rule {
	return []Rule{
		colorRule("primary"),
		colorRule("accent"),
		colorRule("background"),
		colorRule("text"),
		textRule("brand name", `(?:brand|business|site) name`, models.SectionBrand, "name"),
		textRule("tagline", `tagline`, models.SectionBrand, "tagline"),
		textRule("phone", `phone(?: number)?`, models.SectionContact, "phone"),
		textRule("email", `email(?: address)?`, models.SectionContact, "email"),
		withNotAfter(textRule("address", `(?:street |postal )?address`, models.SectionContact, "address"), "email", "e-mail"),
		textRule("hero title", `hero (?:title|heading)`, models.SectionHero, "title"),
		textRule("hero subtitle", `hero (?:subtitle|subheading)`, models.SectionHero, "subtitle"),
		textRule("seo title", `seo title`, models.SectionSEO, "title"),
		textRule("seo description", `(?:seo|meta) description`, models.SectionSEO, "description"),
		{
			Name:    "add service",
			Pattern: regexp.MustCompile(`(?i)\badd (?:a |new )?service\s+"([^"]+)"(?:\s+(?:with\s+)?price\s+(?:of\s+)?` + price + `)?`),
			Repeat:  true,
			Apply:   addService,
		},
		{
			Name:    "remove service",
			Pattern: regexp.MustCompile(`(?i)\b(?:remove|delete) (?:the )?service\s+"([^"]+)"`),
			Repeat:  true,
			Apply:   removeService,
		},
		{
			Name:    "service price",
			Pattern: regexp.MustCompile(`(?i)\bset (?:the )?(?:service )?"([^"]+)" price` + setter + price),
			Repeat:  true,
			Apply:   setServicePrice,
		},
	}
}

func colorRule(name string) Rule {
	return Rule{
		Name:    name + " color",
		Pattern: regexp.MustCompile(`(?i)\b` + name + ` colou?r` + setter + colorValue),
		Apply: func(doc models.SiteConfiguration, m []string) (models.SiteConfiguration, error) {
			return doc.WithField(models.SectionTheme, name, m[1]), nil
		},
	}
}

func textRule(name, phrase, section, key string) Rule {
	return Rule{
		Name:    name,
		Pattern: regexp.MustCompile(`(?i)\b` + phrase + setter + textValue),
		Apply: func(doc models.SiteConfiguration, m []string) (models.SiteConfiguration, error) {
			value := m[1]
			if value == "" {
				value = strings.TrimSpace(m[2])
			}
			return doc.WithField(section, key, value), nil
		},
	}
}

func withNotAfter(r Rule, words ...string) Rule {
	r.NotAfter = words
	return r
}

func normalizePrice(p string) string {
	if p == "" || strings.HasPrefix(p, "$") {
		return p
	}
	return "$" + p
}

// services returns a copy of the services array. A missing or malformed
// section is treated as empty.
func services(doc models.SiteConfiguration) []interface{} {
	list, _ := doc[models.SectionServices].([]interface{})
	out := make([]interface{}, len(list))
	copy(out, list)
	return out
}

func serviceMatches(item interface{}, name string) (map[string]interface{}, bool) {
	m, ok := item.(map[string]interface{})
	if !ok {
		return nil, false
	}
	id, _ := m["id"].(string)
	n, _ := m["name"].(string)
	return m, strings.EqualFold(n, name) || (id != "" && id == utils.Slugify(name))
}

func withServices(doc models.SiteConfiguration, list []interface{}) models.SiteConfiguration {
	out := doc.Clone()
	out[models.SectionServices] = list
	return out
}

func addService(doc models.SiteConfiguration, m []string) (models.SiteConfiguration, error) {
	name := strings.TrimSpace(m[1])
	if name == "" {
		return nil, fmt.Errorf("service name cannot be empty")
	}
	list := services(doc)

	for i, item := range list {
		if existing, ok := serviceMatches(item, name); ok {
			// adding an existing service only updates its price
			updated := make(map[string]interface{}, len(existing))
			for k, v := range existing {
				updated[k] = v
			}
			if m[2] != "" {
				updated["price"] = normalizePrice(m[2])
			}
			list[i] = updated
			return withServices(doc, list), nil
		}
	}

	item := map[string]interface{}{
		"id":   utils.Slugify(name),
		"name": name,
	}
	if m[2] != "" {
		item["price"] = normalizePrice(m[2])
	}
	return withServices(doc, append(list, item)), nil
}

func removeService(doc models.SiteConfiguration, m []string) (models.SiteConfiguration, error) {
	list := services(doc)
	kept := make([]interface{}, 0, len(list))
	for _, item := range list {
		if _, ok := serviceMatches(item, m[1]); !ok {
			kept = append(kept, item)
		}
	}
	return withServices(doc, kept), nil
}

func setServicePrice(doc models.SiteConfiguration, m []string) (models.SiteConfiguration, error) {
	list := services(doc)
	for i, item := range list {
		existing, ok := serviceMatches(item, m[1])
		if !ok {
			continue
		}
		updated := make(map[string]interface{}, len(existing))
		for k, v := range existing {
			updated[k] = v
		}
		updated["price"] = normalizePrice(m[2])
		list[i] = updated
	}
	return withServices(doc, list), nil
}
