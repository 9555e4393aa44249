// Package assistant turns free-text admin instructions into edits of the
// site configuration document.
package assistant

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
)

// Mutator applies an ordered rule table. It never persists anything.
type Mutator struct {
	rules  []Rule
	logger *slog.Logger
}

// NewMutator creates a mutator with the given rules, or DefaultRules when
// none are passed.
func NewMutator(logger *slog.Logger, rules ...Rule) *Mutator {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Mutator{rules: rules, logger: logger}
}

// Apply evaluates every rule against instruction in table order and
// returns the edited copy of current plus the list of applied changes.
// Rules match independently; an instruction matching nothing returns an
// unchanged copy and no changes.
func (m *Mutator) Apply(instruction string, current models.SiteConfiguration) (models.SiteConfiguration, []models.AssistantChange, error) {
	doc := current.Clone()
	if doc == nil {
		doc = models.SiteConfiguration{}
	}
	changes := []models.AssistantChange{}

	for _, rule := range m.rules {
		for _, idx := range rule.Pattern.FindAllStringSubmatchIndex(instruction, -1) {
			if precededBy(instruction, idx[0], rule.NotAfter) {
				continue
			}

			match := submatches(instruction, idx)
			next, err := rule.Apply(doc, match)
			if err != nil {
				return nil, nil, fmt.Errorf("rule %q: %w", rule.Name, err)
			}
			doc = next
			changes = append(changes, models.AssistantChange{Rule: rule.Name, Match: strings.TrimSpace(match[0])})

			if !rule.Repeat {
				break
			}
		}
	}

	m.logger.Debug("instruction applied", "rules_matched", len(changes))
	return doc, changes, nil
}

// submatches converts index pairs into strings; unmatched groups are "".
func submatches(s string, idx []int) []string {
	out := make([]string, len(idx)/2)
	for i := range out {
		if idx[2*i] >= 0 {
			out[i] = s[idx[2*i]:idx[2*i+1]]
		}
	}
	return out
}

func precededBy(s string, start int, words []string) bool {
	before := strings.ToLower(strings.TrimSpace(s[:start]))
	for _, w := range words {
		if strings.HasSuffix(before, w) {
			return true
		}
	}
	return false
}
