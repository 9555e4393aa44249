package models

import "time"

// AssistantChange records one instruction rule that matched.
type AssistantChange struct {
	Rule  string `json:"rule"`
	Match string `json:"match"`
}

// AssistantResult is the outcome of applying an instruction.
type AssistantResult struct {
	Config    SiteConfiguration `json:"config"`
	Changes   []AssistantChange `json:"changes"`
	Saved     bool              `json:"saved"`
	Version   string            `json:"version,omitempty"`
	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
}
