package types

import "encoding/json"

// RoleDocument is the JSON document persisted for both drafts and saved roles.
// The role form data and generated sections are stored as raw JSON because the
// backend never interprets them; it only round-trips them for the UI.
type RoleDocument struct {
	Title           string          `json:"title"`
	Role            json.RawMessage `json:"role,omitempty"`
	ExperienceLevel string          `json:"experience_level,omitempty"`
	Sections        json.RawMessage `json:"sections,omitempty"`
	Compensation    string          `json:"compensation,omitempty"`
	Benefits        []string        `json:"benefits,omitempty"`
	SavedBy         string          `json:"savedBy,omitempty"`
	LastSavedBy     string          `json:"last_saved_by,omitempty"`
	LastSavedAt     string          `json:"last_saved_at,omitempty"`
}

// RoleSummary is the projection of a RoleDocument returned by list endpoints.
type RoleSummary struct {
	File            string `json:"file"`
	Title           string `json:"title"`
	ExperienceLevel string `json:"experience_level,omitempty"`
	LastSavedBy     string `json:"last_saved_by,omitempty"`
	LastSavedAt     string `json:"last_saved_at,omitempty"`
}

// Identity holds the authenticated user attributes stored in the session.
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
