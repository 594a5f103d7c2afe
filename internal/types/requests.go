// Package types provides type definitions for structured data used throughout the BriteRoles system.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Work type lines derived from the remote/hybrid flags. Remote wins when both are set.
const (
	WorkTypeRemoteLine = "- Work Type: Fully Remote\n"
	WorkTypeHybridLine = "- Work Type: Hybrid (remote + in-office)\n"
)

// RoleRequest represents the form input for generating a job description.
type RoleRequest struct {
	Title           string `json:"title" validate:"required"`
	Department      string `json:"department,omitempty"`
	ReportsTo       string `json:"reports_to,omitempty"`
	Location        string `json:"location,omitempty"`
	ExperienceLevel string `json:"experience_level,omitempty"`
	IsRemote        bool   `json:"is_remote,omitempty"`
	IsHybrid        bool   `json:"is_hybrid,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// AdaptRequest represents a request to rewrite an externally authored job
// description into BriteCo's voice.
type AdaptRequest struct {
	RoleRequest
	OriginalJD string `json:"original_jd" validate:"required"`
}

// RewriteRequest represents a request to rewrite one section of a job
// description with a different tone.
type RewriteRequest struct {
	Content string `json:"content" validate:"required"`
	Tone    string `json:"tone" validate:"required"`
}

// Trim strips surrounding whitespace from all string fields.
func (r *RoleRequest) Trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Department = strings.TrimSpace(r.Department)
	r.ReportsTo = strings.TrimSpace(r.ReportsTo)
	r.Location = strings.TrimSpace(r.Location)
	r.ExperienceLevel = strings.TrimSpace(r.ExperienceLevel)
	r.Notes = strings.TrimSpace(r.Notes)
}

// Trim strips surrounding whitespace from all string fields.
func (r *AdaptRequest) Trim() {
	r.RoleRequest.Trim()
	r.OriginalJD = strings.TrimSpace(r.OriginalJD)
}

// Trim strips surrounding whitespace from all string fields.
func (r *RewriteRequest) Trim() {
	r.Content = strings.TrimSpace(r.Content)
	r.Tone = strings.TrimSpace(r.Tone)
}

// WorkTypeLine returns the derived work-type line for the prompt.
// Exactly one line is emitted when either flag is set; is_remote takes
// precedence when both are true. Empty string when neither is set.
func (r *RoleRequest) WorkTypeLine() string {
	switch {
	case r.IsRemote:
		return WorkTypeRemoteLine
	case r.IsHybrid:
		return WorkTypeHybridLine
	default:
		return ""
	}
}

// Validate validates the RoleRequest using the validator.
func (r *RoleRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AdaptRequest using the validator.
func (r *AdaptRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RewriteRequest using the validator.
func (r *RewriteRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
