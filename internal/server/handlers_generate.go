package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/briteco/briteroles/internal/llm"
	"github.com/briteco/briteroles/internal/prompts"
	"github.com/briteco/briteroles/internal/types"
)

// Generation parameters shared by all three operations.
const (
	generateTemperature = 0.6
	generateMaxTokens   = 1500
	rewriteMaxTokens    = 1000
)

// claudeUnavailableMessage is returned when no generation client is configured.
const claudeUnavailableMessage = "Claude AI is not available. Check ANTHROPIC_API_KEY."

// GenerationResponse is the payload for generate-jd and adapt-jd.
type GenerationResponse struct {
	JobDescription string `json:"job_description"`
	Model          string `json:"model"`
	Tokens         int    `json:"tokens"`
	CostEstimate   string `json:"cost_estimate"`
	LatencyMS      int64  `json:"latency_ms"`
}

// RewriteResponse is the payload for rewrite-section.
type RewriteResponse struct {
	RewrittenContent string `json:"rewritten_content"`
	Model            string `json:"model"`
	Tokens           int    `json:"tokens"`
	CostEstimate     string `json:"cost_estimate"`
	LatencyMS        int64  `json:"latency_ms"`
}

// fieldMessages maps struct field names to user-facing validation messages.
var fieldMessages = map[string]string{
	"Title":      "Job title is required",
	"OriginalJD": "Original job description is required",
	"Content":    "Content is required",
	"Tone":       "Tone is required",
}

// validationMessage picks the user-facing message for a validation failure.
// priority controls which missing field is reported when several are absent.
func validationMessage(err error, priority ...string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		failed[fe.Field()] = true
	}
	for _, field := range priority {
		if failed[field] {
			if msg, ok := fieldMessages[field]; ok {
				return msg
			}
			return fmt.Sprintf("%s is required", field)
		}
	}
	return verrs[0].Error()
}

// handleGenerateJD generates a full job description from form fields.
func (s *Server) handleGenerateJD(w http.ResponseWriter, r *http.Request) {
	if !s.claudeAvailable() {
		s.respondError(w, &ErrServiceUnavailable{Message: claudeUnavailableMessage})
		return
	}

	var req types.RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, &ErrValidation{Field: "body", Message: "Request body is required"})
		return
	}
	req.Trim()

	if err := req.Validate(); err != nil {
		s.respondError(w, &ErrValidation{Message: validationMessage(err, "Title")})
		return
	}

	prompt, err := prompts.BuildGenerate(&req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "AI generation failed: "+err.Error())
		return
	}

	log.Printf("[GENERATE JD] Title: %s | Dept: %s | Level: %s", req.Title, req.Department, req.ExperienceLevel)

	result, err := s.llm.Generate(r.Context(), prompt, prompts.SystemPrompt(), generateTemperature, generateMaxTokens)
	if err != nil {
		log.Printf("[ERROR] generate-jd failed: %v", err)
		s.respondError(w, &ErrUpstream{Err: fmt.Errorf("AI generation failed: %w", err)})
		return
	}

	log.Printf("[GENERATE JD] Done - %d tokens, %dms", result.Tokens, result.LatencyMS)
	s.jsonResponse(w, http.StatusOK, generationResponse(result))
}

// handleAdaptJD rewrites an externally authored job description into the
// company voice.
func (s *Server) handleAdaptJD(w http.ResponseWriter, r *http.Request) {
	if !s.claudeAvailable() {
		s.respondError(w, &ErrServiceUnavailable{Message: claudeUnavailableMessage})
		return
	}

	var req types.AdaptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, &ErrValidation{Field: "body", Message: "Request body is required"})
		return
	}
	req.Trim()

	if err := req.Validate(); err != nil {
		s.respondError(w, &ErrValidation{Message: validationMessage(err, "OriginalJD", "Title")})
		return
	}

	prompt, err := prompts.BuildAdapt(&req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "AI adaptation failed: "+err.Error())
		return
	}

	log.Printf("[ADAPT JD] Title: %s | Original length: %d chars", req.Title, len(req.OriginalJD))

	result, err := s.llm.Generate(r.Context(), prompt, prompts.SystemPrompt(), generateTemperature, generateMaxTokens)
	if err != nil {
		log.Printf("[ERROR] adapt-jd failed: %v", err)
		s.respondError(w, &ErrUpstream{Err: fmt.Errorf("AI adaptation failed: %w", err)})
		return
	}

	log.Printf("[ADAPT JD] Done - %d tokens, %dms", result.Tokens, result.LatencyMS)
	s.jsonResponse(w, http.StatusOK, generationResponse(result))
}

// handleRewriteSection rewrites one section with a different tone.
func (s *Server) handleRewriteSection(w http.ResponseWriter, r *http.Request) {
	if !s.claudeAvailable() {
		s.respondError(w, &ErrServiceUnavailable{Message: claudeUnavailableMessage})
		return
	}

	var req types.RewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, &ErrValidation{Field: "body", Message: "Request body is required"})
		return
	}
	req.Trim()

	if err := req.Validate(); err != nil {
		s.respondError(w, &ErrValidation{Message: validationMessage(err, "Content", "Tone")})
		return
	}

	prompt, err := prompts.BuildRewrite(&req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "AI rewrite failed: "+err.Error())
		return
	}

	log.Printf("[REWRITE] Tone: %s | Content length: %d chars", req.Tone, len(req.Content))

	result, err := s.llm.Generate(r.Context(), prompt, prompts.SystemPrompt(), generateTemperature, rewriteMaxTokens)
	if err != nil {
		log.Printf("[ERROR] rewrite-section failed: %v", err)
		s.respondError(w, &ErrUpstream{Err: fmt.Errorf("AI rewrite failed: %w", err)})
		return
	}

	log.Printf("[REWRITE] Done - %d tokens, %dms", result.Tokens, result.LatencyMS)
	s.jsonResponse(w, http.StatusOK, RewriteResponse{
		RewrittenContent: result.Content,
		Model:            result.Model,
		Tokens:           result.Tokens,
		CostEstimate:     result.CostEstimate,
		LatencyMS:        result.LatencyMS,
	})
}

func (s *Server) claudeAvailable() bool {
	return s.llm != nil && s.llm.Available()
}

func generationResponse(result *llm.Result) GenerationResponse {
	return GenerationResponse{
		JobDescription: result.Content,
		Model:          result.Model,
		Tokens:         result.Tokens,
		CostEstimate:   result.CostEstimate,
		LatencyMS:      result.LatencyMS,
	}
}
