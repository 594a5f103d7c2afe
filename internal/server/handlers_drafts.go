package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/briteco/briteroles/internal/server/middleware"
	"github.com/briteco/briteroles/internal/store"
	"github.com/briteco/briteroles/internal/types"
)

// storeUnavailableMessage is returned when no store is configured.
const storeUnavailableMessage = "Cloud storage is not available."

// SaveResponse is the payload for save-draft and save-role.
type SaveResponse struct {
	Success bool   `json:"success"`
	File    string `json:"file"`
}

// DeleteRequest is the body for the delete endpoints.
type DeleteRequest struct {
	File string `json:"file"`
}

// storeError writes a store-flavored error envelope.
func (s *Server) storeError(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]any{"success": false, "error": message})
}

// storeErrorFrom writes a typed error in the store envelope with the status
// from HTTPStatus.
func (s *Server) storeErrorFrom(w http.ResponseWriter, err error) {
	s.storeError(w, HTTPStatus(err), err.Error())
}

// decodeDocument reads a role document from the request body, defaulting the
// submitter to the authenticated identity when the client omits it.
func (s *Server) decodeDocument(r *http.Request) (*types.RoleDocument, error) {
	var doc types.RoleDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		return nil, &ErrValidation{Field: "body", Message: "Request body is required"}
	}
	doc.Title = strings.TrimSpace(doc.Title)
	if doc.Title == "" {
		return nil, &ErrValidation{Field: "title", Message: "Job title is required"}
	}
	if doc.SavedBy == "" {
		if identity, err := middleware.IdentityFrom(r); err == nil {
			doc.SavedBy = identity.Email
		}
	}
	return &doc, nil
}

// handleSaveDraft upserts a draft document.
func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.storeErrorFrom(w, &ErrServiceUnavailable{Message: storeUnavailableMessage})
		return
	}

	doc, err := s.decodeDocument(r)
	if err != nil {
		s.storeErrorFrom(w, err)
		return
	}

	file, err := s.store.SaveDraft(r.Context(), doc)
	if err != nil {
		log.Printf("[ERROR] save-draft failed: %v", err)
		s.storeErrorFrom(w, &ErrUpstream{Err: err})
		return
	}

	log.Printf("[DRAFT] Saved %s by %s", file, doc.SavedBy)
	s.jsonResponse(w, http.StatusOK, SaveResponse{Success: true, File: file})
}

// handleListDrafts lists draft summaries. Store failures degrade to an empty
// list so the UI shell always loads.
func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	drafts := []types.RoleSummary{}
	if s.store != nil {
		listed, err := s.store.ListDrafts(r.Context())
		if err != nil {
			log.Printf("[ERROR] list-drafts failed: %v", err)
		} else if listed != nil {
			drafts = listed
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "drafts": drafts})
}

// handleLoadDraft fetches one draft document by file name.
func (s *Server) handleLoadDraft(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	if file == "" {
		s.storeErrorFrom(w, &ErrValidation{Field: "file", Message: "File parameter is required"})
		return
	}

	if s.store == nil {
		s.storeErrorFrom(w, &ErrServiceUnavailable{Message: storeUnavailableMessage})
		return
	}

	doc, err := s.store.LoadDraft(r.Context(), file)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Missing drafts surface as unavailable, not 404; the frontend
			// treats them differently from missing saved roles.
			s.storeErrorFrom(w, &ErrServiceUnavailable{Message: "Draft not found"})
			return
		}
		log.Printf("[ERROR] load-draft failed: %v", err)
		s.storeErrorFrom(w, &ErrUpstream{Err: err})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "draft": doc})
}

// handleDeleteDraft removes a draft. Store failures are swallowed into a
// reported success because cleanup must never block the user flow.
func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.File == "" {
		s.storeErrorFrom(w, &ErrValidation{Field: "file", Message: "File parameter is required"})
		return
	}

	if s.store != nil {
		if err := s.store.DeleteDraft(r.Context(), req.File); err != nil {
			log.Printf("[DRAFT] delete %s reported %v (ignored)", req.File, err)
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}
