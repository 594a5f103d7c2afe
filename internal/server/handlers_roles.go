package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/briteco/briteroles/internal/store"
	"github.com/briteco/briteroles/internal/types"
)

// handleSaveRole upserts a finalized role. Saving also promotes the document
// out of the drafts prefix: the store deletes any draft with the same slug.
func (s *Server) handleSaveRole(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.storeErrorFrom(w, &ErrServiceUnavailable{Message: storeUnavailableMessage})
		return
	}

	doc, err := s.decodeDocument(r)
	if err != nil {
		s.storeErrorFrom(w, err)
		return
	}

	file, err := s.store.SaveRole(r.Context(), doc)
	if err != nil {
		log.Printf("[ERROR] save-role failed: %v", err)
		s.storeErrorFrom(w, &ErrUpstream{Err: err})
		return
	}

	log.Printf("[ROLE] Saved %s by %s", file, doc.SavedBy)
	s.jsonResponse(w, http.StatusOK, SaveResponse{Success: true, File: file})
}

// handleListRoles lists saved-role summaries with the same degrade-to-empty
// semantics as drafts.
func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles := []types.RoleSummary{}
	if s.store != nil {
		listed, err := s.store.ListRoles(r.Context())
		if err != nil {
			log.Printf("[ERROR] list-saved-roles failed: %v", err)
		} else if listed != nil {
			roles = listed
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "roles": roles})
}

// handleLoadRole fetches one saved role by file name. Unlike drafts, a
// missing role is a 404.
func (s *Server) handleLoadRole(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	if file == "" {
		s.storeErrorFrom(w, &ErrValidation{Field: "file", Message: "File parameter is required"})
		return
	}

	if s.store == nil {
		s.storeErrorFrom(w, &ErrServiceUnavailable{Message: storeUnavailableMessage})
		return
	}

	doc, err := s.store.LoadRole(r.Context(), file)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.storeErrorFrom(w, &ErrNotFound{Resource: "Role"})
			return
		}
		log.Printf("[ERROR] load-saved-role failed: %v", err)
		s.storeErrorFrom(w, &ErrUpstream{Err: err})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "role": doc})
}

// handleDeleteRole removes a saved role with swallowed failures, matching the
// draft delete semantics.
func (s *Server) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.File == "" {
		s.storeErrorFrom(w, &ErrValidation{Field: "file", Message: "File parameter is required"})
		return
	}

	if s.store != nil {
		if err := s.store.DeleteRole(r.Context(), req.File); err != nil {
			log.Printf("[ROLE] delete %s reported %v (ignored)", req.File, err)
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}
