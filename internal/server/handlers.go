package server

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briteco/briteroles/internal/config"
	"github.com/briteco/briteroles/internal/types"
)

// AppName is reported by the health endpoint and the startup banner.
const AppName = "BriteRoles"

// ConfigResponse is the form configuration payload for the frontend.
type ConfigResponse struct {
	Departments        []string                 `json:"departments"`
	ExperienceLevels   []config.ExperienceLevel `json:"experience_levels"`
	StandardBenefits   []string                 `json:"standard_benefits"`
	CompanyDescription string                   `json:"company_description"`
}

// handleHealth returns server health status for load balancers.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"app":       AppName,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleConfig returns the static form catalog.
func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, ConfigResponse{
		Departments:        config.Departments,
		ExperienceLevels:   config.ExperienceLevels,
		StandardBenefits:   config.StandardBenefits,
		CompanyDescription: config.CompanyDescription,
	})
}

// handleIndex serves the app shell with the authenticated identity injected
// as a window.AUTH_USER script. Anonymous users are redirected to login when
// OAuth is configured.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var identity *types.Identity
	if s.authHandler == nil {
		identity = &types.Identity{Email: s.cfg.DevIdentityEmail(), Name: "Local Dev"}
	} else {
		var err error
		identity, err = s.sessions.IdentityFromRequest(r)
		if err != nil {
			http.Redirect(w, r, "/auth/login", http.StatusFound)
			return
		}
	}

	html, err := os.ReadFile(filepath.Join(s.cfg.StaticDir, "index.html"))
	if err != nil {
		log.Printf("[INDEX] failed to read index.html: %v", err)
		http.Error(w, "index.html not found", http.StatusInternalServerError)
		return
	}

	userJSON, err := json.Marshal(identity)
	if err != nil {
		http.Error(w, "failed to encode identity", http.StatusInternalServerError)
		return
	}

	script := "<script>\n    window.AUTH_USER = " + string(userJSON) + ";\n    </script>\n</head>"
	page := strings.Replace(string(html), "</head>", script, 1)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(page)); err != nil {
		log.Printf("[INDEX] write failed: %v", err)
	}
}
