package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/briteco/briteroles/internal/types"
)

// stateCookieName carries the OAuth state parameter between the login
// redirect and the callback.
const stateCookieName = "briteroles_oauth_state"

// userInfoURL is Google's OpenID Connect userinfo endpoint.
const userInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// AuthHandler implements the Google OAuth login flow with a single-domain
// allow list.
type AuthHandler struct {
	oauth         *oauth2.Config
	sessions      *SessionService
	allowedDomain string
	secure        bool
}

// NewAuthHandler creates the OAuth handler. Returns nil when no client ID is
// configured, which the server treats as the local development bypass.
func NewAuthHandler(clientID, clientSecret, baseURL, allowedDomain string, sessions *SessionService, secure bool) *AuthHandler {
	if clientID == "" {
		return nil
	}

	return &AuthHandler{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  baseURL + "/auth/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		sessions:      sessions,
		allowedDomain: allowedDomain,
		secure:        secure,
	}
}

// Login redirects to Google's consent screen. Already-authenticated users go
// straight back to the app.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessions.IdentityFromRequest(r); err == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		Secure:   h.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusFound)
}

// Callback completes the OAuth exchange, enforces the email domain allow
// list, and issues the session cookie.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	token, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("[AUTH] token exchange failed: %v", err)
		http.Error(w, fmt.Sprintf("Authentication failed: %v", err), http.StatusInternalServerError)
		return
	}

	identity, err := h.fetchUserInfo(r, token)
	if err != nil {
		log.Printf("[AUTH] userinfo fetch failed: %v", err)
		http.Error(w, "Failed to get user info", http.StatusBadRequest)
		return
	}

	if !strings.HasSuffix(identity.Email, "@"+h.allowedDomain) {
		denied := &ErrAccessDenied{Email: identity.Email}
		log.Printf("[AUTH] %v", denied)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(HTTPStatus(denied))
		fmt.Fprintf(w, accessDeniedPage, h.allowedDomain, identity.Email)
		return
	}

	sessionToken, err := h.sessions.Issue(identity)
	if err != nil {
		log.Printf("[AUTH] session issue failed: %v", err)
		http.Error(w, fmt.Sprintf("Authentication failed: %v", err), http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, h.sessions.Cookie(sessionToken))
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout clears the session and sends the user back to the login screen.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessions.ClearCookie())
	http.Redirect(w, r, "/auth/login", http.StatusFound)
}

func (h *AuthHandler) fetchUserInfo(r *http.Request, token *oauth2.Token) (*types.Identity, error) {
	client := h.oauth.Client(r.Context(), token)
	resp, err := client.Get(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("userinfo returned %d: %s", resp.StatusCode, body)
	}

	var info struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to parse userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("userinfo response contained no email")
	}

	return &types.Identity{
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

// accessDeniedPage is shown to users signing in from outside the allowed
// domain. Format arguments: allowed domain, attempted email.
const accessDeniedPage = `<html>
<head><title>Access Denied</title></head>
<body style="font-family: sans-serif; display: flex; align-items: center; justify-content: center; height: 100vh; margin: 0; background: #272D3F;">
    <div style="text-align: center; color: white; padding: 2rem;">
        <h1 style="color: #FC883A;">Access Denied</h1>
        <p>Only @%s email addresses are allowed.</p>
        <p style="color: #A9C1CB;">You tried to sign in with: %s</p>
        <a href="/auth/login" style="color: #31D7CA;">Try again with a different account</a>
    </div>
</body>
</html>
`
