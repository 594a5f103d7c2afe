package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/briteco/briteroles/internal/config"
	"github.com/briteco/briteroles/internal/types"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "briteroles_session"

// SessionClaims represents the signed identity stored in the session cookie.
type SessionClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// SessionService issues and validates signed session cookies.
type SessionService struct {
	config config.SessionConfig
	secure bool
}

// NewSessionService creates a session service. secure controls the cookie
// Secure flag and should be false only for plain-HTTP local development.
func NewSessionService(cfg config.SessionConfig, secure bool) *SessionService {
	return &SessionService{config: cfg, secure: secure}
}

// Issue generates a signed session token for the given identity.
func (s *SessionService) Issue(identity *types.Identity) (string, error) {
	now := time.Now()

	claims := &SessionClaims{
		Email:   identity.Email,
		Name:    identity.Name,
		Picture: identity.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Validate parses a session token and returns the embedded identity.
func (s *SessionService) Validate(tokenString string) (*types.Identity, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("session token is empty")
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("session token is not valid")
	}

	return &types.Identity{
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

// IdentityFromRequest resolves the session cookie on a request. This
// implements middleware.SessionValidator.
func (s *SessionService) IdentityFromRequest(r *http.Request) (*types.Identity, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, fmt.Errorf("no session cookie: %w", err)
	}
	return s.Validate(cookie.Value)
}

// Cookie builds the session cookie for a signed token.
func (s *SessionService) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.config.Lifetime.Seconds()),
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie builds an expired cookie that removes the session.
func (s *SessionService) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
