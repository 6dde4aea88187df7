package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
)

// ErrTokenExpired is returned by a token source whose JWT has expired.
var ErrTokenExpired = errors.New("token is expired")

// Claims are the JWT claims the console reports about its target token.
type Claims struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email"`
	Username  string    `json:"preferred_username"`
	ExpiresAt time.Time `json:"-"`
}

// Identity returns the most readable name in the claims.
func (c Claims) Identity() string {
	switch {
	case c.Email != "":
		return c.Email
	case c.Username != "":
		return c.Username
	default:
		return c.Subject
	}
}

// ParseClaims decodes the payload of a JWT without verifying its signature.
// The target application verifies tokens; the console only reads them.
func ParseClaims(token string) (Claims, error) {
	// JWT tokens have 3 parts separated by dots: header.payload.signature
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, errors.New("invalid token format")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, fmt.Errorf("failed to decode token payload: %w", err)
	}

	var raw struct {
		Claims
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Claims{}, fmt.Errorf("failed to parse token claims: %w", err)
	}

	claims := raw.Claims
	if raw.Exp > 0 {
		claims.ExpiresAt = time.Unix(raw.Exp, 0).UTC()
	}
	return claims, nil
}

// staticSource hands out one bearer token until it expires.
type staticSource struct {
	token *oauth2.Token
	now   func() time.Time
}

func (s *staticSource) Token() (*oauth2.Token, error) {
	if !s.token.Expiry.IsZero() && !s.now().Before(s.token.Expiry) {
		return nil, fmt.Errorf("%w (expired at %s)", ErrTokenExpired, s.token.Expiry.Format(time.RFC3339))
	}
	return s.token, nil
}

// NewTokenSource wraps a configured bearer token. Opaque tokens never expire;
// JWTs expire at their exp claim.
func NewTokenSource(token string) oauth2.TokenSource {
	tok := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	if claims, err := ParseClaims(token); err == nil {
		tok.Expiry = claims.ExpiresAt
	}
	return &staticSource{token: tok, now: time.Now}
}
