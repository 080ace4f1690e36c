// Package jwt signs and validates the HS256 tokens used for session auth.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultLifetime matches the access cookie max-age.
const DefaultLifetime = 24 * time.Hour

var ErrKeyVersionMismatch = errors.New("token signed with a different key version")

// JWTParams describes the claims of a session token. A zero Lifetime
// falls back to DefaultLifetime.
type JWTParams struct {
	Role     string
	UserID   string
	Lifetime time.Duration
}

// GenerateJWT signs a token carrying the user id as subject and the role
// as a custom claim. The key version goes into the kid header so rotated
// secrets invalidate old tokens.
func GenerateJWT(params JWTParams, secret []byte, version string) (string, error) {
	lifetime := params.Lifetime
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  params.UserID,
		"role": params.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(lifetime).Unix(),
	})
	token.Header["kid"] = version

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateJWT parses and verifies a token, checking that its kid header
// matches the current key version.
func ValidateJWT(rawToken, version string, secret []byte) (*jwt.Token, error) {
	return jwt.Parse(rawToken, func(token *jwt.Token) (any, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, errors.New("missing kid header")
		}
		if kid != version {
			return nil, fmt.Errorf("%w: kid=%q", ErrKeyVersionMismatch, kid)
		}
		return secret, nil
	})
}
