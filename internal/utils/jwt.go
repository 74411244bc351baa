// Package utils holds small helpers shared across handlers: admin
// token issuing and booking reference generation.
package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken issues a signed HS256 token for the admin CMS.
// The subject is the operator's email; the role claim is checked by
// the RequireRole middleware.
func GenerateAccessToken(subject, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}
