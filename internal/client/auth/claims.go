// Package auth reads the session token issued by the backend. The client
// cannot verify the signature (the secret lives on the server), so claims
// are only used to label the session and to detect an expired token early.
package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the backend payload: {"user":{"id":...}, "exp":...}.
type Claims struct {
	jwt.RegisteredClaims
	User struct {
		ID string `json:"id"`
	} `json:"user"`
}

// ParseClaims decodes the token payload without verifying its signature.
func ParseClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.User.ID == "" {
		return nil, fmt.Errorf("%w: no user id", common.ErrInvalidToken)
	}

	return claims, nil
}

// UserIDFromToken returns the user id of a token that has not expired.
func UserIDFromToken(tokenString string, now time.Time) (string, error) {
	claims, err := ParseClaims(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Expired(now) {
		return "", common.ErrTokenExpired
	}
	return claims.User.ID, nil
}

// Expired reports whether the token carries an expiry before now.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}
