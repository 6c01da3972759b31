package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can read out of the catalog API's session token.
type TokenInfo struct {
	UserID   *int
	Username string
	IssuedAt *time.Time
}

// InspectToken decodes the claims of a remote session token without verifying its
// signature. The client has no key for it and treats the token as opaque; the claims
// only enrich the local session for display.
func InspectToken(token string) (*TokenInfo, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("token is empty")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token claims: %w", err)
	}

	info := &TokenInfo{}
	if id, ok := numericClaim(claims["sub"]); ok {
		info.UserID = &id
	}
	if user, ok := claims["user"].(string); ok {
		info.Username = user
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		issued := iat.Time.UTC()
		info.IssuedAt = &issued
	}
	return info, nil
}

func numericClaim(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return id, true
	}
	return 0, false
}
