package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenParser never verifies signatures. The backend holds the signing key;
// this side only reads the exp claim to decide when to ask for a new token.
var tokenParser = jwt.NewParser()

// ExpiresWithin reports whether the access token's exp claim falls inside
// the given window. Tokens that cannot be parsed, or that carry no exp,
// report false: the eventual 401 handles those.
func ExpiresWithin(accessToken string, window time.Duration) bool {
	if accessToken == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := tokenParser.ParseUnverified(accessToken, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < window
}
