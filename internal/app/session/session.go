// Package session holds the authenticated state for the current browser.
// Everything lives in the encrypted session cookie, so "restore on load" is
// simply the session middleware decoding the cookie on each request. Every
// mutation goes through SaveAuth, UpdateTokens, or Logout; nothing else may
// touch the three keys, including the expired-credential path.
package session

import (
	"encoding/json"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/nouhaa3/invisithreat/internal/app/models"
)

// Storage keys, matching the backend's token vocabulary.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUser         = "user"
)

// SaveAuth persists a successful login or register response, overwriting any
// prior values. This is the only unauthenticated -> authenticated transition.
func SaveAuth(c *gin.Context, payload *models.AuthPayload) error {
	userJSON, err := json.Marshal(payload.User)
	if err != nil {
		return errors.Wrap(err, "serialize user")
	}

	s := sessions.Default(c)
	s.Set(keyAccessToken, payload.AccessToken)
	s.Set(keyRefreshToken, payload.RefreshToken)
	s.Set(keyUser, string(userJSON))
	return errors.Wrap(s.Save(), "save session")
}

// UpdateTokens swaps in a renewed credential pair without touching the
// stored user. An empty refresh token keeps the current one.
func UpdateTokens(c *gin.Context, pair *models.TokenPair) error {
	s := sessions.Default(c)
	s.Set(keyAccessToken, pair.AccessToken)
	if pair.RefreshToken != "" {
		s.Set(keyRefreshToken, pair.RefreshToken)
	}
	return errors.Wrap(s.Save(), "save session")
}

// UpdateUser refreshes the stored user record in place.
func UpdateUser(c *gin.Context, user *models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "serialize user")
	}
	s := sessions.Default(c)
	s.Set(keyUser, string(userJSON))
	return errors.Wrap(s.Save(), "save session")
}

// Logout removes all three keys. Both the explicit logout action and the
// expired-credential teardown run through here so in-memory and persisted
// state cannot diverge.
func Logout(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(keyAccessToken)
	s.Delete(keyRefreshToken)
	s.Delete(keyUser)
	return errors.Wrap(s.Save(), "save session")
}

// AccessToken returns the stored bearer credential, or "".
func AccessToken(c *gin.Context) string {
	token, _ := sessions.Default(c).Get(keyAccessToken).(string)
	return token
}

// RefreshToken returns the stored refresh credential, or "".
func RefreshToken(c *gin.Context) string {
	token, _ := sessions.Default(c).Get(keyRefreshToken).(string)
	return token
}

// CurrentUser deserializes the stored user. Malformed data reads as no
// session at all rather than an error.
func CurrentUser(c *gin.Context) *models.User {
	raw, _ := sessions.Default(c).Get(keyUser).(string)
	if raw == "" {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// IsAuthenticated reports whether the session holds both a user and an
// access token. One without the other counts as unauthenticated.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUser(c) != nil && AccessToken(c) != ""
}
