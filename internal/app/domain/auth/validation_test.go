package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLogin(t *testing.T) {
	t.Run("accepts valid credentials", func(t *testing.T) {
		errs := ValidateLogin("user@example.com", "password1")
		assert.False(t, errs.Any())
	})

	t.Run("rejects missing email", func(t *testing.T) {
		errs := ValidateLogin("", "password1")
		assert.True(t, errs.Any())
		assert.Contains(t, errs, "email")
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		for _, email := range []string{"plainaddress", "missing@tld", "@nodomain.com", "spaces in@mail.com"} {
			errs := ValidateLogin(email, "password1")
			assert.Contains(t, errs, "email", "email %q should be rejected", email)
		}
	})

	t.Run("rejects empty password", func(t *testing.T) {
		errs := ValidateLogin("user@example.com", "")
		assert.Contains(t, errs, "password")
	})
}

func TestValidateSignup(t *testing.T) {
	t.Run("accepts a complete valid form", func(t *testing.T) {
		errs := ValidateSignup("Ada", "ada@example.com", "password1", "password1")
		assert.False(t, errs.Any())
	})

	t.Run("rejects short name", func(t *testing.T) {
		errs := ValidateSignup("A", "ada@example.com", "password1", "password1")
		assert.Contains(t, errs, "nom")
	})

	t.Run("rejects mismatched confirmation", func(t *testing.T) {
		errs := ValidateSignup("Ada", "ada@example.com", "password1", "password2")
		assert.Equal(t, "Passwords do not match", errs["confirm_password"])
	})

	t.Run("reports every broken field at once", func(t *testing.T) {
		errs := ValidateSignup("", "not-an-email", "short", "different")
		assert.Contains(t, errs, "nom")
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "password")
		assert.Contains(t, errs, "confirm_password")
	})
}
