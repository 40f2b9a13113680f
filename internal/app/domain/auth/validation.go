package auth

import (
	"regexp"
	"strings"
)

// emailShape matches the same loose test the forms always used: something,
// an @, something, a dot, something. Real validation is the backend's job.
var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const (
	minPasswordLength = 8
	minNameLength     = 2
)

// FieldErrors maps form field names to display messages. Validation errors
// never leave the form: no backend call happens while this map is non-empty.
type FieldErrors map[string]string

func (fe FieldErrors) Any() bool { return len(fe) > 0 }

// ValidateLogin checks the login form locally.
func ValidateLogin(email, password string) FieldErrors {
	errs := FieldErrors{}
	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailShape.MatchString(email) {
		errs["email"] = "Invalid email address"
	}
	if password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

// ValidateSignup checks the signup form locally.
func ValidateSignup(nom, email, password, confirmPassword string) FieldErrors {
	errs := FieldErrors{}
	if len(strings.TrimSpace(nom)) < minNameLength {
		errs["nom"] = "Full name must be at least 2 characters"
	}
	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailShape.MatchString(email) {
		errs["email"] = "Invalid email address"
	}
	if password == "" {
		errs["password"] = "Password is required"
	} else if len(password) < minPasswordLength {
		errs["password"] = "Password must be at least 8 characters"
	}
	if confirmPassword == "" {
		errs["confirm_password"] = "Please confirm your password"
	} else if password != confirmPassword {
		errs["confirm_password"] = "Passwords do not match"
	}
	return errs
}
