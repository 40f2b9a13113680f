package models

// User is the backend's view of an account. The backend owns this record;
// the UI treats it as a value object and never mutates it locally.
type User struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	Nom             string  `json:"nom"`
	ProfilePicture  *string `json:"profile_picture,omitempty"`
	IsActive        bool    `json:"is_active"`
	RoleName        string  `json:"role_name"`
	RoleDescription *string `json:"role_description,omitempty"`
}

// AuthPayload is the response shape of the login and register endpoints.
type AuthPayload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	User         *User  `json:"user"`
}

// TokenPair is the response shape of the refresh endpoint. No user record:
// the backend only rotates credentials here.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// RegisterInput carries the signup form fields forwarded to the backend.
// RoleName is assigned by the caller; the signup form never exposes it.
type RegisterInput struct {
	Nom      string `json:"nom"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleName string `json:"role_name"`
}
