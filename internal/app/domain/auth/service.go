package auth

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/nouhaa3/invisithreat/internal/app/models"
	"github.com/nouhaa3/invisithreat/internal/pkg/api"
)

// DefaultRoleName is assigned to every self-service signup. Role selection
// is not user-facing; admins promote accounts on the backend.
const DefaultRoleName = "Viewer"

// Ensure implementation satisfies the interface
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService is the credential-exchange surface against the backend.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.AuthPayload, error)
	Register(ctx context.Context, input models.RegisterInput) (*models.AuthPayload, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Me(ctx context.Context, accessToken string) (*models.User, error)
}

// AuthServiceImpl provides the implementation for AuthService.
type AuthServiceImpl struct {
	client *api.Client
	logger *zap.Logger
}

// NewAuthService creates a new authentication service instance.
func NewAuthService(client *api.Client, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{client: client, logger: logger}
}

// Login exchanges credentials for a token pair. The backend speaks the
// OAuth2 password grant: form-encoded, with the email in the username field.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*models.AuthPayload, error) {
	l := s.logger.With(zap.String("method", "Login"), zap.String("email", email))
	l.Debug("Attempting login")

	tracer := otel.Tracer("invisithreat-webui")
	ctx, span := tracer.Start(ctx, "AuthService.Login", trace.WithAttributes(
		attribute.String("email", email),
	))
	defer span.End()

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var payload models.AuthPayload
	if err := s.client.PostForm(ctx, api.LoginPath, form, &payload); err != nil {
		span.SetStatus(codes.Error, "login rejected")
		l.Warn("Login rejected by backend", zap.Error(err))
		return nil, err
	}

	l.Info("Login successful")
	return &payload, nil
}

// Register creates an account and returns the same payload shape as Login,
// so a fresh signup lands directly in an authenticated session.
func (s *AuthServiceImpl) Register(ctx context.Context, input models.RegisterInput) (*models.AuthPayload, error) {
	l := s.logger.With(zap.String("method", "Register"), zap.String("email", input.Email))
	l.Debug("Attempting registration")

	tracer := otel.Tracer("invisithreat-webui")
	ctx, span := tracer.Start(ctx, "AuthService.Register", trace.WithAttributes(
		attribute.String("email", input.Email),
	))
	defer span.End()

	if input.RoleName == "" {
		input.RoleName = DefaultRoleName
	}

	var payload models.AuthPayload
	if err := s.client.PostJSON(ctx, api.RegisterPath, input, &payload); err != nil {
		span.SetStatus(codes.Error, "registration rejected")
		l.Warn("Registration rejected by backend", zap.Error(err))
		return nil, err
	}

	l.Info("Registration successful")
	return &payload, nil
}

// Refresh exchanges the refresh credential for a new access token. The
// backend rotates the refresh token as well.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	l := s.logger.With(zap.String("method", "Refresh"))
	l.Debug("Refreshing access token")

	tracer := otel.Tracer("invisithreat-webui")
	ctx, span := tracer.Start(ctx, "AuthService.Refresh")
	defer span.End()

	body := map[string]string{"refresh_token": refreshToken}
	var pair models.TokenPair
	if err := s.client.PostJSON(ctx, api.RefreshPath, body, &pair); err != nil {
		span.SetStatus(codes.Error, "refresh rejected")
		l.Warn("Token refresh rejected by backend", zap.Error(err))
		return nil, err
	}

	l.Info("Access token refreshed")
	return &pair, nil
}

// Me fetches the current account record for the given access token.
func (s *AuthServiceImpl) Me(ctx context.Context, accessToken string) (*models.User, error) {
	tracer := otel.Tracer("invisithreat-webui")
	ctx, span := tracer.Start(ctx, "AuthService.Me")
	defer span.End()

	var user models.User
	if err := s.client.GetJSON(api.WithToken(ctx, accessToken), api.MePath, &user); err != nil {
		span.SetStatus(codes.Error, "me rejected")
		return nil, err
	}
	return &user, nil
}
