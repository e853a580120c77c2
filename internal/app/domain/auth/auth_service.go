package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
	"github.com/FACorreiaa/go-petportal/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-petportal/internal/app/upstream"
	"github.com/FACorreiaa/go-petportal/internal/app/validation"
)

// AuthAPI is the part of the upstream API that authenticates users.
type AuthAPI interface {
	Login(ctx context.Context, form models.LoginForm) (*models.AuthResponse, error)
	Register(ctx context.Context, form models.RegisterForm) error
}

var _ AuthService = (*AuthServiceImpl)(nil)

type AuthService interface {
	Login(ctx context.Context, form models.LoginForm) (*models.Session, error)
	Register(ctx context.Context, form models.RegisterForm) error
}

var loginMessages = validation.Messages{
	"email.notblank":    "Email is required",
	"password.required": "Password is required",
}

var registerMessages = validation.Messages{
	"username.notblank":  "Username is required",
	"username.min":       "Username must be at least 3 characters",
	"username.max":       "Username must be less than 50 characters",
	"email.notblank":     "Email is required",
	"email.simple_email": "Please enter a valid email address",
	"password.required":  "Password is required",
	"password.min":       "Password must be at least 6 characters",
	"role.oneof":         "Role must be user or admin",
}

type AuthServiceImpl struct {
	api       AuthAPI
	validator *validation.Validator
	logger    *zap.Logger
}

func NewAuthService(api AuthAPI, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		api:       api,
		validator: validation.New(),
		logger:    logger,
	}
}

// Login validates the form and exchanges the credentials for a session.
// Validation failures are returned as validation.FieldErrors without
// contacting the upstream API.
func (s *AuthServiceImpl) Login(ctx context.Context, form models.LoginForm) (*models.Session, error) {
	l := s.logger.With(zap.String("method", "Login"), zap.String("email", form.Email))

	if err := s.validator.Struct(form, loginMessages); err != nil {
		recordAuth(ctx, "login", err)
		return nil, err
	}

	resp, err := s.api.Login(ctx, form)
	if err != nil {
		l.Warn("Login rejected", zap.Error(err))
		recordAuth(ctx, "login", err)
		return nil, err
	}

	l.Info("User logged in", zap.Int64("user_id", resp.User.ID), zap.String("role", string(resp.User.Role)))
	recordAuth(ctx, "login", nil)
	return &models.Session{Token: resp.Token, User: resp.User}, nil
}

// Register validates the form and creates the account upstream. An empty
// role registers a regular user.
func (s *AuthServiceImpl) Register(ctx context.Context, form models.RegisterForm) error {
	l := s.logger.With(zap.String("method", "Register"), zap.String("email", form.Email))

	if form.Role == "" {
		form.Role = models.RoleUser
	}
	if err := s.validator.Struct(form, registerMessages); err != nil {
		recordAuth(ctx, "register", err)
		return err
	}

	if err := s.api.Register(ctx, form); err != nil {
		l.Warn("Registration rejected", zap.Error(err))
		recordAuth(ctx, "register", err)
		return err
	}

	l.Info("User registered", zap.String("username", form.Username))
	recordAuth(ctx, "register", nil)
	return nil
}

func recordAuth(ctx context.Context, endpoint string, err error) {
	outcome := "success"
	var apiErr *upstream.APIError
	switch {
	case err == nil:
	case errors.Is(err, models.ErrValidation):
		outcome = "invalid"
	case errors.As(err, &apiErr):
		outcome = "rejected"
	default:
		outcome = "error"
	}
	metrics.Get().RecordAuth(ctx, endpoint, outcome)
}
