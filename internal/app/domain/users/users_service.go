package users

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
	"github.com/FACorreiaa/go-petportal/internal/app/upstream"
)

const loadErrorMessage = "Failed to load users. Please try again."

type UsersAPI interface {
	ListUsers(ctx context.Context, token string) ([]models.User, error)
}

var _ UsersService = (*UsersServiceImpl)(nil)

type UsersService interface {
	LoadAdmin(ctx context.Context, sess models.Session) (*models.AdminData, error)
}

type UsersServiceImpl struct {
	api    UsersAPI
	logger *zap.Logger
}

func NewUsersService(api UsersAPI, logger *zap.Logger) *UsersServiceImpl {
	return &UsersServiceImpl{api: api, logger: logger}
}

// LoadAdmin lists every user for an admin session. Non-admins get
// models.ErrForbidden without an upstream call.
func (s *UsersServiceImpl) LoadAdmin(ctx context.Context, sess models.Session) (*models.AdminData, error) {
	if !sess.User.Role.IsAdmin() {
		return nil, fmt.Errorf("load admin: %w", models.ErrForbidden)
	}

	data := &models.AdminData{User: sess.User, Users: []models.User{}}
	users, err := s.api.ListUsers(ctx, sess.Token)
	if err == nil {
		data.Users = users
		return data, nil
	}

	apiErr, isAPI := upstream.AsAPIError(err)
	switch {
	case isAPI && apiErr.Status == 401:
		return nil, fmt.Errorf("load admin: %w", models.ErrUnauthenticated)
	case isAPI:
		s.logger.Info("Upstream refused user list", zap.Int("status", apiErr.Status))
	default:
		s.logger.Warn("Failed to fetch users", zap.Error(err))
		data.Error = loadErrorMessage
	}
	return data, nil
}
