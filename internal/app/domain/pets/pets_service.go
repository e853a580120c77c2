package pets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
	"github.com/FACorreiaa/go-petportal/internal/app/upstream"
	"github.com/FACorreiaa/go-petportal/internal/app/validation"
)

const loadErrorMessage = "Failed to load some data. Please try again."

// PetsAPI is the part of the upstream API the dashboard uses.
type PetsAPI interface {
	ListPets(ctx context.Context, token string) ([]models.Pet, error)
	CreatePet(ctx context.Context, token string, pet models.PetInput) error
	UpdatePet(ctx context.Context, token, id string, pet models.PetInput) error
	DeletePet(ctx context.Context, token, id string) error
	ListUsers(ctx context.Context, token string) ([]models.User, error)
}

var _ PetsService = (*PetsServiceImpl)(nil)

type PetsService interface {
	LoadDashboard(ctx context.Context, sess models.Session) (*models.DashboardData, error)
	AddPet(ctx context.Context, sess models.Session, form models.PetForm) (models.ActionResult, error)
	UpdatePet(ctx context.Context, sess models.Session, id string, form models.PetForm) (models.ActionResult, error)
	DeletePet(ctx context.Context, sess models.Session, id string) (models.ActionResult, error)
}

var petMessages = validation.Messages{
	"age.min": "Age cannot be negative",
}

type PetsServiceImpl struct {
	api       PetsAPI
	validator *validation.Validator
	logger    *zap.Logger
}

func NewPetsService(api PetsAPI, logger *zap.Logger) *PetsServiceImpl {
	return &PetsServiceImpl{
		api:       api,
		validator: validation.New(),
		logger:    logger,
	}
}

// LoadDashboard fetches the caller's pets and, for admins, the user list.
// Both calls run concurrently and neither failure cancels the other.
//
// An upstream 401 from either call invalidates the whole load and is
// reported as models.ErrUnauthenticated. A network or decode failure leaves
// that collection empty and sets the error message; any other non-2xx
// response only leaves the collection empty.
func (s *PetsServiceImpl) LoadDashboard(ctx context.Context, sess models.Session) (*models.DashboardData, error) {
	l := s.logger.With(zap.String("method", "LoadDashboard"), zap.Int64("user_id", sess.User.ID))
	admin := sess.User.Role.IsAdmin()

	var (
		g        errgroup.Group
		pets     []models.Pet
		users    []models.User
		petsErr  error
		usersErr error
	)
	g.Go(func() error {
		pets, petsErr = s.api.ListPets(ctx, sess.Token)
		return nil
	})
	if admin {
		g.Go(func() error {
			users, usersErr = s.api.ListUsers(ctx, sess.Token)
			return nil
		})
	}
	_ = g.Wait()

	if upstream.IsUnauthorized(petsErr) || upstream.IsUnauthorized(usersErr) {
		l.Info("Upstream rejected session token")
		return nil, fmt.Errorf("load dashboard: %w", models.ErrUnauthenticated)
	}

	data := &models.DashboardData{User: sess.User, Pets: []models.Pet{}}
	failed := false

	if petsErr == nil {
		data.Pets = pets
	} else if isFetchFailure(petsErr) {
		l.Warn("Failed to fetch pets", zap.Error(petsErr))
		failed = true
	}

	if admin {
		data.Users = []models.User{}
		if usersErr == nil {
			data.Users = users
		} else if isFetchFailure(usersErr) {
			l.Warn("Failed to fetch users", zap.Error(usersErr))
			failed = true
		}
	}

	if failed {
		data.Error = loadErrorMessage
	}
	return data, nil
}

func (s *PetsServiceImpl) AddPet(ctx context.Context, sess models.Session, form models.PetForm) (models.ActionResult, error) {
	if err := s.validator.Struct(form, petMessages); err != nil {
		return models.ActionResult{}, err
	}
	if err := s.api.CreatePet(ctx, sess.Token, form.Input()); err != nil {
		return models.ActionResult{}, err
	}

	s.logger.Info("Pet added", zap.Int64("user_id", sess.User.ID), zap.String("name", form.Name))
	return models.ActionResult{Success: true, Message: "Pet added successfully!"}, nil
}

func (s *PetsServiceImpl) UpdatePet(ctx context.Context, sess models.Session, id string, form models.PetForm) (models.ActionResult, error) {
	if id == "" {
		return models.ActionResult{}, validation.FieldErrors{"id": "Pet id is required"}
	}
	if err := s.validator.Struct(form, petMessages); err != nil {
		return models.ActionResult{}, err
	}
	if err := s.api.UpdatePet(ctx, sess.Token, id, form.Input()); err != nil {
		return models.ActionResult{}, err
	}

	s.logger.Info("Pet updated", zap.Int64("user_id", sess.User.ID), zap.String("pet_id", id))
	return models.ActionResult{Success: true, Message: "Pet updated successfully!", ID: id}, nil
}

func (s *PetsServiceImpl) DeletePet(ctx context.Context, sess models.Session, id string) (models.ActionResult, error) {
	if id == "" {
		return models.ActionResult{}, validation.FieldErrors{"id": "Pet id is required"}
	}
	if err := s.api.DeletePet(ctx, sess.Token, id); err != nil {
		return models.ActionResult{}, err
	}

	s.logger.Info("Pet deleted", zap.Int64("user_id", sess.User.ID), zap.String("pet_id", id))
	return models.ActionResult{Success: true, Message: "Pet deleted successfully!", ID: id}, nil
}

// isFetchFailure reports whether err means no usable response arrived, as
// opposed to the upstream answering with an error status.
func isFetchFailure(err error) bool {
	if err == nil {
		return false
	}
	_, isAPI := upstream.AsAPIError(err)
	return !isAPI
}
