package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
	"github.com/FACorreiaa/go-petportal/internal/app/upstream"
	"github.com/FACorreiaa/go-petportal/internal/app/validation"
)

// MockAuthAPI is a mock implementation of the AuthAPI interface
type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, form models.LoginForm) (*models.AuthResponse, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, form models.RegisterForm) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func validRegisterForm() models.RegisterForm {
	return models.RegisterForm{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "secret1",
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("valid form defaults role and calls upstream", func(t *testing.T) {
		api := new(MockAuthAPI)
		service := NewAuthService(api, zap.NewNop())

		want := validRegisterForm()
		want.Role = models.RoleUser
		api.On("Register", ctx, want).Return(nil)

		err := service.Register(ctx, validRegisterForm())
		assert.NoError(t, err)
		api.AssertExpectations(t)
	})

	tests := []struct {
		name   string
		mutate func(*models.RegisterForm)
		want   validation.FieldErrors
	}{
		{
			name:   "username too short",
			mutate: func(f *models.RegisterForm) { f.Username = "ab" },
			want:   validation.FieldErrors{"username": "Username must be at least 3 characters"},
		},
		{
			name:   "username blank",
			mutate: func(f *models.RegisterForm) { f.Username = "   " },
			want:   validation.FieldErrors{"username": "Username is required"},
		},
		{
			name: "username too long",
			mutate: func(f *models.RegisterForm) {
				f.Username = "abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijk"
			},
			want: validation.FieldErrors{"username": "Username must be less than 50 characters"},
		},
		{
			name:   "malformed email",
			mutate: func(f *models.RegisterForm) { f.Email = "not-an-email" },
			want:   validation.FieldErrors{"email": "Please enter a valid email address"},
		},
		{
			name:   "short password",
			mutate: func(f *models.RegisterForm) { f.Password = "12345" },
			want:   validation.FieldErrors{"password": "Password must be at least 6 characters"},
		},
		{
			name:   "unknown role",
			mutate: func(f *models.RegisterForm) { f.Role = "owner" },
			want:   validation.FieldErrors{"role": "Role must be user or admin"},
		},
		{
			name: "all violations at once",
			mutate: func(f *models.RegisterForm) {
				*f = models.RegisterForm{}
			},
			want: validation.FieldErrors{
				"username": "Username is required",
				"email":    "Email is required",
				"password": "Password is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockAuthAPI)
			service := NewAuthService(api, zap.NewNop())

			form := validRegisterForm()
			tt.mutate(&form)
			err := service.Register(ctx, form)

			var fields validation.FieldErrors
			require.ErrorAs(t, err, &fields)
			assert.Equal(t, tt.want, fields)
			api.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
		})
	}

	t.Run("boundary lengths pass", func(t *testing.T) {
		api := new(MockAuthAPI)
		service := NewAuthService(api, zap.NewNop())
		api.On("Register", ctx, mock.Anything).Return(nil)

		form := validRegisterForm()
		form.Username = "abc"
		form.Email = "a@b.co"
		form.Password = "123456"
		assert.NoError(t, service.Register(ctx, form))

		form.Username = "abcdefghijabcdefghijabcdefghijabcdefghijabcdefghij"
		assert.NoError(t, service.Register(ctx, form))
	})

	t.Run("upstream rejection is returned", func(t *testing.T) {
		api := new(MockAuthAPI)
		service := NewAuthService(api, zap.NewNop())
		api.On("Register", ctx, mock.Anything).Return(&upstream.APIError{Status: 409, Message: "Email already in use"})

		err := service.Register(ctx, validRegisterForm())
		apiErr, ok := upstream.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, 409, apiErr.Status)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	form := models.LoginForm{Email: "maria@example.com", Password: "secret1"}

	t.Run("success builds a session", func(t *testing.T) {
		api := new(MockAuthAPI)
		service := NewAuthService(api, zap.NewNop())
		api.On("Login", ctx, form).Return(&models.AuthResponse{
			Token: "tok-1",
			User:  models.User{ID: 3, Username: "maria", Role: models.RoleUser},
		}, nil)

		sess, err := service.Login(ctx, form)
		require.NoError(t, err)
		assert.Equal(t, "tok-1", sess.Token)
		assert.Equal(t, int64(3), sess.User.ID)
	})

	t.Run("missing fields skip the upstream", func(t *testing.T) {
		api := new(MockAuthAPI)
		service := NewAuthService(api, zap.NewNop())

		_, err := service.Login(ctx, models.LoginForm{Email: " "})
		var fields validation.FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.Equal(t, validation.FieldErrors{"email": "Email is required", "password": "Password is required"}, fields)
		api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("transport failure", func(t *testing.T) {
		api := new(MockAuthAPI)
		service := NewAuthService(api, zap.NewNop())
		api.On("Login", ctx, form).Return(nil, &upstream.TransportError{Op: "users.login", Err: errors.New("connection refused")})

		_, err := service.Login(ctx, form)
		assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	})
}
