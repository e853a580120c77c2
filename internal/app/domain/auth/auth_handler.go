package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-petportal/internal/app/handlers"
	"github.com/FACorreiaa/go-petportal/internal/app/middleware"
	"github.com/FACorreiaa/go-petportal/internal/app/models"
	"github.com/FACorreiaa/go-petportal/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-petportal/internal/app/pages"
	"github.com/FACorreiaa/go-petportal/internal/app/session"
	"github.com/FACorreiaa/go-petportal/internal/app/upstream"
	"github.com/FACorreiaa/go-petportal/internal/app/validation"
)

const (
	networkErrorMessage = "Network error. Please try again."
	invalidFormMessage  = "Invalid form submission"
	dashboardPath       = "/dashboard"
)

type AuthHandlers struct {
	*handlers.BaseHandler
	authService AuthService
	store       *session.Store
	loginPath   string
	logger      *zap.Logger
}

func NewAuthHandlers(authService AuthService, store *session.Store, loginPath string, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		BaseHandler: handlers.NewBaseHandler(logger),
		authService: authService,
		store:       store,
		loginPath:   loginPath,
		logger:      logger,
	}
}

// Home sends the caller to the dashboard or the login page.
func (h *AuthHandlers) Home(c *gin.Context) {
	if middleware.GetSessionFromContext(c) != nil {
		h.Respond(c, handlers.Redirect{URL: dashboardPath})
		return
	}
	h.Respond(c, handlers.Redirect{URL: h.loginPath})
}

func (h *AuthHandlers) ShowLogin(c *gin.Context) {
	if middleware.GetSessionFromContext(c) != nil {
		h.Respond(c, handlers.Redirect{URL: dashboardPath})
		return
	}
	h.Respond(c, handlers.Page{Title: "Sign in", ActiveNav: "Sign in", Content: pages.LoginPage(nil), Data: gin.H{}})
}

func (h *AuthHandlers) ShowRegister(c *gin.Context) {
	if middleware.GetSessionFromContext(c) != nil {
		h.Respond(c, handlers.Redirect{URL: dashboardPath})
		return
	}
	h.Respond(c, handlers.Page{Title: "Register", ActiveNav: "Register", Content: pages.RegisterPage(nil), Data: gin.H{}})
}

func (h *AuthHandlers) Login(c *gin.Context) {
	var form models.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("Failed to bind login form", zap.Error(err))
		h.Respond(c, h.loginFailure(http.StatusBadRequest, models.ActionFailure{Error: invalidFormMessage}))
		return
	}

	sess, err := h.authService.Login(c.Request.Context(), form)
	if err != nil {
		status, failure := classify(err, "Login failed")
		failure.FormData = form.Echo()
		h.Respond(c, h.loginFailure(status, failure))
		return
	}

	if err := h.store.Save(c.Writer, *sess); err != nil {
		h.logger.Error("Failed to write session cookies", zap.Error(err))
		h.Respond(c, h.loginFailure(http.StatusInternalServerError, models.ActionFailure{APIError: "Login failed", FormData: form.Echo()}))
		return
	}

	h.Respond(c, handlers.Redirect{URL: dashboardPath})
}

func (h *AuthHandlers) Register(c *gin.Context) {
	var form models.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("Failed to bind registration form", zap.Error(err))
		h.Respond(c, h.registerFailure(http.StatusBadRequest, models.ActionFailure{Error: invalidFormMessage}))
		return
	}

	if err := h.authService.Register(c.Request.Context(), form); err != nil {
		status, failure := classify(err, "Registration failed")
		failure.FormData = form.Echo()
		h.Respond(c, h.registerFailure(status, failure))
		return
	}

	h.Respond(c, handlers.Redirect{URL: h.loginPath})
}

// Logout clears the session without contacting the upstream API.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if user := middleware.GetUserFromContext(c); user != nil {
		h.logger.Info("User logged out", zap.Int64("user_id", user.ID))
	}
	h.store.Clear(c.Writer)
	metrics.Get().RecordAuth(c.Request.Context(), "logout", "success")
	h.Respond(c, handlers.Redirect{URL: h.loginPath})
}

func (h *AuthHandlers) loginFailure(status int, failure models.ActionFailure) handlers.Failure {
	return handlers.Failure{
		Status:    status,
		Payload:   failure,
		Title:     "Sign in",
		ActiveNav: "Sign in",
		Content:   pages.LoginPage(&failure),
	}
}

func (h *AuthHandlers) registerFailure(status int, failure models.ActionFailure) handlers.Failure {
	return handlers.Failure{
		Status:    status,
		Payload:   failure,
		Title:     "Register",
		ActiveNav: "Register",
		Content:   pages.RegisterPage(&failure),
	}
}

// classify maps a service error to the status and payload shown on the form.
func classify(err error, fallback string) (int, models.ActionFailure) {
	var fields validation.FieldErrors
	if errors.As(err, &fields) {
		return http.StatusBadRequest, models.ActionFailure{Errors: fields}
	}
	if apiErr, ok := upstream.AsAPIError(err); ok {
		return apiErr.Status, models.ActionFailure{APIError: apiErr.MessageOr(fallback)}
	}
	if errors.Is(err, models.ErrInvalidResponse) {
		return http.StatusBadGateway, models.ActionFailure{APIError: fallback}
	}
	return http.StatusInternalServerError, models.ActionFailure{APIError: networkErrorMessage}
}
