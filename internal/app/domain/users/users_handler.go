package users

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
)

const forbiddenMessage = "You do not have access to this page."

type UsersHandlers struct {
	*handlers.BaseHandler
	usersService UsersService
	store        *session.Store
	loginPath    string
	logger       *zap.Logger
}

func NewUsersHandlers(usersService UsersService, store *session.Store, loginPath string, logger *zap.Logger) *UsersHandlers {
	return &UsersHandlers{
		BaseHandler:  handlers.NewBaseHandler(logger),
		usersService: usersService,
		store:        store,
		loginPath:    loginPath,
		logger:       logger,
	}
}

// ShowProfile renders the session user. It needs no upstream call.
func (h *UsersHandlers) ShowProfile(c *gin.Context) {
	user := middleware.GetUserFromContext(c)
	if user == nil {
		h.Respond(c, handlers.Redirect{URL: h.loginPath})
		return
	}

	h.Respond(c, handlers.Page{
		Title:     "Profile",
		ActiveNav: "Profile",
		Content:   pages.ProfilePage(*user),
		Data:      gin.H{"user": user},
	})
}

func (h *UsersHandlers) ShowAdmin(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)
	if sess == nil {
		h.Respond(c, handlers.Redirect{URL: h.loginPath})
		return
	}

	data, err := h.usersService.LoadAdmin(c.Request.Context(), *sess)
	switch {
	case err == nil:
		h.Respond(c, handlers.Page{
			Title:     "Admin",
			ActiveNav: "Admin",
			Content:   pages.AdminPage(*data),
			Data:      data,
		})
	case errors.Is(err, models.ErrForbidden):
		h.logger.Info("Non-admin denied admin page", zap.Int64("user_id", sess.User.ID))
		h.Respond(c, handlers.Failure{
			Status:  http.StatusForbidden,
			Payload: models.ActionFailure{Error: forbiddenMessage},
		})
	case errors.Is(err, models.ErrUnauthenticated):
		h.store.Clear(c.Writer)
		metrics.Get().RecordSessionRepair(c.Request.Context(), "upstream_unauthorized")
		h.Respond(c, handlers.Redirect{URL: h.loginPath})
	default:
		h.logger.Error("Failed to load admin page", zap.Error(err))
		h.Respond(c, handlers.Failure{
			Status:  http.StatusInternalServerError,
			Payload: models.ActionFailure{Error: loadErrorMessage},
		})
	}
}
