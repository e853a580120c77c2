package pets

import (
	"errors"
	"net/http"
	"strings"

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
	dashboardPath       = "/dashboard"
	networkErrorMessage = "Network error. Please try again."
	invalidAgeMessage   = "Age must be a number"
)

type PetsHandlers struct {
	*handlers.BaseHandler
	petsService PetsService
	store       *session.Store
	loginPath   string
	logger      *zap.Logger
}

func NewPetsHandlers(petsService PetsService, store *session.Store, loginPath string, logger *zap.Logger) *PetsHandlers {
	return &PetsHandlers{
		BaseHandler: handlers.NewBaseHandler(logger),
		petsService: petsService,
		store:       store,
		loginPath:   loginPath,
		logger:      logger,
	}
}

func (h *PetsHandlers) ShowDashboard(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	data, err := h.petsService.LoadDashboard(c.Request.Context(), *sess)
	if err != nil {
		h.handleLoadError(c, err)
		return
	}

	h.Respond(c, handlers.Page{
		Title:     "Dashboard",
		ActiveNav: "Dashboard",
		Content:   pages.DashboardPage(*data, c.Query(handlers.FlashParam), nil),
		Data:      data,
	})
}

func (h *PetsHandlers) AddPet(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}
	form, ok := h.bindPetForm(c, sess)
	if !ok {
		return
	}

	result, err := h.petsService.AddPet(c.Request.Context(), *sess, form)
	h.respondAction(c, sess, result, err, "Failed to add pet", form.Echo())
}

// UpdatePet takes the pet id from the path, or from the form when posted to
// the dashboard action endpoint.
func (h *PetsHandlers) UpdatePet(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}
	form, ok := h.bindPetForm(c, sess)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		id = form.ID
	}
	result, err := h.petsService.UpdatePet(c.Request.Context(), *sess, id, form)
	h.respondAction(c, sess, result, err, "Failed to update pet", form.Echo())
}

func (h *PetsHandlers) DeletePet(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		id = c.PostForm("id")
	}
	result, err := h.petsService.DeletePet(c.Request.Context(), *sess, id)
	h.respondAction(c, sess, result, err, "Failed to delete pet", nil)
}

// Dispatch serves form posts to the dashboard itself. The action is named by
// the _action field or by a "?/name" query key.
func (h *PetsHandlers) Dispatch(c *gin.Context) {
	switch action := actionName(c); action {
	case "addPet":
		h.AddPet(c)
	case "updatePet":
		h.UpdatePet(c)
	case "deletePet":
		h.DeletePet(c)
	case "logout":
		h.store.Clear(c.Writer)
		metrics.Get().RecordAuth(c.Request.Context(), "logout", "success")
		h.Respond(c, handlers.Redirect{URL: h.loginPath})
	default:
		h.logger.Warn("Unknown dashboard action", zap.String("action", action))
		h.Respond(c, handlers.Failure{
			Status:  http.StatusBadRequest,
			Payload: models.ActionFailure{Error: "Unknown action"},
		})
	}
}

func actionName(c *gin.Context) string {
	if action := c.PostForm("_action"); action != "" {
		return action
	}
	for key := range c.Request.URL.Query() {
		if name, ok := strings.CutPrefix(key, "/"); ok {
			return name
		}
	}
	return ""
}

func (h *PetsHandlers) requireSession(c *gin.Context) (*models.Session, bool) {
	sess := middleware.GetSessionFromContext(c)
	if sess == nil {
		h.Respond(c, handlers.Redirect{URL: h.loginPath})
		return nil, false
	}
	return sess, true
}

func (h *PetsHandlers) bindPetForm(c *gin.Context, sess *models.Session) (models.PetForm, bool) {
	var form models.PetForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Info("Rejected pet form", zap.Error(err))
		h.fail(c, sess, http.StatusBadRequest, models.ActionFailure{
			Error: invalidAgeMessage,
			FormData: map[string]string{
				"name":    c.PostForm("name"),
				"species": c.PostForm("species"),
				"breed":   c.PostForm("breed"),
				"age":     c.PostForm("age"),
			},
		})
		return form, false
	}
	return form, true
}

func (h *PetsHandlers) handleLoadError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrUnauthenticated) {
		h.clearRejectedSession(c)
		h.Respond(c, handlers.Redirect{URL: h.loginPath})
		return
	}
	h.logger.Error("Failed to load dashboard", zap.Error(err))
	h.Respond(c, handlers.Failure{
		Status:  http.StatusInternalServerError,
		Payload: models.ActionFailure{Error: loadErrorMessage},
	})
}

func (h *PetsHandlers) respondAction(c *gin.Context, sess *models.Session, result models.ActionResult, err error, fallback string, echo map[string]string) {
	if err == nil {
		h.Respond(c, handlers.Success{Result: result, RedirectTo: dashboardPath})
		return
	}

	var (
		fields  validation.FieldErrors
		failure models.ActionFailure
		status  int
	)
	apiErr, isAPI := upstream.AsAPIError(err)
	switch {
	case errors.As(err, &fields):
		status, failure = http.StatusBadRequest, models.ActionFailure{Errors: fields}
	case isAPI:
		if apiErr.Status == http.StatusUnauthorized {
			h.clearRejectedSession(c)
		}
		status, failure = apiErr.Status, models.ActionFailure{Error: apiErr.MessageOr(fallback)}
	case errors.Is(err, models.ErrInvalidResponse):
		status, failure = http.StatusBadGateway, models.ActionFailure{Error: fallback}
	default:
		status, failure = http.StatusInternalServerError, models.ActionFailure{Error: networkErrorMessage}
	}
	failure.FormData = echo

	// The dashboard cannot be reloaded from an unreachable upstream.
	if errors.Is(err, models.ErrUpstreamUnavailable) {
		h.Respond(c, handlers.Failure{Status: status, Payload: failure, Title: "Dashboard", ActiveNav: "Dashboard"})
		return
	}
	h.fail(c, sess, status, failure)
}

// clearRejectedSession drops a session whose token the upstream API refused.
func (h *PetsHandlers) clearRejectedSession(c *gin.Context) {
	h.store.Clear(c.Writer)
	metrics.Get().RecordSessionRepair(c.Request.Context(), "upstream_unauthorized")
}

// fail responds with failure. Browsers get the dashboard re-rendered around
// the error unless the session has just been invalidated.
func (h *PetsHandlers) fail(c *gin.Context, sess *models.Session, status int, failure models.ActionFailure) {
	resp := handlers.Failure{
		Status:    status,
		Payload:   failure,
		Title:     "Dashboard",
		ActiveNav: "Dashboard",
	}

	if status != http.StatusUnauthorized && !middleware.WantsJSON(c) {
		if data, err := h.petsService.LoadDashboard(c.Request.Context(), *sess); err == nil {
			resp.Content = pages.DashboardPage(*data, "", &failure)
		}
	}
	h.Respond(c, resp)
}
