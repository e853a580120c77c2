package handlers

import (
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-petportal/internal/app/middleware"
	"github.com/FACorreiaa/go-petportal/internal/app/models"
	"github.com/FACorreiaa/go-petportal/internal/app/pages"
)

// FlashParam carries an action's success message across the post/redirect/get
// round trip.
const FlashParam = "message"

type BaseHandler struct {
	Logger *zap.Logger
}

func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	return &BaseHandler{Logger: logger}
}

func (h *BaseHandler) NewLayoutData(c *gin.Context, title, activeNav string, content templ.Component) models.LayoutTempl {
	user := middleware.GetUserFromContext(c)

	return models.LayoutTempl{
		Title:     title,
		Content:   content,
		Nav:       models.NavFor(user),
		ActiveNav: activeNav,
		User:      user,
	}
}

func (h *BaseHandler) Render(c *gin.Context, status int, component templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.Logger.Error("Failed to render component", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
}

// RenderPage renders content inside the layout. htmx requests that target a
// fragment get the content alone.
func (h *BaseHandler) RenderPage(c *gin.Context, status int, title, activeNav string, content templ.Component) {
	if middleware.IsHTMX(c) && c.GetHeader("HX-Boosted") != "true" {
		h.Render(c, status, content)
		return
	}
	h.Render(c, status, pages.LayoutPage(h.NewLayoutData(c, title, activeNav, content)))
}

// Respond writes resp as JSON or HTML depending on what the client accepts.
func (h *BaseHandler) Respond(c *gin.Context, resp Response) {
	wantsJSON := middleware.WantsJSON(c)

	switch r := resp.(type) {
	case Page:
		status := statusOr(r.Status, http.StatusOK)
		if wantsJSON {
			c.JSON(status, r.Data)
			return
		}
		h.RenderPage(c, status, r.Title, r.ActiveNav, r.Content)

	case Success:
		if wantsJSON {
			c.JSON(http.StatusOK, r.Result)
			return
		}
		middleware.RedirectSeeOther(c, withFlash(r.RedirectTo, r.Result.Message))

	case Failure:
		status := statusOr(r.Status, http.StatusInternalServerError)
		if wantsJSON {
			c.JSON(status, r.Payload)
			return
		}
		title, content := r.Title, r.Content
		if content == nil {
			title, content = http.StatusText(status), pages.ErrorPage(status, failureMessage(r.Payload))
		}
		h.RenderPage(c, status, title, r.ActiveNav, content)

	case Redirect:
		middleware.RedirectSeeOther(c, r.URL)

	default:
		h.Logger.Error("Unhandled response type", zap.Any("response", resp))
		c.Status(http.StatusInternalServerError)
	}
}

func statusOr(status, fallback int) int {
	if status == 0 {
		return fallback
	}
	return status
}

func withFlash(target, message string) string {
	if target == "" {
		target = "/"
	}
	if message == "" {
		return target
	}
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set(FlashParam, message)
	u.RawQuery = q.Encode()
	return u.String()
}

func failureMessage(f models.ActionFailure) string {
	switch {
	case f.APIError != "":
		return f.APIError
	case f.Error != "":
		return f.Error
	case len(f.Errors) > 0:
		return "Please correct the highlighted fields."
	}
	return "Something went wrong."
}
