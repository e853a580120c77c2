package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-petportal/internal/app/middleware"
	"github.com/FACorreiaa/go-petportal/internal/app/models"
	"github.com/FACorreiaa/go-petportal/internal/app/pages"
)

func newContext(method, target string, headers map[string]string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c, w
}

var jsonAccept = map[string]string{"Accept": "application/json"}

func TestRespond_Page(t *testing.T) {
	h := NewBaseHandler(zap.NewNop())
	page := Page{
		Title:     "Profile",
		ActiveNav: "Profile",
		Content:   pages.ProfilePage(models.User{Username: "maria"}),
		Data:      gin.H{"user": gin.H{"username": "maria"}},
	}

	t.Run("html", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/profile", nil)
		middleware.SetSession(c, &models.Session{Token: "t", User: models.User{Username: "maria"}})
		h.Respond(c, page)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
		require.NoError(t, err)
		assert.Equal(t, "Profile", doc.Find("title").Text())
		assert.Equal(t, 1, doc.Find("[data-profile]").Length())
		assert.Equal(t, 1, doc.Find("form[action='/logout']").Length())
	})

	t.Run("json", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/profile", jsonAccept)
		h.Respond(c, page)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":{"username":"maria"}}`, w.Body.String())
	})

	t.Run("htmx fragment", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/profile", map[string]string{"HX-Request": "true"})
		h.Respond(c, page)

		assert.NotContains(t, w.Body.String(), "<html")
		assert.Contains(t, w.Body.String(), "data-profile")
	})
}

func TestRespond_Success(t *testing.T) {
	h := NewBaseHandler(zap.NewNop())
	success := Success{
		Result:     models.ActionResult{Success: true, Message: "Pet added successfully!"},
		RedirectTo: "/dashboard",
	}

	t.Run("browser is redirected with a flash", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/dashboard/pets", nil)
		h.Respond(c, success)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/dashboard?message=Pet+added+successfully%21", w.Header().Get("Location"))
	})

	t.Run("json client gets the result", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/dashboard/pets", jsonAccept)
		h.Respond(c, success)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"message":"Pet added successfully!"}`, w.Body.String())
	})
}

func TestRespond_Failure(t *testing.T) {
	h := NewBaseHandler(zap.NewNop())

	t.Run("json keeps the status", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/dashboard/pets", jsonAccept)
		h.Respond(c, Failure{Status: http.StatusBadRequest, Payload: models.ActionFailure{APIError: "duplicate"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"apiError":"duplicate"}`, w.Body.String())
	})

	t.Run("html re-renders the form", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/login", nil)
		failure := models.ActionFailure{APIError: "Invalid credentials"}
		h.Respond(c, Failure{
			Status:  http.StatusUnauthorized,
			Payload: failure,
			Title:   "Sign in",
			Content: pages.LoginPage(&failure),
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
		assert.Contains(t, w.Body.String(), `action="/login"`)
	})

	t.Run("html without a form falls back to the error page", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/dashboard/pets/1/delete", nil)
		h.Respond(c, Failure{Status: http.StatusInternalServerError, Payload: models.ActionFailure{Error: "Network error. Please try again."}})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Network error. Please try again.")
		assert.Contains(t, w.Body.String(), `data-status="500"`)
	})
}

func TestRespond_Redirect(t *testing.T) {
	h := NewBaseHandler(zap.NewNop())

	for _, headers := range []map[string]string{nil, jsonAccept} {
		c, w := newContext(http.MethodPost, "/logout", headers)
		h.Respond(c, Redirect{URL: "/login"})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	}
}

func TestWithFlash(t *testing.T) {
	assert.Equal(t, "/dashboard", withFlash("/dashboard", ""))
	assert.Equal(t, "/", withFlash("", ""))
	assert.Equal(t, "/dashboard?a=1&message=ok", withFlash("/dashboard?a=1", "ok"))
}
