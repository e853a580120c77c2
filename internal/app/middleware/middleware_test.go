package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
	"github.com/FACorreiaa/go-petportal/internal/app/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var guardCfg = GuardConfig{
	ProtectedPrefixes: []string{"/dashboard", "/profile", "/admin"},
	LoginPath:         "/login",
}

func newGuardedRouter(store *session.Store, reached *bool, seen **models.Session) *gin.Engine {
	r := gin.New()
	r.Use(SessionGuard(store, guardCfg, zap.NewNop()))
	handler := func(c *gin.Context) {
		*reached = true
		*seen = GetSessionFromContext(c)
		c.String(http.StatusOK, "ok")
	}
	r.GET("/dashboard", handler)
	r.GET("/login", handler)
	return r
}

func sessionCookies(t *testing.T, store *session.Store, sess models.Session) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, store.Save(w, sess))
	return w.Result().Cookies()
}

func TestSessionGuard_ProtectedWithoutSession(t *testing.T) {
	store := session.NewStore(session.Options{MaxAge: 24 * time.Hour})
	var reached bool
	var seen *models.Session
	r := newGuardedRouter(store, &reached, &seen)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.False(t, reached)
}

func TestSessionGuard_HTMXRedirect(t *testing.T) {
	store := session.NewStore(session.Options{MaxAge: 24 * time.Hour})
	var reached bool
	var seen *models.Session
	r := newGuardedRouter(store, &reached, &seen)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("HX-Redirect"))
}

func TestSessionGuard_ValidSessionAttached(t *testing.T) {
	store := session.NewStore(session.Options{MaxAge: 24 * time.Hour})
	var reached bool
	var seen *models.Session
	r := newGuardedRouter(store, &reached, &seen)

	sess := models.Session{Token: "tok-1", User: models.User{ID: 4, Username: "maria", Role: models.RoleUser}}
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, ck := range sessionCookies(t, store, sess) {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
	require.NotNil(t, seen)
	assert.Equal(t, "tok-1", seen.Token)
	assert.Equal(t, "maria", seen.User.Username)
}

func TestSessionGuard_CorruptUserCookie(t *testing.T) {
	store := session.NewStore(session.Options{MaxAge: 24 * time.Hour})

	t.Run("public path continues anonymous and clears cookies", func(t *testing.T) {
		var reached bool
		var seen *models.Session
		r := newGuardedRouter(store, &reached, &seen)

		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: "tok-1"})
		req.AddCookie(&http.Cookie{Name: session.UserCookie, Value: "not-json"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, reached)
		assert.Nil(t, seen)

		cleared := map[string]bool{}
		for _, ck := range w.Result().Cookies() {
			if ck.MaxAge < 0 {
				cleared[ck.Name] = true
			}
		}
		assert.True(t, cleared[session.TokenCookie])
		assert.True(t, cleared[session.UserCookie])
	})

	t.Run("protected path redirects", func(t *testing.T) {
		var reached bool
		var seen *models.Session
		r := newGuardedRouter(store, &reached, &seen)

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: "tok-1"})
		req.AddCookie(&http.Cookie{Name: session.UserCookie, Value: "%7Bbroken"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.False(t, reached)
	})
}

func TestSessionGuard_RawJSONUserCookie(t *testing.T) {
	store := session.NewStore(session.Options{MaxAge: 24 * time.Hour})
	var reached bool
	var seen *models.Session
	r := newGuardedRouter(store, &reached, &seen)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Cookie", `auth_token=tok-1; user={"id":`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
	assert.Nil(t, seen)

	cleared := map[string]bool{}
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			cleared[ck.Name] = true
		}
	}
	assert.True(t, cleared[session.TokenCookie])
	assert.True(t, cleared[session.UserCookie])
}

func TestSessionGuard_TokenOnlyIsAnonymous(t *testing.T) {
	store := session.NewStore(session.Options{MaxAge: 24 * time.Hour})
	var reached bool
	var seen *models.Session
	r := newGuardedRouter(store, &reached, &seen)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: "tok-1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.False(t, reached)
}

func TestIsProtectedPath(t *testing.T) {
	prefixes := guardCfg.ProtectedPrefixes
	assert.True(t, IsProtectedPath("/dashboard", prefixes))
	assert.True(t, IsProtectedPath("/dashboard/pets/3", prefixes))
	assert.True(t, IsProtectedPath("/admin", prefixes))
	assert.False(t, IsProtectedPath("/", prefixes))
	assert.False(t, IsProtectedPath("/login", prefixes))
	assert.False(t, IsProtectedPath("/dashboard", nil))
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(string(RequestIDKey)))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	const incoming = "0b6f3f7e-3d7e-4a59-9d0b-1d1f5a2e9c11"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{accept: "", want: false},
		{accept: "application/json", want: true},
		{accept: "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				c.Request.Header.Set("Accept", tt.accept)
			}
			assert.Equal(t, tt.want, WantsJSON(c))
		})
	}
}
