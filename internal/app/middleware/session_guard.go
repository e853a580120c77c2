package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
	"github.com/FACorreiaa/go-petportal/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-petportal/internal/app/session"
)

type GuardConfig struct {
	ProtectedPrefixes []string
	LoginPath         string
}

// SessionGuard runs before every route. It attaches the cookie session to
// the context, expires an undecodable session, and sends anonymous callers
// of protected paths to the login page before any route logic runs.
//
// The token is not checked against the upstream API here; an expired token
// surfaces as an upstream 401 on the first proxied call.
func SessionGuard(store *session.Store, cfg GuardConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Load(c.Request)
		switch {
		case err == nil:
			SetSession(c, sess)
		case errors.Is(err, models.ErrCorruptSession):
			logger.Warn("Discarding undecodable session cookie",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			store.Clear(c.Writer)
			metrics.Get().RecordSessionRepair(c.Request.Context(), "corrupt_user_cookie")
		}

		if sess == nil && IsProtectedPath(c.Request.URL.Path, cfg.ProtectedPrefixes) {
			RedirectSeeOther(c, cfg.LoginPath)
			return
		}

		c.Next()
	}
}

// IsProtectedPath reports whether path starts with one of prefixes.
func IsProtectedPath(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
