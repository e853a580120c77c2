package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-petportal/internal/app/domain/auth"
	"github.com/FACorreiaa/go-petportal/internal/app/domain/pets"
	"github.com/FACorreiaa/go-petportal/internal/app/domain/users"
	"github.com/FACorreiaa/go-petportal/internal/app/middleware"
	"github.com/FACorreiaa/go-petportal/internal/app/session"
	"github.com/FACorreiaa/go-petportal/internal/app/upstream"
	"github.com/FACorreiaa/go-petportal/internal/pkg/config"
)

// Dependencies are the shared collaborators every handler is built from.
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Upstream *upstream.Client
	Sessions *session.Store
}

type AppHandlers struct {
	Auth  *auth.AuthHandlers
	Pets  *pets.PetsHandlers
	Users *users.UsersHandlers
}

func Setup(r *gin.Engine, deps Dependencies) {
	handlers := setupDependencies(deps)
	setupRouter(r, handlers, deps)
}

func setupDependencies(deps Dependencies) *AppHandlers {
	log := deps.Logger
	loginPath := deps.Config.Session.LoginPath

	authService := auth.NewAuthService(deps.Upstream, log)
	petsService := pets.NewPetsService(deps.Upstream, log)
	usersService := users.NewUsersService(deps.Upstream, log)

	return &AppHandlers{
		Auth:  auth.NewAuthHandlers(authService, deps.Sessions, loginPath, log),
		Pets:  pets.NewPetsHandlers(petsService, deps.Sessions, loginPath, log),
		Users: users.NewUsersHandlers(usersService, deps.Sessions, loginPath, log),
	}
}

func setupRouter(r *gin.Engine, h *AppHandlers, deps Dependencies) {
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	public := r.Group("/")
	{
		public.GET("/", h.Auth.Home)
		public.GET("/login", h.Auth.ShowLogin)
		public.GET("/register", h.Auth.ShowRegister)
		public.POST("/logout", h.Auth.Logout)
	}

	authLimiter := middleware.NewRateLimiter(deps.Logger, deps.Config.RateLimit.AuthMaxRequests, deps.Config.RateLimit.AuthWindow)
	authGroup := r.Group("/", authLimiter.Middleware())
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/register", h.Auth.Register)
	}

	// SessionGuard has already redirected anonymous callers away from these.
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("", h.Pets.ShowDashboard)
		dashboard.POST("", h.Pets.Dispatch)
		dashboard.POST("/pets", h.Pets.AddPet)
		dashboard.POST("/pets/:id", h.Pets.UpdatePet)
		dashboard.POST("/pets/:id/delete", h.Pets.DeletePet)
	}

	r.GET("/profile", h.Users.ShowProfile)
	r.GET("/admin", h.Users.ShowAdmin)
}
