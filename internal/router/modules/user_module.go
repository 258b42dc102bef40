package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/property-marketplace/internal/interface/http"
	"github.com/oksasatya/property-marketplace/internal/interface/middleware"
)

// UserModule wires registration, login, and profile routes.
// Public: POST /api/register, POST /api/login
// Protected: POST /api/logout, GET /api/profile
type UserModule struct {
	Handler  *handlers.UserHandler
	Resolver *middleware.IdentityResolver
	Redis    *redis.Client
}

func NewUserModule(h *handlers.UserHandler, resolver *middleware.IdentityResolver, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Resolver: resolver, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Resolver), middleware.RequireAuth())
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.GetProfile)
	}
}
