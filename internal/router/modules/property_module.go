package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/property-marketplace/internal/domain/entity"
	handlers "github.com/oksasatya/property-marketplace/internal/interface/http"
	"github.com/oksasatya/property-marketplace/internal/interface/middleware"
)

// PropertyModule wires listing routes.
// Public: GET /api/properties, GET /api/properties/search
// Protected: POST /api/properties, POST /api/properties/:id/image
// Admin: DELETE /api/admin/properties/stale
type PropertyModule struct {
	Handler  *handlers.PropertyHandler
	Resolver *middleware.IdentityResolver
	Redis    *redis.Client
}

func NewPropertyModule(h *handlers.PropertyHandler, resolver *middleware.IdentityResolver, rdb *redis.Client) *PropertyModule {
	return &PropertyModule{Handler: h, Resolver: resolver, Redis: rdb}
}

func (m *PropertyModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/properties", browseLimiter, m.Handler.List)
	rg.GET("/properties/search", browseLimiter, m.Handler.Search)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Resolver), middleware.RequireAuth())
	auth.Use(middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/properties", m.Handler.Create)
		auth.POST("/properties/:id/image", m.Handler.UploadImage)
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.Resolver), middleware.RequireRole(entity.RoleAdmin))
	{
		admin.DELETE("/properties/stale", m.Handler.DeleteStale)
	}
}
