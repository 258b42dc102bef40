package router

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/property-marketplace/config"
	"github.com/oksasatya/property-marketplace/internal/application"
	pginfra "github.com/oksasatya/property-marketplace/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/property-marketplace/internal/interface/http"
	"github.com/oksasatya/property-marketplace/internal/interface/middleware"
	"github.com/oksasatya/property-marketplace/internal/router/modules"
	"github.com/oksasatya/property-marketplace/pkg/helpers"
)

// Deps carries the shared infrastructure handed to every module.
// Everything is passed explicitly at startup; there is no global
// container.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	GCS    *storage.Client
	ES     *elasticsearch.Client
	JWT    *helpers.JWTManager
	Pub    *helpers.RabbitPublisher
}

// InitModules builds the repositories, services, handlers, and route
// modules from Deps and adds them to the registry.
func InitModules(r *Registry, d Deps) {
	users := pginfra.NewUserRepository(d.Pool)
	cities := pginfra.NewCachedCityRepository(pginfra.NewCityRepository(d.Pool), d.Redis, d.Cfg.CityCacheTTL)
	properties := pginfra.NewPropertyRepository(d.Pool)

	userSvc := application.NewUserService(users, d.JWT, helpers.BcryptComparer{}, d.Redis, d.Logger, d.Pub)
	propSvc := application.NewPropertyService(properties, cities, d.Logger, d.ES, d.Cfg.ESPropertiesIndex, d.GCS, d.Cfg.GCSBucket, d.Cfg.PageSize, d.Cfg.PropertyRetention)

	resolver := middleware.NewIdentityResolver(users, d.JWT)

	userHandler := handlers.NewUserHandler(userSvc, d.Logger, d.Cfg.CookieDomain, d.Cfg.CookieSecure)
	propHandler := handlers.NewPropertyHandler(propSvc, d.Logger)

	r.Add(modules.NewUserModule(userHandler, resolver, d.Redis))
	r.Add(modules.NewPropertyModule(propHandler, resolver, d.Redis))
}
