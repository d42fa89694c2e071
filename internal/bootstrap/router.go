package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/gquyenhsb/agriplan-backend/internal/advisor"
	httpapi "github.com/gquyenhsb/agriplan-backend/internal/api/http"
	"github.com/gquyenhsb/agriplan-backend/internal/geocode"
	"github.com/gquyenhsb/agriplan-backend/internal/llm"
	"github.com/gquyenhsb/agriplan-backend/internal/notify"
	"github.com/gquyenhsb/agriplan-backend/internal/projects"
	"github.com/gquyenhsb/agriplan-backend/internal/weather"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	FrontendOrigin string
	DB             *pgxpool.Pool
	Redis          *redis.Client
	Projects       *projects.Repo
	Advisor        *advisor.Service
	Weather        *weather.Service
	Geocode        *geocode.Client
	Generator      llm.Generator
	Notifications  *notify.Aggregator
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	if dep.FrontendOrigin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins: []string{dep.FrontendOrigin},
			AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Content-Type"},
		}))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")

	projects.Register(api, dep.Projects)
	advisor.Register(api, dep.Advisor)
	weather.RegisterRoutes(api, dep.Weather)
	geocode.RegisterRoutes(api, dep.Geocode)
	llm.RegisterRoutes(api, dep.Generator)
	notify.RegisterRoutes(api, dep.Notifications)

	return r
}
