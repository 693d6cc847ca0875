package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	httpapi "github.com/porto-anggi/porto-backend/internal/api/http"
	"github.com/porto-anggi/porto-backend/internal/api/http/middleware"
	contacthttp "github.com/porto-anggi/porto-backend/internal/contacts/http"
	contactrepo "github.com/porto-anggi/porto-backend/internal/contacts/repository"
	contactservice "github.com/porto-anggi/porto-backend/internal/contacts/service"
	projhttp "github.com/porto-anggi/porto-backend/internal/projects/http"
	projrepo "github.com/porto-anggi/porto-backend/internal/projects/repository"
	projservice "github.com/porto-anggi/porto-backend/internal/projects/service"
	"github.com/porto-anggi/porto-backend/internal/uploads"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *sql.DB
	Log         *logrus.Logger
	Uploads     uploads.Store
	// Cache may be nil; project reads then always hit the database.
	Cache projservice.Cache
	// Chooser may be nil; a uniform random chooser is used.
	Chooser      projservice.ImageChooser
	AdminAPIKey  string
	CORSOrigins  []string
	ContactRate  rate.Limit
	ContactBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(dep.Log))
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")

	projectRepo := projrepo.NewProjectRepository(dep.DB)
	projectSvc := projservice.NewProjectService(projectRepo, dep.Uploads, dep.Chooser, dep.Cache, dep.Log)
	projhttp.New(projectSvc, dep.Uploads, dep.Log).Register(api.Group("/projects"))

	contactRepo := contactrepo.NewContactRepository(dep.DB)
	contactHandler := contacthttp.New(contactservice.NewContactService(contactRepo), dep.Log)

	contactRate, contactBurst := dep.ContactRate, dep.ContactBurst
	if contactRate == 0 {
		contactRate = rate.Every(10 * time.Second)
	}
	if contactBurst == 0 {
		contactBurst = 3
	}
	contactGroup := api.Group("/contact")
	contactGroup.Use(middleware.RateLimit(contactRate, contactBurst))
	contactHandler.Register(contactGroup)

	admin := api.Group("/admin")
	admin.Use(middleware.APIKey(dep.AdminAPIKey))
	contactHandler.RegisterAdmin(admin)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "X-API-Key", "X-Request-Id"}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
