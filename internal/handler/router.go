package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/coursepulse/coursepulse-api/internal/middleware"
	"github.com/coursepulse/coursepulse-api/internal/models"
	"github.com/coursepulse/coursepulse-api/internal/service"
	"github.com/coursepulse/coursepulse-api/pkg/config"
	"github.com/coursepulse/coursepulse-api/pkg/logger"
	corsmiddleware "github.com/coursepulse/coursepulse-api/pkg/middleware/cors"
	reqidmiddleware "github.com/coursepulse/coursepulse-api/pkg/middleware/requestid"
)

// RouterDeps bundles everything the HTTP layer needs.
type RouterDeps struct {
	Config       *config.Config
	Logger       *zap.Logger
	Auth         *service.AuthService
	Reports      *service.ReportService
	Gamification *service.GamificationService
	Exports      *service.ExportService
	Metrics      *service.MetricsService
}

// NewRouter assembles the gin engine with all middleware and routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(deps.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	if deps.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(deps.Config.APIPrefix)

	authHandler := NewAuthHandler(deps.Auth)
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", middleware.JWT(deps.Auth), authHandler.Logout)

	instructorOnly := []gin.HandlerFunc{
		middleware.JWT(deps.Auth),
		middleware.RequireRoles(models.RoleInstructor, models.RoleAdmin),
	}

	analyticsHandler := NewAnalyticsHandler(deps.Reports)
	analyticsGroup := api.Group("/analytics", instructorOnly...)
	analyticsGroup.GET("/overview", analyticsHandler.TeacherOverview)
	analyticsGroup.GET("/courses/:id", analyticsHandler.CourseAnalytics)

	if deps.Config.Exports.Enabled && deps.Exports != nil {
		exportHandler := NewExportHandler(deps.Exports)
		analyticsGroup.GET("/export", exportHandler.CourseBreakdown)
	}

	if deps.Config.Gamification.Enabled && deps.Gamification != nil {
		gamificationHandler := NewGamificationHandler(deps.Gamification)
		gamificationGroup := api.Group("/gamification", instructorOnly...)
		gamificationGroup.GET("", gamificationHandler.Snapshot)
		gamificationGroup.POST("/activity", gamificationHandler.RecordActivity)
	}

	return r
}
