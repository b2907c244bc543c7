package server

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/chasinalts/comet-scanner-wizard/internal/handlers"
	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/middleware"
	"github.com/chasinalts/comet-scanner-wizard/internal/services"
)

type RouterConfig struct {
	Log             *logger.Logger
	AuthService     services.AuthService
	AuthHandler     *handlers.AuthHandler
	UserHandler     *handlers.UserHandler
	QuestionHandler *handlers.QuestionHandler
	ContentHandler  *handlers.ContentHandler
	GalleryHandler  *handlers.GalleryHandler
	WizardHandler   *handlers.WizardHandler
	SSEHandler      *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("comet-scanner-wizard"))

	corsConfig := cors.DefaultConfig()
	origins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if origins == "" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/healthcheck", handlers.Healthcheck())

	api := router.Group("/api")
	api.POST("/register", cfg.AuthHandler.Register)
	api.POST("/login", cfg.AuthHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(cfg.AuthService, cfg.Log))
	{
		protected.POST("/refresh", cfg.AuthHandler.Refresh)
		protected.POST("/logout", cfg.AuthHandler.Logout)
		protected.GET("/me", cfg.UserHandler.Me)

		protected.GET("/questions", cfg.QuestionHandler.List)
		protected.GET("/content", cfg.ContentHandler.List)
		protected.GET("/content/:key", cfg.ContentHandler.Get)
		protected.GET("/gallery", cfg.GalleryHandler.List)

		wizard := protected.Group("/wizard")
		{
			wizard.POST("/session", cfg.WizardHandler.Start)
			wizard.POST("/session/full-template", cfg.WizardHandler.ChooseFullTemplate)
			wizard.POST("/session/builder", cfg.WizardHandler.StartBuilder)
			wizard.POST("/session/answer", cfg.WizardHandler.Answer)
			wizard.POST("/session/skip", cfg.WizardHandler.Skip)
			wizard.POST("/session/next", cfg.WizardHandler.Next)
			wizard.POST("/session/previous", cfg.WizardHandler.Previous)
			wizard.POST("/session/save", cfg.WizardHandler.SaveProgress)
			wizard.POST("/session/finish", cfg.WizardHandler.Finish)
			wizard.POST("/session/load/:name", cfg.WizardHandler.LoadSnapshot)

			wizard.GET("/templates", cfg.WizardHandler.ListTemplates)
			wizard.DELETE("/templates/:name", cfg.WizardHandler.DeleteTemplate)
		}

		sseGroup := protected.Group("/sse")
		{
			sseGroup.GET("/stream", cfg.SSEHandler.Stream)
			sseGroup.POST("/subscribe/:clientId", cfg.SSEHandler.Subscribe)
			sseGroup.POST("/unsubscribe/:clientId", cfg.SSEHandler.Unsubscribe)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireOwner())
		{
			admin.GET("/users", cfg.UserHandler.List)
			admin.PUT("/users/:id/permissions", cfg.UserHandler.UpdatePermissions)
			admin.PUT("/users/:id/role", cfg.UserHandler.UpdateRole)

			admin.POST("/questions", cfg.QuestionHandler.Create)
			admin.PUT("/questions/:id", cfg.QuestionHandler.Update)
			admin.PUT("/questions/reorder", cfg.QuestionHandler.Reorder)
			admin.DELETE("/questions/:id", cfg.QuestionHandler.Delete)
			admin.POST("/questions/import", cfg.QuestionHandler.ImportYAML)

			admin.PUT("/content/:key", cfg.ContentHandler.Set)

			admin.POST("/gallery", cfg.GalleryHandler.Upload)
			admin.DELETE("/gallery/:id", cfg.GalleryHandler.Delete)
		}
	}

	return router
}
