package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chasinalts/comet-scanner-wizard/internal/db"
	"github.com/chasinalts/comet-scanner-wizard/internal/handlers"
	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/observability"
	"github.com/chasinalts/comet-scanner-wizard/internal/repos"
	"github.com/chasinalts/comet-scanner-wizard/internal/server"
	"github.com/chasinalts/comet-scanner-wizard/internal/services"
	"github.com/chasinalts/comet-scanner-wizard/internal/sse"
	"github.com/chasinalts/comet-scanner-wizard/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "comet-scanner-wizard",
		Environment: os.Getenv("APP_ENV"),
		Version:     os.Getenv("APP_VERSION"),
	})
	if otelShutdown != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	// Database
	databaseService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = databaseService.AutoMigrateAll(); err != nil {
		log.Error("Database auto migration failed", "error", err)
		os.Exit(1)
	}
	theDB := databaseService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(theDB, log)
	userTokenRepo := repos.NewUserTokenRepo(theDB, log)
	questionRepo := repos.NewQuestionRepo(theDB, log)
	savedTemplateRepo := repos.NewSavedTemplateRepo(theDB, log)
	siteContentRepo := repos.NewSiteContentRepo(theDB, log)
	galleryImageRepo := repos.NewGalleryImageRepo(theDB, log)

	// SSE
	log.Info("Setting up SSE hub now...")
	sseHub := sse.NewSSEHub(log)
	var sseBus services.SSEBus
	if os.Getenv("REDIS_ADDR") != "" {
		sseBus, err = services.NewRedisSSEBus(log)
		if err != nil {
			log.Warn("Could not init redis SSE bus, continuing single-instance", "error", err)
			sseBus = nil
		} else {
			if err := sseBus.StartForwarder(ctx, sseHub.Broadcast); err != nil {
				log.Warn("Could not start SSE bus forwarder", "error", err)
			}
			defer sseBus.Close()
		}
	}

	// Services
	log.Info("Setting up Services from main...")
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Warn("Could not init BucketService", "error", err)
	}
	var avatarService services.AvatarService
	if bucketService != nil {
		avatarService, err = services.NewAvatarService(theDB, log, userRepo, bucketService)
		if err != nil {
			log.Warn("Could not init AvatarService, registrations will skip avatars", "error", err)
		}
	}
	authService := services.NewAuthService(theDB, log, userRepo, avatarService, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(theDB, log, userRepo)
	questionService := services.NewQuestionService(theDB, log, questionRepo, sseHub, sseBus)
	contentService := services.NewContentService(theDB, log, siteContentRepo, sseHub, sseBus)
	templateService := services.NewTemplateService(theDB, log, savedTemplateRepo)
	galleryService := services.NewGalleryService(theDB, log, galleryImageRepo, bucketService, sseHub, sseBus)
	wizardService := services.NewWizardService(log, questionService, contentService, templateService, sseHub, sseBus)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(log, authService)
	userHandler := handlers.NewUserHandler(log, userService)
	questionHandler := handlers.NewQuestionHandler(log, questionService)
	contentHandler := handlers.NewContentHandler(log, contentService)
	galleryHandler := handlers.NewGalleryHandler(log, galleryService)
	wizardHandler := handlers.NewWizardHandler(log, wizardService)
	sseHandler := handlers.NewSSEHandler(log, sseHub)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:             log,
		AuthService:     authService,
		AuthHandler:     authHandler,
		UserHandler:     userHandler,
		QuestionHandler: questionHandler,
		ContentHandler:  contentHandler,
		GalleryHandler:  galleryHandler,
		WizardHandler:   wizardHandler,
		SSEHandler:      sseHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("Server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := group.Wait(); err != nil {
		log.Warn("Server exited with error", "error", err)
	}
}
