package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"fittrack/backoffice/internal/api"
	"fittrack/backoffice/internal/config"
	"fittrack/backoffice/internal/email"
	"fittrack/backoffice/internal/repository/postgres"
	"fittrack/backoffice/internal/service"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.Info("starting fittrack back-office server")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}

	pool, err := postgres.ConnectDB(cfg.Database.URL)
	if err != nil {
		log.WithError(err).Fatal("could not connect to postgres")
	}
	defer pool.Close()
	log.Info("database connection established")

	{
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			cancel()
			log.WithError(err).Fatal("could not ensure schema")
		}
		cancel()
	}

	// Repositories
	coachRepo := postgres.NewPgCoachRepository(pool)
	alumnoRepo := postgres.NewPgAlumnoRepository(pool)
	rutinaRepo := postgres.NewPgRutinaRepository(pool)
	rutinaPlantillaRepo := postgres.NewPgRutinaPlantillaRepository(pool)
	dietaRepo := postgres.NewPgDietaRepository(pool)
	dietaPlantillaRepo := postgres.NewPgDietaPlantillaRepository(pool)
	catalogRepo := postgres.NewPgCatalogRepository(pool)
	recordRepo := postgres.NewPgRecordRepository(pool)
	notificationRepo := postgres.NewPgNotificationRepository(pool)
	lesionRepo := postgres.NewPgLesionRepository(pool)

	// Email sender
	var sender email.Sender = email.NoopSender{}
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From)
		log.Info("email delivery enabled")
	} else {
		log.Warn("no resend api key configured, emails will be dropped")
	}

	// Services
	svc := api.Services{
		Auth:         service.NewAuthService(coachRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		Alumno:       service.NewAlumnoService(alumnoRepo, rutinaRepo, dietaRepo, lesionRepo, recordRepo),
		Rutina:       service.NewRutinaService(rutinaRepo, rutinaPlantillaRepo, alumnoRepo),
		Dieta:        service.NewDietaService(dietaRepo, dietaPlantillaRepo, alumnoRepo),
		Catalog:      service.NewCatalogService(catalogRepo),
		Notification: service.NewNotificationService(notificationRepo),
		Lesion:       service.NewLesionService(lesionRepo, alumnoRepo),
		Email:        service.NewEmailService(coachRepo, alumnoRepo, sender),
		Dashboard:    service.NewDashboardService(alumnoRepo, rutinaRepo, notificationRepo),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(router, cfg.JWT.Secret, svc)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("address", cfg.Server.Address).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen and serve error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exiting")
}
