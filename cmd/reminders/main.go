// Command reminders runs the payment-reminder batch once and exits.
// Meant to be invoked from cron or a one-shot container.
package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"fittrack/backoffice/internal/config"
	"fittrack/backoffice/internal/email"
	"fittrack/backoffice/internal/repository/postgres"
	"fittrack/backoffice/internal/service"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.Info("starting payment reminder run")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.ConnectDB(cfg.Database.URL)
	if err != nil {
		log.WithError(err).Fatal("could not connect to postgres")
	}
	defer pool.Close()

	var sender email.Sender = email.NoopSender{}
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From)
	}

	alumnoRepo := postgres.NewPgAlumnoRepository(pool)
	notificationRepo := postgres.NewPgNotificationRepository(pool)
	reminders := service.NewReminderService(alumnoRepo, notificationRepo, sender)

	result, err := reminders.Run(ctx)
	if err != nil {
		log.WithError(err).Fatal("reminder run failed")
	}
	log.WithFields(log.Fields{
		"due": result.Due, "sent": result.Sent, "failed": result.Failed,
	}).Info("reminder run complete")
}
