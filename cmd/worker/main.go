package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zelador/internal/application/notification"
	"zelador/internal/application/reminder"
	"zelador/internal/infrastructure/config"
	"zelador/internal/infrastructure/database"
	"zelador/internal/infrastructure/email"
	"zelador/internal/infrastructure/repository"
	"zelador/internal/infrastructure/scheduler"
	"zelador/internal/infrastructure/token"
	"zelador/internal/shared/biztime"
	"zelador/internal/shared/db"
	"zelador/internal/shared/logger"
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger, env == "development"); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting reminder worker", "environment", env)

	if err := biztime.Init(cfg.Reminder.Timezone); err != nil {
		log.Fatalw("failed to initialize business timezone", "error", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	gormDB := database.Get()

	assistanceRepo := repository.NewAssistanceRepository(gormDB)
	activityRepo := repository.NewActivityLogRepository(gormDB)
	emailLogRepo := repository.NewEmailLogRepository(gormDB)
	buildingRepo := repository.NewBuildingRepository(gormDB)
	supplierRepo := repository.NewSupplierRepository(gormDB)
	adminRepo := repository.NewAdminUserRepository(gormDB)

	mailer := email.NewSMTPMailer(&cfg.Email, log)
	notifier := notification.NewService(
		mailer,
		supplierRepo,
		buildingRepo,
		adminRepo,
		emailLogRepo,
		cfg.Email.BaseURL,
		cfg.Email.AdminEmails,
		log,
	)

	processor := reminder.NewProcessor(
		assistanceRepo,
		activityRepo,
		token.NewGenerator(),
		db.NewTransactionManager(gormDB),
		notifier,
		log,
	)

	interval := time.Duration(cfg.Reminder.IntervalMinutes) * time.Minute
	sched := scheduler.NewReminderScheduler(processor, interval, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched.Start(ctx)

	log.Infow("reminder worker stopped")
}
