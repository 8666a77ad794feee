package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"higher-pleasures/internal/bot"
	"higher-pleasures/internal/config"
	"higher-pleasures/internal/grid"
	"higher-pleasures/internal/parser"
	"higher-pleasures/internal/repository"
	"higher-pleasures/internal/service"
	"higher-pleasures/internal/sheets"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	entryRepo := repository.NewEntryRepository(db)

	gateway, err := sheets.New(ctx, cfg.SpreadsheetID, []byte(cfg.GoogleCredentials))
	if err != nil {
		log.Fatalf("sheets: %v", err)
	}
	engine := grid.NewEngine(gateway)

	activityParser := parser.NewOpenAIParser(cfg.OpenAIKey, cfg.OpenAIModel, parser.DefaultConfidenceThreshold)

	tracker := service.NewTracker(activityParser, engine, userRepo, activityRepo, entryRepo, cfg.TrackingYear)
	reportSvc := service.NewReportService(entryRepo)

	if err := tracker.EnsureAllSurfaces(ctx); err != nil {
		log.Fatalf("initialize sheets: %v", err)
	}

	telegramBot, err := bot.New(cfg.TelegramToken, userRepo, tracker, reportSvc)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	scheduler := service.NewScheduler(time.Local)
	if cfg.ReportInterval > 0 {
		if _, err := scheduler.Every(cfg.ReportInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := telegramBot.SendDailyReports(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("report: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule reports: %v", err)
		}
	}
	if _, err := scheduler.Midnight(func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := tracker.EnsureAllSurfaces(jobCtx); err != nil {
			log.Printf("year structure check: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule year structure check: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Activity tracker bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
