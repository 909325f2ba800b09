package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/khangha1908/TodoX/internal/config"
	"github.com/khangha1908/TodoX/internal/repository"
	"github.com/khangha1908/TodoX/internal/server"
	"github.com/khangha1908/TodoX/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A .env file is optional; real env vars win either way.
	_ = godotenv.Load()

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
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	categorySvc := service.NewCategoryService(categoryRepo, taskRepo)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo)
	templateSvc := service.NewTemplateService(templateRepo, categoryRepo)
	reminderSvc := service.NewReminderService(taskRepo, userRepo)

	srv := server.New(cfg, authSvc, categorySvc, taskSvc, templateSvc, reminderSvc)

	if cfg.ReminderInterval > 0 {
		scheduler := service.NewSchedulerService(time.Local)
		if _, err := scheduler.ScheduleInterval(cfg.ReminderInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := reminderSvc.SweepAll(jobCtx, time.Now()); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("reminder sweep: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule reminders: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("TodoX API listening on port %s", cfg.Port)
	if err := srv.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
