package main

import (
	"log/slog"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"task_backend/internal/app/router"
	"task_backend/internal/config"
	authadapters "task_backend/internal/feature/auth/adapters"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authusecase "task_backend/internal/feature/auth/usecase"
	tasklistadapters "task_backend/internal/feature/tasklists/adapters"
	tasklisthandler "task_backend/internal/feature/tasklists/transport/handler"
	tasklistusecase "task_backend/internal/feature/tasklists/usecase"
	taskadapters "task_backend/internal/feature/tasks/adapters"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	"task_backend/internal/platform/db"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/mail"
	"task_backend/internal/platform/ratelimit"
	platformredis "task_backend/internal/platform/redis"
)

// Auth endpoint throttling: attempts per client IP within the window.
const (
	authLimitMax    = 10
	authLimitWindow = time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	gormDB, err := db.Open(*cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis backs the auth attempt limiter. The service runs without it.
	var rdb *redisv9.Client
	if cfg.Redis.Addr != "" {
		if tmp, rerr := platformredis.NewClient(cfg.Redis); rerr != nil {
			slog.Warn("redis unavailable, auth endpoints run unthrottled", "error", rerr)
		} else {
			rdb = tmp
			defer func() {
				if cerr := rdb.Close(); cerr != nil {
					slog.Error("failed to close redis client", "error", cerr)
				}
			}()
		}
	}

	// Repositories
	userRepo := authadapters.NewUserGorm(gormDB)
	tasklistRepo := tasklistadapters.NewTaskListRepository(gormDB)
	taskRepo := taskadapters.NewTaskRepository(gormDB)

	// Platform services
	issuer := jwtmw.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	mailer := mail.NewMailer(cfg.Email)
	limiter := ratelimit.NewLimiter(rdb, "auth", authLimitMax, authLimitWindow)

	// Usecases
	authUC := authusecase.NewAuthUsecase(userRepo, issuer, mailer, cfg.Auth)
	tasklistUC := tasklistusecase.NewTaskListUsecase(tasklistRepo)
	taskUC := taskusecase.NewTaskUsecase(taskRepo, tasklistRepo)

	// Handlers
	handlers := router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC),
		TaskLists: tasklisthandler.NewTaskListHandler(tasklistUC),
		Tasks:     taskhandler.NewTaskHandler(taskUC),
	}

	r := router.NewRouter(handlers, issuer, userRepo, limiter)

	slog.Info("server starting", "addr", cfg.App.HTTPAddr, "env", cfg.App.Env)
	if err := r.Run(cfg.App.HTTPAddr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
