package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Elias0099/examenes-api/internal/app"
	"github.com/Elias0099/examenes-api/internal/auth"
	"github.com/Elias0099/examenes-api/internal/observability"
	"github.com/Elias0099/examenes-api/internal/platform/cache"
	"github.com/Elias0099/examenes-api/internal/platform/db"
	"github.com/Elias0099/examenes-api/internal/quiz/categories"
	"github.com/Elias0099/examenes-api/internal/quiz/exams"
	"github.com/Elias0099/examenes-api/internal/quiz/questions"
	"github.com/Elias0099/examenes-api/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, login throttling disabled", slog.Any("error", err))
		redisClient = nil
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	codec := auth.NewTokenCodec([]byte(cfg.JWTSecret), cfg.JWTTTL)
	limiter := auth.NewLoginLimiter(redisClient, cfg.LoginMaxAttempts, cfg.LoginWindow)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(logger, authRepo, codec, limiter)
	authHandler := auth.NewHandler(logger, authService)
	authMiddleware := auth.Middleware{Service: authService, Logger: logger}

	usersService := users.NewService(users.NewRepository(pool))
	usersHandler := users.NewHandler(logger, usersService, authMiddleware)

	categoriesService := categories.NewService(categories.NewRepository(pool))
	categoriesHandler := categories.NewHandler(logger, categoriesService, authMiddleware)

	examsService := exams.NewService(exams.NewRepository(pool))
	examsHandler := exams.NewHandler(logger, examsService, authMiddleware)

	questionsService := questions.NewService(questions.NewRepository(pool))
	questionsHandler := questions.NewHandler(logger, questionsService, authMiddleware)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Metrics:           observability.NewMetrics(),
		AuthHandler:       authHandler,
		UsersHandler:      usersHandler,
		CategoriesHandler: categoriesHandler,
		ExamsHandler:      examsHandler,
		QuestionsHandler:  questionsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
