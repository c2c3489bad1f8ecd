package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/kanji-cards/internal/config"
	"github.com/aliskhannn/kanji-cards/internal/delivery/httpapi"
	"github.com/aliskhannn/kanji-cards/internal/delivery/telegram"
	"github.com/aliskhannn/kanji-cards/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/kanji-cards/internal/infra/postgres/repository"
	"github.com/aliskhannn/kanji-cards/internal/infra/redis"
	"github.com/aliskhannn/kanji-cards/internal/logger"
	"github.com/aliskhannn/kanji-cards/internal/repository"
	"github.com/aliskhannn/kanji-cards/internal/scheduler"
	"github.com/aliskhannn/kanji-cards/internal/service"
	"github.com/aliskhannn/kanji-cards/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("application stopped with error", zap.Error(err))
	}
	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	// Dataset.
	sources := []repository.Source{repository.NewFileSource(cfg.Data.Path)}
	if cfg.Data.Fallback {
		sources = append(sources, repository.NewEmbeddedSource())
	}

	kanjiRepo := repository.NewKanjiRepository(lg.Named("repository"), sources...)
	if _, err := kanjiRepo.Load(ctx); err != nil {
		return err
	}

	// Persisted state.
	stateStore, closeStore, err := newStateStore(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Services.
	kanjiService := service.NewKanjiService(kanjiRepo)
	wordsService := service.NewWordsService(kanjiRepo)
	stateService := service.NewStateService(kanjiRepo, stateStore, lg.Named("state"))
	quizService := service.NewQuizService(kanjiRepo, storage.NewQuizStorage(), lg.Named("quiz"))
	quizService.SetDefaultCount(cfg.Quiz.DefaultCount)
	exportService := service.NewExportService(kanjiRepo, stateService, wordsService, lg.Named("export"))

	g, gctx := errgroup.WithContext(ctx)

	autosave := scheduler.New(stateService, cfg.State.AutosaveInterval, lg.Named("scheduler"))
	g.Go(func() error {
		return autosave.Run(gctx)
	})

	if cfg.Telegram.Token != "" {
		bot, err := newBot(cfg, lg)
		if err != nil {
			return err
		}

		handler := telegram.NewHandler(
			bot,
			lg.Named("telegram"),
			kanjiService,
			wordsService,
			stateService,
			quizService,
			exportService,
		)
		g.Go(func() error {
			return ignoreCanceled(handler.Run(gctx))
		})
	}

	if cfg.HTTP.Addr != "" {
		router := httpapi.NewRouter(httpapi.RouterConfig{
			Logger:        lg.Named("http"),
			KanjiHandler:  httpapi.NewKanjiHandler(kanjiService),
			WordsHandler:  httpapi.NewWordsHandler(wordsService, exportService),
			QuizHandler:   httpapi.NewQuizHandler(quizService),
			StateHandler:  httpapi.NewStateHandler(stateService),
			ExportHandler: httpapi.NewExportHandler(exportService),
		})
		server := httpapi.NewServer(cfg.HTTP.Addr, router, cfg.HTTP.ShutdownTimeout, lg.Named("http"))
		g.Go(func() error {
			return server.Run(gctx)
		})
	}

	runErr := g.Wait()

	// Final flush with a fresh context: the run context is already cancelled.
	flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := stateService.Flush(flushCtx); err != nil {
		lg.Error("final state flush failed", zap.Error(err))
	}

	return runErr
}

// newStateStore opens the configured state backend and returns its closer.
func newStateStore(ctx context.Context, cfg *config.Config, lg *zap.Logger) (service.StateStore, func(), error) {
	switch cfg.State.Backend {
	case config.BackendPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}

		repo := pgrepo.NewStateRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		lg.Info("state backend ready", zap.String("backend", config.BackendPostgres))
		return repo, pool.Close, nil

	case config.BackendRedis:
		rdb, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		lg.Info("state backend ready", zap.String("backend", config.BackendRedis))
		return redis.NewStateRepository(rdb, cfg.Redis.Prefix), func() { _ = rdb.Close() }, nil

	case config.BackendFile:
		store, err := storage.NewFileStateStorage(cfg.State.Path)
		if errors.Is(err, storage.ErrCorruptStateFile) {
			lg.Warn("state file is corrupt, starting with empty state", zap.Error(err))
		} else if err != nil {
			return nil, nil, err
		}
		lg.Info("state backend ready",
			zap.String("backend", config.BackendFile),
			zap.String("path", cfg.State.Path),
		)
		return store, func() {}, nil

	default:
		lg.Info("state backend ready", zap.String("backend", config.BackendMemory))
		return storage.NewStateStorage(), func() {}, nil
	}
}

func newBot(cfg *config.Config, lg *zap.Logger) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	bot.Debug = cfg.Telegram.Debug

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Запустить бота"},
		{Command: "card", Description: "Текущая карточка или карточка по номеру"},
		{Command: "next", Description: "Следующая карточка"},
		{Command: "prev", Description: "Предыдущая карточка"},
		{Command: "random", Description: "Случайная карточка"},
		{Command: "grid", Description: "Кандзи по неделям и дням"},
		{Command: "words", Description: "Список слов"},
		{Command: "quiz", Description: "Тест"},
		{Command: "stats", Description: "Статистика"},
		{Command: "export", Description: "Выгрузить данные изучения"},
		{Command: "exportwords", Description: "Выгрузить список слов"},
		{Command: "help", Description: "Помощь"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))
	return bot, nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
