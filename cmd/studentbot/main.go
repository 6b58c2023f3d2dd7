package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studentbot/bot"
	coreconfig "studentbot/core/config"
	"studentbot/core/database"
	"studentbot/core/logger"
	tg "studentbot/core/telegram"
	"studentbot/core/telegram/router"
	"studentbot/i18n"
	"studentbot/services/answers"
	"studentbot/services/forms"
	"studentbot/services/gamification"
	"studentbot/storage"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := coreconfig.Load(configPath)
	if err != nil {
		slog.Error("config load failed", "err", err.Error())
		os.Exit(1)
	}

	if err := logger.InitLogger(cfg); err != nil {
		slog.Error("logger init failed", "err", err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error(ctx, "app", "fatal", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *coreconfig.Config) error {
	dbCfg := database.Config(cfg.Database)
	if err := database.RunMigrations(dbCfg); err != nil {
		return err
	}

	db, err := database.Connect(dbCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	bundle, err := i18n.Load(cfg.Locale.Dir, cfg.Locale.DefaultLanguage)
	if err != nil {
		return err
	}

	profiles := storage.NewProfileRepository(db)
	stories := storage.NewStoryRepository(db)
	points := gamification.NewService(profiles)

	source := storage.NewKnowledgeFiles(cfg.Knowledge.QnAPath, cfg.Knowledge.KnowledgePath)
	embedder := answers.NewOllamaClient(
		cfg.Embedding.BaseURL,
		cfg.Embedding.Model,
		time.Duration(cfg.Embedding.TimeoutSeconds)*time.Second,
	)
	pipeline := answers.NewPipeline(source, embedder, answers.Options{
		SimilarityThreshold: cfg.Embedding.SimilarityThreshold,
		EmbedTimeout:        time.Duration(cfg.Embedding.TimeoutSeconds) * time.Second,
	})
	if err := pipeline.Reload(ctx); err != nil {
		// Exact matching still works without embeddings; keep starting.
		logger.Warn(ctx, "app", "knowledge.semantic_unavailable",
			slog.String("err", err.Error()),
		)
	}

	store := forms.NewMemoryStore(
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		time.Duration(cfg.Session.CleanupMinutes)*time.Minute,
	)
	engine := forms.NewEngine(store)
	if err := forms.RegisterAll(engine); err != nil {
		return err
	}

	handlers := bot.New(bot.Deps{
		Config:   cfg,
		Engine:   engine,
		Bundle:   bundle,
		Profiles: profiles,
		Stories:  stories,
		Answers:  pipeline,
		Points:   points,
	})

	reg := tg.NewRegistry()
	handlers.Setup(reg)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: cfg.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(handlers, reg, router.TextOptions{
		FlowHandler: handlers.HandleText,
	})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	return tg.Run(ctx, tg.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(cfg, nil),
		Routes:      routes,
	})
}
