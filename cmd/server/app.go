package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/speaking-practice/backend/internal/audio"
	"github.com/speaking-practice/backend/internal/auth"
	"github.com/speaking-practice/backend/internal/catalog"
	"github.com/speaking-practice/backend/internal/config"
	"github.com/speaking-practice/backend/internal/database"
	"github.com/speaking-practice/backend/internal/evaluation"
	"github.com/speaking-practice/backend/internal/llm"
	"github.com/speaking-practice/backend/internal/logger"
	"github.com/speaking-practice/backend/internal/practice"
	"github.com/speaking-practice/backend/internal/progress"
	"github.com/speaking-practice/backend/internal/selection"
)

// app holds everything the subcommands share.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *sql.DB
	users   *auth.Store
	service *practice.Service
	synth   *audio.Synthesizer
}

func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.Setup(cfg.Server.LogLevel)

	db, err := database.OpenMigrated(ctx, database.Driver(cfg.Database.Driver), cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	client, err := llm.New(ctx, cfg.LLM.Client())
	if errors.Is(err, llm.ErrNotConfigured) {
		log.Warn("llm provider not configured, speech evaluation will degrade", "provider", cfg.LLM.Provider, "error", err)
		client = llm.Unavailable{Reason: err}
	} else if err != nil {
		db.Close()
		return nil, fmt.Errorf("init llm provider: %w", err)
	}

	users := auth.NewStore(db)
	service := practice.NewService(
		users,
		progress.NewStore(db),
		evaluation.NewLLMScorer(client),
		selection.NewDefault(),
		practice.Config{QuizSize: cfg.Quiz.Size, EvalTimeout: cfg.LLM.Timeout},
		log,
	)

	synth, err := audio.NewSynthesizer(
		cfg.Audio.Dir,
		catalog.MustLookup(catalog.ListenRepeat),
		audio.NewGoogleTTS(cfg.Audio.Language, cfg.Audio.Timeout),
		log,
	)
	if err != nil {
		log.Warn("audio disabled", "dir", cfg.Audio.Dir, "error", err)
	} else {
		service.SetSynthesizer(synth)
	}

	return &app{cfg: cfg, logger: log, db: db, users: users, service: service, synth: synth}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
