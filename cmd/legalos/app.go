package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/nguyentantai21042004/legal-os/internal/brief"
	"github.com/nguyentantai21042004/legal-os/internal/casefile"
	"github.com/nguyentantai21042004/legal-os/internal/config"
	"github.com/nguyentantai21042004/legal-os/internal/document"
	"github.com/nguyentantai21042004/legal-os/internal/extractor"
	"github.com/nguyentantai21042004/legal-os/internal/gemini"
	"github.com/nguyentantai21042004/legal-os/internal/logger"
	"github.com/nguyentantai21042004/legal-os/internal/media"
	"github.com/nguyentantai21042004/legal-os/internal/review"
	"github.com/nguyentantai21042004/legal-os/internal/simulator"
	"github.com/nguyentantai21042004/legal-os/internal/store"
	"github.com/nguyentantai21042004/legal-os/pkg/executor"
)

// app holds the wired services shared by every command.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	repo     store.Repository
	exporter document.Exporter
	cases    casefile.Service
	sims     simulator.Service
	reviewer review.Reviewer
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	log.Info(ctx, "System: %s/%s, %d CPU cores", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Model: %s, max concurrent transcriptions: %d", cfg.Gemini.Model, cfg.Performance.MaxConcurrent)
	if !cfg.HasAPIKey() {
		log.Warn(ctx, "No Gemini API key found in %s or $%s; model calls will fail", cfg.Paths.Secrets, config.EnvAPIKey)
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	repo, err := store.NewSQLite(cfg.Paths.Database)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	exec := executor.New()
	if cfg.FFmpeg.BinaryPath != "" && !exec.Available(cfg.FFmpeg.BinaryPath) {
		log.Warn(ctx, "ffmpeg not found at %s, recordings are stored as uploaded", cfg.FFmpeg.BinaryPath)
		cfg.FFmpeg.BinaryPath = ""
	}

	style := document.StylePlain
	if cfg.Export.Markdown {
		style = document.StyleMarkdown
	}

	client := gemini.New(cfg.APIKeys, gemini.Options{
		Model:          cfg.Gemini.Model,
		PollInterval:   cfg.Gemini.PollInterval,
		PollTimeout:    cfg.Gemini.PollTimeout,
		RequestTimeout: cfg.Gemini.RequestTimeout,
	}, log)
	ext := extractor.New()
	norm := media.New(exec, cfg.FFmpeg.BinaryPath, cfg.FFmpeg.SampleRate, log)
	exp := document.New(style, cfg.Paths.Temp)

	return &app{
		cfg:      cfg,
		log:      log,
		repo:     repo,
		exporter: exp,
		cases: casefile.New(casefile.Deps{
			Repo:        repo,
			Extractor:   ext,
			Synthesizer: brief.New(client, log, cfg.Performance.MaxConcurrent),
			Normalizer:  norm,
			Exporter:    exp,
			Logger:      log,
			TempDir:     cfg.Paths.Temp,
			LeaseTTL:    cfg.Performance.LeaseTTL,
		}),
		sims: simulator.New(simulator.Deps{
			Repo:           repo,
			Extractor:      ext,
			Client:         client,
			Normalizer:     norm,
			Exporter:       exp,
			Logger:         log,
			TempDir:        cfg.Paths.Temp,
			MaterialsChars: cfg.Limits.MaterialsChars,
		}),
		reviewer: review.New(ext, client, norm, log, cfg.Paths.Temp),
	}, nil
}

func (a *app) Close() error {
	return a.repo.Close()
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Temp,
		cfg.Paths.Inbox,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
