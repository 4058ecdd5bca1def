// Package cli wires the services together and exposes the cobra commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ederavila/focal/internal/config"
	"github.com/ederavila/focal/internal/outbox"
	"github.com/ederavila/focal/internal/services/chime"
	"github.com/ederavila/focal/internal/services/entries"
	"github.com/ederavila/focal/internal/services/finalize"
	"github.com/ederavila/focal/internal/services/pomodoro"
	"github.com/ederavila/focal/internal/services/quicktimer"
	"github.com/ederavila/focal/internal/snapshot"
	"github.com/ederavila/focal/internal/timer"
)

// Dependencies holds all the services needed for CLI commands
type Dependencies struct {
	Config   *config.Config
	Engine   *timer.Engine
	Pomodoro *pomodoro.Controller
	Quick    *quicktimer.Service
	Finalize *finalize.Service
	Outbox   *outbox.Outbox
	Logger   *slog.Logger

	logFile *os.File
}

// NewDependencies loads configuration and constructs the full service graph.
func NewDependencies() (*Dependencies, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, logFile := newLogger(cfg.Storage.LogPath)

	box, err := outbox.Open(cfg.Storage.OutboxPath, logger)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, fmt.Errorf("failed to open outbox: %w", err)
	}

	store := snapshot.NewFileStore(cfg.Storage.SnapshotPath)
	engine := timer.New(store, timer.Options{Logger: logger})

	// The remote API is optional; without it entries stay queued locally.
	var api finalize.EntriesClient
	if cfg.API.BaseURL != "" {
		client, err := entries.NewClient(&http.Client{}, logger, cfg.API.BaseURL, cfg.API.Token, cfg.Timeout())
		if err != nil {
			engine.Close()
			box.Close()
			if logFile != nil {
				logFile.Close()
			}
			return nil, fmt.Errorf("failed to build entries client: %w", err)
		}
		api = client
	}

	workspace := finalize.Workspace{
		OrganizationID: cfg.Workspace.OrganizationID,
		UserID:         cfg.Workspace.UserID,
	}
	finalizeSvc := finalize.NewService(engine, box, api, workspace, logger)

	var ringer chime.Ringer = chime.Silent{}
	if cfg.Timer.Chime {
		ringer = chime.NewTerminalBell(nil)
	}

	ctrl := pomodoro.NewController(engine, finalizeSvc, ringer, pomodoro.Config{
		FocusSeconds:   uint32(cfg.Timer.FocusSeconds),
		BreakSeconds:   uint32(cfg.Timer.BreakSeconds),
		LongBreakEvery: cfg.Timer.LongBreakEvery,
	}, logger, time.Now)

	quick := quicktimer.NewService(engine, finalizeSvc, logger)

	return &Dependencies{
		Config:   cfg,
		Engine:   engine,
		Pomodoro: ctrl,
		Quick:    quick,
		Finalize: finalizeSvc,
		Outbox:   box,
		Logger:   logger,
		logFile:  logFile,
	}, nil
}

// Close releases the engine, the outbox and the log file.
func (d *Dependencies) Close() {
	d.Engine.Close()
	if err := d.Outbox.Close(); err != nil {
		d.Logger.Error("failed to close outbox", "error", err)
	}
	if d.logFile != nil {
		d.logFile.Close()
	}
}

// newLogger writes structured logs to the configured file. The TUI owns
// stdout and stderr, so logging falls back to discard when the file cannot
// be opened.
func newLogger(path string) (*slog.Logger, *os.File) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}
	return slog.New(slog.NewTextHandler(file, nil)), file
}
