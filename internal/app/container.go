// Package app provides the dependency injection container for dash.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/idilsaglam/dash/internal/config"
	"github.com/idilsaglam/dash/internal/logging"
	"github.com/idilsaglam/dash/internal/store"
	"github.com/idilsaglam/dash/internal/store/jsonstore"
	"github.com/idilsaglam/dash/internal/store/memstore"
	"github.com/idilsaglam/dash/internal/store/sqlitestore"
	"github.com/idilsaglam/dash/internal/taskstore"
	"github.com/idilsaglam/dash/internal/widget"
)

// Container owns the long-lived collaborators of one dash process.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Slots  store.Slots
	Tasks  *taskstore.Store
	Board  *widget.Board

	closers []io.Closer
}

// New opens logging and storage as configured and loads the task list.
func New(cfg *config.Config) (*Container, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger, logCloser, err := logging.Open(cfg.LogPath(), level)
	if err != nil {
		return nil, err
	}

	slots, err := OpenSlots(cfg)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	c := NewWithSlots(cfg, slots, logger, nil)
	c.closers = append(c.closers, logCloser)
	return c, nil
}

// NewWithSlots wires a container around existing storage. client may be nil.
func NewWithSlots(cfg *config.Config, slots store.Slots, logger *slog.Logger, client *http.Client) *Container {
	if logger == nil {
		logger = logging.Discard()
	}
	tasks := taskstore.Open(slots,
		taskstore.WithKey(cfg.Storage.Key),
		taskstore.WithLogger(logger.With("component", "taskstore")),
	)
	return &Container{
		Config:  cfg,
		Logger:  logger,
		Slots:   slots,
		Tasks:   tasks,
		Board:   widget.NewBoard(cfg.Widgets, client, logger.With("component", "widget")),
		closers: []io.Closer{slots},
	}
}

// OpenSlots opens the configured storage backend.
func OpenSlots(cfg *config.Config) (store.Slots, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return jsonstore.New(cfg.Storage.Dir), nil
	case config.BackendSQLite:
		s, err := sqlitestore.Open(cfg.DatabasePath())
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		return s, nil
	case config.BackendMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// Close releases storage and log files.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}
