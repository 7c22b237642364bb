package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jwulff/briefcast/internal/config"
	"github.com/jwulff/briefcast/internal/db"
	"github.com/jwulff/briefcast/internal/generation"
	"github.com/jwulff/briefcast/internal/logging"
	"github.com/jwulff/briefcast/internal/playback"
	"github.com/jwulff/briefcast/internal/workflow"
)

const lockFileName = "briefcast.lock"

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logger    *slog.Logger
	logCloser io.Closer
	store     *db.Store
	lock      *flock.Flock
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger opens the log file on first use. Failure falls back to
// a discarding logger; the terminal belongs to the command output.
func (c *commandContext) ensureLogger() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	logger, closer, err := logging.NewFromConfig(c.config)
	if err != nil {
		c.logger = logging.NewNop()
		return c.logger
	}
	c.logger, c.logCloser = logger, closer
	return c.logger
}

func (c *commandContext) openStore() (*db.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := db.Open(db.DefaultDBPath(cfg.Paths.DataDir), c.ensureLogger())
	if err != nil {
		return nil, fmt.Errorf("open podcast store: %w", err)
	}
	c.store = store
	return store, nil
}

// acquireLock holds an advisory lock on the data directory so two
// interactive sessions never share it.
func (c *commandContext) acquireLock() error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	lock := flock.New(filepath.Join(cfg.Paths.DataDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another briefcast session is already using this data directory")
	}
	c.lock = lock
	return nil
}

func (c *commandContext) generator() generation.Generator {
	cfg := c.config
	if cfg.Service.Demo {
		return generation.Demo{Delay: cfg.AudioDelay()}
	}
	return generation.NewClient(cfg.Service.BaseURL, cfg.Timeout(), c.ensureLogger())
}

func (c *commandContext) controller(cmd *cobra.Command) (*workflow.Controller, error) {
	store, err := c.openStore()
	if err != nil {
		return nil, err
	}
	return workflow.New(workflow.Options{
		Generator:  c.generator(),
		Repository: store,
		AudioDelay: c.config.AudioDelay(),
		Context:    cmd.Context(),
		Logger:     c.ensureLogger(),
	}), nil
}

// player returns the configured external player, or nil for silent
// playback.
func (c *commandContext) player() playback.Player {
	if p := playback.ParsePlayer(c.config.Playback.Player); p != nil {
		return p
	}
	return nil
}

func (c *commandContext) close() error {
	var errs []error
	if c.store != nil {
		errs = append(errs, c.store.Close())
		c.store = nil
	}
	if c.lock != nil {
		errs = append(errs, c.lock.Unlock())
		c.lock = nil
	}
	if c.logCloser != nil {
		errs = append(errs, c.logCloser.Close())
		c.logCloser = nil
	}
	return errors.Join(errs...)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
