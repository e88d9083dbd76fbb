package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ad-tracker/hookctl/pkg/api"
	"github.com/ad-tracker/hookctl/pkg/cache"
	"github.com/ad-tracker/hookctl/pkg/config"
	"github.com/ad-tracker/hookctl/pkg/state"
)

var errNotConfigured = errors.New(`not connected: run "hookctl configure" first`)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	verbose bool
	debug   bool
	noColor bool
	output  string
	noCache bool
}

// app carries the dependencies every command needs. It is built once per
// invocation and handed to the command constructors; there is no package
// level client or store.
type app struct {
	flags  rootFlags
	logger *slog.Logger

	config *config.Store
	state  *state.Store

	stdin  io.Reader
	stdout io.Writer

	// confirm asks the user a yes/no question. Replaced in tests.
	confirm func(prompt string) bool

	client *api.Client
	store  *cache.Cache
}

func newApp() *app {
	a := &app{
		logger: slog.Default(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
	a.config = config.NewStore(a.logger)
	a.state = state.NewStore(a.logger)
	a.confirm = func(prompt string) bool {
		// Prompt on stderr so piped stdout stays clean.
		return confirmPrompt(a.stdin, os.Stderr, prompt)
	}
	return a
}

// initLogging installs the process logger according to the root flags.
func (a *app) initLogging() {
	var level slog.Level
	switch {
	case a.flags.debug:
		level = slog.LevelDebug
	case a.flags.verbose:
		level = slog.LevelInfo
	default:
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	a.logger = slog.Default()
	a.logger.Debug("Logging initialized", "level", level.String())
}

// API returns the configured client, constructing it once from the stored
// credential. Commands that reach the backend must go through this accessor
// so an unconfigured state surfaces as an error immediately instead of a
// nil client somewhere downstream.
func (a *app) API() (*api.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	cred := a.config.Load()
	if cred == nil {
		return nil, errNotConfigured
	}
	a.client = api.New(cred.BaseURL, cred.APIKey, api.WithLogger(a.logger))
	return a.client, nil
}

// cacheStore returns the query cache, opening the on-disk tier on first
// use. A store that cannot be opened (locked by another invocation, bad
// permissions) degrades to the in-process tier with a warning.
func (a *app) cacheStore() *cache.Cache {
	if a.store != nil {
		return a.store
	}
	dir := filepath.Join(userCacheDir(), "hookctl")
	store, err := cache.Open(dir, a.logger)
	if err != nil {
		a.logger.Warn("falling back to in-memory cache", "dir", dir, "error", err)
		store = cache.NewMemory(a.logger)
	}
	a.store = store
	return a.store
}

// cacheOptions maps the root flags onto per-fetch cache behavior.
func (a *app) cacheOptions() cache.Options {
	return cache.Options{Bypass: a.flags.noCache}
}

// invalidate drops cached reads for a resource after a successful mutation.
// A failed invalidation is only a warning: the mutation itself went through.
func (a *app) invalidate(resource string) {
	if err := a.cacheStore().InvalidateResource(resource); err != nil {
		a.logger.Warn("cache invalidation failed", "resource", resource, "error", err)
	}
}

// Close releases the cache store if one was opened.
func (a *app) Close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("cache close failed", "error", err)
	}
}

// confirmPrompt asks a yes/no question and reads one line; anything but
// y/yes declines.
func confirmPrompt(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// userCacheDir resolves the base directory for the on-disk cache.
func userCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache")
	}
	return "."
}
