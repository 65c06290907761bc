// Package main provides the mixtape daemon entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apiconnect "github.com/osa030/mixtape/internal/api/connect"
	"github.com/osa030/mixtape/internal/app/filter"
	"github.com/osa030/mixtape/internal/app/persist"
	"github.com/osa030/mixtape/internal/app/session"
	"github.com/osa030/mixtape/internal/domain/playlist"
	"github.com/osa030/mixtape/internal/infra/config"
	"github.com/osa030/mixtape/internal/infra/logger"
	"github.com/osa030/mixtape/internal/infra/player"
	"github.com/osa030/mixtape/internal/infra/storage"
)

var (
	app        = kingpin.New("mixtaped", "mixtape playlist daemon")
	configPath = app.Flag("config", "Path to config file").Default("config/mixtape.yaml").Envar("MIXTAPE_CONFIG").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()
	importLink = app.Flag("import", "Share link or token loaded at startup when the playlist is empty").String()

	// list-filters command
	listFiltersCmd = app.Command("list-filters", "List available add filters and exit")
)

func init() {
	app.Command("start", "Start the daemon (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if command == listFiltersCmd.FullCommand() {
		printFilters()
		return
	}

	loggerConfig := logger.Config{
		Output: "stdout",
		Level:  "info",
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	closeLog, err := logger.Init(loggerConfig)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer closeLog()

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Daemon error: %v", err)
		closeLog()
		os.Exit(1)
	}
}

// run executes the daemon. Returning instead of exiting keeps the deferred
// cleanup running on errors.
func run(cfg *config.Config) error {
	if err := validateFilterConfig(cfg); err != nil {
		return fmt.Errorf("invalid filter config: %w", err)
	}

	kv, err := storage.Open(cfg.Storage.Driver, cfg.StoragePath())
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer kv.Close()
	zlog.Info().Msgf("Playlist storage: driver=%s path=%s key=%s", cfg.Storage.Driver, cfg.StoragePath(), cfg.Storage.Key)

	store := playlist.NewStore(persist.NewAdapter(kv, cfg.Storage.Key))

	clock := player.NewClock(player.Config{
		TickInterval:  time.Duration(cfg.Playback.TickIntervalMs) * time.Millisecond,
		DefaultLength: time.Duration(cfg.Playback.DefaultTrackSec) * time.Second,
	})

	sessionMgr, err := session.NewManager(cfg, store, clock)
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}
	sessionMgr.Start()
	defer sessionMgr.Close()

	if *importLink != "" {
		importShared(sessionMgr, *importLink)
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(apiconnect.NewMux(sessionMgr, cfg), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	serverStartedCh := make(chan struct{})

	go func() {
		zlog.Info().Msgf("Starting server: addr=%s", cfg.Server.Addr)
		close(serverStartedCh)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	<-serverStartedCh
	// Give the listener a moment before running hooks that may call it.
	time.Sleep(100 * time.Millisecond)
	executeHooks(cfg.Server.Hooks.OnStarted, "on_started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close the session first so subscription streams return
	sessionMgr.Close()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	zlog.Info().Msg("Server stopped")
	executeHooks(cfg.Server.Hooks.OnStopped, "on_stopped")
	return nil
}

// importShared loads a share link given on the command line. Failures are
// logged; the daemon keeps the stored playlist.
func importShared(sessionMgr *session.Manager, input string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := sessionMgr.Import(ctx, input)
	if err != nil {
		zlog.Warn().Msgf("Shared playlist not loaded: %s (%v)", sessionMgr.Describe(err), err)
		return
	}
	zlog.Info().Msgf("Shared playlist loaded: tracks=%d", res.Count)
}

// printFilters prints available filters.
func printFilters() {
	filters := []filter.Filter{filter.NewDuplicateTrackFilter()}
	for _, name := range filter.RegisteredNames() {
		filters = append(filters, filter.GetRegistered()[name]())
	}

	fmt.Println("Available Filters:")
	for _, f := range filters {
		codes := strings.Join(f.ReturnCodes(), ", ")
		fmt.Printf("  %-30s - %s [codes: %s]\n", f.Name(), f.Description(), codes)
	}
}

// validateFilterConfig validates filter configurations.
func validateFilterConfig(cfg *config.Config) error {
	registry := filter.GetRegistered()

	for filterName, filterCfg := range cfg.Filters {
		if !filterCfg.Enabled {
			continue
		}

		factory, exists := registry[filterName]
		if !exists {
			return fmt.Errorf("unknown filter %s", filterName)
		}

		f := factory()
		if err := f.ValidateConfig(filterCfg.Settings); err != nil {
			return fmt.Errorf("filter %s: %w", filterName, err)
		}
	}

	return nil
}

// executeHooks runs a list of shell commands.
func executeHooks(hooks []string, stage string) {
	if len(hooks) == 0 {
		return
	}

	zlog.Info().Msgf("Executing %s hooks (%d commands)", stage, len(hooks))

	for _, hook := range hooks {
		zlog.Info().Msgf("Executing hook: %s", hook)
		cmd := exec.Command("sh", "-c", hook)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			zlog.Error().Err(err).Msgf("Failed to execute hook: %s", hook)
		}
	}
}
