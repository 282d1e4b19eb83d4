package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tartampluch/go-gymtrack/internal/backend"
	"github.com/tartampluch/go-gymtrack/internal/config"
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	configPath := flag.String(config.FlagConfig, config.DefaultConfigPath, config.FlagDescConfig)
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	flag.Parse()

	if *showVersion {
		fmt.Printf(config.MsgVersionOutput, config.BackendName, config.Version, runtime.GOOS, runtime.GOARCH)
		return config.ExitCodeSuccess
	}

	level := slog.LevelInfo
	if *debugMode {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompBackend,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompBackend)
	return config.ExitCodeSuccess
}

// run opens the database, mounts the API and serves until ctx is cancelled.
func run(ctx context.Context, configPath string) error {
	cfg, err := backend.LoadConfig(configPath)
	if err != nil {
		return err
	}

	db, err := backend.Open(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := backend.InitDB(db); err != nil {
		return err
	}

	svc := backend.NewService(db, []byte(cfg.Auth.Secret), cfg.Auth.TokenTTL)
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      backend.NewRouter(cfg, svc),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)
	go func() {
		slog.Info(config.MsgBackendStart,
			config.LogKeyComponent, config.CompBackend,
			config.LogKeyAddr, cfg.Addr,
			config.LogKeyMode, cfg.Mode,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompBackend)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}
