package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/remote"
	"github.com/tartampluch/go-gymtrack/internal/server"
	"github.com/tartampluch/go-gymtrack/internal/ui"
)

func main() {
	os.Exit(runMain())
}

type options struct {
	debug   bool
	backend string
}

func runMain() int {
	var opts options
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	flag.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	flag.StringVar(&opts.backend, config.FlagBackend, "", config.FlagDescBackend)
	flag.Parse()

	if *showVersion {
		fmt.Printf(config.MsgVersionOutput, config.AppName, config.Version, runtime.GOOS, runtime.GOARCH)
		return config.ExitCodeSuccess
	}

	logger, closeLog := newLogger(opts.debug)
	defer closeLog()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)

	if err := run(ctx, opts); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the tray app and blocks until it quits.
func run(ctx context.Context, opts options) error {
	a := app.NewWithID(config.AppID)
	prefs := a.Preferences()

	if err := applyBackendOverride(prefs, opts.backend); err != nil {
		return err
	}
	prefs.SetString(config.PrefLastRun, config.Version)

	// Read once; a port change needs a restart.
	srv := server.NewFeedServer(prefs.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	gui := ui.NewGymTrackApp(a, ctx, srv)

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	gui.Run()
	return nil
}

// applyBackendOverride persists a -backend value after checking it parses.
func applyBackendOverride(prefs fyne.Preferences, raw string) error {
	if raw == "" {
		return nil
	}
	client, err := remote.NewHTTPClient(raw, nil)
	if err != nil {
		return err
	}
	prefs.SetString(config.PrefBackendURL, client.BaseURL())
	slog.Info(config.MsgBackendFlag,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyURL, client.BaseURL(),
	)
	return nil
}

// newLogger logs JSON to stdout and to a file in the user cache dir.
// The previous run's file is kept next to it.
func newLogger(debug bool) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level, AddSource: debug}

	f, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, config.LogFileName, err)
		return slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts)), func() {}
	}

	w := io.MultiWriter(os.Stdout, f)
	return slog.New(slog.NewJSONHandler(w, handlerOpts)), func() { _ = f.Close() }
}

func openLogFile() (*os.File, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}
	dir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	path := filepath.Join(dir, config.LogFileName)
	if err := os.Rename(path, path+config.LogFilePrevSuffix); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, path, err)
	}
	return os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
}
