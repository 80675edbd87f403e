package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/fsnotify/fsnotify"

	"github.com/mgomes/clairscript/clair"
)

func watchCommand(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	verbose := fs.Bool("v", false, "log every file system event")
	maxNesting := fs.Int("max-nesting", defaultMaxNesting, "reject programs nested deeper than this (0 for no limit)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("clair watch: path required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newWatchLogger(os.Stderr, *verbose)
	return runWatch(ctx, logger, targets, clair.Config{MaxNesting: *maxNesting})
}

func newWatchLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// runWatch checks every token file under targets once, then re-checks each
// token file that is written or created until ctx is done.
func runWatch(ctx context.Context, logger *slog.Logger, targets []string, cfg clair.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs, err := collectWatchDirs(targets)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
		logger.Debug("watching", "dir", dir)
	}

	files, err := collectTokenFiles(targets)
	if err != nil {
		return err
	}
	failures, err := checkFiles(ctx, files, cfg, runtime.GOMAXPROCS(0))
	if err != nil {
		return err
	}
	for _, failure := range failures {
		logger.Error("parse failed", "err", failure)
	}
	logger.Info("checked", "files", len(files), "failed", len(failures))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			logger.Debug("event", "op", event.Op.String(), "path", event.Name)
			handleWatchEvent(watcher, logger, event, cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}

func handleWatchEvent(watcher *fsnotify.Watcher, logger *slog.Logger, event fsnotify.Event, cfg clair.Config) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// Removed again before we got to it.
		return
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := watcher.Add(event.Name); err != nil {
				logger.Warn("cannot watch directory", "dir", event.Name, "err", err)
			}
		}
		return
	}
	if !isTokenFile(event.Name) {
		return
	}

	if err := checkFile(event.Name, cfg); err != nil {
		logger.Error("parse failed", "err", err)
		return
	}
	logger.Info("ok", "file", event.Name)
}
