// Package main provides the entry point for trafic, a small utility that
// meters host network traffic: it samples the OS byte counters on an
// interval, persists per-tick deltas to a local ledger, and shows running
// totals in the system tray or on the console.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/shini4i/trafic/internal/config"
	"github.com/shini4i/trafic/internal/logging"
	"github.com/shini4i/trafic/internal/meter"
	"github.com/shini4i/trafic/internal/report"
	"github.com/shini4i/trafic/internal/singleinst"
	"github.com/shini4i/trafic/internal/source"
	"github.com/shini4i/trafic/internal/store"
	"github.com/shini4i/trafic/internal/ui"
)

const version = "1.0.0"

func main() {
	logging.SetupFromEnv()

	if err := run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if errors.Is(err, singleinst.ErrAlreadyRunning) {
			fmt.Fprintln(os.Stderr, "trafic is already running")
			os.Exit(1)
		}
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("trafic", flag.ContinueOnError)
	var (
		statistics = fs.Bool("statistics", false, "print the traffic report and exit")
		console    = fs.Bool("console", false, "run without the tray icon, printing status lines to stdout")
		interval   = fs.Duration("interval", 0, "poll interval override (e.g. 5m)")
		dataDir    = fs.String("data-dir", "", "override the data directory")
	)

	root := &ffcli.Command{
		Name:       "trafic",
		ShortUsage: "trafic [flags]",
		ShortHelp:  "Meter host network traffic and keep daily statistics.",
		FlagSet:    fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix("TRAFIC")},
		Exec: func(ctx context.Context, _ []string) error {
			return launch(ctx, *statistics, *console, *interval, *dataDir)
		},
	}
	return root.ParseAndRun(ctx, args)
}

func launch(ctx context.Context, statistics, console bool, interval time.Duration, dataDirFlag string) error {
	cfg, paths, err := config.LoadOrCreate()
	if err != nil {
		return err
	}
	slog.Debug("Configuration loaded", "install_id", cfg.InstallID, "poll_interval_seconds", cfg.PollIntervalSeconds)

	dataDir := paths.DataDir
	if cfg.DataDir != "" {
		dataDir = cfg.DataDir
	}
	if dataDirFlag != "" {
		dataDir = dataDirFlag
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	// The ledger has exactly one writer per user; the lock covers the
	// report path too since bbolt cannot share the file anyway.
	lock, err := singleinst.Acquire(dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	st, err := store.Open(filepath.Join(dataDir, store.FileName))
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if statistics {
		sums, err := st.DaySums(0)
		if err != nil {
			return err
		}
		fmt.Print(report.Build(sums).Render())
		return nil
	}

	if interval <= 0 {
		interval = time.Duration(cfg.PollIntervalSeconds) * time.Second
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := source.New(ctx)

	if console {
		fmt.Printf("%s v%s\n", config.AppName, version)
		m := meter.New(src, st, ui.NewConsole(nil), interval)
		m.Run(ctx)
		return nil
	}

	tray := ui.NewTray()
	m := meter.New(src, st, tray, interval)

	if err := tray.OnStatistics(func() { printStatistics(st) }); err != nil {
		return err
	}
	if err := tray.OnQuit(stop); err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.Run(ctx)
	}()

	// Close the tray when the context ends, whether from a signal or the
	// Quit menu entry.
	go func() {
		<-ctx.Done()
		tray.Quit()
	}()

	err = tray.Run()
	stop()
	wg.Wait()
	return err
}

func printStatistics(st *store.Store) {
	sums, err := st.DaySums(0)
	if err != nil {
		slog.Error("Failed to read statistics", "error", err)
		return
	}
	fmt.Print(report.Build(sums).Render())
}
