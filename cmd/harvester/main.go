package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/vietddude/stylelog"

	"github.com/vietddude/harvester/internal/control"
	"github.com/vietddude/harvester/internal/core/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	isDebug := flag.Bool("debug", false, "Enable debug logging")
	once := flag.Bool("once", false, "Print a single pool report and exit")
	flag.Parse()

	// Optional .env for ${VAR} references in the config file
	_ = godotenv.Load()

	// Load Configuration first (before setting up logger)
	cfg, err := config.Load(*configPath)
	if err != nil {
		// Fall back to default logger for config load errors
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Simplifed logging logic (debug < info)
	slogLevel := slog.LevelInfo
	if *isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}

	// Initialize stylelog with tint.Options for level control
	stylelog.InitDefault(
		&tint.Options{
			Level:      slogLevel,
			TimeFormat: time.RFC3339,
		})
	slog.Info("Logger initialized", "level", slogLevel.String())

	// Transform config
	controlCfg, err := control.FromAppConfig(cfg)
	if err != nil {
		slog.Error("Failed to prepare configuration", "error", err)
		os.Exit(1)
	}

	// Setup Context with Cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize App
	app, err := control.NewApp(ctx, controlCfg)
	if err != nil {
		slog.Error("Failed to initialize harvester", "error", err)
		os.Exit(1)
	}

	if *once {
		if err := printReport(ctx, app, controlCfg); err != nil {
			slog.Error("Failed to read pool", "error", err)
			os.Exit(1)
		}
		app.Client().Close()
		return
	}

	// Handle OS Signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start App
	if err := app.Start(ctx); err != nil {
		slog.Error("Failed to start harvester", "error", err)
		os.Exit(1)
	}

	// Wait for Signal
	sig := <-sigChan
	slog.Info("Received signal, shutting down...", "signal", sig)

	// Graceful Shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Harvester stopped gracefully")
}

// printReport reads the pool once and prints a tabulated report.
func printReport(ctx context.Context, app *control.App, cfg control.Config) error {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := app.Client()

	block, err := client.LatestBlock(ctx)
	if err != nil {
		return err
	}
	stats, err := client.PoolStats(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "network\t%s\n", cfg.Network)
	fmt.Fprintf(w, "contract\t%s\n", cfg.ContractAddress)
	fmt.Fprintf(w, "latest block\t%d\n", block)
	fmt.Fprintf(w, "total value locked\t%s\n", stats.TotalValueLocked)
	fmt.Fprintf(w, "current apy (bps)\t%s\n", stats.CurrentAPY)

	for _, account := range cfg.Accounts {
		pos, err := client.Position(ctx, account)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\tstaked %s\tpending %s\n", pos.Account.Hex(), pos.Staked, pos.PendingRewards)
	}
	return w.Flush()
}
