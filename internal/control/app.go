// Package control wires the farm client and the monitor into a runnable
// application with a Start/Stop lifecycle.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/vietddude/harvester/internal/core/config"
	"github.com/vietddude/harvester/internal/core/domain"
	"github.com/vietddude/harvester/internal/monitor"
	"github.com/vietddude/harvester/pkg/farm"
)

// Config holds the application configuration.
type Config struct {
	Port            int
	NodeURL         string
	RequestTimeout  time.Duration
	ContractAddress string
	ABI             []byte
	Network         domain.Network
	Interval        time.Duration
	Accounts        []common.Address
}

// FromAppConfig transforms the file-level configuration, reading the ABI
// from disk along the way.
func FromAppConfig(cfg *config.AppConfig) (Config, error) {
	abiBytes, err := cfg.LoadABI()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Port:            cfg.Server.Port,
		NodeURL:         cfg.Node.URL,
		RequestTimeout:  cfg.Node.RequestTimeout,
		ContractAddress: cfg.Contract.Address,
		ABI:             abiBytes,
		Network:         cfg.Contract.Network,
		Interval:        cfg.Monitor.Interval,
		Accounts:        cfg.WatchedAccounts(),
	}, nil
}

// App is the monitor daemon: a bound farm client, the sampling loop, and
// the health/metrics HTTP server.
type App struct {
	cfg          Config
	client       *farm.Client
	sampler      *monitor.Sampler
	healthServer *monitor.Server

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewApp creates a new App instance with all dependencies initialized.
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	// 1. Bind the pool contract
	client, err := farm.Dial(ctx, farm.Config{
		RPCURL:   cfg.NodeURL,
		Contract: cfg.ContractAddress,
		ABI:      cfg.ABI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init farm client: %w", err)
	}

	// 2. Sampling loop over the client's read surface
	sampler := monitor.NewSampler(client, monitor.SamplerConfig{
		Network:  cfg.Network,
		Accounts: cfg.Accounts,
		Interval: cfg.Interval,
		Timeout:  cfg.RequestTimeout,
	})

	// 3. Health + metrics surface
	healthMon := monitor.NewHealthMonitor(sampler)
	healthServer := monitor.NewServer(healthMon, cfg.Port)

	return &App{
		cfg:          cfg,
		client:       client,
		sampler:      sampler,
		healthServer: healthServer,
	}, nil
}

// Client exposes the bound farm client, e.g. for one-shot reports.
func (a *App) Client() *farm.Client {
	return a.client
}

// Start launches the sampler and the HTTP server. It does not block.
func (a *App) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.sampler.Start(runCtx)
	}()

	go func() {
		if err := a.healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Health server failed", "error", err)
		}
	}()

	slog.Info("Harvester started",
		"network", a.cfg.Network,
		"contract", a.cfg.ContractAddress,
		"interval", a.cfg.Interval,
		"port", a.cfg.Port,
	)
	return nil
}

// Stop shuts the HTTP server down gracefully, stops the sampler, and
// releases the node connection. It respects ctx as the shutdown deadline.
func (a *App) Stop(ctx context.Context) error {
	if a.cancel != nil {
		a.cancel()
	}

	err := a.healthServer.Stop(ctx)

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("sampler did not stop before deadline: %w", ctx.Err())
	}

	a.client.Close()
	return err
}
