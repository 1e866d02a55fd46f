// Package monitor periodically samples the pool contract and exposes the
// observations as Prometheus metrics and an HTTP health surface.
package monitor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/vietddude/harvester/internal/core/domain"
	"github.com/vietddude/harvester/pkg/farm"
)

// PoolReader is the read-only slice of the farm client the sampler uses.
type PoolReader interface {
	PoolStats(ctx context.Context) (*farm.PoolStats, error)
	Position(ctx context.Context, account common.Address) (*farm.Position, error)
	LatestBlock(ctx context.Context) (uint64, error)
}

// SamplerConfig drives one sampling loop.
type SamplerConfig struct {
	Network  domain.Network
	Accounts []common.Address
	Interval time.Duration
	Timeout  time.Duration // per-round bound, 0 = interval
}

// Sampler reads pool statistics on a fixed interval, publishes gauges, and
// keeps the newest sample for health reporting. All reads go through the
// stateless farm client; the sampler owns the only mutable state.
type Sampler struct {
	reader PoolReader
	cfg    SamplerConfig

	running atomic.Bool
	mu      sync.RWMutex
	last    *domain.PoolSample
	lastErr error
}

// NewSampler creates a sampler over the given pool reader.
func NewSampler(reader PoolReader, cfg SamplerConfig) *Sampler {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = cfg.Interval
	}
	return &Sampler{reader: reader, cfg: cfg}
}

// Interval returns the configured sampling cadence.
func (s *Sampler) Interval() time.Duration {
	return s.cfg.Interval
}

// Start runs the sampling loop until ctx is canceled. It is a no-op if the
// sampler is already running.
func (s *Sampler) Start(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	defer s.running.Store(false)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	// Initial sample before the first tick
	s.sample(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sample(ctx)
		}
	}
}

// LastSample returns the most recent successful observation, or nil before
// the first successful round.
func (s *Sampler) LastSample() *domain.PoolSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// LastError returns the previous round's failure, or nil if it succeeded.
func (s *Sampler) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// sample performs one observation round. A failed round is recorded and
// retried only by the next tick.
func (s *Sampler) sample(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	network := string(s.cfg.Network)
	start := time.Now()

	sample, err := s.observe(ctx)
	SampleDuration.WithLabelValues(network).Observe(time.Since(start).Seconds())

	s.mu.Lock()
	s.lastErr = err
	if err == nil {
		s.last = sample
	}
	s.mu.Unlock()

	if err != nil {
		SampleRounds.WithLabelValues(network, "error").Inc()
		slog.Warn("Pool sampling round failed", "network", network, "error", err)
		return
	}

	SampleRounds.WithLabelValues(network, "ok").Inc()
	s.publish(sample)
	slog.Info("Sampled pool",
		"network", network,
		"block", sample.BlockNumber,
		"tvl", sample.TVL,
		"apy_bps", sample.APY,
		"accounts", len(sample.Positions),
		"duration", time.Since(start).Round(time.Millisecond),
	)
}

// observe gathers one full sample: chain head, pool stats, and the watched
// accounts' positions with bounded fan-out.
func (s *Sampler) observe(ctx context.Context) (*domain.PoolSample, error) {
	block, err := s.reader.LatestBlock(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.reader.PoolStats(ctx)
	if err != nil {
		return nil, err
	}

	positions := make([]domain.AccountPosition, len(s.cfg.Accounts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4) // Limit concurrency to prevent RPC overload

	for i, account := range s.cfg.Accounts {
		g.Go(func() error {
			pos, err := s.reader.Position(gctx, account)
			if err != nil {
				return err
			}
			positions[i] = domain.AccountPosition{
				Account:        pos.Account,
				Staked:         pos.Staked,
				PendingRewards: pos.PendingRewards,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.NewPoolSample(s.cfg.Network, block, stats.TotalValueLocked, stats.CurrentAPY, positions), nil
}

func (s *Sampler) publish(sample *domain.PoolSample) {
	network := string(sample.Network)
	PoolTVL.WithLabelValues(network).Set(gaugeValue(sample.TVL))
	PoolAPY.WithLabelValues(network).Set(gaugeValue(sample.APY))
	ChainLatestBlock.WithLabelValues(network).Set(float64(sample.BlockNumber))
	for _, pos := range sample.Positions {
		account := pos.Account.Hex()
		AccountStaked.WithLabelValues(network, account).Set(gaugeValue(pos.Staked))
		AccountPendingRewards.WithLabelValues(network, account).Set(gaugeValue(pos.PendingRewards))
	}
}
