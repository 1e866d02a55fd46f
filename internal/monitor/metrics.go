package monitor

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PoolTVL tracks the pool's total value locked, in base units.
	PoolTVL = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "harvester_pool_tvl",
			Help: "Total value locked in the pool (base units)",
		},
		[]string{"network"},
	)

	// PoolAPY tracks the pool's reported yield in basis points.
	PoolAPY = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "harvester_pool_apy_bps",
			Help: "Current pool APY in basis points",
		},
		[]string{"network"},
	)

	// ChainLatestBlock tracks the chain head observed at sampling time.
	ChainLatestBlock = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "harvester_chain_latest_block",
			Help: "Latest block height of the chain",
		},
		[]string{"network"},
	)

	// AccountStaked tracks each watched account's staked balance.
	AccountStaked = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "harvester_account_staked",
			Help: "Staked balance per watched account (base units)",
		},
		[]string{"network", "account"},
	)

	// AccountPendingRewards tracks each watched account's unclaimed rewards.
	AccountPendingRewards = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "harvester_account_pending_rewards",
			Help: "Pending rewards per watched account (base units)",
		},
		[]string{"network", "account"},
	)

	// SampleRounds counts sampling rounds by outcome.
	SampleRounds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harvester_sample_rounds_total",
			Help: "Total number of sampling rounds",
		},
		[]string{"network", "status"},
	)

	// SampleDuration tracks how long a full sampling round takes.
	SampleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "harvester_sample_duration_seconds",
			Help:    "Sampling round duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"network"},
	)
)

// gaugeValue converts a chain amount to the float64 a gauge can hold;
// precision loss is acceptable for monitoring.
func gaugeValue(v *big.Int) float64 {
	if v == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}
