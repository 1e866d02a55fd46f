package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// PoolSample is one observation round of the monitored pool: the pool-wide
// figures, the chain head at sampling time, and the watched accounts'
// positions. Samples are kept in memory only; the newest one backs the
// health report.
type PoolSample struct {
	ID          uuid.UUID
	Network     Network
	BlockNumber uint64
	TVL         *big.Int
	APY         *big.Int
	Positions   []AccountPosition
	ObservedAt  time.Time
}

// AccountPosition is a watched account's stake at sampling time.
type AccountPosition struct {
	Account        common.Address
	Staked         *big.Int
	PendingRewards *big.Int
}

// NewPoolSample stamps a sample with a fresh id and the observation time.
func NewPoolSample(network Network, block uint64, tvl, apy *big.Int, positions []AccountPosition) *PoolSample {
	return &PoolSample{
		ID:          uuid.New(),
		Network:     network,
		BlockNumber: block,
		TVL:         tvl,
		APY:         apy,
		Positions:   positions,
		ObservedAt:  time.Now(),
	}
}

// Age reports how long ago the sample was taken.
func (s *PoolSample) Age() time.Duration {
	return time.Since(s.ObservedAt)
}
