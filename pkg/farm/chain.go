package farm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxStatus is a mined transaction's outcome.
type TxStatus string

const (
	TxStatusSuccess TxStatus = "success"
	TxStatusFailed  TxStatus = "failed"
)

// Receipt records the outcome of a mined transaction. Once a receipt exists
// for a hash its status never changes; the client assumes one-confirmation
// finality and does not watch for reorgs.
type Receipt struct {
	TxHash      common.Hash `json:"tx_hash"`
	BlockHash   common.Hash `json:"block_hash"`
	BlockNumber uint64      `json:"block_number"`
	GasUsed     uint64      `json:"gas_used"`
	Status      TxStatus    `json:"status"`
}

// DefaultPollInterval is the receipt polling cadence WaitMined falls back to
// when given a non-positive interval.
const DefaultPollInterval = 2 * time.Second

// TransactionReceipt fetches txHash's receipt in a single attempt. While the
// transaction is not yet mined it returns (nil, false, nil): absence is a
// normal result, never an error. ErrLookup is returned only when the
// transport itself fails.
func (c *Client) TransactionReceipt(ctx context.Context, txHash common.Hash) (*Receipt, bool, error) {
	r, err := c.backend.TransactionReceipt(ctx, txHash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: receipt %s: %w", ErrLookup, txHash.Hex(), err)
	}
	return newReceipt(r), true, nil
}

// WaitMined polls TransactionReceipt at the given interval until the receipt
// appears or ctx ends. It packages the polling loop the single-fetch
// primitive leaves to callers; a transport failure is returned immediately
// rather than silently retried, so the caller keeps the resubmission
// decision.
func (c *Client) WaitMined(ctx context.Context, txHash common.Hash, interval time.Duration) (*Receipt, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		receipt, found, err := c.TransactionReceipt(ctx, txHash)
		if err != nil {
			return nil, err
		}
		if found {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// LatestBlock returns the current chain head's block number. A node without
// a head (or an unreachable one) yields ErrLookup.
func (c *Client) LatestBlock(ctx context.Context) (uint64, error) {
	head, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: latest block: %w", ErrLookup, err)
	}
	return head.Number.Uint64(), nil
}

func newReceipt(r *types.Receipt) *Receipt {
	status := TxStatusFailed
	if r.Status == types.ReceiptStatusSuccessful {
		status = TxStatusSuccess
	}
	receipt := &Receipt{
		TxHash:    r.TxHash,
		BlockHash: r.BlockHash,
		GasUsed:   r.GasUsed,
		Status:    status,
	}
	if r.BlockNumber != nil {
		receipt.BlockNumber = r.BlockNumber.Uint64()
	}
	return receipt
}
