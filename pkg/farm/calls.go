package farm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// PoolStats are the pool-wide figures reported by the contract.
type PoolStats struct {
	TotalValueLocked *big.Int // base units
	CurrentAPY       *big.Int // basis points, as the contract reports it
}

// Position is one account's stake in the pool.
type Position struct {
	Account        common.Address
	Staked         *big.Int
	PendingRewards *big.Int
}

// Deposit stakes amount (base units) into the pool as from. It returns the
// transaction hash as soon as the node accepts the submission; mining is
// observed separately via TransactionReceipt or WaitMined. A failed
// submission is never resubmitted here: a blind retry of a state-mutating
// call risks executing it twice.
func (c *Client) Deposit(ctx context.Context, from common.Address, amount *big.Int) (common.Hash, error) {
	return c.submit(ctx, from, "deposit", amount)
}

// Withdraw unstakes amount (base units) from the pool as from. Submission
// semantics match Deposit.
func (c *Client) Withdraw(ctx context.Context, from common.Address, amount *big.Int) (common.Hash, error) {
	return c.submit(ctx, from, "withdraw", amount)
}

// ClaimRewards claims from's accrued rewards. Submission semantics match
// Deposit.
func (c *Client) ClaimRewards(ctx context.Context, from common.Address) (common.Hash, error) {
	return c.submit(ctx, from, "claimRewards")
}

// StakedBalance reads from the contract how much account has staked.
func (c *Client) StakedBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	return c.queryUint(ctx, "balanceOf", account)
}

// PendingRewards reads account's unclaimed rewards.
func (c *Client) PendingRewards(ctx context.Context, account common.Address) (*big.Int, error) {
	return c.queryUint(ctx, "pendingRewards", account)
}

// TotalValueLocked reads the pool's total staked value.
func (c *Client) TotalValueLocked(ctx context.Context) (*big.Int, error) {
	return c.queryUint(ctx, "totalValueLocked")
}

// CurrentAPY reads the pool's current yield, in basis points.
func (c *Client) CurrentAPY(ctx context.Context) (*big.Int, error) {
	return c.queryUint(ctx, "getCurrentAPY")
}

// PoolStats reads the pool-wide figures. It is a plain composition of
// TotalValueLocked and CurrentAPY; the two reads are not atomic with respect
// to each other.
func (c *Client) PoolStats(ctx context.Context) (*PoolStats, error) {
	tvl, err := c.TotalValueLocked(ctx)
	if err != nil {
		return nil, err
	}
	apy, err := c.CurrentAPY(ctx)
	if err != nil {
		return nil, err
	}
	return &PoolStats{TotalValueLocked: tvl, CurrentAPY: apy}, nil
}

// Position reads account's staked balance and pending rewards. Like
// PoolStats, the two reads are sequential, not atomic.
func (c *Client) Position(ctx context.Context, account common.Address) (*Position, error) {
	staked, err := c.StakedBalance(ctx, account)
	if err != nil {
		return nil, err
	}
	pending, err := c.PendingRewards(ctx, account)
	if err != nil {
		return nil, err
	}
	return &Position{Account: account, Staked: staked, PendingRewards: pending}, nil
}

// txArgs is the eth_sendTransaction parameter object. Gas, fee, and nonce
// fields are omitted so the node fills them in; this client manages none of
// them.
type txArgs struct {
	From common.Address  `json:"from"`
	To   *common.Address `json:"to"`
	Data hexutil.Bytes   `json:"data"`
}

// submit packs a state-mutating contract call and sends it through the node
// as from. It returns the transaction hash on network acceptance, not on
// mining.
func (c *Client) submit(ctx context.Context, from common.Address, method string, args ...any) (common.Hash, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: pack %s: %w", ErrInvocation, method, err)
	}

	var txHash common.Hash
	params := &txArgs{From: from, To: &c.contract, Data: data}
	if err := c.submitter.CallContext(ctx, &txHash, "eth_sendTransaction", params); err != nil {
		return common.Hash{}, fmt.Errorf("%w: send %s: %w", ErrInvocation, method, err)
	}
	return txHash, nil
}

// queryUint performs an eth_call against the bound contract at the latest
// state and decodes the single uint256 return value.
func (c *Client) queryUint(ctx context.Context, method string, args ...any) (*big.Int, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: pack %s: %w", ErrQuery, method, err)
	}

	msg := ethereum.CallMsg{To: &c.contract, Data: data}
	out, err := c.backend.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: call %s: %w", ErrQuery, method, err)
	}

	vals, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrQuery, method, err)
	}
	if len(vals) != 1 {
		return nil, fmt.Errorf("%w: decode %s: want one return value, got %d", ErrQuery, method, len(vals))
	}
	v, ok := vals[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: decode %s: want uint256, got %T", ErrQuery, method, vals[0])
	}
	return v, nil
}
