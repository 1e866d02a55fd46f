// Package farm is a thin client for a yield-farming pool contract. It binds a
// single deployed contract over a JSON-RPC node and exposes the pool's named
// operations as typed methods: deposit/withdraw/claim submissions, balance and
// reward reads, and the two chain helpers (receipt fetch, latest block).
//
// The client holds no mutable state after construction and performs no retries,
// caching, or nonce/gas management of its own; all encoding, signing, and
// transport live in go-ethereum. Every method takes a context so callers can
// bound individual calls, and a single client is safe for concurrent use.
package farm

import (
	"bytes"
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Backend is the read side of a chain node: contract calls, receipt lookups,
// and header reads. *ethclient.Client implements it.
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// Submitter is the write side: a raw JSON-RPC invoker used for
// eth_sendTransaction, where the node's managed account signs the submission.
// *rpc.Client implements it.
type Submitter interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
}

// Config describes a contract binding target.
type Config struct {
	RPCURL   string // JSON-RPC endpoint of the chain node
	Contract string // hex address of the deployed pool contract
	ABI      []byte // serialized contract ABI (JSON)
}

// Client is a bound yield-farm contract over a single node connection.
// The binding (address + parsed ABI) is fixed for the client's lifetime.
type Client struct {
	contract  common.Address
	abi       abi.ABI
	backend   Backend
	submitter Submitter
	rpc       *rpc.Client // owned transport, only set by Dial
}

// Dial validates the configuration and connects the client to the node.
// The ABI and address are checked before any transport handle is created;
// no on-chain probe is made, so a successful Dial says nothing about the
// contract actually existing at the address.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	parsed, err := abi.JSON(bytes.NewReader(cfg.ABI))
	if err != nil {
		return nil, fmt.Errorf("%w: parse abi: %w", ErrConfiguration, err)
	}
	if !common.IsHexAddress(cfg.Contract) {
		return nil, fmt.Errorf("%w: invalid contract address %q", ErrConfiguration, cfg.Contract)
	}

	rpcClient, err := rpc.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %q: %w", ErrConfiguration, cfg.RPCURL, err)
	}

	c := NewClient(ethclient.NewClient(rpcClient), rpcClient, common.HexToAddress(cfg.Contract), parsed)
	c.rpc = rpcClient
	return c, nil
}

// NewClient binds the contract over caller-supplied transport handles.
// Closing those handles stays the caller's job.
func NewClient(backend Backend, submitter Submitter, contract common.Address, contractABI abi.ABI) *Client {
	return &Client{
		contract:  contract,
		abi:       contractABI,
		backend:   backend,
		submitter: submitter,
	}
}

// Contract returns the bound contract address.
func (c *Client) Contract() common.Address {
	return c.contract
}

// Close releases the node connection if the client owns one (i.e. it was
// built by Dial). Clients built with NewClient are unaffected.
func (c *Client) Close() {
	if c.rpc != nil {
		c.rpc.Close()
	}
}
