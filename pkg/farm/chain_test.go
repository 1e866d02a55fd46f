package farm

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var testTxHash = common.HexToHash("0xdeadbeef00000000000000000000000000000000000000000000000000000001")

func minedReceipt(status uint64, block uint64) *types.Receipt {
	return &types.Receipt{
		TxHash:      testTxHash,
		BlockHash:   common.HexToHash("0xabc"),
		BlockNumber: new(big.Int).SetUint64(block),
		GasUsed:     21000,
		Status:      status,
	}
}

// =============================================================================
// Receipt fetch
// =============================================================================

func TestTransactionReceipt_NotYetMined(t *testing.T) {
	client := newTestClient(t, newMockBackend(), &mockSubmitter{})

	receipt, found, err := client.TransactionReceipt(context.Background(), testTxHash)
	if err != nil {
		t.Fatalf("absence must not be an error, got %v", err)
	}
	if found {
		t.Error("expected found=false for an unmined hash")
	}
	if receipt != nil {
		t.Errorf("expected nil receipt, got %+v", receipt)
	}
}

func TestTransactionReceipt_Mined(t *testing.T) {
	backend := newMockBackend()
	backend.receipts[testTxHash] = minedReceipt(types.ReceiptStatusSuccessful, 128)
	client := newTestClient(t, backend, &mockSubmitter{})

	receipt, found, err := client.TransactionReceipt(context.Background(), testTxHash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}
	if receipt.Status != TxStatusSuccess {
		t.Errorf("expected status success, got %s", receipt.Status)
	}
	if receipt.BlockNumber != 128 {
		t.Errorf("expected block 128, got %d", receipt.BlockNumber)
	}
	if receipt.TxHash != testTxHash {
		t.Errorf("expected hash %s, got %s", testTxHash.Hex(), receipt.TxHash.Hex())
	}
}

func TestTransactionReceipt_FailedStatus(t *testing.T) {
	backend := newMockBackend()
	backend.receipts[testTxHash] = minedReceipt(types.ReceiptStatusFailed, 64)
	client := newTestClient(t, backend, &mockSubmitter{})

	receipt, _, err := client.TransactionReceipt(context.Background(), testTxHash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Status != TxStatusFailed {
		t.Errorf("expected status failed, got %s", receipt.Status)
	}
}

// Once a receipt exists its status must read the same on every fetch.
func TestTransactionReceipt_StatusStable(t *testing.T) {
	backend := newMockBackend()
	backend.receipts[testTxHash] = minedReceipt(types.ReceiptStatusSuccessful, 10)
	client := newTestClient(t, backend, &mockSubmitter{})

	for i := 0; i < 5; i++ {
		receipt, found, err := client.TransactionReceipt(context.Background(), testTxHash)
		if err != nil || !found {
			t.Fatalf("fetch %d: found=%v err=%v", i, found, err)
		}
		if receipt.Status != TxStatusSuccess {
			t.Fatalf("fetch %d: status flapped to %s", i, receipt.Status)
		}
	}
}

func TestTransactionReceipt_TransportFailure(t *testing.T) {
	backend := newMockBackend()
	backend.receiptErr = errors.New("connection reset by peer")
	client := newTestClient(t, backend, &mockSubmitter{})

	_, _, err := client.TransactionReceipt(context.Background(), testTxHash)
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
}

// =============================================================================
// WaitMined
// =============================================================================

func TestWaitMined_PollsUntilMined(t *testing.T) {
	backend := newMockBackend()
	backend.receipts[testTxHash] = minedReceipt(types.ReceiptStatusSuccessful, 99)
	backend.pendingFor[testTxHash] = 3
	client := newTestClient(t, backend, &mockSubmitter{})

	receipt, err := client.WaitMined(context.Background(), testTxHash, 5*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.BlockNumber != 99 {
		t.Errorf("expected block 99, got %d", receipt.BlockNumber)
	}

	backend.mu.Lock()
	gets := backend.receiptGets
	backend.mu.Unlock()
	if gets < 4 {
		t.Errorf("expected at least 4 receipt fetches, got %d", gets)
	}
}

func TestWaitMined_ContextCanceled(t *testing.T) {
	client := newTestClient(t, newMockBackend(), &mockSubmitter{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.WaitMined(ctx, testTxHash, 5*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline, got %v", err)
	}
}

// A transport failure mid-wait surfaces immediately; the caller decides
// whether to keep waiting.
func TestWaitMined_TransportFailure(t *testing.T) {
	backend := newMockBackend()
	backend.receiptErr = errors.New("i/o timeout")
	client := newTestClient(t, backend, &mockSubmitter{})

	_, err := client.WaitMined(context.Background(), testTxHash, 5*time.Millisecond)
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
}

// =============================================================================
// Latest block
// =============================================================================

func TestLatestBlock(t *testing.T) {
	backend := newMockBackend()
	backend.head = &types.Header{Number: big.NewInt(21_000_000)}
	client := newTestClient(t, backend, &mockSubmitter{})

	block, err := client.LatestBlock(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if block != 21_000_000 {
		t.Errorf("expected block 21000000, got %d", block)
	}
}

func TestLatestBlock_NoHead(t *testing.T) {
	client := newTestClient(t, newMockBackend(), &mockSubmitter{})

	_, err := client.LatestBlock(context.Background())
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
}

func TestLatestBlock_TransportFailure(t *testing.T) {
	backend := newMockBackend()
	backend.headErr = errors.New("no route to host")
	client := newTestClient(t, backend, &mockSubmitter{})

	_, err := client.LatestBlock(context.Background())
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
}
