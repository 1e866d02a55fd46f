package main

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"

	"github.com/vietddude/harvester/pkg/farm"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	RPC_URL := os.Getenv("RPC_URL")
	CONTRACT_ADDRESS := os.Getenv("CONTRACT_ADDRESS")
	ABI_PATH := os.Getenv("ABI_PATH")
	ACCOUNT := os.Getenv("ACCOUNT")
	if RPC_URL == "" {
		log.Fatalf("RPC_URL is not set")
	}
	if CONTRACT_ADDRESS == "" {
		log.Fatalf("CONTRACT_ADDRESS is not set")
	}
	if ABI_PATH == "" {
		log.Fatalf("ABI_PATH is not set")
	}

	abiBytes, err := os.ReadFile(ABI_PATH)
	if err != nil {
		log.Fatalf("Failed to read ABI: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. Bind the pool contract
	client, err := farm.Dial(ctx, farm.Config{
		RPCURL:   RPC_URL,
		Contract: CONTRACT_ADDRESS,
		ABI:      abiBytes,
	})
	if err != nil {
		log.Fatalf("Failed to dial: %v", err)
	}
	defer client.Close()

	// 2. Read the pool-wide figures
	block, err := client.LatestBlock(ctx)
	if err != nil {
		log.Fatalf("Failed to read latest block: %v", err)
	}
	fmt.Printf("Latest block: %d\n", block)

	stats, err := client.PoolStats(ctx)
	if err != nil {
		log.Fatalf("Failed to read pool stats: %v", err)
	}
	fmt.Printf("Total value locked: %s\n", stats.TotalValueLocked)
	fmt.Printf("Current APY: %s bps\n", stats.CurrentAPY)

	if ACCOUNT == "" {
		return
	}
	account := common.HexToAddress(ACCOUNT)

	// 3. Read one account's position
	pos, err := client.Position(ctx, account)
	if err != nil {
		log.Fatalf("Failed to read position: %v", err)
	}
	fmt.Printf("Account %s: staked %s, pending rewards %s\n", pos.Account.Hex(), pos.Staked, pos.PendingRewards)

	// 4. Optionally submit a deposit and wait for it to mine
	if os.Getenv("DEPOSIT_AMOUNT") == "" {
		return
	}
	amount, ok := new(big.Int).SetString(os.Getenv("DEPOSIT_AMOUNT"), 10)
	if !ok {
		log.Fatalf("DEPOSIT_AMOUNT is not a number")
	}

	hash, err := client.Deposit(ctx, account, amount)
	if err != nil {
		log.Fatalf("Failed to deposit: %v", err)
	}
	fmt.Printf("Submitted deposit: %s\n", hash.Hex())

	receipt, err := client.WaitMined(ctx, hash, 2*time.Second)
	if err != nil {
		log.Fatalf("Failed waiting for receipt: %v", err)
	}
	fmt.Printf("Mined in block %d with status %s\n", receipt.BlockNumber, receipt.Status)
}
