package control

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vietddude/harvester/internal/core/config"
	"github.com/vietddude/harvester/internal/core/domain"
	"github.com/vietddude/harvester/pkg/farm"
)

func TestFromAppConfig(t *testing.T) {
	abiPath := filepath.Join(t.TempDir(), "pool.abi.json")
	if err := os.WriteFile(abiPath, []byte(`[]`), 0o644); err != nil {
		t.Fatalf("failed to write abi: %v", err)
	}

	appCfg := &config.AppConfig{
		Server:   config.ServerConfig{Port: 9090},
		Node:     config.NodeConfig{URL: "http://localhost:8545", RequestTimeout: 5 * time.Second},
		Contract: config.ContractConfig{Address: "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D", ABIPath: abiPath, Network: domain.NetworkPolygon},
		Monitor:  config.MonitorConfig{Interval: 15 * time.Second, Accounts: []string{"0x28C6c06298d514Db089934071355E5743bf21d60"}},
	}

	cfg, err := FromAppConfig(appCfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if string(cfg.ABI) != `[]` {
		t.Errorf("expected abi bytes loaded, got %q", cfg.ABI)
	}
	if cfg.Network != domain.NetworkPolygon {
		t.Errorf("expected network polygon, got %s", cfg.Network)
	}
	if len(cfg.Accounts) != 1 {
		t.Errorf("expected 1 account, got %d", len(cfg.Accounts))
	}
}

func TestFromAppConfig_MissingABIFile(t *testing.T) {
	appCfg := &config.AppConfig{
		Contract: config.ContractConfig{ABIPath: filepath.Join(t.TempDir(), "nope.json")},
	}
	if _, err := FromAppConfig(appCfg); err == nil {
		t.Fatal("expected error for missing abi file")
	}
}

func TestNewApp_BadABI(t *testing.T) {
	_, err := NewApp(context.Background(), Config{
		NodeURL:         "http://localhost:8545",
		ContractAddress: "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D",
		ABI:             []byte(`{"broken`),
	})
	if !errors.Is(err, farm.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
