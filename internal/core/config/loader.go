package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v2"

	"github.com/vietddude/harvester/internal/core/domain"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if necessary
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Node.RequestTimeout == 0 {
		cfg.Node.RequestTimeout = 30 * time.Second
	}
	if cfg.Monitor.Interval == 0 {
		cfg.Monitor.Interval = 30 * time.Second
	}
	if cfg.Contract.Network == "" {
		cfg.Contract.Network = domain.NetworkEthereum
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	if c.Node.URL == "" {
		return fmt.Errorf("node.url is required")
	}
	if !common.IsHexAddress(c.Contract.Address) {
		return fmt.Errorf("contract.address %q is not a valid hex address", c.Contract.Address)
	}
	if c.Contract.ABIPath == "" {
		return fmt.Errorf("contract.abi_path is required")
	}
	for _, a := range c.Monitor.Accounts {
		if !common.IsHexAddress(a) {
			return fmt.Errorf("monitor.accounts entry %q is not a valid hex address", a)
		}
	}
	return nil
}

// LoadABI reads the contract ABI bytes referenced by the config.
func (c *AppConfig) LoadABI() ([]byte, error) {
	data, err := os.ReadFile(c.Contract.ABIPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read abi file: %w", err)
	}
	return data, nil
}

// WatchedAccounts parses the configured account addresses.
func (c *AppConfig) WatchedAccounts() []common.Address {
	accounts := make([]common.Address, 0, len(c.Monitor.Accounts))
	for _, a := range c.Monitor.Accounts {
		accounts = append(accounts, common.HexToAddress(a))
	}
	return accounts
}
