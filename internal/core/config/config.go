package config

import (
	"time"

	"github.com/vietddude/harvester/internal/core/domain"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Node     NodeConfig     `yaml:"node"`
	Contract ContractConfig `yaml:"contract"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// NodeConfig holds the JSON-RPC node connection settings.
type NodeConfig struct {
	URL            string        `yaml:"url"`
	RequestTimeout time.Duration `yaml:"request_timeout"` // per-call bound, 0 = default
}

// ContractConfig identifies the pool contract to bind.
type ContractConfig struct {
	Address string         `yaml:"address"`  // hex address of the deployed pool
	ABIPath string         `yaml:"abi_path"` // path to the contract ABI JSON
	Network domain.Network `yaml:"network"`  // label for logs and metrics
}

// MonitorConfig drives the sampling loop.
type MonitorConfig struct {
	Interval time.Duration `yaml:"interval"`
	Accounts []string      `yaml:"accounts"` // hex addresses whose positions are sampled
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}
