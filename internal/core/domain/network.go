package domain

// Network labels the chain a pool contract is deployed on. It is a metric
// and log label only; the client itself is network-agnostic.
type Network string

const (
	NetworkEthereum Network = "ethereum"
	NetworkPolygon  Network = "polygon"
	NetworkArbitrum Network = "arbitrum"
	NetworkLocal    Network = "local"
)
