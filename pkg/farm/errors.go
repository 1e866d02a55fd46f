package farm

import "errors"

// The client surfaces every failure as one of four kinds so callers can
// branch with errors.Is. Nothing is retried or suppressed internally, and
// "receipt not found yet" is not an error at all (see TransactionReceipt).
var (
	// ErrConfiguration is returned by Dial for a malformed ABI, contract
	// address, or endpoint.
	ErrConfiguration = errors.New("invalid client configuration")

	// ErrInvocation is returned when a state-mutating submission is rejected,
	// either while packing the call or by the node.
	ErrInvocation = errors.New("invocation rejected")

	// ErrQuery is returned when a read-only call fails or its result cannot
	// be decoded as the expected type.
	ErrQuery = errors.New("query failed")

	// ErrLookup is returned on transport failure during a receipt or chain
	// head fetch.
	ErrLookup = errors.New("chain lookup failed")
)
