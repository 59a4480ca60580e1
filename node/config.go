package node

import (
	"fmt"

	"rubin.dev/node/consensus"
)

// Config selects the network profile the engine validates against. It
// mirrors the shape of the teacher's own node.Config (a small struct with
// a Normalize-style constructor), scoped down to what the header-chain
// engine actually consumes: which of the two consensus exemptions in
// target selection (§4.6) apply.
type Config struct {
	Network string // "mainnet", "testnet", or "regtest"
}

// DefaultConfig returns the mainnet profile: ordinary sliding-window
// retargeting, no exemptions.
func DefaultConfig() Config {
	return Config{Network: "mainnet"}
}

// Mode resolves the configured network name to a consensus.NetworkMode.
func (c Config) Mode() (consensus.NetworkMode, error) {
	switch c.Network {
	case "", "mainnet":
		return consensus.ModeMainnet, nil
	case "testnet":
		return consensus.ModeTestnet, nil
	case "regtest":
		return consensus.ModeRegtest, nil
	default:
		return 0, fmt.Errorf("node: unknown network %q", c.Network)
	}
}
