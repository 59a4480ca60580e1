package node

import "rubin.dev/node/consensus"

// DevnetGenesisTime is the fixed timestamp embedded in the devnet genesis
// header.
const DevnetGenesisTime uint64 = 1706745600 // 2024-02-01T00:00:00Z

// DevnetGenesis returns a fresh copy of the hardcoded devnet genesis
// header: zero roots, zero nonce/solution, difficulty at the network
// floor (HSKBits). A real deployment would decode this from a
// hex-encoded constant (§6's GENESIS); devnet has no prior chain to
// encode a hash-matching header from, so the fields are spelled out
// directly.
func DevnetGenesis() *consensus.Header {
	return &consensus.Header{
		Version: 1,
		Time:    DevnetGenesisTime,
		Bits:    consensus.HSKBits,
	}
}
