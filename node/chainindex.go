package node

import "rubin.dev/node/consensus"

// ChainIndex is the chain engine's single owner of every header it has
// accepted. hashes holds every header ever accepted (main or alternate,
// not yet pruned); heights holds only the main chain, keyed by height;
// orphans holds headers whose parent hasn't arrived yet; prevs maps an
// unknown parent hash to the most recently filed orphan waiting on it
// (last-writer-wins, one entry per unknown parent).
type ChainIndex struct {
	hashes  map[[32]byte]*consensus.Header
	heights map[uint32]*consensus.Header
	orphans map[[32]byte]*consensus.Header
	prevs   map[[32]byte]*consensus.Header

	tip     *consensus.Header
	genesis *consensus.Header
}

func newChainIndex() *ChainIndex {
	return &ChainIndex{
		hashes:  make(map[[32]byte]*consensus.Header),
		heights: make(map[uint32]*consensus.Header),
		orphans: make(map[[32]byte]*consensus.Header),
		prevs:   make(map[[32]byte]*consensus.Header),
	}
}

// Lookup resolves a header by hash among accepted (non-orphan) headers.
// It satisfies consensus.AncestorLookup.
func (idx *ChainIndex) Lookup(hash [32]byte) (*consensus.Header, bool) {
	h, ok := idx.hashes[hash]
	return h, ok
}

func (idx *ChainIndex) hasHash(hash [32]byte) bool {
	_, ok := idx.hashes[hash]
	return ok
}

func (idx *ChainIndex) hasOrphan(hash [32]byte) bool {
	_, ok := idx.orphans[hash]
	return ok
}

// Tip returns the current canonical chain tip.
func (idx *ChainIndex) Tip() *consensus.Header { return idx.tip }

// Genesis returns the immutable genesis header.
func (idx *ChainIndex) Genesis() *consensus.Header { return idx.genesis }

// Height returns the tip's height.
func (idx *ChainIndex) Height() uint32 {
	if idx.tip == nil {
		return 0
	}
	return idx.tip.Height
}

// AtHeight returns the main-chain header at height n, if any.
func (idx *ChainIndex) AtHeight(n uint32) (*consensus.Header, bool) {
	h, ok := idx.heights[n]
	return h, ok
}

// OrphanByPrev returns the orphan currently waiting on parent hash, if
// any — the lookup the host uses to drive its own promotion pass (§4.7,
// §9 open question: orphan promotion is outside the core's contract).
func (idx *ChainIndex) OrphanByPrev(prevHash [32]byte) (*consensus.Header, bool) {
	h, ok := idx.prevs[prevHash]
	return h, ok
}

// AllAccepted returns every accepted header (main chain and alternate
// branches, excluding orphans), for a caller snapshotting the index to
// disk. The returned slice is a fresh copy of the map values; mutating
// it does not affect the index.
func (idx *ChainIndex) AllAccepted() []*consensus.Header {
	out := make([]*consensus.Header, 0, len(idx.hashes))
	for _, h := range idx.hashes {
		out = append(out, h)
	}
	return out
}
