package node

import (
	"fmt"

	"rubin.dev/node/consensus"
	"rubin.dev/node/node/store"
)

// SaveSnapshot writes every accepted header and the current tip to s.
// This is a pure cache write: it never touches validation state and is
// safe to call at any point, including mid-sync.
func (e *ChainEngine) SaveSnapshot(s *store.Snapshotter) error {
	return s.Save(e.idx.AllAccepted(), e.idx.Tip())
}

// RestoreSnapshot replaces the engine's index with the contents of a
// prior SaveSnapshot, skipping re-validation of every header (the
// snapshot is trusted local state, not untrusted network input). It
// fails if the snapshot is empty or its recorded tip hash isn't among
// the loaded headers.
func (e *ChainEngine) RestoreSnapshot(s *store.Snapshotter) error {
	headers, tipHash, err := s.Load()
	if err != nil {
		return fmt.Errorf("node: load snapshot: %w", err)
	}
	if len(headers) == 0 {
		return fmt.Errorf("node: snapshot is empty")
	}

	idx := newChainIndex()
	var genesis, tip *consensus.Header
	for _, h := range headers {
		hash := h.Hash()
		idx.hashes[hash] = h
		if h.Height == 0 {
			genesis = h
		}
		if hash == tipHash {
			tip = h
		}
	}
	if genesis == nil {
		return fmt.Errorf("node: snapshot missing genesis")
	}
	if tip == nil {
		return fmt.Errorf("node: snapshot tip %x not found among loaded headers", tipHash)
	}

	// Replay the main chain from tip back to genesis via PrevBlock, so
	// heights only contains the canonical branch, exactly as Add does
	// incrementally.
	for cur := tip; ; {
		idx.heights[cur.Height] = cur
		if cur.Height == 0 {
			break
		}
		parent, ok := idx.hashes[cur.PrevBlock]
		if !ok {
			return fmt.Errorf("node: snapshot broken chain at height %d", cur.Height)
		}
		cur = parent
	}

	idx.genesis = genesis
	idx.tip = tip
	e.idx = idx
	return nil
}
