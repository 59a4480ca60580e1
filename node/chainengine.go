package node

import (
	"rubin.dev/node/consensus"
)

// ChainEngine is the public façade over a ChainIndex: the single
// non-concurrent owner described in §5. One caller — typically a
// networking event loop — is expected to call Add serially; the engine
// performs no internal synchronization.
type ChainEngine struct {
	idx   *ChainIndex
	mode  consensus.NetworkMode
	clock TimeSource
	pow   PoWVerifier
	log   Logger
}

// NewChainEngine constructs a ChainEngine and installs the genesis
// header (§4.9's init()). genesis must be a fully-populated header whose
// Bits is the network's intended genesis difficulty; its Height and Work
// are computed here with a nil predecessor.
func NewChainEngine(cfg Config, genesis *consensus.Header, clock TimeSource, pow PoWVerifier, logger Logger) (*ChainEngine, error) {
	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if pow == nil {
		pow = NewBlake2bStubVerifier()
	}
	if logger == nil {
		logger = nopLogger{}
	}

	g := genesis.Clone()
	g.Height = 0
	work, err := consensus.WorkFor(g, nil)
	if err != nil {
		return nil, err
	}
	g.Work = work.ToBE32()

	idx := newChainIndex()
	hash := g.Hash()
	idx.hashes[hash] = g
	idx.heights[0] = g
	idx.tip = g
	idx.genesis = g

	return &ChainEngine{idx: idx, mode: mode, clock: clock, pow: pow, log: logger}, nil
}

// Tip returns the current canonical chain tip.
func (e *ChainEngine) Tip() *consensus.Header { return e.idx.Tip() }

// Genesis returns the immutable genesis header.
func (e *ChainEngine) Genesis() *consensus.Header { return e.idx.Genesis() }

// Height returns the tip's height.
func (e *ChainEngine) Height() uint32 { return e.idx.Height() }

// Index exposes the underlying ChainIndex for read-only inspection (e.g.
// by a host driving orphan re-submission, or a snapshotter). Callers must
// not retain references past the next Add call (§5).
func (e *ChainEngine) Index() *ChainIndex { return e.idx }

// Add ingests a single untrusted header (§4.5-§4.8). The incoming header
// is cloned into owned storage; the clone either enters the index or is
// discarded. A nil error means SUCCESS (including the orphan and
// alternate-branch cases, which are not rejections); a non-nil error is
// a *consensus.ChainError carrying one of the codes in §4.9.
func (e *ChainEngine) Add(h *consensus.Header) error {
	if h == nil {
		return &consensus.ChainError{Code: consensus.EBadArgs, Msg: "add: nil header"}
	}

	hdr := h.Clone()
	hash := hdr.Hash()

	e.log.Printf("adding block: %x", hash)

	if err := consensus.CheckTimeTooNew(hdr, e.clock.Now()); err != nil {
		e.log.Printf("  rejected: time-too-new")
		return err
	}

	if e.idx.hasHash(hash) {
		e.log.Printf("  rejected: duplicate")
		return &consensus.ChainError{Code: consensus.EDuplicate, Msg: "add: header already known"}
	}
	if e.idx.hasOrphan(hash) {
		e.log.Printf("  rejected: duplicate-orphan")
		return &consensus.ChainError{Code: consensus.EDuplicateOrphan, Msg: "add: header already queued as orphan"}
	}

	if err := e.pow.Verify(hdr); err != nil {
		e.log.Printf("  rejected: pow invalid: %v", err)
		return err
	}

	prev, ok := e.idx.Lookup(hdr.PrevBlock)
	if !ok {
		e.log.Printf("  stored as orphan")
		e.idx.orphans[hash] = hdr
		e.idx.prevs[hdr.PrevBlock] = hdr
		return nil
	}

	if err := consensus.ValidateAgainstParent(e.mode, hdr, prev, e.idx.Lookup, e.idx.Genesis().Bits); err != nil {
		switch consensus.CodeOf(err) {
		case consensus.ETimeTooOld:
			e.log.Printf("  rejected: time-too-old")
		case consensus.EBadDiffBits:
			e.log.Printf("  rejected: bad-diffbits")
		}
		return err
	}

	hdr.Height = prev.Height + 1
	work, err := consensus.WorkFor(hdr, prev)
	if err != nil {
		return err
	}
	hdr.Work = work.ToBE32()

	tip := e.idx.Tip()
	if work.Cmp(consensus.FromBE32(tip.Work)) <= 0 {
		// Equal or lesser work: file on an alternate branch. Ties keep
		// the incumbent tip (first-arrival wins).
		e.idx.hashes[hash] = hdr
		e.log.Printf("  stored on alternate chain")
		return nil
	}

	if hdr.PrevBlock != tip.Hash() {
		e.log.Printf("  reorganizing...")
		if err := e.reorganize(hdr); err != nil {
			return err
		}
	}

	e.idx.hashes[hash] = hdr
	e.idx.heights[hdr.Height] = hdr
	e.idx.tip = hdr

	e.log.Printf("  added to main chain")
	e.log.Printf("  new height: %d", e.idx.Height())
	return nil
}

// reorganize splices the main chain from the current tip onto candidate,
// a higher-work branch whose parent is not the current tip (§4.8). Only
// heights is mutated; hashes already holds every header on both branches
// since they were retained as alternates when first accepted.
func (e *ChainEngine) reorganize(candidate *consensus.Header) error {
	plan, err := consensus.PlanReorg(e.idx.Tip(), candidate, e.idx.Lookup)
	if err != nil {
		return err
	}
	for _, entry := range plan.Disconnect {
		delete(e.idx.heights, entry.Height)
	}
	// Connect every header strictly above the fork except the topmost
	// (the candidate itself), which Add installs after this returns,
	// along with updating tip/height.
	for i, entry := range plan.Connect {
		if i == len(plan.Connect)-1 {
			continue
		}
		e.idx.heights[entry.Height] = entry
	}
	return nil
}

// Locator produces up to MaxLocatorHashes hashes, starting at the tip and
// stepping back with step=1 for the first entries, doubling the step
// once 11 entries have been written, and forcing the last slot to height
// 0 so genesis is always included (§4.9, §9 note 5).
func (e *ChainEngine) Locator() [][32]byte {
	tip := e.idx.Tip()
	out := make([][32]byte, 0, consensus.MaxLocatorHashes)

	i := 0
	out = append(out, tip.Hash())
	i++

	height := int64(tip.Height)
	step := int64(1)
	for height > 0 {
		height -= step
		if height < 0 {
			height = 0
		}
		if i > 10 {
			step *= 2
		}
		if i == consensus.MaxLocatorHashes-1 {
			height = 0
		}
		hdr, ok := e.idx.AtHeight(uint32(height))
		if !ok {
			break
		}
		out = append(out, hdr.Hash())
		i++
		if i >= consensus.MaxLocatorHashes {
			break
		}
	}

	return out
}
