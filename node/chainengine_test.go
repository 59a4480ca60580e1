package node

import (
	"testing"

	"rubin.dev/node/consensus"
)

// acceptAllPoW satisfies PoWVerifier without doing any real work, so
// engine tests can exercise Add's control flow deterministically instead
// of depending on Blake2bStubVerifier's probabilistic pass rate.
type acceptAllPoW struct{}

func (acceptAllPoW) Verify(*consensus.Header) error { return nil }

func newTestEngine(t *testing.T) (*ChainEngine, *consensus.Header) {
	t.Helper()
	genesis := DevnetGenesis()
	cfg := Config{Network: "regtest"}
	clock := FixedClock(int64(genesis.Time) + 10_000_000)
	engine, err := NewChainEngine(cfg, genesis, clock, acceptAllPoW{}, nil)
	if err != nil {
		t.Fatalf("NewChainEngine: %v", err)
	}
	return engine, genesis
}

func childOf(parent *consensus.Header, timeOffset uint64, nonce uint64) *consensus.Header {
	return &consensus.Header{
		Version:   1,
		PrevBlock: parent.Hash(),
		Time:      parent.Time + timeOffset,
		Bits:      consensus.HSKBits,
		Nonce:     nonce,
	}
}

func TestNewChainEngine_InstallsGenesis(t *testing.T) {
	engine, genesis := newTestEngine(t)
	if engine.Height() != 0 {
		t.Fatalf("fresh engine height = %d, want 0", engine.Height())
	}
	if engine.Tip().Hash() != genesis.Hash() {
		t.Fatalf("fresh engine tip should be genesis")
	}
	if engine.Genesis().Work == ([32]byte{}) {
		t.Fatalf("genesis should have a non-zero work contribution")
	}
}

func TestChainEngine_Add_LinearExtension(t *testing.T) {
	engine, genesis := newTestEngine(t)
	b1 := childOf(genesis, 10, 0)
	if err := engine.Add(b1); err != nil {
		t.Fatalf("Add b1: %v", err)
	}
	if engine.Height() != 1 {
		t.Fatalf("height = %d, want 1", engine.Height())
	}
	if engine.Tip().Hash() != b1.Hash() {
		t.Fatalf("tip should be b1")
	}
}

func TestChainEngine_Add_RejectsDuplicate(t *testing.T) {
	engine, genesis := newTestEngine(t)
	b1 := childOf(genesis, 10, 0)
	if err := engine.Add(b1); err != nil {
		t.Fatalf("Add b1: %v", err)
	}
	err := engine.Add(b1)
	if consensus.CodeOf(err) != consensus.EDuplicate {
		t.Fatalf("expected EDuplicate, got %v", err)
	}
}

func TestChainEngine_Add_OrphanIsQueuedAndDiscoverable(t *testing.T) {
	engine, genesis := newTestEngine(t)
	unknownParent := [32]byte{0xaa, 0xbb}
	orphan := &consensus.Header{
		Version:   1,
		PrevBlock: unknownParent,
		Time:      genesis.Time + 10,
		Bits:      consensus.HSKBits,
	}
	if err := engine.Add(orphan); err != nil {
		t.Fatalf("Add orphan: %v", err)
	}
	if engine.Height() != 0 {
		t.Fatalf("an orphan must not advance the tip")
	}
	found, ok := engine.Index().OrphanByPrev(unknownParent)
	if !ok {
		t.Fatalf("orphan should be discoverable by its unknown parent hash")
	}
	if found.Hash() != orphan.Hash() {
		t.Fatalf("OrphanByPrev returned the wrong header")
	}
}

func TestChainEngine_Add_RejectsDuplicateOrphan(t *testing.T) {
	engine, genesis := newTestEngine(t)
	orphan := &consensus.Header{
		Version:   1,
		PrevBlock: [32]byte{0xaa, 0xbb},
		Time:      genesis.Time + 10,
		Bits:      consensus.HSKBits,
	}
	if err := engine.Add(orphan); err != nil {
		t.Fatalf("Add orphan: %v", err)
	}
	err := engine.Add(orphan)
	if consensus.CodeOf(err) != consensus.EDuplicateOrphan {
		t.Fatalf("expected EDuplicateOrphan, got %v", err)
	}
}

func TestChainEngine_Add_RejectsBadDiffBits(t *testing.T) {
	engine, genesis := newTestEngine(t)
	bad := childOf(genesis, 10, 0)
	bad.Bits = 0x03123456 // regtest requires HSKBits
	err := engine.Add(bad)
	if consensus.CodeOf(err) != consensus.EBadDiffBits {
		t.Fatalf("expected EBadDiffBits, got %v", err)
	}
}

func TestChainEngine_Add_RejectsTimeTooOld(t *testing.T) {
	engine, genesis := newTestEngine(t)
	stale := &consensus.Header{
		Version:   1,
		PrevBlock: genesis.Hash(),
		Time:      genesis.Time, // must be strictly greater than parent MTP
		Bits:      consensus.HSKBits,
	}
	err := engine.Add(stale)
	if consensus.CodeOf(err) != consensus.ETimeTooOld {
		t.Fatalf("expected ETimeTooOld, got %v", err)
	}
}

func TestChainEngine_Add_EqualWorkStaysOnAlternateBranch(t *testing.T) {
	engine, genesis := newTestEngine(t)
	b1 := childOf(genesis, 10, 0)
	if err := engine.Add(b1); err != nil {
		t.Fatalf("Add b1: %v", err)
	}
	b2 := childOf(genesis, 20, 99) // same height, same work, different hash
	if err := engine.Add(b2); err != nil {
		t.Fatalf("Add b2: %v", err)
	}
	if engine.Tip().Hash() != b1.Hash() {
		t.Fatalf("tip should remain b1 on an equal-work alternate branch")
	}
	if engine.Height() != 1 {
		t.Fatalf("height should remain 1")
	}
}

func TestChainEngine_Add_ReorgsToHigherWorkBranch(t *testing.T) {
	engine, genesis := newTestEngine(t)
	b1 := childOf(genesis, 10, 0)
	if err := engine.Add(b1); err != nil {
		t.Fatalf("Add b1: %v", err)
	}
	b2 := childOf(genesis, 20, 99)
	if err := engine.Add(b2); err != nil {
		t.Fatalf("Add b2: %v", err)
	}
	b2child := childOf(b2, 10, 1)
	if err := engine.Add(b2child); err != nil {
		t.Fatalf("Add b2child: %v", err)
	}
	if engine.Tip().Hash() != b2child.Hash() {
		t.Fatalf("tip should reorg onto the b2 branch's higher cumulative work")
	}
	if engine.Height() != 2 {
		t.Fatalf("height = %d, want 2", engine.Height())
	}
	if at1, ok := engine.Index().AtHeight(1); !ok || at1.Hash() != b2.Hash() {
		t.Fatalf("height 1 on the main chain should now be b2")
	}
}

func TestChainEngine_Locator_IncludesTipAndGenesis(t *testing.T) {
	engine, genesis := newTestEngine(t)
	cur := genesis
	for i := 0; i < 20; i++ {
		next := childOf(cur, 10, uint64(i))
		if err := engine.Add(next); err != nil {
			t.Fatalf("Add height %d: %v", i+1, err)
		}
		cur = next
	}

	loc := engine.BuildLocator()
	if int(loc.HashCount) != len(loc.Hashes) {
		t.Fatalf("HashCount should match len(Hashes)")
	}
	if loc.Hashes[0] != engine.Tip().Hash() {
		t.Fatalf("locator should start at the tip")
	}
	if loc.Hashes[len(loc.Hashes)-1] != genesis.Hash() {
		t.Fatalf("locator should always include genesis as its last entry")
	}
}
