package consensus

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Header is an immutable-after-insert block header record. Everything
// through Nonce/Solution is wire data; Hash, Height, Work and Next are
// derived fields the chain engine computes and owns. Next is not set by
// anything in this module: ForkResolver builds its disconnect/connect
// lists as slices (see ReorgPlan), and Clone resets Next to nil.
type Header struct {
	Version      uint32
	PrevBlock    [32]byte
	MerkleRoot   [32]byte
	WitnessRoot  [32]byte
	TreeRoot     [32]byte
	ReservedRoot [32]byte
	Time         uint64
	Bits         uint32
	Nonce        uint64
	Solution     []byte // opaque Cuckoo-cycle solution, verified by an external PoW collaborator

	hash      [32]byte
	hashValid bool
	Height    uint32
	Work      [32]byte

	Next *Header // unused link field; cleared by Clone
}

// Clone returns an owned deep copy of h, suitable for insertion into a
// ChainIndex. The caller's original remains untouched.
func (h *Header) Clone() *Header {
	if h == nil {
		return nil
	}
	c := *h
	c.Solution = append([]byte(nil), h.Solution...)
	c.Next = nil
	return &c
}

// Bytes returns the canonical little-endian encoding of the header's
// identity fields (everything except the derived Hash/Height/Work/Next),
// the input to Hash and to the PoW verifier.
func (h *Header) Bytes() []byte {
	buf := make([]byte, 0, 4+32*4+8+4+8+len(h.Solution))
	buf = appendU32LE(buf, h.Version)
	buf = append(buf, h.PrevBlock[:]...)
	buf = append(buf, h.MerkleRoot[:]...)
	buf = append(buf, h.WitnessRoot[:]...)
	buf = append(buf, h.TreeRoot[:]...)
	buf = append(buf, h.ReservedRoot[:]...)
	buf = appendU64LE(buf, h.Time)
	buf = appendU32LE(buf, h.Bits)
	buf = appendU64LE(buf, h.Nonce)
	buf = append(buf, h.Solution...)
	return buf
}

// ParseHeader decodes a header's identity fields from their canonical
// wire encoding (the Bytes layout). Any remaining bytes after Nonce are
// taken whole as the opaque Solution field, so the caller must pass
// exactly the slice that was previously produced by Bytes — there is no
// length prefix to delimit Solution on its own.
func ParseHeader(wire []byte) (*Header, error) {
	cur := newCursor(wire)

	version, err := cur.readU32LE()
	if err != nil {
		return nil, fmt.Errorf("parse header: version: %w", err)
	}
	prevBlock, err := cur.readExact(32)
	if err != nil {
		return nil, fmt.Errorf("parse header: prev_block: %w", err)
	}
	merkleRoot, err := cur.readExact(32)
	if err != nil {
		return nil, fmt.Errorf("parse header: merkle_root: %w", err)
	}
	witnessRoot, err := cur.readExact(32)
	if err != nil {
		return nil, fmt.Errorf("parse header: witness_root: %w", err)
	}
	treeRoot, err := cur.readExact(32)
	if err != nil {
		return nil, fmt.Errorf("parse header: tree_root: %w", err)
	}
	reservedRoot, err := cur.readExact(32)
	if err != nil {
		return nil, fmt.Errorf("parse header: reserved_root: %w", err)
	}
	t, err := cur.readU64LE()
	if err != nil {
		return nil, fmt.Errorf("parse header: time: %w", err)
	}
	bits, err := cur.readU32LE()
	if err != nil {
		return nil, fmt.Errorf("parse header: bits: %w", err)
	}
	nonce, err := cur.readU64LE()
	if err != nil {
		return nil, fmt.Errorf("parse header: nonce: %w", err)
	}
	solution := cur.readRest()

	h := &Header{
		Version:  version,
		Time:     t,
		Bits:     bits,
		Nonce:    nonce,
		Solution: append([]byte(nil), solution...),
	}
	copy(h.PrevBlock[:], prevBlock)
	copy(h.MerkleRoot[:], merkleRoot)
	copy(h.WitnessRoot[:], witnessRoot)
	copy(h.TreeRoot[:], treeRoot)
	copy(h.ReservedRoot[:], reservedRoot)
	return h, nil
}

func appendU32LE(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendU64LE(b []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(b, tmp[:]...)
}

// Hash returns the header's cached identity hash, computing it on first
// use. The header binary codec and hash function are, per the engine's
// consumed-contract boundary, an external collaborator; this is the
// module's concrete stand-in (double SHA-256, matching the Bitcoin-family
// convention the teacher's wire layer otherwise follows) so the chain
// engine is self-contained and testable without a separate codec
// dependency.
func (h *Header) Hash() [32]byte {
	if h.hashValid {
		return h.hash
	}
	first := sha256.Sum256(h.Bytes())
	h.hash = sha256.Sum256(first[:])
	h.hashValid = true
	return h.hash
}

// Target decodes the header's compact Bits into a 256-bit target. The
// caller is expected to have already validated Bits via the Validator;
// an invalid encoding surfaces as a zero target.
func (h *Header) Target() (BigInt256, bool) {
	t, ok := CompactToTarget(h.Bits)
	if !ok {
		return BigInt256{}, false
	}
	return FromBE32(t), true
}

// WorkFor returns the cumulative chainwork of a header whose predecessor
// is prev (nil for genesis), per work(h) = work(prev) + floor(2^256 /
// (target(h)+1)), saturating at 2^256-1.
func WorkFor(h *Header, prev *Header) (BigInt256, error) {
	target, ok := h.Target()
	if !ok {
		return BigInt256{}, chainerr(EBadArgs, "header: invalid compact bits")
	}
	contribution := TwoPow256DivTargetPlusOne(target)
	var base BigInt256
	if prev != nil {
		base = FromBE32(prev.Work)
	}
	return base.Add(contribution), nil
}
