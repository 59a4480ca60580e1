package node

import (
	"rubin.dev/node/consensus"

	"golang.org/x/crypto/blake2b"
)

// PoWVerifier is the opaque proof-of-work collaborator (§6): "given a
// header, returns success or a failure code". The real implementation is
// a Cuckoo-cycle solution checker, which is out of scope for this module
// (§1) — the engine only ever treats a non-nil return as invalid PoW and
// surfaces it unchanged.
type PoWVerifier interface {
	Verify(h *consensus.Header) error
}

// Blake2bStubVerifier is a placeholder PoWVerifier for tests and
// development hosts that don't wire in a real Cuckoo-cycle verifier: it
// hashes the header with BLAKE2b-256 and checks the digest against the
// header's own decoded target, exactly the shape of a real PoW check
// (hash < target) without the expensive cycle-finding step. This is
// never meant to stand in for the network's actual PoW rule; it exists
// so the engine has a working, deterministic default. golang.org/x/crypto
// is a dependency the teacher module already carries (it is also the
// package used on the signing side of the teacher's node), so the stub
// leans on its blake2b implementation rather than reaching for a
// standard-library hash.
type Blake2bStubVerifier struct{}

func NewBlake2bStubVerifier() *Blake2bStubVerifier { return &Blake2bStubVerifier{} }

func (Blake2bStubVerifier) Verify(h *consensus.Header) error {
	target, ok := h.Target()
	if !ok {
		return &consensus.ChainError{Code: consensus.EBadArgs, Msg: "pow: invalid compact bits"}
	}
	digest := blake2b.Sum256(h.Bytes())
	if consensus.FromBE32(digest).Cmp(target) >= 0 {
		return &consensus.ChainError{Code: consensus.EPowInvalid, Msg: "pow: digest does not beat target"}
	}
	return nil
}
