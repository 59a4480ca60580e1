package node

import (
	"testing"

	"rubin.dev/node/consensus"
)

func TestBlake2bStubVerifier_RejectsUndecodableBits(t *testing.T) {
	h := &consensus.Header{Bits: 0x01800000} // sign bit set, never decodes
	v := NewBlake2bStubVerifier()
	err := v.Verify(h)
	if consensus.CodeOf(err) != consensus.EBadArgs {
		t.Fatalf("expected EBadArgs for an undecodable target, got %v", err)
	}
}
