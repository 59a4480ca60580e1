package consensus

import "testing"

func TestCompactTarget_RoundTripHSKBits(t *testing.T) {
	target, ok := CompactToTarget(HSKBits)
	if !ok {
		t.Fatalf("CompactToTarget(%#x) rejected", HSKBits)
	}
	bits, ok := TargetToBits(target)
	if !ok {
		t.Fatalf("TargetToBits rejected a target CompactToTarget produced")
	}
	if bits != HSKBits {
		t.Fatalf("round trip mismatch: got %#x, want %#x", bits, HSKBits)
	}
}

func TestCompactTarget_RoundTripSmallExponents(t *testing.T) {
	for _, bits := range []uint32{
		0x012c0000,
		0x02008000,
		0x03123456,
		0x04123456,
	} {
		target, ok := CompactToTarget(bits)
		if !ok {
			t.Fatalf("CompactToTarget(%#x) rejected", bits)
		}
		got, ok := TargetToBits(target)
		if !ok {
			t.Fatalf("TargetToBits rejected target for %#x", bits)
		}
		if got != bits {
			t.Fatalf("round trip mismatch for %#x: got %#x", bits, got)
		}
	}
}

func TestCompactTarget_NegativeSignBitRejected(t *testing.T) {
	_, ok := CompactToTarget(0x01800000)
	if ok {
		t.Fatalf("sign-bit-set encoding should be rejected")
	}
}

func TestCompactTarget_ZeroMantissaIsZeroTarget(t *testing.T) {
	target, ok := CompactToTarget(0x04000000)
	if !ok {
		t.Fatalf("zero mantissa should decode cleanly")
	}
	if target != ([32]byte{}) {
		t.Fatalf("zero mantissa should decode to the zero target, got %x", target)
	}
}

func TestCompactTarget_HigherBitsMeansLargerTarget(t *testing.T) {
	small, ok := CompactToTarget(0x03010000)
	if !ok {
		t.Fatalf("decode small failed")
	}
	big, ok := CompactToTarget(0x04010000)
	if !ok {
		t.Fatalf("decode big failed")
	}
	if FromBE32(small).Cmp(FromBE32(big)) >= 0 {
		t.Fatalf("increasing the exponent should increase the target")
	}
}
