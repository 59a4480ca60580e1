package consensus

import "testing"

func TestCheckTimeTooNew_WithinDriftAccepted(t *testing.T) {
	h := buildHeader([32]byte{}, 1000, HSKBits, 0)
	if err := CheckTimeTooNew(h, 1000-MaxFutureDrift); err != nil {
		t.Fatalf("time exactly at the drift boundary should be accepted: %v", err)
	}
}

func TestCheckTimeTooNew_BeyondDriftRejected(t *testing.T) {
	h := buildHeader([32]byte{}, 1000, HSKBits, 0)
	err := CheckTimeTooNew(h, 1000-MaxFutureDrift-1)
	if CodeOf(err) != ETimeTooNew {
		t.Fatalf("expected ETimeTooNew, got %v", err)
	}
}

func TestCheckTimeTooOld_StrictlyAfterMTPAccepted(t *testing.T) {
	g := buildHeader([32]byte{}, 100, HSKBits, 0)
	lookup, _ := linkChain(g)
	h := buildHeader(g.Hash(), 101, HSKBits, 0)
	if err := CheckTimeTooOld(h, g, lookup.lookup); err != nil {
		t.Fatalf("time just after parent MTP should be accepted: %v", err)
	}
}

func TestCheckTimeTooOld_EqualToMTPRejected(t *testing.T) {
	g := buildHeader([32]byte{}, 100, HSKBits, 0)
	lookup, _ := linkChain(g)
	h := buildHeader(g.Hash(), 100, HSKBits, 0)
	err := CheckTimeTooOld(h, g, lookup.lookup)
	if CodeOf(err) != ETimeTooOld {
		t.Fatalf("time equal to MTP should be rejected, got %v", err)
	}
}

func TestCheckDiffBits_MismatchRejected(t *testing.T) {
	g := buildHeader([32]byte{}, 100, HSKBits, 0)
	lookup, _ := linkChain(g)
	h := buildHeader(g.Hash(), 200, 0x03123456, 0)
	err := CheckDiffBits(ModeRegtest, h, g, lookup.lookup, HSKBits)
	if CodeOf(err) != EBadDiffBits {
		t.Fatalf("regtest requires HSKBits, expected EBadDiffBits, got %v", err)
	}
}

func TestCheckDiffBits_MatchAccepted(t *testing.T) {
	g := buildHeader([32]byte{}, 100, HSKBits, 0)
	lookup, _ := linkChain(g)
	h := buildHeader(g.Hash(), 200, HSKBits, 0)
	if err := CheckDiffBits(ModeRegtest, h, g, lookup.lookup, HSKBits); err != nil {
		t.Fatalf("matching diffbits should be accepted: %v", err)
	}
}

func TestValidateAgainstParent_TimeCheckedBeforeDiffBits(t *testing.T) {
	g := buildHeader([32]byte{}, 100, HSKBits, 0)
	lookup, _ := linkChain(g)
	// Both time and bits are wrong; time-too-old must surface first.
	h := buildHeader(g.Hash(), 100, 0x03123456, 0)
	err := ValidateAgainstParent(ModeRegtest, h, g, lookup.lookup, HSKBits)
	if CodeOf(err) != ETimeTooOld {
		t.Fatalf("expected ETimeTooOld to take priority, got %v", err)
	}
}
