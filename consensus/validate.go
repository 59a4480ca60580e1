package consensus

// CheckTimeTooNew rejects a candidate header whose timestamp is further
// than MaxFutureDrift seconds ahead of now. Strict: time == now+2h is
// accepted.
func CheckTimeTooNew(h *Header, now int64) error {
	if int64(h.Time) > now+MaxFutureDrift {
		return chainerr(ETimeTooNew, "header time exceeds future drift")
	}
	return nil
}

// CheckTimeTooOld rejects a candidate whose timestamp does not strictly
// exceed the median time past of its parent. Strict: time == MTP is
// rejected.
func CheckTimeTooOld(h *Header, prev *Header, lookup AncestorLookup) error {
	mtp := MedianTimePast(prev, lookup)
	if h.Time <= mtp {
		return chainerr(ETimeTooOld, "header time does not exceed median time past")
	}
	return nil
}

// CheckDiffBits rejects a candidate whose Bits field does not match the
// target selection policy's expectation for its position in the chain.
func CheckDiffBits(mode NetworkMode, h *Header, prev *Header, lookup AncestorLookup, genesisBits uint32) error {
	expected := TargetFor(mode, h.Time, prev, lookup, genesisBits)
	if h.Bits != expected {
		return chainerr(EBadDiffBits, "header bits does not match expected retarget")
	}
	return nil
}

// ValidateAgainstParent runs the two per-header checks that require a
// known parent (§4.5's time-too-old and bad-diffbits steps). The
// time-too-new check and PoW verification happen earlier in the engine,
// before the parent lookup that makes this call possible; orphan filing
// happens when there is no known parent at all, so this function is never
// called in that case.
func ValidateAgainstParent(mode NetworkMode, h *Header, prev *Header, lookup AncestorLookup, genesisBits uint32) error {
	if err := CheckTimeTooOld(h, prev, lookup); err != nil {
		return err
	}
	if err := CheckDiffBits(mode, h, prev, lookup, genesisBits); err != nil {
		return err
	}
	return nil
}
