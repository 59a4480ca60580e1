package consensus

// Retarget computes the next compact target given prev, the header the
// candidate extends, per the sliding-window difficulty adjustment (§4.4):
// average the target over up to TargetWindow ancestors, scale by a
// dampened actual/ideal timespan ratio, and clamp to PowLimit. Returns
// HSKBits (the default/floor difficulty) whenever the window is short or
// the computed target would exceed PowLimit.
func Retarget(prev *Header, lookup AncestorLookup) uint32 {
	if prev == nil {
		return HSKBits
	}

	var sum BigInt256
	last := prev
	first := last
	collected := 0
	for collected < TargetWindow {
		target, ok := first.Target()
		if !ok {
			return HSKBits
		}
		sum = sum.Add(target)
		collected++
		next, ok := lookup(first.PrevBlock)
		if !ok {
			// Fewer than TargetWindow ancestors exist: fall back to the
			// default difficulty rather than retarget off a short window.
			return HSKBits
		}
		first = next
	}

	average := sum.DivU32(TargetWindow)

	start := MedianTimePast(first, lookup)
	end := MedianTimePast(last, lookup)
	var diff int64
	if end >= start {
		diff = int64(end - start)
	} else {
		diff = -int64(start - end)
	}

	actual := int64(TargetTimespan) + (diff-int64(TargetTimespan))/4
	if actual < MinActualTimespan {
		actual = MinActualTimespan
	}
	if actual > MaxActualTimespan {
		actual = MaxActualTimespan
	}

	next := average.MulU32(uint32(actual)).DivU32(TargetTimespan)

	if next.Cmp(PowLimitBigInt) > 0 {
		return HSKBits
	}

	bits, ok := TargetToBits(next.ToBE32())
	if !ok {
		return HSKBits
	}
	return bits
}

// TargetFor implements the target selection policy of §4.6: the genesis
// exemption, the regtest NO_RETARGETTING exemption, the testnet
// TARGET_RESET exemption, and otherwise ordinary Retarget.
func TargetFor(mode NetworkMode, candidateTime uint64, prev *Header, lookup AncestorLookup, genesisBits uint32) uint32 {
	if prev == nil {
		return genesisBits
	}
	if mode.noRetargetting() {
		return HSKBits
	}
	if mode.targetReset() {
		if candidateTime > prev.Time+2*TargetSpacing {
			return HSKBits
		}
	}
	return Retarget(prev, lookup)
}
