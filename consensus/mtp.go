package consensus

import "sort"

// AncestorLookup resolves a header's parent by hash. The chain engine's
// ChainIndex satisfies this; consensus itself never touches the index
// directly, keeping this package free of storage concerns.
type AncestorLookup func(hash [32]byte) (*Header, bool)

// MedianTimePast returns the median of up to MedianTimeSpan ancestor
// timestamps starting at prev (inclusive) and walking PrevBlock links via
// lookup. Returns 0 if prev is nil. The median index is size/2 for the
// size actually collected, so it degrades gracefully for short chains.
func MedianTimePast(prev *Header, lookup AncestorLookup) uint64 {
	if prev == nil {
		return 0
	}

	var window [MedianTimeSpan]uint64
	size := 0
	cur := prev
	for size < MedianTimeSpan && cur != nil {
		window[size] = cur.Time
		size++
		next, ok := lookup(cur.PrevBlock)
		if !ok {
			break
		}
		cur = next
	}

	times := window[:size]
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return times[size/2]
}
