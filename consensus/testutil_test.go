package consensus

// buildHeader constructs a minimal, internally-consistent header for
// tests: a distinct PrevBlock so Hash differs from its parent, and the
// given time/bits. Height/Work are left for the caller to set explicitly
// when a test cares about them.
func buildHeader(prevHash [32]byte, t uint64, bits uint32, nonce uint64) *Header {
	return &Header{
		Version:   1,
		PrevBlock: prevHash,
		Time:      t,
		Bits:      bits,
		Nonce:     nonce,
	}
}

// chainLookup is a map-backed AncestorLookup for small hand-built test
// chains, keyed by hash.
type chainLookup map[[32]byte]*Header

func (c chainLookup) lookup(hash [32]byte) (*Header, bool) {
	h, ok := c[hash]
	return h, ok
}

// linkChain wires prev/hash pairs into a map-backed lookup and returns
// the tip (the last header in headers).
func linkChain(headers ...*Header) (chainLookup, *Header) {
	m := make(chainLookup, len(headers))
	for _, h := range headers {
		m[h.Hash()] = h
	}
	return m, headers[len(headers)-1]
}
