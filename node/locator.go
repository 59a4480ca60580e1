package node

// Locator is the wire shape produced for peer bootstrap (§6): up to
// MaxLocatorHashes hashes with an explicit count, exactly as a
// getheaders-style message would carry them.
type Locator struct {
	Hashes    [][32]byte
	HashCount uint8
}

// BuildLocator wraps ChainEngine.Locator's result in the wire shape.
func (e *ChainEngine) BuildLocator() Locator {
	hashes := e.Locator()
	return Locator{Hashes: hashes, HashCount: uint8(len(hashes))}
}
