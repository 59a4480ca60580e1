// Package store provides an optional, non-consensus-affecting durability
// layer for a ChainEngine: periodic snapshots of the header index to a
// bbolt-backed file, so a host process can warm-start instead of
// resyncing headers from a peer after a restart.
//
// Nothing here participates in validation. A host that never opens a
// Snapshotter still has a fully-functioning ChainEngine purely in memory.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// ChainDir returns the on-disk directory for a given chain under datadir.
func ChainDir(datadir string, chainIDHex string) string {
	return filepath.Join(datadir, "chains", chainIDHex)
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}
