package store

import (
	"encoding/binary"
	"fmt"

	"rubin.dev/node/consensus"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketHeaders = []byte("headers_by_hash")
	bucketMeta    = []byte("meta")

	metaKeyTip = []byte("tip_hash")
)

// Snapshotter persists a ChainEngine's header index to a bbolt file so a
// host can warm-start instead of re-requesting every header from a peer
// after a restart. It is purely a cache: a Snapshotter that has never
// been opened, or whose file is deleted, changes nothing about the
// engine's validation behavior, only how much work BuildLocator's first
// caller has to redo.
type Snapshotter struct {
	chainDir string
	db       *bolt.DB
}

// Open creates (if needed) and opens the snapshot file under
// datadir/chains/<chainIDHex>/headers.db.
func Open(datadir string, chainIDHex string) (*Snapshotter, error) {
	if datadir == "" {
		return nil, fmt.Errorf("store: datadir required")
	}
	if chainIDHex == "" {
		return nil, fmt.Errorf("store: chain_id_hex required")
	}

	chainDir := ChainDir(datadir, chainIDHex)
	if err := ensureDir(chainDir); err != nil {
		return nil, err
	}

	dbPath := chainDir + "/headers.db"
	db, err := bolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketHeaders); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init buckets: %w", err)
	}

	return &Snapshotter{chainDir: chainDir, db: db}, nil
}

// Close releases the underlying bbolt file handle.
func (s *Snapshotter) Close() error {
	return s.db.Close()
}

// Save writes every header in headers (including the genesis) keyed by
// hash, plus the tip hash, in a single bbolt transaction. Height and
// cumulative work travel alongside the wire-format bytes so Load can
// reconstruct the index without re-validating anything.
func (s *Snapshotter) Save(headers []*consensus.Header, tip *consensus.Header) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		hb := tx.Bucket(bucketHeaders)
		for _, h := range headers {
			hash := h.Hash()
			if err := hb.Put(hash[:], encodeHeaderRecord(h)); err != nil {
				return fmt.Errorf("store: put header %x: %w", hash, err)
			}
		}
		mb := tx.Bucket(bucketMeta)
		tipHash := tip.Hash()
		return mb.Put(metaKeyTip, tipHash[:])
	})
}

// Load reads every snapshotted header and the tip hash back out. It
// returns (nil, [32]byte{}, nil) when the snapshot is empty (a fresh
// file), which the caller should treat the same as "no snapshot".
func (s *Snapshotter) Load() (headers []*consensus.Header, tipHash [32]byte, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		mb := tx.Bucket(bucketMeta)
		if raw := mb.Get(metaKeyTip); raw != nil {
			copy(tipHash[:], raw)
		}

		hb := tx.Bucket(bucketHeaders)
		return hb.ForEach(func(_, v []byte) error {
			h, derr := decodeHeaderRecord(v)
			if derr != nil {
				return derr
			}
			headers = append(headers, h)
			return nil
		})
	})
	return headers, tipHash, err
}

// encodeHeaderRecord appends the derived Height and Work fields after the
// header's canonical wire bytes, so a snapshot round-trip needs no
// re-derivation of chainwork.
func encodeHeaderRecord(h *consensus.Header) []byte {
	wire := h.Bytes()
	out := make([]byte, 0, len(wire)+4+32)
	out = append(out, wire...)
	var heightBuf [4]byte
	binary.LittleEndian.PutUint32(heightBuf[:], h.Height)
	out = append(out, heightBuf[:]...)
	out = append(out, h.Work[:]...)
	return out
}

func decodeHeaderRecord(rec []byte) (*consensus.Header, error) {
	if len(rec) < 36 {
		return nil, fmt.Errorf("store: short header record (%d bytes)", len(rec))
	}
	wire := rec[:len(rec)-36]
	h, err := consensus.ParseHeader(wire)
	if err != nil {
		return nil, fmt.Errorf("store: parse header: %w", err)
	}
	h.Height = binary.LittleEndian.Uint32(rec[len(rec)-36 : len(rec)-32])
	copy(h.Work[:], rec[len(rec)-32:])
	return h, nil
}
