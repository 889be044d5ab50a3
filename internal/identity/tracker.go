package identity

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/RoaringBitmap/roaring"
)

// Tracker counts ids seen more than once. Ids are reduced to a 32-bit digest
// and kept in a compressed bitmap, so a tracker over a large content tree
// stays small and two trackers merge with a bitmap union.
type Tracker struct {
	seen       *roaring.Bitmap
	collisions int
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: roaring.New()}
}

func digest(id string) uint32 {
	sum := sha256.Sum256([]byte(id))
	return binary.BigEndian.Uint32(sum[:4])
}

// Add records an id and reports false when it was already present.
func (t *Tracker) Add(id string) bool {
	if t.seen.CheckedAdd(digest(id)) {
		return true
	}
	t.collisions++
	return false
}

// Collisions is the number of Add calls that hit an existing id.
func (t *Tracker) Collisions() int {
	return t.collisions
}

// Merge folds other into t. Ids present in both count as collisions.
func (t *Tracker) Merge(other *Tracker) {
	if other == nil {
		return
	}
	t.collisions += other.collisions + int(roaring.And(t.seen, other.seen).GetCardinality())
	t.seen.Or(other.seen)
}
