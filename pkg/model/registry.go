package model

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/pathmark/pathmark/pkg/errors"
)

// idWidthThreshold is the issued-id count past which newly allocated
// identifiers grow from 5 to 8 hex digits, keeping collision probability low
// without global coordination.
const idWidthThreshold = 10_000

// Registry owns identifier uniqueness for a single Pathway. Identifiers are
// never reused after removal: a released id stays burned so a later
// allocation cannot accidentally re-link stale references.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	entries map[string]any      // live id → owning entity
	issued  map[string]struct{} // every id ever issued or registered
	rng     *rand.Rand
}

// NewRegistry creates an empty registry. Pass a non-nil rng for reproducible
// allocation in tests; nil uses a process-seeded source.
func NewRegistry(rng *rand.Rand) *Registry {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Registry{
		entries: make(map[string]any),
		issued:  make(map[string]struct{}),
		rng:     rng,
	}
}

const hexDigits = "0123456789abcdef"

// Allocate produces an identifier unique among all identifiers ever issued
// or currently present. Candidates are fixed-width hex strings whose first
// digit is drawn from the letter range a–f, so generated ids never start
// with a digit and stay NCName-safe.
func (r *Registry) Allocate() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	width := 5
	if len(r.issued) > idWidthThreshold {
		width = 8
	}

	for {
		id := r.candidate(width)
		if _, taken := r.issued[id]; taken {
			continue
		}
		r.issued[id] = struct{}{}
		return id
	}
}

func (r *Registry) candidate(width int) string {
	buf := make([]byte, width)
	buf[0] = hexDigits[10+r.rng.IntN(6)] // a-f
	for i := 1; i < width; i++ {
		buf[i] = hexDigits[r.rng.IntN(16)]
	}
	return string(buf)
}

// Register maps id to entity. It fails with a DUPLICATE_ID error when id is
// already mapped to a live entity.
func (r *Registry) Register(id string, entity any) error {
	if id == "" {
		return errors.New(errors.ErrCodeInvalidID, "cannot register an empty id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		return errors.New(errors.ErrCodeDuplicateID, "element id already registered: %s", id)
	}
	r.entries[id] = entity
	r.issued[id] = struct{}{}
	return nil
}

// Lookup returns the entity owning id, if any. O(1).
func (r *Registry) Lookup(id string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return e, ok
}

// Release drops the live mapping for id. The id stays issued and will never
// be allocated again.
func (r *Registry) Release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Salted returns id with a numeric suffix, for deterministic collision
// resolution during decode-time backfill: "abc12" → "abc12-1", "abc12-2", …
func Salted(id string, n int) string {
	return fmt.Sprintf("%s-%d", id, n)
}
