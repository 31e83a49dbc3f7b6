package naming

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"
)

// OverrideLookup resolves a precomputed base name from the hash of an
// invocation's parameter list.
type OverrideLookup interface {
	Lookup(hash string) (string, bool)
}

// HashParameters returns a stable digest of the ordered parameter
// list. Distinct lists may collide; the first stored override for a
// hash wins.
func HashParameters(params []any) string {
	h := fnv.New64a()
	for i, p := range params {
		if i > 0 {
			_, _ = h.Write([]byte{0x1f})
		}
		if p == nil {
			_, _ = h.Write([]byte("<nil>"))
			continue
		}
		_, _ = fmt.Fprintf(h, "%v", p)
	}
	_, _ = h.Write([]byte(strconv.Itoa(len(params))))
	return strconv.FormatUint(h.Sum64(), 16)
}

// OverrideTable is a concurrency-safe OverrideLookup populated by data
// providers.
type OverrideTable struct {
	mu    sync.RWMutex
	names map[string]string
}

// NewOverrideTable creates an empty OverrideTable.
func NewOverrideTable() *OverrideTable {
	return &OverrideTable{names: make(map[string]string)}
}

// Put registers name for the given parameter list. An existing entry
// for the same hash is kept.
func (t *OverrideTable) Put(params []any, name string) {
	t.PutHash(HashParameters(params), name)
}

// PutHash registers name for a precomputed hash.
func (t *OverrideTable) PutHash(hash, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.names[hash]; exists {
		return
	}
	t.names[hash] = name
}

// Lookup returns the name registered for hash.
func (t *OverrideTable) Lookup(hash string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	name, ok := t.names[hash]
	return name, ok
}

// Len returns the number of registered overrides.
func (t *OverrideTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}
