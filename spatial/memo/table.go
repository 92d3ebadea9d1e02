package memo

// Stats counts lookups made through Lookup and Probe since the last reset.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Table2 memoizes values under a pair of integer keys.
type Table2[V any] struct {
	entries map[[2]int64]V
	stats   Stats
}

// NewTable2 returns an empty two-key table.
func NewTable2[V any]() *Table2[V] {
	return &Table2[V]{entries: make(map[[2]int64]V)}
}

// Set stores value under (k1, k2), replacing any previous value.
func (t *Table2[V]) Set(k1, k2 int64, value V) {
	t.entries[[2]int64{k1, k2}] = value
}

// Get returns the value under (k1, k2) and whether it was present.
func (t *Table2[V]) Get(k1, k2 int64) (V, bool) {
	v, ok := t.entries[[2]int64{k1, k2}]
	return v, ok
}

// Has reports whether (k1, k2) holds a value.
func (t *Table2[V]) Has(k1, k2 int64) bool {
	_, ok := t.entries[[2]int64{k1, k2}]
	return ok
}

// Probe is Get with hit and miss counting.
func (t *Table2[V]) Probe(k1, k2 int64) (V, bool) {
	v, ok := t.entries[[2]int64{k1, k2}]
	if ok {
		t.stats.Hits++
	} else {
		t.stats.Misses++
	}
	return v, ok
}

// Lookup returns the value under (k1, k2), computing and storing it with
// compute on a miss. Hits and misses are counted.
func (t *Table2[V]) Lookup(k1, k2 int64, compute func() V) V {
	key := [2]int64{k1, k2}
	if v, ok := t.entries[key]; ok {
		t.stats.Hits++
		return v
	}

	t.stats.Misses++
	v := compute()
	t.entries[key] = v
	return v
}

// Len returns the number of stored entries.
func (t *Table2[V]) Len() int { return len(t.entries) }

// Stats returns the lookup counters.
func (t *Table2[V]) Stats() Stats { return t.stats }

// Reset removes every entry and zeroes the counters.
func (t *Table2[V]) Reset() {
	clear(t.entries)
	t.stats = Stats{}
}

// Destroy releases the table's storage. A destroyed table behaves as an
// empty one and may be reused.
func (t *Table2[V]) Destroy() {
	t.entries = make(map[[2]int64]V)
	t.stats = Stats{}
}

// Table3 memoizes values under three integer keys.
type Table3[V any] struct {
	entries map[[3]int64]V
	stats   Stats
}

// NewTable3 returns an empty three-key table.
func NewTable3[V any]() *Table3[V] {
	return &Table3[V]{entries: make(map[[3]int64]V)}
}

// Set stores value under (k1, k2, k3), replacing any previous value.
func (t *Table3[V]) Set(k1, k2, k3 int64, value V) {
	t.entries[[3]int64{k1, k2, k3}] = value
}

// Get returns the value under (k1, k2, k3) and whether it was present.
func (t *Table3[V]) Get(k1, k2, k3 int64) (V, bool) {
	v, ok := t.entries[[3]int64{k1, k2, k3}]
	return v, ok
}

// Has reports whether (k1, k2, k3) holds a value.
func (t *Table3[V]) Has(k1, k2, k3 int64) bool {
	_, ok := t.entries[[3]int64{k1, k2, k3}]
	return ok
}

// Probe is Get with hit and miss counting.
func (t *Table3[V]) Probe(k1, k2, k3 int64) (V, bool) {
	v, ok := t.entries[[3]int64{k1, k2, k3}]
	if ok {
		t.stats.Hits++
	} else {
		t.stats.Misses++
	}
	return v, ok
}

// Lookup returns the value under (k1, k2, k3), computing and storing it
// with compute on a miss.
func (t *Table3[V]) Lookup(k1, k2, k3 int64, compute func() V) V {
	key := [3]int64{k1, k2, k3}
	if v, ok := t.entries[key]; ok {
		t.stats.Hits++
		return v
	}

	t.stats.Misses++
	v := compute()
	t.entries[key] = v
	return v
}

// Len returns the number of stored entries.
func (t *Table3[V]) Len() int { return len(t.entries) }

// Stats returns the lookup counters.
func (t *Table3[V]) Stats() Stats { return t.stats }

// Reset removes every entry and zeroes the counters.
func (t *Table3[V]) Reset() {
	clear(t.entries)
	t.stats = Stats{}
}

// Destroy releases the table's storage.
func (t *Table3[V]) Destroy() {
	t.entries = make(map[[3]int64]V)
	t.stats = Stats{}
}
