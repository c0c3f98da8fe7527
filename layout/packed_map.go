package layout

// PackedMap is used in place of a map when keys are looked up by insertion position.
// Keys and values are stored compacted to unique keys, and index maps every insertion
// position to its compacted slot. Repeated keys do get their own position.
//
// The map is rebuilt whenever set of children changes, lookups afterwards need no hashing.
type PackedMap[K comparable, V any] struct {
	index  []int
	keys   []K
	values []V
}

// NewPackedMap packs parallel keys and values.
// Slots are assigned in order keys are first seen, the last value for duplicate key is retained.
func NewPackedMap[K comparable, V any](keys []K, values []V) *PackedMap[K, V] {
	index := make([]int, len(keys))
	ids := make(map[K]int, len(keys))
	for i, k := range keys {
		id, ok := ids[k]
		if !ok {
			id = len(ids)
			ids[k] = id
		}
		index[i] = id
	}

	m := &PackedMap[K, V]{
		index:  index,
		keys:   make([]K, len(ids)),
		values: make([]V, len(ids)),
	}
	for i, slot := range index {
		m.keys[slot] = keys[i]
		m.values[slot] = values[i]
	}
	return m
}

// Len is number of unique keys.
func (m *PackedMap[K, V]) Len() int { return len(m.keys) }

// Slot is compacted slot of insertion position i.
func (m *PackedMap[K, V]) Slot(i int) int { return m.index[i] }

func (m *PackedMap[K, V]) Key(i int) K { return m.keys[m.index[i]] }

func (m *PackedMap[K, V]) Value(i int) V { return m.values[m.index[i]] }

// ValueRef points to value of insertion position i, values can be updated in place.
func (m *PackedMap[K, V]) ValueRef(i int) *V { return &m.values[m.index[i]] }

// Keys are unique keys in slot order.
func (m *PackedMap[K, V]) Keys() []K { return m.keys }

// Values are values in slot order.
func (m *PackedMap[K, V]) Values() []V { return m.values }
