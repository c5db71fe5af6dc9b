package concmap

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// OrderedMap is a Buffer/Getter/Retainer adapter backed by two
// parallel, key-sorted slices. Grounded on raw_map.rs's
// BTreeMap<K, V> RawMap impl; the Go standard library has no ordered
// map comparable to BTreeMap, so this uses golang.org/x/exp/slices'
// binary search over a sorted slice instead, the same dependency
// SnellerInc/sneller pulls in for its own sorted-slice utilities.
type OrderedMap[K constraints.Ordered, V any] struct {
	keys   []K
	values []V
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[K constraints.Ordered, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{}
}

// NewOrderedMapWithCapacity returns an empty OrderedMap with underlying
// slices pre-sized for capacity entries.
func NewOrderedMapWithCapacity[K constraints.Ordered, V any](capacity int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		keys:   make([]K, 0, capacity),
		values: make([]V, 0, capacity),
	}
}

func (m *OrderedMap[K, V]) search(key K) (int, bool) {
	return slices.BinarySearchFunc(m.keys, key, func(a, b K) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
}

func (m *OrderedMap[K, V]) Len() int { return len(m.keys) }

func (m *OrderedMap[K, V]) Clear() {
	m.keys = m.keys[:0]
	m.values = m.values[:0]
}

func (m *OrderedMap[K, V]) Insert(key K, value V) {
	i, found := m.search(key)
	if found {
		m.values[i] = value
		return
	}

	var zeroK K
	m.keys = append(m.keys, zeroK)
	copy(m.keys[i+1:], m.keys[i:])
	m.keys[i] = key

	var zeroV V
	m.values = append(m.values, zeroV)
	copy(m.values[i+1:], m.values[i:])
	m.values[i] = value
}

func (m *OrderedMap[K, V]) Remove(key K) {
	i, found := m.search(key)
	if !found {
		return
	}
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.values = append(m.values[:i], m.values[i+1:]...)
}

// Reserve grows the backing slices' capacity ahead of time. BTreeMap's
// own reserve is a no-op (raw_map.rs); a sorted slice benefits from one,
// so this adapter implements it for real rather than following that
// no-op.
func (m *OrderedMap[K, V]) Reserve(n int) {
	if cap(m.keys)-len(m.keys) >= n {
		return
	}

	grownKeys := make([]K, len(m.keys), len(m.keys)+n)
	copy(grownKeys, m.keys)
	m.keys = grownKeys

	grownValues := make([]V, len(m.values), len(m.values)+n)
	copy(grownValues, m.values)
	m.values = grownValues
}

func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	i, found := m.search(key)
	if !found {
		var zero V
		return zero, false
	}
	return m.values[i], true
}

func (m *OrderedMap[K, V]) Retain(keep func(key K, value V) bool) {
	w := 0
	for i := range m.keys {
		if keep(m.keys[i], m.values[i]) {
			m.keys[w] = m.keys[i]
			m.values[w] = m.values[i]
			w++
		}
	}
	m.keys = m.keys[:w]
	m.values = m.values[:w]
}
