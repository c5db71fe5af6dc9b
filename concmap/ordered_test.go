package concmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderedMapStaysSorted(t *testing.T) {
	m := NewOrderedMap[int, string]()
	m.Insert(5, "five")
	m.Insert(1, "one")
	m.Insert(3, "three")

	require.Equal(t, []int{1, 3, 5}, m.keys)
	require.Equal(t, []string{"one", "three", "five"}, m.values)

	v, ok := m.Get(3)
	require.True(t, ok)
	require.Equal(t, "three", v)

	m.Insert(3, "THREE")
	require.Equal(t, 3, m.Len())
	v, _ = m.Get(3)
	require.Equal(t, "THREE", v)
}

func TestOrderedMapRemove(t *testing.T) {
	m := NewOrderedMap[int, string]()
	m.Insert(1, "one")
	m.Insert(2, "two")
	m.Insert(3, "three")

	m.Remove(2)
	require.Equal(t, []int{1, 3}, m.keys)
	_, ok := m.Get(2)
	require.False(t, ok)

	m.Remove(99) // no-op
	require.Equal(t, 2, m.Len())
}

func TestOrderedMapRetain(t *testing.T) {
	m := NewOrderedMap[int, int]()
	for i := 0; i < 10; i++ {
		m.Insert(i, i)
	}
	m.Retain(func(key int, value int) bool { return key%2 == 0 })
	require.Equal(t, []int{0, 2, 4, 6, 8}, m.keys)
}

func TestOrderedMapReserveGrowsCapacity(t *testing.T) {
	m := NewOrderedMap[int, int]()
	m.Reserve(100)
	require.GreaterOrEqual(t, cap(m.keys), 100)
	require.GreaterOrEqual(t, cap(m.values), 100)
	require.Equal(t, 0, m.Len())
}
