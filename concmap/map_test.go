package concmap

import (
	"runtime"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/coalfire-dev/doublebuf/strategy"
)

func TestMapVisibilityRequiresFlush(t *testing.T) {
	w, r := NewMap[string, int, HashMap[string, int], *HashMap[string, int]](
		strategy.AtomicCounter(), HashMap[string, int]{m: map[string]int{}}, HashMap[string, int]{m: map[string]int{}})

	w.Insert("a", 1)

	n, err := r.Len()
	require.NoError(t, err)
	require.Equal(t, 0, n, "reader must not see a write before Flush")

	w.Flush()

	n, err = r.Len()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	v, ok, err := Get[string, int, HashMap[string, int], *HashMap[string, int]](r, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestMapReaderGetMap(t *testing.T) {
	w, r := NewMapWithStrategy[string, int, HashMap[string, int], *HashMap[string, int]](
		HashMap[string, int]{m: map[string]int{}}, HashMap[string, int]{m: map[string]int{}})

	w.Insert("a", 1)
	w.Insert("b", 2)
	w.Flush()

	guard, err := r.GetMap()
	require.NoError(t, err)
	defer guard.Release()

	// a single guard lets a caller read more than one field of the
	// snapshot without a separate Len()/Get() round trip each
	// re-acquiring the cell.
	buf := guard.Value()
	require.Equal(t, 2, buf.Len())
	v, ok := buf.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestMapRemoveAndRetainVisibility(t *testing.T) {
	w, r := NewMapWithStrategy[string, int, HashMap[string, int], *HashMap[string, int]](
		HashMap[string, int]{m: map[string]int{}}, HashMap[string, int]{m: map[string]int{}})

	w.Insert("a", 1)
	w.Insert("b", 2)
	w.Insert("c", 3)
	w.Flush()

	w.Remove("a")
	w.Flush()
	n, _ := r.Len()
	require.Equal(t, 2, n)
	_, ok, _ := Get[string, int, HashMap[string, int], *HashMap[string, int]](r, "a")
	require.False(t, ok)

	Retain[string, int, HashMap[string, int], *HashMap[string, int]](w, func(key string, value int) bool {
		return value%2 == 0
	})
	w.Flush()

	n, _ = r.Len()
	require.Equal(t, 1, n)
	_, ok, _ = Get[string, int, HashMap[string, int], *HashMap[string, int]](r, "b")
	require.True(t, ok)
}

func TestMapClose(t *testing.T) {
	w, r := NewMapWithStrategy[int, int, HashMap[int, int], *HashMap[int, int]](
		HashMap[int, int]{m: map[int]int{}}, HashMap[int, int]{m: map[int]int{}})

	clone, err := r.Clone()
	require.NoError(t, err)
	require.NotNil(t, clone)

	w.Close()

	_, err = r.Clone()
	require.Error(t, err)
}

// TestManyReadersOneWriterConcurrentInserts mirrors the corpus's
// many-reader/one-writer workload shape (dijkstracula-go-ilock's
// concurrency benchmarks): one writer inserting distinct keys while a
// pool of readers each clone once and then read continuously. Only meaningful with
// -race.
func TestManyReadersOneWriterConcurrentInserts(t *testing.T) {
	w, seedReader := NewMap[string, string, HashMap[string, string], *HashMap[string, string]](
		strategy.Epoch(), HashMap[string, string]{m: map[string]string{}}, HashMap[string, string]{m: map[string]string{}})

	const writes = 200
	keys := make([]string, writes)
	for i := range keys {
		keys[i] = uuid.New().String()
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < runtime.NumCPU()*2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := seedReader.Clone()
			if err != nil {
				t.Error(err)
				return
			}
			defer r.Close() // retire this goroutine's epoch tag on exit
			for {
				select {
				case <-done:
					return
				default:
					if _, err := r.Len(); err != nil {
						t.Error(err)
						return
					}
				}
			}
		}()
	}

	for i, key := range keys {
		w.Insert(key, key)
		if i%10 == 0 {
			w.Flush()
		}
	}
	w.Flush()
	close(done)
	wg.Wait()

	n, err := seedReader.Len()
	require.NoError(t, err)
	require.Equal(t, writes, n)
}
