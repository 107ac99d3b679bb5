package ids

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocateSequence(t *testing.T) {
	a := NewAllocator()

	require.Equal(t, ID(1), a.Allocate(Vertex))
	require.Equal(t, ID(1), a.Allocate(Texture))
	require.Equal(t, ID(2), a.Allocate(Vertex))

	require.Equal(t, ID(2), a.Last(Vertex))
	require.Equal(t, ID(1), a.Last(Texture))
	require.Equal(t, ID(0), a.Last(Model))
}

func TestAllocateZeroValue(t *testing.T) {
	var a Allocator
	require.Equal(t, ID(1), a.Allocate(Model))
	require.True(t, a.Last(Model).Valid())
}

func TestAllocateConcurrent(t *testing.T) {
	cases := []struct {
		name    string
		workers int
		each    int
	}{
		{"single_worker", 1, 100},
		{"eight_workers", 8, 250},
		{"many_workers", 64, 50},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewAllocator()
			n := c.workers * c.each

			results := make(chan ID, n)
			var wg sync.WaitGroup
			for w := 0; w < c.workers; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < c.each; i++ {
						results <- a.Allocate(Being)
					}
				}()
			}
			wg.Wait()
			close(results)

			seen := make(map[ID]struct{}, n)
			for id := range results {
				_, dup := seen[id]
				require.False(t, dup, "duplicate id %d", id)
				seen[id] = struct{}{}
			}
			require.Len(t, seen, n)
			for i := 1; i <= n; i++ {
				_, ok := seen[ID(i)]
				require.True(t, ok, "missing id %d", i)
			}
		})
	}
}
