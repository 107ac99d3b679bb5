package ecs

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPoolLimit(t *testing.T) {
	cases := []struct {
		name    string
		threads int
		want    int
	}{
		{"zero_means_one", 0, 1},
		{"one", 1, 1},
		{"four", 4, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPool(c.threads)
			require.Equal(t, c.want, p.Threads())

			var running, peak atomic.Int64
			b := p.Batch()
			for i := 0; i < 20; i++ {
				b.Go(func() error {
					n := running.Add(1)
					for {
						old := peak.Load()
						if n <= old || peak.CompareAndSwap(old, n) {
							break
						}
					}
					time.Sleep(time.Millisecond)
					running.Add(-1)
					return nil
				})
			}
			require.NoError(t, b.Wait())
			require.LessOrEqual(t, peak.Load(), int64(c.want))
			require.Zero(t, running.Load())
		})
	}
}

func TestBatchWaitReportsError(t *testing.T) {
	boom := errors.New("boom")
	b := NewPool(2).Batch()
	var done atomic.Int64
	for i := 0; i < 5; i++ {
		b.Go(func() error {
			defer done.Add(1)
			if i == 3 {
				return boom
			}
			return nil
		})
	}
	require.ErrorIs(t, b.Wait(), boom)
	require.Equal(t, int64(5), done.Load())
}
