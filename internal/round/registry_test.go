package round

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SecondAcquireFailsFast(t *testing.T) {
	r := NewRegistry()
	token, err := r.AcquireWrite(1)
	require.NoError(t, err)

	_, err = r.AcquireWrite(1)
	assert.ErrorIs(t, err, ErrRoundBusy)

	token.Release()
	_, err = r.AcquireWrite(1)
	assert.NoError(t, err)
}

func TestRegistry_DisjointRoundsIndependent(t *testing.T) {
	r := NewRegistry()
	t1, err := r.AcquireWrite(1)
	require.NoError(t, err)
	t2, err := r.AcquireWrite(2)
	require.NoError(t, err)
	t1.Release()
	t2.Release()
}

func TestRegistry_ReleaseIsIdempotent(t *testing.T) {
	r := NewRegistry()
	token, err := r.AcquireWrite(1)
	require.NoError(t, err)
	token.Release()
	token.Release() // must not panic or double-unlock

	_, err = r.AcquireWrite(1)
	assert.NoError(t, err)
}

func TestRegistry_WithWriteReleasesOnPanic(t *testing.T) {
	r := NewRegistry()
	func() {
		defer func() { _ = recover() }()
		_ = r.WithWrite(context.Background(), 1, func(ctx context.Context) error {
			panic("boom")
		})
	}()

	assert.False(t, r.IsBusy(1))
}

func TestRegistry_ConcurrentAcquireExactlyOneWinner(t *testing.T) {
	r := NewRegistry()
	const attempts = 20
	var wg sync.WaitGroup
	successes := make([]bool, attempts)
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := r.AcquireWrite(42)
			successes[i] = err == nil
		}(i)
	}
	wg.Wait()

	count := 0
	for _, ok := range successes {
		if ok {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
