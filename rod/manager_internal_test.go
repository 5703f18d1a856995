package rod

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLauncher hands out browser instances that record their shutdown.
type fakeLauncher struct {
	launched []*instance
	stopped  []*atomic.Int32
}

func (f *fakeLauncher) launch() (*instance, error) {
	stopped := &atomic.Int32{}
	inst := &instance{shutdown: func() error {
		stopped.Add(1)
		return nil
	}}
	f.launched = append(f.launched, inst)
	f.stopped = append(f.stopped, stopped)
	return inst, nil
}

func TestBrowserManager_Recycle(t *testing.T) {
	t.Parallel()

	t.Run("keeps a replaced browser up until its pages are released", func(t *testing.T) {
		t.Parallel()

		fl := &fakeLauncher{}
		bm, err := newBrowserManager(fl.launch, WithMaxPages(1))
		require.NoError(t, err)

		first, err := bm.acquire()
		require.NoError(t, err)

		second, err := bm.acquire()
		require.NoError(t, err)
		require.Len(t, fl.launched, 2)
		assert.NotSame(t, first, second)
		assert.Zero(t, fl.stopped[0].Load(), "old browser closed while a page was still open on it")

		bm.release(first)
		assert.Equal(t, int32(1), fl.stopped[0].Load())

		bm.release(second)
		assert.Zero(t, fl.stopped[1].Load())
	})

	t.Run("shuts an idle browser down as soon as it is replaced", func(t *testing.T) {
		t.Parallel()

		fl := &fakeLauncher{}
		bm, err := newBrowserManager(fl.launch, WithMaxPages(1))
		require.NoError(t, err)

		inst, err := bm.acquire()
		require.NoError(t, err)
		bm.release(inst)

		_, err = bm.acquire()
		require.NoError(t, err)

		assert.Equal(t, int32(1), fl.stopped[0].Load())
	})

	t.Run("close shuts down replaced browsers that are still in use", func(t *testing.T) {
		t.Parallel()

		fl := &fakeLauncher{}
		bm, err := newBrowserManager(fl.launch, WithMaxPages(1))
		require.NoError(t, err)

		first, err := bm.acquire()
		require.NoError(t, err)
		_, err = bm.acquire()
		require.NoError(t, err)

		require.NoError(t, bm.Close())
		require.NoError(t, bm.Close())

		assert.Equal(t, int32(1), fl.stopped[0].Load())
		assert.Equal(t, int32(1), fl.stopped[1].Load())

		bm.release(first)
		assert.Equal(t, int32(1), fl.stopped[0].Load())
	})

	t.Run("acquire fails after close", func(t *testing.T) {
		t.Parallel()

		fl := &fakeLauncher{}
		bm, err := newBrowserManager(fl.launch)
		require.NoError(t, err)
		require.NoError(t, bm.Close())

		_, err = bm.acquire()

		assert.Error(t, err)
	})
}
