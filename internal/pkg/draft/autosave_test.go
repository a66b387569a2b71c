package draft

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingWriter captures every write it receives.
type recordingWriter struct {
	mu     sync.Mutex
	writes []*Draft
}

func (w *recordingWriter) Save(_ context.Context, _ uint, d *Draft) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes = append(w.writes, d)
	return nil
}

func (w *recordingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.writes)
}

func (w *recordingWriter) last() *Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.writes) == 0 {
		return nil
	}
	return w.writes[len(w.writes)-1]
}

func TestAutosaverCoalescesRapidMutations(t *testing.T) {
	w := &recordingWriter{}
	a := NewAutosaver(w, 30*time.Millisecond)

	a.Schedule(1, &Draft{Description: "first"})
	a.Schedule(1, &Draft{Description: "second"})

	require.Eventually(t, func() bool { return w.count() == 1 }, time.Second, 5*time.Millisecond)

	// exactly one write, carrying the latest state
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, w.count())
	assert.Equal(t, "second", w.last().Description)
}

func TestAutosaverIndependentUsers(t *testing.T) {
	w := &recordingWriter{}
	a := NewAutosaver(w, 20*time.Millisecond)

	a.Schedule(1, &Draft{Description: "user one"})
	a.Schedule(2, &Draft{Description: "user two"})

	require.Eventually(t, func() bool { return w.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestAutosaverFlushWritesImmediately(t *testing.T) {
	w := &recordingWriter{}
	a := NewAutosaver(w, time.Hour)

	a.Schedule(7, &Draft{Description: "pending"})
	require.NoError(t, a.Flush(context.Background(), 7))

	assert.Equal(t, 1, w.count())
	assert.Equal(t, "pending", w.last().Description)

	// nothing left to flush
	require.NoError(t, a.Flush(context.Background(), 7))
	assert.Equal(t, 1, w.count())
}

func TestAutosaverCancelDropsPendingWrite(t *testing.T) {
	w := &recordingWriter{}
	a := NewAutosaver(w, 20*time.Millisecond)

	a.Schedule(3, &Draft{Description: "doomed"})
	a.Cancel(3)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, w.count())
}
