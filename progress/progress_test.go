package progress

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Update(t *testing.T) {
	var seen []Counters
	ctx, tracker := WithNewTracker(context.Background(), "run-1", "otters", func(c Counters) {
		seen = append(seen, c)
	})

	UpdateCtx(ctx, Delta{Total: 3})
	UpdateCtx(ctx, Delta{Running: 1})
	UpdateCtx(ctx, Delta{Running: -1, Completed: 1, Published: 2})

	snapshot := tracker.Snapshot()
	assert.Equal(t, "run-1", snapshot.RunID)
	assert.Equal(t, 3, snapshot.Total)
	assert.Equal(t, 1, snapshot.Completed)
	assert.Equal(t, 2, snapshot.Published)
	assert.Equal(t, 2, snapshot.Pending())
	assert.Len(t, seen, 3)

	actual, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, tracker, actual)

	UpdateCtx(context.Background(), Delta{Total: 1})
	var nilTracker *Progress
	nilTracker.Update(Delta{Total: 1})
	assert.Equal(t, Counters{}, nilTracker.Snapshot())
}

func TestProgress_Concurrent(t *testing.T) {
	_, tracker := WithNewTracker(context.Background(), "run", "", nil)
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Update(Delta{Completed: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, tracker.Snapshot().Completed)
}
