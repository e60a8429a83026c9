package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebounce_ScheduleTwiceRunsOnce(t *testing.T) {
	loop := NewManualLoop()
	count := 0
	d := NewDebounce(loop, func() { count++ })

	d.Schedule()
	d.Schedule()
	assert.True(t, d.IsScheduled())
	assert.Equal(t, 0, count)

	loop.Drain()
	assert.Equal(t, 1, count)
	assert.False(t, d.IsScheduled())
}

func TestDebounce_PerformCancelsPendingTick(t *testing.T) {
	loop := NewManualLoop()
	count := 0
	d := NewDebounce(loop, func() { count++ })

	d.Schedule()
	d.Perform()
	require.Equal(t, 1, count)

	loop.Drain()
	assert.Equal(t, 1, count)
}

func TestDebounce_ScheduleAfterPerform(t *testing.T) {
	loop := NewManualLoop()
	count := 0
	d := NewDebounce(loop, func() { count++ })

	d.Schedule()
	d.Perform()
	d.Schedule()

	// The first tick runs both the stale and the fresh task.
	loop.RunOnce()
	assert.Equal(t, 2, count)

	loop.Drain()
	assert.Equal(t, 2, count)
}

func TestDebounce_ScheduleFromBlock(t *testing.T) {
	loop := NewManualLoop()
	count := 0
	var d *Debounce
	d = NewDebounce(loop, func() {
		count++
		if count == 1 {
			d.Schedule()
		}
	})

	d.Schedule()
	loop.RunOnce()
	assert.Equal(t, 1, count)
	assert.True(t, d.IsScheduled())

	loop.RunOnce()
	assert.Equal(t, 2, count)
}
