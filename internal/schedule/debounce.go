package schedule

import "github.com/dshills/textkit/internal/logger"

// Debounce runs a block at most once per tick no matter how many times it
// is scheduled. It must only be used from tasks running on its loop.
type Debounce struct {
	loop      Loop
	block     func()
	scheduled bool
}

// NewDebounce creates a Debounce running block on loop.
func NewDebounce(loop Loop, block func()) *Debounce {
	return &Debounce{loop: loop, block: block}
}

// IsScheduled returns true if a tick is pending.
func (d *Debounce) IsScheduled() bool {
	return d.scheduled
}

// Schedule queues the block for the next tick unless it is already queued.
func (d *Debounce) Schedule() {
	if d.scheduled {
		logger.Debugf("debounce: already scheduled")
		return
	}
	d.scheduled = true

	d.loop.Perform(func() {
		if !d.scheduled {
			logger.Debugf("debounce: already performed")
			return
		}
		d.Perform()
	})
}

// Perform runs the block now. A pending tick becomes a no-op.
func (d *Debounce) Perform() {
	d.scheduled = false
	d.block()
}
