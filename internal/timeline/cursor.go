package timeline

// Cursor is a clamped position in a tick sequence.
type Cursor struct {
	ticks    []Tick
	position int
}

// NewCursor creates a cursor positioned at the first tick.
func NewCursor(ticks []Tick) *Cursor {
	return &Cursor{ticks: ticks}
}

// Len returns the number of ticks.
func (c *Cursor) Len() int {
	return len(c.ticks)
}

// Position returns the 0-based index of the current tick.
func (c *Cursor) Position() int {
	return c.position
}

// Start moves to the first tick.
func (c *Cursor) Start() {
	if len(c.ticks) > 0 {
		c.position = 0
	}
}

// End moves to the last tick.
func (c *Cursor) End() {
	if len(c.ticks) > 0 {
		c.position = len(c.ticks) - 1
	}
}

// Advance moves forward by steps, stopping at the last tick.
// Steps below 1 count as 1.
func (c *Cursor) Advance(steps int) {
	if len(c.ticks) == 0 {
		return
	}
	last := len(c.ticks) - 1
	if n := normalizeSteps(steps); n >= last-c.position {
		c.position = last
	} else {
		c.position += n
	}
}

// Retreat moves back by steps, stopping at the first tick.
// Steps below 1 count as 1.
func (c *Cursor) Retreat(steps int) {
	if len(c.ticks) == 0 {
		return
	}
	if n := normalizeSteps(steps); n >= c.position {
		c.position = 0
	} else {
		c.position -= n
	}
}

// Seek moves to index, clamped to the valid range.
func (c *Cursor) Seek(index int) {
	if len(c.ticks) == 0 {
		return
	}
	c.position = min(len(c.ticks)-1, max(0, index))
}

// Current returns the tick under the cursor; ok is false when there are
// no ticks.
func (c *Cursor) Current() (tick Tick, ok bool) {
	if len(c.ticks) == 0 {
		return Tick{}, false
	}
	return c.ticks[c.position], true
}

func normalizeSteps(steps int) int {
	if steps < 1 {
		return 1
	}
	return steps
}
