package core

// Cadence gates simulation steps to every Nth frame. The counter runs free and
// resets to zero whenever it fires.
type Cadence struct {
	rate    int
	counter int
}

// NewCadence constructs a Cadence that fires once every rate frames.
func NewCadence(rate int) *Cadence {
	c := &Cadence{}
	c.SetRate(rate)
	return c
}

// SetRate changes the number of frames per step. Values below one are raised
// to one. The counter is kept, so a slower rate only delays the next step.
func (c *Cadence) SetRate(rate int) {
	if rate < 1 {
		rate = 1
	}
	c.rate = rate
}

// Rate returns the frames-per-step setting.
func (c *Cadence) Rate() int { return c.rate }

// Counter returns the frames counted since the last step.
func (c *Cadence) Counter() int { return c.counter }

// Tick counts one frame and reports whether a step is due.
func (c *Cadence) Tick() bool {
	c.counter++
	if c.counter%c.rate == 0 {
		c.counter = 0
		return true
	}
	return false
}

// Reset zeroes the frame counter.
func (c *Cadence) Reset() { c.counter = 0 }
