package loop

// FrameID identifies a scheduled frame callback.
type FrameID uint64

// Host is a display-synchronized scheduler: a requested callback runs once, on
// the next frame, unless cancelled first.
type Host interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// FrameQueue is a Host driven by an external frame source. Each Pump runs the
// callbacks requested before it started; callbacks requested while pumping
// wait for the next Pump, the same way a browser animation frame behaves.
type FrameQueue struct {
	last    FrameID
	order   []FrameID
	pending map[FrameID]func()
	pumped  uint64
}

// NewFrameQueue returns an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: map[FrameID]func(){}}
}

// RequestFrame schedules fn for the next Pump.
func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.last++
	id := q.last
	q.pending[id] = fn
	q.order = append(q.order, id)
	return id
}

// CancelFrame drops a scheduled callback. Unknown or already-run ids are
// ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	delete(q.pending, id)
}

// Pending returns the number of callbacks waiting for the next Pump.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Frames returns how many times Pump has run.
func (q *FrameQueue) Frames() uint64 { return q.pumped }

// Pump runs one frame and returns the number of callbacks invoked.
func (q *FrameQueue) Pump() int {
	q.pumped++
	batch := q.order
	q.order = nil
	ran := 0
	for _, id := range batch {
		fn, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		fn()
		ran++
	}
	return ran
}
