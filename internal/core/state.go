package core

// State exclusively owns the current generation. Readers get the grid that was
// current at the time of the call; a step replaces it wholesale so a paint pass
// never sees a partially built generation.
type State struct {
	cur *Grid
	rev uint64
}

// NewState takes ownership of the initial grid.
func NewState(initial *Grid) *State {
	return &State{cur: initial}
}

// Current returns the current generation.
func (s *State) Current() *Grid { return s.cur }

// Revision increments on every mutation, replacements and toggles alike.
func (s *State) Revision() uint64 { return s.rev }

// Toggle flips one cell of the current generation.
func (s *State) Toggle(col, row int) error {
	if err := s.cur.Toggle(col, row); err != nil {
		return err
	}
	s.rev++
	return nil
}

// Replace installs next as the current generation and returns the previous one.
func (s *State) Replace(next *Grid) *Grid {
	if next == nil {
		return s.cur
	}
	prev := s.cur
	s.cur = next
	s.rev++
	return prev
}

// Advance computes the next generation with step and installs it. step must
// not mutate its input.
func (s *State) Advance(step func(*Grid) *Grid) (prev, next *Grid) {
	next = step(s.cur)
	prev = s.Replace(next)
	return prev, next
}
