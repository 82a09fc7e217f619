package game

// pushBlocks pushes every block overlapped by mover one step in dir.
// Pushes are all-or-nothing: if any block is stuck, blocks already moved on
// this axis are put back and false is returned.
func (s *Session) pushBlocks(mover Rect, dir Direction) bool {
	type moved struct {
		index int
		prev  Rect
	}
	var done []moved

	for i := range s.Blocks {
		if !mover.Overlaps(s.Blocks[i].Bounds) {
			continue
		}
		prev := s.Blocks[i].Bounds
		if !s.pushBlock(i, dir) {
			for j := len(done) - 1; j >= 0; j-- {
				s.Blocks[done[j].index].Bounds = done[j].prev
			}
			return false
		}
		done = append(done, moved{index: i, prev: prev})
	}

	for _, m := range done {
		s.emit(EventBlockPushed, s.Blocks[m.index].ID)
	}
	return true
}

// pushBlock moves block i one step in dir if the destination is inside the
// field and clear of solids and other blocks. Blocks never push blocks.
func (s *Session) pushBlock(i int, dir Direction) bool {
	ux, uy := dir.delta()
	next := s.Blocks[i].Bounds.Translate(ux*s.cfg.Speed, uy*s.cfg.Speed)

	// A clamped push would change the displacement, so the edge blocks it
	if !next.Within(s.Field) {
		return false
	}
	if s.solidAt(next) || s.blockAt(next, i) {
		return false
	}

	s.Blocks[i].Bounds = next
	return true
}
