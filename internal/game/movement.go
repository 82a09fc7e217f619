package game

// movePlayer resolves one frame of held input. The horizontal axis is fully
// resolved before the vertical one, so a diagonal intent can only pass a
// corner that one of the pure-axis paths could pass.
func (s *Session) movePlayer(in Input) {
	if in.Left {
		s.Player.Facing = FacingLeft
	}
	if in.Right {
		s.Player.Facing = FacingRight
	}

	start := s.Player.Bounds
	dx, dy := in.axes()
	switch {
	case dx < 0:
		s.moveAxis(DirLeft)
	case dx > 0:
		s.moveAxis(DirRight)
	}
	switch {
	case dy < 0:
		s.moveAxis(DirUp)
	case dy > 0:
		s.moveAxis(DirDown)
	}

	if s.Player.Bounds != start {
		s.Player.Moves++
	}
}

// moveAxis attempts one step of player movement along a single axis.
// Movement is clamped to the field, blocked by solids, and blocked by any
// block that cannot be pushed out of the way.
func (s *Session) moveAxis(dir Direction) {
	ux, uy := dir.delta()
	prev := s.Player.Bounds
	next := prev.Translate(ux*s.cfg.Speed, uy*s.cfg.Speed).ClampInto(s.Field)
	if next == prev {
		return
	}

	// Walls and closed doors are checked before any block is touched
	if s.solidAt(next) {
		return
	}

	if !s.pushBlocks(next, dir) {
		return
	}

	s.Player.Bounds = next
}
