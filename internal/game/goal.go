package game

// collectKey picks up the key when the player touches it.
func (s *Session) collectKey() {
	if s.Key.Collected || s.Player.HasKey {
		return
	}
	if !s.Player.Bounds.Overlaps(s.Key.Bounds) {
		return
	}
	s.Player.HasKey = true
	s.Key.Collected = true
	s.emit(EventKeyCollected, 0)
}

// touchGoal opens the goal when the player reaches it holding the key.
// Returns true on the frame the goal opens.
func (s *Session) touchGoal() bool {
	if s.Goal.Open || !s.Player.HasKey {
		return false
	}
	if !s.Player.Bounds.Overlaps(s.Goal.Bounds) {
		return false
	}
	s.Goal.Open = true
	s.emit(EventGoalOpened, 0)
	return true
}
