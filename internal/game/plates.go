package game

// updatePlates recomputes every plate from block occupancy.
func (s *Session) updatePlates() {
	for i := range s.Plates {
		p := &s.Plates[i]
		pressed := false
		for _, b := range s.Blocks {
			if p.Bounds.Overlaps(b.Bounds) {
				pressed = true
				break
			}
		}
		if pressed == p.Pressed {
			continue
		}
		p.Pressed = pressed
		if pressed {
			s.emit(EventPlatePressed, i)
		} else {
			s.emit(EventPlateReleased, i)
		}
	}
}

// updateDoors applies door transitions from the current plate states.
//
// A door is held open while any plate bound to it is pressed. A door that
// should close but still has the player or a block in its frame stays open
// and closes on the first frame the doorway is clear.
func (s *Session) updateDoors() {
	want := make([]bool, len(s.Doors))
	for _, p := range s.Plates {
		if p.Pressed {
			want[p.Door] = true
		}
	}

	for i := range s.Doors {
		d := &s.Doors[i]
		switch {
		case want[i] && !d.Open:
			d.Open = true
			s.emit(EventDoorOpened, i)
		case !want[i] && d.Open && !s.doorwayOccupied(d.Bounds):
			d.Open = false
			s.emit(EventDoorClosed, i)
		}
	}
}

func (s *Session) doorwayOccupied(r Rect) bool {
	return r.Overlaps(s.Player.Bounds) || s.blockAt(r, -1)
}
