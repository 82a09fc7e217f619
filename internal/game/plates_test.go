package game

import (
	"reflect"
	"testing"
)

// twoPlateLevel has two plates bound to the same door and a block parked
// below each plate.
func twoPlateLevel() Level {
	l := emptyLevel()
	l.Doors = []Point{{X: 400, Y: 260}}
	l.Plates = []PlateSpec{
		{X: 200, Y: 300, Door: 0},
		{X: 300, Y: 300, Door: 0},
	}
	l.Blocks = []Point{{X: 200, Y: 400}, {X: 300, Y: 400}}
	return l
}

// settle runs the plate and door stages of a frame without moving the player.
func (s *Session) settle() []Event {
	s.events = nil
	s.updatePlates()
	s.updateDoors()
	return s.events
}

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestPlateRestingBlockFiresOnce(t *testing.T) {
	s := newTestSession(t, twoPlateLevel())
	s.Blocks[0].Bounds = s.Plates[0].Bounds

	pressed, opened := 0, 0
	for i := 0; i < 100; i++ {
		events := s.settle()
		pressed += countEvents(events, EventPlatePressed)
		opened += countEvents(events, EventDoorOpened)
	}
	if pressed != 1 {
		t.Errorf("expected 1 plate_pressed event over 100 frames, got %d", pressed)
	}
	if opened != 1 {
		t.Errorf("expected 1 door_opened event over 100 frames, got %d", opened)
	}
	if !s.Plates[0].Pressed || !s.Doors[0].Open {
		t.Error("plate should stay pressed and door open while the block rests")
	}

	// Partial overlap is enough to press
	s.Blocks[0].Bounds = s.Plates[0].Bounds.Translate(39, 39)
	s.settle()
	if !s.Plates[0].Pressed {
		t.Error("one pixel of overlap should keep the plate pressed")
	}

	// Flush does not press
	s.Blocks[0].Bounds = s.Plates[0].Bounds.Translate(40, 0)
	events := s.settle()
	if s.Plates[0].Pressed {
		t.Error("flush block should not press the plate")
	}
	if countEvents(events, EventPlateReleased) != 1 || countEvents(events, EventDoorClosed) != 1 {
		t.Errorf("expected one release and one close, got %+v", events)
	}
}

// plateCycleLevel has one block on an open row with a plate in its path.
// The player starts left of the block and door 0 is out of the way.
func plateCycleLevel() Level {
	l := emptyLevel()
	l.Player = Point{X: 165, Y: 205}
	l.Blocks = []Point{{X: 200, Y: 200}}
	l.Plates = []PlateSpec{{X: 300, Y: 200, Door: 0}}
	l.Doors = []Point{{X: 600, Y: 400}}
	return l
}

type plateTally struct {
	pressed, released, opened, closed int
}

// walk holds in until done reports true. Every frame it checks that the
// plate and door follow the block and that each transition is reported on
// the frame it happens.
func (tally *plateTally) walk(t *testing.T, s *Session, in Input, done func() bool) {
	t.Helper()
	for frame := 0; !done(); frame++ {
		if frame > 200 {
			t.Fatalf("walk did not finish: player %+v block %+v", s.Player.Bounds, s.Blocks[0].Bounds)
		}
		wasPressed := s.Plates[0].Pressed
		events := s.step(in)
		onPlate := s.Blocks[0].Bounds.Overlaps(s.Plates[0].Bounds)

		if s.Plates[0].Pressed != onPlate || s.Doors[0].Open != onPlate {
			t.Fatalf("block %+v: plate pressed=%v door open=%v", s.Blocks[0].Bounds, s.Plates[0].Pressed, s.Doors[0].Open)
		}
		press, release := 0, 0
		switch {
		case onPlate && !wasPressed:
			press = 1
		case !onPlate && wasPressed:
			release = 1
		}
		if countEvents(events, EventPlatePressed) != press || countEvents(events, EventDoorOpened) != press {
			t.Fatalf("block %+v: expected %d press and open, got %+v", s.Blocks[0].Bounds, press, events)
		}
		if countEvents(events, EventPlateReleased) != release || countEvents(events, EventDoorClosed) != release {
			t.Fatalf("block %+v: expected %d release and close, got %+v", s.Blocks[0].Bounds, release, events)
		}
		tally.pressed += press
		tally.opened += press
		tally.released += release
		tally.closed += release
		checkInvariants(t, s, frame)
	}
}

// roundTrip pushes the block right across the plate, walks around it and
// pushes it back left across the plate, ending where it started.
func (tally *plateTally) roundTrip(t *testing.T, s *Session) {
	t.Helper()
	player := func() Rect { return s.Player.Bounds }
	block := func() Rect { return s.Blocks[0].Bounds }

	tally.walk(t, s, Hold(DirRight), func() bool { return block().X >= 380 })
	tally.walk(t, s, Hold(DirUp), func() bool { return player().Y <= 160 })
	tally.walk(t, s, Hold(DirRight), func() bool { return player().X >= 425 })
	tally.walk(t, s, Hold(DirDown), func() bool { return player().Y >= 205 })
	tally.walk(t, s, Hold(DirLeft), func() bool { return block().X <= 200 })
	tally.walk(t, s, Hold(DirUp), func() bool { return player().Y <= 160 })
	tally.walk(t, s, Hold(DirLeft), func() bool { return player().X <= 165 })
	tally.walk(t, s, Hold(DirDown), func() bool { return player().Y >= 205 })
}

func TestPlateCycleRepeated(t *testing.T) {
	once := newTestSession(t, plateCycleLevel())
	var onceTally plateTally
	onceTally.roundTrip(t, once)
	if onceTally != (plateTally{pressed: 2, released: 2, opened: 2, closed: 2}) {
		t.Fatalf("expected two press and release cycles, got %+v", onceTally)
	}
	if once.Blocks[0].Bounds != NewRect(200, 200, 40, 40) || once.Player.Bounds != NewRect(165, 205, 30, 30) {
		t.Fatalf("round trip should end at the start, player %+v block %+v", once.Player.Bounds, once.Blocks[0].Bounds)
	}

	many := newTestSession(t, plateCycleLevel())
	var manyTally plateTally
	for i := 0; i < 100; i++ {
		manyTally.roundTrip(t, many)
	}
	if manyTally != (plateTally{pressed: 200, released: 200, opened: 200, closed: 200}) {
		t.Errorf("expected 200 press and release cycles, got %+v", manyTally)
	}

	if many.Player.Bounds != once.Player.Bounds || many.Player.Facing != once.Player.Facing {
		t.Errorf("expected player %+v, got %+v", once.Player, many.Player)
	}
	if many.Player.Moves != 100*once.Player.Moves {
		t.Errorf("expected %d moves, got %d", 100*once.Player.Moves, many.Player.Moves)
	}
	if !reflect.DeepEqual(many.Blocks, once.Blocks) {
		t.Errorf("expected blocks %+v, got %+v", once.Blocks, many.Blocks)
	}
	if !reflect.DeepEqual(many.Plates, once.Plates) || !reflect.DeepEqual(many.Doors, once.Doors) {
		t.Errorf("expected plates %+v doors %+v, got plates %+v doors %+v", once.Plates, once.Doors, many.Plates, many.Doors)
	}
	if many.Plates[0].Pressed || many.Doors[0].Open {
		t.Error("plate should be released and door closed with the block back at the start")
	}
}

func TestPlayerDoesNotPressPlate(t *testing.T) {
	s := newTestSession(t, twoPlateLevel())
	s.Player.Bounds = NewRect(205, 305, 30, 30)

	s.settle()
	if s.Plates[0].Pressed || s.Doors[0].Open {
		t.Error("only blocks press plates")
	}
}

func TestDoorOpenWhileAnyPlatePressed(t *testing.T) {
	s := newTestSession(t, twoPlateLevel())
	door := &s.Doors[0]
	parked0 := s.Blocks[0].Bounds
	parked1 := s.Blocks[1].Bounds

	s.Blocks[0].Bounds = s.Plates[0].Bounds
	s.Blocks[1].Bounds = s.Plates[1].Bounds
	s.settle()
	if !door.Open {
		t.Fatal("door should open with both plates pressed")
	}

	// Releasing one of two plates keeps the door open
	s.Blocks[0].Bounds = parked0
	events := s.settle()
	if !door.Open {
		t.Error("door should stay open while another bound plate is pressed")
	}
	if countEvents(events, EventDoorClosed) != 0 {
		t.Errorf("unexpected door_closed: %+v", events)
	}

	s.Blocks[1].Bounds = parked1
	events = s.settle()
	if door.Open {
		t.Error("door should close once no bound plate is pressed")
	}
	if countEvents(events, EventDoorClosed) != 1 {
		t.Errorf("expected one door_closed, got %+v", events)
	}
}

func TestDoorCloseDeferredWhileOccupied(t *testing.T) {
	s := newTestSession(t, twoPlateLevel())
	door := &s.Doors[0]
	parked := s.Blocks[0].Bounds

	s.Blocks[0].Bounds = s.Plates[0].Bounds
	s.settle()

	// Player stands in the open doorway when the plate is released
	s.Player.Bounds = NewRect(410, 285, 30, 30)
	s.Blocks[0].Bounds = parked
	for i := 0; i < 10; i++ {
		events := s.settle()
		if !door.Open {
			t.Fatalf("frame %d: door closed on the player", i)
		}
		if countEvents(events, EventDoorClosed) != 0 {
			t.Fatalf("frame %d: unexpected door_closed", i)
		}
		checkInvariants(t, s, i)
	}

	// Flush with the door frame counts as clear
	s.Player.Bounds = NewRect(450, 285, 30, 30)
	events := s.settle()
	if door.Open || countEvents(events, EventDoorClosed) != 1 {
		t.Errorf("door should close on the first clear frame, open=%v events=%+v", door.Open, events)
	}
}

func TestDoorCloseDeferredForBlock(t *testing.T) {
	s := newTestSession(t, twoPlateLevel())
	door := &s.Doors[0]

	s.Blocks[0].Bounds = s.Plates[0].Bounds
	s.settle()

	// The second block sits in the doorway, the first leaves its plate
	s.Blocks[1].Bounds = NewRect(405, 280, 40, 40)
	s.Blocks[0].Bounds = NewRect(200, 400, 40, 40)
	s.settle()
	if !door.Open {
		t.Fatal("door should not close onto a block")
	}
	checkInvariants(t, s, 0)

	s.Blocks[1].Bounds = NewRect(500, 400, 40, 40)
	s.settle()
	if door.Open {
		t.Error("door should close once the block is out")
	}
}

func TestWalkThroughOpenDoor(t *testing.T) {
	l := gatedLevel("walk")
	s := newTestSession(t, l)

	// Right to x=300 and down to y=285, level with the doorway
	s.steps(Hold(DirRight), 40)
	s.steps(Hold(DirDown), 37)
	if s.Player.Bounds.X != 300 || s.Player.Bounds.Y != 285 {
		t.Fatalf("setup: expected (300,285), got (%d,%d)", s.Player.Bounds.X, s.Player.Bounds.Y)
	}

	s.steps(Hold(DirRight), 30)
	if s.Player.Bounds.X != 370 {
		t.Errorf("closed door should stop the player at x=370, got %d", s.Player.Bounds.X)
	}

	s.Blocks[0].Bounds = s.Plates[0].Bounds
	s.steps(Hold(DirRight), 30)
	if s.Player.Bounds.X <= 450 {
		t.Errorf("player should pass the open door, got x=%d", s.Player.Bounds.X)
	}
}
