package game

import "testing"

func TestRectOverlaps(t *testing.T) {
	base := NewRect(100, 100, 30, 30)
	cases := []struct {
		name string
		o    Rect
		want bool
	}{
		{"same", NewRect(100, 100, 30, 30), true},
		{"inside", NewRect(110, 110, 5, 5), true},
		{"partial", NewRect(125, 125, 30, 30), true},
		{"flush_right", NewRect(130, 100, 30, 30), false},
		{"flush_left", NewRect(70, 100, 30, 30), false},
		{"flush_below", NewRect(100, 130, 30, 30), false},
		{"flush_above", NewRect(100, 70, 30, 30), false},
		{"corner_touch", NewRect(130, 130, 10, 10), false},
		{"one_pixel", NewRect(129, 129, 10, 10), true},
		{"far", NewRect(500, 500, 10, 10), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := base.Overlaps(c.o); got != c.want {
				t.Errorf("Overlaps(%+v) = %v, want %v", c.o, got, c.want)
			}
			if got := c.o.Overlaps(base); got != c.want {
				t.Errorf("Overlaps is not symmetric for %+v", c.o)
			}
		})
	}
}

func TestRectWithinAndClamp(t *testing.T) {
	field := NewRect(0, 0, 800, 600)

	if !NewRect(0, 0, 800, 600).Within(field) {
		t.Error("field should be within itself")
	}
	if NewRect(-1, 0, 10, 10).Within(field) {
		t.Error("rect left of the field should not be within")
	}
	if NewRect(795, 0, 10, 10).Within(field) {
		t.Error("rect crossing the right edge should not be within")
	}

	got := NewRect(-3, 598, 30, 30).ClampInto(field)
	want := NewRect(0, 570, 30, 30)
	if got != want {
		t.Errorf("ClampInto: expected %+v, got %+v", want, got)
	}

	inside := NewRect(10, 10, 30, 30)
	if inside.ClampInto(field) != inside {
		t.Error("ClampInto should not move a rect already inside")
	}
}

func TestCollideAny(t *testing.T) {
	walls := []Rect{NewRect(0, 0, 10, 10), NewRect(50, 50, 10, 10)}

	if !CollideAny(NewRect(55, 55, 2, 2), walls) {
		t.Error("expected collision with second wall")
	}
	if CollideAny(NewRect(10, 0, 40, 50), walls) {
		t.Error("flush rect should not collide")
	}
	if CollideAny(NewRect(0, 0, 5, 5), nil) {
		t.Error("empty set should never collide")
	}
}

func TestRectValid(t *testing.T) {
	if NewRect(0, 0, 0, 10).Valid() {
		t.Error("zero width should be invalid")
	}
	if NewRect(0, 0, 10, -1).Valid() {
		t.Error("negative height should be invalid")
	}
	if !NewRect(-5, -5, 1, 1).Valid() {
		t.Error("position does not affect validity")
	}
}
