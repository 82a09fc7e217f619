package gfx

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// bounce plays a tween back and forth forever.
type bounce struct {
	tween    *gween.Tween
	from, to float32
	duration float32
	value    float32
}

func newBounce(from, to, duration float32) *bounce {
	return &bounce{
		tween:    gween.New(from, to, duration, ease.InOutSine),
		from:     from,
		to:       to,
		duration: duration,
		value:    from,
	}
}

// Update advances the tween by dt seconds and returns the current value.
func (b *bounce) Update(dt float32) float32 {
	v, finished := b.tween.Update(dt)
	b.value = v
	if finished {
		b.from, b.to = b.to, b.from
		b.tween = gween.New(b.from, b.to, b.duration, ease.InOutSine)
	}
	return v
}
