package steering

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/aquarium/numerics"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

type body struct {
	loc     r2.Vec
	heading r2.Vec
	angle   float64
	updates int
}

func newBody(x, y float64) *body {
	return &body{loc: r2.Vec{X: x, Y: y}, heading: r2.Vec{X: 1}}
}

func (b *body) Location() r2.Vec { return b.loc }
func (b *body) Vector() r2.Vec { return b.heading }
func (b *body) Translate(d r2.Vec) { b.loc = r2.Add(b.loc, d) }
func (b *body) Update(float64, Scene) { b.updates++ }
func (b *body) Rotate(angle float64) {
	b.angle = angle
	b.heading = numerics.FromAngle(angle)
}

type circle struct {
	x, y, r float64
	c       color.RGBA
}

type recordingRenderer struct {
	circles []circle
}

func (r *recordingRenderer) DrawCircle(x, y, radius float64, c color.RGBA) {
	r.circles = append(r.circles, circle{x, y, radius, c})
}

type scene struct {
	w, h     float64
	renderer Renderer
	foods    FoodSource
}

func (s *scene) Width() float64 { return s.w }
func (s *scene) Height() float64 { return s.h }
func (s *scene) Renderer() Renderer { return s.renderer }
func (s *scene) FoodSource() FoodSource { return s.foods }

type pantry struct {
	items   []*Food
	removed []*Food
}

func (p *pantry) Foods() []*Food { return p.items }

func (p *pantry) Remove(f *Food) {
	p.removed = append(p.removed, f)
	for i, item := range p.items {
		if item == f {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return
		}
	}
}

func (p *pantry) add(x, y float64) *Food {
	f := NewFood(newBody(x, y))
	p.items = append(p.items, f)
	return f
}

type eventLog struct {
	events []Event
}

func (l *eventLog) TrackerEvent(e Event) { l.events = append(l.events, e) }

func (l *eventLog) kinds() []EventKind {
	out := make([]EventKind, len(l.events))
	for i, e := range l.events {
		out[i] = e.Kind
	}
	return out
}

// quietOptions removes jitter and snaps the heading each tick.
func quietOptions() Options {
	opts := DefaultOptions()
	opts.SmoothCurveRate = 1
	opts.NoiseSize = 0
	opts.Rand = constSource(0.5)
	return opts
}
