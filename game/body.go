package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/steering"
)

// Body is an ECS entity seen through the steering.Colony interface.
// Calls on a removed entity are no-ops and report the zero vector.
type Body struct {
	scene  *Scene
	entity ecs.Entity
	food   bool
}

// Entity returns the underlying ECS entity.
func (b *Body) Entity() ecs.Entity { return b.entity }

// Alive reports whether the entity still exists.
func (b *Body) Alive() bool { return b.scene.world.Alive(b.entity) }

// Location is the current world position.
func (b *Body) Location() r2.Vec {
	if !b.Alive() {
		return r2.Vec{}
	}
	p := b.scene.posMap.Get(b.entity)
	return r2.Vec{X: p.X, Y: p.Y}
}

// Vector is the unit heading. Food has no heading.
func (b *Body) Vector() r2.Vec {
	if b.food || !b.Alive() {
		return r2.Vec{}
	}
	h := b.scene.headingMap.Get(b.entity)
	return r2.Vec{X: h.X, Y: h.Y}
}

// Translate moves the body.
func (b *Body) Translate(delta r2.Vec) {
	if !b.Alive() {
		return
	}
	p := b.scene.posMap.Get(b.entity)
	p.X += delta.X
	p.Y += delta.Y
}

// Rotate sets the facing angle in radians.
func (b *Body) Rotate(angle float64) {
	if b.food || !b.Alive() {
		return
	}
	*b.scene.headingMap.Get(b.entity) = headingFromAngle(angle)
}

// Update advances the sway animation. The rate wobbles with simplex noise
// so creatures of the same kind drift out of phase.
func (b *Body) Update(dt float64, _ steering.Scene) {
	if b.food || !b.Alive() {
		return
	}
	sw := b.scene.swayMap.Get(b.entity)
	wobble := 1 + 0.3*b.scene.noise.Eval2(sw.Seed, b.scene.time*0.5)
	sw.Phase = math.Mod(sw.Phase+dt*sw.Rate*wobble, 2*math.Pi)
}

// Remove destroys the entity.
func (b *Body) Remove() {
	if b.Alive() {
		b.scene.world.RemoveEntity(b.entity)
	}
}

func headingFromAngle(angle float64) components.Heading {
	return components.Heading{Angle: angle, X: math.Cos(angle), Y: math.Sin(angle)}
}
