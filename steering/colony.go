// Package steering implements the per-creature target tracking controller.
//
// A Tracker drives one Colony (the physical body of a creature) toward a goal
// every tick. Three behaviors compete for the goal: idle wandering toward a
// random point, fleeing a pointer press (shock), and intercepting nearby food.
// Shock and food approach temporarily override wandering and restore it when
// they complete.
package steering

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Colony is the body a Tracker steers.
type Colony interface {
	// Location is the current world position.
	Location() r2.Vec
	// Vector is the current heading vector.
	Vector() r2.Vec
	Translate(delta r2.Vec)
	Rotate(angle float64)
	// Update advances the body's own animation.
	Update(dt float64, scene Scene)
}

// Renderer is the debug drawing surface exposed by a scene.
type Renderer interface {
	DrawCircle(x, y, radius float64, c color.RGBA)
}

// Scene is the world a Tracker lives in.
type Scene interface {
	Width() float64
	Height() float64
	// Renderer may return nil when nothing is drawn (headless runs).
	Renderer() Renderer
}

// Food is a consumable item whose body is itself a Colony.
type Food struct {
	Colony Colony
}

// NewFood wraps a body as food.
func NewFood(body Colony) *Food {
	return &Food{Colony: body}
}

// Location returns the position of the food's body.
func (f *Food) Location() r2.Vec {
	return f.Colony.Location()
}

// FoodSource owns the live set of food items.
// Remove must be safe to call while another tracker is mid-tick.
type FoodSource interface {
	Foods() []*Food
	Remove(f *Food)
}

// FoodSourceLocator is implemented by scenes that can hand out their food
// provider during Setup.
type FoodSourceLocator interface {
	FoodSource() FoodSource
}

// PointerEvent is a pointer press in world coordinates.
type PointerEvent struct {
	Position r2.Vec
}
