// Package components defines ECS components for the aquarium.
package components

import (
	"fmt"
	"image/color"
)

// Kind identifies what an entity is drawn as.
type Kind uint8

const (
	KindFish Kind = iota
	KindJellyfish
	KindLophophorata
	KindFood
)

var kindNames = [...]string{
	KindFish:         "fish",
	KindJellyfish:    "jellyfish",
	KindLophophorata: "lophophorata",
	KindFood:         "food",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind maps a config name to a creature kind. Food is not a creature
// and is rejected.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s && Kind(k) != KindFood {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown creature kind %q", s)
}

// Position represents an entity's world position.
type Position struct {
	X float64 `inspect:"label,fmt:%.1f"`
	Y float64 `inspect:"label,fmt:%.1f"`
}

// Heading holds the facing angle and its unit vector.
type Heading struct {
	Angle float64 `inspect:"angle"`
	X     float64 `inspect:"skip"`
	Y     float64 `inspect:"skip"`
}

// Shape describes how an entity is drawn.
type Shape struct {
	Kind   Kind       `inspect:"label"`
	Radius float64    `inspect:"label,fmt:%.1f"`
	Scale  float64    `inspect:"label,fmt:%.2f"`
	Color  color.RGBA `inspect:"skip"`
}

// Sway drives the idle animation (tail beat, bell pulse, tentacle wave).
type Sway struct {
	Phase     float64 `inspect:"angle"`
	Rate      float64 `inspect:"label,fmt:%.2f"` // radians per second
	Amplitude float64 `inspect:"bar,max:1"`
	Seed      float64 `inspect:"skip"` // noise offset so creatures don't sway in lockstep
}

// FoodItem marks a food entity and tracks its lifetime.
type FoodItem struct {
	Age      float64 `inspect:"label,fmt:%.1fs"`
	Lifetime float64 `inspect:"label,fmt:%.1fs"` // 0 = never expires
}

// Expired reports whether the food has outlived its lifetime.
func (f *FoodItem) Expired() bool {
	return f.Lifetime > 0 && f.Age >= f.Lifetime
}
