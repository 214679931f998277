package steering

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/aquarium/numerics"
)

// OverrideKind tags the active force-track goal.
type OverrideKind uint8

const (
	OverrideNone OverrideKind = iota
	OverrideShock
	OverrideFoodApproach
)

func (k OverrideKind) String() string {
	switch k {
	case OverrideNone:
		return "none"
	case OverrideShock:
		return "shock"
	case OverrideFoodApproach:
		return "food_approach"
	}
	return "unknown"
}

// Override is a temporary higher priority goal. The zero value is "none".
//
// SavedTarget and SavedSpeed hold the wander state to restore on completion.
// FleePoint is only meaningful for Shock. Food is the locked item for
// FoodApproach; it is cleared when the food leaves view, which ends the
// override on the next resolve.
type Override struct {
	Kind        OverrideKind
	SavedTarget *r2.Vec
	SavedSpeed  float64
	FleePoint   r2.Vec
	Food        *Food
}

// Active reports whether the override holds a goal.
func (o Override) Active() bool {
	return o.Kind != OverrideNone
}

// foodState is what resolve needs to know about the locked food.
type foodState struct {
	Present  bool // still listed by the provider
	Location r2.Vec
}

// Effects are the side effects of an override ending.
type Effects struct {
	Ended       OverrideKind // OverrideNone if nothing ended
	Restore     bool
	SavedTarget *r2.Vec
	SavedSpeed  float64
	Eat         *Food // remove from the provider
}

// resolve evaluates the completion check of o for a colony at self.
// It returns the next override state and the effects to apply.
func resolve(o Override, self r2.Vec, food foodState) (Override, Effects) {
	switch o.Kind {
	case OverrideShock:
		if numerics.Dist(self, o.FleePoint) <= ArrivalRadius {
			return Override{}, endEffects(o, nil)
		}
	case OverrideFoodApproach:
		if o.Food == nil || !food.Present {
			return Override{}, endEffects(o, nil)
		}
		if numerics.Dist(self, food.Location) <= FoodReachRadius {
			return Override{}, endEffects(o, o.Food)
		}
	}
	return o, Effects{}
}

// cancel ends o unconditionally. Food within reach is still eaten.
func cancel(o Override, self r2.Vec, food foodState) Effects {
	if !o.Active() {
		return Effects{}
	}
	if next, fx := resolve(o, self, food); !next.Active() {
		return fx
	}
	return endEffects(o, nil)
}

func endEffects(o Override, eat *Food) Effects {
	return Effects{
		Ended:       o.Kind,
		Restore:     true,
		SavedTarget: o.SavedTarget,
		SavedSpeed:  o.SavedSpeed,
		Eat:         eat,
	}
}
