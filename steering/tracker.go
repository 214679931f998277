package steering

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/aquarium/numerics"
)

// State is the behavior a Tracker is currently in.
type State uint8

const (
	StateIdle State = iota
	StateSeeking
	StateShock
	StateFoodApproach
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSeeking:
		return "seeking"
	case StateShock:
		return "shock"
	case StateFoodApproach:
		return "food_approach"
	}
	return "unknown"
}

var debugTargetColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}

// Tracker steers one colony toward its current goal.
// It is not safe for concurrent use; the scene ticks it from a single goroutine.
type Tracker[T Colony] struct {
	colony T
	opts   Options

	speed    float64
	angle    float64
	target   *r2.Vec
	override Override
	foods    FoodSource
}

// NewTracker binds a tracker to colony. Invalid option values fall back to
// DefaultOptions.
func NewTracker[T Colony](colony T, opts Options) *Tracker[T] {
	opts = opts.sanitized()
	t := &Tracker[T]{
		colony: colony,
		opts:   opts,
		speed:  opts.SpeedBias,
	}
	if h := colony.Vector(); h.X != 0 || h.Y != 0 {
		t.angle = numerics.Angle(h)
	}
	return t
}

// Setup picks up the scene's food provider if it exposes one.
func (t *Tracker[T]) Setup(scene Scene) {
	if l, ok := scene.(FoodSourceLocator); ok {
		if fs := l.FoodSource(); fs != nil {
			t.foods = fs
		}
	}
}

// SetFoodSource injects the food provider directly. nil disables food.
func (t *Tracker[T]) SetFoodSource(fs FoodSource) {
	t.foods = fs
}

// SetListener replaces the event listener.
func (t *Tracker[T]) SetListener(l Listener) {
	if l == nil {
		l = nopListener{}
	}
	t.opts.Listener = l
}

// SetDebug toggles drawing the current target.
func (t *Tracker[T]) SetDebug(on bool) {
	t.opts.Debug = on
}

// Pressed handles a pointer press.
func (t *Tracker[T]) Pressed(e PointerEvent) {
	t.Shock(e.Position)
}

// Update advances the tracker and moves the colony by one tick.
func (t *Tracker[T]) Update(dt float64, scene Scene) {
	t.resolveOverride()
	t.checkFoodAction()

	if t.target == nil {
		if t.opts.AutoTarget && scene != nil {
			t.initTarget(r2.Vec{
				X: numerics.Next(t.opts.Rand, scene.Width()),
				Y: numerics.Next(t.opts.Rand, scene.Height()),
			})
		}
		return
	}

	if t.opts.Debug && scene != nil {
		if r := scene.Renderer(); r != nil {
			r.DrawCircle(t.target.X, t.target.Y, ArrivalRadius, debugTargetColor)
		}
	}

	location := t.colony.Location()
	target := *t.target
	dir := r2.Sub(target, location)

	desired := math.Atan2(dir.Y, dir.X)
	t.angle = numerics.LerpAngle(t.angle, desired, t.smoothingRate(dt))

	// Steering along the smoothed heading makes far targets arc in wide turns.
	if numerics.Dist(target, location) > t.opts.SmoothCurveTriggerDistance {
		dir = numerics.FromAngle(t.angle)
	}

	v := r2.Scale(t.speed, numerics.Normalize(dir))
	v.X += t.noise()
	v.Y += t.noise()

	t.colony.Translate(r2.Scale(dt, v))
	t.colony.Rotate(t.angle)
	t.colony.Update(dt, scene)

	// Clear on arrival so the next tick picks a fresh wander target.
	if t.target != nil && numerics.Dist(t.colony.Location(), *t.target) <= ArrivalRadius {
		if t.opts.AutoTarget && !t.override.Active() {
			t.target = nil
		}
	}
}

// TranslateTarget nudges the wander target by delta, or sets it to delta when
// there is none. speed > 0 also replaces the current speed. Ignored while an
// override is active.
func (t *Tracker[T]) TranslateTarget(delta r2.Vec, speed float64) {
	if t.override.Active() {
		return
	}
	if speed > 0 {
		t.speed = speed
	}
	next := delta
	if t.target != nil {
		next = r2.Add(*t.target, delta)
	}
	t.target = &next
}

// Shock makes the colony flee from a press at position if it is close enough.
// A new shock always replaces the active override.
func (t *Tracker[T]) Shock(position r2.Vec) {
	location := t.colony.Location()
	if numerics.Dist(position, location) > t.opts.ShockThresholdDistance {
		return
	}

	if t.override.Active() {
		t.apply(cancel(t.override, location, t.lockedFood()))
		t.override = Override{}
	}

	toward := numerics.Normalize(r2.Sub(position, location))
	flee := r2.Sub(location, r2.Scale(t.opts.ShockAvoidDistance, toward))

	t.override = Override{
		Kind:        OverrideShock,
		SavedTarget: t.target,
		SavedSpeed:  t.speed,
		FleePoint:   flee,
	}
	t.target = &flee
	t.speed = t.opts.SpeedBias * ShockSpeedFactor
	t.emit(EventShockStarted, nil)
}

// resolveOverride runs the active override's completion check.
func (t *Tracker[T]) resolveOverride() {
	if !t.override.Active() {
		return
	}
	food := t.lockedFood()
	next, fx := resolve(t.override, t.colony.Location(), food)
	t.override = next
	t.apply(fx)

	// The target follows locked food that moves.
	if next.Kind == OverrideFoodApproach && food.Present {
		loc := food.Location
		t.target = &loc
	}
}

// apply carries out the effects of an override ending.
func (t *Tracker[T]) apply(fx Effects) {
	if fx.Ended == OverrideNone {
		return
	}
	if fx.Eat != nil && t.foods != nil {
		t.foods.Remove(fx.Eat)
	}
	if fx.Restore {
		t.target = fx.SavedTarget
		t.speed = fx.SavedSpeed
	}

	switch {
	case fx.Ended == OverrideShock:
		t.emit(EventShockEnded, nil)
	case fx.Eat != nil:
		t.emit(EventFoodEaten, fx.Eat)
	default:
		t.emit(EventFoodAbandoned, nil)
	}
}

// lockedFood reports whether the locked food is still listed by the provider.
func (t *Tracker[T]) lockedFood() foodState {
	f := t.override.Food
	if f == nil || t.foods == nil {
		return foodState{}
	}
	for _, item := range t.foods.Foods() {
		if item == f {
			return foodState{Present: true, Location: f.Location()}
		}
	}
	return foodState{}
}

// checkFoodAction locks onto visible food when no override is active, and
// drops a food lock whose food went out of view.
func (t *Tracker[T]) checkFoodAction() {
	if !t.opts.FoodEnabled || t.foods == nil {
		return
	}

	food := t.eatableFood()
	if food == nil {
		if t.override.Kind == OverrideFoodApproach {
			t.override.Food = nil
		}
		return
	}
	if t.override.Active() {
		return
	}

	t.override = Override{
		Kind:        OverrideFoodApproach,
		SavedTarget: t.target,
		SavedSpeed:  t.speed,
		Food:        food,
	}
	loc := food.Location()
	t.target = &loc
	t.speed = t.opts.SpeedBias * FoodSpeedFactor
	t.emit(EventFoodLocked, food)
}

// eatableFood returns the nearest food if it is in range and inside the
// field of view, nil otherwise.
func (t *Tracker[T]) eatableFood() *Food {
	foods := t.foods.Foods()
	if len(foods) == 0 {
		return nil
	}

	self := t.colony.Location()
	nearest := foods[0]
	best := numerics.Dist(self, nearest.Location())
	for _, f := range foods[1:] {
		if d := numerics.Dist(self, f.Location()); d < best {
			nearest, best = f, d
		}
	}
	if best > t.opts.FoodTriggerDistance {
		return nil
	}

	// Raw difference: a heading near +Pi and food near -Pi fail the test.
	toFood := numerics.Angle(r2.Sub(nearest.Location(), self))
	heading := numerics.Angle(t.colony.Vector())
	if math.Abs(heading-toFood) < numerics.ToRadians(t.opts.FoodViewableAngleDeg*0.5) {
		return nearest
	}
	return nil
}

func (t *Tracker[T]) initTarget(location r2.Vec) {
	t.target = &location
	t.speed = t.opts.SpeedBias * (1 + numerics.NextDouble(t.opts.Rand)*WanderSpeedSpread)
	t.emit(EventTargetAcquired, nil)
}

func (t *Tracker[T]) smoothingRate(dt float64) float64 {
	rate := t.opts.SmoothCurveRate
	if t.opts.SmoothingReferenceFPS <= 0 {
		return rate
	}
	return 1 - math.Pow(1-rate, dt*t.opts.SmoothingReferenceFPS)
}

func (t *Tracker[T]) noise() float64 {
	return numerics.NextDouble(t.opts.Rand) * 0.5 * t.speed * t.opts.NoiseSize
}

func (t *Tracker[T]) emit(kind EventKind, food *Food) {
	t.opts.Listener.TrackerEvent(Event{
		Kind:     kind,
		Position: t.colony.Location(),
		Speed:    t.speed,
		Food:     food,
	})
}

// Colony returns the bound body.
func (t *Tracker[T]) Colony() T { return t.colony }

// Options returns the effective tuning.
func (t *Tracker[T]) Options() Options { return t.opts }

// Speed returns the current speed.
func (t *Tracker[T]) Speed() float64 { return t.speed }

// Angle returns the smoothed heading angle in radians.
func (t *Tracker[T]) Angle() float64 { return t.angle }

// Target returns the current goal, if any.
func (t *Tracker[T]) Target() (r2.Vec, bool) {
	if t.target == nil {
		return r2.Vec{}, false
	}
	return *t.target, true
}

// Override returns a copy of the active override.
func (t *Tracker[T]) Override() Override { return t.override }

// IsForceTracking reports whether a shock or food approach is active.
func (t *Tracker[T]) IsForceTracking() bool { return t.override.Active() }

// FoodLock returns the food being approached, or nil.
func (t *Tracker[T]) FoodLock() *Food {
	if t.override.Kind != OverrideFoodApproach {
		return nil
	}
	return t.override.Food
}

// State classifies the tracker's current behavior.
func (t *Tracker[T]) State() State {
	switch t.override.Kind {
	case OverrideShock:
		return StateShock
	case OverrideFoodApproach:
		return StateFoodApproach
	}
	if t.target == nil {
		return StateIdle
	}
	return StateSeeking
}
