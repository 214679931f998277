package game

import (
	"image/color"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/steering"
)

// Actor is anything the scene updates every tick.
type Actor interface {
	Setup(s *Scene)
	Update(dt float64, s *Scene)
	Pressed(e steering.PointerEvent)
}

// Scene owns the ECS world and the actors living in it.
// Actors are updated in the order they were instantiated.
type Scene struct {
	world *ecs.World

	creatureMapper *ecs.Map4[
		components.Position,
		components.Heading,
		components.Shape,
		components.Sway,
	]
	foodMapper *ecs.Map3[
		components.Position,
		components.Shape,
		components.FoodItem,
	]
	creatureFilter *ecs.Filter4[
		components.Position,
		components.Heading,
		components.Shape,
		components.Sway,
	]
	foodFilter *ecs.Filter3[
		components.Position,
		components.Shape,
		components.FoodItem,
	]

	posMap     *ecs.Map1[components.Position]
	headingMap *ecs.Map1[components.Heading]
	swayMap    *ecs.Map1[components.Sway]
	foodMap    *ecs.Map1[components.FoodItem]

	width, height float64
	renderer      steering.Renderer

	actors []Actor
	food   *FoodProvider

	noise opensimplex.Noise
	rng   *rand.Rand
	time  float64
}

// NewScene creates an empty tank of the given size.
func NewScene(width, height float64, rng *rand.Rand) *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world: world,
		creatureMapper: ecs.NewMap4[
			components.Position,
			components.Heading,
			components.Shape,
			components.Sway,
		](world),
		foodMapper: ecs.NewMap3[
			components.Position,
			components.Shape,
			components.FoodItem,
		](world),
		creatureFilter: ecs.NewFilter4[
			components.Position,
			components.Heading,
			components.Shape,
			components.Sway,
		](world),
		foodFilter: ecs.NewFilter3[
			components.Position,
			components.Shape,
			components.FoodItem,
		](world),
		posMap:     ecs.NewMap1[components.Position](world),
		headingMap: ecs.NewMap1[components.Heading](world),
		swayMap:    ecs.NewMap1[components.Sway](world),
		foodMap:    ecs.NewMap1[components.FoodItem](world),
		width:      width,
		height:     height,
		noise:      opensimplex.New(rng.Int63()),
		rng:        rng,
	}
}

// Width is the tank width.
func (s *Scene) Width() float64 { return s.width }

// Height is the tank height.
func (s *Scene) Height() float64 { return s.height }

// Renderer returns the debug drawing surface, nil when headless.
func (s *Scene) Renderer() steering.Renderer { return s.renderer }

// SetRenderer installs the debug drawing surface. Pass nil to disable.
func (s *Scene) SetRenderer(r steering.Renderer) {
	s.renderer = r
}

// FoodSource exposes the food provider to trackers.
func (s *Scene) FoodSource() steering.FoodSource {
	if s.food == nil {
		return nil
	}
	return s.food
}

// Food returns the attached food provider, if any.
func (s *Scene) Food() *FoodProvider { return s.food }

// Time is the simulated time in seconds.
func (s *Scene) Time() float64 { return s.time }

// Rand is the scene's random source.
func (s *Scene) Rand() *rand.Rand { return s.rng }

// Instantiate adds an actor and runs its Setup.
func (s *Scene) Instantiate(a Actor) {
	s.actors = append(s.actors, a)
	a.Setup(s)
}

// AttachFood instantiates the food provider and exposes it through
// FoodSource. Creatures instantiated before this never see food.
func (s *Scene) AttachFood(p *FoodProvider) {
	s.food = p
	s.Instantiate(p)
}

// Tick updates every actor, then destroys food eaten or expired this tick.
func (s *Scene) Tick(dt float64) {
	s.Advance(dt)
	s.FlushFood()
}

// Advance updates every actor without flushing removed food.
func (s *Scene) Advance(dt float64) {
	s.time += dt
	for _, a := range s.actors {
		a.Update(dt, s)
	}
}

// FlushFood destroys food removed since the last flush.
func (s *Scene) FlushFood() {
	if s.food != nil {
		s.food.Flush()
	}
}

// Press delivers a pointer press at a world position to every actor.
func (s *Scene) Press(pos r2.Vec) {
	e := steering.PointerEvent{Position: pos}
	for _, a := range s.actors {
		a.Pressed(e)
	}
}

// Resize changes the tank size. New wander targets use the new bounds.
func (s *Scene) Resize(width, height float64) {
	s.width = width
	s.height = height
}

// Actors returns the actors in update order.
func (s *Scene) Actors() []Actor { return s.actors }

// newCreatureBody creates a creature entity.
func (s *Scene) newCreatureBody(pos r2.Vec, angle float64, shape components.Shape, sway components.Sway) *Body {
	p := components.Position{X: pos.X, Y: pos.Y}
	h := headingFromAngle(angle)
	e := s.creatureMapper.NewEntity(&p, &h, &shape, &sway)
	return &Body{scene: s, entity: e}
}

// newFoodBody creates a food entity.
func (s *Scene) newFoodBody(pos r2.Vec, radius, lifetime float64, c color.RGBA) *Body {
	p := components.Position{X: pos.X, Y: pos.Y}
	shape := components.Shape{Kind: components.KindFood, Radius: radius, Scale: 1, Color: c}
	item := components.FoodItem{Lifetime: lifetime}
	e := s.foodMapper.NewEntity(&p, &shape, &item)
	return &Body{scene: s, entity: e, food: true}
}
