package game

import (
	"image/color"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/steering"
)

// FoodRecorder receives food lifecycle counts. *telemetry.Collector
// satisfies it.
type FoodRecorder interface {
	RecordFoodSpawned()
	RecordFoodEaten()
	RecordFoodExpired()
}

type nopFoodRecorder struct{}

func (nopFoodRecorder) RecordFoodSpawned() {}
func (nopFoodRecorder) RecordFoodEaten()   {}
func (nopFoodRecorder) RecordFoodExpired() {}

// FoodProvider owns the food in the tank.
//
// Removal is deferred: Remove hides a food from Foods immediately, but the
// entity is destroyed at the next Flush so trackers holding the reference
// during the same tick still read a valid location.
type FoodProvider struct {
	cfg   config.FoodConfig
	color color.RGBA
	rec   FoodRecorder
	scene *Scene

	items   []*steering.Food
	bodies  map[*steering.Food]*Body
	pending map[*steering.Food]struct{}

	// live caches items minus pending; nil means stale.
	live []*steering.Food

	sinceSpawn float64
}

// NewFoodProvider creates a provider with the given spawn policy.
func NewFoodProvider(cfg config.FoodConfig, rec FoodRecorder) *FoodProvider {
	if rec == nil {
		rec = nopFoodRecorder{}
	}
	return &FoodProvider{
		cfg:     cfg,
		color:   parseColor(cfg.Color, "#d7ccc8"),
		rec:     rec,
		bodies:  make(map[*steering.Food]*Body),
		pending: make(map[*steering.Food]struct{}),
	}
}

// Setup binds the provider to its scene.
func (p *FoodProvider) Setup(s *Scene) {
	p.scene = s
}

// Foods returns the food currently available, in spawn order.
func (p *FoodProvider) Foods() []*steering.Food {
	if p.live == nil {
		p.live = make([]*steering.Food, 0, len(p.items))
		for _, f := range p.items {
			if _, gone := p.pending[f]; !gone {
				p.live = append(p.live, f)
			}
		}
	}
	return p.live
}

// Remove marks food as eaten. Unknown or already removed food is ignored.
func (p *FoodProvider) Remove(f *steering.Food) {
	if p.markRemoved(f) {
		p.rec.RecordFoodEaten()
	}
}

func (p *FoodProvider) markRemoved(f *steering.Food) bool {
	if _, ok := p.bodies[f]; !ok {
		return false
	}
	if _, gone := p.pending[f]; gone {
		return false
	}
	p.pending[f] = struct{}{}
	p.live = nil
	return true
}

// Count returns the number of available foods.
func (p *FoodProvider) Count() int { return len(p.Foods()) }

// Update ages food, expires old food and spawns new food on the interval.
func (p *FoodProvider) Update(dt float64, s *Scene) {
	for _, f := range p.items {
		if _, gone := p.pending[f]; gone {
			continue
		}
		item := s.foodMap.Get(p.bodies[f].Entity())
		item.Age += dt
		if item.Expired() && p.markRemoved(f) {
			p.rec.RecordFoodExpired()
		}
	}

	if !p.cfg.Enabled || p.cfg.SpawnInterval <= 0 {
		return
	}
	p.sinceSpawn += dt
	for p.sinceSpawn >= p.cfg.SpawnInterval {
		p.sinceSpawn -= p.cfg.SpawnInterval
		p.Drop(r2.Vec{X: s.rng.Float64() * s.width, Y: s.rng.Float64() * s.height})
	}
}

// Pressed drops food at the press when configured to.
func (p *FoodProvider) Pressed(e steering.PointerEvent) {
	if p.cfg.DropOnPress {
		p.Drop(e.Position)
	}
}

// Drop places a food at pos. Returns nil when food is disabled or the tank
// is full.
func (p *FoodProvider) Drop(pos r2.Vec) *steering.Food {
	if !p.cfg.Enabled || p.scene == nil {
		return nil
	}
	if p.cfg.MaxFoods > 0 && p.Count() >= p.cfg.MaxFoods {
		return nil
	}
	body := p.scene.newFoodBody(pos, p.cfg.Radius, p.cfg.Lifetime, p.color)
	f := steering.NewFood(body)
	p.items = append(p.items, f)
	p.bodies[f] = body
	p.live = nil
	p.rec.RecordFoodSpawned()
	return f
}

// Flush destroys the entities of removed food.
func (p *FoodProvider) Flush() {
	if len(p.pending) == 0 {
		return
	}
	p.items = slices.DeleteFunc(p.items, func(f *steering.Food) bool {
		_, gone := p.pending[f]
		return gone
	})
	for f := range p.pending {
		p.bodies[f].Remove()
		delete(p.bodies, f)
		delete(p.pending, f)
	}
	p.live = nil
}
