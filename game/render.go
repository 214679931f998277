package game

import (
	"fmt"
	"image/color"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/inspector"
	"github.com/pthm-cable/aquarium/telemetry"
)

// Tank colors
var (
	waterTop    = rl.Color{R: 12, G: 52, B: 84, A: 255}
	waterBottom = rl.Color{R: 4, G: 18, B: 34, A: 255}
	outsideTank = rl.Color{R: 8, G: 8, B: 12, A: 255}
)

// debugCircle is a circle queued by a tracker during Update.
type debugCircle struct {
	x, y, radius float64
	color        color.RGBA
}

// drawQueue implements steering.Renderer. Trackers draw during Update,
// outside BeginDrawing, so circles are queued and flushed in Draw.
type drawQueue struct {
	circles []debugCircle
}

// DrawCircle queues a circle outline in world coordinates.
func (q *drawQueue) DrawCircle(x, y, radius float64, c color.RGBA) {
	q.circles = append(q.circles, debugCircle{x: x, y: y, radius: radius, color: c})
}

func (q *drawQueue) reset() {
	q.circles = q.circles[:0]
}

// Draw renders the game.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(outsideTank)

	g.drawTank()
	g.drawFood()
	g.drawCreatures()

	for _, c := range g.draw.circles {
		x, y := g.camera.WorldToScreen(c.x, c.y)
		rl.DrawCircleLines(int32(x), int32(y), float32(g.camera.Scale(c.radius)), c.color)
	}

	g.drawSelection()
	g.drawHUD()

	if g.debugPanel {
		g.drawDebugPanel()
	}
	if g.selected != nil {
		g.drawInspector()
	}

	rl.EndDrawing()
}

// drawTank draws the water as a vertical gradient inside the tank walls.
func (g *Game) drawTank() {
	x0, y0 := g.camera.WorldToScreen(0, 0)
	x1, y1 := g.camera.WorldToScreen(g.scene.Width(), g.scene.Height())
	rl.DrawRectangleGradientV(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0), waterTop, waterBottom)
	rl.DrawRectangleLines(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0), rl.Color{R: 90, G: 130, B: 160, A: 255})
}

// drawFood renders food pellets that have not been eaten.
func (g *Game) drawFood() {
	query := g.scene.foodFilter.Query()
	for query.Next() {
		pos, shape, item := query.Get()
		if !g.camera.IsVisible(pos.X, pos.Y, shape.Radius) {
			continue
		}
		c := shape.Color
		if item.Lifetime > 0 {
			// Fade out over the last fifth of the lifetime
			left := (item.Lifetime - item.Age) / (item.Lifetime * 0.2)
			c.A = uint8(255 * math.Max(0.2, math.Min(1, left)))
		}
		x, y := g.camera.WorldToScreen(pos.X, pos.Y)
		rl.DrawCircleV(rl.Vector2{X: float32(x), Y: float32(y)}, float32(g.camera.Scale(shape.Radius)), c)
	}
}

// drawCreatures renders every creature by kind.
func (g *Game) drawCreatures() {
	query := g.scene.creatureFilter.Query()
	for query.Next() {
		pos, heading, shape, sway := query.Get()
		if !g.camera.IsVisible(pos.X, pos.Y, shape.Radius*3) {
			continue
		}
		x, y := g.camera.WorldToScreen(pos.X, pos.Y)
		r := g.camera.Scale(shape.Radius)
		switch shape.Kind {
		case components.KindJellyfish:
			drawJellyfish(x, y, r, sway, shape.Color)
		case components.KindLophophorata:
			drawLophophorata(x, y, r, heading.Angle, sway, shape.Color)
		default:
			drawFish(x, y, r, heading.Angle, sway, shape.Color)
		}
	}
}

// drawFish draws a body triangle pointing along the heading with a tail
// that beats with the sway phase.
func drawFish(x, y, radius, heading float64, sway *components.Sway, c color.RGBA) {
	drawOrientedTriangle(x, y, heading, radius, c, highlight(c))

	tailAngle := heading + math.Pi + math.Sin(sway.Phase)*sway.Amplitude
	bx := x - math.Cos(heading)*radius*0.8
	by := y - math.Sin(heading)*radius*0.8
	tip := vec2(bx+math.Cos(tailAngle)*radius, by+math.Sin(tailAngle)*radius)
	rl.DrawLineEx(vec2(bx, by), tip, float32(math.Max(1, radius*0.35)), c)
}

// drawJellyfish draws a pulsing bell with trailing tentacles.
func drawJellyfish(x, y, radius float64, sway *components.Sway, c color.RGBA) {
	pulse := 1 + 0.15*math.Sin(sway.Phase)
	bell := float32(radius * pulse)
	body := c
	body.A = 200
	rl.DrawCircleSector(vec2(x, y), bell, 180, 360, 16, body)

	for i := -2; i <= 2; i++ {
		tx := x + float64(i)*radius*0.3
		wave := math.Sin(sway.Phase+float64(i)) * radius * sway.Amplitude
		rl.DrawLineEx(vec2(tx, y), vec2(tx+wave, y+radius*1.6), 1, highlight(c))
	}
}

// drawLophophorata draws a stalk with a crown of swaying tentacles.
func drawLophophorata(x, y, radius, heading float64, sway *components.Sway, c color.RGBA) {
	rl.DrawCircleV(vec2(x, y), float32(radius*0.6), c)
	const arms = 8
	for i := 0; i < arms; i++ {
		a := heading + float64(i)*2*math.Pi/arms + math.Sin(sway.Phase+float64(i))*sway.Amplitude*0.5
		end := vec2(x+math.Cos(a)*radius*1.8, y+math.Sin(a)*radius*1.8)
		rl.DrawLineEx(vec2(x, y), end, 1.5, highlight(c))
	}
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float64, fill, outline color.RGBA) {
	front := vec2(x+math.Cos(heading)*radius*1.5, y+math.Sin(heading)*radius*1.5)
	backAngle := heading + math.Pi*0.8
	backLeft := vec2(x+math.Cos(backAngle)*radius, y+math.Sin(backAngle)*radius)
	backAngle = heading - math.Pi*0.8
	backRight := vec2(x+math.Cos(backAngle)*radius, y+math.Sin(backAngle)*radius)

	// DrawTriangle requires counter-clockwise winding
	rl.DrawTriangle(front, backRight, backLeft, fill)
	rl.DrawTriangleLines(front, backLeft, backRight, outline)
}

// highlight blends a color toward white in Lab space.
func highlight(c color.RGBA) color.RGBA {
	base, _ := colorful.MakeColor(c)
	r, g, b := base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.45).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: c.A}
}

func vec2(x, y float64) rl.Vector2 {
	return rl.Vector2{X: float32(x), Y: float32(y)}
}

// drawSelection rings the selected creature and its current target.
func (g *Game) drawSelection() {
	if g.selected == nil {
		return
	}
	body := g.selected.Body()
	if !body.Alive() {
		g.selected = nil
		return
	}
	loc := body.Location()
	x, y := g.camera.WorldToScreen(loc.X, loc.Y)
	rl.DrawCircleLines(int32(x), int32(y), float32(g.camera.Scale(selectRadius)), rl.Yellow)

	tr := g.selected.Tracker()
	if t, ok := tr.Target(); ok {
		tx, ty := g.camera.WorldToScreen(t.X, t.Y)
		rl.DrawLineV(vec2(x, y), vec2(tx, ty), rl.Color{R: 255, G: 255, B: 0, A: 90})
	}
	if f := tr.FoodLock(); f != nil {
		fl := f.Location()
		fx, fy := g.camera.WorldToScreen(fl.X, fl.Y)
		rl.DrawLineV(vec2(x, y), vec2(fx, fy), rl.Color{R: 120, G: 255, B: 120, A: 160})
	}
}

// drawHUD renders counts and controls.
func (g *Game) drawHUD() {
	rl.DrawText(fmt.Sprintf("Tick: %d  Time: %.1fs", g.tick, g.scene.Time()), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Creatures: %d  Food: %d", len(g.creatures), g.food.Count()), 10, 35, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Speed: %dx  [</>]  FPS: %d", g.stepsPerUpdate, rl.GetFPS()), 10, 60, 20, rl.White)
	if g.paused {
		rl.DrawText("PAUSED", 10, 85, 20, rl.Yellow)
	}
	rl.DrawText("Click: startle  F: drop food  Right click: inspect  T: targets  D: debug  Space: pause",
		10, int32(g.screenHeight)-25, 14, rl.Gray)
}

// debugPanelRect is the screen area of the debug panel.
func (g *Game) debugPanelRect() rl.Rectangle {
	return rl.Rectangle{X: 10, Y: 115, Width: 220, Height: 150}
}

// drawDebugPanel renders the raygui debug controls.
func (g *Game) drawDebugPanel() {
	r := g.debugPanelRect()
	rl.DrawRectangleRec(r, rl.Color{R: 0, G: 0, B: 0, A: 180})
	rl.DrawRectangleLinesEx(r, 1, rl.Yellow)
	rl.DrawText("DEBUG [D to close]", int32(r.X)+10, int32(r.Y)+8, 14, rl.Yellow)

	targets := gui.CheckBox(rl.Rectangle{X: r.X + 10, Y: r.Y + 32, Width: 16, Height: 16}, "Target circles", g.debugTargets)
	if targets != g.debugTargets {
		g.SetDebugTargets(targets)
	}

	if gui.Button(rl.Rectangle{X: r.X + 10, Y: r.Y + 58, Width: 200, Height: 26}, "Drop food at center") {
		g.food.Drop(r2.Vec{X: g.camera.X, Y: g.camera.Y})
	}

	stats := g.perfCollector.Stats()
	rl.DrawText(fmt.Sprintf("Tick: %dus  TPS: %.0f", stats.AvgTickDuration.Microseconds(), stats.TicksPerSecond),
		int32(r.X)+10, int32(r.Y)+96, 12, rl.White)
	rl.DrawText(fmt.Sprintf("Actors: %.0f%%  Flush: %.0f%%", stats.PhasePct[telemetry.PhaseActors], stats.PhasePct[telemetry.PhaseFoodFlush]),
		int32(r.X)+10, int32(r.Y)+114, 12, rl.White)
}

// trackerView is the inspector's view of a tracker.
type trackerView struct {
	State      string  `inspect:"label"`
	Speed      float64 `inspect:"bar,max:625"`
	Angle      float64 `inspect:"angle"`
	HasTarget  bool    `inspect:"bool"`
	TargetX    float64 `inspect:"label,fmt:%.0f"`
	TargetY    float64 `inspect:"label,fmt:%.0f"`
	FoodLocked bool    `inspect:"bool"`
}

// drawInspector renders the selected creature's components and tracker.
func (g *Game) drawInspector() {
	c := g.selected
	e := c.Body().Entity()
	tr := c.Tracker()
	target, hasTarget := tr.Target()

	g.panel.Draw(c.Kind().String(),
		inspector.Section{Title: "Position", Value: g.scene.posMap.Get(e)},
		inspector.Section{Title: "Heading", Value: g.scene.headingMap.Get(e)},
		inspector.Section{Title: "Sway", Value: g.scene.swayMap.Get(e)},
		inspector.Section{Title: "Tracker", Value: trackerView{
			State:      tr.State().String(),
			Speed:      tr.Speed(),
			Angle:      tr.Angle(),
			HasTarget:  hasTarget,
			TargetX:    target.X,
			TargetY:    target.Y,
			FoodLocked: tr.FoodLock() != nil,
		}},
	)
}
