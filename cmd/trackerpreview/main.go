// Tracker preview tool - tune steering parameters live with sliders.
//
// Left click startles the creatures, right click drops food.
//
// Usage: go run ./cmd/trackerpreview
package main

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/game"
	"github.com/pthm-cable/aquarium/steering"
)

const (
	windowWidth  = 1040
	windowHeight = 720
	tankSize     = 600
	panelWidth   = windowWidth - tankSize - 30
	creatures    = 3
)

// slider binds a GUI slider to one tuning value.
type slider struct {
	label    string
	format   string
	min, max float32
	value    *float64
}

// liveRenderer draws tracker debug circles immediately; the preview ticks
// inside BeginDrawing.
type liveRenderer struct{}

func (liveRenderer) DrawCircle(x, y, radius float64, c color.RGBA) {
	rl.DrawCircleLines(int32(x)+10, int32(y)+10, float32(radius), c)
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Tracker Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	tuning := previewTuning(cfg.Tracker)
	curve := 0.0 // 0 = never arc

	sliders := []slider{
		{"Speed bias", "%.0f", 5, 400, &tuning.SpeedBias},
		{"Smooth curve rate", "%.3f", 0.001, 1, &tuning.SmoothCurveRate},
		{"Noise size", "%.2f", 0, 2, &tuning.NoiseSize},
		{"Shock threshold", "%.0f", 0, 300, &tuning.ShockThresholdDistance},
		{"Shock avoid distance", "%.0f", 0, 300, &tuning.ShockAvoidDistance},
		{"Food trigger distance", "%.0f", 0, 400, &tuning.FoodTriggerDistance},
		{"Food view angle", "%.0f", 0, 360, &tuning.FoodViewableAngleDeg},
		{"Smooth curve trigger", "%.0f", 0, 600, &curve},
	}

	rng := rand.New(rand.NewSource(1))
	var scene *game.Scene
	var fish []*game.Creature
	rebuild := func() {
		cfg.Tracker = tuning
		cfg.Tracker.SmoothCurveTriggerDistance = curve
		scene, fish = newTank(cfg, rng, fish)
	}
	rebuild()

	for !rl.WindowShouldClose() {
		mouse := rl.GetMousePosition()
		inTank := mouse.X >= 10 && mouse.Y >= 10 && mouse.X < tankSize+10 && mouse.Y < tankSize+10
		if inTank {
			p := r2.Vec{X: float64(mouse.X - 10), Y: float64(mouse.Y - 10)}
			if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
				scene.Press(p)
			}
			if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
				scene.Food().Drop(p)
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawRectangleGradientV(10, 10, tankSize, tankSize, rl.Color{R: 12, G: 52, B: 84, A: 255}, rl.Color{R: 4, G: 18, B: 34, A: 255})
		scene.Tick(float64(rl.GetFrameTime()))
		drawTank(scene, fish)
		rl.DrawRectangleLines(10, 10, tankSize, tankSize, rl.DarkGray)

		rl.DrawText(fmt.Sprintf("Food: %d", scene.Food().Count()), 15, tankSize+25, 16, rl.DarkGray)
		for i, c := range fish {
			tr := c.Tracker()
			rl.DrawText(fmt.Sprintf("#%d %-13s speed %6.1f", i, tr.State(), tr.Speed()), 15, int32(tankSize+45+i*20), 16, rl.DarkGray)
		}

		// Control panel
		panelX := float32(tankSize + 20)
		panelY := float32(10)
		rl.DrawText("Tracker Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false
		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				float32(*s.value), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if math.Abs(float64(v)-*s.value) > 1e-6 {
				*s.value = float64(v)
				changed = true
			}
			panelY += 30
		}

		food := gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 16, Height: 16}, "Food enabled", tuning.FoodEnabled)
		if food != tuning.FoodEnabled {
			tuning.FoodEnabled = food
			changed = true
		}
		panelY += 30

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			defaults, err := config.Load("")
			if err != nil {
				panic(err)
			}
			tuning = previewTuning(defaults.Tracker)
			curve = 0
			changed = true
		}
		panelY += 45

		if changed {
			rebuild()
		}

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		out := trackerYAML(cfg.Tracker)
		for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Left click: startle  Right click: food  C: copy YAML", int32(panelX), windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(out)
		}

		rl.EndDrawing()
	}
}

// previewTuning is the slider starting point: debug circles on.
func previewTuning(tc config.TrackerConfig) config.TrackerConfig {
	tc.Debug = true
	return tc
}

// newTank builds a fresh scene, keeping previous creature positions.
func newTank(cfg *config.Config, rng *rand.Rand, prev []*game.Creature) (*game.Scene, []*game.Creature) {
	scene := game.NewScene(tankSize, tankSize, rng)
	scene.SetRenderer(liveRenderer{})
	scene.AttachFood(game.NewFoodProvider(config.FoodConfig{
		Enabled: true, MaxFoods: 20, Radius: 4, Color: cfg.Food.Color,
	}, nil))

	out := make([]*game.Creature, creatures)
	for i := range out {
		loc := r2.Vec{X: tankSize / 2, Y: tankSize / 2}
		angle := float64(i) * 2 * math.Pi / creatures
		if i < len(prev) {
			loc = prev[i].Body().Location()
			angle = prev[i].Tracker().Angle()
		}
		opts := game.TrackerOptions(cfg.Tracker)
		opts.AutoTarget = true
		opts.Rand = rand.New(rand.NewSource(rng.Int63()))
		c := game.NewCreature(scene, game.Spawn{
			Kind:     components.KindFish,
			Location: loc,
			Angle:    angle,
			Scale:    1.5,
			Color:    color.RGBA{R: 33, G: 150, B: 243, A: 255},
			Options:  opts,
		})
		scene.Instantiate(c)
		out[i] = c
	}
	return scene, out
}

// drawTank draws food and creatures offset into the preview area.
func drawTank(scene *game.Scene, fish []*game.Creature) {
	for _, f := range scene.Food().Foods() {
		p := f.Location()
		rl.DrawCircle(int32(p.X)+10, int32(p.Y)+10, 4, rl.Beige)
	}
	for _, c := range fish {
		p := c.Body().Location()
		a := c.Tracker().Angle()
		x, y := float32(p.X)+10, float32(p.Y)+10
		const r = 12
		front := rl.Vector2{X: x + r*1.5*float32(math.Cos(a)), Y: y + r*1.5*float32(math.Sin(a))}
		left := rl.Vector2{X: x + r*float32(math.Cos(a+math.Pi*0.8)), Y: y + r*float32(math.Sin(a+math.Pi*0.8))}
		right := rl.Vector2{X: x + r*float32(math.Cos(a-math.Pi*0.8)), Y: y + r*float32(math.Sin(a-math.Pi*0.8))}
		rl.DrawTriangle(front, right, left, rl.SkyBlue)
		if c.Tracker().State() == steering.StateShock {
			rl.DrawCircleLines(int32(x), int32(y), r*2, rl.Red)
		}
	}
}

// trackerYAML renders the tuning as a config snippet.
func trackerYAML(tc config.TrackerConfig) string {
	tc.Debug = false
	out, err := yaml.Marshal(map[string]config.TrackerConfig{"tracker": tc})
	if err != nil {
		return err.Error()
	}
	return string(out)
}
