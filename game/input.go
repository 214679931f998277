package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// selectRadius is how close (in world units) a right click must land to
// select a creature.
const selectRadius = 30.0

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyD) {
		g.debugPanel = !g.debugPanel
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.SetDebugTargets(!g.debugTargets)
	}

	g.handleCameraInput()

	mouse := rl.GetMousePosition()
	wx, wy := g.camera.ScreenToWorld(float64(mouse.X), float64(mouse.Y))

	if rl.IsKeyPressed(rl.KeyF) {
		g.food.Drop(r2.Vec{X: wx, Y: wy})
	}

	// Clicks on the debug panel belong to raygui.
	if g.debugPanel && rl.CheckCollisionPointRec(mouse, g.debugPanelRect()) {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.Press(wx, wy)
	}
	// Right click on empty water deselects.
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.selected = g.creatureAt(wx, wy)
	}
}

// creatureAt returns the creature nearest to (x, y) within selectRadius.
func (g *Game) creatureAt(x, y float64) *Creature {
	var best *Creature
	bestDist := selectRadius
	p := r2.Vec{X: x, Y: y}
	for _, c := range g.creatures {
		if d := r2.Norm(r2.Sub(c.Body().Location(), p)); d <= bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(w, h)
	g.panel.Resize(int32(w))
}

// handleCameraInput processes camera pan and zoom controls.
func (g *Game) handleCameraInput() {
	const panSpeed = 8.0

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + float64(wheel)*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
