package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 90, G: 170, B: 210, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 40, G: 50, B: 65, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

const labelWidth = 90

// DrawLabel renders a text value. Returns the height used.
func DrawLabel(x, y int32, name, text string) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(text, x+labelWidth, y, 14, ColorText)
	return 18
}

// DrawBar renders a horizontal bar filled to value/max.
func DrawBar(x, y int32, name string, value, full float64) int32 {
	ratio := math.Max(0, math.Min(1, value/full))
	const barWidth, barHeight = 120, 14

	rl.DrawText(name, x, y, 14, ColorTextDim)
	barX := x + labelWidth
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)
	rl.DrawRectangle(barX, y, int32(barWidth*ratio), barHeight, ColorBarFill)
	rl.DrawText(fmt.Sprintf("%.1f", value), barX+barWidth+5, y, 14, ColorTextDim)
	return 18
}

// DrawAngle renders a compass-style angle indicator.
func DrawAngle(x, y int32, name string, radians float64) int32 {
	const size = 36
	cx := float32(x + labelWidth + size/2)
	cy := float32(y + size/2)

	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)
	rl.DrawCircleV(rl.Vector2{X: cx, Y: cy}, size/2, ColorAngleBg)
	rl.DrawCircleLines(int32(cx), int32(cy), size/2, ColorTextDim)

	needle := float64(size/2 - 4)
	end := rl.Vector2{
		X: cx + float32(needle*math.Cos(radians)),
		Y: cy + float32(needle*math.Sin(radians)),
	}
	rl.DrawLineEx(rl.Vector2{X: cx, Y: cy}, end, 2, ColorAngleNeedle)
	rl.DrawText(fmt.Sprintf("%.0f deg", radians*180/math.Pi), x+labelWidth+size+6, y+size/2-7, 14, ColorTextDim)
	return size + 4
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	c, text := ColorBoolOff, "OFF"
	if value {
		c, text = ColorBoolOn, "ON"
	}
	rl.DrawRectangle(x+labelWidth, y, 14, 14, c)
	rl.DrawText(text, x+labelWidth+19, y, 14, c)
	return 18
}

// DrawField renders a field using its widget type.
func DrawField(x, y int32, f Field) int32 {
	switch f.Widget {
	case WidgetBar:
		if v, ok := f.Float(); ok {
			return DrawBar(x, y, f.Name, v, f.Max)
		}
	case WidgetAngle:
		if v, ok := f.Float(); ok {
			return DrawAngle(x, y, f.Name, v)
		}
	case WidgetBool:
		if v, ok := f.Value.(bool); ok {
			return DrawBool(x, y, f.Name, v)
		}
	}
	return DrawLabel(x, y, f.Name, f.Text())
}
