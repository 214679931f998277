package inspector

import rl "github.com/gen2brain/raylib-go/raylib"

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 28
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 20, G: 28, B: 38, A: 235}
	ColorPanelHeader = rl.Color{R: 35, G: 48, B: 64, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 90, B: 110, A: 255}
	ColorSectionText = rl.Color{R: 180, G: 210, B: 230, A: 255}
)

// Section is a titled struct shown in the panel.
type Section struct {
	Title string
	Value any
}

// Panel draws sections of tagged structs in a column at the right edge of
// the screen.
type Panel struct {
	screenWidth int32
}

// NewPanel creates a panel for a screen of the given width.
func NewPanel(screenWidth int32) *Panel {
	return &Panel{screenWidth: screenWidth}
}

// Resize moves the panel to the right edge of a resized screen.
func (p *Panel) Resize(screenWidth int32) {
	p.screenWidth = screenWidth
}

// Height returns the height the sections will occupy.
func (p *Panel) Height(sections ...Section) int32 {
	h := int32(HeaderHeight + PanelPadding)
	for _, s := range sections {
		h += 22
		for _, f := range ExtractFields(s.Value) {
			h += fieldHeight(f)
		}
		h += 6
	}
	return h
}

func fieldHeight(f Field) int32 {
	if f.Widget == WidgetAngle {
		if _, ok := f.Float(); ok {
			return 40
		}
	}
	return 18
}

// Draw renders the panel with a title and its sections.
func (p *Panel) Draw(title string, sections ...Section) {
	x := p.screenWidth - PanelWidth - 10
	y := int32(10)
	h := p.Height(sections...)

	rl.DrawRectangle(x, y, PanelWidth, h, ColorPanelBg)
	rl.DrawRectangle(x, y, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawRectangleLines(x, y, PanelWidth, h, ColorPanelBorder)
	rl.DrawText(title, x+PanelPadding, y+7, 16, ColorText)

	cy := y + HeaderHeight + PanelPadding
	for _, s := range sections {
		rl.DrawText(s.Title, x+PanelPadding, cy, 14, ColorSectionText)
		cy += 22
		for _, f := range ExtractFields(s.Value) {
			cy += DrawField(x+PanelPadding, cy, f)
		}
		cy += 6
	}
}
