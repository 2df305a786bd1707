package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/goop/sim"
)

// ParamPanel renders live sliders over the frame parameters. Edits apply to
// the next simulation step.
type ParamPanel struct {
	x, y    int32
	width   int32
	visible bool
}

// NewParamPanel creates a parameter panel at the given position.
func NewParamPanel(x, y, width int32) *ParamPanel {
	return &ParamPanel{x: x, y: y, width: width}
}

// Toggle switches panel visibility.
func (p *ParamPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *ParamPanel) IsVisible() bool {
	return p.visible
}

// sliderSpec binds one slider row to a parameter field.
type sliderSpec struct {
	label    string
	min, max float32
	value    *float32
}

// Draw renders the panel and writes slider changes back into params.
func (p *ParamPanel) Draw(params *sim.Params) {
	if !p.visible {
		return
	}

	specs := []sliderSpec{
		{"Gravity Y", -4, 0, &params.Gravity.Y},
		{"Viscosity", 0, 0.5, &params.Viscosity},
		{"Spring stiffness", 0, 400, &params.Stiffness},
		{"Damping", 0.5, 1, &params.Damping},
		{"Turbulence", 0, 1, &params.TurbStrength},
		{"Flow strength", 0, 2, &params.Wave2Strength},
		{"Fluid strength", 0, 2, &params.FluidStrength},
		{"Pointer force", 0, 5, &params.MouseForce},
		{"Morph duration", 0.5, 8, &params.MorphDuration},
	}

	const rowHeight = 38
	panelHeight := int32(len(specs))*rowHeight + 40

	rl.DrawRectangle(p.x-4, p.y-4, p.width+8, panelHeight, rl.Color{R: 10, G: 12, B: 20, A: 220})
	rl.DrawText("Parameters", p.x, p.y, 16, rl.White)

	y := p.y + 26
	for _, s := range specs {
		rl.DrawText(s.label, p.x, y, 14, rl.Gray)
		v := gui.SliderBar(
			rl.Rectangle{X: float32(p.x), Y: float32(y + 16), Width: float32(p.width - 60), Height: 16},
			"", "",
			*s.value, s.min, s.max,
		)
		rl.DrawText(fmt.Sprintf("%.2f", *s.value), p.x+p.width-54, y+16, 14, rl.LightGray)
		*s.value = v
		y += rowHeight
	}
}
