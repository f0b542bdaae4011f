package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"sketchpad/internal/app"
	"sketchpad/pkg/colorutil"
	"sketchpad/ui/prefs"
)

var strokeColors = []string{
	"#000000", "#e03131", "#2f9e44", "#1971c2", "#fcc419", "#e8590c", "#be4bdb", "#ffffff",
}

// OptionsPanel edits the ambient drawing options: stroke and fill color,
// width, opacity, and fill mode. Changes apply to objects created
// afterwards; existing objects keep their snapshots.
type OptionsPanel struct {
	state *app.State
	prefs *prefs.Prefs

	widthSlider   *widget.Slider
	widthLabel    *widget.Label
	opacitySlider *widget.Slider
	filledCheck   *widget.Check
	strokeSelect  *widget.Select
	fillSelect    *widget.Select

	container fyne.CanvasObject
}

// NewOptionsPanel builds the options panel, seeding the ambient options
// from the saved preferences.
func NewOptionsPanel(state *app.State, p *prefs.Prefs) *OptionsPanel {
	op := &OptionsPanel{state: state, prefs: p}

	opts := state.Options()
	opts.StrokeColor = p.String(prefs.KeyStrokeColor, opts.StrokeColor)
	opts.FillColor = p.String(prefs.KeyFillColor, opts.FillColor)
	opts.StrokeWidth = p.Float(prefs.KeyStrokeWidth, opts.StrokeWidth)
	state.SetOptions(opts)

	op.strokeSelect = widget.NewSelect(strokeColors, func(value string) {
		o := op.state.Options()
		o.StrokeColor = value
		op.state.SetOptions(o)
		op.prefs.SetString(prefs.KeyStrokeColor, value)
	})
	op.strokeSelect.SetSelected(opts.StrokeColor)

	op.fillSelect = widget.NewSelect(strokeColors, func(value string) {
		o := op.state.Options()
		o.FillColor = value
		op.state.SetOptions(o)
		op.prefs.SetString(prefs.KeyFillColor, value)
	})
	op.fillSelect.SetSelected(opts.FillColor)

	op.widthLabel = widget.NewLabel(fmt.Sprintf("Width: %.0f", opts.StrokeWidth))
	op.widthSlider = widget.NewSlider(1, 20)
	op.widthSlider.SetValue(opts.StrokeWidth)
	op.widthSlider.OnChanged = func(value float64) {
		o := op.state.Options()
		o.StrokeWidth = value
		op.state.SetOptions(o)
		op.prefs.SetFloat(prefs.KeyStrokeWidth, value)
		op.widthLabel.SetText(fmt.Sprintf("Width: %.0f", value))
	}

	op.opacitySlider = widget.NewSlider(0.1, 1)
	op.opacitySlider.Step = 0.1
	op.opacitySlider.SetValue(opts.Opacity)
	op.opacitySlider.OnChanged = func(value float64) {
		o := op.state.Options()
		o.Opacity = value
		op.state.SetOptions(o)
	}

	op.filledCheck = widget.NewCheck("Filled", func(checked bool) {
		o := op.state.Options()
		o.Filled = checked
		op.state.SetOptions(o)
	})
	op.filledCheck.SetChecked(opts.Filled)

	op.container = container.NewVBox(
		widget.NewLabel("Stroke"),
		op.strokeSelect,
		widget.NewLabel("Fill"),
		op.fillSelect,
		op.filledCheck,
		op.widthLabel,
		op.widthSlider,
		widget.NewLabel("Opacity"),
		op.opacitySlider,
	)
	return op
}

// Container returns the panel container.
func (op *OptionsPanel) Container() fyne.CanvasObject {
	return op.container
}

// ColorName returns a human-readable name for the palette entries that have
// one, falling back to the hex form.
func ColorName(hex string) string {
	c, err := colorutil.TryParse(hex)
	if err != nil {
		return hex
	}
	switch c {
	case colorutil.Black:
		return "Black"
	case colorutil.White:
		return "White"
	case colorutil.Red:
		return "Red"
	case colorutil.Green:
		return "Green"
	case colorutil.Blue:
		return "Blue"
	case colorutil.Yellow:
		return "Yellow"
	case colorutil.Orange:
		return "Orange"
	case colorutil.Magenta:
		return "Magenta"
	}
	return hex
}
