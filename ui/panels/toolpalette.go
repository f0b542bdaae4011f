// Package panels provides UI panels for the application.
package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"sketchpad/internal/app"
	"sketchpad/internal/object"
	"sketchpad/internal/tool"
	"sketchpad/ui/prefs"
)

// paletteIcons maps tool icon names onto fyne theme resources.
var paletteIcons = map[string]fyne.Resource{
	"pen":                  theme.DocumentCreateIcon(),
	"line":                 theme.ContentRemoveIcon(),
	"rectangle":            theme.CheckButtonIcon(),
	"hand-drawn-rectangle": theme.ViewFullScreenIcon(),
	"ellipse":              theme.RadioButtonIcon(),
	"arrow":                theme.NavigateNextIcon(),
	"star":                 theme.ConfirmIcon(),
	"triangle":             theme.WarningIcon(),
	"eraser":               theme.ContentClearIcon(),
	"highlighter":          theme.ColorPaletteIcon(),
	"text":                 theme.DocumentIcon(),
	"select":               theme.SearchIcon(),
}

// ToolPalette shows one button per registered tool and keeps the manager's
// current tool in sync with the pressed button.
type ToolPalette struct {
	state   *app.State
	tools   *tool.Manager
	prefs   *prefs.Prefs
	buttons map[object.Type]*widget.Button
	box     *fyne.Container
}

// NewToolPalette builds the palette from the manager's registered tools.
// The last used tool from the preferences is activated when available.
func NewToolPalette(state *app.State, tools *tool.Manager, p *prefs.Prefs) *ToolPalette {
	tp := &ToolPalette{
		state:   state,
		tools:   tools,
		prefs:   p,
		buttons: make(map[object.Type]*widget.Button),
	}

	tp.box = container.NewVBox()
	for _, desc := range tools.Descriptors() {
		desc := desc
		btn := widget.NewButtonWithIcon(desc.Name, paletteIcons[desc.Icon], func() {
			tp.Activate(desc.Type)
		})
		tp.buttons[desc.Type] = btn
		tp.box.Add(btn)
	}

	if last := p.String(prefs.KeyLastTool, ""); last != "" && tools.HasTool(object.Type(last)) {
		tp.Activate(object.Type(last))
	} else {
		tp.highlight(tools.CurrentType())
	}
	return tp
}

// Activate selects the tool and records it as the last used one.
func (tp *ToolPalette) Activate(typ object.Type) {
	if !tp.tools.SetCurrentTool(typ) {
		return
	}
	tp.prefs.SetString(prefs.KeyLastTool, string(typ))
	tp.highlight(typ)
	tp.state.Emit(app.EventToolChanged, typ)
}

func (tp *ToolPalette) highlight(current object.Type) {
	for typ, btn := range tp.buttons {
		if typ == current {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

// Container returns the palette container.
func (tp *ToolPalette) Container() fyne.CanvasObject {
	return container.NewVScroll(tp.box)
}
