package tool

import (
	"sketchpad/internal/object"
	"sketchpad/pkg/geometry"
)

// textLineHeight is the bounds height of a text object relative to its font
// size.
const textLineHeight = 1.2

// textTool places a text object at the press position. The text itself is
// entered afterwards: FinishDrawing asks the host to open its editor on the
// object via ActionEditText.
type textTool struct {
	desc Descriptor
}

// NewTextTool creates the text tool.
func NewTextTool() Tool {
	return &textTool{desc: Descriptor{
		Type:         object.TypeText,
		Name:         "Text",
		Icon:         "text",
		Title:        "Place text",
		RequiresDrag: false,
	}}
}

func (t *textTool) Type() object.Type      { return t.desc.Type }
func (t *textTool) Descriptor() Descriptor { return t.desc }
func (t *textTool) RequiresDrag() bool     { return t.desc.RequiresDrag }

func (t *textTool) StartDrawing(p geometry.Point2D, ctx Context) *object.Object {
	obj := object.New(ctx.GenerateID(), t.desc.Type, p, ctx.Options())
	obj.Bounds = t.measure(obj, ctx.Surface())
	return obj
}

// ContinueDrawing repositions the anchor: dragging a text gesture moves the
// insertion point rather than sizing a shape.
func (t *textTool) ContinueDrawing(p geometry.Point2D, obj *object.Object, ctx Context) {
	if obj == nil {
		return
	}
	obj.Start = p
	obj.Bounds = t.measure(obj, ctx.Surface())
	ctx.RedrawCanvas()
}

func (t *textTool) UpdateDrawing(p geometry.Point2D, obj *object.Object, ctx Context) *object.Object {
	t.ContinueDrawing(p, obj, ctx)
	return obj
}

func (t *textTool) FinishDrawing(p geometry.Point2D, obj *object.Object, ctx Context) (*object.Object, FinishAction) {
	if obj == nil {
		return nil, ActionNone
	}
	obj.Start = p
	obj.Bounds = t.measure(obj, ctx.Surface())
	ctx.SaveState()
	return obj, ActionEditText
}

// measure computes the bounds from the rendered text extent. The anchor is
// the baseline origin; alignment shifts the box left, centered, or right of
// it. Empty text still yields a one-line-high caret box.
func (t *textTool) measure(obj *object.Object, surface Surface) geometry.Rect {
	width := 0.0
	if surface != nil && obj.Text != "" {
		width = surface.MeasureText(obj.Text, obj.Options)
	}
	height := obj.Options.FontSize * textLineHeight

	x := obj.Start.X
	switch obj.Options.TextAlign {
	case object.AlignCenter:
		x -= width / 2
	case object.AlignRight:
		x -= width
	}
	return geometry.NewRect(x, obj.Start.Y, width, height)
}

func (t *textTool) Render(obj *object.Object, surface Surface) {
	if obj == nil || obj.Text == "" {
		return
	}

	origin := obj.Start
	switch obj.Options.TextAlign {
	case object.AlignCenter:
		origin.X -= surface.MeasureText(obj.Text, obj.Options) / 2
	case object.AlignRight:
		origin.X -= surface.MeasureText(obj.Text, obj.Options)
	}

	surface.PushStyle()
	defer surface.PopStyle()
	surface.SetOpacity(obj.Options.Opacity)
	surface.DrawText(obj.Text, origin, obj.Options)
}

// HitTest hits anywhere inside the measured text box. Empty text has no
// visible geometry and never hits.
func (t *textTool) HitTest(p geometry.Point2D, obj *object.Object, margin float64) bool {
	if obj == nil || obj.Text == "" {
		return false
	}
	return obj.Bounds.Pad(hitMargin(margin, DefaultHitMargin)).Contains(p)
}

func (t *textTool) Bounds(obj *object.Object, surface Surface) geometry.Rect {
	if obj == nil {
		return geometry.Rect{}
	}
	return t.measure(obj, surface)
}
