package tool

import (
	"sketchpad/internal/object"
	"sketchpad/pkg/geometry"
)

// selectTool is the non-creating tool: gestures pick or marquee existing
// objects instead of producing new ones. The host interprets the gesture; the
// tool only renders the selection indicator and answers hit queries against
// an object's stored bounds.
type selectTool struct {
	desc Descriptor
}

// NewSelectTool creates the selection tool.
func NewSelectTool() Tool {
	return &selectTool{desc: Descriptor{
		Type:         object.TypeSelect,
		Name:         "Select",
		Icon:         "select",
		Title:        "Select and move objects",
		RequiresDrag: false,
	}}
}

func (t *selectTool) Type() object.Type      { return t.desc.Type }
func (t *selectTool) Descriptor() Descriptor { return t.desc }
func (t *selectTool) RequiresDrag() bool     { return t.desc.RequiresDrag }

func (t *selectTool) StartDrawing(geometry.Point2D, Context) *object.Object {
	return nil
}

func (t *selectTool) ContinueDrawing(_ geometry.Point2D, _ *object.Object, ctx Context) {
	ctx.RedrawCanvas()
}

func (t *selectTool) UpdateDrawing(p geometry.Point2D, obj *object.Object, ctx Context) *object.Object {
	t.ContinueDrawing(p, obj, ctx)
	return obj
}

func (t *selectTool) FinishDrawing(geometry.Point2D, *object.Object, Context) (*object.Object, FinishAction) {
	return nil, ActionNone
}

// Render draws the dashed selection indicator around an object's bounds.
func (t *selectTool) Render(obj *object.Object, surface Surface) {
	if obj == nil {
		return
	}
	r := obj.Bounds
	if r.IsEmpty() {
		return
	}

	surface.PushStyle()
	defer surface.PopStyle()
	surface.SetStroke("#4a90d9", 1)
	surface.SetDash([]float64{4, 4})
	surface.StrokeRect(r.Pad(2))
}

func (t *selectTool) HitTest(p geometry.Point2D, obj *object.Object, margin float64) bool {
	if obj == nil {
		return false
	}
	return obj.Bounds.Pad(hitMargin(margin, DefaultHitMargin)).Contains(p)
}

func (t *selectTool) Bounds(obj *object.Object, _ Surface) geometry.Rect {
	if obj == nil {
		return geometry.Rect{}
	}
	return obj.Bounds
}
