package tool

import (
	"sketchpad/internal/object"
	"sketchpad/pkg/geometry"
)

// freehandTool is the shared implementation behind pen, eraser, and
// highlighter. All three accumulate pointer samples into obj.Points and keep
// bounds equal to the sample extents; they differ only in stroke styling and
// hit slack.
type freehandTool struct {
	desc Descriptor

	// widthScale multiplies the configured stroke width; the eraser and
	// highlighter paint much wider than the pen.
	widthScale float64
	// opacity multiplies the configured opacity (highlighter).
	opacity float64
	// colorOverride, when set, replaces the configured stroke color
	// (eraser paints in the background color).
	colorOverride string
}

// NewPenTool creates the freehand pen. The path begins on press, so the pen
// does not require net displacement to register.
func NewPenTool() Tool {
	return &freehandTool{
		desc: Descriptor{
			Type:  object.TypePen,
			Name:  "Pen",
			Icon:  "pen",
			Title: "Draw freehand strokes",
		},
		widthScale: 1,
		opacity:    1,
	}
}

// NewEraserTool creates the eraser: a wide freehand stroke in the background
// color.
func NewEraserTool() Tool {
	return &freehandTool{
		desc: Descriptor{
			Type:         object.TypeEraser,
			Name:         "Eraser",
			Icon:         "eraser",
			Title:        "Erase by painting over",
			RequiresDrag: true,
		},
		widthScale:    6,
		opacity:       1,
		colorOverride: "#ffffff",
	}
}

// NewHighlighterTool creates the highlighter: a wide translucent freehand
// stroke.
func NewHighlighterTool() Tool {
	return &freehandTool{
		desc: Descriptor{
			Type:         object.TypeHighlighter,
			Name:         "Highlighter",
			Icon:         "highlighter",
			Title:        "Highlight with translucent strokes",
			RequiresDrag: true,
		},
		widthScale: 4,
		opacity:    0.4,
	}
}

func (t *freehandTool) Type() object.Type      { return t.desc.Type }
func (t *freehandTool) Descriptor() Descriptor { return t.desc }
func (t *freehandTool) RequiresDrag() bool     { return t.desc.RequiresDrag }

func (t *freehandTool) StartDrawing(p geometry.Point2D, ctx Context) *object.Object {
	obj := object.New(ctx.GenerateID(), t.desc.Type, p, ctx.Options())
	obj.AppendPoint(p)
	obj.Bounds = geometry.BoundingBox(obj.Points)
	return obj
}

func (t *freehandTool) ContinueDrawing(p geometry.Point2D, obj *object.Object, ctx Context) {
	if obj == nil {
		return
	}
	obj.AppendPoint(p)
	obj.Bounds = geometry.BoundingBox(obj.Points)
	ctx.RedrawCanvas()
}

func (t *freehandTool) UpdateDrawing(p geometry.Point2D, obj *object.Object, ctx Context) *object.Object {
	t.ContinueDrawing(p, obj, ctx)
	return obj
}

func (t *freehandTool) FinishDrawing(p geometry.Point2D, obj *object.Object, ctx Context) (*object.Object, FinishAction) {
	if obj == nil {
		return nil, ActionNone
	}
	obj.AppendPoint(p)
	obj.Bounds = geometry.BoundingBox(obj.Points)
	ctx.SaveState()
	return obj, ActionCreated
}

func (t *freehandTool) strokeStyle(obj *object.Object) (color string, width, opacity float64) {
	color = obj.Options.StrokeColor
	if t.colorOverride != "" {
		color = t.colorOverride
	}
	width = obj.Options.StrokeWidth * t.widthScale
	if width < 1 {
		width = 1
	}
	return color, width, obj.Options.Opacity * t.opacity
}

func (t *freehandTool) Render(obj *object.Object, surface Surface) {
	if obj == nil || len(obj.Points) == 0 {
		return
	}

	color, width, opacity := t.strokeStyle(obj)

	surface.PushStyle()
	defer surface.PopStyle()
	surface.SetOpacity(opacity)
	surface.SetStroke(color, width)
	if len(obj.Options.DashPattern) > 0 {
		surface.SetDash(obj.Options.DashPattern)
	}
	if obj.Options.ShadowColor != "" {
		surface.SetShadow(obj.Options.ShadowColor, obj.Options.ShadowBlur,
			obj.Options.ShadowOffsetX, obj.Options.ShadowOffsetY)
	}

	if len(obj.Points) == 1 {
		// A press without movement still leaves a visible dot.
		surface.StrokeLine(obj.Points[0], obj.Points[0])
		return
	}
	surface.StrokePath(obj.Points)
}

func (t *freehandTool) HitTest(p geometry.Point2D, obj *object.Object, margin float64) bool {
	if obj == nil || len(obj.Points) == 0 {
		return false
	}

	_, width, _ := t.strokeStyle(obj)
	slack := hitMargin(margin, DefaultHitMargin) + width/2

	if len(obj.Points) == 1 {
		return p.Distance(obj.Points[0]) <= slack
	}
	for i := 0; i < len(obj.Points)-1; i++ {
		if geometry.DistanceToSegment(p, obj.Points[i], obj.Points[i+1]) <= slack {
			return true
		}
	}
	return false
}

// Bounds for freehand strokes is the exact min/max box of the samples; the
// stroke width is not folded in.
func (t *freehandTool) Bounds(obj *object.Object, _ Surface) geometry.Rect {
	if obj == nil {
		return geometry.Rect{}
	}
	return geometry.BoundingBox(obj.Points)
}
