package tool

import (
	"math"

	"sketchpad/internal/object"
	"sketchpad/pkg/geometry"
)

// arrowTool draws a straight shaft with a filled head triangle at the end
// anchor.
type arrowTool struct {
	twoPointBase
}

// NewArrowTool creates the arrow tool.
func NewArrowTool() Tool {
	t := &arrowTool{twoPointBase{
		desc: Descriptor{
			Type:         object.TypeArrow,
			Name:         "Arrow",
			Icon:         "arrow",
			Title:        "Draw arrows",
			RequiresDrag: true,
		},
	}}
	// The head can stick out past the anchor box, so the bounds padding is
	// the head length when that exceeds the stroke width.
	t.padding = func(obj *object.Object) float64 {
		shaft := obj.Start.Distance(obj.AnchorEnd())
		return math.Max(geometry.ArrowHeadLength(shaft), obj.Options.StrokeWidth)
	}
	return t
}

func (t *arrowTool) Render(obj *object.Object, surface Surface) {
	if obj == nil || obj.End == nil {
		return
	}

	surface.PushStyle()
	defer surface.PopStyle()
	applyStroke(surface, obj.Options)
	surface.StrokeLine(obj.Start, *obj.End)

	// Zero-length shafts have no direction; the head is skipped entirely.
	if head := geometry.ArrowHead(obj.Start, *obj.End); head != nil {
		surface.SetFill(obj.Options.StrokeColor)
		surface.FillPolygon(head)
	}
}

func (t *arrowTool) HitTest(p geometry.Point2D, obj *object.Object, margin float64) bool {
	if obj == nil || obj.End == nil {
		return false
	}
	slack := hitMargin(margin, DefaultHitMargin) + obj.Options.StrokeWidth/2
	if geometry.DistanceToSegment(p, obj.Start, *obj.End) <= slack {
		return true
	}
	head := geometry.ArrowHead(obj.Start, *obj.End)
	return head != nil && geometry.DistanceToPolygon(p, head) <= slack
}
