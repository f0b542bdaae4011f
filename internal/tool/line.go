package tool

import (
	"sketchpad/internal/object"
	"sketchpad/pkg/geometry"
)

// lineTool draws a straight segment between the two anchors.
type lineTool struct {
	twoPointBase
}

// NewLineTool creates the straight-line tool.
func NewLineTool() Tool {
	return &lineTool{twoPointBase{
		desc: Descriptor{
			Type:         object.TypeLine,
			Name:         "Line",
			Icon:         "line",
			Title:        "Draw straight lines",
			RequiresDrag: true,
		},
	}}
}

func (t *lineTool) Render(obj *object.Object, surface Surface) {
	if obj == nil || obj.End == nil {
		return
	}

	surface.PushStyle()
	defer surface.PopStyle()
	applyStroke(surface, obj.Options)
	surface.StrokeLine(obj.Start, *obj.End)
}

func (t *lineTool) HitTest(p geometry.Point2D, obj *object.Object, margin float64) bool {
	if obj == nil || obj.End == nil {
		return false
	}
	slack := hitMargin(margin, DefaultHitMargin) + obj.Options.StrokeWidth/2
	return geometry.DistanceToSegment(p, obj.Start, *obj.End) <= slack
}
