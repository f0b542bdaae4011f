package tool

import (
	"math"

	"sketchpad/internal/object"
	"sketchpad/pkg/geometry"
)

// ellipseTool draws an ellipse inscribed in the anchor rectangle. A circle
// is simply an ellipse dragged with equal extents.
type ellipseTool struct {
	twoPointBase
}

// NewEllipseTool creates the circle/ellipse tool.
func NewEllipseTool() Tool {
	return &ellipseTool{twoPointBase{
		desc: Descriptor{
			Type:         object.TypeEllipse,
			Name:         "Ellipse",
			Icon:         "ellipse",
			Title:        "Draw circles and ellipses",
			RequiresDrag: true,
		},
	}}
}

func (t *ellipseTool) Render(obj *object.Object, surface Surface) {
	if obj == nil || obj.End == nil {
		return
	}

	r := obj.AnchorRect()
	surface.PushStyle()
	defer surface.PopStyle()
	applyStroke(surface, obj.Options)
	if obj.Options.Filled {
		surface.SetFill(obj.Options.FillColor)
		surface.FillEllipse(r)
	}
	surface.StrokeEllipse(r)
}

func (t *ellipseTool) HitTest(p geometry.Point2D, obj *object.Object, margin float64) bool {
	if obj == nil || obj.End == nil {
		return false
	}

	r := obj.AnchorRect()
	rx := r.Width / 2
	ry := r.Height / 2
	if rx == 0 || ry == 0 {
		return false
	}

	center := r.Center()
	// Normalized radial value: 1 on the outline, <1 inside.
	nx := (p.X - center.X) / rx
	ny := (p.Y - center.Y) / ry
	v := math.Sqrt(nx*nx + ny*ny)

	slack := hitMargin(margin, DefaultHitMargin) + obj.Options.StrokeWidth/2
	// Convert the slack to normalized units via the mean radius. This is an
	// approximation but close enough at interactive margins.
	normSlack := slack / ((rx + ry) / 2)

	if obj.Options.Filled {
		return v <= 1+normSlack
	}
	return math.Abs(v-1) <= normSlack
}
