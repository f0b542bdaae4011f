package tool

import (
	"sketchpad/internal/object"
	"sketchpad/pkg/geometry"
)

// polygonShapeTool is the shared implementation of the star and triangle
// tools: a parametric polygon generated from the anchor rectangle.
type polygonShapeTool struct {
	twoPointBase

	// build produces the polygon vertices for an anchor rectangle.
	build func(bounds geometry.Rect) []geometry.Point2D
}

// NewStarTool creates the 5-point star tool.
func NewStarTool() Tool {
	return &polygonShapeTool{
		twoPointBase: twoPointBase{
			desc: Descriptor{
				Type:         object.TypeStar,
				Name:         "Star",
				Icon:         "star",
				Title:        "Draw five-pointed stars",
				RequiresDrag: true,
			},
		},
		build: geometry.StarPolygon,
	}
}

// NewTriangleTool creates the triangle tool.
func NewTriangleTool() Tool {
	return &polygonShapeTool{
		twoPointBase: twoPointBase{
			desc: Descriptor{
				Type:         object.TypeTriangle,
				Name:         "Triangle",
				Icon:         "triangle",
				Title:        "Draw triangles",
				RequiresDrag: true,
			},
		},
		build: geometry.TrianglePolygon,
	}
}

func (t *polygonShapeTool) polygon(obj *object.Object) []geometry.Point2D {
	r := obj.AnchorRect()
	if r.IsEmpty() {
		return nil
	}
	return t.build(r)
}

func (t *polygonShapeTool) Render(obj *object.Object, surface Surface) {
	if obj == nil || obj.End == nil {
		return
	}
	poly := t.polygon(obj)
	if poly == nil {
		return
	}

	surface.PushStyle()
	defer surface.PopStyle()
	applyStroke(surface, obj.Options)
	if obj.Options.Filled {
		surface.SetFill(obj.Options.FillColor)
		surface.FillPolygon(poly)
	}
	surface.StrokePolygon(poly)
}

func (t *polygonShapeTool) HitTest(p geometry.Point2D, obj *object.Object, margin float64) bool {
	if obj == nil || obj.End == nil {
		return false
	}
	poly := t.polygon(obj)
	if poly == nil {
		return false
	}

	slack := hitMargin(margin, DefaultHitMargin) + obj.Options.StrokeWidth/2
	if obj.Options.Filled {
		return geometry.DistanceToPolygon(p, poly) <= slack
	}

	// Outline only: a point deep inside an unfilled shape is not a hit.
	n := len(poly)
	for i := 0; i < n; i++ {
		if geometry.DistanceToSegment(p, poly[i], poly[(i+1)%n]) <= slack {
			return true
		}
	}
	return false
}
