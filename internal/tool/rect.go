package tool

import (
	"hash/fnv"
	"math"

	"sketchpad/internal/object"
	"sketchpad/pkg/geometry"
)

// rectTool draws an axis-aligned rectangle spanning the two anchors.
type rectTool struct {
	twoPointBase
}

// NewRectangleTool creates the rectangle tool.
func NewRectangleTool() Tool {
	return &rectTool{twoPointBase{
		desc: Descriptor{
			Type:         object.TypeRectangle,
			Name:         "Rectangle",
			Icon:         "rectangle",
			Title:        "Draw rectangles",
			RequiresDrag: true,
		},
	}}
}

func rectCorners(r geometry.Rect) []geometry.Point2D {
	return []geometry.Point2D{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
}

func (t *rectTool) Render(obj *object.Object, surface Surface) {
	if obj == nil || obj.End == nil {
		return
	}

	r := obj.AnchorRect()
	surface.PushStyle()
	defer surface.PopStyle()
	applyStroke(surface, obj.Options)
	if obj.Options.Filled {
		surface.SetFill(obj.Options.FillColor)
		surface.FillRect(r)
	}
	surface.StrokeRect(r)
}

func (t *rectTool) HitTest(p geometry.Point2D, obj *object.Object, margin float64) bool {
	if obj == nil || obj.End == nil {
		return false
	}
	return rectHit(p, obj, hitMargin(margin, DefaultHitMargin))
}

// rectHit implements hit-testing for both rectangle variants: a filled
// rectangle is hit anywhere inside, an outlined one only near its edges.
func rectHit(p geometry.Point2D, obj *object.Object, margin float64) bool {
	r := obj.AnchorRect()
	slack := margin + obj.Options.StrokeWidth/2
	if obj.Options.Filled {
		return r.Pad(slack).Contains(p)
	}

	corners := rectCorners(r)
	for i := range corners {
		if geometry.DistanceToSegment(p, corners[i], corners[(i+1)%4]) <= slack {
			return true
		}
	}
	return false
}

// handDrawnRectTool draws a rectangle with a deliberate freehand wobble, as
// if sketched by hand. The wobble is derived from the object ID, so an
// object always redraws the same way.
type handDrawnRectTool struct {
	twoPointBase
}

// NewHandDrawnRectTool creates the hand-drawn rectangle tool.
func NewHandDrawnRectTool() Tool {
	return &handDrawnRectTool{twoPointBase{
		desc: Descriptor{
			Type:         object.TypeHandDrawnRect,
			Name:         "Sketch box",
			Icon:         "hand-drawn-rectangle",
			Title:        "Draw hand-drawn style rectangles",
			RequiresDrag: true,
		},
	}}
}

// wobbleSeed hashes the object ID into a stable phase offset.
func wobbleSeed(id string) float64 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return float64(h.Sum32()%628) / 100 // phase in [0, 2π)
}

// wobbleEdge samples an edge as a short polyline displaced perpendicular to
// its direction by a low-amplitude sine.
func wobbleEdge(a, b geometry.Point2D, phase float64) []geometry.Point2D {
	length := a.Distance(b)
	if length == 0 {
		return []geometry.Point2D{a, b}
	}
	steps := int(length/12) + 2
	ux := (b.X - a.X) / length
	uy := (b.Y - a.Y) / length

	amplitude := math.Min(2, length/20)
	points := make([]geometry.Point2D, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		offset := amplitude * math.Sin(phase+t*4.7)
		// Endpoints stay exact so edges meet at the corners.
		if i == 0 || i == steps {
			offset = 0
		}
		points = append(points, geometry.Point2D{
			X: a.X + ux*length*t - uy*offset,
			Y: a.Y + uy*length*t + ux*offset,
		})
	}
	return points
}

func (t *handDrawnRectTool) Render(obj *object.Object, surface Surface) {
	if obj == nil || obj.End == nil {
		return
	}

	r := obj.AnchorRect()
	phase := wobbleSeed(obj.ID)

	surface.PushStyle()
	defer surface.PopStyle()
	applyStroke(surface, obj.Options)
	if obj.Options.Filled {
		surface.SetFill(obj.Options.FillColor)
		surface.FillRect(r)
	}

	corners := rectCorners(r)
	for i := range corners {
		surface.StrokePath(wobbleEdge(corners[i], corners[(i+1)%4], phase+float64(i)))
	}
}

func (t *handDrawnRectTool) HitTest(p geometry.Point2D, obj *object.Object, margin float64) bool {
	if obj == nil || obj.End == nil {
		return false
	}
	// The wobble amplitude stays within the default margin, so the ideal
	// rectangle is close enough for hit purposes.
	return rectHit(p, obj, hitMargin(margin, DefaultHitMargin))
}
