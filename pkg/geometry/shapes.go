package geometry

import "math"

// DistanceToSegment returns the shortest distance from p to the line segment
// a-b. A zero-length segment degenerates to the plain point distance, so the
// function never divides by zero.
func DistanceToSegment(p, a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Distance(a)
	}

	// Project p onto the infinite line, then clamp to the segment.
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := Point2D{X: a.X + t*dx, Y: a.Y + t*dy}
	return p.Distance(closest)
}

// BoundingBox computes the axis-aligned bounding box of a set of points.
// Returns the zero Rect for an empty set.
func BoundingBox(points []Point2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ArrowHeadLength returns the length of an arrow head for a shaft of the
// given length: a third of the shaft, capped at 20 units.
func ArrowHeadLength(shaftLength float64) float64 {
	return math.Min(20, shaftLength/3)
}

// ArrowHead constructs the filled head triangle for an arrow from start to
// end. The head sits at the end anchor, pointing along the shaft, with a
// half-width of 0.6 times the head length. Returns nil when the shaft has
// zero length, since no direction can be derived.
func ArrowHead(start, end Point2D) []Point2D {
	dx := end.X - start.X
	dy := end.Y - start.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return nil
	}

	// Unit direction along the shaft and its perpendicular.
	ux := dx / length
	uy := dy / length
	headLen := ArrowHeadLength(length)
	halfWidth := 0.6 * headLen

	base := Point2D{X: end.X - ux*headLen, Y: end.Y - uy*headLen}
	return []Point2D{
		end,
		{X: base.X - uy*halfWidth, Y: base.Y + ux*halfWidth},
		{X: base.X + uy*halfWidth, Y: base.Y - ux*halfWidth},
	}
}

// StarPolygon generates a 5-spike star inscribed in the given rectangle.
// Spike tips lie on the outer radius, the valleys between them on an inner
// radius of half the outer. The first tip points straight up.
func StarPolygon(bounds Rect) []Point2D {
	const spikes = 5
	center := bounds.Center()
	outer := math.Min(bounds.Width, bounds.Height) / 2
	inner := outer * 0.5

	points := make([]Point2D, 0, spikes*2)
	for i := 0; i < spikes*2; i++ {
		radius := outer
		if i%2 == 1 {
			radius = inner
		}
		angle := float64(i)*math.Pi/spikes - math.Pi/2
		points = append(points, Point2D{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		})
	}
	return points
}

// TrianglePolygon generates an isoceles triangle from a bounding rectangle:
// apex at the top-middle, base along the bottom edge.
func TrianglePolygon(bounds Rect) []Point2D {
	return []Point2D{
		{X: bounds.X + bounds.Width/2, Y: bounds.Y},
		{X: bounds.X + bounds.Width, Y: bounds.Y + bounds.Height},
		{X: bounds.X, Y: bounds.Y + bounds.Height},
	}
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// DistanceToPolygon returns the shortest distance from p to the polygon's
// outline, or 0 if p lies inside the polygon.
func DistanceToPolygon(p Point2D, polygon []Point2D) float64 {
	if len(polygon) == 0 {
		return math.Inf(1)
	}
	if PointInPolygon(p, polygon) {
		return 0
	}

	best := math.Inf(1)
	n := len(polygon)
	for i := 0; i < n; i++ {
		d := DistanceToSegment(p, polygon[i], polygon[(i+1)%n])
		if d < best {
			best = d
		}
	}
	return best
}

// Centroid computes the centroid (average position) of a set of points.
func Centroid(points []Point2D) Point2D {
	if len(points) == 0 {
		return Point2D{}
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return Point2D{X: sumX / n, Y: sumY / n}
}
