package geometry

import (
	"math"
	"testing"
)

func closeTo(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestDistanceToSegment(t *testing.T) {
	a := Point2D{X: 0, Y: 0}
	b := Point2D{X: 10, Y: 0}

	cases := []struct {
		name string
		p    Point2D
		want float64
	}{
		{"perpendicular foot inside", Point2D{X: 5, Y: 3}, 3},
		{"on the segment", Point2D{X: 7, Y: 0}, 0},
		{"beyond start clamps to endpoint", Point2D{X: -3, Y: 4}, 5},
		{"beyond end clamps to endpoint", Point2D{X: 13, Y: 4}, 5},
		{"at an endpoint", Point2D{X: 0, Y: 0}, 0},
	}
	for _, tc := range cases {
		if got := DistanceToSegment(tc.p, a, b); !closeTo(got, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDistanceToSegmentZeroLength(t *testing.T) {
	a := Point2D{X: 5, Y: 5}
	if got := DistanceToSegment(Point2D{X: 8, Y: 9}, a, a); !closeTo(got, 5) {
		t.Errorf("zero-length segment: got %v, want point distance 5", got)
	}
}

func TestRectFromPointsNormalizes(t *testing.T) {
	want := NewRect(1, 2, 3, 4)
	pairs := [][2]Point2D{
		{{X: 1, Y: 2}, {X: 4, Y: 6}},
		{{X: 4, Y: 6}, {X: 1, Y: 2}},
		{{X: 1, Y: 6}, {X: 4, Y: 2}},
		{{X: 4, Y: 2}, {X: 1, Y: 6}},
	}
	for i, pair := range pairs {
		if got := RectFromPoints(pair[0], pair[1]); got != want {
			t.Errorf("pair %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestRectOperations(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	if !r.Contains(Point2D{X: 10, Y: 10}) {
		t.Error("boundary point should be contained")
	}
	if r.Contains(Point2D{X: 10.1, Y: 5}) {
		t.Error("outside point must not be contained")
	}
	if got := r.Center(); got != (Point2D{X: 5, Y: 5}) {
		t.Errorf("center = %v", got)
	}
	if got := r.Pad(2); got != NewRect(-2, -2, 14, 14) {
		t.Errorf("pad = %+v", got)
	}
	if got := r.Union(NewRect(5, 5, 20, 2)); got != NewRect(0, 0, 25, 10) {
		t.Errorf("union = %+v", got)
	}
	if !r.Intersects(NewRect(9, 9, 5, 5)) {
		t.Error("overlapping rects should intersect")
	}
	if r.Intersects(NewRect(20, 20, 5, 5)) {
		t.Error("disjoint rects must not intersect")
	}
	if !NewRect(3, 3, 0, 5).IsEmpty() {
		t.Error("zero-width rect is empty")
	}
}

func TestBoundingBox(t *testing.T) {
	points := []Point2D{{X: 3, Y: 7}, {X: -1, Y: 2}, {X: 5, Y: 4}}
	if got := BoundingBox(points); got != NewRect(-1, 2, 6, 5) {
		t.Errorf("bounding box = %+v", got)
	}
	if got := BoundingBox(nil); got != (Rect{}) {
		t.Errorf("empty set should give zero rect, got %+v", got)
	}
	if got := BoundingBox([]Point2D{{X: 2, Y: 3}}); got != NewRect(2, 3, 0, 0) {
		t.Errorf("single point box = %+v", got)
	}
}

func TestArrowHeadLength(t *testing.T) {
	if got := ArrowHeadLength(30); got != 10 {
		t.Errorf("short shaft: got %v, want 10", got)
	}
	if got := ArrowHeadLength(300); got != 20 {
		t.Errorf("long shaft should cap at 20, got %v", got)
	}
}

func TestArrowHead(t *testing.T) {
	head := ArrowHead(Point2D{X: 0, Y: 0}, Point2D{X: 30, Y: 0})
	if len(head) != 3 {
		t.Fatalf("head has %d points, want 3", len(head))
	}
	if head[0] != (Point2D{X: 30, Y: 0}) {
		t.Errorf("tip = %v, want end anchor", head[0])
	}
	// Head length 10, half-width 6: base corners at x=20, y=±6.
	for _, corner := range head[1:] {
		if !closeTo(corner.X, 20) || !closeTo(math.Abs(corner.Y), 6) {
			t.Errorf("base corner = %v, want x=20 y=±6", corner)
		}
	}

	if ArrowHead(Point2D{X: 5, Y: 5}, Point2D{X: 5, Y: 5}) != nil {
		t.Error("zero-length shaft must yield no head")
	}
}

func TestStarPolygon(t *testing.T) {
	star := StarPolygon(NewRect(0, 0, 100, 100))
	if len(star) != 10 {
		t.Fatalf("star has %d vertices, want 10", len(star))
	}
	// First tip points straight up from the center.
	if !closeTo(star[0].X, 50) || !closeTo(star[0].Y, 0) {
		t.Errorf("first tip = %v, want (50, 0)", star[0])
	}
	center := Point2D{X: 50, Y: 50}
	for i, v := range star {
		want := 50.0
		if i%2 == 1 {
			want = 25
		}
		if got := v.Distance(center); !closeTo(got, want) {
			t.Errorf("vertex %d radius = %v, want %v", i, got, want)
		}
	}
}

func TestTrianglePolygon(t *testing.T) {
	tri := TrianglePolygon(NewRect(10, 20, 40, 60))
	want := []Point2D{{X: 30, Y: 20}, {X: 50, Y: 80}, {X: 10, Y: 80}}
	if len(tri) != 3 {
		t.Fatalf("triangle has %d vertices", len(tri))
	}
	for i := range want {
		if tri[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, tri[i], want[i])
		}
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if !PointInPolygon(Point2D{X: 5, Y: 5}, square) {
		t.Error("interior point should be inside")
	}
	if PointInPolygon(Point2D{X: 15, Y: 5}, square) {
		t.Error("exterior point must not be inside")
	}
	if PointInPolygon(Point2D{X: 1, Y: 1}, square[:2]) {
		t.Error("degenerate polygon must test false")
	}
}

func TestDistanceToPolygon(t *testing.T) {
	square := []Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if got := DistanceToPolygon(Point2D{X: 5, Y: 5}, square); got != 0 {
		t.Errorf("interior distance = %v, want 0", got)
	}
	if got := DistanceToPolygon(Point2D{X: 13, Y: 5}, square); !closeTo(got, 3) {
		t.Errorf("exterior distance = %v, want 3", got)
	}
}

func TestAffineTransformRoundTrip(t *testing.T) {
	m := Translation(5, -3).Compose(Rotation(math.Pi / 3)).Compose(Scale(2, 0.5))
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("transform should be invertible")
	}

	p := Point2D{X: 7, Y: 11}
	back := inv.Apply(m.Apply(p))
	if !closeTo(back.X, p.X) || !closeTo(back.Y, p.Y) {
		t.Errorf("round trip = %v, want %v", back, p)
	}

	if _, ok := Scale(0, 1).Inverse(); ok {
		t.Error("singular transform must not invert")
	}
}

func TestFitAffineLeastSquares(t *testing.T) {
	truth := Translation(12, -7).Compose(Rotation(0.3)).Compose(Scale(1.5, 1.5))
	src := []Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}, {X: 37, Y: 61}}
	dst := make([]Point2D, len(src))
	for i, p := range src {
		dst[i] = truth.Apply(p)
	}

	fit, err := FitAffineLeastSquares(src, dst)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if got := FitError(src, dst, fit); got > 1e-6 {
		t.Errorf("fit error = %v on exact data", got)
	}

	if _, err := FitAffineLeastSquares(src[:2], dst[:2]); err == nil {
		t.Error("fit with 2 points should fail")
	}
}

func TestFitRigidLeastSquares(t *testing.T) {
	truth := Translation(4, 9).Compose(Rotation(-0.8))
	src := []Point2D{{X: 0, Y: 0}, {X: 50, Y: 10}, {X: 20, Y: 80}}
	dst := make([]Point2D, len(src))
	for i, p := range src {
		dst[i] = truth.Apply(p)
	}

	fit, err := FitRigidLeastSquares(src, dst)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if got := FitError(src, dst, fit); got > 1e-6 {
		t.Errorf("rigid fit error = %v on exact data", got)
	}
	// The fitted matrix must stay a pure rotation.
	if det := fit.A*fit.D - fit.B*fit.C; !closeTo(det, 1) {
		t.Errorf("determinant = %v, want 1", det)
	}
}

func TestCentroid(t *testing.T) {
	points := []Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if got := Centroid(points); got != (Point2D{X: 5, Y: 5}) {
		t.Errorf("centroid = %v", got)
	}
	if got := Centroid(nil); got != (Point2D{}) {
		t.Errorf("empty centroid = %v, want origin", got)
	}
}

func TestRectCorners(t *testing.T) {
	got := NewRect(1, 2, 10, 20).Corners()
	want := []Point2D{{X: 1, Y: 2}, {X: 11, Y: 2}, {X: 11, Y: 22}, {X: 1, Y: 22}}
	if len(got) != len(want) {
		t.Fatalf("corners = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("corner[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
