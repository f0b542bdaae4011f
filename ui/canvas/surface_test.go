package canvas

import (
	"testing"

	"sketchpad/internal/object"
	"sketchpad/pkg/colorutil"
	"sketchpad/pkg/geometry"
)

func pt(x, y float64) geometry.Point2D { return geometry.Point2D{X: x, Y: y} }

func TestSurfaceStartsWhite(t *testing.T) {
	s := NewRasterSurface(10, 10)
	if got := s.Image().RGBAAt(5, 5); got != colorutil.White {
		t.Errorf("background = %v, want white", got)
	}
}

func TestStrokeLinePixels(t *testing.T) {
	s := NewRasterSurface(20, 20)
	s.SetStroke("#000000", 1)
	s.StrokeLine(pt(2, 10), pt(17, 10))

	for x := 2; x <= 17; x++ {
		if got := s.Image().RGBAAt(x, 10); got != colorutil.Black {
			t.Fatalf("pixel (%d,10) = %v, want black", x, got)
		}
	}
	if got := s.Image().RGBAAt(10, 3); got != colorutil.White {
		t.Errorf("off-line pixel painted: %v", got)
	}
}

func TestStrokeWidth(t *testing.T) {
	s := NewRasterSurface(20, 20)
	s.SetStroke("#000000", 5)
	s.StrokeLine(pt(2, 10), pt(17, 10))

	if got := s.Image().RGBAAt(10, 8); got != colorutil.Black {
		t.Errorf("thick stroke should cover (10,8), got %v", got)
	}
	if got := s.Image().RGBAAt(10, 16); got != colorutil.White {
		t.Errorf("pixel outside stroke painted: %v", got)
	}
}

func TestDashPatternLeavesGaps(t *testing.T) {
	s := NewRasterSurface(60, 10)
	s.SetStroke("#000000", 1)
	s.SetDash([]float64{4, 4})
	s.StrokeLine(pt(0, 5), pt(59, 5))

	painted, gaps := 0, 0
	for x := 0; x < 60; x++ {
		if s.Image().RGBAAt(x, 5) == colorutil.Black {
			painted++
		} else {
			gaps++
		}
	}
	if painted == 0 || gaps == 0 {
		t.Errorf("dashed line: %d painted, %d gaps, want both nonzero", painted, gaps)
	}
}

func TestFillRect(t *testing.T) {
	s := NewRasterSurface(20, 20)
	s.SetFill("#e03131")
	s.FillRect(geometry.NewRect(5, 5, 10, 10))

	if got := s.Image().RGBAAt(10, 10); got != colorutil.Red {
		t.Errorf("interior = %v, want red", got)
	}
	if got := s.Image().RGBAAt(2, 2); got != colorutil.White {
		t.Errorf("exterior painted: %v", got)
	}
}

func TestFillPolygonTriangle(t *testing.T) {
	s := NewRasterSurface(30, 30)
	s.SetFill("#000000")
	s.FillPolygon([]geometry.Point2D{{X: 15, Y: 2}, {X: 28, Y: 28}, {X: 2, Y: 28}})

	if got := s.Image().RGBAAt(15, 20); got != colorutil.Black {
		t.Errorf("triangle interior = %v, want black", got)
	}
	if got := s.Image().RGBAAt(3, 5); got != colorutil.White {
		t.Errorf("triangle exterior painted: %v", got)
	}
}

func TestEllipseRing(t *testing.T) {
	s := NewRasterSurface(40, 40)
	s.SetStroke("#000000", 2)
	s.StrokeEllipse(geometry.NewRect(5, 5, 30, 30))

	// On the ring: rightmost point of the circle.
	if got := s.Image().RGBAAt(35, 20); got != colorutil.Black {
		t.Errorf("ring pixel = %v, want black", got)
	}
	// Center stays empty for an outlined ellipse.
	if got := s.Image().RGBAAt(20, 20); got != colorutil.White {
		t.Errorf("center painted: %v", got)
	}
}

func TestOpacityBlends(t *testing.T) {
	s := NewRasterSurface(10, 10)
	s.SetOpacity(0.5)
	s.SetFill("#000000")
	s.FillRect(geometry.NewRect(0, 0, 10, 10))

	got := s.Image().RGBAAt(5, 5)
	if got == colorutil.Black || got == colorutil.White {
		t.Errorf("translucent fill = %v, want a gray blend", got)
	}
}

func TestPushPopStyle(t *testing.T) {
	s := NewRasterSurface(10, 10)
	s.SetStroke("#e03131", 3)

	s.PushStyle()
	s.SetStroke("#1971c2", 1)
	s.SetDash([]float64{2, 2})
	s.PopStyle()

	if s.cur.strokeColor != colorutil.Red || s.cur.strokeWidth != 3 {
		t.Errorf("style not restored: %+v", s.cur)
	}
	if s.cur.dash != nil {
		t.Error("dash should not survive pop")
	}
}

func TestScaleAppliesToGeometry(t *testing.T) {
	s := NewScaledRasterSurface(40, 40, 2)
	s.SetFill("#000000")
	s.FillRect(geometry.NewRect(5, 5, 10, 10))

	// Surface coords (5..15) map to pixels (10..30) at scale 2.
	if got := s.Image().RGBAAt(20, 20); got != colorutil.Black {
		t.Errorf("scaled interior = %v, want black", got)
	}
	if got := s.Image().RGBAAt(5, 5); got != colorutil.White {
		t.Errorf("pixel before scaled origin painted: %v", got)
	}
}

func TestDrawAndMeasureText(t *testing.T) {
	s := NewRasterSurface(100, 20)
	opts := object.DefaultOptions()

	w := s.MeasureText("hello", opts)
	if w <= 0 {
		t.Fatalf("measured width = %v", w)
	}
	if w2 := s.MeasureText("hello world", opts); w2 <= w {
		t.Errorf("longer text should measure wider: %v vs %v", w2, w)
	}

	s.DrawText("hello", pt(2, 2), opts)
	found := false
	for y := 0; y < 20 && !found; y++ {
		for x := 0; x < 100; x++ {
			if s.Image().RGBAAt(x, y) == colorutil.Black {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("DrawText painted nothing")
	}
}

func TestShadowOffset(t *testing.T) {
	s := NewRasterSurface(40, 40)
	s.SetShadow("#000000", 0, 5, 5)
	s.SetStroke("#e03131", 1)
	s.StrokeLine(pt(5, 5), pt(20, 5))

	// Main stroke present.
	if got := s.Image().RGBAAt(10, 5); got != colorutil.Red {
		t.Errorf("main stroke = %v, want red", got)
	}
	// Shadow pass painted something at the offset row.
	shadow := s.Image().RGBAAt(15, 10)
	if shadow == colorutil.White {
		t.Error("shadow pass painted nothing at the offset")
	}
}

func TestBoundsClipping(t *testing.T) {
	s := NewRasterSurface(10, 10)
	s.SetStroke("#000000", 3)
	// Entirely out of range, must not panic.
	s.StrokeLine(pt(-50, -50), pt(-20, -20))
	s.FillPolygon([]geometry.Point2D{{X: 100, Y: 100}, {X: 120, Y: 100}, {X: 110, Y: 130}})

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if got := s.Image().RGBAAt(x, y); got != colorutil.White {
				t.Fatalf("out-of-range draw painted (%d,%d): %v", x, y, got)
			}
		}
	}
}

func TestStrokePathSinglePointDot(t *testing.T) {
	s := NewRasterSurface(10, 10)
	s.SetStroke("#000000", 3)
	s.StrokePath([]geometry.Point2D{{X: 5, Y: 5}})

	if got := s.Image().RGBAAt(5, 5); got != colorutil.Black {
		t.Errorf("single-point path should leave a dot, got %v", got)
	}
}

func TestViewOriginShiftsPixels(t *testing.T) {
	s := NewViewRasterSurface(20, 20, 1, geometry.Point2D{X: 100, Y: 50})
	s.SetStroke("#000000", 1)
	s.StrokeLine(geometry.Point2D{X: 105, Y: 55}, geometry.Point2D{X: 110, Y: 55})

	if got := s.Image().RGBAAt(7, 5); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("pixel inside the panned view = %v, want black", got)
	}
	if got := s.Image().RGBAAt(7, 12); got.R != 255 {
		t.Errorf("pixel off the line = %v, want white", got)
	}
}
