package canvas

import (
	"image/color"
	"math"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"sketchpad/internal/app"
	"sketchpad/internal/object"
	"sketchpad/internal/tool"
	"sketchpad/pkg/geometry"
)

func newTestBoard(t *testing.T) (*Board, *app.State, *tool.Manager) {
	t.Helper()
	test.NewApp()
	state := app.NewState()
	tools := tool.NewDefaultManager()
	return NewBoard(state, tools), state, tools
}

func drag(b *Board, x, y, dx, dy float32) {
	b.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Dragged:    fyne.Delta{DX: dx, DY: dy},
	})
}

// dragRect draws a rectangle from (10,10) to (60,40) through pointer events
// and returns the stored object. With the default stroke width its bounds
// are {9 9 52 32}.
func dragRect(t *testing.T, b *Board, state *app.State, tools *tool.Manager) *object.Object {
	t.Helper()
	tools.SetCurrentTool(object.TypeRectangle)
	drag(b, 15, 15, 5, 5)
	drag(b, 60, 40, 45, 25)
	b.DragEnd()

	objs := state.Objects()
	if len(objs) != 1 {
		t.Fatalf("object count after rectangle drag = %d, want 1", len(objs))
	}
	return objs[0]
}

func closeRect(a, b geometry.Rect) bool {
	const eps = 1e-6
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.Width-b.Width) < eps && math.Abs(a.Height-b.Height) < eps
}

func TestBoardRectangleDrag(t *testing.T) {
	b, state, tools := newTestBoard(t)
	obj := dragRect(t, b, state, tools)

	if !closeRect(obj.Bounds, geometry.NewRect(9, 9, 52, 32)) {
		t.Errorf("bounds = %+v, want {9 9 52 32}", obj.Bounds)
	}
}

func TestBoardSelectDragMovesObject(t *testing.T) {
	b, state, tools := newTestBoard(t)
	obj := dragRect(t, b, state, tools)

	tools.SetCurrentTool(object.TypeSelect)
	// Press on the top edge at (30,10), drag by (40,25).
	drag(b, 32, 10, 2, 0)
	drag(b, 70, 35, 38, 25)
	b.DragEnd()

	if obj.Transform == nil {
		t.Fatal("select drag should record a transform on the object")
	}
	if math.Abs(obj.Transform.TranslateX-40) > 1e-6 ||
		math.Abs(obj.Transform.TranslateY-25) > 1e-6 {
		t.Errorf("translation = (%v, %v), want (40, 25)",
			obj.Transform.TranslateX, obj.Transform.TranslateY)
	}
	if math.Abs(obj.Transform.Rotation) > 1e-6 {
		t.Errorf("rotation = %v, want 0", obj.Transform.Rotation)
	}
	if !closeRect(obj.Bounds, geometry.NewRect(49, 34, 52, 32)) {
		t.Errorf("moved bounds = %+v, want {49 34 52 32}", obj.Bounds)
	}
	if !tools.HitTest(geometry.Point2D{X: 70, Y: 35}, obj, 0) {
		t.Error("moved rectangle should hit at its new edge")
	}
	if tools.HitTest(geometry.Point2D{X: 30, Y: 10}, obj, 0) {
		t.Error("moved rectangle should not hit at its old edge")
	}
	if !state.IsSelected(obj.ID) {
		t.Error("dragged object should be selected")
	}
}

func TestBoardSelectDragResizesFromCorner(t *testing.T) {
	b, state, tools := newTestBoard(t)
	obj := dragRect(t, b, state, tools)

	tools.SetCurrentTool(object.TypeSelect)
	// Press on the bottom-right anchor, drag the corner out to double the
	// size; the opposite corner stays fixed.
	drag(b, 61, 41, 1, 1)
	drag(b, 113, 73, 52, 32)
	b.DragEnd()

	if obj.Transform == nil {
		t.Fatal("resize drag should record a transform")
	}
	if math.Abs(obj.Transform.ScaleX-2) > 1e-6 || math.Abs(obj.Transform.ScaleY-2) > 1e-6 {
		t.Errorf("scale = (%v, %v), want (2, 2)",
			obj.Transform.ScaleX, obj.Transform.ScaleY)
	}
	if !closeRect(obj.Bounds, geometry.NewRect(10, 10, 102, 62)) {
		t.Errorf("resized bounds = %+v, want {10 10 102 62}", obj.Bounds)
	}
}

func TestBoardSelectDragOnEmptySpacePans(t *testing.T) {
	b, state, tools := newTestBoard(t)
	dragRect(t, b, state, tools)

	tools.SetCurrentTool(object.TypeSelect)
	drag(b, 200, 80, 10, 0)
	drag(b, 200, 85, 0, 5)
	b.DragEnd()

	if got := b.Pan(); math.Abs(got.X+10) > 1e-6 || math.Abs(got.Y+5) > 1e-6 {
		t.Errorf("pan = %v, want (-10, -5)", got)
	}
	if got := b.toSurface(fyne.NewPos(0, 0)); math.Abs(got.X+10) > 1e-6 || math.Abs(got.Y+5) > 1e-6 {
		t.Errorf("top-left unprojects to %v, want the pan offset", got)
	}
	if len(state.SelectedIDs()) != 0 {
		t.Error("panning from empty space should clear the selection")
	}
}

func TestBoardScrollPansHorizontally(t *testing.T) {
	b, _, _ := newTestBoard(t)
	b.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DX: 10}})

	if got := b.Pan(); math.Abs(got.X+10) > 1e-6 {
		t.Errorf("pan after horizontal scroll = %v, want X -10", got)
	}
}

func TestBoardDrawsSelectionIndicator(t *testing.T) {
	b, state, tools := newTestBoard(t)
	obj := dragRect(t, b, state, tools)
	state.Select(obj.ID)

	img := b.draw(150, 100)
	want := color.RGBA{R: 0x4a, G: 0x90, B: 0xd9, A: 255}
	found := false
	for y := 0; y < 100 && !found; y++ {
		for x := 0; x < 150; x++ {
			if img.At(x, y) == want {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("selection indicator color not rendered")
	}
}
