package canvas

import (
	"image"
	"log"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"sketchpad/internal/app"
	"sketchpad/internal/object"
	"sketchpad/internal/tool"
	"sketchpad/pkg/geometry"
)

const (
	minZoom  = 0.25
	maxZoom  = 8.0
	zoomStep = 1.25

	// cornerGrabSlack is how close to a bounds corner a select-drag must
	// start to count as a resize instead of a move, in surface units.
	cornerGrabSlack = 8.0

	// fitTolerance is the largest mean residual accepted from the
	// least-squares transform fit; larger residuals mean the correspondences
	// are degenerate and the gesture step is skipped.
	fitTolerance = 0.5
)

// grabMode describes what a select-tool drag is manipulating.
type grabMode int

const (
	grabNone grabMode = iota
	grabPan
	grabMove
	grabResize
)

// Board is the interactive drawing widget. It forwards pointer gestures to
// the tool manager, renders the document through the software rasterizer,
// and keeps the in-progress object separate from the stored collection
// until the gesture finishes.
type Board struct {
	widget.BaseWidget

	state *app.State
	tools *tool.Manager

	raster *fynecanvas.Raster
	zoom   float64
	pan    geometry.Point2D

	active   *object.Object
	dragging bool
	lastPos  geometry.Point2D

	// select-gesture state, valid while dragging with the select tool
	grabbed    *object.Object
	mode       grabMode
	grabStart  geometry.Point2D
	grabRect   geometry.Rect
	grabFixed  geometry.Point2D
	grabBase   geometry.AffineTransform
	grabCenter geometry.Point2D

	// measure answers MeasureText queries between frames, when no raster
	// surface is live.
	measure *RasterSurface

	onEditText func(obj *object.Object)
	onZoom     func(zoom float64)
}

var _ tool.Context = (*Board)(nil)

// NewBoard creates a drawing board over the given document and tool set.
func NewBoard(state *app.State, tools *tool.Manager) *Board {
	b := &Board{
		state:   state,
		tools:   tools,
		zoom:    1,
		measure: NewRasterSurface(1, 1),
	}
	b.raster = fynecanvas.NewRaster(b.draw)
	b.raster.ScaleMode = fynecanvas.ImageScalePixels
	b.ExtendBaseWidget(b)

	state.On(app.EventObjectsChanged, func(interface{}) { b.Refresh() })
	state.On(app.EventSelectionChanged, func(interface{}) { b.Refresh() })
	return b
}

// OnEditText sets the callback invoked when a finished gesture asks for
// text entry on the returned object.
func (b *Board) OnEditText(callback func(obj *object.Object)) {
	b.onEditText = callback
}

// OnZoom sets a callback for zoom changes.
func (b *Board) OnZoom(callback func(zoom float64)) {
	b.onZoom = callback
}

// GenerateID implements tool.Context.
func (b *Board) GenerateID() string { return uuid.NewString() }

// Options implements tool.Context.
func (b *Board) Options() object.Options { return b.state.Options() }

// Surface implements tool.Context.
func (b *Board) Surface() tool.Surface { return b.measure }

// RedrawCanvas implements tool.Context.
func (b *Board) RedrawCanvas() { b.Refresh() }

// SaveState implements tool.Context.
func (b *Board) SaveState() { b.state.Checkpoint() }

// Zoom returns the current zoom factor.
func (b *Board) Zoom() float64 { return b.zoom }

// SetZoom clamps and applies a zoom factor.
func (b *Board) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	} else if zoom > maxZoom {
		zoom = maxZoom
	}
	b.zoom = zoom
	b.Refresh()
	if b.onZoom != nil {
		b.onZoom(zoom)
	}
}

// ZoomIn increases the zoom level one step.
func (b *Board) ZoomIn() { b.SetZoom(b.zoom * zoomStep) }

// ZoomOut decreases the zoom level one step.
func (b *Board) ZoomOut() { b.SetZoom(b.zoom / zoomStep) }

// Pan returns the surface coordinate shown at the widget's top-left corner.
func (b *Board) Pan() geometry.Point2D { return b.pan }

// SetPan moves the view so that p is the surface coordinate at the widget's
// top-left corner.
func (b *Board) SetPan(p geometry.Point2D) {
	b.pan = p
	b.Refresh()
}

// PanBy shifts the view by a delta in surface units.
func (b *Board) PanBy(dx, dy float64) {
	b.SetPan(geometry.Point2D{X: b.pan.X + dx, Y: b.pan.Y + dy})
}

// Scrolled zooms with the vertical wheel and pans with the horizontal one.
func (b *Board) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DX != 0 {
		b.PanBy(-float64(ev.Scrolled.DX)/b.zoom, 0)
	}
	if ev.Scrolled.DY > 0 {
		b.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		b.ZoomOut()
	}
}

// toSurface converts a widget position to surface coordinates, undoing zoom
// and pan.
func (b *Board) toSurface(pos fyne.Position) geometry.Point2D {
	return geometry.Point2D{
		X: float64(pos.X)/b.zoom + b.pan.X,
		Y: float64(pos.Y)/b.zoom + b.pan.Y,
	}
}

// Tapped handles a click without movement: selection for the select tool, a
// full press-release gesture for everything else.
func (b *Board) Tapped(ev *fyne.PointEvent) {
	p := b.toSurface(ev.Position)

	if b.tools.CurrentType() == object.TypeSelect {
		b.selectAt(p)
		return
	}
	// Drag-only tools ignore bare clicks; a zero-extent rectangle or
	// eraser dot is never what the user meant.
	if b.tools.RequiresDrag() {
		return
	}

	obj := b.tools.StartDrawing(p, b)
	b.finishGesture(p, obj)
}

// Dragged feeds drag motion into the current tool's gesture. With the
// select tool a drag moves or resizes the object under the press point, or
// pans the view when the press hits nothing.
func (b *Board) Dragged(ev *fyne.DragEvent) {
	p := b.toSurface(ev.Position)
	b.lastPos = p

	if b.tools.CurrentType() == object.TypeSelect {
		if !b.dragging {
			b.dragging = true
			start := geometry.Point2D{
				X: p.X - float64(ev.Dragged.DX)/b.zoom,
				Y: p.Y - float64(ev.Dragged.DY)/b.zoom,
			}
			b.beginSelectDrag(start)
		}
		b.continueSelectDrag(p, ev)
		return
	}

	if !b.dragging {
		b.dragging = true
		start := geometry.Point2D{
			X: p.X - float64(ev.Dragged.DX)/b.zoom,
			Y: p.Y - float64(ev.Dragged.DY)/b.zoom,
		}
		b.active = b.tools.StartDrawing(start, b)
	}
	if b.active != nil {
		b.tools.ContinueDrawing(p, b.active, b)
	}
}

// DragEnd completes the gesture at the last drag position.
func (b *Board) DragEnd() {
	if !b.dragging {
		return
	}
	b.dragging = false

	if b.tools.CurrentType() == object.TypeSelect {
		if b.grabbed != nil && b.mode != grabPan {
			b.state.Checkpoint()
		}
		b.grabbed = nil
		b.mode = grabNone
		return
	}

	obj := b.active
	b.active = nil
	b.finishGesture(b.lastPos, obj)
}

// beginSelectDrag decides what a select-tool drag starting at p operates on:
// a corner resize, a move, or a view pan.
func (b *Board) beginSelectDrag(start geometry.Point2D) {
	b.grabStart = start
	b.mode = grabPan

	obj := b.selectAt(start)
	if obj == nil {
		return
	}

	b.grabbed = obj
	b.grabRect = obj.Bounds
	b.grabCenter = obj.AnchorCentroid()
	b.grabBase = geometry.Identity()
	if obj.Transform != nil {
		b.grabBase = obj.Transform.Matrix(b.grabCenter)
	}

	b.mode = grabMove
	for _, corner := range obj.Bounds.Corners() {
		if start.Distance(corner) <= cornerGrabSlack {
			b.mode = grabResize
			b.grabFixed = geometry.Point2D{
				X: obj.Bounds.X + obj.Bounds.Width - (corner.X - obj.Bounds.X),
				Y: obj.Bounds.Y + obj.Bounds.Height - (corner.Y - obj.Bounds.Y),
			}
			break
		}
	}
}

func (b *Board) continueSelectDrag(p geometry.Point2D, ev *fyne.DragEvent) {
	switch b.mode {
	case grabPan:
		b.PanBy(-float64(ev.Dragged.DX)/b.zoom, -float64(ev.Dragged.DY)/b.zoom)
	case grabMove:
		delta := p.Sub(b.grabStart)
		src := b.grabRect.Corners()
		dst := make([]geometry.Point2D, len(src))
		for i, c := range src {
			dst[i] = c.Add(delta)
		}
		b.applyGrabFit(src, dst, true)
	case grabResize:
		next := geometry.RectFromPoints(b.grabFixed, p)
		if next.IsEmpty() {
			return
		}
		b.applyGrabFit(b.grabRect.Corners(), next.Corners(), false)
	}
}

// applyGrabFit derives the transform mapping the grabbed object's current
// corner positions onto their dragged targets, composes it with the
// transform the object already carried, and stores the result.
func (b *Board) applyGrabFit(src, dst []geometry.Point2D, rigid bool) {
	var (
		tr  geometry.AffineTransform
		err error
	)
	if rigid {
		tr, err = geometry.FitRigidLeastSquares(src, dst)
	} else {
		tr, err = geometry.FitAffineLeastSquares(src, dst)
	}
	if err != nil {
		log.Printf("canvas: transform fit: %v", err)
		return
	}
	if geometry.FitError(src, dst, tr) > fitTolerance {
		log.Printf("canvas: transform fit rejected, correspondences degenerate")
		return
	}

	t := object.TransformFromAffine(tr.Compose(b.grabBase), b.grabCenter)
	b.grabbed.Transform = &t
	b.grabbed.Bounds = b.tools.ObjectBounds(b.grabbed, b.measure)
	b.Refresh()
}

func (b *Board) finishGesture(p geometry.Point2D, obj *object.Object) {
	done, action := b.tools.FinishDrawing(p, obj, b)
	switch action {
	case tool.ActionCreated:
		b.state.AddObject(done)
	case tool.ActionEditText:
		b.state.AddObject(done)
		if b.onEditText != nil {
			b.onEditText(done)
		}
	}
	b.Refresh()
}

// selectAt picks and returns the topmost object under p, or clears the
// selection and returns nil when nothing is hit.
func (b *Board) selectAt(p geometry.Point2D) *object.Object {
	objects := b.state.Objects()
	for i := len(objects) - 1; i >= 0; i-- {
		if b.tools.HitTest(p, objects[i], 0) {
			b.state.ClearSelection()
			b.state.Select(objects[i].ID)
			return objects[i]
		}
	}
	b.state.ClearSelection()
	return nil
}

// draw rasterizes the document for the fyne raster at the given pixel size.
func (b *Board) draw(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	surface := NewViewRasterSurface(w, h, b.zoom, b.pan)

	indicator := b.tools.Tool(object.TypeSelect)
	for _, obj := range b.state.Objects() {
		b.tools.RenderObject(obj, surface)
		if b.state.IsSelected(obj.ID) && indicator != nil {
			indicator.Render(obj, surface)
		}
	}
	if b.active != nil {
		b.tools.RenderObject(b.active, surface)
	}
	return surface.Image()
}

// Refresh repaints the board.
func (b *Board) Refresh() {
	if b.raster != nil {
		b.raster.Refresh()
	}
	b.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.raster)
}

// MinSize implements fyne.Widget.
func (b *Board) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}
