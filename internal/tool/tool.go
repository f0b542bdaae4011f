// Package tool implements the drawing tools and the manager that dispatches
// pointer lifecycle events to them. Every tool satisfies one contract; the
// manager routes gesture events to the currently selected tool and routes
// per-object operations (render, hit-test, bounds) to the tool owning the
// object's type.
package tool

import (
	"sketchpad/internal/object"
	"sketchpad/pkg/geometry"
)

// DefaultHitMargin is the hit-test slack, in surface units, used when the
// caller passes a non-positive margin.
const DefaultHitMargin = 5.0

// FinishAction tells the host what to do after a gesture completes.
type FinishAction int

// Finish actions returned by FinishDrawing.
const (
	// ActionNone: no persistent object was produced.
	ActionNone FinishAction = iota
	// ActionCreated: the returned object should be stored.
	ActionCreated
	// ActionEditText: the returned object should be stored and the host
	// should open its text editor on it.
	ActionEditText
)

// String returns a readable name for logging.
func (a FinishAction) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionCreated:
		return "created"
	case ActionEditText:
		return "edit-text"
	default:
		return "unknown"
	}
}

// Surface is the drawing backend a tool renders onto. Implementations must
// treat style setters as scoped: PushStyle/PopStyle bracket every render so
// one tool's style never leaks into the next call.
type Surface interface {
	PushStyle()
	PopStyle()

	SetStroke(color string, width float64)
	SetFill(color string)
	SetOpacity(alpha float64)
	SetDash(pattern []float64)
	SetShadow(color string, blur, offsetX, offsetY float64)

	StrokeLine(a, b geometry.Point2D)
	StrokePath(points []geometry.Point2D)
	StrokePolygon(points []geometry.Point2D)
	FillPolygon(points []geometry.Point2D)
	StrokeRect(r geometry.Rect)
	FillRect(r geometry.Rect)
	StrokeEllipse(r geometry.Rect)
	FillEllipse(r geometry.Rect)

	DrawText(text string, origin geometry.Point2D, opts object.Options)
	// MeasureText returns the rendered width of text under the given font
	// options.
	MeasureText(text string, opts object.Options) float64
}

// Context is the collaborator handle passed into every lifecycle call. It
// gives tools access to the drawing surface, the ambient options to snapshot
// at creation time, and host services.
type Context interface {
	// GenerateID produces a globally unique object identifier.
	GenerateID() string
	// Options returns the ambient style configuration to snapshot.
	Options() object.Options
	// Surface returns the drawing surface.
	Surface() Surface
	// RedrawCanvas asks the host to repaint the full object collection.
	RedrawCanvas()
	// SaveState asks the host to checkpoint the object collection for undo.
	SaveState()
}

// Descriptor describes a tool for building a UI palette.
type Descriptor struct {
	Type         object.Type `json:"type"`
	Name         string      `json:"name"`
	Icon         string      `json:"icon"`
	Title        string      `json:"title"`
	RequiresDrag bool        `json:"requires_drag"`
}

// Tool is the contract every drawing tool satisfies.
//
// For one gesture the host guarantees the call order StartDrawing, zero or
// more ContinueDrawing/UpdateDrawing, FinishDrawing. ContinueDrawing is the
// canonical mid-gesture entry point; UpdateDrawing is an alias that returns
// the mutated object for callers that want it back directly.
type Tool interface {
	// Type is the object type this tool owns.
	Type() object.Type
	// Descriptor returns the palette entry for this tool.
	Descriptor() Descriptor
	// RequiresDrag reports whether the tool's shape needs two distinct
	// points or a continuous path to be meaningful.
	RequiresDrag() bool

	// StartDrawing begins a gesture. Tools that do not create persistent
	// objects on press (select) return nil.
	StartDrawing(p geometry.Point2D, ctx Context) *object.Object
	// ContinueDrawing updates obj in place for an intermediate pointer
	// position. Skipped calls must not corrupt final geometry.
	ContinueDrawing(p geometry.Point2D, obj *object.Object, ctx Context)
	// UpdateDrawing is ContinueDrawing returning the mutated object.
	UpdateDrawing(p geometry.Point2D, obj *object.Object, ctx Context) *object.Object
	// FinishDrawing completes the gesture: the final position is recorded,
	// bounds are recomputed from final geometry, and the object is returned
	// ready to render and hit-test.
	FinishDrawing(p geometry.Point2D, obj *object.Object, ctx Context) (*object.Object, FinishAction)

	// Render draws a finished or in-progress object onto the surface using
	// only the object's own option snapshot.
	Render(obj *object.Object, surface Surface)
	// HitTest reports whether p lies within margin of the object's visible
	// geometry. Degenerate shapes test false. A non-positive margin selects
	// the tool default.
	HitTest(p geometry.Point2D, obj *object.Object, margin float64) bool
	// Bounds recomputes the bounding rectangle from current geometry,
	// including stroke and shape specific padding.
	Bounds(obj *object.Object, surface Surface) geometry.Rect
}

// hitMargin normalizes the margin argument of HitTest.
func hitMargin(margin, fallback float64) float64 {
	if margin > 0 {
		return margin
	}
	return fallback
}
