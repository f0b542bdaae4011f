// Package object defines the drawing object model: the mutable record
// describing one user-created shape, in progress or finished.
package object

import (
	"math"

	"sketchpad/pkg/geometry"
)

// Type ties an object to exactly one tool implementation. The tool that owns
// a type defines the object's geometry, rendering, and hit-testing rules.
type Type string

// Known object/tool types.
const (
	TypePen           Type = "pen"
	TypeLine          Type = "line"
	TypeRectangle     Type = "rectangle"
	TypeHandDrawnRect Type = "hand-drawn-rectangle"
	TypeEllipse       Type = "ellipse"
	TypeArrow         Type = "arrow"
	TypeStar          Type = "star"
	TypeTriangle      Type = "triangle"
	TypeEraser        Type = "eraser"
	TypeHighlighter   Type = "highlighter"
	TypeText          Type = "text"
	TypeSelect        Type = "select"
)

// TextAlign selects the horizontal anchor for text objects.
type TextAlign string

// Text alignment values.
const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// Options is a snapshot of the drawing configuration. It is captured by
// value when an object is created; later changes to the ambient options must
// never alter already-created objects.
type Options struct {
	StrokeColor string    `json:"stroke_color"`
	FillColor   string    `json:"fill_color"`
	Filled      bool      `json:"filled"`
	StrokeWidth float64   `json:"stroke_width"`
	Opacity     float64   `json:"opacity"`
	DashPattern []float64 `json:"dash_pattern,omitempty"`

	ShadowColor   string  `json:"shadow_color,omitempty"`
	ShadowBlur    float64 `json:"shadow_blur,omitempty"`
	ShadowOffsetX float64 `json:"shadow_offset_x,omitempty"`
	ShadowOffsetY float64 `json:"shadow_offset_y,omitempty"`

	FontFamily string    `json:"font_family,omitempty"`
	FontSize   float64   `json:"font_size,omitempty"`
	FontBold   bool      `json:"font_bold,omitempty"`
	TextAlign  TextAlign `json:"text_align,omitempty"`
}

// DefaultOptions returns the options applied when nothing has been
// configured yet.
func DefaultOptions() Options {
	return Options{
		StrokeColor: "#000000",
		FillColor:   "#ffffff",
		StrokeWidth: 2,
		Opacity:     1,
		FontFamily:  "sans-serif",
		FontSize:    16,
		TextAlign:   AlignLeft,
	}
}

// Clone returns an independent copy of the options. The dash pattern slice
// is the only reference field and must not be shared between objects.
func (o Options) Clone() Options {
	if o.DashPattern != nil {
		dash := make([]float64, len(o.DashPattern))
		copy(dash, o.DashPattern)
		o.DashPattern = dash
	}
	return o
}

// Transform records a post-hoc rotation/scale/translation applied to a
// finished object. Tool creation logic never sets it; the select tool's
// move and resize gestures do.
type Transform struct {
	Rotation   float64 `json:"rotation"`
	ScaleX     float64 `json:"scale_x"`
	ScaleY     float64 `json:"scale_y"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
}

// Matrix returns the transform as an affine matrix, applied about the given
// center point: translate, then rotate and scale around the center.
func (t Transform) Matrix(center geometry.Point2D) geometry.AffineTransform {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}

	m := geometry.Translation(center.X+t.TranslateX, center.Y+t.TranslateY)
	m = m.Compose(geometry.Rotation(t.Rotation))
	m = m.Compose(geometry.Scale(sx, sy))
	return m.Compose(geometry.Translation(-center.X, -center.Y))
}

// TransformFromAffine decomposes a similarity transform (rotation, axis
// scale, translation) into the center-relative Transform record, such that
// the result's Matrix(center) reproduces m. Shear is not representable and
// is ignored.
func TransformFromAffine(m geometry.AffineTransform, center geometry.Point2D) Transform {
	o := m.Apply(geometry.Point2D{})
	ux := m.Apply(geometry.Point2D{X: 1})
	uy := m.Apply(geometry.Point2D{Y: 1})
	mc := m.Apply(center)

	return Transform{
		Rotation:   math.Atan2(ux.Y-o.Y, ux.X-o.X),
		ScaleX:     ux.Distance(o),
		ScaleY:     uy.Distance(o),
		TranslateX: mc.X - center.X,
		TranslateY: mc.Y - center.Y,
	}
}

// Object is the central drawing entity. ID and Type are assigned once at
// creation and never change; everything else is mutated in place by the
// owning tool during a gesture.
type Object struct {
	ID     string             `json:"id"`
	Type   Type               `json:"type"`
	Start  geometry.Point2D   `json:"start_point"`
	End    *geometry.Point2D  `json:"end_point,omitempty"`
	Points []geometry.Point2D `json:"points,omitempty"`
	Text   string             `json:"text,omitempty"`

	Options   Options       `json:"options"`
	Bounds    geometry.Rect `json:"bounds"`
	Transform *Transform    `json:"transform,omitempty"`
}

// New creates an object of the given type anchored at start, taking an
// independent snapshot of the options.
func New(id string, t Type, start geometry.Point2D, opts Options) *Object {
	return &Object{
		ID:      id,
		Type:    t,
		Start:   start,
		Options: opts.Clone(),
	}
}

// Clone returns a deep copy of the object. Used by the undo history so a
// checkpoint can never be mutated by later edits.
func (o *Object) Clone() *Object {
	c := *o
	c.Options = o.Options.Clone()
	if o.End != nil {
		end := *o.End
		c.End = &end
	}
	if o.Points != nil {
		c.Points = make([]geometry.Point2D, len(o.Points))
		copy(c.Points, o.Points)
	}
	if o.Transform != nil {
		tr := *o.Transform
		c.Transform = &tr
	}
	return &c
}

// SetEnd sets or replaces the second anchor.
func (o *Object) SetEnd(p geometry.Point2D) {
	o.End = &p
}

// AnchorEnd returns the second anchor, falling back to the start point when
// none has been set yet.
func (o *Object) AnchorEnd() geometry.Point2D {
	if o.End != nil {
		return *o.End
	}
	return o.Start
}

// AppendPoint appends a freehand sample.
func (o *Object) AppendPoint(p geometry.Point2D) {
	o.Points = append(o.Points, p)
}

// AnchorRect returns the normalized rectangle spanned by the two anchors.
func (o *Object) AnchorRect() geometry.Rect {
	return geometry.RectFromPoints(o.Start, o.AnchorEnd())
}

// AnchorCentroid returns the centroid of the untransformed geometry: the
// freehand samples when present, the anchors otherwise. It is the reference
// center for Transform.Matrix.
func (o *Object) AnchorCentroid() geometry.Point2D {
	if len(o.Points) > 0 {
		return geometry.Centroid(o.Points)
	}
	if o.End != nil {
		return geometry.Centroid([]geometry.Point2D{o.Start, *o.End})
	}
	return o.Start
}

// Resolved returns the object with any post-hoc transform baked into its
// anchors and samples. Objects without a transform are returned as-is;
// otherwise a clone is produced so the stored geometry stays untransformed.
func (o *Object) Resolved() *Object {
	if o == nil || o.Transform == nil {
		return o
	}
	m := o.Transform.Matrix(o.AnchorCentroid())

	c := o.Clone()
	c.Transform = nil
	c.Start = m.Apply(o.Start)
	if o.End != nil {
		end := m.Apply(*o.End)
		c.End = &end
	}
	for i, p := range o.Points {
		c.Points[i] = m.Apply(p)
	}
	return c
}
