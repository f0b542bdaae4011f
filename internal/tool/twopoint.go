package tool

import (
	"sketchpad/internal/object"
	"sketchpad/pkg/geometry"
)

// twoPointBase carries the shared gesture lifecycle of every tool whose
// shape is defined by two anchors (line, rectangle, ellipse, arrow, star,
// triangle, hand-drawn rectangle). The concrete tool supplies rendering and
// hit-testing; padding folds stroke/shape extent into the bounds.
type twoPointBase struct {
	desc Descriptor

	// padding returns the bounds padding for an object, typically derived
	// from its stroke width.
	padding func(obj *object.Object) float64
}

func strokePadding(obj *object.Object) float64 {
	return obj.Options.StrokeWidth / 2
}

func (b *twoPointBase) Type() object.Type      { return b.desc.Type }
func (b *twoPointBase) Descriptor() Descriptor { return b.desc }
func (b *twoPointBase) RequiresDrag() bool     { return b.desc.RequiresDrag }

func (b *twoPointBase) StartDrawing(p geometry.Point2D, ctx Context) *object.Object {
	obj := object.New(ctx.GenerateID(), b.desc.Type, p, ctx.Options())
	obj.SetEnd(p)
	obj.Bounds = b.bounds(obj)
	return obj
}

func (b *twoPointBase) ContinueDrawing(p geometry.Point2D, obj *object.Object, ctx Context) {
	if obj == nil {
		return
	}
	obj.SetEnd(p)
	obj.Bounds = b.bounds(obj)
	ctx.RedrawCanvas()
}

func (b *twoPointBase) UpdateDrawing(p geometry.Point2D, obj *object.Object, ctx Context) *object.Object {
	b.ContinueDrawing(p, obj, ctx)
	return obj
}

func (b *twoPointBase) FinishDrawing(p geometry.Point2D, obj *object.Object, ctx Context) (*object.Object, FinishAction) {
	if obj == nil {
		return nil, ActionNone
	}
	obj.SetEnd(p)
	obj.Bounds = b.bounds(obj)
	ctx.SaveState()
	return obj, ActionCreated
}

func (b *twoPointBase) bounds(obj *object.Object) geometry.Rect {
	pad := strokePadding(obj)
	if b.padding != nil {
		pad = b.padding(obj)
	}
	return obj.AnchorRect().Pad(pad)
}

// Bounds recomputes the normalized anchor rectangle plus padding. Swapping
// the anchors never changes the result.
func (b *twoPointBase) Bounds(obj *object.Object, _ Surface) geometry.Rect {
	if obj == nil {
		return geometry.Rect{}
	}
	return b.bounds(obj)
}

// applyStroke sets the common stroke styling from an object's options.
// Callers bracket it between PushStyle and PopStyle.
func applyStroke(surface Surface, opts object.Options) {
	surface.SetOpacity(opts.Opacity)
	surface.SetStroke(opts.StrokeColor, opts.StrokeWidth)
	if len(opts.DashPattern) > 0 {
		surface.SetDash(opts.DashPattern)
	}
	if opts.ShadowColor != "" {
		surface.SetShadow(opts.ShadowColor, opts.ShadowBlur, opts.ShadowOffsetX, opts.ShadowOffsetY)
	}
}
