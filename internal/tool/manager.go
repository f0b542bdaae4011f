package tool

import (
	"log"
	"sort"

	"sketchpad/internal/object"
	"sketchpad/pkg/geometry"
)

// Manager is a registry of tools keyed by object type with a single
// "current tool" slot. Gesture dispatch always targets the current tool;
// render/hit-test/bounds lookups resolve the tool by the object's own type,
// so finished objects stay correct regardless of which tool is selected.
//
// The manager is deliberately forgiving: dispatch with no current tool is a
// no-op and lookups for unknown object types fall back to neutral results.
// A stored object must never crash the redraw or interaction loop.
type Manager struct {
	tools   map[object.Type]Tool
	current Tool
}

// NewManager creates an empty tool manager.
func NewManager() *Manager {
	return &Manager{tools: make(map[object.Type]Tool)}
}

// RegisterTool inserts a tool into the registry. Registering a second tool
// for the same type silently replaces the first.
func (m *Manager) RegisterTool(t Tool) {
	if t == nil {
		return
	}
	m.tools[t.Type()] = t
	if m.current != nil && m.current.Type() == t.Type() {
		m.current = t
	}
}

// UnregisterTool removes the tool for the given type. If it was the current
// tool the current slot becomes empty; there is no implicit fallback.
func (m *Manager) UnregisterTool(typ object.Type) {
	delete(m.tools, typ)
	if m.current != nil && m.current.Type() == typ {
		m.current = nil
	}
}

// HasTool reports whether a tool is registered for the given type.
func (m *Manager) HasTool(typ object.Type) bool {
	_, ok := m.tools[typ]
	return ok
}

// Tool returns the tool registered for the given type, or nil. Used when the
// host needs a tool's rendering outside the by-object dispatch, e.g. the
// selection indicator.
func (m *Manager) Tool(typ object.Type) Tool {
	return m.tools[typ]
}

// SetCurrentTool activates the tool registered for typ. Returns false and
// leaves the selection unchanged when no such tool is registered.
func (m *Manager) SetCurrentTool(typ object.Type) bool {
	t, ok := m.tools[typ]
	if !ok {
		log.Printf("tool: cannot select unregistered tool %q", typ)
		return false
	}
	m.current = t
	return true
}

// CurrentTool returns the active tool, or nil when none is selected.
func (m *Manager) CurrentTool() Tool {
	return m.current
}

// CurrentType returns the active tool's type, or "" when none is selected.
func (m *Manager) CurrentType() object.Type {
	if m.current == nil {
		return ""
	}
	return m.current.Type()
}

// Descriptors returns palette entries for all registered tools, ordered by
// type for a stable UI.
func (m *Manager) Descriptors() []Descriptor {
	descs := make([]Descriptor, 0, len(m.tools))
	for _, t := range m.tools {
		descs = append(descs, t.Descriptor())
	}
	sort.Slice(descs, func(i, j int) bool { return descs[i].Type < descs[j].Type })
	return descs
}

// StartDrawing forwards a gesture start to the current tool. With no current
// tool it is a no-op returning nil.
func (m *Manager) StartDrawing(p geometry.Point2D, ctx Context) *object.Object {
	if m.current == nil {
		log.Printf("tool: startDrawing with no current tool")
		return nil
	}
	return m.current.StartDrawing(p, ctx)
}

// ContinueDrawing forwards an intermediate pointer position to the current
// tool. No-op without a current tool or object.
func (m *Manager) ContinueDrawing(p geometry.Point2D, obj *object.Object, ctx Context) {
	if m.current == nil || obj == nil {
		return
	}
	m.current.ContinueDrawing(p, obj, ctx)
}

// UpdateDrawing forwards an intermediate pointer position and returns the
// mutated object. Returns obj unchanged without a current tool.
func (m *Manager) UpdateDrawing(p geometry.Point2D, obj *object.Object, ctx Context) *object.Object {
	if m.current == nil || obj == nil {
		return obj
	}
	return m.current.UpdateDrawing(p, obj, ctx)
}

// FinishDrawing forwards a gesture end to the current tool. With no current
// tool the object is returned unchanged with ActionNone.
func (m *Manager) FinishDrawing(p geometry.Point2D, obj *object.Object, ctx Context) (*object.Object, FinishAction) {
	if m.current == nil {
		log.Printf("tool: finishDrawing with no current tool")
		return obj, ActionNone
	}
	return m.current.FinishDrawing(p, obj, ctx)
}

// RequiresDrag reports the current tool's drag capability; false without a
// current tool.
func (m *Manager) RequiresDrag() bool {
	if m.current == nil {
		return false
	}
	return m.current.RequiresDrag()
}

// RenderObject renders obj with the tool owning its type. A post-hoc
// transform is baked into the geometry first, so tools always see plain
// anchors. Unknown types are skipped.
func (m *Manager) RenderObject(obj *object.Object, surface Surface) {
	if obj == nil {
		return
	}
	t, ok := m.tools[obj.Type]
	if !ok {
		log.Printf("tool: no tool registered to render object type %q", obj.Type)
		return
	}
	t.Render(obj.Resolved(), surface)
}

// HitTest tests p against obj's transformed geometry with the tool owning
// its type. Unknown types test false.
func (m *Manager) HitTest(p geometry.Point2D, obj *object.Object, margin float64) bool {
	if obj == nil {
		return false
	}
	t, ok := m.tools[obj.Type]
	if !ok {
		return false
	}
	return t.HitTest(p, obj.Resolved(), margin)
}

// ObjectBounds recomputes obj's bounds from its transformed geometry with
// the tool owning its type. Unknown types yield the zero rectangle.
func (m *Manager) ObjectBounds(obj *object.Object, surface Surface) geometry.Rect {
	if obj == nil {
		return geometry.Rect{}
	}
	t, ok := m.tools[obj.Type]
	if !ok {
		return geometry.Rect{}
	}
	return t.Bounds(obj.Resolved(), surface)
}
