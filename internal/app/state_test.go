package app

import (
	"os"
	"path/filepath"
	"testing"

	"sketchpad/internal/object"
	"sketchpad/pkg/geometry"
)

func makeObject(id string) *object.Object {
	obj := object.New(id, object.TypeLine, geometry.Point2D{X: 1, Y: 1}, object.DefaultOptions())
	obj.SetEnd(geometry.Point2D{X: 10, Y: 10})
	obj.Bounds = obj.AnchorRect()
	return obj
}

func TestAddRemoveObjects(t *testing.T) {
	s := NewState()

	s.AddObject(makeObject("a"))
	s.AddObject(makeObject("b"))
	if s.ObjectCount() != 2 {
		t.Fatalf("count = %d, want 2", s.ObjectCount())
	}
	if s.FindObject("a") == nil {
		t.Error("object a should be findable")
	}
	if !s.Modified {
		t.Error("adding an object should mark the document modified")
	}

	if !s.RemoveObject("a") {
		t.Error("removing an existing object should succeed")
	}
	if s.RemoveObject("a") {
		t.Error("removing twice should fail")
	}
	if s.ObjectCount() != 1 {
		t.Errorf("count = %d, want 1", s.ObjectCount())
	}
}

func TestSelection(t *testing.T) {
	s := NewState()
	s.AddObject(makeObject("a"))

	s.Select("a")
	if !s.IsSelected("a") {
		t.Error("a should be selected")
	}
	s.ClearSelection()
	if s.IsSelected("a") {
		t.Error("selection should be cleared")
	}

	s.Select("a")
	s.RemoveObject("a")
	if s.IsSelected("a") {
		t.Error("removing an object must drop it from the selection")
	}
}

func TestUndoRedo(t *testing.T) {
	s := NewState()

	s.AddObject(makeObject("a"))
	s.Checkpoint()
	s.AddObject(makeObject("b"))
	s.Checkpoint()

	if !s.Undo() {
		t.Fatal("undo should succeed")
	}
	if s.ObjectCount() != 1 {
		t.Errorf("after undo count = %d, want 1", s.ObjectCount())
	}
	if !s.Redo() {
		t.Fatal("redo should succeed")
	}
	if s.ObjectCount() != 2 {
		t.Errorf("after redo count = %d, want 2", s.ObjectCount())
	}

	// A new checkpoint discards the redo tail.
	s.Undo()
	s.AddObject(makeObject("c"))
	s.Checkpoint()
	if s.Redo() {
		t.Error("redo after a new checkpoint should fail")
	}
}

func TestUndoSnapshotsAreIndependent(t *testing.T) {
	s := NewState()

	obj := makeObject("a")
	s.AddObject(obj)
	s.Checkpoint()

	// Mutating the live object after the checkpoint must not leak into it.
	obj.Text = "changed"
	s.AddObject(makeObject("b"))
	s.Checkpoint()

	s.Undo()
	restored := s.FindObject("a")
	if restored == nil {
		t.Fatal("object a missing after undo")
	}
	if restored.Text != "" {
		t.Errorf("restored text = %q, want the value at checkpoint time", restored.Text)
	}
}

func TestHistoryBounds(t *testing.T) {
	h := NewHistory(3)
	h.Push(nil)
	if h.CanUndo() {
		t.Error("single snapshot cannot undo")
	}
	if _, ok := h.Undo(); ok {
		t.Error("undo past the oldest snapshot should fail")
	}

	h.Push([]*object.Object{makeObject("a")})
	h.Push([]*object.Object{makeObject("a"), makeObject("b")})
	h.Push([]*object.Object{makeObject("a"), makeObject("b"), makeObject("c")})

	// Limit 3: the empty baseline was evicted.
	snap, ok := h.Undo()
	if !ok || len(snap) != 2 {
		t.Fatalf("undo = %d objects, want 2", len(snap))
	}
	snap, ok = h.Undo()
	if !ok || len(snap) != 1 {
		t.Fatalf("undo = %d objects, want 1", len(snap))
	}
	if h.CanUndo() {
		t.Error("oldest retained snapshot reached, undo must stop")
	}
}

func TestEvents(t *testing.T) {
	s := NewState()

	var got []interface{}
	s.On(EventObjectsChanged, func(data interface{}) {
		got = append(got, data)
	})

	obj := makeObject("a")
	s.AddObject(obj)
	if len(got) != 1 || got[0] != obj {
		t.Errorf("listener got %v", got)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.sketch")

	s := NewState()
	opts := s.Options()
	opts.StrokeColor = "#ff0000"
	s.SetOptions(opts)
	s.AddObject(makeObject("a"))
	pen := object.New("p", object.TypePen, geometry.Point2D{}, s.Options())
	pen.AppendPoint(geometry.Point2D{X: 0, Y: 0})
	pen.AppendPoint(geometry.Point2D{X: 5, Y: 5})
	s.AddObject(pen)

	if err := s.SaveProject(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.Modified {
		t.Error("saving should clear the modified flag")
	}

	loaded := NewState()
	if err := loaded.LoadProject(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ObjectCount() != 2 {
		t.Errorf("loaded %d objects, want 2", loaded.ObjectCount())
	}
	if loaded.Options().StrokeColor != "#ff0000" {
		t.Errorf("loaded stroke color = %q", loaded.Options().StrokeColor)
	}
	restored := loaded.FindObject("p")
	if restored == nil || len(restored.Points) != 2 {
		t.Errorf("pen object lost its points: %+v", restored)
	}
}

func TestLoadProjectRejectsBadInput(t *testing.T) {
	s := NewState()
	if err := s.LoadProject("/nonexistent/file.sketch"); err == nil {
		t.Error("loading a missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.sketch")
	os.WriteFile(path, []byte("not json"), 0644)
	if err := s.LoadProject(path); err == nil {
		t.Error("loading malformed JSON should fail")
	}

	os.WriteFile(path, []byte(`{"version": 99}`), 0644)
	if err := s.LoadProject(path); err == nil {
		t.Error("loading an unsupported version should fail")
	}
}
