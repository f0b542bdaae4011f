// Package app provides application state, configuration, and events.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"sketchpad/internal/object"
)

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventObjectsChanged
	EventSelectionChanged
	EventToolChanged
	EventOptionsChanged
	EventModified
	EventHistoryChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the document being edited: the object collection, the ambient
// drawing options new objects snapshot, the selection, and the undo history.
type State struct {
	mu sync.RWMutex

	ProjectPath string
	Modified    bool

	objects  []*object.Object
	selected map[string]bool
	options  object.Options

	history *History

	listeners map[EventType][]EventListener
}

// NewState creates an empty document with default options.
func NewState() *State {
	s := &State{
		selected:  make(map[string]bool),
		options:   object.DefaultOptions(),
		history:   NewHistory(50),
		listeners: make(map[EventType][]EventListener),
	}
	s.history.Push(nil)
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the document as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	changed := s.Modified != modified
	s.Modified = modified
	s.mu.Unlock()
	if changed {
		s.Emit(EventModified, modified)
	}
}

// Options returns the ambient drawing options.
func (s *State) Options() object.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.options
}

// SetOptions replaces the ambient drawing options. Already-created objects
// keep their own snapshots and are unaffected.
func (s *State) SetOptions(opts object.Options) {
	s.mu.Lock()
	s.options = opts.Clone()
	s.mu.Unlock()
	s.Emit(EventOptionsChanged, opts)
}

// Objects returns the object list in draw order. The slice is a copy; the
// objects themselves are shared.
func (s *State) Objects() []*object.Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*object.Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// ObjectCount returns the number of stored objects.
func (s *State) ObjectCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// AddObject appends a finished object to the document.
func (s *State) AddObject(obj *object.Object) {
	if obj == nil {
		return
	}
	s.mu.Lock()
	s.objects = append(s.objects, obj)
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventObjectsChanged, obj)
}

// RemoveObject deletes the object with the given ID. Returns false when no
// such object exists.
func (s *State) RemoveObject(id string) bool {
	s.mu.Lock()
	idx := -1
	for i, o := range s.objects {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.objects = append(s.objects[:idx], s.objects[idx+1:]...)
	delete(s.selected, id)
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventObjectsChanged, nil)
	return true
}

// FindObject returns the object with the given ID, or nil.
func (s *State) FindObject(id string) *object.Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.objects {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// Clear removes every object and the selection.
func (s *State) Clear() {
	s.mu.Lock()
	s.objects = nil
	s.selected = make(map[string]bool)
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventObjectsChanged, nil)
}

// Select marks an object as selected.
func (s *State) Select(id string) {
	s.mu.Lock()
	s.selected[id] = true
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, nil)
}

// ClearSelection deselects everything.
func (s *State) ClearSelection() {
	s.mu.Lock()
	s.selected = make(map[string]bool)
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, nil)
}

// IsSelected reports whether the object with the given ID is selected.
func (s *State) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected[id]
}

// SelectedIDs returns the IDs of all selected objects.
func (s *State) SelectedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	return ids
}

// Checkpoint pushes the current object list onto the undo history. Tools
// call this through the drawing context after each completed gesture.
func (s *State) Checkpoint() {
	s.mu.RLock()
	snapshot := cloneObjects(s.objects)
	s.mu.RUnlock()

	s.history.Push(snapshot)
	s.Emit(EventHistoryChanged, nil)
}

// Undo restores the previous checkpoint. Returns false when there is
// nothing to undo.
func (s *State) Undo() bool {
	snapshot, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(snapshot)
	return true
}

// Redo re-applies an undone checkpoint.
func (s *State) Redo() bool {
	snapshot, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(snapshot)
	return true
}

// CanUndo reports whether an undo step is available.
func (s *State) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (s *State) CanRedo() bool { return s.history.CanRedo() }

func (s *State) restore(snapshot []*object.Object) {
	s.mu.Lock()
	s.objects = cloneObjects(snapshot)
	s.selected = make(map[string]bool)
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventObjectsChanged, nil)
	s.Emit(EventHistoryChanged, nil)
}

func cloneObjects(objects []*object.Object) []*object.Object {
	if objects == nil {
		return nil
	}
	out := make([]*object.Object, len(objects))
	for i, o := range objects {
		out[i] = o.Clone()
	}
	return out
}

// ProjectFile is the JSON structure of a saved .sketch file.
type ProjectFile struct {
	Version int              `json:"version"`
	Options object.Options   `json:"options"`
	Objects []*object.Object `json:"objects"`
}

// SaveProject writes the document to the specified path.
func (s *State) SaveProject(path string) error {
	s.mu.RLock()
	proj := ProjectFile{
		Version: 1,
		Options: s.options,
		Objects: s.objects,
	}
	data, err := json.MarshalIndent(proj, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing project: %w", err)
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}

// LoadProject reads a document from the specified path, replacing the
// current content and resetting the undo history.
func (s *State) LoadProject(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading project: %w", err)
	}

	var proj ProjectFile
	if err := json.Unmarshal(data, &proj); err != nil {
		return fmt.Errorf("decoding project: %w", err)
	}
	if proj.Version != 1 {
		return fmt.Errorf("unsupported project version %d", proj.Version)
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.objects = proj.Objects
	s.selected = make(map[string]bool)
	s.options = proj.Options
	s.history = NewHistory(50)
	s.mu.Unlock()

	s.Checkpoint()
	s.Emit(EventProjectLoaded, path)
	s.Emit(EventObjectsChanged, nil)
	return nil
}
