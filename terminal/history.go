package terminal

import "routeboard/diagram"

// History manages undo/redo as a list of scene snapshots.
type History struct {
	states  []*diagram.Scene
	current int // Index of the state matching the live scene
	max     int // Maximum number of states to keep
}

// NewHistory creates a history keeping at most max states.
func NewHistory(max int) *History {
	if max <= 0 {
		max = 50
	}
	return &History{
		states:  make([]*diagram.Scene, 0, max),
		current: -1,
		max:     max,
	}
}

// SaveState records a copy of scene, discarding any states that were undone.
func (h *History) SaveState(scene *diagram.Scene) {
	if h.current < len(h.states)-1 {
		h.states = h.states[:h.current+1]
	}
	h.states = append(h.states, scene.Clone())

	if len(h.states) > h.max {
		h.states = h.states[1:]
	} else {
		h.current++
	}
}

// CanUndo returns true if we can undo
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if we can redo
func (h *History) CanRedo() bool {
	return h.current < len(h.states)-1
}

// Undo steps back one state and returns a copy of it, or nil at the oldest state.
func (h *History) Undo() *diagram.Scene {
	if !h.CanUndo() {
		return nil
	}
	h.current--
	return h.states[h.current].Clone()
}

// Redo steps forward one state and returns a copy of it, or nil at the newest state.
func (h *History) Redo() *diagram.Scene {
	if !h.CanRedo() {
		return nil
	}
	h.current++
	return h.states[h.current].Clone()
}

// Len returns the number of stored states.
func (h *History) Len() int {
	return len(h.states)
}
