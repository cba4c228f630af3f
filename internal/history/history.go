// Package history keeps a linear undo/redo stack of layout snapshots.
//
// The stack is a flat slice of immutable snapshots plus a cursor.  Record
// discards everything after the cursor, so a new edit after an undo prunes
// the redo branch; there is never more than one branch.
package history

import "github.com/iliyamo/seat-layout-editor/internal/model"

// Manager is the undo/redo stack.  The zero value is an empty history;
// Len()==0 means no layout has been recorded yet.
type Manager struct {
	entries []model.TheaterLayout
	cursor  int
	limit   int
}

// New returns an empty history.  A limit > 0 caps the number of kept
// snapshots; the oldest are dropped first.
func New(limit int) *Manager {
	if limit < 0 {
		limit = 0
	}
	return &Manager{limit: limit}
}

// Reset drops every entry and returns to the empty state.
func (m *Manager) Reset() {
	m.entries = nil
	m.cursor = 0
}

// Record truncates the history after the cursor, appends a snapshot of l
// and moves the cursor onto it.
func (m *Manager) Record(l model.TheaterLayout) {
	if len(m.entries) > 0 {
		m.entries = m.entries[:m.cursor+1]
	}
	m.entries = append(m.entries, l.Clone())
	if m.limit > 0 && len(m.entries) > m.limit {
		drop := len(m.entries) - m.limit
		m.entries = append([]model.TheaterLayout(nil), m.entries[drop:]...)
	}
	m.cursor = len(m.entries) - 1
}

// Undo steps the cursor back and returns the snapshot it now points at.
// It is a no-op at the first entry.
func (m *Manager) Undo() (model.TheaterLayout, bool) {
	if !m.CanUndo() {
		return model.TheaterLayout{}, false
	}
	m.cursor--
	return m.entries[m.cursor].Clone(), true
}

// Redo steps the cursor forward.  It is a no-op at the last entry.
func (m *Manager) Redo() (model.TheaterLayout, bool) {
	if !m.CanRedo() {
		return model.TheaterLayout{}, false
	}
	m.cursor++
	return m.entries[m.cursor].Clone(), true
}

// Current returns the snapshot under the cursor.
func (m *Manager) Current() (model.TheaterLayout, bool) {
	if len(m.entries) == 0 {
		return model.TheaterLayout{}, false
	}
	return m.entries[m.cursor].Clone(), true
}

func (m *Manager) CanUndo() bool { return len(m.entries) > 0 && m.cursor > 0 }
func (m *Manager) CanRedo() bool { return len(m.entries) > 0 && m.cursor < len(m.entries)-1 }
func (m *Manager) Len() int      { return len(m.entries) }
func (m *Manager) Index() int    { return m.cursor }
