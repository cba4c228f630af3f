// Package selection tracks which seats the operator currently has selected.
// Selection is ephemeral editor state; it is never stored with a layout.
package selection

import (
	"sort"

	"github.com/iliyamo/seat-layout-editor/internal/grid"
	"github.com/iliyamo/seat-layout-editor/internal/model"
)

// Set maps seat ids to their selected flag.  Absent ids are not selected.
type Set struct {
	ids map[string]bool
}

// New returns an empty selection.
func New() *Set { return &Set{ids: map[string]bool{}} }

// Select replaces the selection with id, or toggles id when additive is
// true and keeps everything else.
func (s *Set) Select(id string, additive bool) {
	if !additive {
		s.ids = map[string]bool{id: true}
		return
	}
	if s.ids[id] {
		delete(s.ids, id)
		return
	}
	s.ids[id] = true
}

// Add marks ids as selected without touching the rest.
func (s *Set) Add(ids ...string) {
	for _, id := range ids {
		s.ids[id] = true
	}
}

// Remove deselects ids.
func (s *Set) Remove(ids ...string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// Clear empties the selection.
func (s *Set) Clear() { s.ids = map[string]bool{} }

// BulkSelectRegion adds every seat inside the closed rectangle spanned by
// the two corners to the selection.  Corners may be given in any order.
func (s *Set) BulkSelectRegion(seats []model.Seat, startRow, startCol, endRow, endCol int) {
	lo, hi := grid.Normalize(grid.Cell{Row: startRow, Column: startCol}, grid.Cell{Row: endRow, Column: endCol})
	for _, seat := range seats {
		if seat.Row >= lo.Row && seat.Row <= hi.Row && seat.Column >= lo.Column && seat.Column <= hi.Column {
			s.ids[seat.ID] = true
		}
	}
}

func (s *Set) Has(id string) bool { return s.ids[id] }
func (s *Set) Len() int           { return len(s.ids) }

// IDs returns the selected ids in sorted order.
func (s *Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id, on := range s.ids {
		if on {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
