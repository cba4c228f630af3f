// Package editor is the editing session facade.  A Session owns one layout
// store, one history and one selection and is the only thing consumers
// talk to: every input event (pointer, key, drop) is applied to
// completion under the session lock before the next one is looked at.
package editor

import (
	"errors"
	"sync"
	"time"

	"github.com/iliyamo/seat-layout-editor/internal/grid"
	"github.com/iliyamo/seat-layout-editor/internal/history"
	"github.com/iliyamo/seat-layout-editor/internal/layout"
	"github.com/iliyamo/seat-layout-editor/internal/model"
	"github.com/iliyamo/seat-layout-editor/internal/selection"
	"github.com/iliyamo/seat-layout-editor/internal/stats"
)

var (
	// ErrNoLayout is returned by operations that need a layout before one
	// has been created.
	ErrNoLayout = errors.New("editor: no layout in session")
	// ErrNoSaver is returned by Save when the session has no persistence
	// collaborator.
	ErrNoSaver = errors.New("editor: no saver configured")
)

// Modal is the overlay currently capturing input.
type Modal string

const (
	ModalNone        Modal = ""
	ModalHelp        Modal = "help"
	ModalContextMenu Modal = "context-menu"
)

// Options configures a session.
type Options struct {
	Viewport     grid.Viewport
	HistoryLimit int
	Saver        Saver
	NewID        func() string
}

// Session is one operator's editing session.
type Session struct {
	mu sync.Mutex

	id        string
	store     *layout.Store
	history   *history.Manager
	selection *selection.Set
	view      grid.Viewport
	saver     Saver

	modal    Modal
	menuSeat string
	drag     *Payload
	region   *Region

	saveState SaveState
	saving    int
	savedAt   time.Time
	notices   []Notice
	noticeSeq int
	updatedAt time.Time
}

// Region is an in-progress rectangular selection.
type Region struct {
	Start grid.Cell `json:"start"`
	End   grid.Cell `json:"end"`
}

// NewSession builds a session with its own store, history and selection.
func NewSession(id string, opts Options) *Session {
	view := opts.Viewport
	if view.CellSize == 0 {
		view = grid.NewViewport()
	}
	return &Session{
		id:        id,
		store:     layout.NewStoreWithIDs(opts.NewID),
		history:   history.New(opts.HistoryLimit),
		selection: selection.New(),
		view:      view,
		saver:     opts.Saver,
		saveState: SaveIdle,
		updatedAt: time.Now().UTC(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// UpdatedAt returns when the session last changed.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// CreateEmpty starts a fresh layout, discarding any previous one.
func (s *Session) CreateEmpty(name string, prices model.SeatPrice) model.TheaterLayout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start(s.store.CreateEmpty(name, prices))
}

// CreateFromTemplate starts a layout seeded from tpl.
func (s *Session) CreateFromTemplate(name string, prices model.SeatPrice, tpl model.TheaterTemplate) model.TheaterLayout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start(s.store.CreateFromTemplate(name, prices, tpl))
}

// Open starts editing an existing layout.
func (s *Session) Open(l model.TheaterLayout) model.TheaterLayout {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Replace(l)
	return s.start(s.store.Layout())
}

func (s *Session) start(l model.TheaterLayout) model.TheaterLayout {
	s.history.Reset()
	s.history.Record(l)
	s.selection.Clear()
	s.modal, s.menuSeat, s.drag, s.region = ModalNone, "", nil, nil
	s.saveState = SaveIdle
	s.touch()
	return l
}

func (s *Session) hasLayout() bool { return s.history.Len() > 0 }

func (s *Session) touch() { s.updatedAt = time.Now().UTC() }

// commit records the result of a structural mutation.  Rejected
// mutations leave history untouched.
func (s *Session) commit(l model.TheaterLayout, changed bool) bool {
	if !changed {
		return false
	}
	s.history.Record(l)
	s.touch()
	return true
}

// Layout returns the current layout.
func (s *Session) Layout() (model.TheaterLayout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasLayout() {
		return model.TheaterLayout{}, ErrNoLayout
	}
	return s.store.Layout(), nil
}

// CanPlace reports whether a seat may be added at (row, column).
func (s *Session) CanPlace(row, column int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasLayout() && s.store.CanPlace(row, column)
}

// AddSeat places a seat of tier t.
func (s *Session) AddSeat(t model.SeatType, row, column int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addSeat(t, row, column)
}

func (s *Session) addSeat(t model.SeatType, row, column int) bool {
	if !s.hasLayout() {
		return false
	}
	return s.commit(s.store.AddSeat(t, row, column))
}

// RemoveSeat deletes a seat and drops it from the selection.
func (s *Session) RemoveSeat(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bulkDelete([]string{id})
}

// UpdateSeatType retypes one seat.
func (s *Session) UpdateSeatType(id string, t model.SeatType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bulkRetype([]string{id}, t)
}

// MoveSeats moves a batch by the given offset, all or nothing.
func (s *Session) MoveSeats(ids []string, rowOffset, columnOffset int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveSeats(ids, rowOffset, columnOffset)
}

func (s *Session) moveSeats(ids []string, rowOffset, columnOffset int) bool {
	if !s.hasLayout() || len(ids) == 0 {
		return false
	}
	return s.commit(s.store.MoveSeats(ids, rowOffset, columnOffset))
}

// BulkRetype retypes every listed seat as one history entry.
func (s *Session) BulkRetype(ids []string, t model.SeatType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bulkRetype(ids, t)
}

func (s *Session) bulkRetype(ids []string, t model.SeatType) bool {
	if !s.hasLayout() || len(ids) == 0 {
		return false
	}
	if !s.commit(s.store.BulkRetype(ids, t)) {
		return false
	}
	s.selection.Remove(ids...)
	return true
}

// BulkDelete removes every listed seat as one history entry.
func (s *Session) BulkDelete(ids []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bulkDelete(ids)
}

func (s *Session) bulkDelete(ids []string) bool {
	if !s.hasLayout() || len(ids) == 0 {
		return false
	}
	if !s.commit(s.store.BulkDelete(ids)) {
		return false
	}
	s.selection.Remove(ids...)
	if s.menuSeat != "" {
		if _, ok := s.store.Seat(s.menuSeat); !ok {
			s.closeModal()
		}
	}
	return true
}

// Undo steps back one history entry and clears the selection.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo()
}

func (s *Session) undo() bool {
	l, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.travel(l)
	return true
}

// Redo steps forward one history entry and clears the selection.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redo()
}

func (s *Session) redo() bool {
	l, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.travel(l)
	return true
}

func (s *Session) travel(l model.TheaterLayout) {
	s.store.Replace(l)
	s.selection.Clear()
	s.drag, s.region = nil, nil
	if s.modal == ModalContextMenu {
		s.closeModal()
	}
	s.touch()
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// Select selects a seat; additive toggles it within the current selection.
// Unknown ids are ignored.
func (s *Session) Select(id string, additive bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.store.Seat(id); !ok {
		return false
	}
	s.selection.Select(id, additive)
	s.touch()
	return true
}

// SelectRegion adds every seat in the closed rectangle to the selection.
func (s *Session) SelectRegion(startRow, startCol, endRow, endCol int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.selection.Len()
	s.selection.BulkSelectRegion(s.store.Layout().Seats, startRow, startCol, endRow, endCol)
	s.touch()
	return s.selection.Len() - before
}

// SelectAll selects every seat.
func (s *Session) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectAll()
}

func (s *Session) selectAll() {
	for _, seat := range s.store.Layout().Seats {
		s.selection.Add(seat.ID)
	}
	s.touch()
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
	s.touch()
}

// Selected returns the selected seat ids, sorted.
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IDs()
}

// Viewport returns the current viewport.
func (s *Session) Viewport() grid.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetViewport replaces the viewport geometry reported by the rendering
// surface (origin, scroll).  Zoom is re-clamped.
func (s *Session) SetViewport(v grid.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.OriginX, s.view.OriginY = v.OriginX, v.OriginY
	s.view.ScrollX, s.view.ScrollY = v.ScrollX, v.ScrollY
	if v.Zoom > 0 {
		s.view.SetZoom(v.Zoom)
	}
}

func (s *Session) ZoomIn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ZoomIn()
}

func (s *Session) ZoomOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ZoomOut()
}

// Pan moves the pan offset; pan is unconstrained.
func (s *Session) Pan(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Pan(dx, dy)
}

// Stats aggregates the current layout.
func (s *Session) Stats() stats.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.Calculate(s.store.Layout())
}

// View is everything the rendering surface needs to redraw.
type View struct {
	SessionID     string               `json:"session_id"`
	Layout        *model.TheaterLayout `json:"layout"`
	Selected      []string             `json:"selected"`
	CanUndo       bool                 `json:"can_undo"`
	CanRedo       bool                 `json:"can_redo"`
	HistoryIndex  int                  `json:"history_index"`
	HistoryLength int                  `json:"history_length"`
	Viewport      grid.Viewport        `json:"viewport"`
	CanvasWidth   float64              `json:"canvas_width"`
	CanvasHeight  float64              `json:"canvas_height"`
	Modal         Modal                `json:"modal,omitempty"`
	ContextSeat   string               `json:"context_seat,omitempty"`
	Drag          *Payload             `json:"drag,omitempty"`
	Region        *Region              `json:"region,omitempty"`
	Stats         stats.Summary        `json:"stats"`
	SaveState     SaveState            `json:"save_state"`
	SavedAt       *time.Time           `json:"saved_at,omitempty"`
	Notices       []Notice             `json:"notices"`
}

// Snapshot returns a consistent view of the session.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		SessionID:     s.id,
		Selected:      s.selection.IDs(),
		CanUndo:       s.history.CanUndo(),
		CanRedo:       s.history.CanRedo(),
		HistoryIndex:  s.history.Index(),
		HistoryLength: s.history.Len(),
		Viewport:      s.view,
		Modal:         s.modal,
		ContextSeat:   s.menuSeat,
		SaveState:     s.saveState,
		Notices:       append(make([]Notice, 0, len(s.notices)), s.notices...),
	}
	if s.hasLayout() {
		l := s.store.Layout()
		v.Layout = &l
		v.Stats = stats.Calculate(l)
		v.CanvasWidth, v.CanvasHeight = s.view.CanvasSize(l.RowCount, l.ColumnCount)
	}
	if !s.savedAt.IsZero() {
		at := s.savedAt
		v.SavedAt = &at
	}
	if s.drag != nil {
		p := *s.drag
		v.Drag = &p
	}
	if s.region != nil {
		r := *s.region
		v.Region = &r
	}
	return v
}
