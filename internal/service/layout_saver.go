package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/seat-layout-editor/internal/model"
	"github.com/iliyamo/seat-layout-editor/internal/queue"
	"github.com/iliyamo/seat-layout-editor/internal/stats"
)

// LayoutStore persists layout documents.
type LayoutStore interface {
	Save(ctx context.Context, doc model.LayoutDocument) error
}

// LayoutSaver is the editor's persistence collaborator: it stores the
// document and then announces the save.  The save is complete once the
// document is stored; a failed announcement is only logged.
type LayoutSaver struct {
	store LayoutStore
	pub   EventPublisher
	now   func() time.Time
}

// NewLayoutSaver panics on a nil store; pub may be nil to skip events.
func NewLayoutSaver(store LayoutStore, pub EventPublisher) *LayoutSaver {
	if store == nil {
		panic("nil layout store")
	}
	return &LayoutSaver{store: store, pub: pub, now: time.Now}
}

func (s *LayoutSaver) Save(ctx context.Context, doc model.LayoutDocument) error {
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("persist layout %s: %w", doc.ID, err)
	}
	if s.pub == nil {
		return nil
	}
	if err := s.pub.PublishLayoutSaved(ctx, s.event(doc)); err != nil {
		log.Printf("layout-saver: publish layout.saved for %s failed: %v", doc.ID, err)
	}
	return nil
}

func (s *LayoutSaver) event(doc model.LayoutDocument) queue.LayoutSavedEvent {
	sum := stats.Calculate(model.LayoutFromDocument(doc))
	tiers := make(map[string]int, len(sum.Tiers))
	for _, t := range sum.Tiers {
		if t.Count > 0 {
			tiers[string(t.Type)] = t.Count
		}
	}
	return queue.LayoutSavedEvent{
		LayoutID:      doc.ID,
		Name:          doc.Name,
		Capacity:      doc.Capacity,
		OccupiedCells: len(doc.Seats),
		RowCount:      doc.RowCount,
		ColumnCount:   doc.ColumnCount,
		TierCounts:    tiers,
		TotalRevenue:  sum.TotalRevenue,
		SavedAt:       s.now().UTC().Format(time.RFC3339),
	}
}
