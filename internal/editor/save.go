package editor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/seat-layout-editor/internal/model"
)

// Saver is the persistence collaborator.  It receives a frozen document
// and reports success or failure.
type Saver interface {
	Save(ctx context.Context, doc model.LayoutDocument) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, doc model.LayoutDocument) error

func (f SaverFunc) Save(ctx context.Context, doc model.LayoutDocument) error { return f(ctx, doc) }

// SaveState is the outcome of the most recent save.
type SaveState string

const (
	SaveIdle   SaveState = "idle"
	SaveSaving SaveState = "saving"
	SaveSaved  SaveState = "saved"
	SaveFailed SaveState = "failed"
)

// Notice is a transient message for the operator.
type Notice struct {
	ID      int       `json:"id"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

const maxNotices = 20

// Save serializes the current layout and hands it to the saver in the
// background.  Local editing is not blocked while the save is in flight,
// and a failed save never rolls back local state; it only leaves an error
// notice.  The returned channel yields the save result once.
func (s *Session) Save(ctx context.Context) (<-chan error, error) {
	s.mu.Lock()
	if !s.hasLayout() {
		s.mu.Unlock()
		return nil, ErrNoLayout
	}
	if s.saver == nil {
		s.mu.Unlock()
		return nil, ErrNoSaver
	}
	doc := model.NewLayoutDocument(s.store.Layout())
	saver := s.saver
	s.saving++
	s.saveState = SaveSaving
	s.mu.Unlock()

	// the request that triggered the save may end long before the round trip
	ctx = context.WithoutCancel(ctx)
	done := make(chan error, 1)
	go func() {
		err := saver.Save(ctx, doc)
		s.finishSave(doc, err)
		done <- err
		close(done)
	}()
	return done, nil
}

func (s *Session) finishSave(doc model.LayoutDocument, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving--
	if err != nil {
		log.Printf("editor: save of layout %s failed: %v", doc.ID, err)
		s.saveState = SaveFailed
		s.notify("error", fmt.Sprintf("failed to save layout %q: %v", doc.Name, err))
		return
	}
	if s.saving == 0 {
		s.saveState = SaveSaved
	}
	s.savedAt = time.Now().UTC()
	s.notify("info", fmt.Sprintf("layout %q saved", doc.Name))
}

func (s *Session) notify(level, msg string) {
	s.noticeSeq++
	s.notices = append(s.notices, Notice{ID: s.noticeSeq, Level: level, Message: msg, At: time.Now().UTC()})
	if len(s.notices) > maxNotices {
		s.notices = s.notices[len(s.notices)-maxNotices:]
	}
}

// SaveState returns the state of the most recent save.
func (s *Session) SaveState() SaveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveState
}

// Notices returns pending operator notices, oldest first.
func (s *Session) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notice(nil), s.notices...)
}

// DismissNotice removes a notice by id.
func (s *Session) DismissNotice(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notices {
		if n.ID == id {
			s.notices = append(s.notices[:i], s.notices[i+1:]...)
			return true
		}
	}
	return false
}
