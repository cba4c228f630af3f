package handler // handler exposes the editing engine over HTTP

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seat-layout-editor/internal/cache"
	"github.com/iliyamo/seat-layout-editor/internal/editor"
	"github.com/iliyamo/seat-layout-editor/internal/model"
	"github.com/iliyamo/seat-layout-editor/internal/repository"
	"github.com/iliyamo/seat-layout-editor/internal/templates"
)

// LayoutRepository reads and deletes saved layout documents.
type LayoutRepository interface {
	GetByID(ctx context.Context, id string) (*model.LayoutDocument, error)
	Delete(ctx context.Context, id string) error
}

// DraftStore keeps autosaved drafts.
type DraftStore interface {
	Put(ctx context.Context, id string, l model.TheaterLayout) error
	Get(ctx context.Context, id string) (model.TheaterLayout, error)
	Delete(ctx context.Context, id string) error
}

// EditorHandler bundles the session registry and its collaborators.
// Layouts and Drafts are optional; the routes that need them answer 503
// when they are missing.
type EditorHandler struct {
	Sessions  *editor.Registry
	Templates *templates.Catalog
	Layouts   LayoutRepository
	Drafts    DraftStore
}

// NewEditorHandler panics if the registry or the catalog is nil.
func NewEditorHandler(sessions *editor.Registry, catalog *templates.Catalog, layouts LayoutRepository, drafts DraftStore) *EditorHandler {
	if sessions == nil || catalog == nil {
		panic("nil dependency passed to NewEditorHandler")
	}
	return &EditorHandler{Sessions: sessions, Templates: catalog, Layouts: layouts, Drafts: drafts}
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

func (h *EditorHandler) lookup(c echo.Context) (*editor.Session, bool) {
	s, err := h.Sessions.Get(c.Param("id"))
	return s, err == nil
}

// eventResponse answers every input event: whether it changed anything and
// the state to redraw.
type eventResponse struct {
	Handled bool        `json:"handled"`
	Session editor.View `json:"session"`
}

func (h *EditorHandler) respond(c echo.Context, s *editor.Session, handled bool) error {
	if handled {
		h.autosave(c.Request().Context(), s)
	}
	return c.JSON(http.StatusOK, eventResponse{Handled: handled, Session: s.Snapshot()})
}

// autosave stores the current layout as the session's draft.  Failures
// only cost the draft, so they are logged and dropped.
func (h *EditorHandler) autosave(ctx context.Context, s *editor.Session) {
	if h.Drafts == nil {
		return
	}
	l, err := s.Layout()
	if err != nil {
		return
	}
	if err := h.Drafts.Put(ctx, s.ID(), l); err != nil {
		log.Printf("handler: autosave of session %s failed: %v", s.ID(), err)
	}
}

// ListTemplates handles GET /v1/templates.
func (h *EditorHandler) ListTemplates(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Templates.List())
}

// GetLayout handles GET /v1/layouts/:id and returns the saved document.
func (h *EditorHandler) GetLayout(c echo.Context) error {
	if h.Layouts == nil {
		return errorJSON(c, http.StatusServiceUnavailable, "layout storage unavailable")
	}
	doc, err := h.Layouts.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return errorJSON(c, http.StatusNotFound, "layout not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "failed to load layout")
	}
	return c.JSON(http.StatusOK, doc)
}

// DeleteLayout handles DELETE /v1/layouts/:id.
func (h *EditorHandler) DeleteLayout(c echo.Context) error {
	if h.Layouts == nil {
		return errorJSON(c, http.StatusServiceUnavailable, "layout storage unavailable")
	}
	if err := h.Layouts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return errorJSON(c, http.StatusNotFound, "layout not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "failed to delete layout")
	}
	return c.NoContent(http.StatusNoContent)
}

// DiscardDraft handles DELETE /v1/drafts/:draft_id.  Discarding a draft
// that does not exist is not an error.
func (h *EditorHandler) DiscardDraft(c echo.Context) error {
	if h.Drafts == nil {
		return errorJSON(c, http.StatusServiceUnavailable, "draft storage unavailable")
	}
	if err := h.Drafts.Delete(c.Request().Context(), c.Param("draft_id")); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to discard draft")
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateSession handles POST /v1/sessions.  The body is the setup form;
// an optional template name seeds the layout.
func (h *EditorHandler) CreateSession(c echo.Context) error {
	var form editor.SetupForm
	if err := c.Bind(&form); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	setup, err := form.Parse()
	if err != nil {
		var fields editor.FieldErrors
		if errors.As(err, &fields) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "validation failed", "fields": fields})
		}
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	var tpl model.TheaterTemplate
	if setup.Template != "" {
		var ok bool
		if tpl, ok = h.Templates.Lookup(setup.Template); !ok {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{
				"error":  "validation failed",
				"fields": editor.FieldErrors{"template": "unknown template"},
			})
		}
	}

	s := h.Sessions.Create()
	if setup.Template != "" {
		s.CreateFromTemplate(setup.Name, setup.Prices, tpl)
	} else {
		s.CreateEmpty(setup.Name, setup.Prices)
	}
	h.autosave(c.Request().Context(), s)
	return c.JSON(http.StatusCreated, s.Snapshot())
}

// OpenLayout handles POST /v1/sessions/open/:layout_id and starts a
// session on a saved layout.
func (h *EditorHandler) OpenLayout(c echo.Context) error {
	if h.Layouts == nil {
		return errorJSON(c, http.StatusServiceUnavailable, "layout storage unavailable")
	}
	doc, err := h.Layouts.GetByID(c.Request().Context(), c.Param("layout_id"))
	if err != nil {
		if errors.Is(err, repository.ErrLayoutNotFound) {
			return errorJSON(c, http.StatusNotFound, "layout not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "failed to load layout")
	}
	s := h.Sessions.Create()
	s.Open(model.LayoutFromDocument(*doc))
	return c.JSON(http.StatusCreated, s.Snapshot())
}

// RestoreDraft handles POST /v1/sessions/restore/:draft_id.  The draft
// becomes history entry 0 of a new session.
func (h *EditorHandler) RestoreDraft(c echo.Context) error {
	if h.Drafts == nil {
		return errorJSON(c, http.StatusServiceUnavailable, "draft storage unavailable")
	}
	l, err := h.Drafts.Get(c.Request().Context(), c.Param("draft_id"))
	if err != nil {
		if errors.Is(err, cache.ErrDraftNotFound) {
			return errorJSON(c, http.StatusNotFound, "draft not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "failed to load draft")
	}
	s := h.Sessions.Create()
	s.Open(l)
	h.autosave(c.Request().Context(), s)
	return c.JSON(http.StatusCreated, s.Snapshot())
}

// GetSession handles GET /v1/sessions/:id.
func (h *EditorHandler) GetSession(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	return c.JSON(http.StatusOK, s.Snapshot())
}

// SessionStats handles GET /v1/sessions/:id/stats.
func (h *EditorHandler) SessionStats(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	if _, err := s.Layout(); err != nil {
		return errorJSON(c, http.StatusConflict, "session has no layout")
	}
	return c.JSON(http.StatusOK, s.Stats())
}

// DeleteSession handles DELETE /v1/sessions/:id.  The draft is kept so the
// layout can still be restored.
func (h *EditorHandler) DeleteSession(c echo.Context) error {
	if err := h.Sessions.Delete(c.Param("id")); err != nil {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// Save handles POST /v1/sessions/:id/save.  The save runs in the
// background; its outcome shows up in the session's save state and
// notices.
func (h *EditorHandler) Save(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	if _, err := s.Save(c.Request().Context()); err != nil {
		switch {
		case errors.Is(err, editor.ErrNoLayout):
			return errorJSON(c, http.StatusConflict, "session has no layout")
		case errors.Is(err, editor.ErrNoSaver):
			return errorJSON(c, http.StatusServiceUnavailable, "layout storage unavailable")
		}
		return errorJSON(c, http.StatusInternalServerError, "failed to start save")
	}
	return c.JSON(http.StatusAccepted, s.Snapshot())
}

// Undo handles POST /v1/sessions/:id/undo.
func (h *EditorHandler) Undo(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	return h.respond(c, s, s.Undo())
}

// Redo handles POST /v1/sessions/:id/redo.
func (h *EditorHandler) Redo(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	return h.respond(c, s, s.Redo())
}

// DismissNotice handles DELETE /v1/sessions/:id/notices/:notice_id.
func (h *EditorHandler) DismissNotice(c echo.Context) error {
	s, ok := h.lookup(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	var id int
	if err := echo.PathParamsBinder(c).Int("notice_id", &id).BindError(); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid notice id")
	}
	if !s.DismissNotice(id) {
		return errorJSON(c, http.StatusNotFound, "notice not found")
	}
	return c.NoContent(http.StatusNoContent)
}
