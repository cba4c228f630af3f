package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seat-layout-editor/internal/handler"
)

// RegisterRoutes registers the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterEditor registers the editor API under /v1.  cache is mounted on
// the template catalog only; limit guards every session route, keyed by
// session id.
func RegisterEditor(e *echo.Echo, h *handler.EditorHandler, limit, cache echo.MiddlewareFunc) {
	v1 := e.Group("/v1")
	v1.GET("/templates", h.ListTemplates, cache)
	v1.GET("/layouts/:id", h.GetLayout)
	v1.DELETE("/layouts/:id", h.DeleteLayout)
	v1.DELETE("/drafts/:draft_id", h.DiscardDraft)

	g := v1.Group("/sessions", limit)

	// ---- Lifecycle ----
	g.POST("", h.CreateSession)
	g.POST("/open/:layout_id", h.OpenLayout)
	g.POST("/restore/:draft_id", h.RestoreDraft)
	g.GET("/:id", h.GetSession)
	g.GET("/:id/stats", h.SessionStats)
	g.DELETE("/:id", h.DeleteSession)

	// ---- Input events ----
	g.POST("/:id/pointer", h.Pointer)
	g.POST("/:id/keys", h.Keys)
	g.GET("/:id/drag", h.GetDrag)
	g.POST("/:id/drag", h.PickUp)
	g.DELETE("/:id/drag", h.CancelDrag)
	g.POST("/:id/drop", h.Drop)
	g.POST("/:id/context-menu", h.ContextMenu)

	// ---- Seats ----
	g.POST("/:id/seats", h.AddSeat)
	g.PATCH("/:id/seats/:seat_id", h.UpdateSeat)
	g.DELETE("/:id/seats/:seat_id", h.DeleteSeat)
	g.POST("/:id/move", h.MoveSeats)
	g.POST("/:id/select", h.Select)
	g.POST("/:id/select-region", h.SelectRegion)

	// ---- History and persistence ----
	g.POST("/:id/undo", h.Undo)
	g.POST("/:id/redo", h.Redo)
	g.POST("/:id/save", h.Save)
	g.DELETE("/:id/notices/:notice_id", h.DismissNotice)

	// ---- Viewport ----
	g.PUT("/:id/viewport", h.SetViewport)
	g.POST("/:id/pan", h.Pan)
	g.POST("/:id/zoom", h.Zoom)
}
