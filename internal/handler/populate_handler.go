package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"gamecatalog/backend/internal/hub"
	"gamecatalog/backend/internal/populate"

	"github.com/gin-gonic/gin"
)

// Runner runs one populate pass.
type Runner interface {
	Populate(ctx context.Context, params url.Values) (*populate.Report, error)
}

// PopulateHandler triggers imports and streams their progress.
type PopulateHandler struct {
	runner Runner
	hub    *hub.Hub
}

func NewPopulateHandler(runner Runner, h *hub.Hub) *PopulateHandler {
	return &PopulateHandler{runner: runner, hub: h}
}

// Populate godoc
// @Summary      Import games from the upstream catalog
// @Description  Fetches one catalog page (query parameters are forwarded upstream), imports the configured selection and returns a per-game report.
// @Tags         admin-games
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  populate.Report
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      502  {object}  ErrorResponse "Upstream catalog failed"
// @Router       /admin/games/populate [post]
func (h *PopulateHandler) Populate(c *gin.Context) {
	report, err := h.runner.Populate(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// Events godoc
// @Summary      Stream populate progress
// @Description  Server-sent events: one "game" event per processed product and a "done" event with the totals.
// @Tags         admin-games
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200
// @Router       /admin/games/populate/events [get]
func (h *PopulateHandler) Events(c *gin.Context) {
	client := make(hub.Client, 64)
	h.hub.Subscribe(populate.Topic, client)
	defer h.hub.Unsubscribe(populate.Topic, client)

	slog.Debug("populate events subscriber connected", "subscribers", h.hub.Subscribers(populate.Topic))

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(msg))
			return true
		}
	})
}
