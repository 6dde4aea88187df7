package console

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/redhat-appstudio/workshop-console/pkg/display"
	"github.com/redhat-appstudio/workshop-console/pkg/logger"
	"github.com/redhat-appstudio/workshop-console/pkg/tester"
)

// Board is the read side of the display the handlers expose.
type Board interface {
	Get(id string) (display.Content, bool)
	IDs() []string
}

// Handler serves the display regions and triggers the endpoint tester.
type Handler struct {
	board   Board
	tester  *tester.Tester
	presets []string
	limiter *rate.Limiter
}

// NewHandler creates a console API handler. A nil limiter disables rate limiting.
func NewHandler(board Board, t *tester.Tester, presets []string, limiter *rate.Limiter) (*Handler, error) {
	if board == nil {
		return nil, errors.New("display board is nil")
	}
	if t == nil {
		return nil, errors.New("endpoint tester is nil")
	}

	return &Handler{
		board:   board,
		tester:  t,
		presets: append([]string(nil), presets...),
		limiter: limiter,
	}, nil
}

// ListRegions handles GET /api/v1/regions
func (h *Handler) ListRegions(c *fiber.Ctx) error {
	ids := h.board.IDs()
	response := RegionsResponse{Regions: make([]RegionResponse, 0, len(ids))}
	for _, id := range ids {
		content, _ := h.board.Get(id)
		response.Regions = append(response.Regions, RegionResponse{ID: id, Content: content})
	}
	return c.JSON(response)
}

// GetRegion handles GET /api/v1/regions/:id
func (h *Handler) GetRegion(c *fiber.Ctx) error {
	id := c.Params("id")
	content, ok := h.board.Get(id)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "region not found: "+id)
	}
	return c.JSON(RegionResponse{ID: id, Content: content})
}

// Fetch handles POST /api/v1/fetch
// The path comes from the JSON body or the "path" query parameter. The
// response is the tester's Outcome; fetch failures are reported inside it
// with a 200, since they are displayed rather than raised.
func (h *Handler) Fetch(c *fiber.Ctx) error {
	if h.limiter != nil && !h.limiter.Allow() {
		return fiber.NewError(fiber.StatusTooManyRequests, "too many fetch requests")
	}

	path := c.Query("path")
	if path == "" && len(c.Body()) > 0 {
		var req FetchRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
		}
		path = req.Path
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return fiber.NewError(fiber.StatusBadRequest, "path is required")
	}
	if !strings.HasPrefix(path, "/") {
		return fiber.NewError(fiber.StatusBadRequest, "path must start with '/'")
	}

	outcome, err := h.tester.Fetch(c.UserContext(), path)
	if err != nil {
		logger.Error("Endpoint tester unavailable", zap.String("path", path), zap.Error(err))
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}

	return c.JSON(outcome)
}

// ListPresets handles GET /api/v1/presets
func (h *Handler) ListPresets(c *fiber.Ctx) error {
	presets := h.presets
	if presets == nil {
		presets = []string{}
	}
	return c.JSON(PresetsResponse{Presets: presets})
}
