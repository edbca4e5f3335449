package handlers

import (
	"strconv"

	"flight-planner/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LogsHandler - plan log queries; db may be nil when persistence is off
type LogsHandler struct {
	db     *gorm.DB
	buffer *services.PlanLogBuffer
}

func NewLogsHandler(db *gorm.DB, buffer *services.PlanLogBuffer) *LogsHandler {
	return &LogsHandler{db: db, buffer: buffer}
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func (h *LogsHandler) unavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"success": false,
		"error":   "plan log persistence is disabled",
	})
}

// HandleGetRecentLogs - GET /api/logs/recent?limit=
func (h *LogsHandler) HandleGetRecentLogs(c *fiber.Ctx) error {
	if h.db == nil {
		return h.unavailable(c)
	}
	limit := queryInt(c, "limit", 100)

	logs, err := services.GetRecentPlanLogs(h.db, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch logs",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(logs),
		"logs":    logs,
	})
}

// HandleGetLogsByStatus - GET /api/logs/status?status=&limit=
func (h *LogsHandler) HandleGetLogsByStatus(c *fiber.Ctx) error {
	if h.db == nil {
		return h.unavailable(c)
	}
	status := c.Query("status")
	if status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "status parameter is required",
		})
	}
	limit := queryInt(c, "limit", 100)

	logs, err := services.GetPlanLogsByStatus(h.db, status, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch logs",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(logs),
		"status":  status,
		"logs":    logs,
	})
}

// HandleGetLogStats - GET /api/logs/stats?hours=
func (h *LogsHandler) HandleGetLogStats(c *fiber.Ctx) error {
	written, dropped := h.buffer.Stats()
	buffer := fiber.Map{
		"pending": h.buffer.Pending(),
		"written": written,
		"dropped": dropped,
	}
	if h.db == nil {
		return c.JSON(fiber.Map{
			"success": true,
			"buffer":  buffer,
		})
	}

	stats, err := services.GetPlanStats(h.db, queryInt(c, "hours", 24))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch stats",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
		"buffer":  buffer,
	})
}
