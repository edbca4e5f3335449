package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"flight-planner/algorithms"
	"flight-planner/models"
	"flight-planner/services"

	"github.com/gofiber/fiber/v2"
)

// PathfindingHandler - planning endpoints over the loaded scene
type PathfindingHandler struct {
	planner *services.Planner
	agents  *AgentManager
	timeout time.Duration
}

// NewPathfindingHandler - timeout <= 0 disables the per-request deadline
func NewPathfindingHandler(planner *services.Planner, agents *AgentManager, timeout time.Duration) *PathfindingHandler {
	return &PathfindingHandler{planner: planner, agents: agents, timeout: timeout}
}

func (h *PathfindingHandler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.timeout)
}

// HandlePlan - POST /api/plan
func (h *PathfindingHandler) HandlePlan(c *fiber.Ctx) error {
	var req models.PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Start == nil || req.Target == nil {
		return badRequest(c, "start and target are required")
	}

	log.Printf("📍 plan request: %v -> %v", req.Start.Point(), req.Target.Point())

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.planner.Plan(ctx, req.Start.Point(), req.Target.Point())
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(planResponse(result))
}

// HandleLand - POST /api/land
func (h *PathfindingHandler) HandleLand(c *fiber.Ctx) error {
	var req models.LandRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Start == nil {
		return badRequest(c, "start is required")
	}
	return h.land(c, req.Start.Point())
}

// HandleAgentLand - POST /api/agents/:id/land, descends from the agent's last reported position
func (h *PathfindingHandler) HandleAgentLand(c *fiber.Ctx) error {
	info, err := h.agents.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.PlanResponse{
			Success: false,
			Message: err.Error(),
		})
	}
	if !info.HasPosition {
		return c.Status(fiber.StatusConflict).JSON(models.PlanResponse{
			Success: false,
			Message: "agent has not reported a position yet",
		})
	}
	pos := algorithms.Point{X: info.Position.X, Y: info.Position.Y, Z: info.Position.Z}
	return h.land(c, pos)
}

func (h *PathfindingHandler) land(c *fiber.Ctx, start algorithms.Point) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.planner.Land(ctx, start)
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(planResponse(result))
}

// HandleScene - GET /api/scene
func (h *PathfindingHandler) HandleScene(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"scene":   h.planner.SceneInfo(),
	})
}

// HandleAgents - GET /api/agents
func (h *PathfindingHandler) HandleAgents(c *fiber.Ctx) error {
	agents := h.agents.List()
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(agents),
		"agents":  agents,
	})
}

func planResponse(result *models.PlanResult) models.PlanResponse {
	return models.PlanResponse{
		Success:    true,
		RequestID:  result.RequestID,
		Path:       result.Path,
		Length:     result.Length,
		DurationMS: float64(result.Duration.Microseconds()) / 1000,
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.PlanResponse{
		Success:   false,
		ErrorKind: "bad_request",
		Message:   message,
	})
}

// statusFor - HTTP status of a planning failure
func statusFor(err error) int {
	switch {
	case errors.Is(err, algorithms.ErrOutOfBounds), errors.Is(err, algorithms.ErrBlockedEndpoint):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, algorithms.ErrNoPathFound):
		return fiber.StatusNotFound
	case errors.Is(err, algorithms.ErrCanceled):
		return fiber.StatusGatewayTimeout
	}
	return fiber.StatusInternalServerError
}

func planError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(models.PlanResponse{
		Success:   false,
		ErrorKind: services.ErrorKind(err),
		Message:   err.Error(),
	})
}
