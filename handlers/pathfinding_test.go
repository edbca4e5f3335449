package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flight-planner/algorithms"
	"flight-planner/models"
	"flight-planner/services"

	"github.com/gofiber/fiber/v2"
)

// 2x2x2 room at 0.5 resolution, split in half by a wall covering x cells 2
func newTestApp(t *testing.T) (*fiber.App, *AgentManager) {
	t.Helper()
	desc := models.SceneDescription{
		Room: models.Vec3{2, 2, 2},
		Obstacles: []models.Box{
			{Name: "wall", Size: models.Vec3{0.5, 2, 2}, Position: models.Vec3{1.0, 0, 0}},
		},
	}
	scene, err := services.BuildScene(desc, 0.5)
	if err != nil {
		t.Fatalf("BuildScene failed: %v", err)
	}
	agents := NewAgentManager()
	h := NewPathfindingHandler(services.NewPlanner(scene, desc, nil, nil, nil), agents, time.Second)

	app := fiber.New()
	app.Get("/api/scene", h.HandleScene)
	app.Post("/api/plan", h.HandlePlan)
	app.Post("/api/land", h.HandleLand)
	app.Get("/api/agents", h.HandleAgents)
	app.Post("/api/agents/:id/land", h.HandleAgentLand)
	return app, agents
}

func doJSON(t *testing.T, app *fiber.App, method, url, body string) (int, models.PlanResponse) {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out models.PlanResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, out
}

func TestHandlePlan(t *testing.T) {
	app, _ := newTestApp(t)

	testCases := map[string]struct {
		body      string
		status    int
		errorKind string
	}{
		"Success": {
			body:   `{"start":[0.25,0.25,0.25],"target":[0.75,1.75,1.75]}`,
			status: http.StatusOK,
		},
		"MalformedBody": {
			body:      `{"start":`,
			status:    http.StatusBadRequest,
			errorKind: "bad_request",
		},
		"MissingTarget": {
			body:      `{"start":[0.25,0.25,0.25]}`,
			status:    http.StatusBadRequest,
			errorKind: "bad_request",
		},
		"OutOfBounds": {
			body:      `{"start":[5,0,0],"target":[0.25,0.25,0.25]}`,
			status:    http.StatusUnprocessableEntity,
			errorKind: models.PlanStatusOutOfBounds,
		},
		"BlockedTarget": {
			body:      `{"start":[0.25,0.25,0.25],"target":[1.25,1,1]}`,
			status:    http.StatusUnprocessableEntity,
			errorKind: models.PlanStatusBlockedEndpoint,
		},
		"NoPath": {
			body:      `{"start":[0.25,0.25,0.25],"target":[1.75,1.75,1.75]}`,
			status:    http.StatusNotFound,
			errorKind: models.PlanStatusNoPath,
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			status, resp := doJSON(t, app, http.MethodPost, "/api/plan", tt.body)
			if status != tt.status {
				t.Fatalf("status = %d, want %d (%+v)", status, tt.status, resp)
			}
			if resp.ErrorKind != tt.errorKind {
				t.Errorf("error_kind = %q, want %q", resp.ErrorKind, tt.errorKind)
			}
			if tt.status != http.StatusOK {
				if resp.Success {
					t.Error("expected success=false")
				}
				return
			}
			if !resp.Success || resp.RequestID == "" {
				t.Errorf("unexpected response %+v", resp)
			}
			if resp.Path[0] != (models.Vec3{0.25, 0.25, 0.25}) || resp.Path[len(resp.Path)-1] != (models.Vec3{0.75, 1.75, 1.75}) {
				t.Errorf("path must run from start to target, got %v", resp.Path)
			}
		})
	}
}

func TestHandleLand(t *testing.T) {
	app, _ := newTestApp(t)

	status, resp := doJSON(t, app, http.MethodPost, "/api/land", `{"start":[0.25,0.25,1.75]}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%+v)", status, resp)
	}
	last := resp.Path[len(resp.Path)-1]
	if last != (models.Vec3{0.25, 0.25, 0.25}) {
		t.Errorf("landing must end on the floor cell, got %v", last)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/land", `{}`)
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestHandleAgentLand(t *testing.T) {
	app, agents := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/agents/ghost/land", ``)
	if status != http.StatusNotFound {
		t.Errorf("unknown agent: status = %d, want 404", status)
	}

	if _, err := agents.Register("drone-1"); err != nil {
		t.Fatal(err)
	}
	status, _ = doJSON(t, app, http.MethodPost, "/api/agents/drone-1/land", ``)
	if status != http.StatusConflict {
		t.Errorf("agent without position: status = %d, want 409", status)
	}

	if err := agents.UpdatePosition("drone-1", models.PositionData{X: 1.75, Y: 0.25, Z: 1.25}); err != nil {
		t.Fatal(err)
	}
	status, resp := doJSON(t, app, http.MethodPost, "/api/agents/drone-1/land", ``)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%+v)", status, resp)
	}
	if resp.Path[0] != (models.Vec3{1.75, 0.25, 1.25}) {
		t.Errorf("landing must start at the agent position, got %v", resp.Path[0])
	}
}

func TestHandleScene(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/scene", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Success bool             `json:"success"`
		Scene   models.SceneInfo `json:"scene"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Scene.Grid != [3]int{4, 4, 4} {
		t.Errorf("grid = %v, want [4 4 4]", out.Scene.Grid)
	}
	// one 4x4 slab of cells
	if out.Scene.OccupiedVoxels != 16 {
		t.Errorf("occupied = %d, want 16", out.Scene.OccupiedVoxels)
	}
}

func TestStatusFor(t *testing.T) {
	testCases := map[string]struct {
		err    error
		status int
	}{
		"OutOfBounds": {fmt.Errorf("start: %w", algorithms.ErrOutOfBounds), fiber.StatusUnprocessableEntity},
		"Blocked":     {algorithms.ErrBlockedEndpoint, fiber.StatusUnprocessableEntity},
		"NoPath":      {algorithms.ErrNoPathFound, fiber.StatusNotFound},
		"Canceled":    {fmt.Errorf("%w: %w", algorithms.ErrCanceled, context.DeadlineExceeded), fiber.StatusGatewayTimeout},
		"Other":       {errors.New("boom"), fiber.StatusInternalServerError},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.status {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.status)
			}
		})
	}
}
