package models

import (
	"time"

	"flight-planner/algorithms"
)

// Vec3 - [x, y, z] on the wire
type Vec3 [3]float64

func (v Vec3) Point() algorithms.Point {
	return algorithms.Point{X: v[0], Y: v[1], Z: v[2]}
}

func FromPoint(p algorithms.Point) Vec3 {
	return Vec3{p.X, p.Y, p.Z}
}

func FromPoints(ps []algorithms.Point) []Vec3 {
	out := make([]Vec3, len(ps))
	for i, p := range ps {
		out[i] = FromPoint(p)
	}
	return out
}

// PlanRequest - POST /api/plan body
type PlanRequest struct {
	Start  *Vec3 `json:"start"`
	Target *Vec3 `json:"target"`
}

// LandRequest - POST /api/land body
type LandRequest struct {
	Start *Vec3 `json:"start"`
}

// Plan kinds
const (
	PlanKindPath    = "path"
	PlanKindLanding = "landing"
)

// PlanResult - outcome of a successful planning request
type PlanResult struct {
	RequestID string        `json:"request_id"`
	Kind      string        `json:"kind"`
	Start     Vec3          `json:"start"`
	Target    *Vec3         `json:"target,omitempty"`
	Path      []Vec3        `json:"path"`
	Length    float64       `json:"length"`
	Duration  time.Duration `json:"-"`
	CreatedAt time.Time     `json:"created_at"`
}

// PlanResponse - JSON reply of the planning endpoints
type PlanResponse struct {
	Success    bool    `json:"success"`
	RequestID  string  `json:"request_id,omitempty"`
	Path       []Vec3  `json:"path,omitempty"`
	Length     float64 `json:"length,omitempty"`
	DurationMS float64 `json:"duration_ms,omitempty"`
	ErrorKind  string  `json:"error_kind,omitempty"`
	Message    string  `json:"message,omitempty"`
}
