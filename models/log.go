package models

import (
	"time"
)

// Plan log status values
const (
	PlanStatusOK              = "ok"
	PlanStatusOutOfBounds     = "out_of_bounds"
	PlanStatusBlockedEndpoint = "blocked_endpoint"
	PlanStatusNoPath          = "no_path"
	PlanStatusCanceled        = "canceled"
	PlanStatusError           = "error"
)

// PlanLog - one planning request
type PlanLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	RequestID string    `gorm:"size:36;index" json:"request_id"`
	Kind      string    `gorm:"size:16" json:"kind"` // "path" | "landing"

	StartX float64 `json:"start_x"`
	StartY float64 `json:"start_y"`
	StartZ float64 `json:"start_z"`

	TargetX float64 `json:"target_x"`
	TargetY float64 `json:"target_y"`
	TargetZ float64 `json:"target_z"`

	Status     string  `gorm:"size:32;index" json:"status"`
	Message    string  `json:"message"`
	Waypoints  int     `json:"waypoints"`
	Length     float64 `json:"length"`
	DurationMS float64 `json:"duration_ms"`

	// Waypoints as JSON
	PathJSON string `gorm:"type:text" json:"path_json"`
}
