package models

import "time"

// AgentInfo - flight agent connected over websocket
type AgentInfo struct {
	ID           string       `json:"id"`
	RegisteredAt time.Time    `json:"registered_at"`
	LastUpdate   time.Time    `json:"last_update"`
	Position     PositionData `json:"position"`
	HasPosition  bool         `json:"has_position"`
}
