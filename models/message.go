package models

// ========================================
// Message types
// ========================================
const (
	// Agent -> Server -> Web
	MessageTypePosition = "position" // agent position report

	// Server -> Web
	MessageTypePathUpdate = "path_update" // planned path for display
	MessageTypeSystemInfo = "system_info"

	// Server -> Agent
	MessageTypeWaypoints = "waypoints" // waypoints to fly, in order
)

// Client types
const (
	ClientTypeAgent = "agent"
	ClientTypeWeb   = "web"
)

// ========================================
// WebSocket envelope
// ========================================
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"` // Unix timestamp (ms)
}

// PathData - payload of path_update and waypoints messages
type PathData struct {
	RequestID string  `json:"request_id"`
	Kind      string  `json:"kind"`
	Points    []Vec3  `json:"points"`
	Length    float64 `json:"length"`
	Algorithm string  `json:"algorithm"` // "a_star" | "descent"
}

// SystemInfo - connection summary
type SystemInfo struct {
	ConnectedClients map[string]int `json:"connected_clients"`
	Uptime           int64          `json:"uptime"` // seconds
}

// PositionData - position reported by a flight agent
type PositionData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}
