package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"flight-planner/algorithms"
	"flight-planner/models"

	"github.com/google/uuid"
)

// Broadcaster - receives planned waypoints for connected clients
type Broadcaster interface {
	BroadcastMessage(msg models.WebSocketMessage)
}

// Planner - planning service over one static scene. Safe for concurrent
// use; every request searches with its own state.
type Planner struct {
	scene   *algorithms.Scene
	desc    models.SceneDescription
	metrics *Metrics
	logs    *PlanLogBuffer
	hub     Broadcaster
}

// NewPlanner - metrics, logs and hub may be nil
func NewPlanner(scene *algorithms.Scene, desc models.SceneDescription, metrics *Metrics, logs *PlanLogBuffer, hub Broadcaster) *Planner {
	if metrics != nil {
		metrics.SetOccupiedVoxels(scene.OccupiedCount())
	}
	return &Planner{
		scene:   scene,
		desc:    desc,
		metrics: metrics,
		logs:    logs,
		hub:     hub,
	}
}

// Plan - obstacle free path from start to target
func (p *Planner) Plan(ctx context.Context, start, target algorithms.Point) (*models.PlanResult, error) {
	began := time.Now()
	path, err := p.scene.PlanPathContext(ctx, start, target)
	return p.finish(models.PlanKindPath, "a_star", start, &target, path, err, time.Since(began))
}

// Land - vertical descent from start
func (p *Planner) Land(ctx context.Context, start algorithms.Point) (*models.PlanResult, error) {
	began := time.Now()
	var path []algorithms.Point
	err := ctx.Err()
	if err != nil {
		err = errors.Join(algorithms.ErrCanceled, err)
	} else {
		path, err = p.scene.PlanLanding(start)
	}
	return p.finish(models.PlanKindLanding, "descent", start, nil, path, err, time.Since(began))
}

func (p *Planner) finish(kind, algorithm string, start algorithms.Point, target *algorithms.Point, path []algorithms.Point, err error, elapsed time.Duration) (*models.PlanResult, error) {
	requestID := uuid.New().String()
	status := ErrorKind(err)

	entry := models.PlanLog{
		CreatedAt:  time.Now(),
		RequestID:  requestID,
		Kind:       kind,
		StartX:     start.X,
		StartY:     start.Y,
		StartZ:     start.Z,
		Status:     status,
		DurationMS: float64(elapsed.Microseconds()) / 1000,
	}
	if target != nil {
		entry.TargetX, entry.TargetY, entry.TargetZ = target.X, target.Y, target.Z
	}

	if p.metrics != nil {
		p.metrics.ObservePlan(kind, status, elapsed, len(path))
	}

	if err != nil {
		entry.Message = err.Error()
		p.record(entry)
		log.Printf("❌ %s %s failed after %v: %v", kind, requestID, elapsed, err)
		return nil, err
	}

	result := &models.PlanResult{
		RequestID: requestID,
		Kind:      kind,
		Start:     models.FromPoint(start),
		Path:      models.FromPoints(path),
		Length:    algorithms.PathLength(path),
		Duration:  elapsed,
		CreatedAt: entry.CreatedAt,
	}
	if target != nil {
		t := models.FromPoint(*target)
		result.Target = &t
	}

	entry.Waypoints = len(path)
	entry.Length = result.Length
	if data, err := json.Marshal(result.Path); err == nil {
		entry.PathJSON = string(data)
	}
	p.record(entry)

	log.Printf("✅ %s %s: %d waypoints, %.2fm in %v", kind, requestID, len(path), result.Length, elapsed)
	p.broadcast(result, algorithm)
	return result, nil
}

func (p *Planner) record(entry models.PlanLog) {
	if p.logs != nil {
		p.logs.Add(entry)
	}
}

// broadcast - display copy for web clients, waypoints for flight agents
func (p *Planner) broadcast(result *models.PlanResult, algorithm string) {
	if p.hub == nil {
		return
	}
	data := models.PathData{
		RequestID: result.RequestID,
		Kind:      result.Kind,
		Points:    result.Path,
		Length:    result.Length,
		Algorithm: algorithm,
	}
	now := time.Now().UnixMilli()
	p.hub.BroadcastMessage(models.WebSocketMessage{Type: models.MessageTypePathUpdate, Data: data, Timestamp: now})
	p.hub.BroadcastMessage(models.WebSocketMessage{Type: models.MessageTypeWaypoints, Data: data, Timestamp: now})
}

// SceneInfo - summary of the loaded scene
func (p *Planner) SceneInfo() models.SceneInfo {
	return models.SceneInfo{
		Room:           p.desc.Room,
		Resolution:     p.scene.Resolution(),
		Grid:           p.scene.Size(),
		OccupiedVoxels: p.scene.OccupiedCount(),
		Obstacles:      p.desc.Obstacles,
	}
}

// ErrorKind - plan log status for err
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return models.PlanStatusOK
	case errors.Is(err, algorithms.ErrOutOfBounds):
		return models.PlanStatusOutOfBounds
	case errors.Is(err, algorithms.ErrBlockedEndpoint):
		return models.PlanStatusBlockedEndpoint
	case errors.Is(err, algorithms.ErrNoPathFound):
		return models.PlanStatusNoPath
	case errors.Is(err, algorithms.ErrCanceled):
		return models.PlanStatusCanceled
	}
	return models.PlanStatusError
}
