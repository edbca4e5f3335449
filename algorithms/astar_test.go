package algorithms

import (
	"context"
	"errors"
	"math"
	"testing"
)

func referenceScene(t *testing.T) *Scene {
	t.Helper()
	obstacles := []Object{
		NewBox(1.30, 0.65, 0.75, 1.35, 0.68, 0.00),
		NewBox(1.30, 0.65, 0.75, 1.35, 2.68, 0.00),
		NewBox(1.60, 0.8, 2.20, 1.25, 1.70, 0.00),
	}
	s, err := NewScene(4.0, 4.0, 2.6, 0.1, obstacles)
	if err != nil {
		t.Fatalf("NewScene failed: %v", err)
	}
	return s
}

func emptyScene(t *testing.T) *Scene {
	t.Helper()
	s, err := NewScene(4, 4, 4, 1.0, nil)
	if err != nil {
		t.Fatalf("NewScene failed: %v", err)
	}
	return s
}

func TestPlanPathStraightLine(t *testing.T) {
	s := emptyScene(t)
	testCases := map[string]struct {
		start, target Point
	}{
		"X": {Point{0.5, 1.5, 1.5}, Point{3.5, 1.5, 1.5}},
		"Y": {Point{0.5, 0.5, 0.5}, Point{0.5, 3.5, 0.5}},
		"Z": {Point{2.5, 2.5, 3.5}, Point{2.5, 2.5, 0.5}},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			path, err := s.PlanPath(tt.start, tt.target)
			if err != nil {
				t.Fatalf("PlanPath failed: %v", err)
			}
			if len(path) != 2 || path[0] != tt.start || path[1] != tt.target {
				t.Fatalf("expected [%v %v], got %v", tt.start, tt.target, path)
			}
		})
	}
}

func TestPlanPathSameVoxel(t *testing.T) {
	s := emptyScene(t)
	start := Point{1.2, 1.2, 1.2}
	target := Point{1.8, 1.8, 1.8}
	path, err := s.PlanPath(start, target)
	if err != nil {
		t.Fatalf("PlanPath failed: %v", err)
	}
	if path[0] != start || path[len(path)-1] != target {
		t.Fatalf("path must run from start to target, got %v", path)
	}
}

func TestPlanPathOutOfBounds(t *testing.T) {
	s := emptyScene(t)
	inside := Point{1.5, 1.5, 1.5}
	testCases := map[string]struct {
		start, target Point
		role          string
	}{
		"StartBelowFloor": {Point{1.5, 1.5, -0.1}, inside, "start"},
		"StartBeyondX":    {Point{4.1, 1.5, 1.5}, inside, "start"},
		"TargetBeyondY":   {inside, Point{1.5, 5, 1.5}, "target"},
		"TargetNegative":  {inside, Point{-1, -1, -1}, "target"},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			_, err := s.PlanPath(tt.start, tt.target)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("expected ErrOutOfBounds, got %v", err)
			}
			var epErr *EndpointError
			if !errors.As(err, &epErr) || epErr.Role != tt.role {
				t.Fatalf("expected endpoint error for %s, got %v", tt.role, err)
			}
		})
	}
}

func TestPlanPathBlockedEndpoint(t *testing.T) {
	s := referenceScene(t)
	free := Point{0.5, 0.5, 1.5}
	inObstacle := Point{2.0, 2.0, 1.0}
	inTable := Point{2.0, 1.0, 0.5}

	for _, tc := range []struct {
		start, target Point
		role          string
	}{
		{inObstacle, free, "start"},
		{free, inObstacle, "target"},
		{free, inTable, "target"},
	} {
		_, err := s.PlanPath(tc.start, tc.target)
		if !errors.Is(err, ErrBlockedEndpoint) {
			t.Fatalf("expected ErrBlockedEndpoint for %v -> %v, got %v", tc.start, tc.target, err)
		}
		var epErr *EndpointError
		if !errors.As(err, &epErr) || epErr.Role != tc.role {
			t.Fatalf("expected endpoint error for %s, got %v", tc.role, err)
		}
	}
}

func TestPlanPathNoPath(t *testing.T) {
	var cage []Object
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				// a small box around the center of each neighbour of voxel (2,2,2)
				cage = append(cage, NewBox(0.2, 0.2, 0.2,
					2.4+float64(dx), 2.4+float64(dy), 2.4+float64(dz)))
			}
		}
	}
	s, err := NewScene(5, 5, 5, 1.0, cage)
	if err != nil {
		t.Fatalf("NewScene failed: %v", err)
	}
	if s.OccupiedCount() != 26 {
		t.Fatalf("expected 26 occupied voxels, got %d", s.OccupiedCount())
	}

	_, err = s.PlanPath(Point{0.5, 0.5, 0.5}, Point{2.5, 2.5, 2.5})
	if !errors.Is(err, ErrNoPathFound) {
		t.Fatalf("expected ErrNoPathFound, got %v", err)
	}
}

func TestPlanPathReferenceScene(t *testing.T) {
	s := referenceScene(t)
	start := Point{2.0, 1.0, 0.9}
	target := Point{2.0, 3.0, 0.9}

	raw, err := s.FindPath(start, target)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if len(raw) == 0 || raw[0] != start || raw[len(raw)-1] != target {
		t.Fatalf("path must run from start to target, got %v", raw)
	}

	step := s.Resolution() + Epsilon
	for i := 1; i < len(raw); i++ {
		d := raw[i].Sub(raw[i-1])
		if math.Abs(d.X) > step || math.Abs(d.Y) > step || math.Abs(d.Z) > step {
			t.Fatalf("waypoints %v and %v are more than one voxel apart", raw[i-1], raw[i])
		}
	}
	for _, p := range raw[1 : len(raw)-1] {
		cell, ok := s.Cell(p)
		if !ok || s.Occupied(cell) {
			t.Fatalf("waypoint %v is not in free space", p)
		}
	}

	path, err := s.PlanPath(start, target)
	if err != nil {
		t.Fatalf("PlanPath failed: %v", err)
	}
	if path[0] != start || path[len(path)-1] != target {
		t.Fatalf("compacted path must run from start to target, got %v", path)
	}
	if len(path) > len(raw) {
		t.Fatalf("compaction grew the path from %d to %d waypoints", len(raw), len(path))
	}
	if l := PathLength(path); l < start.DistanceTo(target) {
		t.Fatalf("path length %v is shorter than the straight line", l)
	}
}

func TestPlanPathOptimalInOpenSpace(t *testing.T) {
	s := emptyScene(t)
	start := Point{0.5, 0.5, 0.5}
	target := Point{3.5, 2.5, 1.5}
	path, err := s.FindPath(start, target)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	// any shortest 26-connected route uses one full diagonal, one face diagonal and one axis step
	want := math.Sqrt(3) + math.Sqrt(2) + 1
	if got := PathLength(path); math.Abs(got-want) > 1e-6 {
		t.Fatalf("path length %v, want %v", got, want)
	}
}

func TestPlanPathCanceled(t *testing.T) {
	s := referenceScene(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.PlanPathContext(ctx, Point{2.0, 1.0, 0.9}, Point{2.0, 3.0, 0.9})
	if !errors.Is(err, ErrCanceled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled error, got %v", err)
	}
}
