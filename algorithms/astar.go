package algorithms

import (
	"context"
	"fmt"
)

// cancelCheckInterval is the number of queue pops between context checks.
const cancelCheckInterval = 256

type openEntry struct {
	cell Voxel
	f    float64
}

func entryScore(e openEntry) float64 { return e.f }

// PlanPath finds an obstacle free path from start to target and compacts
// it to its turning points. The first waypoint is start and the last is
// target.
func (s *Scene) PlanPath(start, target Point) ([]Point, error) {
	return s.PlanPathContext(context.Background(), start, target)
}

// PlanPathContext is PlanPath with cancellation.
func (s *Scene) PlanPathContext(ctx context.Context, start, target Point) ([]Point, error) {
	path, err := s.FindPathContext(ctx, start, target)
	if err != nil {
		return nil, err
	}
	return CompactPath(path), nil
}

// FindPath returns the uncompacted path: start, the center of every voxel
// visited from the start voxel to the target voxel, then target.
func (s *Scene) FindPath(start, target Point) ([]Point, error) {
	return s.FindPathContext(context.Background(), start, target)
}

func (s *Scene) FindPathContext(ctx context.Context, start, target Point) ([]Point, error) {
	startCell, err := s.endpoint("start", start)
	if err != nil {
		return nil, err
	}
	targetCell, err := s.endpoint("target", target)
	if err != nil {
		return nil, err
	}
	goal := s.Center(targetCell)

	explored := make(map[Voxel]bool)
	pending := map[Voxel]bool{startCell: true}
	costs := map[Voxel]float64{startCell: 0}
	cameFrom := map[Voxel]Voxel{startCell: startCell}
	queue := NewTree(entryScore).Insert(openEntry{cell: startCell, f: start.DistanceTo(target)})

	for pops := 0; !queue.IsEmpty(); pops++ {
		if pops%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCanceled, err)
			}
		}

		entry, rest, err := queue.PopMin()
		if err != nil {
			return nil, err
		}
		queue = rest

		current := entry.cell
		// the queue has no decrease-key, so outdated duplicates are skipped here
		if !pending[current] {
			continue
		}
		delete(pending, current)
		explored[current] = true

		if current == targetCell {
			return s.reconstructPath(cameFrom, current, start, target), nil
		}

		p := s.Center(current)
		g := costs[current]

		for dz := -1; dz <= 1; dz++ {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					n := current.Add(dx, dy, dz)
					if explored[n] || !s.InGrid(n) || s.Occupied(n) {
						continue
					}
					q := s.Center(n)
					if !s.Contains(q) {
						continue
					}

					cost := g + p.DistanceTo(q)
					if old, ok := costs[n]; ok && cost >= old {
						continue
					}
					costs[n] = cost
					cameFrom[n] = current
					pending[n] = true
					queue = queue.Insert(openEntry{cell: n, f: cost + q.DistanceTo(goal)})
				}
			}
		}
	}

	return nil, ErrNoPathFound
}

// endpoint validates a request endpoint and returns its voxel.
func (s *Scene) endpoint(role string, p Point) (Voxel, error) {
	cell, ok := s.Cell(p)
	if !ok {
		return Voxel{}, &EndpointError{Role: role, Point: p, Err: ErrOutOfBounds}
	}
	if s.Occupied(cell) {
		return Voxel{}, &EndpointError{Role: role, Point: p, Err: ErrBlockedEndpoint}
	}
	return cell, nil
}

func (s *Scene) reconstructPath(cameFrom map[Voxel]Voxel, end Voxel, start, target Point) []Point {
	path := []Point{target, s.Center(end)}
	for end != cameFrom[end] {
		end = cameFrom[end]
		path = append(path, s.Center(end))
	}
	path = append(path, start)

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
