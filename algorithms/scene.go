package algorithms

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidScene is returned for non-positive room dimensions or resolution.
var ErrInvalidScene = errors.New("invalid scene")

// cellSlack absorbs floating point noise in dimension/resolution, so that
// 2.6/0.1 yields 26 cells instead of 25.
const cellSlack = 1e-9

// Voxel - integer grid coordinate
type Voxel struct {
	X, Y, Z int
}

func (v Voxel) Add(dx, dy, dz int) Voxel {
	return Voxel{X: v.X + dx, Y: v.Y + dy, Z: v.Z + dz}
}

// Scene is a box shaped room sampled into a regular occupancy grid.
// The grid is built once in NewScene and only read afterwards, so a Scene
// can be shared by concurrent searches.
type Scene struct {
	bounds     Object
	dims       Point
	resolution float64
	size       [3]int
	occupied   []bool
	obstacles  []Object
	nOccupied  int
}

// NewScene voxelizes obstacles inside a width x depth x height room.
// Each axis holds floor(dimension/resolution) cells; a trailing partial
// cell is dropped.
func NewScene(width, depth, height, resolution float64, obstacles []Object) (*Scene, error) {
	if !(resolution > 0) {
		return nil, fmt.Errorf("%w: resolution %v must be positive", ErrInvalidScene, resolution)
	}
	if !(width > 0) || !(depth > 0) || !(height > 0) {
		return nil, fmt.Errorf("%w: room %vx%vx%v must have positive dimensions", ErrInvalidScene, width, depth, height)
	}

	s := &Scene{
		bounds:     Scale{Child: Cube{}, SX: width, SY: depth, SZ: height},
		dims:       Point{X: width, Y: depth, Z: height},
		resolution: resolution,
		size: [3]int{
			cellCount(width, resolution),
			cellCount(depth, resolution),
			cellCount(height, resolution),
		},
		obstacles: append([]Object(nil), obstacles...),
	}
	if s.size[0] == 0 || s.size[1] == 0 || s.size[2] == 0 {
		return nil, fmt.Errorf("%w: resolution %v is coarser than the room", ErrInvalidScene, resolution)
	}
	s.voxelize()
	return s, nil
}

func cellCount(dim, resolution float64) int {
	return int(math.Floor(dim/resolution + cellSlack))
}

func (s *Scene) voxelize() {
	s.occupied = make([]bool, s.size[0]*s.size[1]*s.size[2])
	for z := 0; z < s.size[2]; z++ {
		for y := 0; y < s.size[1]; y++ {
			for x := 0; x < s.size[0]; x++ {
				v := Voxel{X: x, Y: y, Z: z}
				c := s.Center(v)
				for _, o := range s.obstacles {
					if o.Contains(c) {
						s.occupied[s.addr(v)] = true
						s.nOccupied++
						break
					}
				}
			}
		}
	}
}

func (s *Scene) addr(v Voxel) int {
	return v.X + (v.Y+v.Z*s.size[1])*s.size[0]
}

// Size - number of cells per axis
func (s *Scene) Size() [3]int { return s.size }

func (s *Scene) Resolution() float64 { return s.resolution }

// Dimensions - room width, depth and height
func (s *Scene) Dimensions() Point { return s.dims }

func (s *Scene) OccupiedCount() int { return s.nOccupied }

func (s *Scene) ObstacleCount() int { return len(s.obstacles) }

// Contains reports whether p lies inside the closed room volume.
func (s *Scene) Contains(p Point) bool {
	return s.bounds.Contains(p)
}

// InGrid reports whether v indexes a cell of the occupancy grid.
func (s *Scene) InGrid(v Voxel) bool {
	return v.X >= 0 && v.X < s.size[0] &&
		v.Y >= 0 && v.Y < s.size[1] &&
		v.Z >= 0 && v.Z < s.size[2]
}

// Occupied reports whether v is blocked. Cells outside the grid count
// as blocked.
func (s *Scene) Occupied(v Voxel) bool {
	if !s.InGrid(v) {
		return true
	}
	return s.occupied[s.addr(v)]
}

// Center - world point in the middle of v
func (s *Scene) Center(v Voxel) Point {
	return Point{
		X: (float64(v.X) + 0.5) * s.resolution,
		Y: (float64(v.Y) + 0.5) * s.resolution,
		Z: (float64(v.Z) + 0.5) * s.resolution,
	}
}

// Cell - voxel containing p. Points on the far faces of the room, or in a
// dropped partial cell, map to the last cell of the axis. The second
// result is false if p is outside the room.
func (s *Scene) Cell(p Point) (Voxel, bool) {
	if !s.Contains(p) {
		return Voxel{}, false
	}
	return Voxel{
		X: clampIndex(p.X, s.resolution, s.size[0]),
		Y: clampIndex(p.Y, s.resolution, s.size[1]),
		Z: clampIndex(p.Z, s.resolution, s.size[2]),
	}, true
}

func clampIndex(c, resolution float64, n int) int {
	i := int(math.Floor(c / resolution))
	if i >= n {
		return n - 1
	}
	if i < 0 {
		return 0
	}
	return i
}
