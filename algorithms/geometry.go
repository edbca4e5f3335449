package algorithms

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used when comparing coordinates.
const Epsilon = 1e-9

// Point - 3D point in world units (meters)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", p.X, p.Y, p.Z)
}

// DistanceTo - Euclidean distance between two points
func (p Point) DistanceTo(q Point) float64 {
	return p.Sub(q).Norm()
}

// Sub - vector p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Equal - coordinate-wise comparison within Epsilon
func (p Point) Equal(q Point) bool {
	return math.Abs(p.X-q.X) <= Epsilon &&
		math.Abs(p.Y-q.Y) <= Epsilon &&
		math.Abs(p.Z-q.Z) <= Epsilon
}

// Object is a solid that answers point containment. The set of
// implementations is closed: Cube, Scale and Translate.
type Object interface {
	Contains(p Point) bool
	isObject()
}

// Cube - the closed unit cube [0,1]^3
type Cube struct{}

func (Cube) Contains(p Point) bool {
	return 0 <= p.X && p.X <= 1 &&
		0 <= p.Y && p.Y <= 1 &&
		0 <= p.Z && p.Z <= 1
}

// Scale - non-uniform scaling of a child object.
// Zero or negative factors are not rejected here.
type Scale struct {
	Child      Object
	SX, SY, SZ float64
}

func (s Scale) Contains(p Point) bool {
	return s.Child.Contains(Point{X: p.X / s.SX, Y: p.Y / s.SY, Z: p.Z / s.SZ})
}

// Translate - translation of a child object
type Translate struct {
	Child      Object
	TX, TY, TZ float64
}

func (t Translate) Contains(p Point) bool {
	return t.Child.Contains(Point{X: p.X - t.TX, Y: p.Y - t.TY, Z: p.Z - t.TZ})
}

func (Cube) isObject()      {}
func (Scale) isObject()     {}
func (Translate) isObject() {}

// NewBox builds an axis aligned box with its minimum corner at (x, y, z).
func NewBox(sx, sy, sz, x, y, z float64) Object {
	return Translate{
		Child: Scale{Child: Cube{}, SX: sx, SY: sy, SZ: sz},
		TX:    x, TY: y, TZ: z,
	}
}
