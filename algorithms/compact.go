package algorithms

// CompactPath drops repeated waypoints and every interior waypoint that
// continues in the same direction as the segment leading into it. Start
// and end are always kept. Applying it to its own output changes nothing.
func CompactPath(path []Point) []Point {
	if len(path) < 2 {
		return append([]Point(nil), path...)
	}

	out := make([]Point, 0, len(path))
	out = append(out, path[0])
	for _, p := range path[1:] {
		last := out[len(out)-1]
		if p.Equal(last) {
			continue
		}
		if len(out) >= 2 && sameDirection(last.Sub(out[len(out)-2]), p.Sub(last)) {
			out[len(out)-1] = p
			continue
		}
		out = append(out, p)
	}

	// keep the exact endpoint even when it was merged into a near duplicate
	out[len(out)-1] = path[len(path)-1]
	return out
}

func sameDirection(a, b Point) bool {
	na, nb := a.Norm(), b.Norm()
	if na <= Epsilon || nb <= Epsilon {
		return false
	}
	ua := Point{X: a.X / na, Y: a.Y / na, Z: a.Z / na}
	ub := Point{X: b.X / nb, Y: b.Y / nb, Z: b.Z / nb}
	return ua.Equal(ub)
}

// PathLength - sum of segment lengths
func PathLength(path []Point) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i-1].DistanceTo(path[i])
	}
	return total
}
