package algorithms

// PlanLanding descends straight down from start one voxel at a time and
// stops at the floor or above the first occupied voxel. The result is
// start followed by the center of every voxel entered on the way down.
func (s *Scene) PlanLanding(start Point) ([]Point, error) {
	cell, err := s.endpoint("start", start)
	if err != nil {
		return nil, err
	}

	path := []Point{start}
	for cell.Z > 0 {
		below := cell.Add(0, 0, -1)
		if s.Occupied(below) {
			break
		}
		cell = below
		path = append(path, s.Center(cell))
	}
	return path, nil
}
