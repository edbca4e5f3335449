package services

import (
	"errors"
	"fmt"
	"os"

	"flight-planner/algorithms"
	"flight-planner/models"

	"gopkg.in/yaml.v3"
)

// ErrSceneDescription - malformed room description
var ErrSceneDescription = errors.New("invalid scene description")

// ReferenceScene - built-in room with two tables and one tall obstacle
func ReferenceScene() models.SceneDescription {
	return models.SceneDescription{
		Room: models.Vec3{4.0, 4.0, 2.6},
		Obstacles: []models.Box{
			{Name: "table1", Size: models.Vec3{1.30, 0.65, 0.75}, Position: models.Vec3{1.35, 0.68, 0.00}},
			{Name: "table2", Size: models.Vec3{1.30, 0.65, 0.75}, Position: models.Vec3{1.35, 2.68, 0.00}},
			{Name: "obstacle", Size: models.Vec3{1.60, 0.8, 2.20}, Position: models.Vec3{1.25, 1.70, 0.00}},
		},
	}
}

// LoadSceneFile - read a YAML room description from disk
func LoadSceneFile(path string) (models.SceneDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.SceneDescription{}, fmt.Errorf("read scene file: %w", err)
	}
	return ParseSceneYAML(data)
}

// ParseSceneYAML decodes the room description list. The first record
// holds the room dimensions, every later record one box:
//
//	- room:
//	  - [4.0, 4.0, 2.6]
//	- table1:
//	  - [1.30, 0.65, 0.75]
//	  - [1.35, 0.68, 0.00]
func ParseSceneYAML(data []byte) (models.SceneDescription, error) {
	var records []map[string][][]float64
	if err := yaml.Unmarshal(data, &records); err != nil {
		return models.SceneDescription{}, fmt.Errorf("%w: %v", ErrSceneDescription, err)
	}
	if len(records) == 0 {
		return models.SceneDescription{}, fmt.Errorf("%w: missing room record", ErrSceneDescription)
	}

	var desc models.SceneDescription
	for i, record := range records {
		if len(record) != 1 {
			return models.SceneDescription{}, fmt.Errorf("%w: record %d must have exactly one name", ErrSceneDescription, i)
		}
		for name, vectors := range record {
			if i == 0 {
				if len(vectors) < 1 {
					return models.SceneDescription{}, fmt.Errorf("%w: room %q has no dimensions", ErrSceneDescription, name)
				}
				room, err := vec3(name, vectors[0])
				if err != nil {
					return models.SceneDescription{}, err
				}
				desc.Room = room
				continue
			}

			if len(vectors) != 2 {
				return models.SceneDescription{}, fmt.Errorf("%w: box %q needs dimensions and position", ErrSceneDescription, name)
			}
			size, err := vec3(name, vectors[0])
			if err != nil {
				return models.SceneDescription{}, err
			}
			pos, err := vec3(name, vectors[1])
			if err != nil {
				return models.SceneDescription{}, err
			}
			desc.Obstacles = append(desc.Obstacles, models.Box{Name: name, Size: size, Position: pos})
		}
	}

	if err := ValidateScene(desc); err != nil {
		return models.SceneDescription{}, err
	}
	return desc, nil
}

func vec3(name string, v []float64) (models.Vec3, error) {
	if len(v) != 3 {
		return models.Vec3{}, fmt.Errorf("%w: %q expects 3 numbers, got %d", ErrSceneDescription, name, len(v))
	}
	return models.Vec3{v[0], v[1], v[2]}, nil
}

// ValidateScene - positive room dimensions and box sizes
func ValidateScene(desc models.SceneDescription) error {
	for _, d := range desc.Room {
		if !(d > 0) {
			return fmt.Errorf("%w: room dimensions %v must be positive", ErrSceneDescription, desc.Room)
		}
	}
	for _, b := range desc.Obstacles {
		for _, d := range b.Size {
			if !(d > 0) {
				return fmt.Errorf("%w: box %q size %v must be positive", ErrSceneDescription, b.Name, b.Size)
			}
		}
	}
	return nil
}

// BuildScene - voxelize a description at the given resolution
func BuildScene(desc models.SceneDescription, resolution float64) (*algorithms.Scene, error) {
	if err := ValidateScene(desc); err != nil {
		return nil, err
	}
	obstacles := make([]algorithms.Object, 0, len(desc.Obstacles))
	for _, b := range desc.Obstacles {
		obstacles = append(obstacles, algorithms.NewBox(
			b.Size[0], b.Size[1], b.Size[2],
			b.Position[0], b.Position[1], b.Position[2],
		))
	}
	return algorithms.NewScene(desc.Room[0], desc.Room[1], desc.Room[2], resolution, obstacles)
}
