package models

// Box - obstacle record of a scene description
type Box struct {
	Name     string `json:"name"`
	Size     Vec3   `json:"size"`
	Position Vec3   `json:"position"`
}

// SceneDescription - room dimensions followed by box obstacles
type SceneDescription struct {
	Room      Vec3  `json:"room"`
	Obstacles []Box `json:"obstacles"`
}

// SceneInfo - GET /api/scene reply
type SceneInfo struct {
	Room           Vec3    `json:"room"`
	Resolution     float64 `json:"resolution"`
	Grid           [3]int  `json:"grid"`
	OccupiedVoxels int     `json:"occupied_voxels"`
	Obstacles      []Box   `json:"obstacles"`
}
