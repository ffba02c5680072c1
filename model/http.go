package model

type AccompanimentResponse struct {
	RunID       string   `json:"run_id"`
	Key         string   `json:"key"`
	Seed        int64    `json:"seed"`
	Generations int      `json:"generations"`
	Fitness     int      `json:"fitness"`
	Chords      []string `json:"chords"`
	Notes       []Chord  `json:"notes"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
