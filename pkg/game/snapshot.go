package game

import "encoding/json"

// Snapshot is a serializable view of a GameState for presenters and logs
type Snapshot struct {
	GridSize int      `json:"gridSize"`
	Snake    []Vector `json:"snake"`
	Dir      Vector   `json:"dir"`
	NextDir  Vector   `json:"nextDir"`
	Food     *Vector  `json:"food,omitempty"`
	Score    int      `json:"score"`
	Length   int      `json:"length"`
	Alive    bool     `json:"alive"`
	Paused   bool     `json:"paused"`
	Won      bool     `json:"won"`
	Status   string   `json:"status"`
}

// Snapshot returns a copy of the state safe to hand to other goroutines
func (s GameState) Snapshot() Snapshot {
	snake := make([]Vector, len(s.Snake))
	copy(snake, s.Snake)

	var food *Vector
	if s.Food != nil {
		f := *s.Food
		food = &f
	}

	return Snapshot{
		GridSize: s.GridSize,
		Snake:    snake,
		Dir:      s.Dir,
		NextDir:  s.NextDir,
		Food:     food,
		Score:    s.Score,
		Length:   len(s.Snake),
		Alive:    s.Alive,
		Paused:   s.Paused,
		Won:      s.Won(),
		Status:   s.Status(),
	}
}

// String renders the snapshot as compact JSON
func (s Snapshot) String() string {
	b, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(b)
}
