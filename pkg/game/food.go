package game

// PlaceFood picks a uniformly random open cell. Open cells are enumerated in
// row-major order (y outer, x inner) so a fixed source always picks the same
// cell for the same snake. It returns false when the snake fills the board.
func PlaceFood(gridSize int, snake Snake, rng RandomSource) (Vector, bool) {
	occupied := make(map[Vector]struct{}, len(snake))
	for _, seg := range snake {
		occupied[seg] = struct{}{}
	}

	open := make([]Vector, 0, max(0, gridSize*gridSize-len(occupied)))
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			p := Vector{X: x, Y: y}
			if _, ok := occupied[p]; !ok {
				open = append(open, p)
			}
		}
	}

	if len(open) == 0 {
		return Vector{}, false
	}

	idx := int(rng() * float64(len(open)))
	// Guard against sources that return exactly 1.
	if idx >= len(open) {
		idx = len(open) - 1
	}
	return open[idx], true
}

// easyFood returns the cell two steps right of the head when it is free
func easyFood(gridSize int, snake Snake) (Vector, bool) {
	p := snake[0].Add(Vector{X: 2, Y: 0})
	if p.X >= gridSize || snake.Contains(p) {
		return Vector{}, false
	}
	return p, true
}
