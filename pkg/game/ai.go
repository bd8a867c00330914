package game

// candidateDirs is the fixed evaluation order; ties go to the earlier entry
var candidateDirs = []Vector{Up, Down, Left, Right}

// calculateBestMove scores every legal move and returns the best one.
// The bool is false when no move survives.
func calculateBestMove(s GameState) (Vector, bool) {
	head := s.Head()
	snakeLen := len(s.Snake)

	bestDir := s.Dir
	bestScore := -1000000.0
	found := false

	for _, dir := range candidateDirs {
		// Prevent 180-degree turns
		if IsOpposite(s.Dir, dir) {
			continue
		}

		next := head.Add(dir)
		eats := s.Food != nil && *s.Food == next
		if !isSafe(s, next, eats) {
			continue
		}

		reachable := countReachableSpace(s, next, eats)
		score := float64(reachable) * 50.0

		if reachable < snakeLen {
			score -= 5000.0
		}

		if s.Food != nil {
			distToFood := float64(abs(s.Food.X-next.X) + abs(s.Food.Y-next.Y))
			score += (100.0 - distToFood) * 2.0
			if eats {
				score += 1000.0
			}
		}

		// Low on space: follow the tail, it is the cell that frees up first.
		if threshold := snakeLen + 10; reachable < threshold {
			tail := s.Snake[snakeLen-1]
			distToTail := float64(abs(tail.X-next.X) + abs(tail.Y-next.Y))
			urgency := float64(threshold - reachable)
			score += (100.0 - distToTail) * urgency * 0.5
		}

		if score > bestScore {
			bestScore = score
			bestDir = dir
			found = true
		}
	}

	return bestDir, found
}

// blocked returns the cells occupied after the snake moves its head to a
// neighbouring cell. The tail is freed unless the move eats.
func blocked(s GameState, eats bool) Snake {
	if eats {
		return s.Snake
	}
	return s.Snake[:len(s.Snake)-1]
}

// isSafe checks whether moving the head to p survives the step
func isSafe(s GameState, p Vector, eats bool) bool {
	return s.InBounds(p) && !blocked(s, eats).Contains(p)
}

// countReachableSpace uses a simple flood fill to count safe tiles
func countReachableSpace(s GameState, start Vector, eats bool) int {
	walls := make(map[Vector]struct{}, len(s.Snake)+1)
	for _, seg := range blocked(s, eats) {
		walls[seg] = struct{}{}
	}

	visited := map[Vector]struct{}{start: {}}
	queue := []Vector{start}
	count := 0

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		count++

		for _, d := range candidateDirs {
			n := p.Add(d)
			if !s.InBounds(n) {
				continue
			}
			if _, ok := walls[n]; ok {
				continue
			}
			if _, ok := visited[n]; ok {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return count
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
