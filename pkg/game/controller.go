package game

// Controller decides the direction a snake should take on the next step
type Controller interface {
	NextDirection(s GameState) Vector
}

// ControllerFunc adapts a plain function to Controller
type ControllerFunc func(s GameState) Vector

// NextDirection calls f(s)
func (f ControllerFunc) NextDirection(s GameState) Vector {
	return f(s)
}

// Autopilot is a heuristic controller for demo play. It prefers moves that
// keep the most reachable space and, among those, moves toward the food.
type Autopilot struct{}

// NextDirection returns the best non-reversing move, or the current
// direction when every move is fatal.
func (Autopilot) NextDirection(s GameState) Vector {
	if !s.Alive || len(s.Snake) == 0 {
		return s.Dir
	}
	dir, _ := calculateBestMove(s)
	return dir
}
