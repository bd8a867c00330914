package game

// Vector is a grid position or a unit direction
type Vector struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Unit directions. Y grows downward.
var (
	Up    = Vector{X: 0, Y: -1}
	Down  = Vector{X: 0, Y: 1}
	Left  = Vector{X: -1, Y: 0}
	Right = Vector{X: 1, Y: 0}
)

// Directions maps direction names to their unit vectors
var Directions = map[string]Vector{
	"up":    Up,
	"down":  Down,
	"left":  Left,
	"right": Right,
}

// Add returns the sum of two vectors
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// IsZero reports whether v is the zero vector (no direction)
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IsUnit reports whether v is one of the four unit directions
func (v Vector) IsUnit() bool {
	return (v.X == 0 && (v.Y == 1 || v.Y == -1)) || (v.Y == 0 && (v.X == 1 || v.X == -1))
}

// IsOpposite reports whether a and b point in exactly opposite directions
func IsOpposite(a, b Vector) bool {
	return !a.IsZero() && a.X+b.X == 0 && a.Y+b.Y == 0
}

// Snake is the ordered list of body segments, head first
type Snake []Vector

// Contains reports whether any segment occupies p
func (s Snake) Contains(p Vector) bool {
	for _, seg := range s {
		if seg == p {
			return true
		}
	}
	return false
}

// RandomSource yields successive draws in [0, 1)
type RandomSource func() float64

// GameState is an immutable snapshot of one game.
// Every operation in this package returns a new value instead of mutating.
type GameState struct {
	GridSize int
	Snake    Snake
	Dir      Vector // direction applied on the last step
	NextDir  Vector // pending direction for the next step
	Food     *Vector
	Score    int
	Alive    bool
	Paused   bool
}

// Head returns the head segment
func (s GameState) Head() Vector {
	return s.Snake[0]
}

// Won reports whether the game ended because the board filled up
func (s GameState) Won() bool {
	return !s.Alive && s.Food == nil
}

// Status returns a short human readable status line
func (s GameState) Status() string {
	switch {
	case !s.Alive:
		return "Game Over"
	case s.Paused:
		return "Paused"
	default:
		return "Running"
	}
}

// InBounds reports whether p lies on the board
func (s GameState) InBounds(p Vector) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.GridSize && p.Y < s.GridSize
}
