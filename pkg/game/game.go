package game

import (
	"github.com/trytobebee/gridsnake/pkg/config"
)

// CreateInitialState builds a fresh game. The snake lies horizontally with
// its head in the middle of the board, extending left, and heads right.
// cfg is expected to have passed config.Validate.
func CreateInitialState(cfg config.Config, rng RandomSource) GameState {
	mid := cfg.GridSize / 2
	snake := make(Snake, 0, cfg.StartLength)
	for i := 0; i < cfg.StartLength; i++ {
		snake = append(snake, Vector{X: mid - i, Y: mid})
	}

	var food *Vector
	if cfg.EasyFirstFood {
		if p, ok := easyFood(cfg.GridSize, snake); ok {
			food = &p
		}
	}
	if food == nil {
		if p, ok := PlaceFood(cfg.GridSize, snake, rng); ok {
			food = &p
		}
	}

	return GameState{
		GridSize: cfg.GridSize,
		Snake:    snake,
		Dir:      Right,
		NextDir:  Right,
		Food:     food,
		Score:    0,
		Alive:    true,
		Paused:   false,
	}
}

// SetDirection queues dir for the next step. Requests that are empty, not a
// unit direction, or reverse the direction applied on the last step are
// ignored. Reversal is checked against Dir, never NextDir, so no sequence of
// requests within one tick can turn the snake back onto its neck.
func SetDirection(s GameState, dir Vector) GameState {
	if !dir.IsUnit() || IsOpposite(s.Dir, dir) {
		return s
	}
	s.NextDir = dir
	return s
}

// TogglePause flips the paused flag of a live game
func TogglePause(s GameState) GameState {
	if !s.Alive {
		return s
	}
	s.Paused = !s.Paused
	return s
}

// effectiveDir is the direction the next step applies
func (s GameState) effectiveDir() Vector {
	if s.NextDir.IsZero() {
		return s.Dir
	}
	return s.NextDir
}

// StepState advances the game by one tick.
//
// Wall and body collisions are evaluated independently and OR'd, so a move
// that hits both produces the same terminal state as one that hits either.
// A collision freezes the prior snake, food and score. Filling the board is
// the win condition and is also terminal.
func StepState(s GameState, rng RandomSource) GameState {
	if !s.Alive || s.Paused {
		return s
	}

	dir := s.effectiveDir()
	next := s.Head().Add(dir)

	hitsWall := !s.InBounds(next)
	willEat := s.Food != nil && *s.Food == next

	// The tail vacates its cell this step unless the snake grows.
	body := s.Snake
	if !willEat {
		body = s.Snake[:len(s.Snake)-1]
	}
	hitsBody := body.Contains(next)

	if hitsWall || hitsBody {
		s.Alive = false
		return s
	}

	var snake Snake
	food := s.Food
	score := s.Score

	if willEat {
		snake = make(Snake, 0, len(s.Snake)+1)
		snake = append(snake, next)
		snake = append(snake, s.Snake...)
		score++
		food = nil
		if p, ok := PlaceFood(s.GridSize, snake, rng); ok {
			food = &p
		}
	} else {
		snake = make(Snake, 0, len(s.Snake))
		snake = append(snake, next)
		snake = append(snake, s.Snake[:len(s.Snake)-1]...)
	}

	if food == nil {
		s.Snake = snake
		s.Score = score
		s.Food = nil
		s.Alive = false
		return s
	}

	s.Snake = snake
	s.Dir = dir
	s.NextDir = dir
	s.Food = food
	s.Score = score
	return s
}
