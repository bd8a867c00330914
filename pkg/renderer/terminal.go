package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
)

// TerminalRenderer draws the board with ANSI escape codes and emoji cells
type TerminalRenderer struct {
	out    io.Writer
	board  [][]int
	buffer strings.Builder
	clear  bool
}

// Cell types for the board
const (
	cellEmpty = iota
	cellWall
	cellHead
	cellBody
	cellFood
	cellCrash
)

var cellChars = map[int]string{
	cellEmpty: config.CharEmpty,
	cellWall:  config.CharWall,
	cellHead:  config.CharHead,
	cellBody:  config.CharBody,
	cellFood:  config.CharFood,
	cellCrash: config.CharCrash,
}

// NewTerminalRenderer creates a renderer for a gridSize x gridSize board.
// The board gets a one cell wall border on every side.
func NewTerminalRenderer(out io.Writer, gridSize int) *TerminalRenderer {
	// Pre-allocate board to reduce GC pressure
	board := make([][]int, gridSize+2)
	for i := range board {
		board[i] = make([]int, gridSize+2)
	}

	return &TerminalRenderer{
		out:   out,
		board: board,
		clear: true,
	}
}

// SetClearScreen controls whether each frame starts by clearing the terminal
func (r *TerminalRenderer) SetClearScreen(clear bool) {
	r.clear = clear
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	fmt.Fprint(r.out, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	fmt.Fprint(r.out, "\033[?25l")
}

// Render draws one frame
func (r *TerminalRenderer) Render(s game.GameState) error {
	if len(r.board) != s.GridSize+2 {
		return fmt.Errorf("renderer sized for %dx%d grid, got %dx%d",
			len(r.board)-2, len(r.board)-2, s.GridSize, s.GridSize)
	}

	r.buffer.Reset()
	r.fillBoard(s)

	if r.clear {
		// Cursor home and clear, cheaper than exec'ing clear(1)
		r.buffer.WriteString("\033[H\033[2J\033[3J")
	}

	r.buffer.WriteString("\r\n  🐍 SNAKE 🐍\r\n")
	r.buffer.WriteString(fmt.Sprintf("  Score: %d  |  Length: %d  |  %s\r\n\r\n", s.Score, len(s.Snake), s.Status()))

	for _, row := range r.board {
		r.buffer.WriteString("  ")
		for _, cell := range row {
			r.buffer.WriteString(cellChars[cell])
		}
		r.buffer.WriteString("\r\n")
	}

	r.buffer.WriteString("\r\n  WASD or arrow keys to move, O for autopilot\r\n")
	r.buffer.WriteString("  Space/P to pause, R to restart, Q to quit\r\n")

	switch {
	case s.Won():
		r.buffer.WriteString("\r\n  🏆 BOARD FILLED! Press R to play again or Q to quit\r\n")
	case !s.Alive:
		r.buffer.WriteString("\r\n  💀 GAME OVER! Press R to restart or Q to quit\r\n")
	case s.Paused:
		r.buffer.WriteString("\r\n  ⏸️  PAUSED - Press P to continue\r\n")
	}

	_, err := io.WriteString(r.out, r.buffer.String())
	return err
}

// fillBoard maps the state onto the board. Board coordinates are grid
// coordinates shifted by one for the wall border.
func (r *TerminalRenderer) fillBoard(s game.GameState) {
	last := len(r.board) - 1
	for y := range r.board {
		for x := range r.board[y] {
			if x == 0 || y == 0 || x == last || y == last {
				r.board[y][x] = cellWall
			} else {
				r.board[y][x] = cellEmpty
			}
		}
	}

	if s.Food != nil {
		r.board[s.Food.Y+1][s.Food.X+1] = cellFood
	}

	// Draw tail first so the head wins on overlap
	for i := len(s.Snake) - 1; i >= 0; i-- {
		p := s.Snake[i]
		if i == 0 {
			r.board[p.Y+1][p.X+1] = cellHead
		} else {
			r.board[p.Y+1][p.X+1] = cellBody
		}
	}

	// Mark the crash on the cell the head was heading into
	if !s.Alive && !s.Won() {
		crash := s.Head().Add(s.NextDir)
		if crash.X >= -1 && crash.Y >= -1 && crash.X <= s.GridSize && crash.Y <= s.GridSize {
			r.board[crash.Y+1][crash.X+1] = cellCrash
		}
	}
}
