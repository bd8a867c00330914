package renderer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/input"
	"github.com/trytobebee/gridsnake/pkg/loop"
)

const headerRows = 2

// Empty cells alternate between two dim accents in a checkerboard
var (
	accentYellow = tcell.NewRGBColor(48, 44, 12)
	accentGreen  = tcell.NewRGBColor(12, 44, 20)
	wallStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// ScreenRenderer draws the board on a tcell screen. Each grid cell is two
// terminal columns wide so the board looks square.
type ScreenRenderer struct {
	screen tcell.Screen
	now    func() time.Time
}

// NewScreenRenderer wraps an initialised screen
func NewScreenRenderer(screen tcell.Screen) *ScreenRenderer {
	return &ScreenRenderer{screen: screen, now: time.Now}
}

// Render draws one frame. It fails when the terminal is too small for the board.
func (r *ScreenRenderer) Render(s game.GameState) error {
	w, h := r.screen.Size()
	needW, needH := (s.GridSize+2)*2, s.GridSize+2+headerRows
	if w < needW || h < needH {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d for a %dx%d grid",
			w, h, needW, needH, s.GridSize, s.GridSize)
	}

	r.screen.Clear()

	head, body, food := r.palette()

	r.drawText(0, 0, textStyle, fmt.Sprintf("SNAKE  score %d  length %d  %s", s.Score, len(s.Snake), s.Status()))
	switch {
	case s.Won():
		r.drawText(0, 1, textStyle.Bold(true), "Board filled! R to play again, Q to quit")
	case !s.Alive:
		r.drawText(0, 1, textStyle.Bold(true), "Game over. R to restart, Q to quit")
	case s.Paused:
		r.drawText(0, 1, textStyle, "Paused. Space to continue")
	default:
		r.drawText(0, 1, textStyle, "Arrows/WASD move, Space pause, O autopilot")
	}

	// Walls
	for i := -1; i <= s.GridSize; i++ {
		r.setCell(i, -1, '░', wallStyle)
		r.setCell(i, s.GridSize, '░', wallStyle)
		r.setCell(-1, i, '░', wallStyle)
		r.setCell(s.GridSize, i, '░', wallStyle)
	}

	for y := 0; y < s.GridSize; y++ {
		for x := 0; x < s.GridSize; x++ {
			bg := accentYellow
			if (x+y)%2 == 1 {
				bg = accentGreen
			}
			r.setCell(x, y, ' ', tcell.StyleDefault.Background(bg))
		}
	}

	if s.Food != nil {
		r.setCell(s.Food.X, s.Food.Y, '●', tcell.StyleDefault.Foreground(food))
	}

	for i := len(s.Snake) - 1; i >= 0; i-- {
		style := tcell.StyleDefault.Foreground(body)
		if i == 0 {
			style = tcell.StyleDefault.Foreground(head)
		}
		r.setCell(s.Snake[i].X, s.Snake[i].Y, '█', style)
	}

	r.screen.Show()
	return nil
}

// palette returns head, body and food colours. Hues rotate a full turn
// every 3.6 seconds, body and food offset from the head.
func (r *ScreenRenderer) palette() (head, body, food tcell.Color) {
	hue := math.Mod(float64(r.now().UnixMilli())/10, 360)
	return hslColor(hue, 0.95, 0.60),
		hslColor(math.Mod(hue+90, 360), 0.90, 0.55),
		hslColor(math.Mod(hue+210, 360), 0.95, 0.58)
}

func hslColor(h, s, l float64) tcell.Color {
	cr, cg, cb := colorful.Hsl(h, s, l).Clamped().RGB255()
	return tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
}

// setCell fills both terminal columns of grid cell (x, y)
func (r *ScreenRenderer) setCell(x, y int, ch rune, style tcell.Style) {
	col := (x + 1) * 2
	row := y + 1 + headerRows
	r.screen.SetContent(col, row, ch, nil, style)
	r.screen.SetContent(col+1, row, ch, nil, style)
}

func (r *ScreenRenderer) drawText(x, y int, style tcell.Style, text string) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// Commands polls screen events and translates key presses until ctx is done
// or the screen is finalised. The returned channel is closed on exit.
func (r *ScreenRenderer) Commands(ctx context.Context) <-chan loop.Command {
	out := make(chan loop.Command)
	go func() {
		defer close(out)
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				r.screen.Sync()
			case *tcell.EventKey:
				cmd, ok := input.ParseTcellEvent(ev)
				if !ok {
					continue
				}
				select {
				case out <- cmd:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
