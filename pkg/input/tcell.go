package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/loop"
)

var tcellDirections = map[tcell.Key]game.Vector{
	tcell.KeyUp:    game.Up,
	tcell.KeyDown:  game.Down,
	tcell.KeyLeft:  game.Left,
	tcell.KeyRight: game.Right,
}

// ParseTcellEvent maps a tcell key event to a command using the same
// bindings as ParseKey
func ParseTcellEvent(ev *tcell.EventKey) (loop.Command, bool) {
	if dir, ok := tcellDirections[ev.Key()]; ok {
		return loop.Turn(dir), true
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return loop.Command{Kind: loop.CommandQuit}, true
	case tcell.KeyRune:
		return parseChar(ev.Rune())
	}
	return loop.Command{}, false
}
