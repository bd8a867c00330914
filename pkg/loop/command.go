package loop

import "github.com/trytobebee/gridsnake/pkg/game"

// CommandKind identifies what an input event asks the loop to do
type CommandKind int

const (
	CommandDirection CommandKind = iota
	CommandPause
	CommandRestart
	CommandAutopilot
	CommandQuit
)

func (k CommandKind) String() string {
	switch k {
	case CommandDirection:
		return "direction"
	case CommandPause:
		return "pause"
	case CommandRestart:
		return "restart"
	case CommandAutopilot:
		return "autopilot"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is one translated input event
type Command struct {
	Kind CommandKind
	Dir  game.Vector // set for CommandDirection
}

// Turn returns a direction command
func Turn(dir game.Vector) Command {
	return Command{Kind: CommandDirection, Dir: dir}
}
