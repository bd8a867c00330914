package input

import (
	"github.com/eiannone/keyboard"

	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/loop"
)

// KeyboardHandler reads raw keys from the terminal and translates them to loop commands
type KeyboardHandler struct {
	commands chan loop.Command
	done     chan struct{}
}

// KeyInput represents a keyboard input event
type KeyInput struct {
	Char rune
	Key  keyboard.Key
}

// NewKeyboardHandler creates a new keyboard input handler
func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{
		commands: make(chan loop.Command),
		done:     make(chan struct{}),
	}
}

// Start puts the terminal in raw mode and begins listening for keys
func (h *KeyboardHandler) Start() error {
	if err := keyboard.Open(); err != nil {
		return err
	}

	go func() {
		defer close(h.commands)
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			cmd, ok := ParseKey(KeyInput{Char: char, Key: key})
			if !ok {
				continue
			}
			select {
			case h.commands <- cmd:
			case <-h.done:
				return
			}
			if cmd.Kind == loop.CommandQuit {
				return
			}
		}
	}()

	return nil
}

// Stop restores the terminal
func (h *KeyboardHandler) Stop() {
	close(h.done)
	keyboard.Close()
}

// Commands returns the command channel. It is closed when input ends.
func (h *KeyboardHandler) Commands() <-chan loop.Command {
	return h.commands
}

// ParseKey maps a key press to a command
func ParseKey(input KeyInput) (loop.Command, bool) {
	// Handle special keys
	switch input.Key {
	case keyboard.KeyArrowUp:
		return loop.Turn(game.Up), true
	case keyboard.KeyArrowDown:
		return loop.Turn(game.Down), true
	case keyboard.KeyArrowLeft:
		return loop.Turn(game.Left), true
	case keyboard.KeyArrowRight:
		return loop.Turn(game.Right), true
	case keyboard.KeySpace:
		return loop.Command{Kind: loop.CommandPause}, true
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return loop.Command{Kind: loop.CommandQuit}, true
	}

	return parseChar(input.Char)
}

// parseChar handles the letter bindings shared by every front-end
func parseChar(c rune) (loop.Command, bool) {
	switch c {
	case 'w', 'W':
		return loop.Turn(game.Up), true
	case 's', 'S':
		return loop.Turn(game.Down), true
	case 'a', 'A':
		return loop.Turn(game.Left), true
	case 'd', 'D':
		return loop.Turn(game.Right), true
	case 'p', 'P', ' ':
		return loop.Command{Kind: loop.CommandPause}, true
	case 'r', 'R':
		return loop.Command{Kind: loop.CommandRestart}, true
	case 'o', 'O':
		return loop.Command{Kind: loop.CommandAutopilot}, true
	case 'q', 'Q':
		return loop.Command{Kind: loop.CommandQuit}, true
	}
	return loop.Command{}, false
}
