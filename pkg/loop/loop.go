// Package loop drives a game: it owns the current state, the tick timer and
// the presenter, and turns input commands into state transitions.
package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
)

// Presenter draws a state. A Render error stops the loop.
type Presenter interface {
	Render(s game.GameState) error
}

// Option customizes a Loop
type Option func(*Loop)

// WithTickerFactory replaces the real time.Ticker
func WithTickerFactory(f TickerFactory) Option {
	return func(l *Loop) { l.newTicker = f }
}

// WithInterval overrides the interval strategy derived from the config
func WithInterval(s IntervalStrategy) Option {
	return func(l *Loop) { l.interval = s }
}

// WithAutopilot installs a controller that CommandAutopilot toggles on and off.
// When enabled is true it starts switched on.
func WithAutopilot(c game.Controller, enabled bool) Option {
	return func(l *Loop) {
		l.autopilot = c
		l.autopilotOn = enabled
	}
}

// Loop is a single-goroutine game driver. All state changes happen inside
// Run, so the state is never touched concurrently.
type Loop struct {
	cfg       config.Config
	rng       game.RandomSource
	presenter Presenter
	interval  IntervalStrategy
	newTicker TickerFactory

	autopilot   game.Controller
	autopilotOn bool

	state   game.GameState
	gameID  uuid.UUID
	ticker  Ticker
	current time.Duration
}

// New validates cfg and creates the first game
func New(cfg config.Config, rng game.RandomSource, presenter Presenter, opts ...Option) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if presenter == nil {
		return nil, fmt.Errorf("presenter is required")
	}

	l := &Loop{
		cfg:       cfg,
		rng:       rng,
		presenter: presenter,
		interval:  IntervalFor(cfg),
		newTicker: NewTimeTicker,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.newGame()
	return l, nil
}

// State returns the current state
func (l *Loop) State() game.GameState {
	return l.state
}

// GameID identifies the current game in logs
func (l *Loop) GameID() uuid.UUID {
	return l.gameID
}

// Interval returns the interval of the active timer, or zero when stopped
func (l *Loop) Interval() time.Duration {
	if l.ticker == nil {
		return 0
	}
	return l.current
}

// Run renders the first frame, starts the timer and processes ticks and
// commands until ctx is done, commands is closed or a quit command arrives.
// It returns an error only when the presenter fails.
func (l *Loop) Run(ctx context.Context, commands <-chan Command) error {
	defer l.stop()

	if err := l.render(); err != nil {
		return err
	}
	if l.state.Alive && !l.state.Paused {
		l.start(l.interval(l.state.Score))
	}

	for {
		var tick <-chan time.Time
		if l.ticker != nil {
			tick = l.ticker.C()
		}

		select {
		case <-ctx.Done():
			glog.Infof("game %s: loop cancelled", l.gameID)
			return nil
		case cmd, ok := <-commands:
			if !ok || cmd.Kind == CommandQuit {
				glog.Infof("game %s: quit with score %d", l.gameID, l.state.Score)
				return nil
			}
			if err := l.handle(cmd); err != nil {
				return err
			}
		case <-tick:
			if err := l.tick(); err != nil {
				return err
			}
		}
	}
}

// handle applies one non-quit command
func (l *Loop) handle(cmd Command) error {
	switch cmd.Kind {
	case CommandDirection:
		l.state = game.SetDirection(l.state, cmd.Dir)
		return nil
	case CommandPause:
		return l.togglePause()
	case CommandRestart:
		return l.restart()
	case CommandAutopilot:
		if l.autopilot != nil {
			l.autopilotOn = !l.autopilotOn
			glog.V(1).Infof("game %s: autopilot %t", l.gameID, l.autopilotOn)
		}
		return nil
	default:
		glog.Warningf("game %s: ignoring command %s", l.gameID, cmd.Kind)
		return nil
	}
}

// tick advances the game by one step and reschedules the timer
func (l *Loop) tick() error {
	if l.autopilotOn && l.autopilot != nil && l.state.Alive {
		l.state = game.SetDirection(l.state, l.autopilot.NextDirection(l.state))
	}

	prev := l.state
	l.state = game.StepState(l.state, l.rng)

	if glog.V(2) {
		glog.Infof("game %s: step %s", l.gameID, l.state.Snapshot())
	}
	if l.state.Score > prev.Score {
		glog.V(1).Infof("game %s: ate food, score %d", l.gameID, l.state.Score)
	}

	if err := l.render(); err != nil {
		return err
	}

	if !l.state.Alive {
		l.stop()
		glog.Infof("game %s: over, score %d, length %d, won %t",
			l.gameID, l.state.Score, len(l.state.Snake), l.state.Won())
		return nil
	}
	if l.state.Paused {
		return nil
	}

	if d := l.interval(l.state.Score); d != l.current {
		glog.V(1).Infof("game %s: interval %s -> %s", l.gameID, l.current, d)
		l.stop()
		l.start(d)
	}
	return nil
}

// togglePause stops the timer while paused and restarts it on resume.
// Ticks missed while paused are not replayed.
func (l *Loop) togglePause() error {
	if !l.state.Alive {
		return nil
	}

	l.state = game.TogglePause(l.state)
	if l.state.Paused {
		l.stop()
		glog.V(1).Infof("game %s: paused", l.gameID)
	} else {
		l.start(l.interval(l.state.Score))
		glog.V(1).Infof("game %s: resumed", l.gameID)
	}
	return l.render()
}

// restart discards the current game and starts a fresh one at the base interval
func (l *Loop) restart() error {
	l.stop()
	l.newGame()
	if err := l.render(); err != nil {
		return err
	}
	l.start(l.interval(l.state.Score))
	return nil
}

func (l *Loop) newGame() {
	l.state = game.CreateInitialState(l.cfg, l.rng)
	l.gameID = uuid.New()
	glog.Infof("game %s: started on %dx%d grid", l.gameID, l.cfg.GridSize, l.cfg.GridSize)
}

// start schedules a new ticker. Any active ticker is stopped first so at
// most one is ever running.
func (l *Loop) start(d time.Duration) {
	l.stop()
	l.ticker = l.newTicker(d)
	l.current = d
}

func (l *Loop) stop() {
	if l.ticker == nil {
		return
	}
	l.ticker.Stop()
	l.ticker = nil
}

func (l *Loop) render() error {
	if err := l.presenter.Render(l.state); err != nil {
		return fmt.Errorf("failed to render game %s: %w", l.gameID, err)
	}
	return nil
}
