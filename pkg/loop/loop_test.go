package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
)

// manualTicker fires only when the test says so
type manualTicker struct {
	d       time.Duration
	c       chan time.Time
	stopped atomic.Bool
}

func (t *manualTicker) C() <-chan time.Time { return t.c }
func (t *manualTicker) Stop()               { t.stopped.Store(true) }

// tickerLog records every ticker the loop creates
type tickerLog struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (l *tickerLog) factory(d time.Duration) Ticker {
	l.mu.Lock()
	defer l.mu.Unlock()
	t := &manualTicker{d: d, c: make(chan time.Time)}
	l.tickers = append(l.tickers, t)
	return t
}

func (l *tickerLog) active() []*manualTicker {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*manualTicker
	for _, t := range l.tickers {
		if !t.stopped.Load() {
			out = append(out, t)
		}
	}
	return out
}

func (l *tickerLog) last() *manualTicker {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tickers[len(l.tickers)-1]
}

// framePresenter hands every rendered state to the test
type framePresenter struct {
	frames chan game.GameState
	err    error
}

func newFramePresenter() *framePresenter {
	return &framePresenter{frames: make(chan game.GameState, 64)}
}

func (p *framePresenter) Render(s game.GameState) error {
	if p.err != nil {
		return p.err
	}
	p.frames <- s
	return nil
}

func (p *framePresenter) next(t *testing.T) game.GameState {
	t.Helper()
	select {
	case s := <-p.frames:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a frame")
		return game.GameState{}
	}
}

func newTestLoop(t *testing.T, cfg config.Config, opts ...Option) (*Loop, *tickerLog, *framePresenter) {
	t.Helper()
	tickers := &tickerLog{}
	presenter := newFramePresenter()
	opts = append([]Option{WithTickerFactory(tickers.factory)}, opts...)
	l, err := New(cfg, game.NewLCG(99), presenter, opts...)
	require.NoError(t, err)
	return l, tickers, presenter
}

func TestNewValidates(t *testing.T) {
	_, err := New(config.Config{GridSize: 0, StartLength: 1, TickMs: 10}, game.NewLCG(1), newFramePresenter())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = New(config.Default(), nil, newFramePresenter())
	assert.Error(t, err)

	_, err = New(config.Default(), game.NewLCG(1), nil)
	assert.Error(t, err)
}

func TestTickAdvancesAndRenders(t *testing.T) {
	l, tickers, presenter := newTestLoop(t, config.Default())

	l.start(l.interval(0))
	head := l.State().Head()

	require.NoError(t, l.tick())
	frame := presenter.next(t)
	assert.Equal(t, head.Add(game.Right), frame.Head())
	assert.Equal(t, frame, l.State())
	assert.Len(t, tickers.active(), 1)
	assert.Equal(t, 140*time.Millisecond, l.Interval())
}

func TestDirectionTakesEffectOnNextTick(t *testing.T) {
	l, _, presenter := newTestLoop(t, config.Default())
	l.start(l.interval(0))
	head := l.State().Head()

	require.NoError(t, l.handle(Turn(game.Up)))
	require.NoError(t, l.handle(Turn(game.Left))) // reversal of applied Right
	assert.Equal(t, head, l.State().Head())
	assert.Equal(t, game.Up, l.State().NextDir)

	require.NoError(t, l.tick())
	assert.Equal(t, head.Add(game.Up), presenter.next(t).Head())
}

func TestPauseStopsAndResumesTimer(t *testing.T) {
	l, tickers, presenter := newTestLoop(t, config.Default())
	l.start(l.interval(0))

	require.NoError(t, l.handle(Command{Kind: CommandPause}))
	assert.True(t, presenter.next(t).Paused)
	assert.Empty(t, tickers.active())
	assert.Zero(t, l.Interval())

	// A stray tick while paused changes nothing.
	before := l.State()
	require.NoError(t, l.tick())
	presenter.next(t)
	assert.Equal(t, before, l.State())

	require.NoError(t, l.handle(Command{Kind: CommandPause}))
	assert.False(t, presenter.next(t).Paused)
	require.Len(t, tickers.active(), 1)
	assert.Equal(t, 140*time.Millisecond, tickers.last().d)
}

func TestGameOverStopsTimer(t *testing.T) {
	cfg := config.Config{GridSize: 5, StartLength: 1, TickMs: 50}
	l, tickers, presenter := newTestLoop(t, cfg)
	l.start(l.interval(0))

	// Drive straight up into the wall from (2,2).
	require.NoError(t, l.handle(Turn(game.Up)))
	for i := 0; i < 5 && l.State().Alive; i++ {
		require.NoError(t, l.tick())
		presenter.next(t)
	}

	assert.False(t, l.State().Alive)
	assert.Empty(t, tickers.active())

	// Pause is ignored once the game is over.
	require.NoError(t, l.handle(Command{Kind: CommandPause}))
	assert.False(t, l.State().Paused)
	assert.Empty(t, tickers.active())
}

func TestRestartResetsGameAndInterval(t *testing.T) {
	cfg := config.Default()
	cfg.SpeedRamp = true
	l, tickers, presenter := newTestLoop(t, cfg)
	l.start(l.interval(0))
	firstID := l.GameID()

	l.state.Score = 10
	l.start(l.interval(l.state.Score))
	assert.Equal(t, 220*time.Millisecond, l.Interval())

	require.NoError(t, l.handle(Command{Kind: CommandRestart}))
	frame := presenter.next(t)
	assert.Equal(t, 0, frame.Score)
	assert.True(t, frame.Alive)
	assert.Equal(t, game.CreateInitialState(cfg, game.NewLCG(1)).Snake, frame.Snake)
	assert.NotEqual(t, firstID, l.GameID())

	require.Len(t, tickers.active(), 1)
	assert.Equal(t, config.RampBase, l.Interval())
}

func TestSpeedRampReschedules(t *testing.T) {
	cfg := config.Default()
	cfg.SpeedRamp = true
	l, tickers, presenter := newTestLoop(t, cfg)
	l.start(l.interval(0))
	require.Equal(t, 300*time.Millisecond, l.Interval())

	// Put food directly in front of the head.
	food := l.State().Head().Add(game.Right)
	l.state.Food = &food

	require.NoError(t, l.tick())
	frame := presenter.next(t)
	require.Equal(t, 1, frame.Score)

	assert.Equal(t, 292*time.Millisecond, l.Interval())
	require.Len(t, tickers.tickers, 2)
	assert.True(t, tickers.tickers[0].stopped.Load())
	assert.Len(t, tickers.active(), 1)

	// No score change, no reschedule.
	far := game.Vector{X: 0, Y: 0}
	l.state.Food = &far
	require.NoError(t, l.tick())
	presenter.next(t)
	assert.Len(t, tickers.tickers, 2)
}

func TestAutopilotSteers(t *testing.T) {
	pilot := game.ControllerFunc(func(game.GameState) game.Vector { return game.Down })
	l, _, presenter := newTestLoop(t, config.Default(), WithAutopilot(pilot, false))
	l.start(l.interval(0))
	head := l.State().Head()

	require.NoError(t, l.tick())
	head = head.Add(game.Right)
	assert.Equal(t, head, presenter.next(t).Head())

	require.NoError(t, l.handle(Command{Kind: CommandAutopilot}))
	require.NoError(t, l.tick())
	assert.Equal(t, head.Add(game.Down), presenter.next(t).Head())
}

func TestRenderErrorStopsLoop(t *testing.T) {
	l, tickers, presenter := newTestLoop(t, config.Default())
	presenter.err = errors.New("screen gone")

	err := l.Run(context.Background(), make(chan Command))
	assert.ErrorContains(t, err, "screen gone")
	assert.Empty(t, tickers.active())
}

func TestRun(t *testing.T) {
	cfg := config.Config{GridSize: 9, StartLength: 2, TickMs: 20}
	l, tickers, presenter := newTestLoop(t, cfg)

	commands := make(chan Command)
	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background(), commands) }()

	initial := presenter.next(t)
	assert.Equal(t, game.Vector{X: 4, Y: 4}, initial.Head())

	commands <- Turn(game.Down)
	tickers.last().c <- time.Now()
	assert.Equal(t, game.Vector{X: 4, Y: 5}, presenter.next(t).Head())

	commands <- Command{Kind: CommandPause}
	assert.True(t, presenter.next(t).Paused)

	commands <- Command{Kind: CommandPause}
	assert.False(t, presenter.next(t).Paused)
	tickers.last().c <- time.Now()
	assert.Equal(t, game.Vector{X: 4, Y: 6}, presenter.next(t).Head())

	commands <- Command{Kind: CommandQuit}
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not quit")
	}
	assert.Empty(t, tickers.active())
}

func TestRunStopsOnCancel(t *testing.T) {
	l, tickers, presenter := newTestLoop(t, config.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx, nil) }()

	presenter.next(t)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.Empty(t, tickers.active())
}
