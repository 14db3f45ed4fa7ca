package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/genricoloni/tracksync/internal/domain"
	"github.com/genricoloni/tracksync/internal/events"
	"github.com/genricoloni/tracksync/internal/trackgroup"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// loggedEvents are the group events reported in the daemon log
var loggedEvents = []domain.EventType{
	domain.EventLoadedMetadata,
	domain.EventLoadedData,
	domain.EventCanPlay,
	domain.EventCanPlayThrough,
	domain.EventPlay,
	domain.EventPlaying,
	domain.EventPause,
	domain.EventEnded,
}

// Engine keeps the configured players in lockstep as one TrackGroup.
// Bus signals and timeupdate ticks are handled on a single loop goroutine,
// which is the only goroutine touching the group after Start returns.
type Engine struct {
	logger *zap.Logger
	cfg    domain.Config
	bus    domain.PlayerBus

	group      *trackgroup.TrackGroup
	players    map[string]domain.Player
	order      []string // player names in configuration order, without duplicates
	subs       events.Group
	autoPlayed bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewEngine creates a new synchronization engine
func NewEngine(logger *zap.Logger, cfg domain.Config, bus domain.PlayerBus) *Engine {
	return &Engine{
		logger:  logger,
		cfg:     cfg,
		bus:     bus,
		players: make(map[string]domain.Player),
	}
}

// Start connects to the bus, groups the configured players and launches the
// event loop in a goroutine. It returns immediately (non-blocking).
func (e *Engine) Start(ctx context.Context) error {
	names := e.cfg.GetPlayers()
	if len(names) == 0 {
		return domain.ErrNoPlayers
	}

	e.logger.Info("Engine starting...", zap.Strings("players", names))

	if err := e.bus.Start(ctx); err != nil {
		return fmt.Errorf("start player bus: %w", err)
	}

	elements := make([]domain.MediaElement, 0, len(names))
	for _, name := range names {
		if _, seen := e.players[name]; seen {
			e.logger.Warn("Player configured twice, ignoring duplicate", zap.String("player", name))
			continue
		}
		p, err := e.bus.Player(name)
		if err != nil {
			return multierr.Append(fmt.Errorf("player %s: %w", name, err), e.bus.Stop(ctx))
		}
		e.players[name] = p
		e.order = append(e.order, name)
		elements = append(elements, p)
	}

	e.group = trackgroup.New(e.logger, elements, true)
	e.subscribe()

	if volume := e.cfg.GetVolume(); volume >= 0 {
		e.group.SetVolume(volume)
		e.logger.Info("Group volume applied", zap.Float64("volume", volume))
	}

	// Pick up whatever the players already loaded
	for _, name := range e.order {
		e.players[name].Refresh()
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	e.cancel = cancel
	e.done = make(chan struct{})
	go e.runLoop(loopCtx)

	return nil
}

// subscribe logs group lifecycle and transport events and arms autoplay
func (e *Engine) subscribe() {
	for _, eventType := range loggedEvents {
		eventType := eventType
		e.subs.Add(e.group.On(eventType, func(domain.Event) {
			e.logger.Info("Group event",
				zap.String("event", string(eventType)),
				zap.Stringer("readyState", e.group.ReadyState()),
				zap.String("position", e.group.HumanizedTime(false)),
				zap.String("duration", e.group.HumanizedDuration(false)))
		}))
	}

	e.subs.Add(e.group.On(domain.EventTimeUpdate, func(domain.Event) {
		e.logger.Debug("Group position",
			zap.Float64("currentTime", e.group.CurrentTime()),
			zap.Float64("percent", e.group.Average(2)))
	}))

	if !e.cfg.GetAutoPlay() {
		return
	}
	e.subs.Add(e.group.On(domain.EventCanPlayThrough, func(domain.Event) {
		if e.autoPlayed {
			return
		}
		e.autoPlayed = true
		e.logger.Info("Every player can play through, starting playback")
		if err := e.group.Play(); err != nil {
			e.logger.Warn("Autoplay failed", zap.Error(err))
		}
	}))
}

// runLoop dispatches bus signals to their players and ticks playing players
func (e *Engine) runLoop(ctx context.Context) {
	defer close(e.done)

	signals := e.bus.Signals()
	ticker := time.NewTicker(e.cfg.GetTickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Engine loop stopped")
			return

		case sig, ok := <-signals:
			if !ok {
				e.logger.Info("Player bus signals channel closed")
				return
			}
			e.dispatch(sig)

		case <-ticker.C:
			for _, name := range e.order {
				e.players[name].Tick()
			}
		}
	}
}

func (e *Engine) dispatch(sig domain.PlayerSignal) {
	p, ok := e.players[sig.Player]
	if !ok {
		e.logger.Debug("Ignoring signal from ungrouped player",
			zap.String("player", sig.Player),
			zap.Stringer("kind", sig.Kind))
		return
	}

	switch sig.Kind {
	case domain.SignalPropertiesChanged:
		p.Refresh()
	case domain.SignalSeeked:
		p.HandleSeeked()
	case domain.SignalPlayerLost:
		e.logger.Warn("Grouped player left the bus, the group will not progress until it returns",
			zap.String("player", sig.Player))
	}
}

// Stop waits for the loop to exit, detaches the group and disconnects from the bus
func (e *Engine) Stop(ctx context.Context) error {
	e.logger.Info("Engine stopping...")

	if e.cancel == nil {
		return nil
	}
	e.cancel()

	var err error
	select {
	case <-e.done:
	case <-ctx.Done():
		err = fmt.Errorf("wait for engine loop: %w", ctx.Err())
	}

	e.subs.UnsubscribeAll()
	e.group.Close()
	err = multierr.Append(err, e.bus.Stop(ctx))
	e.cancel = nil

	if err != nil {
		e.logger.Error("Engine stopped with errors", zap.Error(err))
		return err
	}
	e.logger.Info("Engine stopped")
	return nil
}

var _ domain.Engine = (*Engine)(nil)
