package mpris

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/genricoloni/tracksync/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	playerPrefix = "org.mpris.MediaPlayer2."

	signalPropertiesChanged = "org.freedesktop.DBus.Properties.PropertiesChanged"
	signalNameOwnerChanged  = "org.freedesktop.DBus.NameOwnerChanged"
	signalSeeked            = playerInterface + ".Seeked"
)

// Router connects to the session bus, tracks MPRIS players and forwards their
// signals as domain.PlayerSignal values keyed by well-known name
type Router struct {
	logger          *zap.Logger
	signals         chan domain.PlayerSignal
	mu              sync.RWMutex
	running         bool
	cancel          context.CancelFunc
	conn            DBusClient                 // Interface for testability
	dial            func() (DBusClient, error) // Replaced in tests
	lastDropWarning time.Time                  // Rate limiting for "channel full" warnings
	wg              sync.WaitGroup             // Tracks the signal goroutine
	playerNames     map[string]string          // Maps unique bus names (:1.45) to well-known names (org.mpris.MediaPlayer2.vlc)
	elements        map[string]*Element        // Elements handed out, by well-known name
}

// NewRouter creates a router for the session bus
func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		logger:      logger,
		signals:     make(chan domain.PlayerSignal, 32),
		dial:        dialSessionBus,
		playerNames: make(map[string]string),
		elements:    make(map[string]*Element),
	}
}

// Start connects to the bus, maps running players and starts forwarding signals.
// It returns once the signal goroutine runs.
func (r *Router) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	conn, err := r.dial()
	if err != nil {
		r.logger.Error("Failed to connect to session bus", zap.Error(err))
		return fmt.Errorf("session bus connection failed: %w", err)
	}

	// Check if we were cancelled while connecting to D-Bus
	if err := ctx.Err(); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			r.logger.Warn("Failed to close D-Bus connection", zap.Error(closeErr))
		}
		return err
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(objectPath),
		dbus.WithMatchInterface("org.freedesktop.DBus.Properties"),
		dbus.WithMatchMember("PropertiesChanged"),
	); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to add match signal: %w", err)
	}
	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(objectPath),
		dbus.WithMatchInterface(playerInterface),
		dbus.WithMatchMember("Seeked"),
	); err != nil {
		r.logger.Warn("Failed to add Seeked match signal, seeks will show on the next tick", zap.Error(err))
	}
	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(busInterface),
		dbus.WithMatchMember("NameOwnerChanged"),
	); err != nil {
		// Non-fatal, continue without dynamic tracking
		r.logger.Warn("Failed to add NameOwnerChanged match signal", zap.Error(err))
	}

	// The loop outlives the start context, it is stopped through Stop
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	r.mu.Lock()
	r.conn = conn
	r.cancel = cancel
	r.running = true
	r.mu.Unlock()

	if err := r.detectExistingPlayers(); err != nil {
		r.logger.Warn("Failed to detect existing players", zap.Error(err))
	}

	dbusSignals := make(chan *dbus.Signal, 32)
	conn.Signal(dbusSignals)

	r.wg.Add(1)
	go r.monitorSignals(loopCtx, dbusSignals)

	r.logger.Info("MPRIS router started")
	return nil
}

// Stop terminates signal forwarding, closes the signal channel and the connection
func (r *Router) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.running = false
	r.mu.Unlock()

	// Wait for the producer before closing its channel
	r.wg.Wait()
	close(r.signals)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			r.logger.Warn("Failed to close D-Bus connection", zap.Error(err))
			return fmt.Errorf("close session bus: %w", err)
		}
	}

	r.logger.Info("MPRIS router shutdown complete")
	return nil
}

// Signals returns a read-only channel of player notifications
func (r *Router) Signals() <-chan domain.PlayerSignal {
	return r.signals
}

// Player returns the element for a running player. Repeated calls return the same element.
func (r *Router) Player(name string) (domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil {
		return nil, fmt.Errorf("lookup %s: %w", name, domain.ErrBusNotStarted)
	}
	if el, ok := r.elements[name]; ok {
		return el, nil
	}
	if !slices.Contains(r.knownNamesLocked(), name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, name)
	}

	el := NewElement(r.logger, r.conn, name)
	r.elements[name] = el
	return el, nil
}

// knownNamesLocked returns the well-known names seen so far. Caller holds r.mu.
func (r *Router) knownNamesLocked() []string {
	names := make([]string, 0, len(r.playerNames))
	for _, n := range r.playerNames {
		names = append(names, n)
	}
	return names
}

// detectExistingPlayers queries D-Bus for currently running MPRIS players
func (r *Router) detectExistingPlayers() error {
	names, err := r.conn.ListNames()
	if err != nil {
		return fmt.Errorf("failed to list bus names: %w", err)
	}

	playerCount := 0
	for _, name := range names {
		if !strings.HasPrefix(name, playerPrefix) {
			continue
		}
		playerCount++
		r.logger.Info("Detected MPRIS player", zap.String("name", name))

		uniqueName, err := r.conn.GetNameOwner(name)
		if err != nil {
			r.logger.Warn("Failed to resolve player owner",
				zap.String("player", name),
				zap.Error(err))
			continue
		}
		r.mu.Lock()
		r.playerNames[uniqueName] = name
		r.mu.Unlock()
		r.logger.Debug("Mapped player name",
			zap.String("unique", uniqueName),
			zap.String("wellKnown", name))
	}

	r.logger.Info("Player detection complete", zap.Int("count", playerCount))
	return nil
}

// monitorSignals listens for D-Bus signals and forwards them
func (r *Router) monitorSignals(ctx context.Context, signals <-chan *dbus.Signal) {
	defer r.wg.Done()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("Signal monitoring goroutine stopped")
			return
		case sig := <-signals:
			if sig == nil {
				continue
			}
			switch sig.Name {
			case signalNameOwnerChanged:
				r.handleNameOwnerChanged(sig)
			case signalPropertiesChanged:
				r.handlePropertiesChanged(sig)
			case signalSeeked:
				r.emit(domain.PlayerSignal{Player: r.getPlayerName(sig.Sender), Kind: domain.SignalSeeked})
			}
		}
	}
}

// handleNameOwnerChanged processes NameOwnerChanged signals to track player lifecycle
func (r *Router) handleNameOwnerChanged(sig *dbus.Signal) {
	if len(sig.Body) < 3 {
		return
	}

	name, ok := sig.Body[0].(string)
	if !ok || !strings.HasPrefix(name, playerPrefix) {
		return // Not an MPRIS player
	}

	oldOwner, _ := sig.Body[1].(string)
	newOwner, _ := sig.Body[2].(string)

	r.mu.Lock()
	if oldOwner != "" {
		delete(r.playerNames, oldOwner)
	}
	if newOwner != "" {
		r.playerNames[newOwner] = name
	}
	r.mu.Unlock()

	switch {
	case newOwner != "" && oldOwner == "":
		r.logger.Info("New MPRIS player detected",
			zap.String("player", name),
			zap.String("unique", newOwner))
		r.emit(domain.PlayerSignal{Player: name, Kind: domain.SignalPropertiesChanged})
	case newOwner == "" && oldOwner != "":
		r.logger.Info("MPRIS player removed",
			zap.String("player", name),
			zap.String("unique", oldOwner))
		r.emit(domain.PlayerSignal{Player: name, Kind: domain.SignalPlayerLost})
	default:
		r.logger.Debug("MPRIS player ownership changed",
			zap.String("player", name),
			zap.String("oldUnique", oldOwner),
			zap.String("newUnique", newOwner))
	}
}

// handlePropertiesChanged forwards changes on the Player interface
func (r *Router) handlePropertiesChanged(sig *dbus.Signal) {
	// PropertiesChanged signal has 3 arguments:
	// 1. Interface name (string)
	// 2. Changed properties (map[string]Variant)
	// 3. Invalidated properties ([]string)
	if len(sig.Body) < 2 {
		return
	}

	interfaceName, ok := sig.Body[0].(string)
	if !ok || interfaceName != playerInterface {
		return
	}

	changedProps, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return
	}

	playerName := r.getPlayerName(sig.Sender)
	r.logger.Debug("Received PropertiesChanged signal",
		zap.String("sender", sig.Sender),
		zap.String("player", playerName),
		zap.Int("properties", len(changedProps)))

	r.emit(domain.PlayerSignal{Player: playerName, Kind: domain.SignalPropertiesChanged})
}

// emit sends without blocking; a full channel drops the signal.
// The next PropertiesChanged or tick re-reads the full player state, so a
// dropped notification only delays events.
func (r *Router) emit(sig domain.PlayerSignal) {
	select {
	case r.signals <- sig:
	default:
		r.logChannelFullWarning()
	}
}

// getPlayerName returns the well-known player name for a unique bus name
// Falls back to the unique name if no mapping exists
func (r *Router) getPlayerName(uniqueName string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if wellKnown, ok := r.playerNames[uniqueName]; ok {
		return wellKnown
	}
	return uniqueName
}

// logChannelFullWarning logs a warning about channel being full, but rate-limited
func (r *Router) logChannelFullWarning() {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Rate limit to max one warning per 5 seconds
	const warningInterval = 5 * time.Second
	now := time.Now()

	if now.Sub(r.lastDropWarning) >= warningInterval {
		r.logger.Warn("Signals channel full, dropping player notification")
		r.lastDropWarning = now
	}
}

var _ domain.PlayerBus = (*Router)(nil)
