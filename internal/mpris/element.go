package mpris

import (
	"fmt"
	"math"
	"sync"

	"github.com/genricoloni/tracksync/internal/domain"
	"github.com/genricoloni/tracksync/internal/events"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	objectPath      = "/org/mpris/MediaPlayer2"
	playerInterface = "org.mpris.MediaPlayer2.Player"

	propMetadata       = playerInterface + ".Metadata"
	propPlaybackStatus = playerInterface + ".PlaybackStatus"
	propPosition       = playerInterface + ".Position"
	propVolume         = playerInterface + ".Volume"
	propCanPlay        = playerInterface + ".CanPlay"
	propCanSeek        = playerInterface + ".CanSeek"

	methodPlay        = playerInterface + ".Play"
	methodPause       = playerInterface + ".Pause"
	methodSetPosition = playerInterface + ".SetPosition"

	microsecond = 1e6
)

// Element is a media element backed by one MPRIS2 player.
// Properties are read from the bus on every access. Events are fired by
// Refresh, Tick and HandleSeeked, which the owner calls from a single goroutine.
type Element struct {
	logger  *zap.Logger
	conn    DBusClient
	name    string
	emitter *events.Emitter

	mu         sync.Mutex
	preload    string
	lastState  domain.ReadyState
	lastStatus domain.PlayerStatus
}

// NewElement creates an element for the player with the given well-known bus name
func NewElement(logger *zap.Logger, conn DBusClient, name string) *Element {
	return &Element{
		logger:     logger.With(zap.String("player", name)),
		conn:       conn,
		name:       name,
		emitter:    events.NewEmitter(),
		preload:    "none",
		lastState:  domain.HaveNothing,
		lastStatus: domain.StatusStopped,
	}
}

// Name returns the player's well-known bus name
func (e *Element) Name() string {
	return e.name
}

// Play calls the player's Play method
func (e *Element) Play() error {
	if err := e.conn.CallMethod(e.name, objectPath, methodPlay); err != nil {
		return fmt.Errorf("play %s: %w", e.name, err)
	}
	return nil
}

// Pause calls the player's Pause method
func (e *Element) Pause() error {
	if err := e.conn.CallMethod(e.name, objectPath, methodPause); err != nil {
		return fmt.Errorf("pause %s: %w", e.name, err)
	}
	return nil
}

// CurrentTime returns the position in seconds, 0 when the player does not report one
func (e *Element) CurrentTime() float64 {
	v, err := e.conn.GetProperty(e.name, objectPath, propPosition)
	if err != nil {
		e.logger.Debug("Failed to read position", zap.Error(err))
		return 0
	}
	us, ok := toInt64(v.Value())
	if !ok {
		return 0
	}
	return float64(us) / microsecond
}

// SetCurrentTime jumps to t seconds in the current track.
// Players clamp positions past the track length themselves.
func (e *Element) SetCurrentTime(t float64) {
	meta, err := e.metadata()
	if err != nil {
		e.logger.Warn("Cannot seek without metadata", zap.Error(err))
		return
	}
	id, ok := trackID(meta)
	if !ok {
		e.logger.Warn("Cannot seek, player did not report mpris:trackid")
		return
	}
	if t < 0 {
		t = 0
	}
	if err := e.conn.CallMethod(e.name, objectPath, methodSetPosition, id, int64(t*microsecond)); err != nil {
		e.logger.Warn("SetPosition failed", zap.Float64("seconds", t), zap.Error(err))
	}
}

// Duration returns mpris:length in seconds, NaN when unknown
func (e *Element) Duration() float64 {
	meta, err := e.metadata()
	if err != nil {
		return math.NaN()
	}
	us, ok := length(meta)
	if !ok {
		return math.NaN()
	}
	return float64(us) / microsecond
}

// Volume returns the player volume (0.0-1.0), 1 when not reported
func (e *Element) Volume() float64 {
	v, err := e.conn.GetProperty(e.name, objectPath, propVolume)
	if err != nil {
		return 1
	}
	vol, ok := v.Value().(float64)
	if !ok {
		return 1
	}
	return vol
}

// SetVolume writes the player volume
func (e *Element) SetVolume(v float64) {
	if err := e.conn.SetProperty(e.name, objectPath, propVolume, v); err != nil {
		e.logger.Warn("Failed to set volume", zap.Float64("volume", v), zap.Error(err))
	}
}

// Preload returns the stored preload hint. MPRIS players load on their own.
func (e *Element) Preload() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.preload
}

// SetPreload stores the preload hint
func (e *Element) SetPreload(p string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.preload = p
}

// ReadyState derives a ready state from what the player exposes:
// metadata, a track length, and the CanPlay / CanSeek capabilities
func (e *Element) ReadyState() domain.ReadyState {
	meta, err := e.metadata()
	if err != nil || len(meta) == 0 {
		return domain.HaveNothing
	}
	if _, ok := length(meta); !ok {
		return domain.HaveMetadata
	}
	if !e.boolProperty(propCanPlay) {
		return domain.HaveCurrentData
	}
	if !e.boolProperty(propCanSeek) {
		return domain.HaveFutureData
	}
	return domain.HaveEnoughData
}

// Buffered reports the whole track once the player can seek anywhere in it
func (e *Element) Buffered() domain.TimeRanges {
	if e.ReadyState() < domain.HaveEnoughData {
		return domain.RangeList{}
	}
	return domain.RangeList{{Start: 0, End: e.Duration()}}
}

// AddEventListener subscribes fn to the named event
func (e *Element) AddEventListener(t domain.EventType, fn domain.Handler) domain.Subscription {
	return e.emitter.On(t, fn)
}

// Refresh re-reads ready state and playback status and fires the implied events.
// Threshold events fire once per crossing, in ascending order. A player that
// loses its metadata starts over from HaveNothing.
func (e *Element) Refresh() {
	state := e.ReadyState()
	status := e.playbackStatus()

	e.mu.Lock()
	prevState, prevStatus := e.lastState, e.lastStatus
	if state > prevState || state == domain.HaveNothing {
		e.lastState = state
	}
	e.lastStatus = status
	e.mu.Unlock()

	for _, threshold := range domain.Thresholds {
		if threshold <= prevState || threshold > state {
			continue
		}
		if eventType, ok := domain.ThresholdEvent(threshold); ok {
			e.fire(eventType)
		}
	}

	if status == prevStatus {
		return
	}
	e.logger.Debug("Playback status changed",
		zap.String("from", string(prevStatus)),
		zap.String("to", string(status)))

	switch {
	case status == domain.StatusPlaying:
		e.fire(domain.EventPlay)
		e.fire(domain.EventPlaying)
	case prevStatus == domain.StatusPlaying && status == domain.StatusPaused:
		e.fire(domain.EventPause)
	case prevStatus == domain.StatusPlaying && status == domain.StatusStopped:
		e.fire(domain.EventPause)
		e.fire(domain.EventEnded)
	}
}

// Tick fires timeupdate while the player is playing
func (e *Element) Tick() {
	e.mu.Lock()
	playing := e.lastStatus == domain.StatusPlaying
	e.mu.Unlock()

	if playing {
		e.fire(domain.EventTimeUpdate)
	}
}

// HandleSeeked fires timeupdate after a position jump
func (e *Element) HandleSeeked() {
	e.fire(domain.EventTimeUpdate)
}

func (e *Element) fire(t domain.EventType) {
	e.emitter.Emit(domain.Event{Type: t, Target: e})
}

func (e *Element) metadata() (map[string]dbus.Variant, error) {
	v, err := e.conn.GetProperty(e.name, objectPath, propMetadata)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	// SAFE CAST: players with nothing loaded may return an empty or odd variant
	meta, ok := v.Value().(map[string]dbus.Variant)
	if !ok {
		return nil, nil
	}
	return meta, nil
}

func (e *Element) playbackStatus() domain.PlayerStatus {
	v, err := e.conn.GetProperty(e.name, objectPath, propPlaybackStatus)
	if err != nil {
		return domain.StatusStopped
	}
	s, _ := v.Value().(string)
	return parseStatus(s)
}

func (e *Element) boolProperty(prop string) bool {
	v, err := e.conn.GetProperty(e.name, objectPath, prop)
	if err != nil {
		return false
	}
	b, _ := v.Value().(bool)
	return b
}

func parseStatus(status string) domain.PlayerStatus {
	switch status {
	case "Playing":
		return domain.StatusPlaying
	case "Paused":
		return domain.StatusPaused
	default:
		return domain.StatusStopped
	}
}

// length extracts mpris:length in microseconds. Players disagree on the integer type.
func length(meta map[string]dbus.Variant) (int64, bool) {
	v, ok := meta["mpris:length"]
	if !ok {
		return 0, false
	}
	us, ok := toInt64(v.Value())
	if !ok || us <= 0 {
		return 0, false
	}
	return us, true
}

func trackID(meta map[string]dbus.Variant) (dbus.ObjectPath, bool) {
	v, ok := meta["mpris:trackid"]
	if !ok {
		return "", false
	}
	switch id := v.Value().(type) {
	case dbus.ObjectPath:
		return id, id.IsValid()
	case string:
		// Some non-compliant players send the id as a plain string
		p := dbus.ObjectPath(id)
		return p, p.IsValid()
	default:
		return "", false
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

var _ domain.Player = (*Element)(nil)
