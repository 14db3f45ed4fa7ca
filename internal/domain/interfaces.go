package domain

import (
	"context"
	"time"
)

// Handler receives events from an event source
type Handler func(Event)

// Subscription is returned by every listener registration
type Subscription interface {
	// Unsubscribe detaches the listener. Calling it more than once is a no-op.
	Unsubscribe()
}

// TimeRanges is the buffered-ranges structure exposed by a media element.
// Ranges are ordered and disjoint.
type TimeRanges interface {
	Len() int
	Start(i int) float64
	End(i int) float64
}

// MediaElement defines the playback primitive a Track adapts.
// Implementations own the actual media pipeline; properties are read live.
//
//go:generate mockgen -destination=mocks/media_element_mock.go -package=mocks github.com/genricoloni/tracksync/internal/domain MediaElement
type MediaElement interface {
	// Play starts or resumes playback
	Play() error

	// Pause suspends playback
	Pause() error

	// CurrentTime returns the playback position in seconds
	CurrentTime() float64

	// SetCurrentTime moves the playback position.
	// Out of range values are handled by the element.
	SetCurrentTime(t float64)

	// Duration returns the media length in seconds, NaN when unknown
	Duration() float64

	// Volume returns the volume in the 0.0-1.0 range
	Volume() float64

	// SetVolume sets the volume in the 0.0-1.0 range
	SetVolume(v float64)

	// Preload returns the preload hint
	Preload() string

	// SetPreload sets the preload hint ("none", "metadata", "auto")
	SetPreload(p string)

	// ReadyState returns how much data is available
	ReadyState() ReadyState

	// Buffered returns the loaded ranges
	Buffered() TimeRanges

	// AddEventListener subscribes fn to the named event
	AddEventListener(t EventType, fn Handler) Subscription
}

// Player is a MediaElement whose events are driven from outside, by the
// goroutine that owns the group
type Player interface {
	MediaElement

	// Refresh re-reads the player and fires any lifecycle or transport events it implies
	Refresh()

	// Tick fires timeupdate when the player is playing
	Tick()

	// HandleSeeked fires timeupdate after the player jumped
	HandleSeeked()
}

// PlayerBus discovers players and reports their state changes
//
//go:generate mockgen -destination=mocks/player_bus_mock.go -package=mocks github.com/genricoloni/tracksync/internal/domain PlayerBus
type PlayerBus interface {
	// Start connects to the bus. It returns once signals are being delivered.
	Start(ctx context.Context) error

	// Stop disconnects and closes the signal channel
	Stop(ctx context.Context) error

	// Signals returns a read-only channel of player notifications
	Signals() <-chan PlayerSignal

	// Player returns the element for a well-known player name
	Player(name string) (Player, error)
}

// Engine runs the synchronized group until stopped
type Engine interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Config defines the interface for application configuration
type Config interface {
	// GetPlayers returns the well-known MPRIS bus names to synchronize
	GetPlayers() []string

	// GetTickInterval returns how often playing elements publish timeupdate
	GetTickInterval() time.Duration

	// GetAutoPlay reports whether the group starts once every player can play through
	GetAutoPlay() bool

	// GetVolume returns the initial group volume (0-100), negative to leave untouched
	GetVolume() float64
}
