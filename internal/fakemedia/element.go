// Package fakemedia provides an in-memory media element for tests.
// It behaves like an HTML media element: ready state only moves forward through
// Advance, which fires each crossed lifecycle event in order.
package fakemedia

import (
	"math"

	"github.com/genricoloni/tracksync/internal/domain"
	"github.com/genricoloni/tracksync/internal/events"
)

// Element is a scriptable domain.MediaElement
type Element struct {
	emitter *events.Emitter

	Name        string
	currentTime float64
	duration    float64
	volume      float64
	preload     string
	state       domain.ReadyState
	buffered    domain.RangeList
	playing     bool

	// PlayCalls counts Play invocations
	PlayCalls int
	// PauseCalls counts Pause invocations
	PauseCalls int
	// SeekCalls records every SetCurrentTime argument
	SeekCalls []float64
	// PlayErr is returned by Play when set
	PlayErr error
	// PauseErr is returned by Pause when set
	PauseErr error
}

// New creates an element that will report duration once metadata is loaded
func New(name string, duration float64) *Element {
	return &Element{
		emitter:  events.NewEmitter(),
		Name:     name,
		duration: duration,
		volume:   1,
		preload:  "none",
	}
}

// Play implements domain.MediaElement
func (e *Element) Play() error {
	e.PlayCalls++
	if e.PlayErr != nil {
		return e.PlayErr
	}
	e.playing = true
	e.Fire(domain.EventPlay)
	return nil
}

// Pause implements domain.MediaElement
func (e *Element) Pause() error {
	e.PauseCalls++
	if e.PauseErr != nil {
		return e.PauseErr
	}
	if e.playing {
		e.playing = false
		e.Fire(domain.EventPause)
	}
	return nil
}

// Playing reports whether Play was called more recently than Pause
func (e *Element) Playing() bool { return e.playing }

// CurrentTime implements domain.MediaElement
func (e *Element) CurrentTime() float64 { return e.currentTime }

// SetCurrentTime clamps t to [0, duration] like a browser element
func (e *Element) SetCurrentTime(t float64) {
	e.SeekCalls = append(e.SeekCalls, t)
	if t < 0 {
		t = 0
	}
	if d := e.Duration(); !math.IsNaN(d) && t > d {
		t = d
	}
	e.currentTime = t
}

// Duration is NaN until the element reaches HaveMetadata
func (e *Element) Duration() float64 {
	if e.state < domain.HaveMetadata {
		return math.NaN()
	}
	return e.duration
}

// Volume implements domain.MediaElement
func (e *Element) Volume() float64 { return e.volume }

// SetVolume implements domain.MediaElement
func (e *Element) SetVolume(v float64) { e.volume = v }

// Preload implements domain.MediaElement
func (e *Element) Preload() string { return e.preload }

// SetPreload implements domain.MediaElement
func (e *Element) SetPreload(p string) { e.preload = p }

// ReadyState implements domain.MediaElement
func (e *Element) ReadyState() domain.ReadyState { return e.state }

// Buffered implements domain.MediaElement
func (e *Element) Buffered() domain.TimeRanges { return e.buffered }

// SetBuffered replaces the buffered ranges
func (e *Element) SetBuffered(ranges ...domain.BufferedRange) { e.buffered = ranges }

// AddEventListener implements domain.MediaElement
func (e *Element) AddEventListener(t domain.EventType, fn domain.Handler) domain.Subscription {
	return e.emitter.On(t, fn)
}

// ListenerCount returns how many listeners are attached across all events
func (e *Element) ListenerCount() int { return e.emitter.Len() }

// Fire dispatches an event of type t
func (e *Element) Fire(t domain.EventType) {
	e.emitter.Emit(domain.Event{Type: t, Target: e})
}

// Advance raises the ready state to s, firing every crossed threshold event
func (e *Element) Advance(s domain.ReadyState) {
	for _, threshold := range domain.Thresholds {
		if threshold <= e.state || threshold > s {
			continue
		}
		e.state = threshold
		if ev, ok := domain.ThresholdEvent(threshold); ok {
			e.Fire(ev)
		}
	}
}

// SetReadyState forces the ready state without firing events
func (e *Element) SetReadyState(s domain.ReadyState) { e.state = s }

// TimeUpdate moves the position and fires timeupdate
func (e *Element) TimeUpdate(t float64) {
	e.currentTime = t
	e.Fire(domain.EventTimeUpdate)
}
