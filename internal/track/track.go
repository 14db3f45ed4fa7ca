package track

import (
	"fmt"

	"github.com/genricoloni/tracksync/internal/domain"
	"go.uber.org/zap"
)

// Attribute names understood by Attr and SetAttr
const (
	AttrCurrentTime = "currentTime"
	AttrDuration    = "duration"
	AttrVolume      = "volume"
	AttrPreload     = "preload"
	AttrReadyState  = "readyState"
)

const preloadAuto = "auto"

// Track adapts a single media element.
// It keeps no state of its own: every read and write goes to the element.
type Track struct {
	logger *zap.Logger
	el     domain.MediaElement
}

// New wraps el. When preload is true the element is asked to preload its media.
func New(logger *zap.Logger, el domain.MediaElement, preload bool) *Track {
	t := &Track{
		logger: logger,
		el:     el,
	}
	if preload {
		t.Preload()
	}
	return t
}

// Element returns the wrapped media element
func (t *Track) Element() domain.MediaElement {
	return t.el
}

// Attr returns the raw value of the named element property, or nil for an unknown name
func (t *Track) Attr(name string) any {
	switch name {
	case AttrCurrentTime:
		return t.el.CurrentTime()
	case AttrDuration:
		return t.el.Duration()
	case AttrVolume:
		return t.el.Volume()
	case AttrPreload:
		return t.el.Preload()
	case AttrReadyState:
		return t.el.ReadyState()
	default:
		t.logger.Debug("Attribute lookup for unknown name", zap.String("name", name))
		return nil
	}
}

// SetAttr writes the named element property and returns the track for chaining.
// Unknown names, read-only properties and mistyped values are logged and ignored.
func (t *Track) SetAttr(name string, value any) *Track {
	if err := t.setAttr(name, value); err != nil {
		t.logger.Warn("Ignoring attribute write",
			zap.String("name", name),
			zap.Any("value", value),
			zap.Error(err))
	}
	return t
}

func (t *Track) setAttr(name string, value any) error {
	switch name {
	case AttrCurrentTime, AttrVolume:
		v, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: %s wants a number, got %T", domain.ErrInvalidAttribute, name, value)
		}
		if name == AttrCurrentTime {
			t.el.SetCurrentTime(v)
		} else {
			t.el.SetVolume(v)
		}
	case AttrPreload:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants a string, got %T", domain.ErrInvalidAttribute, name, value)
		}
		t.el.SetPreload(v)
	case AttrDuration, AttrReadyState:
		return fmt.Errorf("%w: %s", domain.ErrReadOnlyAttribute, name)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownAttribute, name)
	}
	return nil
}

// Play starts playback
func (t *Track) Play() error {
	return t.el.Play()
}

// Pause suspends playback
func (t *Track) Pause() error {
	return t.el.Pause()
}

// Stop pauses and rewinds to the start.
// The element must already be seekable.
func (t *Track) Stop() error {
	if err := t.el.Pause(); err != nil {
		return err
	}
	t.el.SetCurrentTime(0)
	return nil
}

// Seek moves the playback position to time seconds
func (t *Track) Seek(time float64) *Track {
	t.el.SetCurrentTime(time)
	return t
}

// SetVolume takes a 0-100 volume and stores it normalized on the element
func (t *Track) SetVolume(volume float64) *Track {
	t.el.SetVolume(volume / 100)
	return t
}

// Preload asks the element to load its media
func (t *Track) Preload() *Track {
	return t.SetAttr(AttrPreload, preloadAuto)
}

// CurrentTime returns the element's playback position
func (t *Track) CurrentTime() float64 {
	return t.el.CurrentTime()
}

// Duration returns the element's duration
func (t *Track) Duration() float64 {
	return t.el.Duration()
}

// ReadyState returns the element's ready state
func (t *Track) ReadyState() domain.ReadyState {
	return t.el.ReadyState()
}

// Average returns the position as a percentage of the duration
func (t *Track) Average(precision int) float64 {
	return ToAverage(t.el.CurrentTime(), t.el.Duration(), precision)
}

// HumanizedTime formats the current position
func (t *Track) HumanizedTime(withHours bool) string {
	return HumanizeTime(t.el.CurrentTime(), withHours)
}

// HumanizedDuration formats the duration
func (t *Track) HumanizedDuration(withHours bool) string {
	return HumanizeTime(t.el.Duration(), withHours)
}

// BufferedRanges converts the element's buffered ranges, preserving their order
func (t *Track) BufferedRanges() []domain.BufferedRange {
	tr := t.el.Buffered()
	if tr == nil {
		return nil
	}
	ranges := make([]domain.BufferedRange, 0, tr.Len())
	for i := 0; i < tr.Len(); i++ {
		ranges = append(ranges, domain.BufferedRange{Start: tr.Start(i), End: tr.End(i)})
	}
	return ranges
}

// On subscribes fn to an element event. Events reach fn with the track as target.
func (t *Track) On(eventType domain.EventType, fn domain.Handler) domain.Subscription {
	return t.OnTarget(eventType, fn, t)
}

// OnTarget subscribes fn to an element event, delivering events with target set to bind
func (t *Track) OnTarget(eventType domain.EventType, fn domain.Handler, bind any) domain.Subscription {
	return t.el.AddEventListener(eventType, func(ev domain.Event) {
		ev.Target = bind
		fn(ev)
	})
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}
