package trackgroup

import (
	"fmt"
	"math"

	"github.com/genricoloni/tracksync/internal/domain"
	"github.com/genricoloni/tracksync/internal/events"
	"github.com/genricoloni/tracksync/internal/track"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const noLongest = -1

// TrackGroup synchronizes several tracks into one logical transport.
//
// The group is only as ready as its least ready member. Once every track knows
// its metadata, the track with the greatest duration (first one on ties) becomes
// the reference track: it fixes the group duration, and its transport events are
// re-emitted by the group. The election happens once and is never revisited.
//
// A TrackGroup is not safe for concurrent use. All calls, including element
// event delivery, are expected on one goroutine.
type TrackGroup struct {
	logger *zap.Logger

	tracks      []*track.Track
	longest     int // index into tracks, noLongest until elected
	duration    float64
	currentTime float64
	announced   domain.ReadyState // highest threshold event fired since the last regression

	emitter     *events.Emitter
	trackSubs   events.Group
	longestSubs events.Group
	closed      bool
}

// New wraps every element in a Track with preload suppressed, wires readiness
// forwarding, and then preloads the whole group when preload is true
func New(logger *zap.Logger, elements []domain.MediaElement, preload bool) *TrackGroup {
	g := &TrackGroup{
		logger:    logger,
		longest:   noLongest,
		duration:  math.NaN(),
		announced: domain.HaveNothing,
		emitter:   events.NewEmitter(),
	}
	for _, el := range elements {
		g.AddTrack(track.New(logger, el, false))
	}
	if preload {
		g.Preload()
	}
	return g
}

// AddTrack appends t and forwards its readiness events to the group
func (g *TrackGroup) AddTrack(t *track.Track) *TrackGroup {
	for _, threshold := range domain.Thresholds {
		threshold := threshold
		eventType, _ := domain.ThresholdEvent(threshold)
		g.trackSubs.Add(t.On(eventType, func(domain.Event) {
			g.onTrackThreshold(threshold, eventType)
		}))
	}
	g.tracks = append(g.tracks, t)

	g.logger.Debug("Track added to group",
		zap.Int("index", len(g.tracks)-1),
		zap.Int("tracks", len(g.tracks)))
	return g
}

// Tracks returns the member tracks in insertion order
func (g *TrackGroup) Tracks() []*track.Track {
	out := make([]*track.Track, len(g.tracks))
	copy(out, g.tracks)
	return out
}

// Longest returns the reference track once it has been elected
func (g *TrackGroup) Longest() (*track.Track, bool) {
	if g.longest == noLongest {
		return nil, false
	}
	return g.tracks[g.longest], true
}

// Duration returns the reference track's duration, NaN before election
func (g *TrackGroup) Duration() float64 {
	return g.duration
}

// CurrentTime returns the group position
func (g *TrackGroup) CurrentTime() float64 {
	return g.currentTime
}

// ReadyState returns the lowest ready state across members
func (g *TrackGroup) ReadyState() domain.ReadyState {
	states := make([]domain.ReadyState, 0, len(g.tracks))
	for _, t := range g.tracks {
		states = append(states, t.ReadyState())
	}
	return MinState(states)
}

// CanPlay reports whether every member has future data
func (g *TrackGroup) CanPlay() bool {
	return g.ReadyState() >= domain.HaveFutureData
}

// Preload asks every member to load its media
func (g *TrackGroup) Preload() *TrackGroup {
	for _, t := range g.tracks {
		t.Preload()
	}
	return g
}

// Play seeks every member to the group position and starts them.
// It returns domain.ErrNotReady without touching any track when the group cannot play.
func (g *TrackGroup) Play() error {
	if !g.CanPlay() {
		g.logger.Debug("Play requested before group is ready",
			zap.Stringer("readyState", g.ReadyState()))
		return domain.ErrNotReady
	}
	g.Seek(g.currentTime)

	var err error
	for i, t := range g.tracks {
		if playErr := t.Play(); playErr != nil {
			err = multierr.Append(err, fmt.Errorf("track %d: play: %w", i, playErr))
		}
	}
	return err
}

// Pause pauses every member
func (g *TrackGroup) Pause() error {
	var err error
	for i, t := range g.tracks {
		if pauseErr := t.Pause(); pauseErr != nil {
			err = multierr.Append(err, fmt.Errorf("track %d: pause: %w", i, pauseErr))
		}
	}
	return err
}

// Stop pauses every member and rewinds the group to the start.
// It returns domain.ErrNotReady when the group cannot play.
func (g *TrackGroup) Stop() error {
	if !g.CanPlay() {
		return domain.ErrNotReady
	}

	var err error
	for i, t := range g.tracks {
		if stopErr := t.Stop(); stopErr != nil {
			err = multierr.Append(err, fmt.Errorf("track %d: stop: %w", i, stopErr))
		}
	}
	g.currentTime = 0
	return err
}

// Seek moves the group and every member to the same absolute position.
// Members shorter than time clamp on their own.
func (g *TrackGroup) Seek(time float64) *TrackGroup {
	g.currentTime = time
	for _, t := range g.tracks {
		t.Seek(time)
	}
	return g
}

// SetVolume applies a 0-100 volume to every member
func (g *TrackGroup) SetVolume(volume float64) *TrackGroup {
	for _, t := range g.tracks {
		t.SetVolume(volume)
	}
	return g
}

// Average returns the group position as a percentage of the group duration
func (g *TrackGroup) Average(precision int) float64 {
	return track.ToAverage(g.currentTime, g.duration, precision)
}

// HumanizedTime formats the group position
func (g *TrackGroup) HumanizedTime(withHours bool) string {
	return track.HumanizeTime(g.currentTime, withHours)
}

// HumanizedDuration formats the group duration
func (g *TrackGroup) HumanizedDuration(withHours bool) string {
	return track.HumanizeTime(g.duration, withHours)
}

// BufferedRanges returns the ranges buffered by every member at once.
// The span between a short member's end and the group end counts as unbuffered
// for that member, even if the element reports data there.
func (g *TrackGroup) BufferedRanges() []domain.BufferedRange {
	var result []domain.BufferedRange
	for i, t := range g.tracks {
		ranges := t.BufferedRanges()
		if d := t.Duration(); d < g.duration {
			ranges = Subtract(ranges, domain.BufferedRange{Start: d, End: g.duration})
		}
		if i == 0 {
			result = ranges
			continue
		}
		result = Intersect(result, ranges)
	}
	return result
}

// On subscribes fn to a group event. Events reach fn with the group as target.
func (g *TrackGroup) On(eventType domain.EventType, fn domain.Handler) domain.Subscription {
	return g.emitter.On(eventType, fn)
}

// Trigger fires a synthetic event of the given type on the group
func (g *TrackGroup) Trigger(eventType domain.EventType) {
	g.emitter.Emit(domain.Event{Type: eventType, Target: g})
}

// Close detaches every listener the group placed on its tracks.
// The tracks and their elements are left untouched. Close is idempotent.
func (g *TrackGroup) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.trackSubs.UnsubscribeAll()
	g.longestSubs.UnsubscribeAll()
	g.logger.Debug("Track group closed", zap.Int("tracks", len(g.tracks)))
}

// onTrackThreshold fires a group threshold event the first time the aggregate
// minimum reaches it. A member falling behind lowers the announced level so the
// event fires again once every member is back.
func (g *TrackGroup) onTrackThreshold(threshold domain.ReadyState, eventType domain.EventType) {
	state := g.ReadyState()
	if state < g.announced {
		g.announced = state
	}
	if state < threshold {
		return
	}
	if threshold == domain.HaveMetadata && g.longest == noLongest {
		g.elect()
	}
	if threshold <= g.announced {
		return
	}
	g.announced = threshold
	g.Trigger(eventType)
}

// elect picks the first member with the strictly greatest duration
func (g *TrackGroup) elect() {
	if len(g.tracks) == 0 {
		return
	}
	longest := 0
	for i, t := range g.tracks {
		if g.tracks[longest].Duration() < t.Duration() {
			longest = i
		}
	}
	g.longest = longest
	g.duration = g.tracks[longest].Duration()

	ref := g.tracks[longest]
	for _, eventType := range domain.TransportEvents {
		eventType := eventType
		g.longestSubs.Add(ref.On(eventType, func(domain.Event) {
			if eventType == domain.EventTimeUpdate {
				g.currentTime = ref.CurrentTime()
			}
			g.Trigger(eventType)
		}))
	}

	g.logger.Info("Reference track elected",
		zap.Int("index", longest),
		zap.Float64("duration", g.duration),
		zap.Int("tracks", len(g.tracks)))
}
