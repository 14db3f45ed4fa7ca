package domain

// ReadyState classifies how much media data an element has, lowest first
type ReadyState int

const (
	// HaveNothing means no information about the media is available
	HaveNothing ReadyState = iota
	// HaveMetadata means duration and dimensions are known
	HaveMetadata
	// HaveCurrentData means data for the current position is available
	HaveCurrentData
	// HaveFutureData means enough data to advance past the current position
	HaveFutureData
	// HaveEnoughData means playback can run to the end without stalling
	HaveEnoughData
)

// String returns the HTML media name of the state
func (s ReadyState) String() string {
	switch s {
	case HaveNothing:
		return "HAVE_NOTHING"
	case HaveMetadata:
		return "HAVE_METADATA"
	case HaveCurrentData:
		return "HAVE_CURRENT_DATA"
	case HaveFutureData:
		return "HAVE_FUTURE_DATA"
	case HaveEnoughData:
		return "HAVE_ENOUGH_DATA"
	default:
		return "UNKNOWN"
	}
}

// EventType names a media lifecycle or transport event
type EventType string

const (
	EventLoadedMetadata EventType = "loadedmetadata"
	EventLoadedData     EventType = "loadeddata"
	EventCanPlay        EventType = "canplay"
	EventCanPlayThrough EventType = "canplaythrough"
	EventTimeUpdate     EventType = "timeupdate"
	EventEnded          EventType = "ended"
	EventPlay           EventType = "play"
	EventPause          EventType = "pause"
	EventPlaying        EventType = "playing"
)

// Thresholds lists the ready states that have a lifecycle event, in ascending order
var Thresholds = []ReadyState{HaveMetadata, HaveCurrentData, HaveFutureData, HaveEnoughData}

// TransportEvents are re-emitted by a group from its reference track
var TransportEvents = []EventType{EventTimeUpdate, EventEnded, EventPause, EventPlay, EventPlaying}

// ThresholdEvent returns the lifecycle event fired when an element reaches s.
// HaveNothing has no event.
func ThresholdEvent(s ReadyState) (EventType, bool) {
	switch s {
	case HaveMetadata:
		return EventLoadedMetadata, true
	case HaveCurrentData:
		return EventLoadedData, true
	case HaveFutureData:
		return EventCanPlay, true
	case HaveEnoughData:
		return EventCanPlayThrough, true
	default:
		return "", false
	}
}

// Event is delivered to listeners
type Event struct {
	// Type is the event name
	Type EventType
	// Target is the object the listener was bound to
	Target any
}

// BufferedRange is a closed interval of loaded media, in seconds
type BufferedRange struct {
	Start float64
	End   float64
}

// PlayerStatus represents the current state of the media player
type PlayerStatus string

const (
	// StatusPlaying indicates the media is currently playing
	StatusPlaying PlayerStatus = "Playing"
	// StatusPaused indicates the media is paused
	StatusPaused PlayerStatus = "Paused"
	// StatusStopped indicates the media is stopped
	StatusStopped PlayerStatus = "Stopped"
)

// SignalKind identifies what changed on a player
type SignalKind int

const (
	// SignalPropertiesChanged means playback status, metadata or capabilities changed
	SignalPropertiesChanged SignalKind = iota
	// SignalSeeked means the position jumped
	SignalSeeked
	// SignalPlayerLost means the player left the bus
	SignalPlayerLost
)

// String returns a log-friendly name
func (k SignalKind) String() string {
	switch k {
	case SignalPropertiesChanged:
		return "PropertiesChanged"
	case SignalSeeked:
		return "Seeked"
	case SignalPlayerLost:
		return "PlayerLost"
	default:
		return "Unknown"
	}
}

// PlayerSignal is a notification about one player, keyed by its well-known name
type PlayerSignal struct {
	Player string
	Kind   SignalKind
}

// RangeList is a TimeRanges backed by a slice
type RangeList []BufferedRange

// Len returns the number of ranges
func (r RangeList) Len() int { return len(r) }

// Start returns the start of range i
func (r RangeList) Start(i int) float64 { return r[i].Start }

// End returns the end of range i
func (r RangeList) End(i int) float64 { return r[i].End }
