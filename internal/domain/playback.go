package domain

// Playback speed bounds.
const (
	MinSpeed     = 0.5
	MaxSpeed     = 3.0
	DefaultSpeed = 1.0
)

// PlaybackStatus is the state of the playback machine.
type PlaybackStatus string

// Playback states.
const (
	StatusUnloaded PlaybackStatus = "unloaded"
	StatusPlaying  PlaybackStatus = "playing"
	StatusPaused   PlaybackStatus = "paused"
)

// PlaybackState is the single mutable playback record of a session.
// When Book is set, Chapter is within [1, Book.Chapters].
type PlaybackState struct {
	Book     *Book   `json:"book,omitempty"`
	Chapter  int     `json:"chapter"`
	Playing  bool    `json:"playing"`
	Speed    float64 `json:"speed"`
	Position float64 `json:"position"` // seconds into the current chapter
}

// NewPlaybackState returns the initial, unloaded state.
func NewPlaybackState() PlaybackState {
	return PlaybackState{
		Chapter: 1,
		Speed:   DefaultSpeed,
	}
}

// Loaded reports whether a book is current.
func (p PlaybackState) Loaded() bool {
	return p.Book != nil
}

// Status derives the machine state.
func (p PlaybackState) Status() PlaybackStatus {
	switch {
	case p.Book == nil:
		return StatusUnloaded
	case p.Playing:
		return StatusPlaying
	default:
		return StatusPaused
	}
}

// ValidSpeed reports whether v is an accepted playback speed.
func ValidSpeed(v float64) bool {
	return v >= MinSpeed && v <= MaxSpeed
}
