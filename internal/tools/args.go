package tools

// Argument structs for each tool. Field tags drive three things:
// json decoding, the published JSON schema, and validation.
// Required arguments have no omitempty; optional ones are pointers or omitempty.

// PlayAudiobookArgs are the arguments of play_audiobook.
type PlayAudiobookArgs struct {
	Query  string `json:"query" validate:"required" jsonschema_description:"Book title, author, or search query (e.g., \"1984\", \"George Orwell\", \"dystopian fiction\")"`
	Author string `json:"author,omitempty" jsonschema_description:"Optional: Specific author name"`
	Genre  string `json:"genre,omitempty" jsonschema_description:"Optional: Book genre (e.g., \"fiction\", \"non-fiction\", \"mystery\", \"sci-fi\", \"biography\")"`
}

// PlayChapterArgs are the arguments of play_chapter.
type PlayChapterArgs struct {
	Chapter   *int   `json:"chapter" validate:"required" jsonschema_description:"Chapter number to play"`
	BookTitle string `json:"book_title,omitempty" jsonschema_description:"Optional: Book title if not currently loaded"`
}

// Playback control actions.
const (
	ActionPlay            = "play"
	ActionPause           = "pause"
	ActionStop            = "stop"
	ActionNextChapter     = "next_chapter"
	ActionPreviousChapter = "previous_chapter"
	ActionSpeed           = "speed"
	ActionSeek            = "seek"
)

// ControlPlaybackArgs are the arguments of control_playback.
// Unrecognized actions are reported rather than rejected.
type ControlPlaybackArgs struct {
	Action string   `json:"action" validate:"required" jsonschema:"enum=play,enum=pause,enum=stop,enum=next_chapter,enum=previous_chapter,enum=speed,enum=seek" jsonschema_description:"Control action to perform"`
	Value  *float64 `json:"value,omitempty" jsonschema_description:"For speed: 0.5-3.0, for seek: position in seconds"`
}

// SearchAudiobooksArgs are the arguments of search_audiobooks.
type SearchAudiobooksArgs struct {
	Query string `json:"query" validate:"required" jsonschema_description:"Search query for audiobooks"`
	Type  string `json:"type,omitempty" jsonschema:"enum=title,enum=author,enum=genre,enum=all,default=all" jsonschema_description:"Type of search to perform"`
	Limit *int   `json:"limit,omitempty" jsonschema:"minimum=1,default=10" jsonschema_description:"Maximum number of results to return"`
}

// GetCurrentBookArgs are the arguments of get_current_book.
type GetCurrentBookArgs struct{}

// AddBookmarkArgs are the arguments of add_bookmark.
type AddBookmarkArgs struct {
	Name     string   `json:"name" validate:"required" jsonschema_description:"Bookmark name or description"`
	Position *float64 `json:"position,omitempty" jsonschema_description:"Optional: Position in seconds (if not provided, uses current position)"`
	Chapter  *int     `json:"chapter,omitempty" jsonschema_description:"Optional: Chapter number"`
}

// ListBookmarksArgs are the arguments of list_bookmarks.
type ListBookmarksArgs struct {
	BookTitle string `json:"book_title,omitempty" jsonschema_description:"Optional: Book title (if not provided, uses current book)"`
}

// SetReadingSpeedArgs are the arguments of set_reading_speed.
type SetReadingSpeedArgs struct {
	Speed *float64 `json:"speed" validate:"required" jsonschema_description:"Playback speed (0.5 = half speed, 1.0 = normal, 2.0 = double speed, max 3.0)"`
}

// GetReadingProgressArgs are the arguments of get_reading_progress.
type GetReadingProgressArgs struct {
	BookTitle string `json:"book_title,omitempty" jsonschema_description:"Optional: Book title (if not provided, uses current book)"`
}

// CreateReadingListArgs are the arguments of create_reading_list.
type CreateReadingListArgs struct {
	Name  string   `json:"name" validate:"required" jsonschema_description:"Reading list name"`
	Books []string `json:"books" validate:"required" jsonschema_description:"Array of book titles or search queries"`
}
