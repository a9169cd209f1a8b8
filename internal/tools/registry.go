package tools

import (
	"context"
	"encoding/json"
	"fmt"

	domainerrors "github.com/listenupapp/audiobook-mcp/internal/errors"
	"github.com/listenupapp/audiobook-mcp/internal/validation"
)

// Tool names, in the order tools/list reports them.
const (
	ToolPlayAudiobook      = "play_audiobook"
	ToolPlayChapter        = "play_chapter"
	ToolControlPlayback    = "control_playback"
	ToolSearchAudiobooks   = "search_audiobooks"
	ToolGetCurrentBook     = "get_current_book"
	ToolAddBookmark        = "add_bookmark"
	ToolListBookmarks      = "list_bookmarks"
	ToolSetReadingSpeed    = "set_reading_speed"
	ToolGetReadingProgress = "get_reading_progress"
	ToolCreateReadingList  = "create_reading_list"
)

// handlerFunc runs a tool against raw JSON arguments and returns its report.
type handlerFunc func(ctx context.Context, raw json.RawMessage) (string, error)

// tool is one entry of the fixed tool table.
type tool struct {
	name        string
	description string
	schema      inputSchema
	call        handlerFunc
}

// bind decodes raw arguments into A, validates them and calls fn.
func bind[A any](v *validation.Validator, fn func(ctx context.Context, args A) (string, error)) handlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (string, error) {
		var args A
		if err := json.Unmarshal(raw, &args); err != nil {
			return "", domainerrors.Validationf("invalid arguments: %v", err)
		}
		if err := v.Validate(args); err != nil {
			return "", err
		}
		return fn(ctx, args)
	}
}

// toolSpec is the declaration of a tool before its schema is built.
type toolSpec struct {
	name        string
	description string
	args        any
	call        handlerFunc
}

// buildTools declares the tool table in its published order.
func (d *Dispatcher) buildTools() ([]tool, error) {
	v := d.validator
	specs := []toolSpec{
		{ToolPlayAudiobook, "Play a specific audiobook by title, author, or search query",
			&PlayAudiobookArgs{}, bind(v, d.playAudiobook)},
		{ToolPlayChapter, "Play a specific chapter of the current audiobook",
			&PlayChapterArgs{}, bind(v, d.playChapter)},
		{ToolControlPlayback, "Control audiobook playback (play, pause, stop, next chapter, previous chapter, speed, seek)",
			&ControlPlaybackArgs{}, bind(v, d.controlPlayback)},
		{ToolSearchAudiobooks, "Search for audiobooks by title, author, genre, or keywords",
			&SearchAudiobooksArgs{}, bind(v, d.searchAudiobooks)},
		{ToolGetCurrentBook, "Get information about the currently playing audiobook and reading progress",
			&GetCurrentBookArgs{}, bind(v, d.getCurrentBook)},
		{ToolAddBookmark, "Add a bookmark at the current position or specific time",
			&AddBookmarkArgs{}, bind(v, d.addBookmark)},
		{ToolListBookmarks, "List all bookmarks for the current audiobook",
			&ListBookmarksArgs{}, bind(v, d.listBookmarks)},
		{ToolSetReadingSpeed, "Set the playback speed for audiobook reading",
			&SetReadingSpeedArgs{}, bind(v, d.setReadingSpeed)},
		{ToolGetReadingProgress, "Get detailed reading progress and statistics",
			&GetReadingProgressArgs{}, bind(v, d.getReadingProgress)},
		{ToolCreateReadingList, "Create a reading list with multiple audiobooks",
			&CreateReadingListArgs{}, bind(v, d.createReadingList)},
	}

	tools := make([]tool, 0, len(specs))
	for _, spec := range specs {
		schema, err := buildSchema(spec.name, spec.args)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", spec.name, err)
		}
		tools = append(tools, tool{
			name:        spec.name,
			description: spec.description,
			schema:      schema,
			call:        spec.call,
		})
	}
	return tools, nil
}
