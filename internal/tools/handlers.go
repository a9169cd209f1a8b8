package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/listenupapp/audiobook-mcp/internal/catalog"
	"github.com/listenupapp/audiobook-mcp/internal/domain"
	domainerrors "github.com/listenupapp/audiobook-mcp/internal/errors"
)

// Shared report texts.
const (
	textNoBookLoaded  = `📚 No audiobook currently loaded. Use "play_audiobook" to load a book first.`
	textNoBookPlaying = `📚 No audiobook currently playing. Use "play_audiobook" to start playing an audiobook.`
	textNoTargetBook  = `📚 No book specified and no audiobook currently loaded.`
)

func (d *Dispatcher) playAudiobook(ctx context.Context, args PlayAudiobookArgs) (string, error) {
	books, err := d.catalog.Find(ctx, args.Query, args.Author, args.Genre)
	if err != nil {
		return "", err
	}
	if len(books) == 0 {
		return fmt.Sprintf(`📚 No audiobooks found matching "%s". Try a different search term.`, args.Query), nil
	}

	book := books[0]
	p := d.session.Load(book).Playback

	var b strings.Builder
	fmt.Fprintf(&b, "📚 Now Playing: \"%s\" by %s\n", book.Title, book.Author)
	fmt.Fprintf(&b, "🎭 Narrator: %s\n", book.Narrator)
	fmt.Fprintf(&b, "📖 Genre: %s\n", book.Genre)
	fmt.Fprintf(&b, "📅 Year: %d\n", book.Year)
	fmt.Fprintf(&b, "📄 Chapters: %d\n", book.Chapters)
	fmt.Fprintf(&b, "⏱️ Duration: %s\n", formatDuration(book.Duration))
	fmt.Fprintf(&b, "📝 Description: %s\n\n", book.Description)
	fmt.Fprintf(&b, "🎧 Chapter: %d/%d\n", p.Chapter, book.Chapters)
	fmt.Fprintf(&b, "▶️ Playing: %s\n", yesNo(p.Playing))
	fmt.Fprintf(&b, "⚡ Speed: %s\n", formatSpeed(p.Speed))
	fmt.Fprintf(&b, "📍 Position: %s\n\n", formatClock(p.Position))

	if len(books) > 1 {
		fmt.Fprintf(&b, "💡 Found %d more matching audiobooks. Use \"search_audiobooks\" to see all results.", len(books)-1)
	}
	return b.String(), nil
}

func (d *Dispatcher) playChapter(ctx context.Context, args PlayChapterArgs) (string, error) {
	chapter := *args.Chapter

	book, err := d.session.PlayChapter(ctx, chapter, args.BookTitle)
	switch {
	case err == nil:
	case domainerrors.Is(err, domainerrors.ErrNotFound) && args.BookTitle != "":
		return fmt.Sprintf(`📚 Book "%s" not found. Please load it first with "play_audiobook".`, args.BookTitle), nil
	case domainerrors.Is(err, domainerrors.ErrNoBookLoaded):
		return textNoBookLoaded, nil
	case domainerrors.Is(err, domainerrors.ErrChapterOutOfRange):
		return fmt.Sprintf("📚 Chapter %d not found. This book has %d chapters.", chapter, book.Chapters), nil
	default:
		return "", err
	}

	p := d.session.Snapshot().Playback

	var b strings.Builder
	fmt.Fprintf(&b, "📚 Playing Chapter %d of \"%s\"\n", chapter, book.Title)
	fmt.Fprintf(&b, "👤 Author: %s\n", book.Author)
	fmt.Fprintf(&b, "📄 Total Chapters: %d\n", book.Chapters)
	b.WriteString("▶️ Status: Playing\n")
	fmt.Fprintf(&b, "⚡ Speed: %s\n", formatSpeed(p.Speed))
	b.WriteString("📍 Position: 0:00\n\n")
	b.WriteString(`💡 Use "control_playback" to pause, seek, or change chapters.`)
	return b.String(), nil
}

func (d *Dispatcher) controlPlayback(_ context.Context, args ControlPlaybackArgs) (string, error) {
	if !d.session.Snapshot().Playback.Loaded() {
		return textNoBookLoaded, nil
	}

	text, err := d.applyControl(args)
	if domainerrors.Is(err, domainerrors.ErrNoBookLoaded) {
		return textNoBookLoaded, nil
	}
	return text, err
}

func (d *Dispatcher) applyControl(args ControlPlaybackArgs) (string, error) {
	switch args.Action {
	case ActionPlay:
		p, err := d.session.Play()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("▶️ Audiobook resumed - Now playing: \"%s\" Chapter %d", p.Book.Title, p.Chapter), nil

	case ActionPause:
		if _, err := d.session.Pause(); err != nil {
			return "", err
		}
		return "⏸️ Audiobook paused", nil

	case ActionStop:
		if _, err := d.session.Stop(); err != nil {
			return "", err
		}
		return "⏹️ Audiobook stopped", nil

	case ActionNextChapter:
		p, moved, err := d.session.NextChapter()
		if err != nil {
			return "", err
		}
		if !moved {
			return fmt.Sprintf("⏭️ Already at the last chapter (%d)", p.Book.Chapters), nil
		}
		return fmt.Sprintf("⏭️ Next chapter: Chapter %d of \"%s\"", p.Chapter, p.Book.Title), nil

	case ActionPreviousChapter:
		p, moved, err := d.session.PreviousChapter()
		if err != nil {
			return "", err
		}
		if !moved {
			return "⏮️ Already at the first chapter", nil
		}
		return fmt.Sprintf("⏮️ Previous chapter: Chapter %d of \"%s\"", p.Chapter, p.Book.Title), nil

	case ActionSpeed:
		if args.Value != nil && domain.ValidSpeed(*args.Value) {
			p, err := d.session.SetSpeed(*args.Value)
			if err != nil {
				return "", err
			}
			return "⚡ Playback speed set to " + formatSpeed(p.Speed), nil
		}
		current := d.session.Snapshot().Playback.Speed
		return "⚡ Current speed: " + formatSpeed(current) + " (use value 0.5-3.0 to change)", nil

	case ActionSeek:
		if args.Value == nil {
			return "⏰ Use seek action with value parameter to seek to specific time in seconds", nil
		}
		if _, err := d.session.Seek(*args.Value); err != nil {
			return "", err
		}
		return "⏰ Seeked to " + formatClock(*args.Value), nil

	default:
		return "❓ Unknown action: " + args.Action, nil
	}
}

func (d *Dispatcher) searchAudiobooks(ctx context.Context, args SearchAudiobooksArgs) (string, error) {
	facet := catalog.FacetAll
	if args.Type != "" {
		facet = catalog.Facet(args.Type)
	}
	limit := catalog.DefaultSearchLimit
	if args.Limit != nil {
		limit = *args.Limit
	}

	books, err := d.catalog.Search(ctx, args.Query, facet, limit)
	if err != nil {
		return "", err
	}
	if len(books) == 0 {
		return fmt.Sprintf(`🔍 No audiobooks found for "%s" in %s search.`, args.Query, facet), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Search results for \"%s\" (%s):\n\n", args.Query, facet)
	for i, book := range books {
		fmt.Fprintf(&b, "%d. 📚 %s\n", i+1, book.Title)
		fmt.Fprintf(&b, "   👤 Author: %s\n", book.Author)
		fmt.Fprintf(&b, "   🎭 Narrator: %s\n", book.Narrator)
		fmt.Fprintf(&b, "   📖 Genre: %s\n\n", book.Genre)
	}
	return b.String(), nil
}

func (d *Dispatcher) getCurrentBook(_ context.Context, _ GetCurrentBookArgs) (string, error) {
	snap := d.session.Snapshot()
	p := snap.Playback
	if !p.Loaded() {
		return textNoBookPlaying, nil
	}
	book := p.Book

	var b strings.Builder
	b.WriteString("📚 Currently Playing:\n")
	fmt.Fprintf(&b, "📖 Title: \"%s\"\n", book.Title)
	fmt.Fprintf(&b, "👤 Author: %s\n", book.Author)
	fmt.Fprintf(&b, "🎭 Narrator: %s\n", book.Narrator)
	fmt.Fprintf(&b, "📖 Genre: %s\n", book.Genre)
	fmt.Fprintf(&b, "📅 Year: %d\n", book.Year)
	fmt.Fprintf(&b, "📄 Total Chapters: %d\n\n", book.Chapters)

	b.WriteString("🎧 Current Status:\n")
	fmt.Fprintf(&b, "📄 Chapter: %d/%d\n", p.Chapter, book.Chapters)
	fmt.Fprintf(&b, "▶️ Playing: %s\n", yesNo(p.Playing))
	fmt.Fprintf(&b, "⚡ Speed: %s\n", formatSpeed(p.Speed))
	fmt.Fprintf(&b, "📍 Position: %s\n", formatClock(p.Position))

	if pr := snap.Progress; pr != nil {
		fmt.Fprintf(&b, "📊 Progress: %d%% completed\n", pr.Percent())
		fmt.Fprintf(&b, "⏱️ Total Duration: %s\n", formatDuration(pr.TotalDuration))
		fmt.Fprintf(&b, "✅ Completed: %s", formatDuration(pr.CompletedDuration))
	}
	return b.String(), nil
}

func (d *Dispatcher) addBookmark(_ context.Context, args AddBookmarkArgs) (string, error) {
	bm, book, err := d.session.AddBookmark(args.Name, args.Position, args.Chapter)
	if domainerrors.Is(err, domainerrors.ErrNoBookLoaded) {
		return textNoBookLoaded, nil
	}
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔖 Bookmark added: \"%s\"\n", bm.Name)
	fmt.Fprintf(&b, "📚 Book: %s\n", book.Title)
	fmt.Fprintf(&b, "📄 Chapter: %d\n", bm.Chapter)
	fmt.Fprintf(&b, "⏰ Position: %s\n", formatClock(bm.Position))
	fmt.Fprintf(&b, "📅 Date: %s", formatDate(bm.CreatedAt))
	return b.String(), nil
}

// resolveTarget finds the book a list_bookmarks or get_reading_progress call
// is about. label is the title to print; book is nil when nothing matched.
func (d *Dispatcher) resolveTarget(ctx context.Context, title string) (book *domain.Book, label string, err error) {
	found, err := d.session.ResolveBook(ctx, title)
	switch {
	case err == nil:
		return &found, found.Title, nil
	case domainerrors.Is(err, domainerrors.ErrNotFound):
		return nil, title, nil
	default:
		return nil, "", err
	}
}

func (d *Dispatcher) listBookmarks(ctx context.Context, args ListBookmarksArgs) (string, error) {
	book, label, err := d.resolveTarget(ctx, args.BookTitle)
	if domainerrors.Is(err, domainerrors.ErrNoBookLoaded) {
		return textNoTargetBook, nil
	}
	if err != nil {
		return "", err
	}

	var marks []domain.Bookmark
	if book != nil {
		marks = d.session.Bookmarks(book.ID)
	}
	if len(marks) == 0 {
		return fmt.Sprintf(`🔖 No bookmarks found for "%s". Use "add_bookmark" to create bookmarks.`, label), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔖 Bookmarks for \"%s\":\n\n", label)
	for i, bm := range marks {
		fmt.Fprintf(&b, "%d. 📌 %s\n", i+1, bm.Name)
		fmt.Fprintf(&b, "   📄 Chapter: %d\n", bm.Chapter)
		fmt.Fprintf(&b, "   ⏰ Position: %s\n", formatClock(bm.Position))
		fmt.Fprintf(&b, "   📅 Date: %s\n\n", formatDate(bm.CreatedAt))
	}
	return b.String(), nil
}

func (d *Dispatcher) setReadingSpeed(_ context.Context, args SetReadingSpeedArgs) (string, error) {
	p, err := d.session.SetSpeed(*args.Speed)
	if domainerrors.Is(err, domainerrors.ErrSpeedOutOfRange) {
		return "⚡ Speed must be between 0.5x and 3.0x. Current speed: " + formatSpeed(p.Speed), nil
	}
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⚡ Reading speed set to %s\n", formatSpeed(p.Speed))
	if p.Book != nil {
		fmt.Fprintf(&b, "📚 Book: %s\n", p.Book.Title)
		fmt.Fprintf(&b, "📄 Chapter: %d", p.Chapter)
	}
	return b.String(), nil
}

func (d *Dispatcher) getReadingProgress(ctx context.Context, args GetReadingProgressArgs) (string, error) {
	book, label, err := d.resolveTarget(ctx, args.BookTitle)
	if domainerrors.Is(err, domainerrors.ErrNoBookLoaded) {
		return textNoTargetBook, nil
	}
	if err != nil {
		return "", err
	}

	noProgress := fmt.Sprintf(`📊 No reading progress found for "%s". Start reading to track progress.`, label)
	if book == nil {
		return noProgress, nil
	}
	pr, err := d.session.Progress(book.ID)
	if domainerrors.Is(err, domainerrors.ErrNotFound) {
		return noProgress, nil
	}
	if err != nil {
		return "", err
	}

	now := d.session.Now()
	days := pr.DaysReading(now)

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Reading Progress for \"%s\":\n\n", label)
	fmt.Fprintf(&b, "📈 Overall Progress: %d%%\n", pr.Percent())
	fmt.Fprintf(&b, "⏱️ Total Duration: %s\n", formatDuration(pr.TotalDuration))
	fmt.Fprintf(&b, "✅ Completed: %s\n", formatDuration(pr.CompletedDuration))
	fmt.Fprintf(&b, "⏳ Remaining: %s\n", formatDuration(pr.Remaining()))
	fmt.Fprintf(&b, "📄 Chapters Completed: %d\n", pr.ChaptersCompleted)
	fmt.Fprintf(&b, "📅 Started: %s\n", formatDate(pr.StartedAt))
	fmt.Fprintf(&b, "📆 Days Reading: %d days\n", days)
	if avg, ok := pr.AverageMinutesPerDay(now); ok {
		fmt.Fprintf(&b, "📊 Average per Day: %d minutes", avg)
	}
	return b.String(), nil
}

func (d *Dispatcher) createReadingList(_ context.Context, args CreateReadingListArgs) (string, error) {
	list := d.session.CreateReadingList(args.Name, args.Books)

	var b strings.Builder
	fmt.Fprintf(&b, "📚 Reading List Created: \"%s\"\n", list.Name)
	fmt.Fprintf(&b, "📋 %d books added:\n\n", len(list.Books))
	for i, ref := range list.Books {
		fmt.Fprintf(&b, "%d. 📖 %s\n", i+1, ref)
	}
	b.WriteString("\n💡 Use \"play_audiobook\" to start reading any book from this list.")
	return b.String(), nil
}
