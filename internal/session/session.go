// Package session implements the audiobook reading session: playback state,
// bookmarks, reading progress and reading lists.
package session

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/listenupapp/audiobook-mcp/internal/catalog"
	"github.com/listenupapp/audiobook-mcp/internal/domain"
	domainerrors "github.com/listenupapp/audiobook-mcp/internal/errors"
	"github.com/listenupapp/audiobook-mcp/internal/id"
)

// Session is the playback state machine for one client.
//
// Thread safety: every operation holds the session mutex, so calls from
// concurrent transport workers are serialized. Operations validate before
// mutating; a rejected call leaves the state unchanged.
type Session struct {
	mu sync.Mutex

	catalog  catalog.Catalog
	playback domain.PlaybackState

	bookmarks    map[string][]domain.Bookmark      // book ID -> insertion order
	progress     map[string]*domain.ProgressRecord // book ID -> record
	readingLists map[string]*domain.ReadingList    // name -> list

	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New creates an unloaded session reading from cat.
func New(cat catalog.Catalog, logger *slog.Logger, opts ...Option) *Session {
	s := &Session{
		catalog:      cat,
		playback:     domain.NewPlaybackState(),
		bookmarks:    make(map[string][]domain.Bookmark),
		progress:     make(map[string]*domain.ProgressRecord),
		readingLists: make(map[string]*domain.ReadingList),
		now:          time.Now,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot is a copy of the playback state and the current book's progress.
type Snapshot struct {
	Playback domain.PlaybackState   `json:"playback"`
	Progress *domain.ProgressRecord `json:"progress,omitempty"`
}

// Now returns the session clock's current time.
func (s *Session) Now() time.Time {
	return s.now()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{Playback: s.playback}
	if s.playback.Book != nil {
		book := *s.playback.Book
		snap.Playback.Book = &book
		if p, ok := s.progress[book.ID]; ok {
			record := *p
			snap.Progress = &record
		}
	}
	return snap
}

// Load makes book current at chapter 1, position 0, playing.
// Progress tracking starts the first time a book is loaded.
func (s *Session) Load(book domain.Book) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked(book)
	s.playback.Chapter = 1
	s.playback.Position = 0
	s.playback.Playing = true

	s.logger.Info("audiobook loaded", "book_id", book.ID, "title", book.Title)
	return s.snapshotLocked()
}

func (s *Session) loadLocked(book domain.Book) {
	s.playback.Book = &book
	if _, ok := s.progress[book.ID]; !ok {
		s.progress[book.ID] = domain.NewProgressRecord(book, s.now())
	}
}

// PlayChapter plays chapter n of the current book, or of the book whose
// title contains bookTitle when it names a different book. A named book
// becomes current.
func (s *Session) PlayChapter(ctx context.Context, n int, bookTitle string) (domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book := s.playback.Book
	if bookTitle != "" && (book == nil || book.Title != bookTitle) {
		found, err := s.catalog.Lookup(ctx, bookTitle)
		if err != nil {
			return domain.Book{}, err
		}
		book = &found
	}
	if book == nil {
		return domain.Book{}, domainerrors.ErrNoBookLoaded
	}
	if !book.HasChapter(n) {
		return *book, domainerrors.ChapterOutOfRange(n, book.Chapters)
	}

	if s.playback.Book == nil || s.playback.Book.ID != book.ID {
		s.loadLocked(*book)
		s.logger.Info("audiobook loaded", "book_id", book.ID, "title", book.Title)
	}
	s.playback.Chapter = n
	s.playback.Position = 0
	s.playback.Playing = true
	return *book, nil
}

// Play resumes playback.
func (s *Session) Play() (domain.PlaybackState, error) {
	return s.mutate(func(p *domain.PlaybackState) {
		p.Playing = true
	})
}

// Pause pauses playback.
func (s *Session) Pause() (domain.PlaybackState, error) {
	return s.mutate(func(p *domain.PlaybackState) {
		p.Playing = false
	})
}

// Stop pauses playback and rewinds to the start of the chapter.
func (s *Session) Stop() (domain.PlaybackState, error) {
	return s.mutate(func(p *domain.PlaybackState) {
		p.Playing = false
		p.Position = 0
	})
}

// NextChapter advances one chapter. moved is false at the last chapter.
func (s *Session) NextChapter() (state domain.PlaybackState, moved bool, err error) {
	state, err = s.mutate(func(p *domain.PlaybackState) {
		if p.Chapter < p.Book.Chapters {
			p.Chapter++
			p.Position = 0
			moved = true
		}
	})
	return state, moved, err
}

// PreviousChapter goes back one chapter. moved is false at chapter 1.
func (s *Session) PreviousChapter() (state domain.PlaybackState, moved bool, err error) {
	state, err = s.mutate(func(p *domain.PlaybackState) {
		if p.Chapter > 1 {
			p.Chapter--
			p.Position = 0
			moved = true
		}
	})
	return state, moved, err
}

// Seek sets the position within the current chapter. The position is not
// bounded by the chapter length.
func (s *Session) Seek(position float64) (domain.PlaybackState, error) {
	return s.mutate(func(p *domain.PlaybackState) {
		p.Position = position
	})
}

// SetSpeed sets the playback speed. It does not require a loaded book.
func (s *Session) SetSpeed(speed float64) (domain.PlaybackState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !domain.ValidSpeed(speed) {
		return s.snapshotLocked().Playback, domainerrors.SpeedOutOfRange(speed)
	}
	s.playback.Speed = speed
	return s.snapshotLocked().Playback, nil
}

// mutate applies fn to the playback state of a loaded session.
func (s *Session) mutate(fn func(p *domain.PlaybackState)) (domain.PlaybackState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playback.Book == nil {
		return s.snapshotLocked().Playback, domainerrors.ErrNoBookLoaded
	}
	fn(&s.playback)
	return s.snapshotLocked().Playback, nil
}

// ResolveBook returns the current book when title is empty or equals its
// title, and otherwise the first catalog book whose title contains title.
func (s *Session) ResolveBook(ctx context.Context, title string) (domain.Book, error) {
	s.mu.Lock()
	current := s.playback.Book
	s.mu.Unlock()

	if current != nil && (title == "" || current.Title == title) {
		return *current, nil
	}
	if title == "" {
		return domain.Book{}, domainerrors.ErrNoBookLoaded
	}
	return s.catalog.Lookup(ctx, title)
}

// AddBookmark appends a bookmark to the current book. Position and chapter
// default to the current playback state.
func (s *Session) AddBookmark(name string, position *float64, chapter *int) (domain.Bookmark, domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playback.Book == nil {
		return domain.Bookmark{}, domain.Book{}, domainerrors.ErrNoBookLoaded
	}
	book := *s.playback.Book

	bm := domain.Bookmark{
		ID:        id.MustGenerate(id.PrefixBookmark),
		BookID:    book.ID,
		Name:      name,
		Position:  s.playback.Position,
		Chapter:   s.playback.Chapter,
		CreatedAt: s.now(),
	}
	if position != nil {
		bm.Position = *position
	}
	if chapter != nil {
		bm.Chapter = *chapter
	}

	s.bookmarks[book.ID] = append(s.bookmarks[book.ID], bm)
	s.logger.Debug("bookmark added", "book_id", book.ID, "bookmark_id", bm.ID)
	return bm, book, nil
}

// Bookmarks returns the bookmarks of a book in insertion order.
func (s *Session) Bookmarks(bookID string) []domain.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.bookmarks[bookID])
}

// Progress returns the reading progress of a book.
func (s *Session) Progress(bookID string) (domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.progress[bookID]
	if !ok {
		return domain.ProgressRecord{}, domainerrors.NotFoundf("no reading progress for book %s", bookID)
	}
	return *p, nil
}

// CreateReadingList stores a list, replacing any list with the same name.
func (s *Session) CreateReadingList(name string, books []string) domain.ReadingList {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := domain.NewReadingList(id.MustGenerate(id.PrefixReadingList), name, books, s.now())
	if prev, ok := s.readingLists[name]; ok {
		list.ID = prev.ID
		list.CreatedAt = prev.CreatedAt
	}
	s.readingLists[name] = list

	out := *list
	out.Books = slices.Clone(list.Books)
	return out
}

// ReadingList returns the list with the given name.
func (s *Session) ReadingList(name string) (domain.ReadingList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.readingLists[name]
	if !ok {
		return domain.ReadingList{}, false
	}
	out := *list
	out.Books = slices.Clone(list.Books)
	return out, true
}

// ReadingLists returns all lists ordered by name.
func (s *Session) ReadingLists() []domain.ReadingList {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ReadingList, 0, len(s.readingLists))
	for _, list := range s.readingLists {
		l := *list
		l.Books = slices.Clone(list.Books)
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b domain.ReadingList) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}
