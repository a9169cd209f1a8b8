package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nowPlaying1984 = "📚 Now Playing: \"1984\" by George Orwell\n" +
	"🎭 Narrator: Simon Prebble\n" +
	"📖 Genre: Dystopian Fiction\n" +
	"📅 Year: 1949\n" +
	"📄 Chapters: 23\n" +
	"⏱️ Duration: 11h 30m\n" +
	"📝 Description: A dystopian social science fiction novel about totalitarian control.\n\n" +
	"🎧 Chapter: 1/23\n" +
	"▶️ Playing: YES\n" +
	"⚡ Speed: 1x\n" +
	"📍 Position: 0:00\n\n"

func TestPlayAudiobook(t *testing.T) {
	t.Run("loads the first match", func(t *testing.T) {
		f := newFixture(t, Options{})

		assert.Equal(t, nowPlaying1984, f.report(t, ToolPlayAudiobook, m{"query": "1984"}))

		p := f.session.Snapshot().Playback
		require.NotNil(t, p.Book)
		assert.Equal(t, "1984", p.Book.Title)
		assert.Equal(t, 1, p.Chapter)
		assert.True(t, p.Playing)
		assert.Zero(t, p.Position)
	})

	t.Run("mentions further matches", func(t *testing.T) {
		f := newFixture(t, Options{})

		text := f.report(t, ToolPlayAudiobook, m{"query": "science fiction"})
		assert.Contains(t, text, `📚 Now Playing: "1984" by George Orwell`)
		assert.Contains(t, text, "\n\n💡 Found 1 more matching audiobooks. Use \"search_audiobooks\" to see all results.")
	})

	t.Run("author and genre narrow the match", func(t *testing.T) {
		f := newFixture(t, Options{})

		text := f.report(t, ToolPlayAudiobook, m{"query": "science fiction", "genre": "science"})
		assert.Contains(t, text, `📚 Now Playing: "Dune" by Frank Herbert`)
		assert.NotContains(t, text, "💡")
	})

	t.Run("no match", func(t *testing.T) {
		f := newFixture(t, Options{})

		assert.Equal(t,
			`📚 No audiobooks found matching "Ulysses". Try a different search term.`,
			f.report(t, ToolPlayAudiobook, m{"query": "Ulysses"}))
		assert.False(t, f.session.Snapshot().Playback.Loaded())
	})
}

func TestScenario_1984(t *testing.T) {
	f := newFixture(t, Options{})

	f.report(t, ToolPlayAudiobook, m{"query": "1984"})

	assert.Equal(t, "⏰ Seeked to 2:00", f.report(t, ToolControlPlayback, m{"action": "seek", "value": 120}))
	assert.Equal(t, 120.0, f.session.Snapshot().Playback.Position)

	assert.Equal(t, `⏭️ Next chapter: Chapter 2 of "1984"`, f.report(t, ToolControlPlayback, m{"action": "next_chapter"}))
	p := f.session.Snapshot().Playback
	assert.Equal(t, 2, p.Chapter)
	assert.Zero(t, p.Position)
}

func TestPlayChapter(t *testing.T) {
	t.Run("current book", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})
		f.report(t, ToolControlPlayback, m{"action": "seek", "value": 42})

		want := "📚 Playing Chapter 7 of \"1984\"\n" +
			"👤 Author: George Orwell\n" +
			"📄 Total Chapters: 23\n" +
			"▶️ Status: Playing\n" +
			"⚡ Speed: 1x\n" +
			"📍 Position: 0:00\n\n" +
			"💡 Use \"control_playback\" to pause, seek, or change chapters."
		assert.Equal(t, want, f.report(t, ToolPlayChapter, m{"chapter": 7}))

		p := f.session.Snapshot().Playback
		assert.Equal(t, 7, p.Chapter)
		assert.Zero(t, p.Position)
	})

	t.Run("named book becomes current", func(t *testing.T) {
		f := newFixture(t, Options{})

		text := f.report(t, ToolPlayChapter, m{"chapter": 5, "book_title": "Dune"})
		assert.Contains(t, text, `📚 Playing Chapter 5 of "Dune"`)
		assert.Contains(t, text, "📄 Total Chapters: 48")

		p := f.session.Snapshot().Playback
		require.NotNil(t, p.Book)
		assert.Equal(t, "Dune", p.Book.Title)
		assert.Equal(t, 5, p.Chapter)
	})

	t.Run("named book not found", func(t *testing.T) {
		f := newFixture(t, Options{})

		assert.Equal(t,
			`📚 Book "Ulysses" not found. Please load it first with "play_audiobook".`,
			f.report(t, ToolPlayChapter, m{"chapter": 1, "book_title": "Ulysses"}))
	})

	t.Run("no book loaded", func(t *testing.T) {
		f := newFixture(t, Options{})

		assert.Equal(t, textNoBookLoaded, f.report(t, ToolPlayChapter, m{"chapter": 1}))
	})

	t.Run("out of range", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})

		for _, ch := range []int{0, 24, -1} {
			text := f.report(t, ToolPlayChapter, m{"chapter": ch})
			assert.Contains(t, text, "not found. This book has 23 chapters.")
		}
		assert.Equal(t, "📚 Chapter 99 not found. This book has 23 chapters.", f.report(t, ToolPlayChapter, m{"chapter": 99}))
		assert.Equal(t, 1, f.session.Snapshot().Playback.Chapter)
	})
}

func TestControlPlayback(t *testing.T) {
	t.Run("requires a book for every action", func(t *testing.T) {
		f := newFixture(t, Options{})

		for _, action := range []string{ActionPlay, ActionPause, ActionSpeed, ActionSeek, "dance"} {
			assert.Equal(t, textNoBookLoaded, f.report(t, ToolControlPlayback, m{"action": action}), action)
		}
	})

	t.Run("transitions", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})

		assert.Equal(t, "⏸️ Audiobook paused", f.report(t, ToolControlPlayback, m{"action": "pause"}))
		assert.False(t, f.session.Snapshot().Playback.Playing)

		assert.Equal(t, `▶️ Audiobook resumed - Now playing: "1984" Chapter 1`, f.report(t, ToolControlPlayback, m{"action": "play"}))
		assert.True(t, f.session.Snapshot().Playback.Playing)

		f.report(t, ToolControlPlayback, m{"action": "seek", "value": 300})
		assert.Equal(t, "⏹️ Audiobook stopped", f.report(t, ToolControlPlayback, m{"action": "stop"}))
		p := f.session.Snapshot().Playback
		assert.False(t, p.Playing)
		assert.Zero(t, p.Position)
		assert.True(t, p.Loaded())
	})

	t.Run("chapter bounds", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})

		assert.Equal(t, "⏮️ Already at the first chapter", f.report(t, ToolControlPlayback, m{"action": "previous_chapter"}))
		assert.Equal(t, 1, f.session.Snapshot().Playback.Chapter)

		f.report(t, ToolPlayChapter, m{"chapter": 23})
		assert.Equal(t, "⏭️ Already at the last chapter (23)", f.report(t, ToolControlPlayback, m{"action": "next_chapter"}))
		assert.Equal(t, 23, f.session.Snapshot().Playback.Chapter)

		assert.Equal(t, `⏮️ Previous chapter: Chapter 22 of "1984"`, f.report(t, ToolControlPlayback, m{"action": "previous_chapter"}))
	})

	t.Run("speed", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})

		assert.Equal(t, "⚡ Playback speed set to 1.5x", f.report(t, ToolControlPlayback, m{"action": "speed", "value": 1.5}))
		assert.Equal(t, "⚡ Current speed: 1.5x (use value 0.5-3.0 to change)", f.report(t, ToolControlPlayback, m{"action": "speed", "value": 5}))
		assert.Equal(t, "⚡ Current speed: 1.5x (use value 0.5-3.0 to change)", f.report(t, ToolControlPlayback, m{"action": "speed"}))
		assert.Equal(t, 1.5, f.session.Snapshot().Playback.Speed)
	})

	t.Run("seek", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})

		assert.Equal(t,
			"⏰ Use seek action with value parameter to seek to specific time in seconds",
			f.report(t, ToolControlPlayback, m{"action": "seek"}))

		// Positions are not bounded by the chapter length.
		assert.Equal(t, "⏰ Seeked to 1000:00", f.report(t, ToolControlPlayback, m{"action": "seek", "value": 60000}))
		assert.Equal(t, 60000.0, f.session.Snapshot().Playback.Position)
	})
}

func TestSearchAudiobooks(t *testing.T) {
	t.Run("genre with limit", func(t *testing.T) {
		f := newFixture(t, Options{})

		want := "🔍 Search results for \"science fiction\" (genre):\n\n" +
			"1. 📚 Dune\n" +
			"   👤 Author: Frank Herbert\n" +
			"   🎭 Narrator: Scott Brick\n" +
			"   📖 Genre: Science Fiction\n\n"
		assert.Equal(t, want, f.report(t, ToolSearchAudiobooks, m{"query": "science fiction", "type": "genre", "limit": 1}))
	})

	t.Run("defaults to all fields", func(t *testing.T) {
		f := newFixture(t, Options{})

		text := f.report(t, ToolSearchAudiobooks, m{"query": "fiction"})
		assert.Contains(t, text, `🔍 Search results for "fiction" (all):`)
		assert.Contains(t, text, "1. 📚 1984\n")
		assert.Contains(t, text, "5. 📚 The Martian\n")
	})

	t.Run("no results", func(t *testing.T) {
		f := newFixture(t, Options{})

		assert.Equal(t,
			`🔍 No audiobooks found for "Orwell" in title search.`,
			f.report(t, ToolSearchAudiobooks, m{"query": "Orwell", "type": "title"}))
	})

	t.Run("does not change the session", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolSearchAudiobooks, m{"query": "dune"})
		assert.False(t, f.session.Snapshot().Playback.Loaded())
	})
}

func TestGetCurrentBook(t *testing.T) {
	f := newFixture(t, Options{})
	assert.Equal(t, textNoBookPlaying, f.report(t, ToolGetCurrentBook, nil))

	f.report(t, ToolPlayAudiobook, m{"query": "1984"})
	f.report(t, ToolControlPlayback, m{"action": "pause"})
	f.report(t, ToolControlPlayback, m{"action": "seek", "value": 65})

	want := "📚 Currently Playing:\n" +
		"📖 Title: \"1984\"\n" +
		"👤 Author: George Orwell\n" +
		"🎭 Narrator: Simon Prebble\n" +
		"📖 Genre: Dystopian Fiction\n" +
		"📅 Year: 1949\n" +
		"📄 Total Chapters: 23\n\n" +
		"🎧 Current Status:\n" +
		"📄 Chapter: 1/23\n" +
		"▶️ Playing: NO\n" +
		"⚡ Speed: 1x\n" +
		"📍 Position: 1:05\n" +
		"📊 Progress: 0% completed\n" +
		"⏱️ Total Duration: 11h 30m\n" +
		"✅ Completed: 0h 0m"
	assert.Equal(t, want, f.report(t, ToolGetCurrentBook, m{}))
}

func TestBookmarks(t *testing.T) {
	t.Run("requires a book", func(t *testing.T) {
		f := newFixture(t, Options{})

		assert.Equal(t, textNoBookLoaded, f.report(t, ToolAddBookmark, m{"name": "x"}))
		assert.Equal(t, textNoTargetBook, f.report(t, ToolListBookmarks, m{}))
	})

	t.Run("add and list in order", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})
		f.report(t, ToolControlPlayback, m{"action": "seek", "value": 90})

		want := "🔖 Bookmark added: \"Big Brother\"\n" +
			"📚 Book: 1984\n" +
			"📄 Chapter: 1\n" +
			"⏰ Position: 1:30\n" +
			"📅 Date: 3/5/2026"
		assert.Equal(t, want, f.report(t, ToolAddBookmark, m{"name": "Big Brother"}))

		f.clock.Advance(48 * time.Hour)
		f.report(t, ToolAddBookmark, m{"name": "Room 101", "position": 5, "chapter": 20})

		want = "🔖 Bookmarks for \"1984\":\n\n" +
			"1. 📌 Big Brother\n" +
			"   📄 Chapter: 1\n" +
			"   ⏰ Position: 1:30\n" +
			"   📅 Date: 3/5/2026\n\n" +
			"2. 📌 Room 101\n" +
			"   📄 Chapter: 20\n" +
			"   ⏰ Position: 0:05\n" +
			"   📅 Date: 3/7/2026\n\n"
		assert.Equal(t, want, f.report(t, ToolListBookmarks, m{}))
		assert.Equal(t, want, f.report(t, ToolListBookmarks, m{"book_title": "1984"}))
	})

	t.Run("other book without bookmarks", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})
		f.report(t, ToolAddBookmark, m{"name": "start"})

		assert.Equal(t,
			`🔖 No bookmarks found for "Dune". Use "add_bookmark" to create bookmarks.`,
			f.report(t, ToolListBookmarks, m{"book_title": "dune"}))
		assert.Equal(t,
			`🔖 No bookmarks found for "Ulysses". Use "add_bookmark" to create bookmarks.`,
			f.report(t, ToolListBookmarks, m{"book_title": "Ulysses"}))
	})
}

func TestSetReadingSpeed(t *testing.T) {
	t.Run("without a book", func(t *testing.T) {
		f := newFixture(t, Options{})

		assert.Equal(t, "⚡ Reading speed set to 2x\n", f.report(t, ToolSetReadingSpeed, m{"speed": 2}))
	})

	t.Run("with a book", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})

		assert.Equal(t,
			"⚡ Reading speed set to 0.5x\n📚 Book: 1984\n📄 Chapter: 1",
			f.report(t, ToolSetReadingSpeed, m{"speed": 0.5}))
	})

	t.Run("rejects out of range", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolSetReadingSpeed, m{"speed": 1.25})

		for _, v := range []float64{0, 0.49, 3.01, 10} {
			assert.Equal(t,
				"⚡ Speed must be between 0.5x and 3.0x. Current speed: 1.25x",
				f.report(t, ToolSetReadingSpeed, m{"speed": v}))
		}
		assert.Equal(t, 1.25, f.session.Snapshot().Playback.Speed)
	})
}

func TestGetReadingProgress(t *testing.T) {
	t.Run("no target", func(t *testing.T) {
		f := newFixture(t, Options{})

		assert.Equal(t, textNoTargetBook, f.report(t, ToolGetReadingProgress, m{}))
	})

	t.Run("never loaded", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})

		assert.Equal(t,
			`📊 No reading progress found for "Dune". Start reading to track progress.`,
			f.report(t, ToolGetReadingProgress, m{"book_title": "Dune"}))
		assert.Equal(t,
			`📊 No reading progress found for "Ulysses". Start reading to track progress.`,
			f.report(t, ToolGetReadingProgress, m{"book_title": "Ulysses"}))
	})

	t.Run("same day", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})

		want := "📊 Reading Progress for \"1984\":\n\n" +
			"📈 Overall Progress: 0%\n" +
			"⏱️ Total Duration: 11h 30m\n" +
			"✅ Completed: 0h 0m\n" +
			"⏳ Remaining: 11h 30m\n" +
			"📄 Chapters Completed: 0\n" +
			"📅 Started: 3/5/2026\n" +
			"📆 Days Reading: 0 days\n"
		assert.Equal(t, want, f.report(t, ToolGetReadingProgress, m{}))
	})

	t.Run("after a day and a half", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})
		f.clock.Advance(36 * time.Hour)

		text := f.report(t, ToolGetReadingProgress, m{"book_title": "1984"})
		assert.Contains(t, text, "📆 Days Reading: 2 days\n")
		assert.Contains(t, text, "📊 Average per Day: 0 minutes")
	})

	t.Run("progress stays static during playback", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})
		f.report(t, ToolPlayChapter, m{"chapter": 10})
		f.report(t, ToolControlPlayback, m{"action": "seek", "value": 600})

		text := f.report(t, ToolGetReadingProgress, m{})
		assert.Contains(t, text, "📈 Overall Progress: 0%\n")
		assert.Contains(t, text, "📄 Chapters Completed: 0\n")
	})

	t.Run("survives switching books", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})
		f.clock.Advance(time.Hour)
		f.report(t, ToolPlayAudiobook, m{"query": "Dune"})
		f.clock.Advance(time.Hour)
		f.report(t, ToolPlayAudiobook, m{"query": "1984"})

		text := f.report(t, ToolGetReadingProgress, m{})
		assert.Contains(t, text, "📅 Started: 3/5/2026\n")
		assert.Contains(t, text, "📆 Days Reading: 1 days\n")
	})
}

func TestCreateReadingList(t *testing.T) {
	f := newFixture(t, Options{})

	want := "📚 Reading List Created: \"Summer\"\n" +
		"📋 2 books added:\n\n" +
		"1. 📖 Dune\n" +
		"2. 📖 1984\n" +
		"\n💡 Use \"play_audiobook\" to start reading any book from this list."
	assert.Equal(t, want, f.report(t, ToolCreateReadingList, m{"name": "Summer", "books": []string{"Dune", "1984"}}))

	text := f.report(t, ToolCreateReadingList, m{"name": "Summer", "books": []string{"Sapiens"}})
	assert.Contains(t, text, "📋 1 books added:\n\n1. 📖 Sapiens\n")

	list, ok := f.session.ReadingList("Summer")
	require.True(t, ok)
	assert.Equal(t, []string{"Sapiens"}, list.Books)

	assert.Contains(t, f.report(t, ToolCreateReadingList, m{"name": "Empty", "books": []string{}}), "📋 0 books added:")
}
