package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/listenupapp/audiobook-mcp/internal/catalog"
	"github.com/listenupapp/audiobook-mcp/internal/search"
	"github.com/listenupapp/audiobook-mcp/internal/session"
	"github.com/listenupapp/audiobook-mcp/internal/validation"
)

// startTime is the fixed session clock start: 3/5/2026.
var startTime = time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)

// testClock is a settable clock for the session under test.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	dispatcher *Dispatcher
	session    *session.Session
	clock      *testClock
}

// newFixture builds a dispatcher over the reference catalog.
func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	lib, err := catalog.NewLibrary(catalog.Reference(), search.NewMemoryIndex(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })

	clock := &testClock{now: startTime}
	sess := session.New(lib, logger, session.WithClock(clock.Now))

	d, err := New(sess, lib, validation.New(), logger, opts)
	require.NoError(t, err)

	return &fixture{dispatcher: d, session: sess, clock: clock}
}

// call runs a tool with args marshaled to JSON.
func (f *fixture) call(t *testing.T, name string, args any) Result {
	t.Helper()

	raw, err := json.Marshal(args)
	require.NoError(t, err)
	return f.dispatcher.CallTool(context.Background(), name, raw)
}

// report runs a tool and requires a non-error result.
func (f *fixture) report(t *testing.T, name string, args any) string {
	t.Helper()

	res := f.call(t, name, args)
	require.False(t, res.IsError, "unexpected fault: %s", res.Text())
	return res.Text()
}

type m = map[string]any
