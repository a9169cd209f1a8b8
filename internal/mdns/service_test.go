package mdns

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, "_audiobook-mcp._tcp", ServiceType)
	assert.Equal(t, "local", Domain)
	assert.Equal(t, "/mcp", MCPPath)
}

func TestTXTRecords(t *testing.T) {
	t.Run("with name", func(t *testing.T) {
		records := TXTRecords(Info{Name: "Living Room", Version: "1.2.0", Tools: 10})

		assert.Equal(t, [][]byte{
			[]byte("path=/mcp"),
			[]byte("version=1.2.0"),
			[]byte("tools=10"),
			[]byte("name=Living Room"),
		}, records)
	})

	t.Run("without name", func(t *testing.T) {
		records := TXTRecords(Info{Version: "dev"})

		require.Len(t, records, 3)
		assert.Equal(t, "path=/mcp", string(records[0]))
	})
}

func TestNewService(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	service := NewService(logger)

	require.NotNil(t, service)
	assert.Nil(t, service.server, "server should be nil before Start")
}

func TestServiceStop(t *testing.T) {
	t.Run("stop when not started is safe", func(t *testing.T) {
		var buf bytes.Buffer
		service := NewService(slog.New(slog.NewTextHandler(&buf, nil)))

		service.Stop()

		assert.Nil(t, service.server)
		assert.NotContains(t, buf.String(), "mDNS advertisement stopped")
	})

	t.Run("stop can be called multiple times", func(t *testing.T) {
		service := NewService(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

		service.Stop()
		service.Stop()
		service.Stop()
	})
}

func TestServiceLifecycle(t *testing.T) {
	// Requires a system bus and a running Avahi daemon.
	var buf bytes.Buffer
	service := NewService(slog.New(slog.NewTextHandler(&buf, nil)))

	err := service.Start(Info{Name: "audiobook-mcp-test", Version: "test", Tools: 10}, 8765)
	if err != nil {
		t.Skipf("mDNS not available: %v", err)
	}
	assert.NotNil(t, service.server)
	assert.Contains(t, buf.String(), "mDNS advertisement started")

	service.Stop()
	assert.Nil(t, service.server)
	assert.Contains(t, buf.String(), "mDNS advertisement stopped")
}
