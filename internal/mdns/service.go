// Package mdns advertises the MCP HTTP endpoint on the local network through
// the Avahi daemon.
package mdns

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/holoplot/go-avahi"
)

const (
	// ServiceType is the mDNS service type for audiobook MCP servers.
	ServiceType = "_audiobook-mcp._tcp"

	// Domain is the mDNS domain services are published in.
	Domain = "local"

	// MCPPath is the HTTP path of the MCP endpoint, advertised in TXT records.
	MCPPath = "/mcp"
)

// Info describes the advertised server.
type Info struct {
	Name    string
	Version string
	Tools   int
}

// Service manages mDNS advertisement of the server.
// Failures are non-fatal to callers: hosts without a system bus or an Avahi
// daemon simply are not discoverable.
type Service struct {
	mu     sync.Mutex
	conn   *dbus.Conn
	server *avahi.Server
	group  *avahi.EntryGroup
	logger *slog.Logger
}

// NewService creates a new mDNS service.
func NewService(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// TXTRecords builds the TXT records advertised for info.
func TXTRecords(info Info) [][]byte {
	records := []string{
		"path=" + MCPPath,
		"version=" + info.Version,
		fmt.Sprintf("tools=%d", info.Tools),
	}
	if info.Name != "" {
		records = append(records, "name="+info.Name)
	}

	out := make([][]byte, len(records))
	for i, r := range records {
		out[i] = []byte(r)
	}
	return out
}

// Start begins advertising the server via mDNS.
// It should be called after the HTTP listener is bound. A running
// advertisement is replaced.
func (s *Service) Start(info Info, port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	conn, err := dbus.SystemBus()
	if err != nil {
		return fmt.Errorf("connect to system bus: %w", err)
	}

	server, err := avahi.ServerNew(conn)
	if err != nil {
		return fmt.Errorf("connect to avahi: %w", err)
	}

	group, err := server.EntryGroupNew()
	if err != nil {
		server.Close()
		return fmt.Errorf("create entry group: %w", err)
	}

	host, err := server.GetHostNameFqdn()
	if err != nil {
		host, _ = os.Hostname()
	}

	name := info.Name
	if name == "" {
		name = "audiobook-mcp"
	}

	err = group.AddService(
		avahi.InterfaceUnspec,
		avahi.ProtoUnspec,
		0,
		name,
		ServiceType,
		Domain,
		host,
		uint16(port), //nolint:gosec // Port comes from a bound TCP listener.
		TXTRecords(info),
	)
	if err == nil {
		err = group.Commit()
	}
	if err != nil {
		server.EntryGroupFree(group)
		server.Close()
		return fmt.Errorf("publish %s: %w", ServiceType, err)
	}

	s.conn = conn
	s.server = server
	s.group = group

	s.logger.Info("mDNS advertisement started",
		"service", ServiceType,
		"port", port,
		"name", name,
		"host", host,
	)

	return nil
}

// Stop stops mDNS advertising.
// Safe to call multiple times or if not started.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopLocked() {
		s.logger.Info("mDNS advertisement stopped")
	}
}

func (s *Service) stopLocked() bool {
	if s.server == nil {
		return false
	}

	if s.group != nil {
		s.server.EntryGroupFree(s.group)
	}
	s.server.Close()

	s.server = nil
	s.group = nil
	s.conn = nil
	return true
}
