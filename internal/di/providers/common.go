package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 10 * time.Second
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version string
}
