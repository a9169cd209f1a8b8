// Package tools routes MCP tool calls to the reading session and renders
// their reports.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/listenupapp/audiobook-mcp/internal/catalog"
	domainerrors "github.com/listenupapp/audiobook-mcp/internal/errors"
	"github.com/listenupapp/audiobook-mcp/internal/session"
	"github.com/listenupapp/audiobook-mcp/internal/validation"
)

// Options configures a Dispatcher.
type Options struct {
	// Strict validates raw arguments against the published JSON schema before
	// decoding. Unknown control actions and out-of-range limits then fault.
	Strict bool
}

// Dispatcher owns the fixed tool table.
//
// Every call returns a Result. Informational outcomes such as "no book
// loaded" are reports; decode failures, validation failures, catalog errors
// and recovered panics are faults.
type Dispatcher struct {
	session   *session.Session
	catalog   catalog.Catalog
	validator *validation.Validator
	logger    *slog.Logger
	opts      Options

	tools  []tool
	byName map[string]int
}

// New builds the dispatcher and compiles every tool schema.
func New(sess *session.Session, cat catalog.Catalog, v *validation.Validator, logger *slog.Logger, opts Options) (*Dispatcher, error) {
	d := &Dispatcher{
		session:   sess,
		catalog:   cat,
		validator: v,
		logger:    logger,
		opts:      opts,
	}

	tools, err := d.buildTools()
	if err != nil {
		return nil, err
	}
	d.tools = tools
	d.byName = make(map[string]int, len(tools))
	for i, t := range tools {
		d.byName[t.name] = i
	}
	return d, nil
}

// Tools describes every tool in published order.
func (d *Dispatcher) Tools() []Descriptor {
	out := make([]Descriptor, len(d.tools))
	for i, t := range d.tools {
		out[i] = Descriptor{
			Name:        t.name,
			Description: t.description,
			InputSchema: t.schema.raw,
		}
	}
	return out
}

// Has reports whether name is a tool in the table.
func (d *Dispatcher) Has(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// CallTool runs the named tool with raw JSON arguments.
// A missing or null argument object is treated as {}.
func (d *Dispatcher) CallTool(ctx context.Context, name string, raw json.RawMessage) (res Result) {
	start := time.Now()

	i, ok := d.byName[name]
	if !ok {
		d.logger.Warn("unknown tool", "tool", name)
		return fault(domainerrors.UnknownTool(name))
	}
	t := d.tools[i]

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("tool panicked", "tool", name, "panic", r)
			res = fault(domainerrors.Internalf("%s failed: %v", name, r))
		}
	}()

	raw = normalizeArgs(raw)
	if d.opts.Strict {
		if err := t.schema.validate(raw); err != nil {
			d.logger.Debug("tool arguments rejected", "tool", name, "error", err)
			return fault(err)
		}
	}

	text, err := t.call(ctx, raw)
	if err != nil {
		d.logger.Warn("tool failed", "tool", name, "error", err, "duration", time.Since(start))
		return fault(err)
	}

	d.logger.Debug("tool called", "tool", name, "duration", time.Since(start))
	return report(text)
}

func normalizeArgs(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("{}")
	}
	return trimmed
}
