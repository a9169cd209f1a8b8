// Package mcp exposes the tool dispatcher as a Model Context Protocol server
// over stdio and streamable HTTP.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/listenupapp/audiobook-mcp/internal/tools"
)

// Server identity reported during initialize.
const (
	ServerName    = "audiobook-mcp"
	ServerVersion = "1.0.0"
)

// Server wraps an MCP protocol server whose tools are served by a Dispatcher.
type Server struct {
	mcp        *server.MCPServer
	dispatcher *tools.Dispatcher
	logger     *slog.Logger
}

// NewServer registers every dispatcher tool with a new MCP server.
func NewServer(d *tools.Dispatcher, version string, logger *slog.Logger) *Server {
	if version == "" {
		version = ServerVersion
	}

	s := &Server{
		mcp: server.NewMCPServer(
			ServerName,
			version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
		dispatcher: d,
		logger:     logger,
	}

	for _, desc := range d.Tools() {
		s.mcp.AddTool(
			mcp.NewToolWithRawSchema(desc.Name, desc.Description, desc.InputSchema),
			s.handle(desc.Name),
		)
	}
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) handle(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError("Error: invalid arguments: " + err.Error()), nil
		}
		return toCallToolResult(s.dispatcher.CallTool(ctx, name, raw)), nil
	}
}

// toCallToolResult converts a dispatcher envelope to the protocol type.
func toCallToolResult(res tools.Result) *mcp.CallToolResult {
	out := &mcp.CallToolResult{IsError: res.IsError}
	for _, c := range res.Content {
		out.Content = append(out.Content, mcp.NewTextContent(c.Text))
	}
	return out
}

// HandleMessage processes one JSON-RPC message. Calls naming a tool outside
// the table are answered by the dispatcher with an error result; everything
// else goes to the protocol server. Notifications return nil.
func (s *Server) HandleMessage(ctx context.Context, msg json.RawMessage) mcp.JSONRPCMessage {
	if resp, ok := s.unknownToolCall(ctx, msg); ok {
		return resp
	}
	return s.mcp.HandleMessage(ctx, msg)
}

// toolCallRequest is the subset of a tools/call request needed to route it.
type toolCallRequest struct {
	ID     mcp.RequestId `json:"id"`
	Method string        `json:"method"`
	Params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	} `json:"params"`
}

func (s *Server) unknownToolCall(ctx context.Context, msg []byte) (mcp.JSONRPCMessage, bool) {
	var req toolCallRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return nil, false
	}
	if req.Method != string(mcp.MethodToolsCall) || req.ID.IsNil() || s.dispatcher.Has(req.Params.Name) {
		return nil, false
	}
	res := s.dispatcher.CallTool(ctx, req.Params.Name, req.Params.Arguments)
	return mcp.NewJSONRPCResultResponse(req.ID, toCallToolResult(res)), true
}

type inputLine struct {
	data []byte
	err  error
}

// ServeStdio serves newline-delimited JSON-RPC on in and out until ctx is
// canceled or in is closed. Messages are handled one at a time in arrival
// order. Protocol errors are logged, never written to out.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan inputLine)
	go func() {
		reader := bufio.NewReader(in)
		for {
			data, err := reader.ReadBytes('\n')
			select {
			case lines <- inputLine{data: data, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	s.logger.Info("serving MCP over stdio", "tools", len(s.dispatcher.Tools()))
	for {
		select {
		case <-ctx.Done():
			return nil
		case line := <-lines:
			if msg := bytes.TrimSpace(line.data); len(msg) > 0 {
				if err := s.writeMessage(out, s.HandleMessage(ctx, msg)); err != nil {
					s.logger.Error("writing response failed", "error", err)
					return fmt.Errorf("write response: %w", err)
				}
			}
			if line.err != nil {
				if errors.Is(line.err, io.EOF) {
					return nil
				}
				s.logger.Error("reading input failed", "error", line.err)
				return fmt.Errorf("read input: %w", line.err)
			}
		}
	}
}

func (s *Server) writeMessage(out io.Writer, resp mcp.JSONRPCMessage) error {
	if resp == nil {
		return nil
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = out.Write(append(data, '\n'))
	return err
}

// maxRequestBody bounds the size of one HTTP JSON-RPC request.
const maxRequestBody = 4 << 20

// HTTPHandler returns the streamable HTTP transport for mounting at /mcp.
// Calls naming a tool outside the table are answered directly.
func (s *Server) HTTPHandler() http.Handler {
	streamable := server.NewStreamableHTTPServer(s.mcp)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			streamable.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		_ = r.Body.Close()

		if resp, ok := s.unknownToolCall(r.Context(), body); ok {
			w.Header().Set("Content-Type", "application/json")
			if err := s.writeMessage(w, resp); err != nil {
				s.logger.Error("writing response failed", "error", err)
			}
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		streamable.ServeHTTP(w, r)
	})
}
