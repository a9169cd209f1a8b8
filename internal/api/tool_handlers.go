package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/audiobook-mcp/internal/tools"
)

func (s *Server) registerToolRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTools",
		Method:      http.MethodGet,
		Path:        "/api/v1/tools",
		Summary:     "List tools",
		Description: "Returns every tool with its input schema, in published order",
		Tags:        []string{"Tools"},
	}, s.handleListTools)

	huma.Register(s.api, huma.Operation{
		OperationID: "callTool",
		Method:      http.MethodPost,
		Path:        "/api/v1/tools/{name}",
		Summary:     "Call tool",
		Description: "Runs a tool against the shared session. Tool faults are returned in the envelope with isError set, never as HTTP errors.",
		Tags:        []string{"Tools"},
	}, s.handleCallTool)
}

// ListToolsOutput contains the tool descriptors.
type ListToolsOutput struct {
	Body []tools.Descriptor
}

func (s *Server) handleListTools(_ context.Context, _ *struct{}) (*ListToolsOutput, error) {
	return &ListToolsOutput{Body: s.dispatcher.Tools()}, nil
}

// CallToolInput contains the tool name and its raw JSON arguments.
type CallToolInput struct {
	Name    string `path:"name" doc:"Tool name"`
	RawBody []byte
}

// CallToolOutput contains the tool result envelope.
type CallToolOutput struct {
	Body tools.Result
}

func (s *Server) handleCallTool(ctx context.Context, input *CallToolInput) (*CallToolOutput, error) {
	res := s.dispatcher.CallTool(ctx, input.Name, input.RawBody)
	if res.IsError {
		s.logger.Debug("tool call faulted", "tool", input.Name)
	}
	return &CallToolOutput{Body: res}, nil
}
