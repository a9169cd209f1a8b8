package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/audiobook-mcp/internal/domain"
	"github.com/listenupapp/audiobook-mcp/internal/session"
)

func (s *Server) registerSessionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/api/v1/session",
		Summary:     "Get session",
		Description: "Returns the playback state and the current book's progress",
		Tags:        []string{"Session"},
	}, s.handleGetSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReadingLists",
		Method:      http.MethodGet,
		Path:        "/api/v1/session/reading-lists",
		Summary:     "List reading lists",
		Description: "Returns the session's reading lists ordered by name",
		Tags:        []string{"Session"},
	}, s.handleListReadingLists)
}

// SessionResponse is the session snapshot with its derived status.
type SessionResponse struct {
	Status string `json:"status" doc:"unloaded, playing or paused"`
	session.Snapshot
}

// SessionOutput wraps the session response for Huma.
type SessionOutput struct {
	Body SessionResponse
}

func (s *Server) handleGetSession(_ context.Context, _ *struct{}) (*SessionOutput, error) {
	snap := s.session.Snapshot()
	return &SessionOutput{
		Body: SessionResponse{
			Status:   string(snap.Playback.Status()),
			Snapshot: snap,
		},
	}, nil
}

// ReadingListsOutput contains the session's reading lists.
type ReadingListsOutput struct {
	Body []domain.ReadingList
}

func (s *Server) handleListReadingLists(_ context.Context, _ *struct{}) (*ReadingListsOutput, error) {
	return &ReadingListsOutput{Body: s.session.ReadingLists()}, nil
}
