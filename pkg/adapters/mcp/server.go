package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/substrate"
	"github.com/aretw0/substrate/internal/logging"
	"github.com/aretw0/substrate/pkg/domain"
	"github.com/aretw0/substrate/pkg/session"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	sessionsURI        = "substrate://sessions"
	sessionTemplateURI = "substrate://sessions/{id}"
)

// SubstrateResponse is returned by every tool that touches a session.
type SubstrateResponse struct {
	SessionID string          `json:"session_id" jsonschema_description:"The session the snapshot belongs to"`
	Snapshot  domain.Snapshot `json:"snapshot" jsonschema_description:"Inputs, outputs, derived hidden nodes, connections and interaction mode"`
}

// Server exposes a session manager as an MCP Server.
type Server struct {
	sessions  *session.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		mcpServer: server.NewMCPServer("substrate-mcp", strings.TrimSpace(substrate.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: cors.AllowAll().Handler(mux),
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

type createSessionArgs struct {
	SessionID string `json:"session_id"`
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

type clickArgs struct {
	SessionID string `json:"session_id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

type armArgs struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
}

func (s *Server) registerTools() {
	// TOOL: create_session
	s.mcpServer.AddTool(mcp.NewTool("create_session",
		mcp.WithDescription("Create an empty substrate editing session. Returns its ID and snapshot."),
		mcp.WithString("session_id", mcp.Description("Optional session ID; a UUID is generated when omitted")),
		mcp.WithOutputSchema[SubstrateResponse](),
	), mcp.NewStructuredToolHandler(s.handleCreateSession))

	// TOOL: click
	s.mcpServer.AddTool(mcp.NewTool("click",
		mcp.WithDescription("Click grid cell (x, y). When placement is armed the cell's node is toggled; otherwise two clicks toggle a connection between the cells."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("Column, in [-half, half]")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Row, in [-half, half]")),
		mcp.WithOutputSchema[SubstrateResponse](),
	), mcp.NewStructuredToolHandler(s.handleClick))

	// TOOL: arm_placement
	s.mcpServer.AddTool(mcp.NewTool("arm_placement",
		mcp.WithDescription("Arm placement of an input or output node for the next click."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("role", mcp.Required(), mcp.Enum("input", "output"), mcp.Description("Node role")),
		mcp.WithOutputSchema[SubstrateResponse](),
	), mcp.NewStructuredToolHandler(s.handleArm))

	// TOOL: get_substrate
	s.mcpServer.AddTool(mcp.NewTool("get_substrate",
		mcp.WithDescription("Get the current snapshot of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[SubstrateResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetSubstrate))

	// TOOL: delete_session
	s.mcpServer.AddTool(mcp.NewTool("delete_session",
		mcp.WithDescription("Delete a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := request.GetString("session_id", "")
		if err := s.sessions.Delete(ctx, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
		}
		return mcp.NewToolResultText("deleted " + id), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest, args createSessionArgs) (SubstrateResponse, error) {
	id, err := s.sessions.Start(ctx, args.SessionID)
	if err != nil {
		return SubstrateResponse{}, fmt.Errorf("create failed: %w", err)
	}
	return s.respond(ctx, id)
}

func (s *Server) handleClick(ctx context.Context, request mcp.CallToolRequest, args clickArgs) (SubstrateResponse, error) {
	err := s.sessions.Do(ctx, args.SessionID, func(ctx context.Context, d *substrate.Designer) error {
		return d.OnGridClick(ctx, args.X, args.Y)
	})
	if err != nil {
		s.logger.Warn("MCP Click: rejected", "session_id", args.SessionID, "err", err)
		return SubstrateResponse{}, fmt.Errorf("click failed: %w", err)
	}
	return s.respond(ctx, args.SessionID)
}

func (s *Server) handleArm(ctx context.Context, request mcp.CallToolRequest, args armArgs) (SubstrateResponse, error) {
	role, err := domain.ParseRole(args.Role)
	if err != nil {
		return SubstrateResponse{}, err
	}
	err = s.sessions.Do(ctx, args.SessionID, func(ctx context.Context, d *substrate.Designer) error {
		return d.OnArmPlacement(ctx, role)
	})
	if err != nil {
		return SubstrateResponse{}, fmt.Errorf("arm failed: %w", err)
	}
	return s.respond(ctx, args.SessionID)
}

func (s *Server) handleGetSubstrate(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (SubstrateResponse, error) {
	return s.respond(ctx, args.SessionID)
}

func (s *Server) respond(ctx context.Context, id string) (SubstrateResponse, error) {
	snap, err := s.sessions.View(ctx, id)
	if err != nil {
		return SubstrateResponse{}, err
	}
	return SubstrateResponse{SessionID: id, Snapshot: snap}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: substrate://sessions
	s.mcpServer.AddResource(mcp.NewResource(sessionsURI, "Active Sessions",
		mcp.WithResourceDescription("IDs of all live editing sessions"),
		mcp.WithMIMEType("application/json"),
	), s.readSessions)

	// EXPOSE: substrate://sessions/{id}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(sessionTemplateURI, "Session Snapshot",
		mcp.WithTemplateDescription("Current snapshot of one session"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.readSession)
}

func (s *Server) readSessions(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ids, err := s.sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	jsonBytes, _ := json.Marshal(ids)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      sessionsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) readSession(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	id, ok := strings.CutPrefix(uri, sessionsURI+"/")
	if !ok || id == "" {
		return nil, fmt.Errorf("invalid session resource %q", uri)
	}

	snap, err := s.sessions.View(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, fmt.Errorf("no session %q: %w", id, err)
		}
		return nil, err
	}
	jsonBytes, _ := json.Marshal(snap)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
