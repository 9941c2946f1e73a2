package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/cssmachine"
	"github.com/aretw0/cssmachine/internal/presentation/graph"
	"github.com/aretw0/cssmachine/internal/presentation/table"
	"github.com/aretw0/cssmachine/pkg/adapters/file"
	"github.com/aretw0/cssmachine/pkg/adapters/memory"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/aretw0/cssmachine/pkg/export"
	"github.com/aretw0/cssmachine/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	libraryURI         = "cssmachine://library"
	libraryTemplateURI = "cssmachine://library/{id}"
)

// MachineArgs selects a machine either inline or from the library.
type MachineArgs struct {
	Machine   map[string]any `json:"machine,omitempty"`
	MachineID string         `json:"machine_id,omitempty"`
}

// CompileArgs are the arguments of compile_machine.
type CompileArgs struct {
	MachineArgs
	DataURL bool `json:"data_url,omitempty"`
}

// CompileResponse is the structured result of compile_machine.
type CompileResponse struct {
	Name    string `json:"name" jsonschema_description:"The machine name"`
	HTML    string `json:"html" jsonschema_description:"The standalone HTML document"`
	Bytes   int    `json:"bytes" jsonschema_description:"Size of the document in bytes"`
	DataURL string `json:"data_url,omitempty" jsonschema_description:"The document as a data: URL, when requested"`
}

// Server wraps the compiler and exposes it as an MCP Server.
type Server struct {
	compiler  ports.Compiler
	library   ports.MachineLibrary
	limits    domain.Limits
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLibrary exposes a machine library as a resource and as machine_id arguments.
func WithLibrary(lib ports.MachineLibrary) Option {
	return func(s *Server) {
		s.library = lib
	}
}

// WithLimits bounds the inline machines the tools accept.
// The default is domain.DefaultLimits; a zero Limits removes the bounds.
func WithLimits(limits domain.Limits) Option {
	return func(s *Server) {
		s.limits = limits
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(compiler ports.Compiler, opts ...Option) *Server {
	s := &Server{
		compiler:  compiler,
		limits:    domain.DefaultLimits(),
		mcpServer: server.NewMCPServer("cssmachine-mcp", strings.TrimSpace(cssmachine.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.library == nil {
		s.library = memory.NewLibrary(nil)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. to mount it on another transport.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
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

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func machineOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithObject("machine", mcp.Description(
			`Inline machine: {"name", "tape_length", "states": [{"name", "zero": {"write", "move", "next"}, "one": {...}}]}. `+
				`Moves are L or R; unknown next states mean HALT.`)),
		mcp.WithString("machine_id", mcp.Description("ID of a library machine, used when machine is omitted")),
	}
}

func (s *Server) registerTools() {
	// TOOL: compile_machine
	compileTool := mcp.NewTool("compile_machine", append(machineOptions(),
		mcp.WithDescription("Compile a Turing machine into a standalone HTML page that runs it with CSS only."),
		mcp.WithBoolean("data_url", mcp.Description("Also return the page as a data: URL")),
		mcp.WithOutputSchema[CompileResponse](),
	)...)
	s.mcpServer.AddTool(compileTool, mcp.NewStructuredToolHandler(s.handleCompile))

	// TOOL: state_table
	s.mcpServer.AddTool(mcp.NewTool("state_table", append(machineOptions(),
		mcp.WithDescription("Render the transition table of a machine as Markdown."),
	)...), mcp.NewTypedToolHandler(s.handleStateTable))

	// TOOL: mermaid_graph
	s.mcpServer.AddTool(mcp.NewTool("mermaid_graph", append(machineOptions(),
		mcp.WithDescription("Render the state diagram of a machine as a Mermaid flowchart."),
	)...), mcp.NewTypedToolHandler(s.handleMermaid))
}

func (s *Server) resolve(ctx context.Context, args MachineArgs) (domain.MachineConfig, error) {
	if args.Machine != nil {
		cfg, err := file.Decode(args.Machine)
		if err != nil {
			return domain.MachineConfig{}, err
		}
		if err := s.limits.Check(cfg); err != nil {
			s.logger.Warn("MCP machine rejected", "machine", cfg.Name, "err", err)
			return domain.MachineConfig{}, err
		}
		return cfg, nil
	}
	if args.MachineID == "" {
		return domain.MachineConfig{}, errors.New("either machine or machine_id is required")
	}
	return s.library.Get(ctx, args.MachineID)
}

func (s *Server) handleCompile(ctx context.Context, request mcp.CallToolRequest, args CompileArgs) (CompileResponse, error) {
	cfg, err := s.resolve(ctx, args.MachineArgs)
	if err != nil {
		return CompileResponse{}, err
	}
	html, err := s.compiler.Compile(ctx, cfg)
	if err != nil {
		s.logger.Warn("MCP compile rejected", "machine", cfg.Name, "err", err)
		return CompileResponse{}, fmt.Errorf("compile failed: %w", err)
	}

	resp := CompileResponse{Name: cfg.Name, HTML: html, Bytes: len(html)}
	if args.DataURL {
		resp.DataURL = export.DataURL(html)
	}
	return resp, nil
}

func (s *Server) handleStateTable(ctx context.Context, request mcp.CallToolRequest, args MachineArgs) (*mcp.CallToolResult, error) {
	cfg, err := s.resolve(ctx, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(table.Markdown(cfg)), nil
}

func (s *Server) handleMermaid(ctx context.Context, request mcp.CallToolRequest, args MachineArgs) (*mcp.CallToolResult, error) {
	cfg, err := s.resolve(ctx, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(cfg)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: cssmachine://library
	s.mcpServer.AddResource(mcp.NewResource(libraryURI, "Machine Library",
		mcp.WithResourceDescription("Summaries of the machines available by machine_id"),
		mcp.WithMIMEType("application/json"),
	), s.readLibrary)

	// EXPOSE: cssmachine://library/{id}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(libraryTemplateURI, "Library Machine",
		mcp.WithTemplateDescription("The definition of one library machine"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.readMachine)
}

func (s *Server) readLibrary(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	list, err := s.library.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list library: %w", err)
	}
	return jsonContents(libraryURI, list)
}

func (s *Server) readMachine(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	id := strings.TrimPrefix(uri, libraryURI+"/")
	cfg, err := s.library.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return jsonContents(uri, cfg)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
