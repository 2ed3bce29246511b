package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const programsURI = "turing://programs"

// RunResponse is the structured result of run_program.
type RunResponse struct {
	Program  string             `json:"program" jsonschema_description:"Name of the program that ran"`
	Halted   bool               `json:"halted" jsonschema_description:"Whether the machine reached Halt"`
	Steps    int                `json:"steps" jsonschema_description:"Number of executed steps"`
	State    domain.State       `json:"state" jsonschema_description:"Final control state"`
	Position int                `json:"position" jsonschema_description:"Final head position"`
	Tape     string             `json:"tape" jsonschema_description:"Final tape, one glyph per cell (_ is Blank)"`
	Trace    []domain.StepEvent `json:"trace,omitempty" jsonschema_description:"Every step, when trace was requested"`
	Error    string             `json:"error,omitempty" jsonschema_description:"Why the run stopped before halting"`
}

// Engine defines what the MCP server needs from the turing engine.
type Engine interface {
	Store() ports.ProgramStore
	Run(ctx context.Context, p *domain.Program, opts ...runner.Option) (runner.Result, error)
	MaxSteps() int
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("turing-mcp", turing.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
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

		s.logger.Info("shutting down MCP server")
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	runTool := mcp.NewTool("run_program",
		mcp.WithDescription("Run a Turing machine program until it halts or the step limit is reached. Pass either the name of a stored program or an inline program document."),
		mcp.WithString("name", mcp.Description("Name of a stored program")),
		mcp.WithString("program", mcp.Description("Inline program: JSON, YAML, or rule lines like A,0,1,R,B")),
		mcp.WithNumber("max_steps", mcp.Description("Step limit for this run (optional, capped by the server limit)")),
		mcp.WithBoolean("trace", mcp.Description("Include every step in the result")),
		mcp.WithOutputSchema[RunResponse](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRunProgram))

	s.mcpServer.AddTool(mcp.NewTool("list_programs",
		mcp.WithDescription("List the names of stored programs."),
	), s.handleListPrograms)

	s.mcpServer.AddTool(mcp.NewTool("describe_program",
		mcp.WithDescription("Describe a stored program as Markdown: initial configuration, rule table and validation notes."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of a stored program")),
	), s.handleDescribeProgram)

	s.mcpServer.AddTool(mcp.NewTool("graph_program",
		mcp.WithDescription("Render a stored program's state diagram as Mermaid source."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of a stored program")),
	), s.handleGraphProgram)
}

func (s *Server) handleRunProgram(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunResponse, error) {
	p, err := s.resolveProgram(ctx, args)
	if err != nil {
		return RunResponse{}, err
	}

	limit, err := s.stepLimit(args)
	if err != nil {
		return RunResponse{}, err
	}
	var opts []runner.Option
	if limit > 0 {
		opts = append(opts, runner.WithMaxSteps(limit))
	}
	var rec *runner.Recorder
	if trace, _ := args["trace"].(bool); trace {
		rec = &runner.Recorder{}
		opts = append(opts, runner.WithHandler(rec))
	}

	res, err := s.engine.Run(ctx, p, opts...)
	if err != nil && res.Snapshot.Tape == nil {
		return RunResponse{}, fmt.Errorf("run failed: %w", err)
	}

	resp := RunResponse{
		Program:  p.Name,
		Halted:   res.Halted,
		Steps:    res.Steps,
		State:    res.Snapshot.State,
		Position: res.Snapshot.Position,
		Tape:     domain.FormatTape(res.Snapshot.Tape),
	}
	if rec != nil {
		resp.Trace = rec.Events()
	}
	if err != nil {
		resp.Error = err.Error()
		s.logger.Warn("MCP run stopped", "program", p.Name, "steps", res.Steps, "error", err)
	}
	return resp, nil
}

// stepLimit reads max_steps, clamped to the engine bound.
func (s *Server) stepLimit(args map[string]interface{}) (int, error) {
	limit := s.engine.MaxSteps()
	raw, ok := args["max_steps"]
	if !ok || raw == nil {
		return limit, nil
	}
	n, ok := raw.(float64)
	if !ok || n != math.Trunc(n) || n <= 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("max_steps must be a positive integer, got %v", raw)
	}
	if limit == 0 || int(n) < limit {
		limit = int(n)
	}
	return limit, nil
}

// resolveProgram picks the inline program when given, otherwise the stored one.
func (s *Server) resolveProgram(ctx context.Context, args map[string]interface{}) (*domain.Program, error) {
	name, _ := args["name"].(string)
	doc, _ := args["program"].(string)

	if strings.TrimSpace(doc) != "" {
		if name == "" {
			name = "inline"
		}
		p, err := loader.ReadProgram(strings.NewReader(doc), sniffFormat(doc), name)
		if err != nil {
			return nil, fmt.Errorf("invalid program: %w", err)
		}
		return p, nil
	}
	if name == "" {
		return nil, errors.New("either name or program is required")
	}

	p, err := s.engine.Store().Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load program %q: %w", name, err)
	}
	return p, nil
}

// sniffFormat guesses the encoding of an inline program.
func sniffFormat(doc string) loader.Format {
	trimmed := strings.TrimSpace(doc)
	switch {
	case strings.HasPrefix(trimmed, "{"):
		return loader.FormatJSON
	case strings.Contains(trimmed, ":"):
		return loader.FormatYAML
	default:
		return loader.FormatText
	}
}

func (s *Server) handleListPrograms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.engine.Store().List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(names)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleDescribeProgram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	p, err := s.engine.Store().Load(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load program %q: %v", name, err)), nil
	}

	report := validator.Validate(p)
	notes := make([]string, len(report.Issues))
	for i, issue := range report.Issues {
		notes[i] = issue.String()
	}
	return mcp.NewToolResultText(graph.Describe(p, notes...)), nil
}

func (s *Server) handleGraphProgram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	p, err := s.engine.Store().Load(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load program %q: %v", name, err)), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(p.Rules, graph.Options{Initial: p.InitialState})), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(programsURI, "Stored Programs",
		mcp.WithResourceDescription("Names of the programs in the store"),
		mcp.WithMIMEType("application/json"),
	), s.readPrograms)
}

func (s *Server) readPrograms(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := s.engine.Store().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	jsonBytes, _ := json.Marshal(names)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      programsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
