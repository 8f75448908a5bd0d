package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CatalogURI is the resource listing every automaton ID.
const CatalogURI = "automata://catalog"

// ListResponse is the result of list_automata.
type ListResponse struct {
	Automata []string `json:"automata" jsonschema_description:"IDs of the available automata"`
}

// DescribeResponse is the result of describe_automaton.
type DescribeResponse struct {
	ID         string   `json:"id"`
	Initial    string   `json:"initial,omitempty" jsonschema_description:"Initial state, empty when missing"`
	Final      []string `json:"final" jsonschema_description:"Accepting states"`
	States     []string `json:"states"`
	Alphabet   []string `json:"alphabet" jsonschema_description:"Symbols used by transitions; epsilon is written ε"`
	Definition string   `json:"definition,omitempty" jsonschema_description:"The automaton in the line-oriented text syntax"`
}

// DeterminismResponse is the result of is_deterministic.
type DeterminismResponse struct {
	ID            string            `json:"id"`
	Deterministic bool              `json:"deterministic"`
	Conflicts     []domain.Conflict `json:"conflicts" jsonschema_description:"States with several transitions on the same symbol"`
}

// Verdict is one evaluated word.
type Verdict struct {
	Word     string              `json:"word"`
	Accepted bool                `json:"accepted"`
	Reason   domain.RejectReason `json:"reason,omitempty" jsonschema_description:"no_initial, no_transition or not_final"`
}

// AcceptsResponse is the result of accepts.
type AcceptsResponse struct {
	ID       string    `json:"id"`
	Verdicts []Verdict `json:"verdicts"`
}

// IDArgs selects an automaton.
type IDArgs struct {
	ID string `json:"id"`
}

// AcceptsArgs selects an automaton and the words to test.
type AcceptsArgs struct {
	ID    string   `json:"id"`
	Words []string `json:"words"`
}

// Server wraps a catalog of automata and exposes it as an MCP Server.
type Server struct {
	catalog   ports.Catalog
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(catalog ports.Catalog, version string) *Server {
	s := &Server{
		catalog:   catalog,
		mcpServer: server.NewMCPServer("automata-mcp", version),
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
func (s *Server) ServeSSE(ctx context.Context, addr string, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
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

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the IDs of the available automata."),
		mcp.WithOutputSchema[ListResponse](),
	), mcp.NewStructuredToolHandler(s.handleList))

	s.mcpServer.AddTool(mcp.NewTool("describe_automaton",
		mcp.WithDescription("Describe the states, transitions and alphabet of an automaton."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Automaton ID")),
		mcp.WithOutputSchema[DescribeResponse](),
	), mcp.NewStructuredToolHandler(s.handleDescribe))

	s.mcpServer.AddTool(mcp.NewTool("is_deterministic",
		mcp.WithDescription("Check whether an automaton is deterministic. Epsilon counts as a symbol."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Automaton ID")),
		mcp.WithOutputSchema[DeterminismResponse](),
	), mcp.NewStructuredToolHandler(s.handleDeterminism))

	s.mcpServer.AddTool(mcp.NewTool("accepts",
		mcp.WithDescription("Test whether an automaton accepts each word. The empty string is the empty word."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Automaton ID")),
		mcp.WithArray("words", mcp.Required(), mcp.Description("Words to test"), mcp.WithStringItems()),
		mcp.WithOutputSchema[AcceptsResponse](),
	), mcp.NewStructuredToolHandler(s.handleAccepts))
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, _ struct{}) (ListResponse, error) {
	ids, err := s.catalog.List()
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ListResponse{Automata: ids}, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args IDArgs) (DescribeResponse, error) {
	if args.ID == "" {
		return DescribeResponse{}, errors.New("id is required")
	}
	a, err := s.catalog.Automaton(ctx, args.ID)
	if err != nil {
		return DescribeResponse{}, err
	}

	resp := DescribeResponse{
		ID:         args.ID,
		Final:      domain.Names(a.FinalStates()),
		States:     domain.Names(a.States()),
		Alphabet:   []string{},
	}
	if def, err := compiler.Render(a); err == nil {
		resp.Definition = string(def)
	}
	if initial, ok := a.Initial(); ok {
		resp.Initial = initial.Name
	}
	for _, sym := range a.Alphabet() {
		resp.Alphabet = append(resp.Alphabet, sym.String())
	}
	return resp, nil
}

func (s *Server) handleDeterminism(ctx context.Context, request mcp.CallToolRequest, args IDArgs) (DeterminismResponse, error) {
	if args.ID == "" {
		return DeterminismResponse{}, errors.New("id is required")
	}
	ok, conflicts, err := s.catalog.IsDeterministic(ctx, args.ID)
	if err != nil {
		return DeterminismResponse{}, err
	}
	if conflicts == nil {
		conflicts = []domain.Conflict{}
	}
	return DeterminismResponse{ID: args.ID, Deterministic: ok, Conflicts: conflicts}, nil
}

func (s *Server) handleAccepts(ctx context.Context, request mcp.CallToolRequest, args AcceptsArgs) (AcceptsResponse, error) {
	if args.ID == "" {
		return AcceptsResponse{}, errors.New("id is required")
	}
	traces, err := s.catalog.Evaluate(ctx, args.ID, args.Words)
	if err != nil {
		return AcceptsResponse{}, err
	}

	resp := AcceptsResponse{ID: args.ID, Verdicts: make([]Verdict, len(traces))}
	for i, tr := range traces {
		resp.Verdicts[i] = Verdict{Word: tr.Word, Accepted: tr.Accepted, Reason: tr.Reason}
	}
	return resp, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "Available Automata",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.catalog.List()
		if err != nil {
			return nil, fmt.Errorf("failed to list automata: %w", err)
		}
		jsonBytes, _ := json.Marshal(ListResponse{Automata: ids})

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      CatalogURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
