package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// MaxWords bounds the words accepted by a single evaluation request.
const MaxWords = 1000

// Engine defines what the HTTP adapter needs from the automata engine.
type Engine interface {
	ports.Catalog
	Validate(ctx context.Context, id string) (validator.Report, error)
	Graph(ctx context.Context, id string, trace *domain.Trace) (string, error)
}

// Server exposes an Engine over HTTP.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	Version string

	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetricsHandler mounts h (usually promhttp.HandlerFor) on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithStreams shares a StreamManager fed by the engine hooks (see StreamManager.Hooks).
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine:  engine,
		Version: "unknown",
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.Streams == nil {
		server.Streams = NewStreamManager()
	}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/events", server.SubscribeEvents)
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	r.Route("/automata", func(r chi.Router) {
		r.Get("/", server.ListAutomata)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", server.GetAutomaton)
			r.Get("/deterministic", server.GetDeterminism)
			r.Get("/validate", server.GetValidation)
			r.Get("/graph", server.GetGraph)
			r.Post("/accepts", server.PostAccepts)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AutomatonResponse describes an automaton.
type AutomatonResponse struct {
	ID          string              `json:"id"`
	Initial     string              `json:"initial,omitempty"`
	Final       []string            `json:"final"`
	States      []string            `json:"states"`
	Transitions []domain.Transition `json:"transitions"`
	Alphabet    []string            `json:"alphabet"`
}

// DeterminismResponse is the body of GET /automata/{id}/deterministic.
type DeterminismResponse struct {
	ID            string            `json:"id"`
	Deterministic bool              `json:"deterministic"`
	Conflicts     []domain.Conflict `json:"conflicts"`
}

// AcceptsRequest is the body of POST /automata/{id}/accepts.
type AcceptsRequest struct {
	Words []string `json:"words"`
	Trace bool     `json:"trace,omitempty"`
}

// Verdict is one evaluated word.
type Verdict struct {
	Word     string              `json:"word"`
	Accepted bool                `json:"accepted"`
	Reason   domain.RejectReason `json:"reason,omitempty"`
	Trace    *domain.Trace       `json:"trace,omitempty"`
}

// AcceptsResponse is the body returned by POST /automata/{id}/accepts.
type AcceptsResponse struct {
	ID       string    `json:"id"`
	Verdicts []Verdict `json:"verdicts"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "automata-http",
		"version": strings.TrimSpace(s.Version),
	})
}

// ListAutomata handles the GET /automata request.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.List()
	if err != nil {
		s.fail(w, "List", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"automata": ids})
}

// GetAutomaton handles the GET /automata/{id} request.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := s.Engine.Automaton(r.Context(), id)
	if err != nil {
		s.fail(w, "GetAutomaton", err)
		return
	}

	resp := AutomatonResponse{
		ID:          id,
		Final:       domain.Names(a.FinalStates()),
		States:      domain.Names(a.States()),
		Transitions: a.Transitions(),
	}
	if initial, ok := a.Initial(); ok {
		resp.Initial = initial.Name
	}
	for _, sym := range a.Alphabet() {
		resp.Alphabet = append(resp.Alphabet, sym.String())
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GetDeterminism handles the GET /automata/{id}/deterministic request.
func (s *Server) GetDeterminism(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ok, conflicts, err := s.Engine.IsDeterministic(r.Context(), id)
	if err != nil {
		s.fail(w, "GetDeterminism", err)
		return
	}
	if conflicts == nil {
		conflicts = []domain.Conflict{}
	}
	s.writeJSON(w, http.StatusOK, DeterminismResponse{ID: id, Deterministic: ok, Conflicts: conflicts})
}

// GetValidation handles the GET /automata/{id}/validate request.
func (s *Server) GetValidation(w http.ResponseWriter, r *http.Request) {
	report, err := s.Engine.Validate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetValidation", err)
		return
	}
	if report.Issues == nil {
		report.Issues = []validator.Issue{}
	}
	s.writeJSON(w, http.StatusOK, report)
}

// GetGraph handles the GET /automata/{id}/graph request.
// The optional "word" query parameter overlays its evaluation.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var trace *domain.Trace
	if r.URL.Query().Has("word") {
		traces, err := s.Engine.Evaluate(r.Context(), id, []string{r.URL.Query().Get("word")})
		if err != nil {
			s.fail(w, "GetGraph", err)
			return
		}
		trace = &traces[0]
	}

	out, err := s.Engine.Graph(r.Context(), id, trace)
	if err != nil {
		s.fail(w, "GetGraph", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, out)
}

// PostAccepts handles the POST /automata/{id}/accepts request.
func (s *Server) PostAccepts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body AcceptsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PostAccepts: Invalid request body", "error", err)
		return
	}
	if len(body.Words) > MaxWords {
		http.Error(w, fmt.Sprintf("Too many words: %d (max %d)", len(body.Words), MaxWords), http.StatusRequestEntityTooLarge)
		return
	}

	traces, err := s.Engine.Evaluate(r.Context(), id, body.Words)
	if err != nil {
		s.fail(w, "PostAccepts", err)
		return
	}

	resp := AcceptsResponse{ID: id, Verdicts: make([]Verdict, len(traces))}
	for i := range traces {
		v := Verdict{
			Word:     traces[i].Word,
			Accepted: traces[i].Accepted,
			Reason:   traces[i].Reason,
		}
		if body.Trace {
			v.Trace = &traces[i]
		}
		resp.Verdicts[i] = v
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, domain.ErrDefinitionNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	var unprocessable = []error{domain.ErrUnknownState, domain.ErrMultipleInitial, domain.ErrInvalidSymbol, domain.ErrEmptyStateName}
	for _, target := range unprocessable {
		if errors.Is(err, target) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
	s.logger.Error(op+" failed", "error", err)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
