package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stockquote/internal/coordinator"
	"stockquote/internal/widget"
)

// WidgetHost is what the HTTP layer needs from the coordinator.
type WidgetHost interface {
	Cards() []widget.Card
	Card(id string) (widget.Card, bool)
	Remount(ctx context.Context, id, symbol string) (bool, error)
}

// Server serves widget cards.
type Server struct {
	host    WidgetHost
	metrics http.Handler
	logger  *slog.Logger
}

// NewServer creates a Server. metrics may be nil to leave /metrics unrouted.
func NewServer(host WidgetHost, metrics http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{host: host, metrics: metrics, logger: logger}
}

type remountRequest struct {
	Symbol string `json:"symbol"`
}

type remountResponse struct {
	ID      string `json:"id"`
	Symbol  string `json:"symbol"`
	Started bool   `json:"started"`
}

// ListWidgets returns every card.
func (s *Server) ListWidgets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.host.Cards())
}

// GetWidget returns one card.
func (s *Server) GetWidget(w http.ResponseWriter, r *http.Request) {
	card, ok := s.host.Card(chi.URLParam(r, "id"))
	if !ok {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// RemountWidget points a widget at a new symbol. The cycle outlives the
// request, so it runs on a context detached from the request's cancellation.
func (s *Server) RemountWidget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body remountRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if body.Symbol == "" {
		badRequest(w, "symbol is required")
		return
	}

	started, err := s.host.Remount(context.WithoutCancel(r.Context()), id, body.Symbol)
	if err != nil {
		if errors.Is(err, coordinator.ErrWidgetNotFound) {
			notFound(w)
			return
		}
		s.logger.Error("remount failed", "id", id, "error", err)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusAccepted, remountResponse{ID: id, Symbol: body.Symbol, Started: started})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	http.Error(w, msg, http.StatusBadRequest)
}

func notFound(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

func internalError(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
