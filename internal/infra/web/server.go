package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"subscription-activation-bot/internal/domain/model"
	"subscription-activation-bot/internal/domain/ports/adapter"
	"subscription-activation-bot/internal/infra/logging"
	"subscription-activation-bot/internal/infra/metrics"
	"subscription-activation-bot/internal/infra/worker"
)

// UpdateDispatcher routes a normalized update to its command handler.
type UpdateDispatcher interface {
	Dispatch(ctx context.Context, upd *model.Update) error
}

// Server bridges webhook deliveries into Command Router invocations and
// acknowledges them independently of downstream processing.
type Server struct {
	parser     adapter.UpdateParser
	dispatcher UpdateDispatcher
	pool       *worker.Pool
	secret     string
	log        *zerolog.Logger
}

func NewServer(
	parser adapter.UpdateParser,
	dispatcher UpdateDispatcher,
	pool *worker.Pool,
	secret string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		parser:     parser,
		dispatcher: dispatcher,
		pool:       pool,
		secret:     secret,
		log:        logger,
	}
}

// Routes builds the HTTP surface: webhook ingestion, liveness and metrics.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleRoot)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/hook/{secret}", s.handleWebhook)
	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "bot is running")
}

const maxUpdateBody = 1 << 20

// handleWebhook acknowledges every delivery on the correct path with 200
// "ok", even on internal failure: Telegram retries non-200 responses, which
// would cause duplicate processing. Dispatch happens on the worker pool so
// the acknowledgment never waits on downstream calls.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "secret") != s.secret {
		http.NotFound(w, r)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxUpdateBody))
	if err != nil {
		s.log.Error().Err(err).Msg("read webhook body")
		metrics.IncUpdate("malformed")
		s.ack(w)
		return
	}

	upd, err := s.parser.ParseUpdate(body)
	if err != nil {
		s.log.Error().Err(err).Msg("parse update")
		metrics.IncUpdate("malformed")
		s.ack(w)
		return
	}
	if upd == nil {
		// Nothing routable in this update.
		metrics.IncUpdate("skipped")
		s.ack(w)
		return
	}

	traceID := ulid.Make().String()
	task := func(ctx context.Context) error {
		ctx = logging.WithTraceID(ctx, traceID)
		ctx = logging.WithTgID(ctx, upd.ChatID)
		start := time.Now()
		err := s.dispatcher.Dispatch(ctx, upd)
		metrics.ObserveDispatch(time.Since(start), err == nil)
		return err
	}
	if err := s.pool.Submit(task); err != nil {
		s.log.Warn().Err(err).Str("trace_id", traceID).Msg("update dropped")
		metrics.IncUpdate("dropped")
		s.ack(w)
		return
	}

	metrics.IncUpdate("accepted")
	s.ack(w)
}

func (s *Server) ack(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}
