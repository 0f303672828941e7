// Package ws implements the WebSocket stream transport for Maestro. Clients
// connect, send one start message, and receive the same protocol envelopes
// the SSE endpoint emits, one JSON text message per envelope.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/jkaninda/maestro/internal/observability"
	"github.com/jkaninda/maestro/internal/producer"
	"github.com/jkaninda/maestro/internal/protocol"
	"github.com/jkaninda/maestro/internal/ratelimit"
)

// Subprotocol negotiated on upgrade.
const Subprotocol = "maestro-stream-v1"

const startTimeout = 10 * time.Second

// StartRequest is the first message a client sends after connecting.
type StartRequest struct {
	Problem   string `json:"problem"`
	SessionID string `json:"session_id,omitempty"` // Empty = new session.
}

// Server is the WebSocket server streaming orchestration runs.
type Server struct {
	orch    *producer.Orchestrator
	limiter *ratelimit.Limiter // nil = unlimited.
	metrics *observability.MetricsCollector
	logger  *slog.Logger
}

// NewServer creates a WebSocket stream server. limiter and metrics may be nil.
func NewServer(orch *producer.Orchestrator, limiter *ratelimit.Limiter, metrics *observability.MetricsCollector, logger *slog.Logger) *Server {
	return &Server{
		orch:    orch,
		limiter: limiter,
		metrics: metrics,
		logger:  logger,
	}
}

// Handler returns an http.Handler that upgrades connections to WebSocket.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handleUpgrade)
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols: []string{Subprotocol},
	})
	if err != nil {
		s.logger.Error("websocket accept failed", slog.String("error", err.Error()))
		return
	}

	if s.metrics != nil {
		s.metrics.WSConnectionsActive.Inc()
		defer s.metrics.WSConnectionsActive.Dec()
	}

	s.handleConnection(r.Context(), conn)
}

func (s *Server) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close(websocket.StatusNormalClosure, "stream complete")

	req, err := s.waitForStart(ctx, conn)
	if err != nil {
		s.logger.Warn("websocket start failed", slog.String("error", err.Error()))
		s.writeError(ctx, conn, err.Error())
		conn.Close(websocket.StatusPolicyViolation, "invalid start message")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	if s.limiter != nil {
		if err := s.limiter.Allow(sessionID); err != nil {
			s.writeError(ctx, conn, "rate limit exceeded")
			conn.Close(websocket.StatusPolicyViolation, "rate limit exceeded")
			return
		}
	}

	s.logger.Info("websocket stream starting", slog.String("session_id", sessionID))
	if s.metrics != nil {
		s.metrics.StreamsStarted.WithLabelValues("websocket").Inc()
	}

	emit := func(env *protocol.Envelope) error {
		return s.writeEnvelope(ctx, conn, env)
	}

	if err := s.orch.Run(ctx, req.Problem, emit); err != nil {
		s.logger.Warn("websocket stream ended early",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
}

// waitForStart reads and validates the start message. The client has a fixed
// window to send it.
func (s *Server) waitForStart(ctx context.Context, conn *websocket.Conn) (*StartRequest, error) {
	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	_, data, err := conn.Read(startCtx)
	if err != nil {
		return nil, fmt.Errorf("reading start message: %w", err)
	}

	var req StartRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parsing start message: %w", err)
	}
	if strings.TrimSpace(req.Problem) == "" {
		return nil, fmt.Errorf("problem is required")
	}
	return &req, nil
}

func (s *Server) writeError(ctx context.Context, conn *websocket.Conn, message string) {
	env, err := protocol.NewEnvelope(protocol.EventError, protocol.ErrorEvent{Message: message})
	if err != nil {
		return
	}
	_ = s.writeEnvelope(ctx, conn, env)
}

func (s *Server) writeEnvelope(ctx context.Context, conn *websocket.Conn, env *protocol.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}
