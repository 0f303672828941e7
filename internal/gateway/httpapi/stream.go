package httpapi

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jkaninda/maestro/internal/protocol"
	"github.com/jkaninda/okapi"
)

// OrchestrateRequest is the JSON body for POST /v1/orchestrate.
type OrchestrateRequest struct {
	Problem   string `json:"problem"`
	SessionID string `json:"session_id,omitempty"` // Empty = new session.
}

// handleOrchestrate runs one orchestration and streams its events as SSE.
// Validation and rate limiting happen before the first event goes out; once
// the stream is open, faults are delivered in-band as error events.
func (g *Gateway) handleOrchestrate(c *okapi.Context) error {
	var req OrchestrateRequest
	if err := c.Bind(&req); err != nil {
		return c.AbortBadRequest("problem is required")
	}
	if strings.TrimSpace(req.Problem) == "" {
		return c.AbortBadRequest("problem is required")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	if g.limiter != nil {
		if err := g.limiter.Allow(sessionID); err != nil {
			return c.AbortTooManyRequests("rate limit exceeded")
		}
	}

	g.logger.Info("orchestration stream starting",
		slog.String("session_id", sessionID),
	)
	if g.config.Metrics != nil {
		g.config.Metrics.StreamsStarted.WithLabelValues("sse").Inc()
	}

	// Client disconnect cancels the request context, which the producer
	// observes at the next pacing point.
	ctx := c.Context()
	emit := func(env *protocol.Envelope) error {
		c.SSEvent(string(env.Type), env)
		return ctx.Err()
	}

	if err := g.orch.Run(ctx, req.Problem, emit); err != nil {
		// The error event already went out in-band where possible.
		g.logger.Warn("orchestration stream ended early",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}
