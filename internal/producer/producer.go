// Package producer drives an orchestration run and emits its event stream.
//
// The producer is single-threaded and cooperative: phases run strictly in
// order, and "parallel" specialist generation is simulated by round-robin
// interleaving of fixed-size chunks. This keeps event ordering fully
// deterministic while presenting concurrent-looking output. Pacing delays are
// suspension points only; between ticks the run is fully checkpointed in the
// per-participant cursors, and cancellation is observed at every tick
// boundary.
package producer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jkaninda/maestro/internal/content"
	"github.com/jkaninda/maestro/internal/persona"
	"github.com/jkaninda/maestro/internal/protocol"
	"github.com/jkaninda/maestro/internal/routing"
)

// Config controls chunk sizes and pacing. Zero delays are valid; pacing is
// presentation only and never changes the emitted sequence.
type Config struct {
	SpecialistChunkSize int // Bytes per specialist chunk. 0 = 50.
	SynthesisChunkSize  int // Bytes per synthesis chunk. 0 = 20.

	AnalysisDelay       time.Duration // Before the conductor analysis.
	PostAnalysisDelay   time.Duration // Between analysis and routing.
	RoutingDelay        time.Duration // After the routing decision.
	KickoffDelay        time.Duration // After specialist-start events.
	TickDelay           time.Duration // Between interleave rounds.
	PreSynthesisDelay   time.Duration // After specialist completion.
	SynthesisStartDelay time.Duration // After synthesis-start.
	SynthesisTickDelay  time.Duration // Between synthesis chunks.
}

// DefaultConfig returns the pacing used by the live service.
func DefaultConfig() Config {
	return Config{
		SpecialistChunkSize: 50,
		SynthesisChunkSize:  20,
		AnalysisDelay:       500 * time.Millisecond,
		PostAnalysisDelay:   300 * time.Millisecond,
		RoutingDelay:        500 * time.Millisecond,
		KickoffDelay:        200 * time.Millisecond,
		TickDelay:           30 * time.Millisecond,
		PreSynthesisDelay:   500 * time.Millisecond,
		SynthesisStartDelay: 300 * time.Millisecond,
		SynthesisTickDelay:  15 * time.Millisecond,
	}
}

func (c Config) specialistChunkSize() int {
	if c.SpecialistChunkSize > 0 {
		return c.SpecialistChunkSize
	}
	return 50
}

func (c Config) synthesisChunkSize() int {
	if c.SynthesisChunkSize > 0 {
		return c.SynthesisChunkSize
	}
	return 20
}

// EmitFunc delivers one envelope to the transport. A non-nil error aborts
// the run.
type EmitFunc func(*protocol.Envelope) error

// Orchestrator produces the event stream for orchestration runs.
type Orchestrator struct {
	cfg     Config
	metrics *Metrics
	logger  *slog.Logger
}

// New creates an Orchestrator. metrics and logger may be nil.
func New(cfg Config, metrics *Metrics, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{cfg: cfg, metrics: metrics, logger: logger}
}

// Run executes one full orchestration for the problem, emitting events in
// protocol order. On an internal fault a single error event is emitted and
// the run halts — the run is not retried. On cancellation no further events
// are emitted and ctx.Err is returned.
func (o *Orchestrator) Run(ctx context.Context, problem string, emit EmitFunc) error {
	if o.metrics != nil {
		o.metrics.ActiveRuns.Inc()
		defer o.metrics.ActiveRuns.Dec()
	}

	start := time.Now()
	err := o.run(ctx, problem, emit)

	status := "success"
	switch {
	case err == nil:
	case ctx.Err() != nil:
		status = "cancelled"
	default:
		status = "failed"
		o.logger.Error("orchestration run failed", slog.String("error", err.Error()))
		// Best effort: the transport may already be gone.
		if env, eerr := protocol.NewEnvelope(protocol.EventError, protocol.ErrorEvent{Message: err.Error()}); eerr == nil {
			_ = emit(env)
		}
	}

	if o.metrics != nil {
		o.metrics.RunsTotal.WithLabelValues(status).Inc()
		o.metrics.RunDuration.Observe(time.Since(start).Seconds())
	}
	return err
}

func (o *Orchestrator) run(ctx context.Context, problem string, emit EmitFunc) error {
	send := func(t protocol.EventType, payload any) error {
		env, err := protocol.NewEnvelope(t, payload)
		if err != nil {
			return err
		}
		if err := emit(env); err != nil {
			return fmt.Errorf("emitting %s: %w", t, err)
		}
		if o.metrics != nil {
			o.metrics.EventsEmitted.WithLabelValues(string(t)).Inc()
		}
		return nil
	}

	totalTokens := 0

	// Phase: analyzing.
	if err := send(protocol.EventConductorStart, nil); err != nil {
		return err
	}
	if err := o.pause(ctx, o.cfg.AnalysisDelay); err != nil {
		return err
	}

	analysis := content.Respond(problem, persona.Conductor)
	if err := send(protocol.EventConductorAnalysis, protocol.ConductorAnalysis{Content: analysis}); err != nil {
		return err
	}
	totalTokens += content.EstimateTokens(analysis)
	if err := o.pause(ctx, o.cfg.PostAnalysisDelay); err != nil {
		return err
	}

	// Phase: routing. The decision is final — the selection is never altered
	// downstream.
	decision := routing.Classify(problem)
	if err := send(protocol.EventRoutingDecision, protocol.RoutingDecision{
		SelectedParticipants: decision.SelectedParticipants,
		Reasoning:            decision.Reasoning,
		Category:             decision.Category,
	}); err != nil {
		return err
	}
	if err := o.pause(ctx, o.cfg.RoutingDelay); err != nil {
		return err
	}

	// Phase: consulting. All starts go out before any chunk to model
	// simultaneous kickoff.
	for _, id := range decision.SelectedParticipants {
		if err := send(protocol.EventSpecialistStart, protocol.SpecialistStart{ParticipantID: id}); err != nil {
			return err
		}
	}
	if err := o.pause(ctx, o.cfg.KickoffDelay); err != nil {
		return err
	}

	cursors := make([]responseCursor, len(decision.SelectedParticipants))
	for i, id := range decision.SelectedParticipants {
		cursors[i] = responseCursor{id: id, text: content.Respond(problem, id)}
	}

	chunkSize := o.cfg.specialistChunkSize()
	for {
		allDone := true
		for i := range cursors {
			c := &cursors[i]
			if c.pos >= len(c.text) {
				continue
			}
			allDone = false

			end := c.pos + chunkSize
			if end > len(c.text) {
				end = len(c.text)
			}
			chunk := c.text[c.pos:end]
			c.pos = end

			if err := send(protocol.EventSpecialistChunk, protocol.SpecialistChunk{
				ParticipantID: c.id,
				Chunk:         chunk,
				Done:          c.pos >= len(c.text),
			}); err != nil {
				return err
			}
		}
		if allDone {
			break
		}
		if err := o.pause(ctx, o.cfg.TickDelay); err != nil {
			return err
		}
	}

	// Completions follow selection order, same as the starts.
	for i := range cursors {
		tokens := content.EstimateTokens(cursors[i].text)
		totalTokens += tokens
		if err := send(protocol.EventSpecialistComplete, protocol.SpecialistComplete{
			ParticipantID: cursors[i].id,
			TokenCount:    tokens,
		}); err != nil {
			return err
		}
	}
	if err := o.pause(ctx, o.cfg.PreSynthesisDelay); err != nil {
		return err
	}

	// Phase: synthesizing. One stream, sequential chunking.
	if err := send(protocol.EventSynthesisStart, nil); err != nil {
		return err
	}
	if err := o.pause(ctx, o.cfg.SynthesisStartDelay); err != nil {
		return err
	}

	synthesis := content.Synthesize(problem, decision.SelectedParticipants)
	synthSize := o.cfg.synthesisChunkSize()
	for pos := 0; pos < len(synthesis); pos += synthSize {
		end := pos + synthSize
		if end > len(synthesis) {
			end = len(synthesis)
		}
		if err := send(protocol.EventSynthesisChunk, protocol.SynthesisChunk{Chunk: synthesis[pos:end]}); err != nil {
			return err
		}
		if err := o.pause(ctx, o.cfg.SynthesisTickDelay); err != nil {
			return err
		}
	}

	synthTokens := content.EstimateTokens(synthesis)
	totalTokens += synthTokens
	if err := send(protocol.EventSynthesisComplete, protocol.SynthesisComplete{
		Content:    synthesis,
		TokenCount: synthTokens,
	}); err != nil {
		return err
	}

	// Phase: complete.
	if o.metrics != nil {
		o.metrics.TokensTotal.Add(float64(totalTokens))
	}
	return send(protocol.EventComplete, protocol.Complete{
		TotalTokens:      totalTokens,
		EstimatedCost:    fmt.Sprintf("%.4f", content.Cost(totalTokens)),
		ParticipantCount: len(decision.SelectedParticipants) + 1, // +1 for the conductor.
	})
}

// responseCursor tracks streaming progress through one specialist's text.
type responseCursor struct {
	id   persona.ID
	text string
	pos  int
}

// pause waits for d or until ctx is done, whichever comes first. With d == 0
// it still observes cancellation, so zero-delay runs remain abortable.
func (o *Orchestrator) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
