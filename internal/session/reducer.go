package session

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/jkaninda/maestro/internal/persona"
	"github.com/jkaninda/maestro/internal/protocol"
	"github.com/jkaninda/maestro/internal/routing"
)

// Reducer folds the orchestration event stream into a Session. Events are
// applied strictly in arrival order on a single goroutine. Malformed events
// are dropped with a diagnostic log and counted — they never abort
// consumption of subsequent valid events.
type Reducer struct {
	session *Session
	logger  *slog.Logger
	dropped int
}

// NewReducer creates a reducer over a fresh idle session. logger may be nil.
func NewReducer(logger *slog.Logger) *Reducer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reducer{session: NewSession(""), logger: logger}
}

// Session returns the current session snapshot.
func (r *Reducer) Session() *Session {
	return r.session
}

// Dropped returns the number of events discarded as malformed.
func (r *Reducer) Dropped() int {
	return r.dropped
}

// Reset replaces the session with a fresh one for a new run. No state from
// the previous run survives.
func (r *Reducer) Reset(problem string) {
	r.session = NewSession(problem)
	r.dropped = 0
}

// Apply folds one envelope into the session. Unknown event types and payloads
// that fail to decode are dropped.
func (r *Reducer) Apply(env *protocol.Envelope) {
	s := r.session

	switch env.Type {
	case protocol.EventConductorStart:
		s.Phase = PhaseAnalyzing
		s.Participants[persona.Conductor].Status = StatusThinking

	case protocol.EventConductorAnalysis:
		var p protocol.ConductorAnalysis
		if !r.decode(env, &p) {
			return
		}
		conductor := s.Participants[persona.Conductor]
		conductor.Text = p.Content
		conductor.Status = StatusComplete

	case protocol.EventRoutingDecision:
		var p protocol.RoutingDecision
		if !r.decode(env, &p) {
			return
		}
		s.Phase = PhaseRouting
		s.Routing = &routing.Decision{
			SelectedParticipants: p.SelectedParticipants,
			Reasoning:            p.Reasoning,
			Category:             p.Category,
		}

	case protocol.EventSpecialistStart:
		var p protocol.SpecialistStart
		if !r.decode(env, &p) {
			return
		}
		state, ok := s.Participants[p.ParticipantID]
		if !ok {
			r.drop(env, "unknown participant")
			return
		}
		s.Phase = PhaseConsulting
		state.Status = StatusThinking

	case protocol.EventSpecialistChunk:
		var p protocol.SpecialistChunk
		if !r.decode(env, &p) {
			return
		}
		state, ok := s.Participants[p.ParticipantID]
		if !ok {
			r.drop(env, "unknown participant")
			return
		}
		state.Text += p.Chunk
		// The final chunk leaves the status transition to the subsequent
		// specialist-complete event.
		if !p.Done {
			state.Status = StatusResponding
		}

	case protocol.EventSpecialistComplete:
		var p protocol.SpecialistComplete
		if !r.decode(env, &p) {
			return
		}
		state, ok := s.Participants[p.ParticipantID]
		if !ok {
			r.drop(env, "unknown participant")
			return
		}
		state.Status = StatusComplete
		state.TokenCount = p.TokenCount

	case protocol.EventSynthesisStart:
		s.Phase = PhaseSynthesizing
		s.Participants[persona.Conductor].Status = StatusThinking

	case protocol.EventSynthesisChunk:
		var p protocol.SynthesisChunk
		if !r.decode(env, &p) {
			return
		}
		s.SynthesisText += p.Chunk
		s.Participants[persona.Conductor].Status = StatusResponding

	case protocol.EventSynthesisComplete:
		var p protocol.SynthesisComplete
		if !r.decode(env, &p) {
			return
		}
		// Authoritative overwrite, not append — corrects any drift from
		// chunk accumulation.
		s.SynthesisText = p.Content
		conductor := s.Participants[persona.Conductor]
		conductor.Status = StatusComplete
		conductor.TokenCount = p.TokenCount

	case protocol.EventComplete:
		var p protocol.Complete
		if !r.decode(env, &p) {
			return
		}
		s.Phase = PhaseComplete
		s.TotalTokens = p.TotalTokens
		if cost, err := strconv.ParseFloat(p.EstimatedCost, 64); err == nil {
			s.EstimatedCost = cost
		}

	case protocol.EventError:
		var p protocol.ErrorEvent
		if !r.decode(env, &p) {
			return
		}
		// In-flight participant statuses stay as last known for diagnostics.
		s.Phase = PhaseError
		s.LastError = p.Message

	default:
		r.drop(env, "unknown event type")
	}
}

func (r *Reducer) decode(env *protocol.Envelope, target any) bool {
	if err := env.Decode(target); err != nil {
		r.dropped++
		r.logger.Warn("dropping undecodable event",
			slog.String("type", string(env.Type)),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

func (r *Reducer) drop(env *protocol.Envelope, reason string) {
	r.dropped++
	r.logger.Warn("dropping event",
		slog.String("type", string(env.Type)),
		slog.String("reason", reason),
	)
}
