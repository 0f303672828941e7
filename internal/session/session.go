// Package session holds the consumer-side view of an orchestration run and
// the reducer that rebuilds it from the event stream. The event sequence is
// the sole channel of state change — nothing here infers state from anything
// but applied events.
package session

import (
	"github.com/jkaninda/maestro/internal/persona"
	"github.com/jkaninda/maestro/internal/routing"
)

// Phase is the coarse stage of a run. It only moves forward through the
// defined order or jumps to PhaseError; it never regresses except on Reset.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseAnalyzing    Phase = "analyzing"
	PhaseRouting      Phase = "routing"
	PhaseConsulting   Phase = "consulting"
	PhaseSynthesizing Phase = "synthesizing"
	PhaseComplete     Phase = "complete"
	PhaseError        Phase = "error"
)

// Status is the lifecycle state of one participant.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusThinking   Status = "thinking"
	StatusResponding Status = "responding"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// ParticipantState is the mutable per-participant view. Instances are created
// at reset and mutated only by applying events in arrival order; they are
// never deleted, only reset.
type ParticipantState struct {
	Status     Status
	Text       string // Accumulated response text.
	TokenCount int
}

// Session is the aggregate state of one orchestration run. Exactly one live
// session exists per run; a new run fully replaces it.
type Session struct {
	Phase         Phase
	Problem       string
	Routing       *routing.Decision // nil until the routing decision arrives.
	Participants  map[persona.ID]*ParticipantState
	SynthesisText string
	TotalTokens   int
	EstimatedCost float64
	LastError     string
}

// NewSession creates an idle session for the problem, with every known
// participant idle and empty.
func NewSession(problem string) *Session {
	participants := make(map[persona.ID]*ParticipantState, len(persona.SpecialistIDs)+1)
	participants[persona.Conductor] = &ParticipantState{Status: StatusIdle}
	for _, id := range persona.SpecialistIDs {
		participants[id] = &ParticipantState{Status: StatusIdle}
	}
	return &Session{
		Phase:        PhaseIdle,
		Problem:      problem,
		Participants: participants,
	}
}
