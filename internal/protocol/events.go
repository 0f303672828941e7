// Package protocol defines the typed event stream emitted during an
// orchestration run. Events are JSON-encoded and wrapped in an Envelope; the
// envelope sequence is the sole channel of state change for consumers.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jkaninda/maestro/internal/persona"
)

// EventType identifies the kind of event in the orchestration stream.
type EventType string

const (
	EventConductorStart     EventType = "conductor-start"
	EventConductorAnalysis  EventType = "conductor-analysis"
	EventRoutingDecision    EventType = "routing-decision"
	EventSpecialistStart    EventType = "specialist-start"
	EventSpecialistChunk    EventType = "specialist-chunk"
	EventSpecialistComplete EventType = "specialist-complete"
	EventSynthesisStart     EventType = "synthesis-start"
	EventSynthesisChunk     EventType = "synthesis-chunk"
	EventSynthesisComplete  EventType = "synthesis-complete"
	EventComplete           EventType = "complete"
	EventError              EventType = "error"
)

// knownTypes is the closed set of valid event types.
var knownTypes = map[EventType]bool{
	EventConductorStart:     true,
	EventConductorAnalysis:  true,
	EventRoutingDecision:    true,
	EventSpecialistStart:    true,
	EventSpecialistChunk:    true,
	EventSpecialistComplete: true,
	EventSynthesisStart:     true,
	EventSynthesisChunk:     true,
	EventSynthesisComplete:  true,
	EventComplete:           true,
	EventError:              true,
}

// Known reports whether t is a defined event type.
func Known(t EventType) bool {
	return knownTypes[t]
}

// Envelope is the wire representation of a single orchestration event.
// Timestamp is logical emission time in Unix milliseconds, monotonic within
// one run.
type Envelope struct {
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// NewEnvelope wraps a payload in an Envelope stamped with the current time.
func NewEnvelope(t EventType, payload any) (*Envelope, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s payload: %w", t, err)
		}
		raw = data
	}
	return &Envelope{
		Type:      t,
		Payload:   raw,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Decode unmarshals the payload into target.
func (e *Envelope) Decode(target any) error {
	if len(e.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(e.Payload, target)
}

// --- Payloads, one per event type ---

// ConductorAnalysis carries the conductor's full analysis as one atomic chunk.
// Analysis text is short; it is not streamed token by token.
type ConductorAnalysis struct {
	Content string `json:"content"`
}

// RoutingDecision announces which specialists the run will consult.
// It is the single source of truth for the downstream participant set.
type RoutingDecision struct {
	SelectedParticipants []persona.ID `json:"selected_participants"`
	Reasoning            string       `json:"reasoning"`
	Category             string       `json:"category"`
}

// SpecialistStart marks one specialist as consulted.
type SpecialistStart struct {
	ParticipantID persona.ID `json:"participant_id"`
}

// SpecialistChunk is one bounded slice of a specialist's response.
// Done is true on the final chunk for that participant.
type SpecialistChunk struct {
	ParticipantID persona.ID `json:"participant_id"`
	Chunk         string     `json:"chunk"`
	Done          bool       `json:"done"`
}

// SpecialistComplete closes out one specialist with its token estimate.
type SpecialistComplete struct {
	ParticipantID persona.ID `json:"participant_id"`
	TokenCount    int        `json:"token_count"`
}

// SynthesisChunk is one bounded slice of the synthesis text.
type SynthesisChunk struct {
	Chunk string `json:"chunk"`
}

// SynthesisComplete carries the full synthesis for reconciliation — consumers
// replace their accumulated text with Content rather than appending.
type SynthesisComplete struct {
	Content    string `json:"content"`
	TokenCount int    `json:"token_count"`
}

// Complete is the terminal event of a successful run.
// EstimatedCost is a fixed-point decimal string (4 places).
type Complete struct {
	TotalTokens      int    `json:"total_tokens"`
	EstimatedCost    string `json:"estimated_cost"`
	ParticipantCount int    `json:"participant_count"`
}

// ErrorEvent is the terminal event of a failed run.
type ErrorEvent struct {
	Message string `json:"message"`
}
