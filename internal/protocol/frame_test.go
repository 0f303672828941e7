package protocol

import (
	"bytes"
	"testing"
)

func TestEncodeFrame(t *testing.T) {
	env, err := NewEnvelope(EventSynthesisChunk, SynthesisChunk{Chunk: "hello"})
	if err != nil {
		t.Fatalf("NewEnvelope error: %v", err)
	}
	frame, err := EncodeFrame(env)
	if err != nil {
		t.Fatalf("EncodeFrame error: %v", err)
	}
	if !bytes.HasPrefix(frame, []byte("data: ")) {
		t.Errorf("frame missing data prefix: %q", frame)
	}
	if !bytes.HasSuffix(frame, []byte("\n\n")) {
		t.Errorf("frame missing separator: %q", frame)
	}
}

func TestFrameDecoder_RoundTrip(t *testing.T) {
	d := NewFrameDecoder(nil)

	var wire []byte
	types := []EventType{EventConductorStart, EventSynthesisChunk, EventComplete}
	for _, typ := range types {
		env, err := NewEnvelope(typ, nil)
		if err != nil {
			t.Fatalf("NewEnvelope(%s): %v", typ, err)
		}
		frame, err := EncodeFrame(env)
		if err != nil {
			t.Fatalf("EncodeFrame(%s): %v", typ, err)
		}
		wire = append(wire, frame...)
	}

	got := d.Feed(wire)
	if len(got) != len(types) {
		t.Fatalf("decoded %d envelopes, want %d", len(got), len(types))
	}
	for i, env := range got {
		if env.Type != types[i] {
			t.Errorf("envelope %d type = %s, want %s", i, env.Type, types[i])
		}
	}
	if d.Dropped() != 0 {
		t.Errorf("dropped = %d, want 0", d.Dropped())
	}
}

func TestFrameDecoder_SplitAtEveryBoundary(t *testing.T) {
	env, err := NewEnvelope(EventSpecialistChunk, SpecialistChunk{ParticipantID: "controls", Chunk: "abc", Done: true})
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	frame, err := EncodeFrame(env)
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}

	// Feed the frame split at every possible byte boundary. The decoder must
	// yield exactly one envelope regardless of where the split falls.
	for split := 0; split <= len(frame); split++ {
		d := NewFrameDecoder(nil)
		var got []*Envelope
		got = append(got, d.Feed(frame[:split])...)
		got = append(got, d.Feed(frame[split:])...)

		if len(got) != 1 {
			t.Fatalf("split %d: decoded %d envelopes, want 1", split, len(got))
		}
		var p SpecialistChunk
		if err := got[0].Decode(&p); err != nil {
			t.Fatalf("split %d: decode payload: %v", split, err)
		}
		if p.Chunk != "abc" || !p.Done {
			t.Errorf("split %d: payload = %+v", split, p)
		}
	}
}

func TestFrameDecoder_ByteAtATime(t *testing.T) {
	env, _ := NewEnvelope(EventSynthesisChunk, SynthesisChunk{Chunk: "slow"})
	frame, _ := EncodeFrame(env)

	d := NewFrameDecoder(nil)
	var got []*Envelope
	for i := range frame {
		got = append(got, d.Feed(frame[i:i+1])...)
	}
	if len(got) != 1 {
		t.Fatalf("decoded %d envelopes, want 1", len(got))
	}
	if got[0].Type != EventSynthesisChunk {
		t.Errorf("type = %s, want %s", got[0].Type, EventSynthesisChunk)
	}
}

func TestFrameDecoder_MalformedFrameSkipped(t *testing.T) {
	d := NewFrameDecoder(nil)

	good, _ := NewEnvelope(EventConductorStart, nil)
	goodFrame, _ := EncodeFrame(good)

	wire := append([]byte("data: {not json}\n\n"), goodFrame...)
	got := d.Feed(wire)

	if len(got) != 1 {
		t.Fatalf("decoded %d envelopes, want 1", len(got))
	}
	if got[0].Type != EventConductorStart {
		t.Errorf("type = %s, want %s", got[0].Type, EventConductorStart)
	}
	if d.Dropped() != 1 {
		t.Errorf("dropped = %d, want 1", d.Dropped())
	}
}

func TestFrameDecoder_UnknownTypeSkipped(t *testing.T) {
	d := NewFrameDecoder(nil)
	got := d.Feed([]byte(`data: {"type":"telemetry","timestamp":1}` + "\n\n"))
	if len(got) != 0 {
		t.Fatalf("decoded %d envelopes, want 0", len(got))
	}
	if d.Dropped() != 1 {
		t.Errorf("dropped = %d, want 1", d.Dropped())
	}
}

func TestFrameDecoder_IgnoresNonDataLines(t *testing.T) {
	env, _ := NewEnvelope(EventComplete, Complete{TotalTokens: 10, EstimatedCost: "0.0002", ParticipantCount: 2})
	frame, _ := EncodeFrame(env)

	// SSE servers may send event-name and comment lines in the same frame.
	wire := append([]byte("event: complete\n: keepalive\n"), frame...)

	d := NewFrameDecoder(nil)
	got := d.Feed(wire)
	if len(got) != 1 {
		t.Fatalf("decoded %d envelopes, want 1", len(got))
	}
	var p Complete
	if err := got[0].Decode(&p); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if p.EstimatedCost != "0.0002" {
		t.Errorf("cost = %q, want 0.0002", p.EstimatedCost)
	}
	if d.Dropped() != 0 {
		t.Errorf("dropped = %d, want 0", d.Dropped())
	}
}

func TestEnvelope_DecodeNilPayload(t *testing.T) {
	env, err := NewEnvelope(EventConductorStart, nil)
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	var p ConductorAnalysis
	if err := env.Decode(&p); err != nil {
		t.Errorf("Decode(nil payload) error: %v", err)
	}
	if p.Content != "" {
		t.Errorf("Content = %q, want empty", p.Content)
	}
}

func TestKnown(t *testing.T) {
	for _, typ := range []EventType{
		EventConductorStart, EventConductorAnalysis, EventRoutingDecision,
		EventSpecialistStart, EventSpecialistChunk, EventSpecialistComplete,
		EventSynthesisStart, EventSynthesisChunk, EventSynthesisComplete,
		EventComplete, EventError,
	} {
		if !Known(typ) {
			t.Errorf("Known(%s) = false", typ)
		}
	}
	if Known("specialist-pause") {
		t.Error("Known(specialist-pause) = true")
	}
}
