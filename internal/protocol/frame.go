package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// frameSeparator terminates each wire frame. One frame carries one envelope
// as a single "data: <json>" line, matching server-sent event framing.
const frameSeparator = "\n\n"

// EncodeFrame renders an envelope as one wire frame.
func EncodeFrame(e *Envelope) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding frame: %w", err)
	}
	var buf bytes.Buffer
	buf.Grow(len(data) + 8)
	buf.WriteString("data: ")
	buf.Write(data)
	buf.WriteString(frameSeparator)
	return buf.Bytes(), nil
}

// FrameDecoder incrementally reassembles envelopes from a byte stream.
// A frame may arrive split across multiple reads; the residual partial frame
// is retained between Feed calls, never discarded. Frames that fail to parse
// or carry an unknown event type are counted and skipped — a garbled frame
// must never abort consumption of subsequent valid frames.
type FrameDecoder struct {
	buf     bytes.Buffer
	logger  *slog.Logger
	dropped int
}

// NewFrameDecoder creates a decoder. logger may be nil.
func NewFrameDecoder(logger *slog.Logger) *FrameDecoder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FrameDecoder{logger: logger}
}

// Feed appends raw bytes and returns every complete envelope now available,
// in wire order.
func (d *FrameDecoder) Feed(p []byte) []*Envelope {
	d.buf.Write(p)

	var out []*Envelope
	for {
		raw := d.buf.String()
		idx := strings.Index(raw, frameSeparator)
		if idx < 0 {
			return out
		}
		frame := raw[:idx]
		d.buf.Reset()
		d.buf.WriteString(raw[idx+len(frameSeparator):])

		env, ok := d.decodeFrame(frame)
		if ok {
			out = append(out, env)
		}
	}
}

// Dropped returns the number of frames skipped due to decode failures or
// unknown event types.
func (d *FrameDecoder) Dropped() int {
	return d.dropped
}

// decodeFrame parses a single frame. Lines without the data prefix
// (comments, event names, heartbeats) are ignored.
func (d *FrameDecoder) decodeFrame(frame string) (*Envelope, bool) {
	for _, line := range strings.Split(frame, "\n") {
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}

		var env Envelope
		if err := json.Unmarshal([]byte(data), &env); err != nil {
			d.dropped++
			d.logger.Warn("dropping malformed frame", slog.String("error", err.Error()))
			return nil, false
		}
		if !Known(env.Type) {
			d.dropped++
			d.logger.Warn("dropping frame with unknown event type", slog.String("type", string(env.Type)))
			return nil, false
		}
		return &env, true
	}
	return nil, false
}
