package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	goutils "github.com/jkaninda/go-utils"

	"github.com/jkaninda/maestro/internal/persona"
	"github.com/jkaninda/maestro/internal/protocol"
	"github.com/jkaninda/maestro/internal/session"
)

// Exit codes for the ask command.
const (
	ExitSuccess           = 0
	ExitFailure           = 1
	ExitRejected          = 2
	ExitServerUnavailable = 3
)

var (
	askMessage   string
	askServerURL string
	askSessionID string
	askTimeout   int
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Run an orchestration and stream the result",
	Long: `Send a problem to the Maestro gateway and consume the orchestration event
stream. Raw reads are fed through the frame decoder into the session reducer,
so partial frames and malformed events are handled the way a UI client would.

Examples:
  maestro ask -m "Our conveyor system stops randomly. PLC shows no faults."
  maestro ask -m "Extruder output thickness varies +/-0.3mm" --server http://maestro:8080

Exit codes:
  0  run completed
  1  run ended in error
  2  request rejected (bad request or rate limited)
  3  server unavailable`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askMessage, "message", "m", "", "problem to orchestrate (required)")
	askCmd.Flags().StringVar(&askServerURL, "server", "http://localhost:8080", "gateway URL")
	askCmd.Flags().StringVar(&askSessionID, "session-id", "", "session ID for rate limiting")
	askCmd.Flags().IntVar(&askTimeout, "timeout", 300, "timeout in seconds")

	_ = askCmd.MarkFlagRequired("message")
}

func runAsk(_ *cobra.Command, _ []string) error {
	if askMessage == "" {
		return fmt.Errorf("message is required: use -m flag")
	}

	serverURL := goutils.Env("MAESTRO_SERVER_URL", askServerURL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(askTimeout)*time.Second)
	defer cancel()

	reqBody, _ := json.Marshal(map[string]any{
		"problem":    askMessage,
		"session_id": askSessionID,
	})

	req, err := http.NewRequestWithContext(ctx, "POST", serverURL+"/v1/orchestrate", bytes.NewReader(reqBody))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitFailure)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach server at %s: %v\n", serverURL, err)
		os.Exit(ExitServerUnavailable)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest, http.StatusTooManyRequests:
		body, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Error: request rejected (%d): %s\n", resp.StatusCode, string(body))
		os.Exit(ExitRejected)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		fmt.Fprintf(os.Stderr, "Error: server unavailable (%d)\n", resp.StatusCode)
		os.Exit(ExitServerUnavailable)
	default:
		body, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Error: server returned %d: %s\n", resp.StatusCode, string(body))
		os.Exit(ExitFailure)
	}

	exitCode := consumeStream(ctx, resp.Body)
	os.Exit(exitCode)
	return nil
}

// consumeStream feeds raw reads through the frame decoder into the reducer
// and renders the run as it progresses.
func consumeStream(ctx context.Context, body io.Reader) int {
	decoder := protocol.NewFrameDecoder(nil)
	reducer := session.NewReducer(nil)
	reducer.Reset(askMessage)

	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			for _, env := range decoder.Feed(buf[:n]) {
				reducer.Apply(env)
				render(reducer.Session(), env)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			if ctx.Err() == nil {
				fmt.Fprintf(os.Stderr, "Error: stream interrupted: %v\n", err)
				return ExitFailure
			}
			break
		}
	}

	s := reducer.Session()
	if dropped := decoder.Dropped() + reducer.Dropped(); dropped > 0 {
		fmt.Fprintf(os.Stderr, "[warning: %d malformed events dropped]\n", dropped)
	}

	switch s.Phase {
	case session.PhaseComplete:
		return ExitSuccess
	case session.PhaseError:
		fmt.Fprintf(os.Stderr, "Error: orchestration failed: %s\n", s.LastError)
		return ExitFailure
	default:
		fmt.Fprintf(os.Stderr, "Error: stream ended mid-run (phase: %s)\n", s.Phase)
		return ExitFailure
	}
}

// render prints the parts of the run a terminal reader wants live: the
// conductor analysis, the routing decision, each specialist's full response
// once complete, and the synthesis as it streams.
func render(s *session.Session, env *protocol.Envelope) {
	switch env.Type {
	case protocol.EventConductorAnalysis:
		fmt.Printf("%s\n\n", s.Participants[persona.Conductor].Text)

	case protocol.EventRoutingDecision:
		if s.Routing == nil {
			return
		}
		fmt.Fprintf(os.Stderr, "[%s] %s\n", s.Routing.Category, s.Routing.Reasoning)
		for _, id := range s.Routing.SelectedParticipants {
			if p, ok := persona.Get(id); ok {
				fmt.Fprintf(os.Stderr, "  - %s (%s)\n", p.Name, p.Title)
			}
		}
		fmt.Fprintln(os.Stderr)

	case protocol.EventSpecialistComplete:
		var p protocol.SpecialistComplete
		if err := env.Decode(&p); err != nil {
			return
		}
		pers, ok := persona.Get(p.ParticipantID)
		if !ok {
			return
		}
		fmt.Printf("--- %s (%s) ---\n", pers.Name, pers.Title)
		fmt.Printf("%s\n\n", s.Participants[p.ParticipantID].Text)

	case protocol.EventSynthesisStart:
		fmt.Println("--- Synthesis ---")

	case protocol.EventSynthesisChunk:
		var p protocol.SynthesisChunk
		if err := env.Decode(&p); err != nil {
			return
		}
		fmt.Print(p.Chunk)

	case protocol.EventSynthesisComplete:
		fmt.Println()

	case protocol.EventComplete:
		var p protocol.Complete
		if err := env.Decode(&p); err != nil {
			return
		}
		fmt.Fprintf(os.Stderr, "\n[tokens=%d cost=$%s participants=%d]\n",
			p.TotalTokens, p.EstimatedCost, p.ParticipantCount)

	case protocol.EventError:
		fmt.Fprintf(os.Stderr, "Error: %s\n", s.LastError)
	}
}
