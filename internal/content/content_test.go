package content

import (
	"strings"
	"testing"

	"github.com/jkaninda/maestro/internal/persona"
)

func TestDetectScenario(t *testing.T) {
	tests := []struct {
		name    string
		problem string
		want    Scenario
	}{
		{"conveyor", "Design a control system for a variable-speed conveyor", ScenarioConveyor},
		{"conveyor case insensitive", "VARIABLE speed CONVEYOR design", ScenarioConveyor},
		{"conveyor alone is not enough", "the conveyor is broken", ScenarioGeneric},
		{"extruder", "extruder wall thickness varies", ScenarioExtruder},
		{"extruder alone is not enough", "the extruder is loud", ScenarioGeneric},
		{"retrofit plc tradeoff", "plc tradeoff analysis", ScenarioRetrofit},
		{"retrofit microcontroller packaging", "microcontroller for the packaging line", ScenarioRetrofit},
		{"plc alone is not retrofit", "plc fault on startup", ScenarioGeneric},
		{"unrelated", "pump cavitation at high flow", ScenarioGeneric},
		{"empty", "", ScenarioGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectScenario(tt.problem); got != tt.want {
				t.Errorf("DetectScenario(%q) = %q, want %q", tt.problem, got, tt.want)
			}
		})
	}
}

func TestRespond_AllParticipantsAllScenarios(t *testing.T) {
	problems := map[string]string{
		"conveyor": "variable speed conveyor control",
		"extruder": "extruder thickness issue",
		"retrofit": "plc vs microcontroller tradeoff",
		"generic":  "something else entirely",
	}
	ids := append([]persona.ID{persona.Conductor}, persona.SpecialistIDs...)

	for name, problem := range problems {
		for _, id := range ids {
			text := Respond(problem, id)
			if text == "" {
				t.Errorf("%s: empty response for %s", name, id)
			}
		}
	}
}

func TestRespond_Deterministic(t *testing.T) {
	problem := "extruder thickness issue"
	first := Respond(problem, persona.Process)
	for i := 0; i < 5; i++ {
		if got := Respond(problem, persona.Process); got != first {
			t.Fatal("response changed between calls")
		}
	}
}

func TestRespond_UnknownParticipant(t *testing.T) {
	if got := Respond("any problem", persona.ID("intern")); got != "" {
		t.Errorf("Respond(unknown) = %q, want empty", got)
	}
}

func TestRespond_ScenarioBeatsGeneric(t *testing.T) {
	scenario := Respond("variable speed conveyor", persona.Controls)
	generic := Respond("unrelated problem", persona.Controls)
	if scenario == generic {
		t.Error("scenario response should differ from generic response")
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"abcdefgh", 2},
		{strings.Repeat("x", 100), 25},
		{strings.Repeat("x", 101), 26},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(len %d) = %d, want %d", len(tt.text), got, tt.want)
		}
	}
}

func TestCost(t *testing.T) {
	if got := Cost(0); got != 0 {
		t.Errorf("Cost(0) = %v, want 0", got)
	}
	got := Cost(1000)
	want := 0.015
	if diff := got - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("Cost(1000) = %v, want %v", got, want)
	}
}

func TestSynthesize_Scenario(t *testing.T) {
	text := Synthesize("variable speed conveyor design", persona.SpecialistIDs)
	if !strings.Contains(text, "Variable-Speed Conveyor Control") {
		t.Errorf("conveyor synthesis missing scenario content:\n%s", text)
	}
}

func TestSynthesize_GenericNamesConsulted(t *testing.T) {
	consulted := []persona.ID{persona.Controls, persona.Process}
	text := Synthesize("unmatched problem", consulted)

	if !strings.Contains(text, "## Synthesized Analysis") {
		t.Fatalf("generic synthesis missing header:\n%s", text)
	}
	for _, id := range consulted {
		p, _ := persona.Get(id)
		if !strings.Contains(text, p.Name) {
			t.Errorf("generic synthesis does not name %s", p.Name)
		}
	}
	systems, _ := persona.Get(persona.Systems)
	if strings.Contains(text, "**"+systems.Name+"**") {
		t.Error("generic synthesis names a specialist that was not consulted")
	}
}

func TestSynthesize_GenericSkipsUnknown(t *testing.T) {
	text := Synthesize("unmatched problem", []persona.ID{persona.Controls, persona.ID("ghost")})
	if strings.Contains(text, "ghost") {
		t.Errorf("unknown participant leaked into synthesis:\n%s", text)
	}
}

func TestDemoProblems_MatchTheirScenarios(t *testing.T) {
	want := map[string]Scenario{
		"conveyor": ScenarioConveyor,
		"extruder": ScenarioExtruder,
		"retrofit": ScenarioRetrofit,
	}
	if len(DemoProblems) != len(want) {
		t.Fatalf("DemoProblems has %d entries, want %d", len(DemoProblems), len(want))
	}
	for _, p := range DemoProblems {
		if got := DetectScenario(p.Problem); got != want[p.ID] {
			t.Errorf("demo %q detects as %q, want %q", p.ID, got, want[p.ID])
		}
	}
}
