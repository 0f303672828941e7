// Package content provides the canned response corpus for orchestration runs.
// Responses are looked up by detected scenario and participant; unknown
// problems fall back to generic per-participant templates. Lookups are O(1),
// total, and side-effect free — there is no generation here, only retrieval.
package content

import (
	"strings"

	"github.com/jkaninda/maestro/internal/persona"
)

// Scenario identifies a known demo problem family.
type Scenario string

const (
	ScenarioConveyor Scenario = "conveyor"
	ScenarioExtruder Scenario = "extruder"
	ScenarioRetrofit Scenario = "retrofit"
	ScenarioGeneric  Scenario = "generic"
)

// scenarioRule is an ordered multi-keyword predicate over the problem text.
type scenarioRule struct {
	scenario Scenario
	match    func(lower string) bool
}

var scenarioRules = []scenarioRule{
	{ScenarioConveyor, func(s string) bool {
		return strings.Contains(s, "conveyor") && strings.Contains(s, "variable")
	}},
	{ScenarioExtruder, func(s string) bool {
		return strings.Contains(s, "extruder") && strings.Contains(s, "thickness")
	}},
	{ScenarioRetrofit, func(s string) bool {
		return (strings.Contains(s, "plc") || strings.Contains(s, "microcontroller")) &&
			(strings.Contains(s, "tradeoff") || strings.Contains(s, "packaging"))
	}},
}

// DetectScenario classifies the problem against the known scenario
// predicates, in order. Unmatched problems are ScenarioGeneric.
func DetectScenario(problem string) Scenario {
	lower := strings.ToLower(problem)
	for _, rule := range scenarioRules {
		if rule.match(lower) {
			return rule.scenario
		}
	}
	return ScenarioGeneric
}

// Respond returns the full response text for one participant.
// Total: unknown participants get an empty response, known participants
// always get either scenario-specific or generic content.
func Respond(problem string, id persona.ID) string {
	if !persona.Known(id) {
		return ""
	}
	scenario := DetectScenario(problem)
	if responses, ok := scenarioResponses[scenario]; ok {
		if text, ok := responses[id]; ok {
			return text
		}
	}
	return genericResponses[id]
}

// Problem is a ready-made demo problem exposed by the API.
type Problem struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Problem string   `json:"problem"`
	Tags    []string `json:"tags"`
}

// DemoProblems are the reference problems matching the canned scenarios.
var DemoProblems = []Problem{
	{
		ID:      "conveyor",
		Title:   "Conveyor Control System",
		Problem: "Design a control system for a variable-speed conveyor that responds to upstream sensor input. The system needs to handle products of varying sizes and weights while maintaining consistent spacing.",
		Tags:    []string{"Controls", "Sensors", "Automation"},
	},
	{
		ID:      "extruder",
		Title:   "Extruder Quality Issue",
		Problem: "Why might an extruder be producing inconsistent wall thickness despite stable temperature and pressure settings? We've checked the die and it appears clean with no visible wear.",
		Tags:    []string{"Process", "Troubleshooting", "Quality"},
	},
	{
		ID:      "retrofit",
		Title:   "PLC vs Microcontroller",
		Problem: "Evaluate the tradeoffs between PLC and microcontroller for a packaging line retrofit. The line runs 16 hours/day, has 24 I/O points, and needs to communicate with an existing SCADA system.",
		Tags:    []string{"Architecture", "Integration", "Cost"},
	},
}
