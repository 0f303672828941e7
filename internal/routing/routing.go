// Package routing decides which specialists a problem is sent to.
// Classification is a pure keyword match over the problem text: deterministic,
// side-effect free, and total — every problem yields a decision.
package routing

import (
	"fmt"
	"strings"

	"github.com/jkaninda/maestro/internal/persona"
)

// Decision is the routing outcome for a single orchestration run.
// It is created once per run and never modified afterward.
type Decision struct {
	SelectedParticipants []persona.ID `json:"selected_participants"`
	Reasoning            string       `json:"reasoning"`
	Category             string       `json:"category"`
}

// specialistRule maps a specialist to its trigger keywords and the reason
// fragment appended when it matches.
type specialistRule struct {
	id       persona.ID
	keywords []string
	reason   string
}

// Rules are evaluated in specialist order so the selection order is stable.
var specialistRules = []specialistRule{
	{
		id:       persona.Controls,
		keywords: []string{"plc", "sensor", "control", "automation", "vfd", "drive", "safety", "interlock", "encoder", "actuator"},
		reason:   "control systems and automation expertise needed",
	},
	{
		id:       persona.Process,
		keywords: []string{"extru", "quality", "material", "temperature", "pressure", "thickness", "process", "molding", "viscosity"},
		reason:   "process and material knowledge required",
	},
	{
		id:       persona.Systems,
		keywords: []string{"scada", "integration", "communication", "protocol", "architecture", "network", "database", "interface"},
		reason:   "integration and architecture decisions involved",
	},
	{
		id:       persona.Pragmatist,
		keywords: []string{"cost", "budget", "timeline", "tradeoff", "compare", "evaluate", "retrofit", "upgrade", "vs"},
		reason:   "practical constraints and trade-offs to evaluate",
	},
}

// categoryRule maps intent keywords to a problem category. First match wins.
type categoryRule struct {
	keywords []string
	category string
}

var categoryRules = []categoryRule{
	{keywords: []string{"design", "new"}, category: "Design & Implementation"},
	{keywords: []string{"why", "troubleshoot", "issue"}, category: "Troubleshooting"},
	{keywords: []string{"evaluate", "compare", "tradeoff"}, category: "Evaluation & Decision"},
	{keywords: []string{"optimize", "improve"}, category: "Optimization"},
}

const defaultCategory = "General Engineering"

// Classify maps a problem statement to a routing decision.
//
// Each specialist whose keyword set intersects the problem (case-insensitive
// substring match) is selected. With no matches, all specialists are engaged
// for a comprehensive pass. When more than one specialist is selected and the
// pragmatist is not among them, it is force-included: every multi-specialist
// decision gets a reality check.
func Classify(problem string) Decision {
	lower := strings.ToLower(problem)

	var selected []persona.ID
	var reasons []string

	for _, rule := range specialistRules {
		if containsAny(lower, rule.keywords) {
			selected = append(selected, rule.id)
			reasons = append(reasons, rule.reason)
		}
	}

	if len(selected) == 0 {
		selected = append(selected, persona.SpecialistIDs...)
		reasons = append(reasons, "comprehensive analysis needed - engaging all specialists")
	}

	if len(selected) > 1 && !contains(selected, persona.Pragmatist) {
		selected = append(selected, persona.Pragmatist)
		reasons = append(reasons, "adding practical reality check")
	}

	return Decision{
		SelectedParticipants: selected,
		Reasoning:            fmt.Sprintf("Based on problem analysis: %s.", strings.Join(reasons, "; ")),
		Category:             categorize(lower),
	}
}

// categorize derives the problem category from intent keywords,
// tested in a fixed order.
func categorize(lower string) string {
	for _, rule := range categoryRules {
		if containsAny(lower, rule.keywords) {
			return rule.category
		}
	}
	return defaultCategory
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func contains(ids []persona.ID, id persona.ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
