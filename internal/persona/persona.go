// Package persona defines the fixed set of participants in an orchestration
// run: the conductor and the four specialist personas it can consult.
// Persona data is read-only reference data and is never mutated at runtime.
package persona

// ID identifies a participant.
type ID string

const (
	Conductor  ID = "conductor"
	Controls   ID = "controls"
	Process    ID = "process"
	Systems    ID = "systems"
	Pragmatist ID = "pragmatist"
)

// Persona describes a participant: who it is and what it knows.
type Persona struct {
	ID        ID       `json:"id"`
	Name      string   `json:"name"`
	Title     string   `json:"title"`
	Expertise []string `json:"expertise"`
}

// personas holds the full participant table, keyed by ID.
var personas = map[ID]Persona{
	Conductor: {
		ID:        Conductor,
		Name:      "Conductor",
		Title:     "Orchestration Lead",
		Expertise: []string{"Problem Decomposition", "Expert Routing", "Synthesis", "Conflict Resolution"},
	},
	Controls: {
		ID:        Controls,
		Name:      "Controls Engineer",
		Title:     "Automation Specialist",
		Expertise: []string{"PLC Programming", "Sensor Integration", "Feedback Loops", "Safety Systems"},
	},
	Process: {
		ID:        Process,
		Name:      "Process Engineer",
		Title:     "Manufacturing Expert",
		Expertise: []string{"Material Behavior", "Machine Dynamics", "Quality Systems", "Process Optimization"},
	},
	Systems: {
		ID:        Systems,
		Name:      "Systems Architect",
		Title:     "Integration Specialist",
		Expertise: []string{"System Design", "Communication Protocols", "Scalability", "Standards Compliance"},
	},
	Pragmatist: {
		ID:        Pragmatist,
		Name:      "Pragmatist",
		Title:     "Reality Check",
		Expertise: []string{"Cost Analysis", "Timeline Reality", "Risk Assessment", "Implementation Planning"},
	},
}

// SpecialistIDs is the ordered list of consultable specialists. Selection and
// chunk interleaving always follow this order.
var SpecialistIDs = []ID{Controls, Process, Systems, Pragmatist}

// Get returns the persona for the given ID.
// The second return value is false for unknown IDs.
func Get(id ID) (Persona, bool) {
	p, ok := personas[id]
	return p, ok
}

// All returns every persona, conductor first, then specialists in order.
func All() []Persona {
	out := make([]Persona, 0, len(personas))
	out = append(out, personas[Conductor])
	for _, id := range SpecialistIDs {
		out = append(out, personas[id])
	}
	return out
}

// Known reports whether id names a defined participant.
func Known(id ID) bool {
	_, ok := personas[id]
	return ok
}
