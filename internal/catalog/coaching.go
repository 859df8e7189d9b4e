package catalog

// Coaching is study guidance shown next to a domain's readiness.
type Coaching struct {
	Tip         string
	Pitfalls    []string
	WhatTesting string
}

var coaching = map[DomainID]Coaching{
	DomainAirway: {
		Tip:         "If mental status worsens, airway priorities outrank history collection.",
		Pitfalls:    []string{"Treating complaint before oxygenation", "Delayed ventilatory support"},
		WhatTesting: "Can you protect oxygenation and ventilation under pressure?",
	},
	DomainCardiology: {
		Tip:         "Unstable perfusion changes everything: stabilize first, explain later.",
		Pitfalls:    []string{"Chasing diagnostics before perfusion", "Ignoring hypotension trend"},
		WhatTesting: "Can you identify unstable rhythm states and prioritize hemodynamics?",
	},
	DomainTrauma: {
		Tip:         "Hemorrhage and shock control should happen before detailed injury cataloging.",
		Pitfalls:    []string{"Delayed bleeding control", "Transport delay for low-value interventions"},
		WhatTesting: "Can you sequence trauma care for survivability?",
	},
	DomainMedical: {
		Tip:         "Altered mental status is a high-priority finding even when vitals seem acceptable.",
		Pitfalls:    []string{"Symptom treatment before stabilization", "Ignoring trend deterioration"},
		WhatTesting: "Can you reason through broad medical differentials safely?",
	},
	DomainOps: {
		Tip:         "Scene safety and resource control are patient care decisions.",
		Pitfalls:    []string{"Entering unsafe scenes", "Skipping ICS/triage structure"},
		WhatTesting: "Can you protect patient and crew while coordinating operations?",
	},
	DomainPharm: {
		Tip:         "Medication clues are risk signals; use them to avoid contraindicated steps.",
		Pitfalls:    []string{"Missing medication implications", "Unsafe intervention despite contraindications"},
		WhatTesting: "Can you connect meds to assessment risk and treatment safety?",
	},
}

// CoachingFor returns the guidance for a domain.
func CoachingFor(id DomainID) (Coaching, bool) {
	c, ok := coaching[id]
	return c, ok
}
