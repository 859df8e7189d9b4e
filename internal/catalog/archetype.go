package catalog

import "fmt"

// DefaultArchetypeID is the archetype assigned to new profiles.
const DefaultArchetypeID = "transport"

// Archetype is a learner role that shapes XP gain and stability tolerance.
type Archetype struct {
	ID                 string
	Name               string
	Description        string
	XPModifiers        map[DomainID]float64
	StabilityTolerance float64
}

// XPModifier returns the XP multiplier for a domain (1 when unlisted).
func (a Archetype) XPModifier(d DomainID) float64 {
	if m, ok := a.XPModifiers[d]; ok {
		return m
	}
	return 1
}

var archetypes = []Archetype{
	{
		ID:          "firefighter",
		Name:        "Firefighter Paramedic",
		Description: "+10% EMS Ops / Trauma XP, -5% Medical XP",
		XPModifiers: map[DomainID]float64{
			DomainOps:     1.1,
			DomainTrauma:  1.1,
			DomainMedical: 0.95,
		},
		StabilityTolerance: 1,
	},
	{
		ID:          "transport",
		Name:        "Transport Paramedic",
		Description: "+10% Medical/Cardiology XP, -5% EMS Ops XP",
		XPModifiers: map[DomainID]float64{
			DomainMedical:    1.1,
			DomainCardiology: 1.1,
			DomainOps:        0.95,
		},
		StabilityTolerance: 1,
	},
	{
		ID:          "critical-care",
		Name:        "Critical Care Paramedic",
		Description: "+10% Airway/Cardio XP, lower stability tolerance",
		XPModifiers: map[DomainID]float64{
			DomainAirway:     1.1,
			DomainCardiology: 1.1,
		},
		StabilityTolerance: 0.9,
	},
}

// Archetypes returns all archetypes.
func Archetypes() []Archetype {
	out := make([]Archetype, len(archetypes))
	copy(out, archetypes)
	return out
}

// GetArchetype returns an archetype by ID, or error if not found.
func GetArchetype(id string) (Archetype, error) {
	for _, a := range archetypes {
		if a.ID == id {
			return a, nil
		}
	}
	return Archetype{}, fmt.Errorf("archetype not found: %q", id)
}

// ArchetypeOrDefault resolves id, falling back to the default archetype.
func ArchetypeOrDefault(id string) Archetype {
	if a, err := GetArchetype(id); err == nil {
		return a
	}
	a, _ := GetArchetype(DefaultArchetypeID)
	return a
}
