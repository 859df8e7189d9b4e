package catalog

import "github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/diagnosis"

// DomainID identifies a knowledge domain.
type DomainID string

const (
	DomainAirway     DomainID = "airway"
	DomainCardiology DomainID = "cardiology"
	DomainTrauma     DomainID = "trauma"
	DomainMedical    DomainID = "medical"
	DomainPharm      DomainID = "pharm"
	DomainOps        DomainID = "ops"
)

// Domain is a knowledge category used for weighting and gating.
type Domain struct {
	ID   DomainID
	Name string
}

var domains = []Domain{
	{DomainAirway, "Airway, Respiration & Ventilation"},
	{DomainCardiology, "Cardiology & Resuscitation"},
	{DomainTrauma, "Trauma"},
	{DomainMedical, "Medical / Obstetrics / Gynecology"},
	{DomainPharm, "Pharmacology"},
	{DomainOps, "EMS Operations"},
}

// AllDomains returns all domains in display order.
func AllDomains() []Domain {
	out := make([]Domain, len(domains))
	copy(out, domains)
	return out
}

// IsDomain reports whether id names a known domain.
func IsDomain(id DomainID) bool {
	for _, d := range domains {
		if d.ID == id {
			return true
		}
	}
	return false
}

// DomainName returns the display name for a domain.
func DomainName(id DomainID) string {
	for _, d := range domains {
		if d.ID == id {
			return d.Name
		}
	}
	return string(id)
}

// District is a map region aggregating one domain's risk.
type District struct {
	Name   string
	Domain DomainID
}

var districts = []District{
	{"Downtown Core", DomainCardiology},
	{"Residential Areas", DomainMedical},
	{"Highways & Bridges", DomainTrauma},
	{"Industrial / Port", DomainOps},
	{"Beaches / Waterways", DomainAirway},
	{"Hospitals / Stations", DomainCardiology},
}

// AllDistricts returns the district→domain table in map order.
func AllDistricts() []District {
	out := make([]District, len(districts))
	copy(out, districts)
	return out
}

// IsDistrict reports whether name is a known district.
func IsDistrict(name string) bool {
	for _, d := range districts {
		if d.Name == name {
			return true
		}
	}
	return false
}

// KnownErrorType reports whether t belongs to the question error vocabulary.
func KnownErrorType(t diagnosis.ErrorType) bool {
	return diagnosis.Lookup(t) != nil
}
