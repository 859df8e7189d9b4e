package catalog

import "github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/diagnosis"

// Question is a read-only item from the static question bank.
type Question struct {
	ID               string              `json:"id" validate:"required"`
	Domain           DomainID            `json:"domain"`
	Difficulty       int                 `json:"difficulty" validate:"min=1,max=5"`
	ErrorType        diagnosis.ErrorType `json:"errorType"`
	Text             string              `json:"text"`
	Rationale        string              `json:"rationale"`
	ClinicalJudgment bool                `json:"clinicalJudgment"`
	Pediatric        bool                `json:"pediatric"`
	Options          []string            `json:"options" validate:"min=2,dive,required"`
	CorrectIndex     int                 `json:"correctIndex"`
}

// NodeType classifies a scenario node.
type NodeType string

const (
	NodeStandard      NodeType = "standard"
	NodeChain         NodeType = "chain"
	NodeBoss          NodeType = "boss"
	NodeCertification NodeType = "certification"
)

// PatientMix is the adult/pediatric share of a node's patients.
type PatientMix struct {
	Adult     float64 `json:"adult" validate:"gte=0,lte=1"`
	Pediatric float64 `json:"pediatric" validate:"gte=0,lte=1"`
}

// Prerequisites gate a node behind readiness and completed nodes.
type Prerequisites struct {
	MinReadiness     int      `json:"minReadiness" validate:"gte=0,lte=100"`
	CompletedNodeIDs []string `json:"completedNodes"`
}

// Rewards is the base reward for completing a node.
type Rewards struct {
	XP       int              `json:"xp" validate:"gte=0"`
	DomainXP map[DomainID]int `json:"domainXp"`
}

// Position places a node on the district map.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NodeDefinition is the static definition of a scenario node.
type NodeDefinition struct {
	ID               string        `json:"nodeId" validate:"required"`
	District         string        `json:"district"`
	PrimaryDomain    DomainID      `json:"primaryDomain"`
	SecondaryDomains []DomainID    `json:"secondaryDomains"`
	DifficultyTier   int           `json:"difficultyTier" validate:"min=1,max=5"`
	NodeType         NodeType      `json:"nodeType" validate:"oneof=standard chain boss certification"`
	PatientMix       PatientMix    `json:"patientMix"`
	EncounterLength  int           `json:"encounterLength" validate:"min=1"`
	Prerequisites    Prerequisites `json:"prerequisites"`
	Rewards          Rewards       `json:"rewards"`
	Position         Position      `json:"pos"`
}

// IsBoss reports whether the node carries stability across questions.
func (n NodeDefinition) IsBoss() bool {
	return n.NodeType == NodeBoss
}

// Domains returns the primary domain followed by the secondaries.
func (n NodeDefinition) Domains() []DomainID {
	out := make([]DomainID, 0, 1+len(n.SecondaryDomains))
	out = append(out, n.PrimaryDomain)
	return append(out, n.SecondaryDomains...)
}
