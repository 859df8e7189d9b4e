package progression

import (
	"strings"
	"testing"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
)

func defaultGraph(t *testing.T) *Graph {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	g, err := New(cat.Nodes)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func node(id string, prereqs ...string) catalog.NodeDefinition {
	return catalog.NodeDefinition{
		ID:              id,
		District:        "Downtown Core",
		PrimaryDomain:   catalog.DomainCardiology,
		DifficultyTier:  1,
		NodeType:        catalog.NodeStandard,
		EncounterLength: 1,
		Prerequisites:   catalog.Prerequisites{CompletedNodeIDs: prereqs},
	}
}

func TestNew_DefaultBankIsValid(t *testing.T) {
	g := defaultGraph(t)
	if len(g.Nodes()) != 12 {
		t.Errorf("Nodes() = %d, want 12", len(g.Nodes()))
	}
}

func TestTopologicalOrder(t *testing.T) {
	g := defaultGraph(t)
	order := g.TopologicalOrder()
	if len(order) != 12 {
		t.Fatalf("TopologicalOrder len = %d, want 12", len(order))
	}
	pos := make(map[string]int, len(order))
	for i, n := range order {
		pos[n.ID] = i
	}
	for _, n := range order {
		for _, p := range n.Prerequisites.CompletedNodeIDs {
			if pos[p] >= pos[n.ID] {
				t.Errorf("prerequisite %s at %d does not precede %s at %d", p, pos[p], n.ID, pos[n.ID])
			}
		}
	}
	if order[0].ID != "DT-CARD-01" {
		t.Errorf("first = %s, want DT-CARD-01", order[0].ID)
	}
	if order[len(order)-1].ID != "HOSP-CERT-01" {
		t.Errorf("last = %s, want HOSP-CERT-01", order[len(order)-1].ID)
	}
}

func TestNodeAndDependents(t *testing.T) {
	g := defaultGraph(t)
	n, err := g.Node("HW-TRA-03")
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	if n.District != "Highways & Bridges" {
		t.Errorf("District = %q", n.District)
	}
	if _, err := g.Node("NOPE"); err == nil {
		t.Error("expected error for unknown node")
	}
	if deps := g.Dependents("DT-CARD-01"); len(deps) != 4 {
		t.Errorf("Dependents(DT-CARD-01) = %d, want 4", len(deps))
	}
	if got := g.InDistrict("Hospitals / Stations"); len(got) != 2 || got[0].ID != "HOSP-BOSS-01" {
		t.Errorf("InDistrict = %v", got)
	}
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name  string
		nodes []catalog.NodeDefinition
		want  string
	}{
		{"cycle", []catalog.NodeDefinition{node("R"), node("A", "B"), node("B", "A")}, "cycle detected involving nodes: A, B"},
		{"dangling", []catalog.NodeDefinition{node("R"), node("A", "GHOST")}, `nonexistent prerequisite "GHOST"`},
		{"self", []catalog.NodeDefinition{node("R"), node("A", "A")}, "lists itself"},
		{"duplicate", []catalog.NodeDefinition{node("R"), node("R")}, `duplicate node ID: "R"`},
		{"no root", []catalog.NodeDefinition{node("A", "B"), node("B", "A")}, "no root nodes"},
		{"district", []catalog.NodeDefinition{func() catalog.NodeDefinition { n := node("R"); n.District = "Moon"; return n }()}, `unknown district "Moon"`},
		{"domain", []catalog.NodeDefinition{func() catalog.NodeDefinition {
			n := node("R")
			n.SecondaryDomains = []catalog.DomainID{"astro"}
			return n
		}()}, `unknown domain "astro"`},
		{"tier", []catalog.NodeDefinition{func() catalog.NodeDefinition { n := node("R"); n.DifficultyTier = 6; return n }()}, "DifficultyTier"},
		{"length", []catalog.NodeDefinition{func() catalog.NodeDefinition { n := node("R"); n.EncounterLength = 0; return n }()}, "EncounterLength"},
		{"readiness", []catalog.NodeDefinition{func() catalog.NodeDefinition { n := node("R"); n.Prerequisites.MinReadiness = 101; return n }()}, "MinReadiness"},
		{"type", []catalog.NodeDefinition{func() catalog.NodeDefinition { n := node("R"); n.NodeType = "raid"; return n }()}, `unknown node type "raid"`},
		{"mix", []catalog.NodeDefinition{func() catalog.NodeDefinition { n := node("R"); n.PatientMix.Pediatric = 1.5; return n }()}, "patient mix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.nodes)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}
