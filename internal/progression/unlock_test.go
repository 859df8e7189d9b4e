package progression

import (
	"slices"
	"testing"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/profile"
)

func TestStateOf(t *testing.T) {
	g := defaultGraph(t)
	p := profile.Default("p")

	dt, _ := g.Node("DT-CARD-01")
	res, _ := g.Node("RES-MED-01")
	if got := StateOf(dt, p, 0); got != StateAvailable {
		t.Errorf("DT-CARD-01 at readiness 0 = %s, want available", got)
	}
	if got := StateOf(res, p, 9); got != StateLocked {
		t.Errorf("RES-MED-01 at readiness 9 = %s, want locked", got)
	}
	if got := StateOf(res, p, 10); got != StateAvailable {
		t.Errorf("RES-MED-01 at readiness 10 = %s, want available", got)
	}

	p.MarkCompleted("DT-CARD-01")
	if got := StateOf(dt, p, 0); got != StateCompleted {
		t.Errorf("completed node = %s", got)
	}
}

func TestAvailable(t *testing.T) {
	g := defaultGraph(t)
	p := profile.Default("p")
	p.MarkCompleted("DT-CARD-01")

	got := g.Available(p, 30)
	want := []string{"RES-MED-01", "HW-TRA-01", "PORT-OPS-01"}
	if !slices.Equal(got, want) {
		t.Errorf("Available = %v, want %v", got, want)
	}
}

func TestRecoveryOverridesGates(t *testing.T) {
	g := defaultGraph(t)
	p := profile.Default("p")
	beach, _ := g.Node("BEACH-AIR-01")

	if StateOf(beach, p, 0) != StateLocked {
		t.Fatal("BEACH-AIR-01 should start locked")
	}
	p.GrantRecovery("BEACH-AIR-01")
	if got := StateOf(beach, p, 0); got != StateAvailable {
		t.Errorf("with recovery = %s, want available", got)
	}
	p.MarkCompleted("BEACH-AIR-01")
	if got := StateOf(beach, p, 0); got != StateCompleted {
		t.Errorf("after completion = %s, want completed", got)
	}
}

func TestRecoveryCandidate(t *testing.T) {
	g := defaultGraph(t)
	p := profile.Default("p")

	id, ok := g.RecoveryCandidate("Highways & Bridges", p)
	if !ok || id != "HW-TRA-01" {
		t.Errorf("candidate = %q,%v, want HW-TRA-01", id, ok)
	}

	p.GrantRecovery("HW-TRA-01")
	if _, ok := g.RecoveryCandidate("Highways & Bridges", p); ok {
		t.Error("already granted node should not be offered again")
	}

	p.MarkCompleted("DT-CARD-01")
	if _, ok := g.RecoveryCandidate("Downtown Core", p); ok {
		t.Error("chain nodes are never recovery candidates")
	}
	if _, ok := g.RecoveryCandidate("Hospitals / Stations", p); ok {
		t.Error("district without standard nodes has no candidate")
	}
}
