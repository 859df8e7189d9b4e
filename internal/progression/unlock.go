package progression

import (
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/profile"
)

// UnlockState is derived on every read and never stored.
type UnlockState string

const (
	StateCompleted UnlockState = "completed"
	StateAvailable UnlockState = "available"
	StateLocked    UnlockState = "locked"
)

// StateOf derives the unlock state of n. A recovery grant overrides the
// readiness and prerequisite gates.
func StateOf(n catalog.NodeDefinition, p *profile.Profile, readiness int) UnlockState {
	if p.IsCompleted(n.ID) {
		return StateCompleted
	}
	if p.InRecovery(n.ID) {
		return StateAvailable
	}
	if readiness < n.Prerequisites.MinReadiness {
		return StateLocked
	}
	for _, id := range n.Prerequisites.CompletedNodeIDs {
		if !p.IsCompleted(id) {
			return StateLocked
		}
	}
	return StateAvailable
}

// Available returns the ids of playable nodes in bank order.
func (g *Graph) Available(p *profile.Profile, readiness int) []string {
	var out []string
	for _, n := range g.nodes {
		if StateOf(n, p, readiness) == StateAvailable {
			out = append(out, n.ID)
		}
	}
	return out
}

// RecoveryCandidate returns the first standard node in district that is
// neither completed nor already granted.
func (g *Graph) RecoveryCandidate(district string, p *profile.Profile) (string, bool) {
	for _, n := range g.InDistrict(district) {
		if n.NodeType == catalog.NodeStandard && !p.IsCompleted(n.ID) && !p.InRecovery(n.ID) {
			return n.ID, true
		}
	}
	return "", false
}
