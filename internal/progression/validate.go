package progression

import (
	"fmt"
	"strings"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
)

// validateNodes performs all structural checks on the node bank.
func validateNodes(nodes []catalog.NodeDefinition) error {
	var errs []string

	idSet := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if idSet[n.ID] {
			errs = append(errs, fmt.Sprintf("duplicate node ID: %q", n.ID))
		}
		idSet[n.ID] = true
	}

	for _, n := range nodes {
		for _, prereqID := range n.Prerequisites.CompletedNodeIDs {
			switch {
			case prereqID == n.ID:
				errs = append(errs, fmt.Sprintf("node %q lists itself as a prerequisite", n.ID))
			case !idSet[prereqID]:
				errs = append(errs, fmt.Sprintf("node %q references nonexistent prerequisite %q", n.ID, prereqID))
			}
		}
		if !catalog.IsDistrict(n.District) {
			errs = append(errs, fmt.Sprintf("node %q: unknown district %q", n.ID, n.District))
		}
		for _, d := range n.Domains() {
			if !catalog.IsDomain(d) {
				errs = append(errs, fmt.Sprintf("node %q: unknown domain %q", n.ID, d))
			}
		}
		if n.DifficultyTier < 1 || n.DifficultyTier > 5 {
			errs = append(errs, fmt.Sprintf("node %q: DifficultyTier must be in [1, 5], got %d", n.ID, n.DifficultyTier))
		}
		if n.EncounterLength < 1 {
			errs = append(errs, fmt.Sprintf("node %q: EncounterLength must be >= 1, got %d", n.ID, n.EncounterLength))
		}
		if mr := n.Prerequisites.MinReadiness; mr < 0 || mr > 100 {
			errs = append(errs, fmt.Sprintf("node %q: MinReadiness must be in [0, 100], got %d", n.ID, mr))
		}
		switch n.NodeType {
		case catalog.NodeStandard, catalog.NodeChain, catalog.NodeBoss, catalog.NodeCertification:
		default:
			errs = append(errs, fmt.Sprintf("node %q: unknown node type %q", n.ID, n.NodeType))
		}
		if pm := n.PatientMix; pm.Pediatric < 0 || pm.Pediatric > 1 || pm.Adult < 0 || pm.Adult > 1 {
			errs = append(errs, fmt.Sprintf("node %q: patient mix shares must be in [0, 1]", n.ID))
		}
	}

	// Check for cycles using Kahn's algorithm
	inDegree := make(map[string]int, len(nodes))
	adjList := make(map[string][]string)
	for _, n := range nodes {
		inDegree[n.ID] = len(n.Prerequisites.CompletedNodeIDs)
		for _, prereqID := range n.Prerequisites.CompletedNodeIDs {
			adjList[prereqID] = append(adjList[prereqID], n.ID)
		}
	}
	var queue []string
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}
	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, depID := range adjList[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}
	if visited < len(idSet) {
		var cycleNodes []string
		for _, n := range nodes {
			if inDegree[n.ID] > 0 {
				cycleNodes = append(cycleNodes, n.ID)
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving nodes: %s", strings.Join(cycleNodes, ", ")))
	}

	hasRoot := false
	for _, n := range nodes {
		if len(n.Prerequisites.CompletedNodeIDs) == 0 {
			hasRoot = true
			break
		}
	}
	if !hasRoot {
		errs = append(errs, "no root nodes found (at least one node must have no prerequisites)")
	}

	if len(errs) > 0 {
		return fmt.Errorf("node graph validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
