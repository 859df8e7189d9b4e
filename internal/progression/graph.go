// Package progression holds the scenario node graph: prerequisite
// validation, unlock state and the enriched per-node view.
package progression

import (
	"fmt"
	"slices"
	"sort"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
)

// Graph is the node DAG with precomputed indices.
type Graph struct {
	nodes      []catalog.NodeDefinition
	byID       map[string]*catalog.NodeDefinition
	dependents map[string][]string
	topoOrder  []catalog.NodeDefinition
}

// New validates nodes and builds the graph. Validation failures list every
// problem found.
func New(nodes []catalog.NodeDefinition) (*Graph, error) {
	if err := validateNodes(nodes); err != nil {
		return nil, err
	}
	return buildGraph(slices.Clone(nodes)), nil
}

// buildGraph constructs indices including topological order (Kahn's
// algorithm, ties broken by id).
func buildGraph(nodes []catalog.NodeDefinition) *Graph {
	gr := &Graph{
		nodes:      nodes,
		byID:       make(map[string]*catalog.NodeDefinition, len(nodes)),
		dependents: make(map[string][]string),
	}
	for i := range gr.nodes {
		gr.byID[gr.nodes[i].ID] = &gr.nodes[i]
	}
	for i := range gr.nodes {
		for _, prereqID := range gr.nodes[i].Prerequisites.CompletedNodeIDs {
			gr.dependents[prereqID] = append(gr.dependents[prereqID], gr.nodes[i].ID)
		}
	}

	inDegree := make(map[string]int, len(nodes))
	for i := range nodes {
		inDegree[nodes[i].ID] = len(nodes[i].Prerequisites.CompletedNodeIDs)
	}
	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		gr.topoOrder = append(gr.topoOrder, *gr.byID[id])

		deps := slices.Clone(gr.dependents[id])
		sort.Strings(deps)
		for _, depID := range deps {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}
	return gr
}

// Node returns a node by id.
func (g *Graph) Node(id string) (catalog.NodeDefinition, error) {
	n, ok := g.byID[id]
	if !ok {
		return catalog.NodeDefinition{}, fmt.Errorf("node not found: %q", id)
	}
	return *n, nil
}

// Nodes returns all nodes in bank order.
func (g *Graph) Nodes() []catalog.NodeDefinition {
	return slices.Clone(g.nodes)
}

// TopologicalOrder returns all nodes with every prerequisite before its
// dependents.
func (g *Graph) TopologicalOrder() []catalog.NodeDefinition {
	return slices.Clone(g.topoOrder)
}

// Dependents returns nodes that directly list id as a prerequisite.
func (g *Graph) Dependents(id string) []catalog.NodeDefinition {
	var out []catalog.NodeDefinition
	for _, depID := range g.dependents[id] {
		if n, ok := g.byID[depID]; ok {
			out = append(out, *n)
		}
	}
	return out
}

// InDistrict returns the nodes of a district in bank order.
func (g *Graph) InDistrict(district string) []catalog.NodeDefinition {
	var out []catalog.NodeDefinition
	for _, n := range g.nodes {
		if n.District == district {
			out = append(out, n)
		}
	}
	return out
}
