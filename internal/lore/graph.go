// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lore

import "github.com/pdiddy/lore-engine/pkg/types"

// Edge is one directed, typed relationship between two entries, carrying the
// declaration's attributes.
type Edge struct {
	Source      string             `json:"source"`
	Target      string             `json:"target"`
	Type        types.RelationType `json:"relationship_type"`
	Strength    float64            `json:"strength"`
	Description string             `json:"description,omitempty"`
}

// graph is a directed multigraph over entry IDs: multiple edges between the
// same ordered pair of nodes coexist independently. Targets of dangling
// relationships become nodes too, mirroring how declarations reference IDs
// that may not exist yet. Node insertion order is preserved so snapshots are
// identical across rebuilds of the same corpus.
type graph struct {
	order []string
	nodes map[string]bool
	succ  map[string][]Edge
	indeg map[string]int
}

func newGraph() *graph {
	return &graph{
		nodes: make(map[string]bool),
		succ:  make(map[string][]Edge),
		indeg: make(map[string]int),
	}
}

func (g *graph) addNode(id string) {
	if !g.nodes[id] {
		g.nodes[id] = true
		g.order = append(g.order, id)
	}
}

func (g *graph) addEdge(e Edge) {
	g.addNode(e.Source)
	g.addNode(e.Target)
	g.succ[e.Source] = append(g.succ[e.Source], e)
	g.indeg[e.Target]++
}

func (g *graph) hasNode(id string) bool { return g.nodes[id] }

// successors returns the outgoing edges of id in insertion order.
func (g *graph) successors(id string) []Edge { return g.succ[id] }

func (g *graph) inDegree(id string) int  { return g.indeg[id] }
func (g *graph) outDegree(id string) int { return len(g.succ[id]) }

func (g *graph) edgeCount() int {
	n := 0
	for _, edges := range g.succ {
		n += len(edges)
	}
	return n
}

// GraphView is a read-only snapshot of the relationship graph, suitable for
// export or visualization.
type GraphView struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

// GraphView returns the full relationship graph, or, when entry IDs are
// given, the induced subgraph over them: the named nodes that exist plus
// every edge whose endpoints are both named.
func (e *Engine) GraphView(entryIDs ...string) GraphView {
	_, g := e.snapshot()

	view := GraphView{Nodes: []string{}, Edges: []Edge{}}

	if len(entryIDs) == 0 {
		view.Nodes = append(view.Nodes, g.order...)
		for _, id := range g.order {
			view.Edges = append(view.Edges, g.succ[id]...)
		}
		return view
	}

	wanted := make(map[string]bool, len(entryIDs))
	for _, id := range entryIDs {
		wanted[id] = true
	}
	for _, id := range g.order {
		if !wanted[id] {
			continue
		}
		view.Nodes = append(view.Nodes, id)
		for _, edge := range g.succ[id] {
			if wanted[edge.Target] {
				view.Edges = append(view.Edges, edge)
			}
		}
	}
	return view
}
