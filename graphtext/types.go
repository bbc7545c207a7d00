package graphtext

import "sort"

// Arc is a directed node pair (From→To). It identifies an edge regardless of
// weight and is comparable, so it can key maps directly.
type Arc struct {
	From int
	To   int
}

// Less orders arcs lexicographically by (From, To).
func (a Arc) Less(b Arc) bool {
	if a.From != b.From {
		return a.From < b.From
	}

	return a.To < b.To
}

// Edge is one weighted edge line of a graph record.
type Edge struct {
	From   int
	To     int
	Weight float64
}

// Arc drops the weight.
func (e Edge) Arc() Arc { return Arc{From: e.From, To: e.To} }

// Graph is a flow network: a declared node count and an ordered edge list.
// Parallel edges between the same pair are allowed and kept in file order.
type Graph struct {
	// N is the node count declared on the record's first line.
	N int

	// Edges in file order.
	Edges []Edge
}

// Arcs returns the distinct arcs of g sorted by (From, To).
func (g Graph) Arcs() []Arc {
	seen := make(map[Arc]struct{}, len(g.Edges))
	out := make([]Arc, 0, len(g.Edges))
	for _, e := range g.Edges {
		a := e.Arc()
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	return out
}

// Summary describes the shape of a flow network.
//
//   - Sources: nodes with in-degree 0 (and at least one edge), ascending.
//   - Sinks:   nodes with out-degree 0 (and at least one edge), ascending.
//   - MaxFlow: the largest single edge weight, or -1 when there are no edges.
type Summary struct {
	Sources []int
	Sinks   []int
	MaxFlow float64
}

// Summary computes sources, sinks and the maximum edge flow of g.
// Complexity: O(E + V log V).
func (g Graph) Summary() Summary {
	in := make(map[int]int)
	out := make(map[int]int)
	s := Summary{MaxFlow: -1}
	for _, e := range g.Edges {
		out[e.From]++
		in[e.To]++
		if _, ok := in[e.From]; !ok {
			in[e.From] = 0
		}
		if _, ok := out[e.To]; !ok {
			out[e.To] = 0
		}
		if e.Weight > s.MaxFlow {
			s.MaxFlow = e.Weight
		}
	}
	for v, d := range in {
		if d == 0 {
			s.Sources = append(s.Sources, v)
		}
	}
	for v, d := range out {
		if d == 0 {
			s.Sinks = append(s.Sinks, v)
		}
	}
	sort.Ints(s.Sources)
	sort.Ints(s.Sinks)

	return s
}

// PathSet is a weighted decomposition: Paths[k] carries Weights[k].
// Invariant after parsing: len(Paths) == len(Weights).
type PathSet struct {
	Paths   [][]int
	Weights []float64
}

// Len returns the number of paths.
func (p PathSet) Len() int { return len(p.Paths) }

// EdgeSequence returns the ordered arcs of path k.
func (p PathSet) EdgeSequence(k int) []Arc {
	return ArcsOf(p.Paths[k])
}

// EdgeSequences returns the ordered arcs of every path, index-aligned with Paths.
func (p PathSet) EdgeSequences() [][]Arc {
	out := make([][]Arc, len(p.Paths))
	for k := range p.Paths {
		out[k] = p.EdgeSequence(k)
	}

	return out
}

// NodeCount returns the number of distinct nodes touched by any path.
func (p PathSet) NodeCount() int {
	nodes := make(map[int]struct{})
	for _, path := range p.Paths {
		for _, v := range path {
			nodes[v] = struct{}{}
		}
	}

	return len(nodes)
}

// ArcsOf zips a node walk into its consecutive arcs. A walk of m nodes has
// m-1 arcs; walks shorter than two nodes have none.
func ArcsOf(nodes []int) []Arc {
	if len(nodes) < 2 {
		return nil
	}
	arcs := make([]Arc, len(nodes)-1)
	for i := 0; i+1 < len(nodes); i++ {
		arcs[i] = Arc{From: nodes[i], To: nodes[i+1]}
	}

	return arcs
}

// SafePath is one "idx node_1 … node_m" line of a solver's safe-path output.
type SafePath struct {
	Index int
	Nodes []int
}

// SafePathList holds the safe paths a solver reported for one graph.
type SafePathList struct {
	Paths []SafePath
}

// EdgeSequences returns the arcs of every safe path in file order.
func (l SafePathList) EdgeSequences() [][]Arc {
	out := make([][]Arc, len(l.Paths))
	for i, sp := range l.Paths {
		out[i] = ArcsOf(sp.Nodes)
	}

	return out
}
