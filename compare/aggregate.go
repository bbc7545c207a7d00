package compare

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/flowdecomp/graphtext"
)

// Triple is one aggregated arc: U→V carrying Weight.
type Triple struct {
	U, V   int
	Weight float64
}

// less orders triples by (U, V, Weight).
func (t Triple) less(o Triple) bool {
	if t.U != o.U {
		return t.U < o.U
	}
	if t.V != o.V {
		return t.V < o.V
	}

	return t.Weight < o.Weight
}

// AggregatedGraph is the superposition of a path set: a directed graph in
// which each arc carries the sum of the weights of every traversal of it.
// A path that traverses an arc twice contributes its weight twice.
type AggregatedGraph struct {
	g *simple.WeightedDirectedGraph

	// loops holds u→u weights; simple graphs refuse self edges.
	loops map[int64]float64
}

// Aggregate builds the AggregatedGraph of ps.
//
// Steps:
//  1. Start from an empty weighted directed graph (absent weight 0).
//  2. For every path k and every arc (u,v) of its edge sequence, add
//     Weights[k] to the arc, creating it on first sight.
//
// Complexity: O(L) map operations for total path length L.
func Aggregate(ps graphtext.PathSet) *AggregatedGraph {
	ag := &AggregatedGraph{
		g:     simple.NewWeightedDirectedGraph(0, 0),
		loops: make(map[int64]float64),
	}
	for k := range ps.Paths {
		w := ps.Weights[k]
		for _, a := range ps.EdgeSequence(k) {
			ag.add(int64(a.From), int64(a.To), w)
		}
	}

	return ag
}

func (ag *AggregatedGraph) add(u, v int64, w float64) {
	if u == v {
		ag.loops[u] += w
		return
	}
	if e := ag.g.WeightedEdge(u, v); e != nil {
		w += e.Weight()
	}
	ag.g.SetWeightedEdge(ag.g.NewWeightedEdge(simple.Node(u), simple.Node(v), w))
}

// Weight returns the aggregated weight of u→v and whether the arc exists.
func (ag *AggregatedGraph) Weight(u, v int) (float64, bool) {
	if u == v {
		w, ok := ag.loops[int64(u)]
		return w, ok
	}
	e := ag.g.WeightedEdge(int64(u), int64(v))
	if e == nil {
		return 0, false
	}

	return e.Weight(), true
}

// Triples lists every aggregated arc sorted by (U, V, Weight).
func (ag *AggregatedGraph) Triples() []Triple {
	var out []Triple
	edges := ag.g.WeightedEdges()
	for edges.Next() {
		e := edges.WeightedEdge()
		out = append(out, Triple{U: int(e.From().ID()), V: int(e.To().ID()), Weight: e.Weight()})
	}
	for u, w := range ag.loops {
		out = append(out, Triple{U: int(u), V: int(u), Weight: w})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })

	return out
}

// Equal reports whether both graphs have element-wise identical sorted triples.
func (ag *AggregatedGraph) Equal(other *AggregatedGraph) bool {
	a, b := ag.Triples(), other.Triples()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
