package graphtext

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// Range is one line of an inexact-range file: the support interval of arc
// (U,V). Min and Max are printed as floats, as downstream tools expect.
type Range struct {
	U, V     int
	Min, Max float64
}

// errWriter keeps the first write error so callers can format freely and
// check once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) header(index int) {
	ew.printf("# graph %d\n", index)
}

// WriteGraph writes g as a graph record: header, node count, one
// "u v weight" line per edge in slice order. Robust-weight files use this
// format.
func WriteGraph(w io.Writer, index int, g Graph) error {
	ew := &errWriter{w: w}
	ew.header(index)
	ew.printf("%d\n", g.N)
	for _, e := range g.Edges {
		ew.printf("%d %d %s\n", e.From, e.To, FormatFloat(e.Weight))
	}

	return ew.err
}

// WriteRanges writes an inexact-range record: header, node count, one
// "u v min max" line per range.
func WriteRanges(w io.Writer, index, n int, ranges []Range) error {
	ew := &errWriter{w: w}
	ew.header(index)
	ew.printf("%d\n", n)
	for _, r := range ranges {
		ew.printf("%d %d %s %s\n", r.U, r.V, FormatFloat(r.Min), FormatFloat(r.Max))
	}

	return ew.err
}

// WriteDecomposition writes a decomposition record without a node-count line.
//
// Each path is written as its weight followed by the set of distinct nodes
// its edges touch, ascending. This is a lossy node-set projection, not the
// ordered walk: it is the format downstream tools expect. Every node is
// preceded by two spaces.
func WriteDecomposition(w io.Writer, index int, ps PathSet) error {
	ew := &errWriter{w: w}
	ew.header(index)
	writePaths(ew, ps)

	return ew.err
}

// WriteDecompositionWithCount is WriteDecomposition with the declared node
// count on the line after the header.
func WriteDecompositionWithCount(w io.Writer, index, n int, ps PathSet) error {
	ew := &errWriter{w: w}
	ew.header(index)
	ew.printf("%d\n", n)
	writePaths(ew, ps)

	return ew.err
}

func writePaths(ew *errWriter, ps PathSet) {
	for k := range ps.Paths {
		nodes := treeset.NewWithIntComparator()
		for _, a := range ps.EdgeSequence(k) {
			nodes.Add(a.From, a.To)
		}
		var b strings.Builder
		b.WriteString(FormatFloat(ps.Weights[k]))
		for _, v := range nodes.Values() {
			b.WriteString("  ")
			b.WriteString(strconv.Itoa(v.(int)))
		}
		b.WriteByte('\n')
		ew.printf("%s", b.String())
	}
}

// WriteMetrics writes a metric record: header and the values space-separated
// on one line ("M1 M2 M3", optionally followed by Mextra).
func WriteMetrics(w io.Writer, index int, values ...int) error {
	ew := &errWriter{w: w}
	ew.header(index)
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	ew.printf("%s\n", strings.Join(parts, " "))

	return ew.err
}

// WriteSummary writes a stats record: header, then "sources", "sinks" and
// "max_flow" lines. An empty node list leaves only the label.
func WriteSummary(w io.Writer, index int, s Summary) error {
	ew := &errWriter{w: w}
	ew.header(index)
	ew.printf("sources:%s\n", joinInts(s.Sources))
	ew.printf("sinks:%s\n", joinInts(s.Sinks))
	ew.printf("max_flow: %s\n", FormatFloat(s.MaxFlow))

	return ew.err
}

// joinInts renders each value preceded by one space.
func joinInts(vs []int) string {
	var b strings.Builder
	for _, v := range vs {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(v))
	}

	return b.String()
}

// FormatFloat renders f the way the solver tool chain prints floats: shortest
// round-trip digits, always with a fractional part ("5.0", "0.5", "12.25").
// Magnitudes outside [1e-4, 1e16) use exponent notation ("1e-05", "1e+16").
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
