package graphtext

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single input line. Path lines of large instances can
// be long, so the scanner default (64 KiB) is raised.
const maxLineBytes = 16 << 20

// rawLine is one input line with its 1-based position.
type rawLine struct {
	no     int
	fields []string // whitespace-split tokens; empty for blank lines
}

// rawRecord is everything between one marker line and the next.
type rawRecord struct {
	index  int
	marker int // line number of the marker
	lines  []rawLine
}

// splitRecords cuts r into records at marker lines.
//
// Steps:
//  1. Scan line by line, tracking 1-based line numbers.
//  2. A line whose first non-space byte is '#' opens a new record.
//  3. Blank lines before the first marker are ignored; any other text there
//     is ErrOrphanContent.
//  4. Every other line is tokenised with strings.Fields and attached to the
//     current record, blank lines included (grammars decide what blank means).
//
// Complexity: O(bytes) time, O(bytes) memory.
func splitRecords(r io.Reader) ([]rawRecord, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		records []rawRecord
		cur     *rawRecord
		lineNo  int
	)
	for sc.Scan() {
		lineNo++
		text := sc.Text()
		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, "#") {
			records = append(records, rawRecord{index: len(records), marker: lineNo})
			cur = &records[len(records)-1]
			continue
		}
		if cur == nil {
			if trimmed != "" {
				return nil, parseErrorf(-1, lineNo, ErrOrphanContent, "%q", trimmed)
			}
			continue
		}
		cur.lines = append(cur.lines, rawLine{no: lineNo, fields: strings.Fields(trimmed)})
	}
	if err := sc.Err(); err != nil {
		// The failing line is the one after the last complete one.
		return nil, &ParseError{
			Record: len(records) - 1,
			Line:   lineNo + 1,
			Err:    fmt.Errorf("%w: %w", ErrRead, err),
		}
	}

	return records, nil
}

// nonBlank filters out blank lines.
func nonBlank(lines []rawLine) []rawLine {
	out := lines[:0:0]
	for _, l := range lines {
		if len(l.fields) > 0 {
			out = append(out, l)
		}
	}

	return out
}

// ReadGraphs parses every graph record of r.
//
// Record grammar: first non-blank line "n", then "u v weight" lines.
// A record whose first line is not a single integer fails with
// ErrMissingNodeCount before any edge is looked at; a record with no edge
// lines fails with ErrNoEdges.
func ReadGraphs(r io.Reader) ([]Graph, error) {
	records, err := splitRecords(r)
	if err != nil {
		return nil, err
	}
	graphs := make([]Graph, 0, len(records))
	for _, rec := range records {
		g, err := parseGraph(rec)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, g)
	}

	return graphs, nil
}

func parseGraph(rec rawRecord) (Graph, error) {
	lines := nonBlank(rec.lines)
	if len(lines) == 0 {
		return Graph{}, parseErrorf(rec.index, rec.marker, ErrMissingNodeCount, "empty record")
	}

	// 1) Node count: exactly one non-negative integer token.
	head := lines[0]
	if len(head.fields) != 1 {
		return Graph{}, parseErrorf(rec.index, head.no, ErrMissingNodeCount,
			"expected a single node count, got %d fields", len(head.fields))
	}
	n, err := strconv.Atoi(head.fields[0])
	if err != nil || n < 0 {
		return Graph{}, parseErrorf(rec.index, head.no, ErrMissingNodeCount, "%q", head.fields[0])
	}

	// 2) Edge lines.
	if len(lines) == 1 {
		return Graph{}, parseErrorf(rec.index, head.no, ErrNoEdges, "")
	}
	g := Graph{N: n, Edges: make([]Edge, 0, len(lines)-1)}
	for _, l := range lines[1:] {
		if len(l.fields) != 3 {
			return Graph{}, parseErrorf(rec.index, l.no, ErrFieldCount,
				"edge line needs 3 fields, got %d", len(l.fields))
		}
		u, err := parseNode(rec.index, l.no, l.fields[0])
		if err != nil {
			return Graph{}, err
		}
		v, err := parseNode(rec.index, l.no, l.fields[1])
		if err != nil {
			return Graph{}, err
		}
		w, err := parseFloat(rec.index, l.no, l.fields[2])
		if err != nil {
			return Graph{}, err
		}
		if w < 0 {
			return Graph{}, parseErrorf(rec.index, l.no, ErrBadWeight, "edge weight %v", w)
		}
		g.Edges = append(g.Edges, Edge{From: u, To: v, Weight: w})
	}

	return g, nil
}

// ReadPathSets parses every path-set (ground truth or candidate) record of r.
//
// Each non-blank line is "weight node_1 … node_m" with weight > 0 and m ≥ 2.
// An empty record is a valid, empty PathSet.
func ReadPathSets(r io.Reader) ([]PathSet, error) {
	records, err := splitRecords(r)
	if err != nil {
		return nil, err
	}
	sets := make([]PathSet, 0, len(records))
	for _, rec := range records {
		ps, err := parsePathSet(rec)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ps)
	}

	return sets, nil
}

func parsePathSet(rec rawRecord) (PathSet, error) {
	lines := nonBlank(rec.lines)
	ps := PathSet{
		Paths:   make([][]int, 0, len(lines)),
		Weights: make([]float64, 0, len(lines)),
	}
	for _, l := range lines {
		w, err := parseFloat(rec.index, l.no, l.fields[0])
		if err != nil {
			return PathSet{}, err
		}
		if w <= 0 {
			return PathSet{}, parseErrorf(rec.index, l.no, ErrBadWeight, "path weight %v", w)
		}
		nodes, err := parseWalk(rec.index, l.no, l.fields[1:])
		if err != nil {
			return PathSet{}, err
		}
		if len(nodes) < 2 {
			return PathSet{}, parseErrorf(rec.index, l.no, ErrShortPath, "%d node(s)", len(nodes))
		}
		ps.Paths = append(ps.Paths, nodes)
		ps.Weights = append(ps.Weights, w)
	}

	return ps, nil
}

// parseWalk parses node tokens and rejects immediate repeats.
func parseWalk(record, line int, tokens []string) ([]int, error) {
	nodes := make([]int, 0, len(tokens))
	for i, tok := range tokens {
		v, err := parseNode(record, line, tok)
		if err != nil {
			return nil, err
		}
		if i > 0 && nodes[i-1] == v {
			return nil, parseErrorf(record, line, ErrRepeatedNode, "node %d at position %d", v, i)
		}
		nodes = append(nodes, v)
	}

	return nodes, nil
}

// ReadSafePaths parses the looser safe-path grammar produced by external solvers.
//
// After a marker, each line is "idx node_1 … node_m". The record ends at the
// next marker, the first blank line, or end of input; lines between a blank
// line and the next marker are ignored.
func ReadSafePaths(r io.Reader) ([]SafePathList, error) {
	records, err := splitRecords(r)
	if err != nil {
		return nil, err
	}
	lists := make([]SafePathList, 0, len(records))
	for _, rec := range records {
		var list SafePathList
		for _, l := range rec.lines {
			if len(l.fields) == 0 {
				break
			}
			if len(l.fields) < 2 {
				return nil, parseErrorf(rec.index, l.no, ErrFieldCount,
					"safe path needs an index and at least one node")
			}
			idx, err := strconv.Atoi(l.fields[0])
			if err != nil {
				return nil, parseErrorf(rec.index, l.no, ErrMalformedNumber, "index %q", l.fields[0])
			}
			nodes := make([]int, 0, len(l.fields)-1)
			for _, tok := range l.fields[1:] {
				v, err := parseNode(rec.index, l.no, tok)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, v)
			}
			list.Paths = append(list.Paths, SafePath{Index: idx, Nodes: nodes})
		}
		lists = append(lists, list)
	}

	return lists, nil
}

func parseNode(record, line int, tok string) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, parseErrorf(record, line, ErrMalformedNumber, "node %q", tok)
	}
	if v < 0 {
		return 0, parseErrorf(record, line, ErrBadNode, "node %d", v)
	}

	return v, nil
}

func parseFloat(record, line int, tok string) (float64, error) {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, parseErrorf(record, line, ErrMalformedNumber, "weight %q", tok)
	}

	return f, nil
}
