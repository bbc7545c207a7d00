// Package graphtext reads and writes the line-oriented text formats shared by
// the flow-decomposition tools.
//
// Every file is a sequence of records. A record starts at a marker line (any
// line whose first non-space character is '#', conventionally "# graph <i>")
// and runs until the next marker or the end of input. Records are indexed by
// their position in the file, starting at 0.
//
// Grammars:
//
//	Graph record        PathSet record           Safe-path record
//	# graph 0           # graph 0                # graph 0
//	3                   5 0 1 2                  0 0 1 2
//	0 1 5               2 0 2                    1 3 4
//	1 2 5                                        <blank line ends the record>
//
//   - Graph: first line is the node count n, then one "u v weight" line per edge.
//     Parallel edges are kept (multigraph semantics).
//   - PathSet: one "weight node_1 … node_m" line per path, m ≥ 2, weight > 0.
//     The path's edge sequence is the consecutive-pair zip of its nodes.
//   - Safe-path list: "idx node_1 … node_m" lines, terminated by a marker, a
//     blank line, or end of input. Produced by external solvers; no weights.
//
// Errors:
//
//	Every malformed record yields a *ParseError carrying the record index and the
//	1-based line number. ParseError unwraps to one of the sentinels below, so
//	callers branch with errors.Is:
//
//	ErrOrphanContent    - non-blank text before the first marker line.
//	ErrMissingNodeCount - graph record whose first line is not a single integer.
//	ErrNoEdges          - graph record without edge lines.
//	ErrMalformedNumber  - token that is not a valid number.
//	ErrFieldCount       - wrong number of tokens on a line.
//	ErrBadNode          - negative node identifier.
//	ErrBadWeight        - negative edge weight or non-positive path weight.
//	ErrRead             - the input could not be read (also wraps the cause).
//	ErrShortPath        - path with fewer than two nodes.
//	ErrRepeatedNode     - the same node twice in a row inside a path.
//
// Blank lines inside graph and path-set records are skipped, so a trailing
// blank line never produces an empty fragment. A path-set record with no path
// lines is a valid, empty PathSet; a failed parse never returns a partial value.
//
// Writers reproduce the formats the solver tool chain reads byte for byte,
// including the lossy node-set projection used for decomposition output (see
// WriteDecomposition).
package graphtext
