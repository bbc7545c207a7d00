package graphtext

import (
	"errors"
	"fmt"
)

// Sentinel errors. ParseError unwraps to one of them (ErrRead also carries
// the underlying read error).
var (
	// ErrOrphanContent indicates non-blank text before the first marker line.
	ErrOrphanContent = errors.New("graphtext: content before first record marker")

	// ErrMissingNodeCount indicates a graph record whose first line is not a node count.
	ErrMissingNodeCount = errors.New("graphtext: missing node count")

	// ErrNoEdges indicates a graph record with no edge lines.
	ErrNoEdges = errors.New("graphtext: graph has no edges")

	// ErrMalformedNumber indicates a token that does not parse as the expected number.
	ErrMalformedNumber = errors.New("graphtext: malformed number")

	// ErrFieldCount indicates a line with the wrong number of tokens.
	ErrFieldCount = errors.New("graphtext: wrong number of fields")

	// ErrBadNode indicates a negative node identifier.
	ErrBadNode = errors.New("graphtext: negative node identifier")

	// ErrBadWeight indicates a negative edge weight or a non-positive path weight.
	ErrBadWeight = errors.New("graphtext: weight out of range")

	// ErrShortPath indicates a path with fewer than two nodes.
	ErrShortPath = errors.New("graphtext: path has fewer than two nodes")

	// ErrRead indicates that the input could not be read, including a line
	// longer than the 16 MiB limit. The underlying error is wrapped too.
	ErrRead = errors.New("graphtext: read failed")

	// ErrRepeatedNode indicates a node immediately repeated inside a path.
	ErrRepeatedNode = errors.New("graphtext: node repeated consecutively in path")
)

// ParseError reports a malformed record. Record is the 0-based record index
// (-1 for content before the first marker) and Line the 1-based line number
// in the input.
type ParseError struct {
	Record int
	Line   int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("graphtext: record %d, line %d: %v", e.Record, e.Line, e.Err)
	}

	return fmt.Sprintf("graphtext: record %d, line %d: %v: %s", e.Record, e.Line, e.Err, e.Msg)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *ParseError) Unwrap() error { return e.Err }

// parseErrorf builds a *ParseError around a sentinel.
func parseErrorf(record, line int, sentinel error, format string, args ...interface{}) error {
	return &ParseError{
		Record: record,
		Line:   line,
		Msg:    fmt.Sprintf(format, args...),
		Err:    sentinel,
	}
}
