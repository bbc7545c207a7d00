package batch

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/katalvlaran/flowdecomp/graphtext"
)

// ErrInstanceCount is returned when paired input files hold different
// numbers of records.
var ErrInstanceCount = errors.New("batch: instance count mismatch")

// readFile opens path and hands it to parse.
func readFile[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	v, err := parse(f)
	if err != nil {
		return zero, errors.Wrapf(err, "read %s", path)
	}

	return v, nil
}

// ReadGraphsFile parses every graph record of the file at path.
func ReadGraphsFile(path string) ([]graphtext.Graph, error) {
	return readFile(path, graphtext.ReadGraphs)
}

// ReadPathSetsFile parses every decomposition record of the file at path.
func ReadPathSetsFile(path string) ([]graphtext.PathSet, error) {
	return readFile(path, graphtext.ReadPathSets)
}

// ReadSafePathsFile parses a solver's safe-path output at path.
func ReadSafePathsFile(path string) ([]graphtext.SafePathList, error) {
	return readFile(path, graphtext.ReadSafePaths)
}

// output is one file to publish: its records in order.
type output struct {
	path    string
	records []bytes.Buffer
}

// writeOutputs publishes every output or none of them: each is first
// written in full to a temporary file next to its target, and only when all
// of them are staged are they renamed into place. A failed rename, which
// needs the directory to change under the run, is the only way to publish a
// subset.
func writeOutputs(outs ...output) error {
	staged := make([]string, 0, len(outs))
	cleanup := func() {
		for _, name := range staged {
			os.Remove(name)
		}
	}
	for _, o := range outs {
		name, err := stage(o)
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, name)
	}
	for i, o := range outs {
		if err := os.Rename(staged[i], o.path); err != nil {
			staged = staged[i:]
			cleanup()
			return errors.Wrapf(err, "rename %s", o.path)
		}
	}

	return nil
}

// stage writes o to a temporary file in the target directory and returns
// its name.
func stage(o output) (name string, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(o.path), "."+filepath.Base(o.path)+".*")
	if err != nil {
		return "", errors.Wrapf(err, "create %s", o.path)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	for i := range o.records {
		if _, err = o.records[i].WriteTo(tmp); err != nil {
			return "", errors.Wrapf(err, "write %s", o.path)
		}
	}
	if err = tmp.Chmod(0o644); err != nil {
		return "", errors.Wrapf(err, "chmod %s", o.path)
	}
	if err = tmp.Close(); err != nil {
		return "", errors.Wrapf(err, "close %s", o.path)
	}

	return tmp.Name(), nil
}

// checkCount fails with ErrInstanceCount when a and b differ.
func checkCount(what string, a, b int) error {
	if a != b {
		return errors.Wrapf(ErrInstanceCount, "%s: %d vs %d", what, a, b)
	}

	return nil
}
