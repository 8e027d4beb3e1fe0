package anomaly

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
)

// Report file names inside the report directory.
const (
	InvalidNamesFile = "invalid_protein_names.tsv"
	NestedNodesFile  = "nested_nodes.tsv"
)

var (
	invalidNamesHeader = []string{"NETWORK", "NODE_NAME"}
	nestedNodesHeader  = []string{"NODE_NAME", "NODE_TYPE", "PARENT_NAME", "PARENT_TYPE", "NETWORK"}
)

// Reporter appends findings to the two quality report files.
//
// Both files are opened once per run in append mode. A header row is
// written only when a file is empty at open time. Write failures are logged
// and never returned, so reporting cannot abort a batch. Concurrent runs
// against the same directory are not supported.
type Reporter struct {
	mu      sync.Mutex
	logger  *log.Logger
	invalid *sink
	nested  *sink
}

type sink struct {
	path string
	f    *os.File
	w    *csv.Writer
}

// OpenReporter opens (or creates) the report files in dir.
func OpenReporter(dir string, logger *log.Logger) (*Reporter, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create report directory %s", dir)
	}

	invalid, err := openSink(filepath.Join(dir, InvalidNamesFile), invalidNamesHeader)
	if err != nil {
		return nil, err
	}
	nested, err := openSink(filepath.Join(dir, NestedNodesFile), nestedNodesHeader)
	if err != nil {
		invalid.f.Close()
		return nil, err
	}
	return &Reporter{logger: logger, invalid: invalid, nested: nested}, nil
}

func openSink(path string, header []string) (*sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open report %s", path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "stat report %s", path)
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			f.Close()
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write header to %s", path)
		}
		w.Flush()
	}
	return &sink{path: path, f: f, w: w}, nil
}

// Record appends the findings of one file to the report files.
func (r *Reporter) Record(rep Report) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range rep.InvalidNames {
		r.write(r.invalid, []string{rep.Network, name})
	}
	for _, n := range rep.Nested {
		r.write(r.nested, []string{n.ChildName, string(n.ChildType), n.ParentName, string(n.ParentType), n.Network})
	}
	r.flush(r.invalid)
	r.flush(r.nested)
}

func (r *Reporter) write(s *sink, row []string) {
	if err := s.w.Write(row); err != nil {
		r.logger.Error("write anomaly report", "file", s.path, "err", err)
	}
}

func (r *Reporter) flush(s *sink) {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		r.logger.Error("flush anomaly report", "file", s.path, "err", err)
	}
}

// Paths returns the paths of the invalid-name and nested-node reports, or
// empty strings on a nil Reporter.
func (r *Reporter) Paths() (invalidNames, nestedNodes string) {
	if r == nil {
		return "", ""
	}
	return r.invalid.path, r.nested.path
}

// Close flushes and closes both report files.
func (r *Reporter) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var first error
	for _, s := range []*sink{r.invalid, r.nested} {
		s.w.Flush()
		if err := s.w.Error(); err != nil && first == nil {
			first = err
		}
		if err := s.f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
