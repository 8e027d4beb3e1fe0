// Package storage persists processed networks.
//
// A [Store] receives one [Output] per successfully processed file. The
// directory store writes the TSV report (and the node-link JSON when a load
// plan produced one); the MongoDB store upserts one document per network.
// [Multi] fans an output out to several stores.
package storage

import (
	"context"
	"errors"
	"path/filepath"

	tcgaerrors "github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/graph"
	"github.com/ndexcontent/tcgaloader/pkg/network"
	"github.com/ndexcontent/tcgaloader/pkg/report"
)

// Output is everything persisted for one network.
type Output struct {
	RunID   string
	Network *network.Network
	// Graph is nil when no load plan was applied.
	Graph *graph.Graph
}

// Store persists outputs.
type Store interface {
	Save(ctx context.Context, out Output) error
	Close(ctx context.Context) error
}

// =============================================================================
// Directory store
// =============================================================================

// DirStore writes <dir>/<network>.tsv and, when present, <dir>/<network>.json.
type DirStore struct {
	dir string
}

// NewDirStore creates a store writing below dir.
func NewDirStore(dir string) *DirStore { return &DirStore{dir: dir} }

// Save writes the report and graph files of out.
func (s *DirStore) Save(ctx context.Context, out Output) error {
	name := out.Network.Name
	if err := tcgaerrors.ValidateNetworkFilename(name); err != nil {
		return err
	}
	if err := report.WriteFile(s.ReportPath(name), out.Network); err != nil {
		return err
	}
	if out.Graph != nil {
		return graph.WriteFile(out.Graph, s.GraphPath(name))
	}
	return nil
}

// ReportPath returns the report file of a network.
func (s *DirStore) ReportPath(name string) string {
	return filepath.Join(s.dir, name+report.Extension)
}

// GraphPath returns the graph file of a network.
func (s *DirStore) GraphPath(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Close does nothing.
func (s *DirStore) Close(context.Context) error { return nil }

// =============================================================================
// Fan-out
// =============================================================================

// Multi saves to every store in order and joins their errors.
type Multi []Store

// Save calls Save on every store, even after a failure.
func (m Multi) Save(ctx context.Context, out Output) error {
	var errs []error
	for _, s := range m {
		if err := s.Save(ctx, out); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every store.
func (m Multi) Close(ctx context.Context) error {
	var errs []error
	for _, s := range m {
		if err := s.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ Store = (*DirStore)(nil)
	_ Store = Multi(nil)
)
