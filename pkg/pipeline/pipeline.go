// Package pipeline runs pathway files through every processing stage.
//
// This package implements the complete tokenize → flatten → assemble →
// persist pipeline that the CLI commands share. Each file is processed on
// its own; a failing file is logged and skipped and the batch continues.
//
// # Architecture
//
// One file goes through these stages:
//
//  1. Tokenize: split the text into description, node rows and edge rows
//  2. Tables: build typed node and edge records
//  3. Check: collect invalid GENE names
//  4. Flatten: collapse nested containers until nothing is nested
//  5. Assemble: join edges with endpoints, aggregate members, name containers
//  6. Plan: optionally map the records to a node-link graph
//  7. Persist: record anomalies and hand the network to the store
//
// Stages 1 to 5 are cached by file content; anomalies are stored alongside
// the network so a cache hit still reports them.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	runner.Reporter = reporter
//	runner.Store = storage.NewDirStore("out")
//	batch, err := runner.ProcessBatch(ctx, pipeline.Options{DataDir: "networks"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(batch.Processed(), "networks,", len(batch.Failed), "failed")
//
// Process a single file without touching cache, reporter or store:
//
//	res, err := runner.Process(ctx, "gbm.txt", data)
package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"github.com/ndexcontent/tcgaloader/pkg/anomaly"
	"github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/graph"
	"github.com/ndexcontent/tcgaloader/pkg/network"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultCacheTTL is how long a processed network stays cached.
const DefaultCacheTTL = 30 * 24 * time.Hour

// Stage names passed to observability hooks.
const (
	StageTokenize = "tokenize"
	StageTables   = "tables"
	StageCheck    = "check"
	StageFlatten  = "flatten"
	StageAssemble = "assemble"
	StagePlan     = "plan"
	StageStore    = "store"
)

// Anomaly kinds passed to observability hooks.
const (
	AnomalyInvalidName = "invalid_name"
	AnomalyNested      = "nested"
)

// =============================================================================
// Options - Batch Configuration
// =============================================================================

// Options selects the files of a batch.
type Options struct {
	// DataDir holds the pathway files. Required.
	DataDir string
	// NetworkList optionally names a file listing the files to process.
	NetworkList string
	// Include and Exclude are glob patterns matched against file names.
	// An empty Include matches everything.
	Include []string
	Exclude []string

	include []glob.Glob
	exclude []glob.Glob

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and compiles the patterns.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.DataDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "data directory is required")
	}
	var err error
	if o.include, err = compileGlobs(o.Include); err != nil {
		return err
	}
	if o.exclude, err = compileGlobs(o.Exclude); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Match reports whether a file name passes the include and exclude patterns.
// ValidateAndSetDefaults must have been called.
func (o *Options) Match(name string) bool {
	if len(o.include) > 0 && !matchAny(o.include, name) {
		return false
	}
	return !matchAny(o.exclude, name)
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid pattern %q", p)
		}
		out = append(out, g)
	}
	return out, nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// =============================================================================
// Results
// =============================================================================

// Result is the outcome of one file.
type Result struct {
	// File is the file name as given to the runner.
	File string
	// Network is the processed record set.
	Network *network.Network
	// Graph is set when the runner has a load plan.
	Graph *graph.Graph
	// Anomalies holds the data-quality findings.
	Anomalies anomaly.Report
	// Stats contains counts and timing.
	Stats Stats
	// CacheHit is true when stages 1 to 5 were skipped.
	CacheHit bool
}

// Stats contains per-file statistics.
type Stats struct {
	Nodes    int
	Edges    int
	Records  int
	Passes   int // flattening passes
	Named    int // containers given a synthetic name
	Duration time.Duration
}

// Failure is a file that could not be processed.
type Failure struct {
	File string
	Err  error
}

// BatchResult is the outcome of [Runner.ProcessBatch].
type BatchResult struct {
	RunID    string
	Results  []*Result
	Failed   []Failure
	Missing  []string // listed in the network list but not found
	Duration time.Duration
}

// Processed returns the number of files that succeeded.
func (b *BatchResult) Processed() int { return len(b.Results) }

// Records returns the total record count of every processed file.
func (b *BatchResult) Records() int {
	n := 0
	for _, r := range b.Results {
		n += r.Stats.Records
	}
	return n
}

// Anomalies returns the total finding count of every processed file.
func (b *BatchResult) Anomalies() int {
	n := 0
	for _, r := range b.Results {
		n += r.Anomalies.Count()
	}
	return n
}

// NetworkName derives the network name from a file path: the base name
// without its extension.
func NetworkName(file string) string {
	base := filepath.Base(file)
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" {
		return name
	}
	return base
}
