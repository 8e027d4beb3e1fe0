package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ndexcontent/tcgaloader/pkg/anomaly"
	"github.com/ndexcontent/tcgaloader/pkg/assemble"
	"github.com/ndexcontent/tcgaloader/pkg/buildinfo"
	"github.com/ndexcontent/tcgaloader/pkg/cache"
	"github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/loadplan"
	"github.com/ndexcontent/tcgaloader/pkg/network"
	"github.com/ndexcontent/tcgaloader/pkg/observability"
	"github.com/ndexcontent/tcgaloader/pkg/pathway"
	"github.com/ndexcontent/tcgaloader/pkg/storage"
	"github.com/ndexcontent/tcgaloader/pkg/transform"
)

// cacheKeyType labels network entries in cache hooks.
const cacheKeyType = "network"

// Runner processes pathway files with caching.
//
// Reporter, Store and Plan are optional. The Runner holds no per-file
// state, but the reporter and store it writes to are not safe for
// concurrent batches.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Reporter *anomaly.Reporter
	Store    storage.Store
	Plan     *loadplan.Plan
	// RunID tags stored networks. NewRunner sets a random one.
	RunID string
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		RunID:  uuid.NewString(),
	}
}

// cacheEntry is the cached form of stages 1 to 5.
type cacheEntry struct {
	Network   *network.Network `json:"network"`
	Anomalies anomaly.Report   `json:"anomalies"`
	Stats     Stats            `json:"stats"`
}

// Process runs stages 1 to 6 on the content of one file. It neither reads
// the cache nor writes reports or outputs.
func (r *Runner) Process(ctx context.Context, file string, data []byte) (*Result, error) {
	start := time.Now()
	res, err := r.process(ctx, file, data)
	if err != nil {
		return nil, err
	}
	if err := r.applyPlan(ctx, res); err != nil {
		return nil, err
	}
	res.Stats.Duration = time.Since(start)
	return res, nil
}

func (r *Runner) process(ctx context.Context, file string, data []byte) (*Result, error) {
	name := NetworkName(file)
	hooks := observability.Pipeline()
	lap := time.Now()
	stage := func(s string) {
		d := time.Since(lap)
		hooks.OnStage(ctx, file, s, d)
		r.Logger.Debug("stage complete", "file", file, "stage", s, "duration", d)
		lap = time.Now()
	}

	tokens, err := pathway.TokenizeBytes(file, data)
	if err != nil {
		return nil, err
	}
	stage(StageTokenize)

	nodes, err := pathway.NodesFromTable(tokens.NodeTable())
	if err != nil {
		return nil, err
	}
	edges, err := pathway.EdgesFromTable(tokens.EdgeTable())
	if err != nil {
		return nil, err
	}
	ids := network.NewIDMap(nodes)
	stage(StageTables)

	rep := anomaly.Report{Network: name, InvalidNames: anomaly.InvalidNames(nodes)}
	stage(StageCheck)

	flat, err := transform.Flatten(name, nodes, nil)
	if err != nil {
		return nil, err
	}
	rep.Nested = flat.Nested
	stage(StageFlatten)

	asm, err := assemble.Assemble(assemble.Input{
		Description: tokens.Description,
		Nodes:       flat.Nodes,
		Removed:     flat.Removed,
		Edges:       edges,
		IDs:         ids,
	})
	if err != nil {
		return nil, err
	}
	assemble.AggregateMembers(asm.Records)
	named := assemble.NameContainers(asm.Records, asm.IDs)
	assemble.RestoreNames(asm.Records, asm.IDs)
	stage(StageAssemble)

	return &Result{
		File: file,
		Network: &network.Network{
			Name:        name,
			Description: asm.Description,
			Records:     asm.Records,
		},
		Anomalies: rep,
		Stats: Stats{
			Nodes:   len(nodes),
			Edges:   len(edges),
			Records: len(asm.Records),
			Passes:  flat.Passes,
			Named:   len(named),
		},
	}, nil
}

func (r *Runner) applyPlan(ctx context.Context, res *Result) error {
	if r.Plan == nil {
		return nil
	}
	start := time.Now()
	g, err := r.Plan.Apply(res.Network)
	if err != nil {
		return err
	}
	res.Graph = g
	observability.Pipeline().OnStage(ctx, res.File, StagePlan, time.Since(start))
	return nil
}

// ProcessFile reads path, processes it (or loads it from the cache), then
// records its anomalies and saves it to the store.
func (r *Runner) ProcessFile(ctx context.Context, path string) (*Result, error) {
	file := filepath.Base(path)
	hooks := observability.Pipeline()
	hooks.OnFileStart(ctx, file)
	start := time.Now()

	res, err := r.processFile(ctx, path, file)

	records := 0
	if res != nil {
		records = res.Stats.Records
	}
	hooks.OnFileComplete(ctx, file, records, time.Since(start), err)
	return res, err
}

func (r *Runner) processFile(ctx context.Context, path, file string) (*Result, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}

	key := r.Keyer.NetworkKey(file, data, cache.NetworkKeyOpts{Version: buildinfo.CacheVersion()})
	res, hit := r.fromCache(ctx, key, file)
	if !hit {
		if res, err = r.process(ctx, file, data); err != nil {
			return nil, err
		}
		r.toCache(ctx, key, res)
	}
	if err := r.applyPlan(ctx, res); err != nil {
		return nil, err
	}

	r.report(ctx, res)

	if r.Store != nil {
		lap := time.Now()
		out := storage.Output{RunID: r.RunID, Network: res.Network, Graph: res.Graph}
		if err := r.Store.Save(ctx, out); err != nil {
			return nil, err
		}
		observability.Pipeline().OnStage(ctx, file, StageStore, time.Since(lap))
	}

	res.Stats.Duration = time.Since(start)
	return res, nil
}

func (r *Runner) fromCache(ctx context.Context, key, file string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "file", file, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Network == nil {
		r.Logger.Debug("ignoring unreadable cache entry", "file", file)
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return &Result{
		File:      file,
		Network:   entry.Network,
		Anomalies: entry.Anomalies,
		Stats:     entry.Stats,
		CacheHit:  true,
	}, true
}

func (r *Runner) toCache(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(cacheEntry{Network: res.Network, Anomalies: res.Anomalies, Stats: res.Stats})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, DefaultCacheTTL); err != nil {
		r.Logger.Warn("cache write failed", "file", res.File, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

func (r *Runner) report(ctx context.Context, res *Result) {
	rep := res.Anomalies
	hooks := observability.Pipeline()
	if n := len(rep.InvalidNames); n > 0 {
		hooks.OnAnomaly(ctx, res.File, AnomalyInvalidName, n)
		r.Logger.Debug("invalid protein names", "network", rep.Network, "names", rep.InvalidNames)
	}
	if n := len(rep.Nested); n > 0 {
		hooks.OnAnomaly(ctx, res.File, AnomalyNested, n)
		r.Logger.Debug("nested nodes", "network", rep.Network, "count", n)
	}
	r.Reporter.Record(rep)
}

// ProcessBatch processes every file selected by opts in name order.
//
// A file that fails is logged with its reason, added to Failed and skipped.
// Only invalid options, an unreadable data directory or a cancelled
// context abort the batch.
func (r *Runner) ProcessBatch(ctx context.Context, opts Options) (*BatchResult, error) {
	start := time.Now()
	found, err := Discover(opts)
	if err != nil {
		return nil, err
	}
	for _, name := range found.Missing {
		r.Logger.Warn("listed network file not found", "file", name)
	}

	batch := &BatchResult{RunID: r.RunID, Missing: found.Missing}
	r.Logger.Info("processing networks", "files", len(found.Files), "run", r.RunID)

	for _, file := range found.Files {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		res, err := r.ProcessFile(ctx, filepath.Join(opts.DataDir, file))
		if err != nil {
			if ctx.Err() != nil {
				return batch, ctx.Err()
			}
			if errors.IsFileScoped(err) {
				r.Logger.Warn("skipping file", "file", file, "reason", errors.UserMessage(err))
			} else {
				r.Logger.Error("file failed", "file", file, "err", err)
			}
			batch.Failed = append(batch.Failed, Failure{File: file, Err: err})
			continue
		}
		r.Logger.Info("processed network",
			"network", res.Network.Name,
			"records", res.Stats.Records,
			"anomalies", res.Anomalies.Count(),
			"cached", res.CacheHit)
		batch.Results = append(batch.Results, res)
	}

	batch.Duration = time.Since(start)
	return batch, nil
}

// Close releases resources held by the runner: the cache, the store and
// the reporter.
func (r *Runner) Close() error {
	var errs []error
	if r.Cache != nil {
		errs = append(errs, r.Cache.Close())
	}
	if r.Store != nil {
		errs = append(errs, r.Store.Close(context.Background()))
	}
	errs = append(errs, r.Reporter.Close())
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
