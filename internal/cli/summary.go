package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/observability"
	"github.com/ndexcontent/tcgaloader/pkg/pipeline"
)

// =============================================================================
// Summary - Batch Statistics Collector
// =============================================================================

// summary collects pipeline and cache events of a load run.
// It is registered as both hook sets for the duration of the command.
type summary struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu        sync.Mutex
	stages    map[string]time.Duration
	anomalies map[string]int
	hits      int
	misses    int
	written   int // bytes written to the cache
}

var (
	_ observability.PipelineHooks = (*summary)(nil)
	_ observability.CacheHooks    = (*summary)(nil)
)

func newSummary() *summary {
	return &summary{
		stages:    make(map[string]time.Duration),
		anomalies: make(map[string]int),
	}
}

func (s *summary) OnStage(_ context.Context, _, stage string, d time.Duration) {
	s.mu.Lock()
	s.stages[stage] += d
	s.mu.Unlock()
}

func (s *summary) OnAnomaly(_ context.Context, _, kind string, count int) {
	s.mu.Lock()
	s.anomalies[kind] += count
	s.mu.Unlock()
}

func (s *summary) OnCacheHit(context.Context, string) {
	s.mu.Lock()
	s.hits++
	s.mu.Unlock()
}

func (s *summary) OnCacheMiss(context.Context, string) {
	s.mu.Lock()
	s.misses++
	s.mu.Unlock()
}

func (s *summary) OnCacheSet(_ context.Context, _ string, size int) {
	s.mu.Lock()
	s.written += size
	s.mu.Unlock()
}

// install registers s as the global hooks and returns the function that
// restores the defaults.
func (s *summary) install() func() {
	observability.SetPipelineHooks(s)
	observability.SetCacheHooks(s)
	return observability.Reset
}

// stageLine formats the accumulated stage durations in pipeline order.
func (s *summary) stageLine() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := []string{
		pipeline.StageTokenize, pipeline.StageTables, pipeline.StageCheck,
		pipeline.StageFlatten, pipeline.StageAssemble, pipeline.StagePlan, pipeline.StageStore,
	}
	line := ""
	for _, st := range order {
		d, ok := s.stages[st]
		if !ok {
			continue
		}
		if line != "" {
			line += " · "
		}
		line += fmt.Sprintf("%s %s", st, d.Round(time.Microsecond))
	}
	return line
}

// cacheLine formats the cache counters.
func (s *summary) cacheLine() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("%d hits · %d misses · %d bytes written", s.hits, s.misses, s.written)
}

// anomalyLine formats anomaly totals by kind.
func (s *summary) anomalyLine() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	kinds := make([]string, 0, len(s.anomalies))
	for k := range s.anomalies {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	line := ""
	for _, k := range kinds {
		if line != "" {
			line += " · "
		}
		line += fmt.Sprintf("%d %s", s.anomalies[k], k)
	}
	if line == "" {
		return "none"
	}
	return line
}

// =============================================================================
// Batch Table
// =============================================================================

// batchRows returns one row per processed network followed by one row per
// failed file.
func batchRows(b *pipeline.BatchResult) [][]string {
	rows := make([][]string, 0, len(b.Results)+len(b.Failed))
	for _, r := range b.Results {
		status := iconFresh
		if r.CacheHit {
			status = iconCached
		}
		rows = append(rows, []string{
			r.Network.Name,
			strconv.Itoa(r.Stats.Records),
			strconv.Itoa(len(r.Anomalies.InvalidNames)),
			strconv.Itoa(len(r.Anomalies.Nested)),
			status,
		})
	}
	for _, f := range b.Failed {
		status := string(errors.GetCode(f.Err))
		if status == "" {
			status = "failed"
		}
		rows = append(rows, []string{pipeline.NetworkName(f.File), "-", "-", "-", status})
	}
	return rows
}

// batchTable renders the per-network table of a load run.
func batchTable(b *pipeline.BatchResult) string {
	ok := len(b.Results)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Network", "Records", "Invalid", "Nested", "Status").
		Rows(batchRows(b)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1: // header
				return styleHeader.Padding(0, 1)
			case row >= ok:
				return base.Foreground(colorRed)
			case col == 4 && b.Results[row].CacheHit:
				return base.Foreground(colorGreen)
			case col > 0:
				return base.Foreground(colorCyan)
			}
			return base
		})
	return t.Render()
}
