// Package pkg provides the libraries behind tcgaloader, the TCGA pathway
// loader.
//
// # Overview
//
// tcgaloader turns PathwayMapper/TCGA pathway text files into flat network
// tables. Each file holds a description, a node table with parent
// containment and an edge table; the loader flattens nested containers,
// joins every edge with its endpoint nodes and names unnamed containers.
//
// # Architecture
//
// The data flow through one file:
//
//	pathway text file
//	         ↓
//	    [pathway] package (tokenize sections, build node and edge tables)
//	         ↓
//	    [anomaly] package (invalid protein names, nested nodes)
//	         ↓
//	    [transform] package (flatten nested containers)
//	         ↓
//	    [assemble] package (join edges, members, synthetic names)
//	         ↓
//	    [loadplan] package (optional node-link graph)
//	         ↓
//	    [storage] package (TSV tables, graph JSON, MongoDB)
//
// [pipeline] runs these stages for a single file or a whole data directory
// and caches stages up to assembly through [cache].
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/ndexcontent/tcgaloader/pkg/pipeline"
//	    "github.com/ndexcontent/tcgaloader/pkg/storage"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	runner.Store = storage.NewDirStore("out")
//	batch, err := runner.ProcessBatch(context.Background(), pipeline.Options{
//	    DataDir: "networks",
//	})
//
// # Main Packages
//
//   - [network]: record types, column names and the identifier map
//   - [errors]: coded errors; pathway codes fail one file, not the batch
//   - [report]: the TSV network table format
//   - [graph]: node-link graph, JSON encoding, DOT and SVG rendering
//   - [config]: TOML profiles
//   - [observability]: pipeline and cache hooks
//   - [buildinfo]: version information
//
// [pathway]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/pathway
// [anomaly]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/anomaly
// [transform]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/transform
// [assemble]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/assemble
// [loadplan]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/loadplan
// [storage]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/storage
// [pipeline]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/cache
// [network]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/network
// [errors]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/errors
// [report]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/report
// [graph]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/graph
// [config]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/config
// [observability]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/ndexcontent/tcgaloader/pkg/buildinfo
package pkg
