// Package graph provides the node-link serialization of processed networks.
//
// A [Graph] is what a load plan produces from a record set: named nodes with
// typed attributes and an optional cartesian position, and directed edges
// carrying an interaction type. It is the format handed to storage sinks
// and to the DOT renderer.
//
// # Serialization
//
// Graphs use a simple JSON format:
//
//	{
//	  "name": "Glioblastoma",
//	  "nodes": [{"id": 0, "name": "EGFR", "x": 100, "y": 200}],
//	  "edges": [{"id": 0, "source": 0, "target": 1, "interaction": "activates"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadFile("gbm.json")   // File → Graph
//	graph.WriteFile(g, "out.json")       // Graph → File
//	data, _ := graph.Marshal(g)          // Graph → []byte
//	g, _ = graph.Unmarshal(data)         // []byte → Graph
//
// # Rendering
//
// [ToDOT] produces Graphviz DOT source. Nodes with positions are pinned so
// the original pathway layout is kept; [RenderSVG] renders in process via
// [github.com/goccy/go-graphviz].
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
