package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/graph"
	"github.com/ndexcontent/tcgaloader/pkg/loadplan"
	"github.com/ndexcontent/tcgaloader/pkg/network"
	"github.com/ndexcontent/tcgaloader/pkg/pipeline"
	"github.com/ndexcontent/tcgaloader/pkg/report"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output   string
	format   string
	detailed bool
	scale    float64
	loadPlan string
}

// renderCommand creates the render command for drawing a network.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw a network as DOT, SVG or JSON",
		Long: `Draw a network as DOT, SVG or JSON.

The input is a pathway file, a network table written by load (.tsv) or a
node-link graph written by load with a load plan (.json). Pathway files and
network tables are mapped to a graph with --loadplan, or with the built-in
plan when none is given. Nodes keep the positions of the source file.`,
		Example: `  tcgaloader render networks/gbm.txt
  tcgaloader render out/gbm.tsv -f dot -o gbm.dot
  tcgaloader render out/gbm.json --detailed --scale 0.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = parseFormat(opts.format)
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), dot, json")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node types and members in labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "factor applied to node positions")
	cmd.Flags().StringVar(&opts.loadPlan, "loadplan", "", "load plan JSON file for pathway files and tables")

	return cmd
}

// parseFormat normalizes the --format flag. Empty means svg.
func parseFormat(s string) string {
	if s == "" {
		return "svg"
	}
	return strings.ToLower(strings.TrimPrefix(s, "."))
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "dot": true, "json": true}

// validateFormat checks that the format is supported.
func validateFormat(format string) error {
	if !validFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'svg', 'dot', or 'json')", format)
	}
	return nil
}

// outputPath derives the output file from the input when -o is not set.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return base + "." + format
}

// runRender loads input as a graph and writes it in the requested format.
func runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, "Loading "+filepath.Base(input)+"...")
	spinner.Start()
	g, err := loadGraph(ctx, input, opts.loadPlan)
	if err != nil {
		spinner.Stop()
		return err
	}

	if opts.format == "svg" {
		spinner.SetMessage("Rendering SVG...")
	}
	data, err := renderGraph(ctx, g, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	path := outputPath(opts.output, input, opts.format)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Rendered %s (%d nodes, %d edges)", g.Name, g.NodeCount(), g.EdgeCount())
	printFile(path)
	return nil
}

// renderGraph encodes g in opts.format.
func renderGraph(ctx context.Context, g *graph.Graph, opts renderOpts) ([]byte, error) {
	switch opts.format {
	case "json":
		return graph.Marshal(g)
	case "dot":
		return []byte(graph.ToDOT(g, graph.DOTOptions{Detailed: opts.detailed, Scale: opts.scale})), nil
	default:
		dot := graph.ToDOT(g, graph.DOTOptions{Detailed: opts.detailed, Scale: opts.scale})
		return graph.RenderSVG(ctx, dot)
	}
}

// loadGraph reads a stored graph, or builds one from a network table or a
// pathway file with the given plan.
func loadGraph(ctx context.Context, input, planPath string) (*graph.Graph, error) {
	if strings.EqualFold(filepath.Ext(input), ".json") {
		return graph.ReadFile(input)
	}

	plan := loadplan.Default()
	if planPath != "" {
		var err error
		if plan, err = loadplan.Load(planPath); err != nil {
			return nil, err
		}
	}

	n, err := loadNetwork(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := plan.Validate(network.AllColumns()); err != nil {
		return nil, err
	}
	return plan.Apply(n)
}

// loadNetwork reads a network table or processes a pathway file.
func loadNetwork(ctx context.Context, input string) (*network.Network, error) {
	name := pipeline.NetworkName(input)
	if strings.EqualFold(filepath.Ext(input), report.Extension) {
		records, err := report.ReadFile(input)
		if err != nil {
			return nil, err
		}
		return &network.Network{Name: name, Records: records}, nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", input)
		}
		return nil, err
	}
	res, err := pipeline.NewRunner(nil, nil, loggerFromContext(ctx)).Process(ctx, filepath.Base(input), data)
	if err != nil {
		return nil, err
	}
	return res.Network, nil
}
