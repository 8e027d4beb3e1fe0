package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/pipeline"
	"github.com/ndexcontent/tcgaloader/pkg/report"
)

// inspectOpts holds the flags of the inspect command.
type inspectOpts struct {
	dataDir string
	pick    bool
	tsv     bool
}

// inspectCommand creates the inspect command for examining one file.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Process one pathway file and show what it contains",
		Long: `Process one pathway file without touching the cache, the reports or
the outputs, and print its statistics and anomalies.

With --pick the file is chosen interactively from the data directory.
With --tsv the network table is written to stdout instead.`,
		Example: `  tcgaloader inspect networks/gbm.txt
  tcgaloader inspect networks/gbm.txt --tsv > gbm.tsv
  tcgaloader inspect --pick --datadir networks`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.inspectTarget(cmd, args, opts)
			if err != nil || path == "" {
				return err
			}
			return runInspect(cmd.Context(), path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dataDir, "datadir", "", "directory to pick from (default from the profile)")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose the file interactively")
	cmd.Flags().BoolVar(&opts.tsv, "tsv", false, "write the network table to stdout")

	return cmd
}

// inspectTarget resolves the file to inspect from the argument or the picker.
func (c *CLI) inspectTarget(cmd *cobra.Command, args []string, opts inspectOpts) (string, error) {
	if !opts.pick {
		if len(args) == 0 {
			return "", errors.New(errors.ErrCodeInvalidInput, "no file given; pass a path or use --pick")
		}
		return args[0], nil
	}
	if len(args) > 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "--pick does not take a file argument")
	}

	s, err := c.settings(cmd, nil)
	if err != nil {
		return "", err
	}
	dir := s.DataDir
	if cmd.Flags().Changed("datadir") {
		dir = opts.dataDir
	}
	files, err := listFiles(pipeline.Options{DataDir: dir, Include: s.Include, Exclude: s.Exclude})
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		printWarning("No pathway files found in %s", dir)
		return "", nil
	}
	name, err := pickFile(files)
	if err != nil || name == "" {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// runInspect processes path and prints the result.
func runInspect(ctx context.Context, path string, opts inspectOpts) error {
	logger := loggerFromContext(ctx)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Processing "+filepath.Base(path)+"...")
	spinner.Start()
	res, err := pipeline.NewRunner(nil, nil, logger).Process(ctx, filepath.Base(path), data)
	spinner.Stop()
	if err != nil {
		return err
	}

	if opts.tsv {
		return report.WriteTSV(stdout, res.Network)
	}
	printResult(res)
	return nil
}

// printResult prints the statistics and findings of one processed file.
func printResult(res *pipeline.Result) {
	st := res.Stats
	fmt.Fprintln(stdout, StyleTitle.Render(res.Network.Name))
	if res.Network.Description != "" {
		printDetail("%s", res.Network.Description)
	}
	printNewline()
	printKeyValue("Nodes", fmt.Sprint(st.Nodes))
	printKeyValue("Edges", fmt.Sprint(st.Edges))
	printKeyValue("Records", fmt.Sprint(st.Records))
	printKeyValue("Flatten passes", fmt.Sprint(st.Passes))
	printKeyValue("Named", fmt.Sprint(st.Named))
	printKeyValue("Columns", strings.Join(res.Network.Columns(), ", "))
	printStats(st.Records, res.Anomalies.Count(), res.CacheHit)

	if names := res.Anomalies.InvalidNames; len(names) > 0 {
		printNewline()
		printWarning("%d invalid protein names", len(names))
		for _, n := range names {
			printDetail("%s", n)
		}
	}
	if nested := res.Anomalies.Nested; len(nested) > 0 {
		printNewline()
		printWarning("%d nested nodes", len(nested))
		for _, n := range nested {
			printDetail("%s (%s) in %s (%s)", n.ChildName, n.ChildType, n.ParentName, n.ParentType)
		}
	}
}
