package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
	"github.com/ndexcontent/tcgaloader/pkg/pipeline"
)

// loadCommand creates the load command for processing a data directory.
func (c *CLI) loadCommand() *cobra.Command {
	var flags profileFlags

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Process every pathway file of the data directory",
		Long: `Process every pathway file of the data directory.

Each file is tokenized, its nested containers are flattened, edges are joined
with their endpoint nodes, and unnamed containers get a synthetic name. The
resulting network table is written to --outdir (and MongoDB when configured).
Invalid protein names and nested nodes are appended to report files in
--reportdir. A file that cannot be processed is reported and skipped.

Values not given as flags come from the selected profile of the
configuration file.`,
		Example: `  # Process a directory
  tcgaloader load --datadir networks --outdir out --reportdir reports

  # Only the files listed in a network list, mapped through a load plan
  tcgaloader load --datadir networks --networklistfile list.txt --loadplan plan.json --outdir out

  # Skip backups and bypass the cache
  tcgaloader load --datadir networks --exclude '*.bak' --no-cache`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.settings(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runLoad(cmd.Context(), s)
		},
	}

	flags.register(cmd)
	return cmd
}

// runLoad processes the batch described by s and prints its summary.
func (c *CLI) runLoad(ctx context.Context, s settings) error {
	if s.DataDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no data directory: pass --datadir or set datadir in the profile")
	}
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, s)
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			logger.Warn("closing runner", "err", err)
		}
	}()

	sum := newSummary()
	defer sum.install()()

	prog := newProgress(logger)
	batch, err := runner.ProcessBatch(ctx, pipeline.Options{
		DataDir:     s.DataDir,
		NetworkList: s.NetworkList,
		Include:     s.Include,
		Exclude:     s.Exclude,
	})
	if batch == nil {
		return err
	}
	prog.done("Processed %d networks", batch.Processed())

	printBatch(batch, sum)
	if err != nil {
		return err
	}

	if batch.Processed() == 0 && len(batch.Failed) == 0 {
		printWarning("No pathway files found in %s", s.DataDir)
		return nil
	}
	printOutputs(s, runner.Reporter.Paths)
	if len(batch.Failed) > 0 {
		return fmt.Errorf("%d of %d files failed", len(batch.Failed), len(batch.Failed)+batch.Processed())
	}
	return nil
}

// printBatch prints the per-network table and the run totals.
func printBatch(batch *pipeline.BatchResult, sum *summary) {
	if len(batch.Results)+len(batch.Failed) > 0 {
		fmt.Fprintln(stdout, batchTable(batch))
	}
	for _, f := range batch.Failed {
		printError("%s: %s", f.File, errors.UserMessage(f.Err))
	}
	for _, m := range batch.Missing {
		printWarning("%s is listed but not in the data directory", m)
	}

	printNewline()
	printKeyValue("Run", batch.RunID)
	printKeyValue("Networks", fmt.Sprintf("%d processed, %d failed", batch.Processed(), len(batch.Failed)))
	printKeyValue("Records", StyleNumber.Render(fmt.Sprint(batch.Records())))
	printKeyValue("Anomalies", sum.anomalyLine())
	printKeyValue("Cache", sum.cacheLine())
	if line := sum.stageLine(); line != "" {
		printKeyValue("Stages", line)
	}
}

// printOutputs lists where the run wrote its files.
func printOutputs(s settings, reports func() (string, string)) {
	if s.OutDir == "" && s.ReportDir == "" && s.MongoURI == "" {
		printNewline()
		printNextStep("Nothing was written; to keep the tables run", "tcgaloader load --outdir <dir>")
		return
	}
	printNewline()
	printSuccess("Outputs")
	if s.OutDir != "" {
		printFile(s.OutDir)
	}
	if invalid, nested := reports(); invalid != "" {
		printFile(invalid)
		printFile(nested)
	}
	if s.MongoURI != "" {
		db := s.MongoDB
		if db == "" {
			db = "default database"
		}
		printDetail("MongoDB: %s", db)
	}
}
