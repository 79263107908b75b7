package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reconlab/tabdiff/internal/cmd/output"
	"github.com/reconlab/tabdiff/pkg/config"
	"github.com/reconlab/tabdiff/pkg/logging"
	"github.com/reconlab/tabdiff/pkg/reconcile"
	"github.com/reconlab/tabdiff/pkg/source"
)

var (
	runFilterValue string
	runRowsCSV     string
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run <run-file>",
	Short: "Reconcile two datasets",
	Long: `Load both datasets named by the run file, reconcile them, and print
the result rows and summary.

Examples:
  tabdiff run reconcile.yaml                      # Full run, auto-detected output
  tabdiff run reconcile.yaml -o json              # JSON document on stdout
  tabdiff run reconcile.yaml --filter-value CA    # Override the configured filter value
  tabdiff run reconcile.yaml --rows-csv out.csv   # Also write rows to a CSV file`,
	Args: cobra.ExactArgs(1),
	RunE: runReconciliation,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFilterValue, "filter-value", "",
		"Override the filter value of both sources")
	runCmd.Flags().StringVar(&runRowsCSV, "rows-csv", "",
		"Write result rows to this CSV file")
}

func runReconciliation(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.Default()

	rf, err := config.Load(args[0])
	if err != nil {
		return err
	}
	if runFilterValue != "" {
		rf.SetFilterValue(runFilterValue)
	}

	engine, err := reconcile.New(&rf.Reconcile)
	if err != nil {
		return err
	}

	leftSrc, rightSrc, err := rf.Sources()
	if err != nil {
		return err
	}

	left, err := leftSrc.Load(ctx)
	if err != nil {
		return err
	}
	right, err := rightSrc.Load(ctx)
	if err != nil {
		return err
	}

	result, err := engine.Run(left, right)
	if err != nil {
		return err
	}

	if runRowsCSV != "" {
		if err := writeRowsCSV(result, runRowsCSV); err != nil {
			return err
		}
		logger.Info().Str("path", runRowsCSV).Int("rows", len(result.Rows)).Msg("Wrote result rows")
	}

	format := output.Format(globalFlags.Output)
	formatter := output.NewFormatter(format)

	if format == output.FormatTable {
		if err := formatter.Format(os.Stdout, output.ResultTable(result)); err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(result.Summary.String())
		return nil
	}

	return formatter.Format(os.Stdout, output.NewDocument(result))
}

// writeRowsCSV writes the full result row set through the CSV writer by
// restating it as a dataset over the resolved column order.
func writeRowsCSV(result *reconcile.Result, path string) error {
	ds := result.Dataset()
	return source.WriteCSV(ds, path)
}
