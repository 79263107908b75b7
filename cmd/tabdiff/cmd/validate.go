package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reconlab/tabdiff/internal/cmd/output"
	"github.com/reconlab/tabdiff/pkg/config"
	"github.com/reconlab/tabdiff/pkg/reconcile"
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate <run-file>",
	Short: "Validate a run file",
	Long: `Parse and validate a run file without loading any data.

Prints the compiled view of the configuration: source kinds, join keys,
compare columns, and the resolved label set.

Examples:
  tabdiff validate reconcile.yaml
  tabdiff validate reconcile.yaml -o yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	rf, err := config.Load(args[0])
	if err != nil {
		return err
	}

	engine, err := reconcile.New(&rf.Reconcile)
	if err != nil {
		return err
	}

	if _, _, err := rf.Sources(); err != nil {
		return err
	}

	format := output.Format(globalFlags.Output)
	if format != output.FormatTable {
		formatter := output.NewFormatter(format)
		return formatter.Format(os.Stdout, rf)
	}

	fmt.Printf("Run file %s is valid\n\n", args[0])
	fmt.Printf("Left source : %s (%s)\n", rf.Left.Name, rf.Left.Type)
	fmt.Printf("Right source: %s (%s)\n", rf.Right.Name, rf.Right.Type)
	fmt.Printf("Join keys   : %v <-> %v\n", rf.Reconcile.Keys.Left, rf.Reconcile.Keys.Right)
	fmt.Printf("Compare columns (%d):\n", len(rf.Reconcile.CompareColumns))
	for _, cc := range rf.Reconcile.CompareColumns {
		line := fmt.Sprintf("  %-24s %s <-> %s [%s", cc.Label, cc.Left, cc.Right, cc.DType)
		if cc.DType == reconcile.DTypeNumeric && cc.Tolerance > 0 {
			line += fmt.Sprintf(", tolerance %g", cc.Tolerance)
		}
		line += "]"
		if cc.Direction {
			line += " +direction"
		}
		fmt.Println(line)
	}
	if len(rf.Reconcile.AdditionalColumns) > 0 {
		fmt.Printf("Additional columns (%d):\n", len(rf.Reconcile.AdditionalColumns))
		for _, ac := range rf.Reconcile.AdditionalColumns {
			fmt.Printf("  %-24s %s <-> %s\n", ac.Label, ac.Left, ac.Right)
		}
	}

	labels := engine.Labels()
	fmt.Println("Labels:")
	fmt.Printf("  match / mismatch : %q / %q\n", labels.Match, labels.Mismatch)
	fmt.Printf("  one-sided        : %q / %q\n", labels.OverallLeftOnly, labels.OverallRightOnly)

	return nil
}
