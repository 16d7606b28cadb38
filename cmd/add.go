package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	addWorkspace string
	addDesc      string
	addSheetName string
	addSheetIdx  int
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Register a CSV/TSV/XLSX dataset in a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		w, err := resolveWorkspace(addWorkspace)
		if err != nil {
			return err
		}
		opt := datasetOptions(0, addSheetName, addSheetIdx)
		d, err := w.AddDataset(file, addDesc, opt)
		if err != nil {
			return err
		}
		if err := w.Save(); err != nil {
			return err
		}
		log.Info("dataset registered",
			zap.String("workspace", w.Name),
			zap.String("dataset", d.Name),
			zap.Int("rows", d.Rows),
			zap.Int("columns", len(d.Columns)))
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Dataset added: %s (%d rows, %d numeric columns)\n", d.Name, d.Rows, len(d.NumericColumns()))
		if len(d.NumericColumns()) < 2 {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s has fewer than two numeric columns; networks will be empty\n", d.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addWorkspace, "workspace", "w", "", "workspace name (default: the workspace enclosing the working directory)")
	addCmd.Flags().StringVar(&addDesc, "desc", "", "dataset description")
	addCmd.Flags().StringVar(&addSheetName, "sheet", "", "XLSX sheet name")
	addCmd.Flags().IntVar(&addSheetIdx, "sheet-index", 0, "XLSX 1-based sheet index")
}
