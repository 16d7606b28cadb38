package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var removeWorkspace string

var removeCmd = &cobra.Command{
	Use:   "remove <dataset>",
	Short: "Unregister a dataset and delete the networks saved against it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkspace(removeWorkspace)
		if err != nil {
			return err
		}
		d, err := w.DatasetByName(args[0])
		if err != nil {
			return err
		}
		before := len(w.Networks)
		if err := w.RemoveDataset(d.ID); err != nil {
			return err
		}
		if err := w.Save(); err != nil {
			return err
		}
		dropped := before - len(w.Networks)
		log.Info("dataset removed",
			zap.String("workspace", w.Name),
			zap.String("dataset", d.Name),
			zap.Int("networks", dropped))
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed dataset %s (%d saved networks deleted)\n", d.Name, dropped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().StringVarP(&removeWorkspace, "workspace", "w", "", "workspace name (default: the workspace enclosing the working directory)")
}
