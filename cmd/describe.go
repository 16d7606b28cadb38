package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/corrgraph/internal/dataset"
	"github.com/KaramelBytes/corrgraph/internal/utils"
)

var (
	descSrc     sourceFlags
	descColumns []string
	descJSON    bool
	descOutput  string
)

var describeCmd = &cobra.Command{
	Use:   "describe <dataset>",
	Short: "Show column types and the correlation matrix of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := descSrc.load(args[0])
		if err != nil {
			return err
		}
		cols, err := selectColumns(ds.Dataset, descColumns)
		if err != nil {
			return err
		}
		sum := dataset.Describe(ds.Dataset, cols, settings().CorrelationThreshold)
		var data []byte
		if descJSON {
			if data, err = utils.PrettyJSON(sum); err != nil {
				return err
			}
			data = append(data, '\n')
		} else {
			data = []byte(sum.Markdown())
		}
		if descOutput != "" {
			if err := utils.WriteOutput(descOutput, data); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote summary to %s\n", descOutput)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	descSrc.register(describeCmd.Flags())
	describeCmd.Flags().StringSliceVarP(&descColumns, "columns", "c", nil, "matrix columns (default: all numeric columns)")
	describeCmd.Flags().BoolVar(&descJSON, "json", false, "print JSON instead of text")
	describeCmd.Flags().StringVarP(&descOutput, "output", "o", "", "write to file instead of stdout")
}
