package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/corrgraph/internal/utils"
)

var (
	listWorkspaces bool
	listDatasets   bool
	listNetworks   bool
	listWsName     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspaces, datasets, or saved networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		n := 0
		for _, b := range []bool{listWorkspaces, listDatasets, listNetworks} {
			if b {
				n++
			}
		}
		if n != 1 {
			return fmt.Errorf("specify exactly one of --workspaces, --datasets or --networks")
		}
		out := cmd.OutOrStdout()
		if listWorkspaces {
			return listAllWorkspaces(cmd)
		}
		w, err := resolveWorkspace(listWsName)
		if err != nil {
			return err
		}
		if listDatasets {
			ds := w.ListDatasets()
			if len(ds) == 0 {
				fmt.Fprintln(out, "(no datasets)")
				return nil
			}
			for _, d := range ds {
				fmt.Fprintf(out, "- %s: %s (%d rows, numeric: %v)\n", d.ID, d.Name, d.Rows, d.NumericColumns())
			}
			return nil
		}
		ns := w.ListNetworks()
		if len(ns) == 0 {
			fmt.Fprintln(out, "(no networks)")
			return nil
		}
		for _, n := range ns {
			dsName := n.Config.DatasetID
			if d, ok := w.Datasets[n.Config.DatasetID]; ok {
				dsName = d.Name
			}
			fmt.Fprintf(out, "- %s: %s [%s, %s] on %s\n", n.ID, n.Config.Title, n.Config.GraphType, n.Config.Layout, dsName)
		}
		return nil
	},
}

func listAllWorkspaces(cmd *cobra.Command) error {
	root, err := defaultWorkspacesDir()
	if err != nil {
		return err
	}
	dirs, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	found := false
	for _, e := range dirs {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, e.Name(), utils.WorkspaceFileName)); err == nil {
			fmt.Fprintf(out, "- %s\n", e.Name())
			found = true
		}
	}
	if !found {
		fmt.Fprintln(out, "(no workspaces)")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listWorkspaces, "workspaces", false, "list workspaces")
	listCmd.Flags().BoolVar(&listDatasets, "datasets", false, "list datasets in a workspace")
	listCmd.Flags().BoolVar(&listNetworks, "networks", false, "list saved networks in a workspace")
	listCmd.Flags().StringVarP(&listWsName, "workspace", "w", "", "workspace name for --datasets/--networks (default: the workspace enclosing the working directory)")
}
