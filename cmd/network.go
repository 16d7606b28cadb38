package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/corrgraph/internal/netgraph"
	"github.com/KaramelBytes/corrgraph/internal/utils"
	"github.com/KaramelBytes/corrgraph/internal/workspace"
)

var (
	buildSrc   sourceFlags
	buildScene sceneFlags
	buildGraph string

	genSrc     sourceFlags
	genScene   sceneFlags
	genType    string
	genSaveRaw string

	normColumns  []string
	normNodeSize string

	saveSrc      sourceFlags
	saveScene    sceneFlags
	saveType     string
	saveGenerate bool

	showWorkspace string
	showScene     sceneFlags

	rmWorkspace string
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Build, generate and manage correlation networks",
}

var networkBuildCmd = &cobra.Command{
	Use:   "build <dataset>",
	Short: "Build a correlation network from a dataset and render it",
	Long: `Build links every pair of selected numeric columns whose Pearson
coefficient reaches the threshold in absolute value, lays the nodes out and
renders the result. With --graph, an externally produced graph is normalized
and drawn instead when it has at least one node and one link.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildScene.resolve(cmd)
		if err != nil {
			return err
		}
		ds, err := buildSrc.load(args[0])
		if err != nil {
			return err
		}
		if s.columns, err = selectColumns(ds.Dataset, s.columns); err != nil {
			return err
		}
		var raw *netgraph.RawGraph
		if buildGraph != "" {
			if raw, err = readRawGraph(buildGraph); err != nil {
				return err
			}
		}
		scene := netgraph.Prepare(s.input(raw, ds.Rows))
		if raw != nil && scene.Source != netgraph.SourceNormalized {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s has no usable nodes and links; built from the dataset instead\n", buildGraph)
		}
		logDropped(raw, s)
		return emitScene(cmd, scene, s, buildScene.output)
	},
}

var networkGenerateCmd = &cobra.Command{
	Use:   "generate <dataset>",
	Short: "Generate a network over all numeric columns and report insights",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := genScene.resolve(cmd)
		if err != nil {
			return err
		}
		gt, err := netgraph.ParseGraphType(genType)
		if err != nil {
			return err
		}
		ds, err := genSrc.load(args[0])
		if err != nil {
			return err
		}
		gen := netgraph.Generate(netgraph.GenerateInput{
			DatasetName: ds.Name,
			Columns:     ds.Columns,
			Rows:        ds.Rows,
			GraphType:   gt,
		})
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Network for %s (%s): %d nodes, %d links\n", ds.Name, gt, len(gen.Graph.Nodes), len(gen.Graph.Links))
		for _, line := range gen.Insights {
			fmt.Fprintf(out, "- %s\n", line)
		}
		if genSaveRaw != "" {
			data, err := utils.PrettyJSON(gen.Graph)
			if err != nil {
				return err
			}
			if err := utils.WriteOutput(genSaveRaw, data); err != nil {
				return fmt.Errorf("write raw graph: %w", err)
			}
			fmt.Fprintf(out, "✓ Wrote raw graph to %s\n", genSaveRaw)
		}
		if genScene.output == "" {
			return nil
		}
		s.columns = ds.NumericColumns()
		scene := netgraph.Prepare(s.input(&gen.Graph, ds.Rows))
		return emitScene(cmd, scene, s, genScene.output)
	},
}

var networkNormalizeCmd = &cobra.Command{
	Use:   "normalize <graph.json>",
	Short: "Print the canonical form of an externally produced graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readRawGraph(args[0])
		if err != nil {
			return err
		}
		ns, err := netgraph.ParseNodeSize(normNodeSize)
		if err != nil {
			return err
		}
		g := netgraph.NormalizeGraph(raw, netgraph.NormalizeOptions{NodeSize: ns, SelectedColumns: normColumns})
		if g == nil {
			return errors.New("graph has no node and link arrays")
		}
		if n := netgraph.DanglingLinks(raw, g); n > 0 {
			log.Warn("links dropped", zap.Int("count", n), zap.String("file", args[0]))
		}
		g.Nodes = netgraph.AttachDegrees(g.Nodes, g.Links)
		data, err := utils.PrettyJSON(g)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var networkSaveCmd = &cobra.Command{
	Use:   "save <dataset>",
	Short: "Save a network configuration for a workspace dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := saveScene.resolve(cmd)
		if err != nil {
			return err
		}
		gt, err := netgraph.ParseGraphType(saveType)
		if err != nil {
			return err
		}
		w, err := resolveWorkspace(saveSrc.workspace)
		if err != nil {
			return err
		}
		ds, err := saveSrc.loadFrom(w, args[0])
		if err != nil {
			return err
		}
		if s.columns, err = selectColumns(ds.Dataset, s.columns); err != nil {
			return err
		}
		title := saveScene.title
		if title == "" {
			title = fmt.Sprintf("%s network", ds.Name)
		}
		conf := workspace.DefaultNetworkConfig(title, ds.record.ID)
		conf.GraphType = string(gt)
		conf.NodeSize = string(s.nodeSize)
		conf.Layout = string(s.layout)
		conf.ShowLabels = s.render.ShowLabels
		conf.CorrelationThreshold = s.threshold
		if len(s.columns) > 0 {
			conf.SelectedColumns = s.columns
		}
		var raw *netgraph.RawGraph
		var insights []string
		if saveGenerate {
			gen := netgraph.Generate(netgraph.GenerateInput{DatasetName: ds.Name, Columns: ds.Columns, Rows: ds.Rows, GraphType: gt})
			raw, insights = &gen.Graph, gen.Insights
		}
		n, err := w.SaveNetwork(conf, raw, insights)
		if err != nil {
			return err
		}
		if err := w.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved network %s: %s\n", n.ID, conf.Title)
		return nil
	},
}

var networkShowCmd = &cobra.Command{
	Use:   "show <network-id>",
	Short: "Render a saved network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := showScene.resolve(cmd)
		if err != nil {
			return err
		}
		w, err := resolveWorkspace(showWorkspace)
		if err != nil {
			return err
		}
		n, err := w.Network(args[0])
		if err != nil {
			return err
		}
		rec, ok := w.Datasets[n.Config.DatasetID]
		if !ok {
			return fmt.Errorf("%w: %s", workspace.ErrDatasetNotFound, n.Config.DatasetID)
		}
		var src sourceFlags
		ds, err := src.loadFrom(w, rec.ID)
		if err != nil {
			return err
		}
		for _, line := range n.Insights {
			fmt.Fprintf(cmd.ErrOrStderr(), "- %s\n", line)
		}
		// The saved configuration decides what is drawn; flags only pick
		// the canvas and output.
		in := n.SceneInput(ds.Rows, s.width, s.height)
		s.layout = in.Layout
		s.render.Title = n.Config.Title
		if !cmd.Flags().Changed("labels") {
			s.render.ShowLabels = n.Config.ShowLabels
		}
		return emitScene(cmd, netgraph.Prepare(in), s, showScene.output)
	},
}

var networkRmCmd = &cobra.Command{
	Use:   "rm <network-id>",
	Short: "Delete a saved network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkspace(rmWorkspace)
		if err != nil {
			return err
		}
		if err := w.DeleteNetwork(args[0]); err != nil {
			return err
		}
		if err := w.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted network %s\n", args[0])
		return nil
	},
}

func logDropped(raw *netgraph.RawGraph, s sceneSettings) {
	if raw == nil {
		return
	}
	g := netgraph.NormalizeGraph(raw, netgraph.NormalizeOptions{NodeSize: s.nodeSize, SelectedColumns: s.columns})
	if n := netgraph.DanglingLinks(raw, g); n > 0 {
		log.Warn("links dropped", zap.Int("count", n))
	}
}

func init() {
	rootCmd.AddCommand(networkCmd)
	networkCmd.AddCommand(networkBuildCmd, networkGenerateCmd, networkNormalizeCmd, networkSaveCmd, networkShowCmd, networkRmCmd)

	buildSrc.register(networkBuildCmd.Flags())
	buildScene.register(networkBuildCmd.Flags(), true)
	networkBuildCmd.Flags().StringVar(&buildGraph, "graph", "", "normalize and draw this graph JSON instead of building from rows")

	genSrc.register(networkGenerateCmd.Flags())
	genScene.register(networkGenerateCmd.Flags(), true)
	networkGenerateCmd.Flags().StringVar(&genType, "type", "general", "graph type: general|social|geo")
	networkGenerateCmd.Flags().StringVar(&genSaveRaw, "save-raw", "", "write the generated graph JSON to this path")

	networkNormalizeCmd.Flags().StringSliceVarP(&normColumns, "columns", "c", nil, "columns that must appear as nodes")
	networkNormalizeCmd.Flags().StringVar(&normNodeSize, "node-size", "", "node size: small|medium|large")

	saveSrc.register(networkSaveCmd.Flags())
	saveScene.register(networkSaveCmd.Flags(), true)
	networkSaveCmd.Flags().StringVar(&saveType, "type", "general", "graph type: general|social|geo")
	networkSaveCmd.Flags().BoolVar(&saveGenerate, "generate", false, "store the generated graph and insights with the network")

	networkShowCmd.Flags().StringVarP(&showWorkspace, "workspace", "w", "", "workspace name (default: the workspace enclosing the working directory)")
	showScene.register(networkShowCmd.Flags(), false)

	networkRmCmd.Flags().StringVarP(&rmWorkspace, "workspace", "w", "", "workspace name (default: the workspace enclosing the working directory)")
}
