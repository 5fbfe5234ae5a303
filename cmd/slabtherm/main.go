package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/slabtherm/internal/config"
	"github.com/san-kum/slabtherm/internal/export"
	"github.com/san-kum/slabtherm/internal/metrics"
	"github.com/san-kum/slabtherm/internal/render"
	"github.com/san-kum/slabtherm/internal/slab"
	"github.com/san-kum/slabtherm/internal/store"
	"github.com/san-kum/slabtherm/internal/thermal"
	"github.com/san-kum/slabtherm/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	steps       int
	dtOverride  float64
	diffusivity float64
	tSlab       float64
	tMantle     float64
	snapSteps   []int

	frameRate  int
	snapStep   int
	profileCol int
	outPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "slabtherm",
		Short: "finite-difference heat diffusion around a subducting slab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".slabtherm", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation and store its snapshots",
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "render a run's snapshots as terminal heat maps",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	profileCmd := &cobra.Command{
		Use:   "profile [run_id]",
		Short: "plot the temperature-depth profile at one column",
		Args:  cobra.ExactArgs(1),
		RunE:  profileRun,
	}
	profileCmd.Flags().IntVar(&snapStep, "step", -1, "snapshot step (default: last)")
	profileCmd.Flags().IntVar(&profileCol, "col", -1, "grid column (default: slab center)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the slab sink in a live terminal view",
		RunE:  runLive,
	}
	addParamFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run with its grids as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store.New(dataDir).ExportRunJSON(args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write one snapshot grid as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().IntVar(&snapStep, "step", -1, "snapshot step (default: last)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "compose a run's snapshots into one SVG figure",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "slabtherm.svg", "output file")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark step throughput across grid sizes",
		RunE:  benchGrids,
	}

	stabilityCmd := &cobra.Command{
		Use:   "stability",
		Short: "show the derived timestep and its stability margin",
		RunE:  showStability,
	}
	addParamFlags(stabilityCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, profileCmd, liveCmd, presetsCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, benchCmd, stabilityCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&steps, "steps", 100, "number of timesteps")
	cmd.Flags().Float64Var(&dtOverride, "dt", 0, "timestep override (0 = derived stable dt)")
	cmd.Flags().Float64Var(&diffusivity, "diffusivity", 8.7e7, "thermal diffusivity")
	cmd.Flags().Float64Var(&tSlab, "t-slab", 0, "slab temperature (°C)")
	cmd.Flags().Float64Var(&tMantle, "t-mantle", 1300, "mantle temperature (°C)")
	cmd.Flags().IntSliceVar(&snapSteps, "snap", nil, "snapshot step indices")
}

// loadParameters resolves flag > config file > preset > default.
func loadParameters(cmd *cobra.Command) (thermal.Parameters, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return thermal.Parameters{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return thermal.Parameters{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dtOverride
	}
	if cmd.Flags().Changed("diffusivity") {
		cfg.Diffusivity = diffusivity
	}
	if cmd.Flags().Changed("t-slab") {
		cfg.TSlab = tSlab
	}
	if cmd.Flags().Changed("t-mantle") {
		cfg.TMantle = tMantle
	}
	if cmd.Flags().Changed("snap") {
		cfg.SnapshotSteps = snapSteps
	}

	return cfg.Parameters()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	p, err := loadParameters(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sim, err := slab.New(p)
	if err != nil {
		return err
	}
	for _, m := range metrics.Defaults(p) {
		sim.AddMetric(m)
	}

	fmt.Printf("running %dx%d grid for %d steps (dt=%.3e)...\n", p.NY(), p.NX(), p.Steps, sim.Dt())
	start := time.Now()

	result, runErr := sim.Run(context.Background())
	elapsed := time.Since(start)

	runID, err := st.Save(p, sim.Dt(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d, snapshots: %d\n", result.StepsTaken, len(result.Snapshots))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if runErr != nil {
		return fmt.Errorf("run aborted: %w", runErr)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tGRID\tSTEPS\tDT\tSNAPSHOTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%.3e\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Parameters.NY(), run.Parameters.NX(),
			run.StepsTaken,
			run.Dt,
			len(run.Snapshots),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	cs := render.ColorScale{Min: meta.Parameters.TSlab, Max: meta.Parameters.TMantle}

	for _, sn := range meta.Snapshots {
		field, err := st.LoadGrid(meta.ID, sn.Step)
		if err != nil {
			return err
		}
		fmt.Println(render.Caption(sn.Label))
		fmt.Print(render.Heatmap(field, cs, 100, 25))
		fmt.Println()
	}
	fmt.Println(render.Colorbar(cs, 40))
	return nil
}

func profileRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if len(meta.Snapshots) == 0 {
		return fmt.Errorf("run %s has no snapshots", meta.ID)
	}

	step := snapStep
	if step < 0 {
		step = meta.Snapshots[len(meta.Snapshots)-1].Step
	}
	field, err := st.LoadGrid(meta.ID, step)
	if err != nil {
		return err
	}

	col := profileCol
	if col < 0 {
		col = (meta.Parameters.SlabColMin + meta.Parameters.SlabColMax) / 2
	}

	data := render.DepthProfile(field, col)
	if data == nil {
		return fmt.Errorf("column %d outside grid of %d columns", col, field.Cols)
	}

	fmt.Printf("run: %s, %s, column %d\n\n", meta.ID, meta.Parameters.TimeLabel(step), col)
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("T (°C) vs depth (surface left)"),
	))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	p, err := loadParameters(cmd)
	if err != nil {
		return err
	}
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	return viz.Run(p, frameRate, st)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if len(meta.Snapshots) == 0 {
		return fmt.Errorf("run %s has no snapshots", meta.ID)
	}

	step := snapStep
	if step < 0 {
		step = meta.Snapshots[len(meta.Snapshots)-1].Step
	}
	field, err := st.LoadGrid(meta.ID, step)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	row := make([]string, field.Cols)
	for r := 0; r < field.Rows; r++ {
		for c, v := range field.Row(r) {
			row[c] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	snaps := make([]slab.Snapshot, 0, len(meta.Snapshots))
	for _, sn := range meta.Snapshots {
		field, err := st.LoadGrid(meta.ID, sn.Step)
		if err != nil {
			return err
		}
		snaps = append(snaps, slab.Snapshot{Step: sn.Step, Label: sn.Label, Field: field})
	}

	cs := render.ColorScale{Min: meta.Parameters.TSlab, Max: meta.Parameters.TMantle}
	svg := export.FigureSVG(snaps, cs)
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d snapshots)\n", outPath, len(snaps))
	return nil
}

func benchGrids(cmd *cobra.Command, args []string) error {
	sizes := []float64{50, 100, 200}
	nsteps := 100

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tSTEPS\tTIME\tSTEPS/SEC")

	for _, size := range sizes {
		p := thermal.Default()
		p.Width, p.Height = size, size
		p.SlabColMin = int(size) / 4
		p.SlabColMax = int(size)*3/4 - 1
		p.Steps = nsteps
		p.SnapshotSteps = nil

		sim, err := slab.New(p)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := sim.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%dx%d\t%d\t%v\t%.0f\n",
			p.NY(), p.NX(), result.StepsTaken, elapsed,
			float64(result.StepsTaken)/elapsed.Seconds())
	}
	return w.Flush()
}

func showStability(cmd *cobra.Command, args []string) error {
	p, err := loadParameters(cmd)
	if err != nil {
		return err
	}

	bound := p.StableDt()
	dt := p.EffectiveDt()

	fmt.Printf("diffusivity: %.3e\n", p.Diffusivity)
	fmt.Printf("spacing:     %g x %g km\n", p.Dx, p.Dy)
	fmt.Printf("dt:          %.6e\n", dt)
	fmt.Printf("bound:       %.6e\n", bound)
	if dt <= bound {
		fmt.Printf("margin:      %.1f%% of bound (stable)\n", 100*dt/bound)
	} else {
		fmt.Printf("margin:      %.1f%% of bound (WILL DIVERGE)\n", 100*dt/bound)
	}
	return nil
}
