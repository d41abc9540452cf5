package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/san-kum/actinfriction/internal/analysis"
	"github.com/san-kum/actinfriction/internal/config"
	"github.com/san-kum/actinfriction/internal/equations"
	"github.com/san-kum/actinfriction/internal/experiment"
	"github.com/san-kum/actinfriction/internal/export"
	"github.com/san-kum/actinfriction/internal/storage"
	"github.com/san-kum/actinfriction/internal/sweep"
	"github.com/san-kum/actinfriction/internal/viz"
)

var (
	dataDir     string
	preset      string
	configFile  string
	dt          float64
	tolerance   float64
	integrator  string
	duration    float64
	overrides   []string
	jsonPath    string
	column      int
	sweepParam  string
	sweepValues []float64
)

func init() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		}),
	))
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "actinfriction",
		Short: "sliding dynamics of crosslinked actin filaments",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".actinfriction", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a sliding simulation and store the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&jsonPath, "json", "", "also export the trajectory as JSON (\"-\" for stdout)")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a simulation with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	equilibriumCmd := &cobra.Command{
		Use:   "equilibrium [scenario]",
		Short: "report the ring equilibrium state",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showEquilibrium,
	}
	addScenarioFlags(equilibriumCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [out.csv]",
		Short: "export a stored trajectory as CSV",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [out.svg]",
		Short: "export a stored trajectory as an SVG chart",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&column, "column", 0, "state column to chart")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "run a scenario across a grid of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "cX", "parameter to sweep")
	sweepCmd.Flags().Float64SliceVar(&sweepValues, "values", nil, "grid values")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list scenarios and their presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, liveCmd, equilibriumCmd, listCmd, plotCmd,
		exportCmd, exportCSVCmd, exportSVGCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "preset name")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep")
	cmd.Flags().Float64Var(&duration, "time", 0, "integration horizon")
	cmd.Flags().Float64Var(&tolerance, "tol", 0, "adaptive step tolerance")
	cmd.Flags().StringVar(&integrator, "integrator", "", "integrator (euler, rk4, rk45)")
	cmd.Flags().StringArrayVar(&overrides, "set", nil, "parameter override name=value (repeatable)")
}

// resolveConfig builds the run configuration from --config or --preset plus
// flag overrides. Flags beat the file, --set beats the parameter section.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config

	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	case len(args) == 1 && preset != "":
		cfg = config.GetPreset(args[0], preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %s/%s (available: %v)",
				args[0], preset, config.ListPresets(args[0]))
		}
	case len(args) == 1:
		names := config.ListPresets(args[0])
		if len(names) == 0 {
			return nil, fmt.Errorf("unknown scenario: %s", args[0])
		}
		return nil, fmt.Errorf("pick a preset for %s with --preset (available: %v) or pass --config", args[0], names)
	default:
		return nil, fmt.Errorf("pass a scenario with --preset, or --config")
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}

	for _, expr := range overrides {
		name, raw, ok := strings.Cut(expr, "=")
		if !ok {
			return nil, fmt.Errorf("bad --set %q, want name=value", expr)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --set %q: %w", expr, err)
		}
		cfg, err = cfg.WithParam(name, value)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("time") {
		var err error
		cfg, err = cfg.WithParam("tend", duration)
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	slog.Info("running", "scenario", cfg.Scenario, "integrator", cfg.Integrator,
		"dt", cfg.Dt, "horizon", cfg.Duration())
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	slog.Info("completed", "elapsed", elapsed, "run", runID, "steps", result.StepsTaken)
	for _, simErr := range result.Errors {
		slog.Warn("simulation stopped early", "err", simErr)
	}
	for name, val := range result.Metrics {
		slog.Info("metric", "name", name, "value", val)
	}

	if cfg.Scenario == config.ScenarioRingCX || cfg.Scenario == config.ScenarioRingNd {
		series := analysis.DeriveRing(result, *cfg.Ring)
		frac := series.ConstrictionFraction()
		last := len(series.Radius) - 1
		slog.Info("ring state",
			"radius", series.Radius[last],
			"radius_eq", series.RadiusEq,
			"constriction", frac[last])
	}

	switch jsonPath {
	case "":
	case "-":
		if err := storage.ExportJSONStdout(cfg, result); err != nil {
			return err
		}
	default:
		if err := storage.ExportJSON(jsonPath, cfg, result); err != nil {
			return err
		}
		slog.Info("trajectory exported", "path", jsonPath)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	dyn, err := reg.GetSystem(cfg)
	if err != nil {
		return err
	}
	integ, err := reg.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	return viz.Run(cfg, dyn, integ)
}

func showEquilibrium(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Ring == nil {
		return fmt.Errorf("equilibrium needs a ring scenario, got %s", cfg.Scenario)
	}
	p := *cfg.Ring

	rEq := equations.EquilibriumRingRadius(p)
	lambdaEq := equations.RadiusToLambda(rEq, p)

	// Cross-check the closed form against the force balance.
	balance := func(lmbda float64) float64 {
		return equations.BendingForce(lmbda, p) + equations.CondensationForce(p)
	}
	root, err := analysis.Bisect(balance, 0, p.Lf/p.Deltas*0.999, 1e-9, 200)
	if err != nil {
		return fmt.Errorf("force balance has no root below the geometric limit: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "initial radius\t%.6g m\n", equations.LambdaToRadius(0, p))
	fmt.Fprintf(w, "equilibrium radius\t%.6g m\n", rEq)
	fmt.Fprintf(w, "equilibrium lambda\t%.6g\n", lambdaEq)
	fmt.Fprintf(w, "force balance root\t%.6g\n", root)
	fmt.Fprintf(w, "equilibrium occupancy\t%.6g\n", equations.EquilibriumOccupancy(p))
	fmt.Fprintf(w, "bare friction zeta0\t%.6g kg/s\n", equations.Zeta0Ring(p))
	fmt.Fprintf(w, "condensation force\t%.6g N\n", equations.CondensationForce(p))
	fmt.Fprintf(w, "bending force at lambda=0\t%.6g N\n", equations.BendingForce(0, p))
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tHORIZON\tDT\tINTEG\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4gs\t%.4gs\t%s\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(states))

	for varIdx := 0; varIdx < len(states[0]); varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		caption := fmt.Sprintf("x%d vs time", varIdx)
		if varIdx < len(meta.Columns) {
			caption = meta.Columns[varIdx] + " vs time"
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if len(args) == 2 {
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	defer w.Flush()

	header := append([]string{"time"}, meta.Columns...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'g', -1, 64)}
		for _, v := range states[i] {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}
	if column < 0 || column >= len(states[0]) {
		return fmt.Errorf("column %d out of range, state has %d components", column, len(states[0]))
	}

	values := make([]float64, len(states))
	for i := range states {
		values[i] = states[i][column]
	}

	if err := export.WriteSVG(args[1], times, values, 800, 400, "#00ccff"); err != nil {
		return err
	}
	slog.Info("chart exported", "path", args[1])
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(sweepValues) < 1 {
		return fmt.Errorf("pass grid values with --values")
	}

	s := sweep.New(sweepParam, sweepValues)
	slog.Info("sweeping", "scenario", cfg.Scenario, "param", sweepParam,
		"points", len(sweepValues), "workers", s.Workers)

	points, err := s.Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL STATE\tTIME\tERROR\n", sweepParam)
	for _, pt := range points {
		errStr := ""
		if pt.Err != nil {
			errStr = pt.Err.Error()
		}
		fmt.Fprintf(w, "%.6g\t%v\t%.4gs\t%s\n", pt.Value, pt.Final, pt.Time, errStr)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	reg := experiment.NewRegistry()

	if len(args) == 0 {
		fmt.Println("scenarios:")
		for _, s := range reg.ListScenarios() {
			fmt.Printf("  %s\n", s)
		}
		fmt.Printf("integrators: %v\n", reg.ListIntegrators())
		return nil
	}

	names := config.ListPresets(args[0])
	if len(names) == 0 {
		fmt.Printf("no presets for scenario: %s\n", args[0])
		return nil
	}
	fmt.Printf("presets for %s:\n", args[0])
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
