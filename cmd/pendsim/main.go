package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/control"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/logging"
	"github.com/san-kum/pendsim/internal/metrics"
	"github.com/san-kum/pendsim/internal/physics"
	"github.com/san-kum/pendsim/internal/sim"
	"github.com/san-kum/pendsim/internal/storage"
	"github.com/san-kum/pendsim/internal/viz"
)

// stableAngle is the |θ| bound used by the stability metric.
const stableAngle = 0.1

var (
	dataDir    string
	configFile string
	preset     string
	method     string
	compound   bool
	gravity    float64
	dt         float64
	duration   float64
	lengths    []float64
	masses     []float64
	thetas     []float64
	omegas     []float64
	controller string
	torque     float64
	kp         float64
	ki         float64
	kd         float64
	target     float64
	saveRun    bool
	outFile    string

	logger *slog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "pendsim",
		Short:         "simple and double pendulum simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.Default()
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pendsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and archive it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	pendulumFlags(runCmd)
	runCmd.Flags().BoolVar(&saveRun, "save", true, "archive the run in the data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the pendulum in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	pendulumFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot angles and total energy of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run with its trajectory as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the trajectory of a run as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the joint traces of a run as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "trace.svg", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [method...]",
		Short: "compare integrators on the same pendulum",
		RunE:  compareIntegrators,
	}
	pendulumFlags(compareCmd)

	chaosCmd := &cobra.Command{
		Use:   "chaos",
		Short: "separation of nearby trajectories and Lyapunov estimate",
		Args:  cobra.NoArgs,
		RunE:  runChaos,
	}
	pendulumFlags(chaosCmd)
	chaosCmd.Flags().Float64Var(&perturbation, "eps", 1e-8, "initial perturbation of the last angle")
	chaosCmd.Flags().IntVar(&members, "members", 8, "number of perturbed ensemble members")

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "phase portrait or Poincaré section",
		Args:  cobra.NoArgs,
		RunE:  phasePlot,
	}
	pendulumFlags(phaseCmd)
	phaseCmd.Flags().IntVar(&phaseLink, "link", 0, "link index for the portrait")
	phaseCmd.Flags().BoolVar(&poincare, "poincare", false, "plot the Poincaré section instead")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd,
		exportSVGCmd, presetsCmd, compareCmd, chaosCmd, phaseCmd, analyzeCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func pendulumFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "start from a named preset")
	f.StringVar(&method, "method", integrators.SemiImplicitEuler.String(),
		"integrator ("+strings.Join(integrators.Methods(), ", ")+")")
	f.BoolVar(&compound, "compound", false, "uniform rods instead of point-mass bulbs")
	f.Float64Var(&gravity, "gravity", physics.StandardGravity, "gravitational acceleration")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration")
	f.Float64SliceVar(&lengths, "lengths", nil, "link lengths, pivot first")
	f.Float64SliceVar(&masses, "masses", nil, "link masses")
	f.Float64SliceVar(&thetas, "thetas", nil, "initial angles (rad)")
	f.Float64SliceVar(&omegas, "omegas", nil, "initial angular velocities (rad/s)")
	f.StringVar(&controller, "controller", "none", "torque source ("+strings.Join(control.Names(), ", ")+")")
	f.Float64Var(&torque, "torque", 0, "constant torque")
	f.Float64Var(&kp, "kp", config.DefaultKp, "pid kp")
	f.Float64Var(&ki, "ki", config.DefaultKi, "pid ki")
	f.Float64Var(&kd, "kd", config.DefaultKd, "pid kd")
	f.Float64Var(&target, "target", 0, "controller target angle")
}

// buildConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Integrator = method
	}
	if flags.Changed("compound") {
		cfg.Compound = compound
	}
	if flags.Changed("gravity") {
		g := gravity
		cfg.Gravity = &g
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("controller") {
		cfg.Controller = controller
	}
	if flags.Changed("torque") {
		cfg.ControllerParams.Torque = torque
	}
	if flags.Changed("kp") {
		cfg.ControllerParams.Kp = kp
	}
	if flags.Changed("ki") {
		cfg.ControllerParams.Ki = ki
	}
	if flags.Changed("kd") {
		cfg.ControllerParams.Kd = kd
	}
	if flags.Changed("target") {
		cfg.ControllerParams.Target = target
	}
	links, err := overrideLinks(cfg.Links, lengths, masses, thetas, omegas)
	if err != nil {
		return nil, err
	}
	cfg.Links = links

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overrideLinks applies per-link flag values on top of links. Flags given
// together must agree in length. They may cover only the first links of the
// chain, but growing the chain needs every link field.
func overrideLinks(links []config.LinkConfig, ls, ms, ths, oms []float64) ([]config.LinkConfig, error) {
	n, given := 0, 0
	for _, vs := range [][]float64{ls, ms, ths, oms} {
		if len(vs) == 0 {
			continue
		}
		if given > 0 && len(vs) != n {
			return nil, fmt.Errorf("%w: per-link flags differ in length", dynamo.ErrValidation)
		}
		n = len(vs)
		given++
	}
	if n > len(links) && given < 4 {
		return nil, fmt.Errorf("%w: growing the chain to %d links needs --lengths, --masses, --thetas and --omegas",
			dynamo.ErrValidation, n)
	}

	out := make([]config.LinkConfig, max(n, len(links)))
	copy(out, links)
	for i, v := range ls {
		out[i].Length = v
	}
	for i, v := range ms {
		out[i].Mass = v
	}
	for i, v := range ths {
		out[i].Theta = v
	}
	for i, v := range oms {
		out[i].Omega = v
	}
	return out, nil
}

func newSimulator(cfg *config.Config) (*sim.Simulator, error) {
	p, err := cfg.NewPendulum()
	if err != nil {
		return nil, err
	}
	ctrl, err := cfg.NewController()
	if err != nil {
		return nil, err
	}
	s := sim.New(p, ctrl)
	s.SetLogger(logger)
	s.AddMetric(metrics.NewEnergy(p))
	s.AddMetric(metrics.NewEnergyDrift(p))
	s.AddMetric(metrics.NewControlEffort())
	s.AddMetric(metrics.NewStability(stableAngle))
	return s, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %d-link %s pendulum (%s)...\n", len(cfg.Links), bodyName(cfg.Compound), cfg.Integrator)
	start := time.Now()
	result, runErr := s.Run(cmd.Context(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if result == nil {
		return runErr
	}
	elapsed := time.Since(start)

	var simErr *dynamo.SimulationError
	if errors.As(runErr, &simErr) {
		fmt.Printf("stopped at step %d (t=%.4f): %v\n", simErr.Step, simErr.Time, simErr.Wrapped)
	}

	if saveRun {
		st := storage.New(dataDir)
		runID, err := st.Save(cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("final state: %s\n", formatState(result.Final()))
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	logger.Info("run complete", "steps", result.StepsTaken, "elapsed", elapsed, "energy_drift", result.EnergyDrift)
	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.NewPendulum()
	if err != nil {
		return err
	}
	ctrl, err := cfg.NewController()
	if err != nil {
		return err
	}

	name := cfg.Name
	if name == "" {
		name = fmt.Sprintf("%d-link %s", len(cfg.Links), bodyName(cfg.Compound))
	}
	final, err := tea.NewProgram(viz.NewModel(p, ctrl, cfg.Dt, name), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(viz.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
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
	fmt.Fprintln(w, "ID\tLINKS\tBODY\tTIME\tDURATION\tDT\tINTEG\tCTRL\tDRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\t%.2e\n",
			run.ID,
			run.Links,
			bodyName(run.Compound),
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Controller,
			run.EnergyDrift,
		)
	}
	return w.Flush()
}

// resolveRun returns the given run id or, with no arguments, the latest one.
func resolveRun(st *storage.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	meta, err := st.Latest()
	if err != nil {
		return "", err
	}
	return meta.ID, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d-link %s, %s\n\n", meta.ID, meta.Links, bodyName(meta.Compound), meta.Integrator)
	for i := 0; i < meta.Links; i++ {
		plotSeries(series.Column(fmt.Sprintf("theta_%d", i)), fmt.Sprintf("theta_%d (rad)", i))
	}
	plotSeries(series.Column("total"), "total energy (J)")
	return nil
}

func plotSeries(data []float64, caption string) {
	if len(data) == 0 {
		return
	}
	graph := asciigraph.Plot(downsample(data, 80),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()
}

func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = data[i*(len(data)-1)/(n-1)]
	}
	return out
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	meta, result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	_, result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	meta, result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}
	params, err := meta.Params()
	if err != nil {
		return err
	}
	p, err := physics.New(params)
	if err != nil {
		return err
	}

	traces := make([][]r2.Vec, p.Dimension())
	for _, x := range result.States {
		for i, joint := range p.JointPositionsAt(x) {
			traces[i] = append(traces[i], joint)
		}
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := viz.WriteSVG(f, traces, 800, 800); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d states)\n", outFile, len(result.States))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLINKS\tBODY\tINTEG\tCTRL\tTHETAS")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		ths := make([]float64, len(cfg.Links))
		for i, l := range cfg.Links {
			ths[i] = l.Theta
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			name, len(cfg.Links), bodyName(cfg.Compound), cfg.Integrator, cfg.Controller, formatState(ths))
	}
	return w.Flush()
}

func bodyName(compound bool) string {
	if compound {
		return "rod"
	}
	return "point"
}

func formatState(x []float64) string {
	parts := make([]string, len(x))
	for i, v := range x {
		parts[i] = fmt.Sprintf("%.4f", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
