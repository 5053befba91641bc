package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/pendsim/internal/analysis"
	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/sim"
	"github.com/san-kum/pendsim/internal/storage"
	"github.com/san-kum/pendsim/internal/viz"
)

var (
	perturbation float64
	members      int
	phaseLink    int
	poincare     bool
)

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	methods := args
	if len(methods) == 0 {
		methods = integrators.Methods()
	}

	fmt.Printf("comparing integrators: %d-link %s, dt=%g, t=%g\n\n", len(cfg.Links), bodyName(cfg.Compound), cfg.Dt, cfg.Duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tFINAL STATE\tDRIFT\tTIME\tENERGY")

	for _, name := range methods {
		m, err := integrators.ParseMethod(name)
		if err != nil {
			return err
		}
		c := cfg.Clone()
		c.Integrator = m.String()
		s, err := newSimulator(c)
		if err != nil {
			return err
		}

		start := time.Now()
		result, runErr := s.Run(cmd.Context(), sim.Config{Dt: c.Dt, Duration: c.Duration})
		elapsed := time.Since(start)
		if result == nil {
			return runErr
		}
		state := formatState(result.Final())
		if runErr != nil {
			state = "failed: " + runErr.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%.3e\t%v\t%s\n",
			m, state, result.EnergyDrift, elapsed.Round(time.Microsecond), viz.SparklineChart(downsample(result.Energies, 24), 24))
	}
	return w.Flush()
}

// perturbed returns a copy of cfg with the last angle moved by eps.
func perturbed(cfg *config.Config, eps float64) *config.Config {
	c := cfg.Clone()
	c.Links[len(c.Links)-1].Theta += eps
	return c
}

func runChaos(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	a, err := cfg.NewPendulum()
	if err != nil {
		return err
	}
	b, err := perturbed(cfg, perturbation).NewPendulum()
	if err != nil {
		return err
	}
	steps := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration}.Steps()

	seps, err := analysis.Separation(a, b, cfg.Dt, steps)
	if err != nil {
		return err
	}
	logSeps := make([]float64, len(seps))
	for i, s := range seps {
		logSeps[i] = math.Log10(math.Max(s, 1e-300))
	}
	plotSeries(logSeps, "log10 separation")

	fresh, err := cfg.NewPendulum()
	if err != nil {
		return err
	}
	lambda, err := analysis.LyapunovExponent(fresh, perturbation, cfg.Dt, cfg.Duration)
	if err != nil {
		return err
	}
	fmt.Printf("separation growth rate: %.4f 1/s\n", analysis.GrowthRate(seps, cfg.Dt, 1.0))
	fmt.Printf("lyapunov exponent:      %.4f 1/s\n", lambda)

	if members < 2 {
		return nil
	}
	ensemble := sim.NewEnsemble(func(idx int) (*sim.Simulator, error) {
		return newSimulator(perturbed(cfg, float64(idx)*perturbation))
	}, members)
	results, err := ensemble.Run(cmd.Context(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return err
	}

	last := len(cfg.Links) - 1
	finals := make([]float64, len(results))
	for i, r := range results {
		finals[i] = r.Final()[last]
	}
	fmt.Printf("ensemble of %d: final θ%d spread %.4e rad (min %.4f, max %.4f)\n",
		len(results), last, floats.Max(finals)-floats.Min(finals), floats.Min(finals), floats.Max(finals))
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.NewPendulum()
	if err != nil {
		return err
	}

	if poincare {
		section, err := analysis.GeneratePoincareSection(p, cfg.Dt, cfg.Duration)
		if err != nil {
			return err
		}
		fmt.Printf("poincaré section: %d crossings (x: θ%d, y: ω%d)\n", len(section.Points), p.Dimension()-1, p.Dimension()-1)
		fmt.Println(viz.PlotPoints(section.Points, 60, 20).String())
		return nil
	}

	portrait, err := analysis.GeneratePhasePortrait(p, phaseLink, cfg.Dt, cfg.Duration)
	if err != nil {
		return err
	}
	fmt.Printf("phase portrait: link %d, %d points (x: θ, y: ω)\n", portrait.Link, len(portrait.Points))
	fmt.Println(viz.PlotPoints(portrait.Points, 60, 20).String())
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)
	for i := 0; i < meta.Links; i++ {
		col := series.Column(fmt.Sprintf("theta_%d", i))
		f := analysis.DominantFrequency(col, meta.Dt)
		if f == 0 {
			fmt.Printf("theta_%d: no dominant frequency\n", i)
			continue
		}
		fmt.Printf("theta_%d: dominant %.4f Hz (period %.4f s)\n", i, f, 1/f)
	}
	fmt.Println()

	freqs, power := analysis.PowerSpectrum(series.Column("theta_0"), meta.Dt)
	if len(power) < 2 {
		return nil
	}
	// Skip DC and keep the low end where pendulum modes live.
	n := min(len(power), 81)
	graph := asciigraph.Plot(power[1:n],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum theta_0 (%.3f to %.3f Hz)", freqs[1], freqs[n-1])),
	)
	fmt.Println(graph)
	return nil
}
