package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/oscillo/internal/analysis"
	"github.com/san-kum/oscillo/internal/config"
	"github.com/san-kum/oscillo/internal/dynamo"
	"github.com/san-kum/oscillo/internal/integrators"
	"github.com/san-kum/oscillo/internal/metrics"
	"github.com/san-kum/oscillo/internal/optim"
	"github.com/san-kum/oscillo/internal/physics"
	"github.com/san-kum/oscillo/internal/sim"
	"github.com/san-kum/oscillo/internal/viz"
)

var (
	configFile string
	preset     string
	integrator string
	dt         float64
	every      int
	verbose    bool
	theme      string
	frameRate  int
	axisName   string
	forceInit  bool
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	settle     int
)

var log = slog.New(slog.NewTextHandler(io.Discard, nil))

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Building it resets every flag
// variable to its default.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "oscillo",
		Short:         "three-axis damped driven oscillator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVar(&integrator, "integrator", "", "integration scheme ("+strings.Join(integrators.Names(), ", ")+")")
	pf.Float64Var(&dt, "dt", 0, "timestep override")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and print positions",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().Int("ticks", config.DefaultTicks, "number of ticks")
	runCmd.Flags().IntVar(&every, "every", 20, "print every n ticks")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live 3D visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd} {
		c.Flags().StringVar(&theme, "theme", "night", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
		c.Flags().IntVar(&frameRate, "fps", config.DefaultRateHz, "frames (and ticks) per second")
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot the position of each axis",
		Args:  cobra.NoArgs,
		RunE:  plotAxes,
	}
	plotCmd.Flags().Int("ticks", config.DefaultTicks, "number of ticks")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "frequency analysis against the natural frequency",
		Args:  cobra.NoArgs,
		RunE:  analyzeAxes,
	}
	analyzeCmd.Flags().Int("ticks", 4096, "number of ticks")

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "phase portrait of one axis",
		Args:  cobra.NoArgs,
		RunE:  phasePlot,
	}
	phaseCmd.Flags().Int("ticks", config.DefaultTicks, "number of ticks")
	phaseCmd.Flags().StringVar(&axisName, "axis", "x", "axis to plot (x, y, z)")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator]...",
		Short: "compare integration schemes on the same configuration",
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Int("ticks", config.DefaultTicks, "number of ticks")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "steady-state amplitude over a range of one param",
		Args:  cobra.NoArgs,
		RunE:  sweepParamRange,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "x.w", "param key ("+strings.Join(sim.ParamKeys(), ", ")+")")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 6, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 24, "number of values")
	sweepCmd.Flags().Int("ticks", 2000, "ticks per run")
	sweepCmd.Flags().IntVar(&settle, "settle", 1200, "ticks ignored before measuring")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	initCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(runCmd, liveCmd, plotCmd, analyzeCmd, phaseCmd, compareCmd, sweepCmd, presetsCmd, initCmd)
	return rootCmd
}

// loadConfig starts from the preset (or the defaults), overlays the config
// file, then applies changed flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debug("config resolved", "preset", preset, "file", configFile, "integrator", cfg.Integrator, "dt", cfg.Dt, "mass", cfg.Mass)
	return cfg, nil
}

// tickFlag reads --ticks. Zero would mean run forever, so it is refused
// along with negative counts.
func tickFlag(cmd *cobra.Command) (int, error) {
	n, err := cmd.Flags().GetInt("ticks")
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("--ticks must be positive, got %d", n)
	}
	return n, nil
}

func newDriver(cmd *cobra.Command, opts ...sim.Option) (*config.Config, *sim.Driver, *sim.Panel, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	d, panel, err := cfg.Driver(opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, d, panel, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ticks, err := tickFlag(cmd)
	if err != nil {
		return err
	}
	_, d, panel, err := newDriver(cmd)
	if err != nil {
		return err
	}

	drift := metrics.NewEnergyDrift(d.Source())
	drift.Observe(d.States())
	peak := metrics.NewPeak(1e6)
	d.AddObserver(drift)
	d.AddObserver(peak)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "tick\tt\tx\ty\tz\t")
	n := 0
	err = d.Run(ctx, ticks, func(t float64, pos dynamo.Vec3) bool {
		n++
		if every <= 1 || n%every == 0 || n == ticks {
			fmt.Fprintf(w, "%d\t%.3f\t%.4f\t%.4f\t%.4f\t\n", n, t, pos.X, pos.Y, pos.Z)
		}
		return true
	})
	w.Flush()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "axis\tpeak |x|\tenergy drift\tenergy")
	for _, a := range dynamo.Axes {
		st := d.State(a)
		fmt.Fprintf(w, "%s\t%.4f\t%.4g\t%.4f\n", a, peak.Value(a), drift.Value(a), physics.Energy(st, panel.AxisParams(a), panel.Mass()))
	}
	w.Flush()

	for _, st := range d.States() {
		if !st.IsValid() {
			log.Warn("state is no longer finite", "t", d.Clock().Time, "state", st.String())
			break
		}
	}
	if peak.Stability() < 1 {
		log.Warn("trajectory left the stable region", "threshold", 1e6)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if frameRate < viz.MinRateHz || frameRate > viz.MaxRateHz {
		return fmt.Errorf("--fps must be in [%d, %d], got %d", viz.MinRateHz, viz.MaxRateHz, frameRate)
	}
	cfg, d, panel, err := newDriver(cmd)
	if err != nil {
		return err
	}
	m := viz.NewModel(d, panel,
		viz.WithTheme(theme),
		viz.WithColor(cfg.Color),
		viz.WithRate(frameRate),
	)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func plotAxes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ticks, err := tickFlag(cmd)
	if err != nil {
		return err
	}
	_, d, _, err := newDriver(cmd)
	if err != nil {
		return err
	}
	series := analysis.SampleAll(d, ticks)
	for _, a := range dynamo.Axes {
		graph := asciigraph.Plot(series[a],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s(t), %d ticks", a, ticks)),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

func analyzeAxes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ticks, err := tickFlag(cmd)
	if err != nil {
		return err
	}
	cfg, d, panel, err := newDriver(cmd)
	if err != nil {
		return err
	}
	series := analysis.SampleAll(d, ticks)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "axis\tdominant ω\tnatural ω\tdrive ω")
	for _, a := range dynamo.Axes {
		p := panel.AxisParams(a)
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n", a,
			analysis.DominantFrequency(series[a], cfg.Dt),
			physics.NaturalFrequency(p, panel.Mass()),
			p.ForcingFrequency)
	}
	w.Flush()

	ps, n := analysis.PowerSpectrum(series[dynamo.X])
	if len(ps) > 1 {
		limit := min(len(ps), 200)
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(ps[1:limit],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (x), n=%d", n)),
		))
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ticks, err := tickFlag(cmd)
	if err != nil {
		return err
	}
	a, err := parseAxis(axisName)
	if err != nil {
		return err
	}
	_, d, _, err := newDriver(cmd)
	if err != nil {
		return err
	}
	p := analysis.GeneratePhasePortrait(d, a, ticks)
	art := p.ASCII(80, 24)
	if art == "" {
		return fmt.Errorf("axis %s has no finite points to plot (try a smaller --dt)", a)
	}
	fmt.Fprintf(out, "phase portrait %s (x horizontal, v vertical)\n", a)
	fmt.Fprint(out, art)
	return nil
}

func parseAxis(s string) (dynamo.Axis, error) {
	for _, a := range dynamo.Axes {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown axis %q (expected x, y or z)", s)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ticks, err := tickFlag(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	drivers := make([]*sim.Driver, len(names))
	panels := make([]*sim.Panel, len(names))
	for i, name := range names {
		c := *cfg
		c.Integrator = name
		d, panel, err := c.Driver()
		if err != nil {
			return err
		}
		drivers[i], panels[i] = d, panel
	}

	start := cfg.InitialStates()
	results, err := sim.NewEnsemble(ticks, drivers...).Run(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "integrator\tx\ty\tz\tΔE (x)\n")
	for i, name := range names {
		pos := results[i]
		p := panels[i].AxisParams(dynamo.X)
		e0 := physics.Energy(start[dynamo.X], p, panels[i].Mass())
		e1 := physics.Energy(drivers[i].State(dynamo.X), p, panels[i].Mass())
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4g\n", name, pos.X, pos.Y, pos.Z, relDiff(e1, e0))
	}
	return w.Flush()
}

func sweepParamRange(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ticks, err := tickFlag(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s := optim.NewSweep(sweepParam, optim.Linspace(sweepFrom, sweepTo, sweepSteps), ticks, settle)
	log.Debug("sweep", "param", s.Param, "values", len(s.Values), "ticks", s.Ticks, "settle", s.Settle)

	points, err := s.Run(cmd.Context(), func() (*sim.Driver, *sim.Panel, error) {
		c := *cfg
		return c.Driver()
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tx\ty\tz\n", sweepParam)
	series := make([]float64, len(points))
	for i, p := range points {
		fmt.Fprintf(w, "%.3f\t%.4f\t%.4f\t%.4f\n", p.Value, p.Amplitude[dynamo.X], p.Amplitude[dynamo.Y], p.Amplitude[dynamo.Z])
		series[i] = p.Amplitude[dynamo.X]
	}
	w.Flush()

	if best, ok := optim.Best(points, dynamo.X); ok {
		fmt.Fprintf(out, "\npeak x amplitude %.4f at %s=%.3f\n", best.Amplitude[dynamo.X], sweepParam, best.Value)
	}
	if len(series) > 1 {
		fmt.Fprintln(out, asciigraph.Plot(series, asciigraph.Height(10), asciigraph.Caption("x amplitude")))
	}
	return nil
}

func relDiff(a, b float64) float64 {
	if b == 0 {
		return a
	}
	return (a - b) / math.Abs(b)
}

func writeConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := "oscillo.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s exists (use --force to overwrite)", path)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	log.Info("config written", "path", path)
	fmt.Fprintf(out, "wrote %s\n", path)
	return nil
}
