package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/spatialdyn/internal/compute"
	"github.com/san-kum/spatialdyn/internal/config"
	"github.com/san-kum/spatialdyn/internal/experiment"
	"github.com/san-kum/spatialdyn/internal/export"
	"github.com/san-kum/spatialdyn/internal/gradcheck"
	"github.com/san-kum/spatialdyn/internal/storage"
	"github.com/san-kum/spatialdyn/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	backend    string
	save       bool
	jsonPath   string
	svgPath    string
	theme      string
	seed       int64
	tol        float64
	plot       bool
	sweep      bool
	iterations int
	matrix     string
	artIndex   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "spatialdyn",
		Short:         "spatial algebra and articulation assembly lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".spatialdyn", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	jacobianCmd := &cobra.Command{
		Use:   "jacobian [preset]",
		Short: "assemble the spatial jacobian",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssemble(cmd.Context(), args, storage.Jacobian)
		},
	}

	massCmd := &cobra.Command{
		Use:   "mass [preset]",
		Short: "assemble the block-diagonal mass matrix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssemble(cmd.Context(), args, storage.Mass)
		},
	}

	for _, c := range []*cobra.Command{jacobianCmd, massCmd} {
		c.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		c.Flags().StringVar(&backend, "backend", "", "compute backend (serial, cpu, auto)")
		c.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
		c.Flags().StringVar(&jsonPath, "json", "", "export matrices as JSON (- for stdout)")
		c.Flags().StringVar(&svgPath, "svg", "", "export the sparsity pattern as SVG")
		c.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")
	}

	gradcheckCmd := &cobra.Command{
		Use:   "gradcheck",
		Short: "compare every adjoint against finite differences",
		Args:  cobra.NoArgs,
		RunE:  runGradcheck,
	}
	gradcheckCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	gradcheckCmd.Flags().Float64Var(&tol, "tol", gradcheck.DefaultTolerance, "relative error tolerance")
	gradcheckCmd.Flags().BoolVar(&plot, "plot", false, "plot errors per case")
	gradcheckCmd.Flags().BoolVar(&sweep, "sweep", false, "search for the best finite-difference step")
	gradcheckCmd.Flags().StringVar(&svgPath, "svg", "", "export the error series as SVG")
	gradcheckCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	inspectCmd := &cobra.Command{
		Use:   "inspect [preset]",
		Short: "browse assembled matrices interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	inspectCmd.Flags().StringVar(&backend, "backend", "", "compute backend (serial, cpu, auto)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available mechanism presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().StringVar(&matrix, "matrix", storage.Jacobian, "matrix to draw (jacobian, mass)")
	showCmd.Flags().IntVar(&artIndex, "art", 0, "articulation index")
	showCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "benchmark assembly on every backend",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPreset,
	}
	benchCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	benchCmd.Flags().IntVar(&iterations, "iterations", 1000, "iterations per backend")

	exportConfigCmd := &cobra.Command{
		Use:   "export-config [preset] [path]",
		Short: "write a preset as an editable yaml config",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetPreset(args[0])
			if cfg == nil {
				return fmt.Errorf("unknown preset: %s", args[0])
			}
			if err := config.Save(args[1], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[1])
			return nil
		},
	}

	rootCmd.AddCommand(jacobianCmd, massCmd, gradcheckCmd, inspectCmd, presetsCmd, listCmd, showCmd, benchCmd, exportConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
	return nil
}

// loadConfig resolves --config, then the preset argument, then the
// default config, and applies --backend on top.
func loadConfig(args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case len(args) > 0:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", args[0], strings.Join(config.ListPresets(), ", "))
		}
	default:
		cfg = config.DefaultConfig()
	}

	if backend != "" {
		cfg.Backend = backend
	}
	return cfg, nil
}

func setup(ctx context.Context, args []string, adjoint bool) (*config.Config, *experiment.Result, error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return nil, nil, err
	}

	exp := experiment.New(cfg)
	if adjoint {
		exp = exp.WithAdjoint()
	}
	if err := exp.Setup(); err != nil {
		return nil, nil, err
	}

	res, err := exp.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cfg, res, nil
}

func runAssemble(ctx context.Context, args []string, kind string) error {
	cfg, res, err := setup(ctx, args, false)
	if err != nil {
		return err
	}
	m := res.Model
	th := viz.GetTheme(theme)

	data, layout, elapsed := res.Jacobian, m.JacobianLayout(), res.JacobianTime
	if kind == storage.Mass {
		data, layout, elapsed = res.Mass, m.MassLayout(), res.MassTime
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("%s %s", cfg.Name, kind)))
	fmt.Println(viz.Metric("backend", res.Backend))
	fmt.Println(viz.Metric("joints", fmt.Sprint(m.JointCount())))
	fmt.Println(viz.Metric("dofs", fmt.Sprint(m.DofCount())))
	fmt.Println(viz.Metric("elapsed", elapsed.String()))
	for _, name := range sortedKeys(res.Metrics) {
		fmt.Printf("  %-24s %.6g\n", name, res.Metrics[name])
	}
	fmt.Println()

	for ai, a := range m.Articulations {
		rows, cols := layout.Rows[ai], layout.Cols[ai]
		fmt.Printf("%s  %dx%d  nonzeros %d\n", a.Name, rows, cols, viz.Nonzeros(data[layout.Starts[ai]:layout.Starts[ai]+rows*cols]))
		fmt.Print(viz.RenderSparsity(data[layout.Starts[ai]:], rows, cols, 6, th))
		fmt.Println()
	}

	if svgPath != "" && len(m.Articulations) > 0 {
		svg := export.SparsityToSVG(data[layout.Starts[0]:], layout.Rows[0], layout.Cols[0], 6, 12, string(th.Nonzero))
		if err := export.WriteFile(svgPath, svg); err != nil {
			return err
		}
		slog.Info("wrote svg", "path", svgPath, "articulation", m.Articulations[0].Name)
	}

	assembly := res.Assembly(cfg.Name, cfg.Seed)
	if kind == storage.Jacobian {
		assembly.Mass = nil
	} else {
		assembly.Jacobian = nil
	}

	if jsonPath != "" {
		if err := storage.ExportJSON(jsonPath, assembly); err != nil {
			return err
		}
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(assembly)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func runGradcheck(cmd *cobra.Command, args []string) error {
	th := viz.GetTheme(theme)

	if sweep {
		step, worst, err := gradcheck.BestStep(cmd.Context(), seed, gradcheck.DefaultSteps)
		if err != nil {
			return err
		}
		fmt.Println(viz.Metric("best step", fmt.Sprintf("%.0e", step)))
		fmt.Println(viz.Metric("worst rel", fmt.Sprintf("%.3e", worst)))
		return nil
	}

	start := time.Now()
	results, err := gradcheck.Run(seed, tol)
	if err != nil {
		return err
	}
	slog.Debug("gradcheck finished", "cases", len(results), "elapsed", time.Since(start))

	fmt.Print(viz.RenderResults(results, th))
	if plot {
		fmt.Println()
		fmt.Println(viz.PlotErrors(results))
	}

	if svgPath != "" {
		series := make([]float64, len(results))
		for i, r := range results {
			series[i] = math.Log10(math.Max(r.MaxRel, 1e-18))
		}
		if err := export.WriteFile(svgPath, export.SeriesToSVG(series, 800, 300, string(th.Nonzero))); err != nil {
			return err
		}
	}

	if failed := gradcheck.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%d gradient checks failed", len(failed))
	}
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, res, err := setup(cmd.Context(), args, false)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewInspector(cfg.Name, res.Model, res.Jacobian, res.Mass))
	_, err = p.Run()
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tARTICULATIONS\tJOINTS\tDOFS")

	for _, name := range config.ListPresets() {
		m, err := config.GetPreset(name).Build()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", name, len(m.Articulations), m.JointCount(), m.DofCount())
	}
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tBACKEND\tJOINTS\tDOFS\tMATRICES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Backend,
			run.Joints,
			run.Dofs,
			strings.Join(run.Matrices, ","),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("backend: %s\n", meta.Backend)
	fmt.Printf("joints: %d  dofs: %d\n", meta.Joints, meta.Dofs)
	for _, name := range sortedKeys(meta.Metrics) {
		fmt.Printf("  %s: %.6g\n", name, meta.Metrics[name])
	}
	fmt.Println()

	rows, err := st.LoadMatrix(runID, matrix, artIndex)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	cols := len(rows[0])
	flat := make([]float64, 0, len(rows)*cols)
	for _, r := range rows {
		flat = append(flat, r...)
	}
	fmt.Printf("%s [%d]  %dx%d\n", matrix, artIndex, len(rows), cols)
	fmt.Print(viz.RenderSparsity(flat, len(rows), cols, 6, viz.GetTheme(theme)))
	return nil
}

func benchPreset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	m, err := cfg.Build()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	J := make([]float64, m.JacobianLayout().Size)
	M := make([]float64, m.MassLayout().Size)

	fmt.Printf("benchmarking %s (%d joints, %d dofs, %d iterations)\n\n", cfg.Name, m.JointCount(), m.DofCount(), iterations)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tJACOBIAN\tMASS\tASSEMBLIES/SEC")

	for _, name := range []string{"serial", "cpu"} {
		b, err := compute.ByName(name)
		if err != nil {
			return err
		}

		var jt, mt time.Duration
		for i := 0; i < iterations; i++ {
			start := time.Now()
			if err := m.AssembleJacobian(ctx, b, J); err != nil {
				return err
			}
			jt += time.Since(start)

			start = time.Now()
			if err := m.AssembleMass(ctx, b, M); err != nil {
				return err
			}
			mt += time.Since(start)
		}

		n := time.Duration(max(iterations, 1))
		rate := float64(iterations) / (jt + mt).Seconds()
		fmt.Fprintf(w, "%s\t%v\t%v\t%.0f\n", name, jt/n, mt/n, rate)
		b.Cleanup()
	}

	return w.Flush()
}
