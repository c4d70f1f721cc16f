package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/cellgrid/internal/automation"
	"github.com/san-kum/cellgrid/internal/config"
	"github.com/san-kum/cellgrid/internal/experiment"
	"github.com/san-kum/cellgrid/internal/export"
	"github.com/san-kum/cellgrid/internal/input"
	"github.com/san-kum/cellgrid/internal/storage"
	"github.com/san-kum/cellgrid/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir        string
	configFile     string
	logLevel       string
	theme          string
	inputPath      string
	preset         string
	generations    int
	maxGenerations int
	render         bool
	showMetrics    bool
	trace          bool
	save           bool
	frameRate      int
	outPath        string
	svgPath        string
	svgCell        float64
	iterations     int
	plotHeight     int
	plotWidth      int
	plotSVG        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "cellgrid",
		Short:        "cellular automaton runner",
		SilenceUsage: true,
		RunE:         runPicker,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "generations per second in live view")

	runCmd := &cobra.Command{
		Use:   "run [variant...]",
		Short: "run variants to completion",
		RunE:  runVariants,
	}
	addInputFlags(runCmd)
	runCmd.Flags().BoolVar(&render, "render", false, "print the final grid")
	runCmd.Flags().BoolVar(&showMetrics, "metrics", false, "collect run metrics")
	runCmd.Flags().BoolVar(&trace, "trace", false, "print every generation")
	runCmd.Flags().BoolVar(&save, "save", true, "store the run record")

	liveCmd := &cobra.Command{
		Use:   "live [variant]",
		Short: "step a variant with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addInputFlags(liveCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [family]",
		Short: "run every variant of a family in parallel",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	addInputFlags(batchCmd)
	batchCmd.Flags().BoolVar(&save, "save", true, "store the run records")

	benchCmd := &cobra.Command{
		Use:   "bench [variant]",
		Short: "benchmark a variant",
		Args:  cobra.ExactArgs(1),
		RunE:  benchVariant,
	}
	addInputFlags(benchCmd)
	benchCmd.Flags().IntVar(&iterations, "iterations", 5, "runs per measurement")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot active cells per generation",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotHeight, "height", viz.DefaultPlotHeight, "plot height")
	plotCmd.Flags().IntVar(&plotWidth, "width", viz.DefaultPlotWidth, "plot width")
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "also draw the count series as svg")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&svgPath, "svg", "", "also draw the final grid as svg")
	exportCmd.Flags().Float64Var(&svgCell, "cell", 12, "svg cell size in pixels")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of steps",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&save, "save", true, "store the run records")

	variantsCmd := &cobra.Command{
		Use:   "variants",
		Short: "list variants",
		RunE:  listVariants,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [family]",
		Short: "list available presets for a family",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for family: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %-10s %s\n", p, config.GetPreset(args[0], p).Description)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, batchCmd, benchCmd, listCmd, showCmd, plotCmd, exportCmd, scenarioCmd, variantsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input file, - for stdin")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in layout (see presets)")
	cmd.Flags().IntVar(&generations, "generations", 0, "life generations (default 6)")
	cmd.Flags().IntVar(&maxGenerations, "max-generations", config.DefaultMaxGenerations, "generation limit for fixed-point runs")
}

// loadConfig reads the config file when given; flags the user set win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") || configFile == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") || configFile == "" {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("theme") || configFile == "" {
		cfg.Theme = theme
	}
	if flags.Changed("fps") || configFile == "" {
		cfg.FrameRate = frameRate
	}
	if flags.Changed("input") {
		cfg.Input = inputPath
	}
	if flags.Changed("preset") {
		cfg.Preset = preset
		cfg.Input = ""
	}
	if flags.Changed("generations") {
		cfg.Generations = generations
	}
	if flags.Changed("max-generations") {
		cfg.MaxGenerations = maxGenerations
	}
	if flags.Changed("render") {
		cfg.Render = render
	}
	if flags.Changed("metrics") {
		cfg.Metrics = showMetrics
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	viz.SetTheme(cfg.Theme)
	return cfg, nil
}

// readInput returns the lines for a family and a short name for where they
// came from. Files are read once per path through cache, so stdin can feed
// several variants.
func readInput(cfg *config.Config, family string, cache map[string][]string) ([]string, string, error) {
	if cfg.Input != "" {
		if lines, ok := cache[cfg.Input]; ok {
			return lines, cfg.Input, nil
		}
		lines, err := input.ReadFile(cfg.Input)
		if err != nil {
			return nil, "", err
		}
		if cache != nil {
			cache[cfg.Input] = lines
		}
		return lines, cfg.Input, nil
	}

	name := cfg.Preset
	if name == "" {
		name = config.DefaultPresetFor(family)
	}
	p := config.GetPreset(family, name)
	if p == nil {
		return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets(family))
	}
	return p.Lines(), "preset:" + name, nil
}

func options(cfg *config.Config, log logrus.FieldLogger) experiment.Options {
	return experiment.Options{
		Generations:    cfg.Generations,
		MaxGenerations: cfg.MaxGenerations,
		Logger:         log,
		Metrics:        cfg.Metrics,
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runVariants(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}

	variants := args
	if len(variants) == 0 {
		variants = []string{cfg.Variant}
	}

	st := storage.New(cfg.DataDir)
	if save {
		if err := st.Init(); err != nil {
			return err
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	registry := experiment.NewRegistry()
	cache := make(map[string][]string)
	for _, variant := range variants {
		family, err := registry.Family(variant)
		if err != nil {
			return err
		}
		lines, source, err := readInput(cfg, family, cache)
		if err != nil {
			return err
		}

		opts := options(cfg, log)
		if trace {
			opts.Trace = os.Stdout
		}
		exp := experiment.New(experiment.Config{Variant: variant, Lines: lines, Options: opts})
		if err := exp.Setup(registry); err != nil {
			return err
		}

		log.WithFields(logrus.Fields{"variant": variant, "input": source}).Info("running")
		summary, err := exp.Run(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", variant, err)
		}

		final := exp.Runner().Render()
		fmt.Println(viz.RenderSummary(summary))
		if cfg.Render {
			fmt.Println(viz.RenderRunner(exp.Runner(), 0))
		}

		if save {
			runID, err := st.Save(source, summary, final)
			if err != nil {
				return err
			}
			fmt.Printf("run id: %s\n", runID)
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Input == "-" {
		return fmt.Errorf("live view cannot read the grid from stdin")
	}

	variant := cfg.Variant
	if len(args) == 1 {
		variant = args[0]
	}

	registry := experiment.NewRegistry()
	family, err := registry.Family(variant)
	if err != nil {
		return err
	}
	lines, _, err := readInput(cfg, family, nil)
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so keep logs quiet.
	opts := options(cfg, nil)
	factory := func() (experiment.Runner, error) {
		return registry.Build(variant, lines, opts)
	}

	m, err := viz.NewModel(factory, cfg.FrameRate)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runPicker(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	var choices []viz.Choice
	for _, variant := range registry.List() {
		family, _ := registry.Family(variant)
		for _, name := range config.ListPresets(family) {
			choices = append(choices, viz.Choice{
				Variant:     variant,
				Preset:      name,
				Description: config.GetPreset(family, name).Description,
			})
		}
	}

	opts := options(cfg, nil)
	build := func(c viz.Choice) viz.Factory {
		return func() (experiment.Runner, error) {
			family, err := registry.Family(c.Variant)
			if err != nil {
				return nil, err
			}
			return registry.Build(c.Variant, config.GetPreset(family, c.Preset).Lines(), opts)
		}
	}

	p := tea.NewProgram(viz.NewPicker(choices, cfg.FrameRate, build), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runBatch(cmd *cobra.Command, args []string) error {
	family := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	members := registry.Members(family)
	if len(members) == 0 {
		return fmt.Errorf("unknown family: %s", family)
	}

	lines, source, err := readInput(cfg, family, nil)
	if err != nil {
		return err
	}

	cfgs := make([]experiment.Config, len(members))
	for i, variant := range members {
		cfgs[i] = experiment.Config{Variant: variant, Lines: lines, Options: options(cfg, log)}
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	summaries, err := experiment.NewBatch(registry).Run(ctx, cfgs)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(cfg.DataDir)
	if save {
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tRESULT\tGENERATIONS\tEXTENTS\tTIME\tRUN")
	for _, s := range summaries {
		runID := "-"
		if save {
			// Batch keeps no grid, so the record stores no final dump.
			runID, err = st.Save(source, s, "")
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%v\t%s\n",
			s.Variant, s.Count, s.Generations, joinInts(s.Extents, "x"), s.Elapsed, runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ncompleted in %v\n", elapsed)
	return nil
}

func benchVariant(cmd *cobra.Command, args []string) error {
	variant := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", iterations)
	}

	registry := experiment.NewRegistry()
	family, err := registry.Family(variant)
	if err != nil {
		return err
	}
	lines, source, err := readInput(cfg, family, nil)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s on %s\n\n", variant, source)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tGENERATIONS\tRESULT\tTIME\tGEN/SEC")

	var total time.Duration
	for i := 0; i < iterations; i++ {
		exp := experiment.New(experiment.Config{Variant: variant, Lines: lines, Options: options(cfg, nil)})
		if err := exp.Setup(registry); err != nil {
			return err
		}

		start := time.Now()
		summary, err := exp.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		total += elapsed

		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n",
			i+1, summary.Generations, summary.Count, elapsed, float64(summary.Generations)/elapsed.Seconds())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nmean: %v\n", total/time.Duration(iterations))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Printf("no runs found in %s\n", st.Dir())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVARIANT\tTIME\tINPUT\tRESULT\tGENERATIONS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Variant,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Input,
			run.Count,
			run.Generations,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	rec, err := st.Load(args[0])
	if err != nil {
		return err
	}
	final, err := st.LoadFinal(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.RenderSummary(&rec.Summary))
	fmt.Printf("run id: %s\ninput: %s\n", rec.ID, rec.Input)
	if final != "" {
		fmt.Println()
		printDump(os.Stdout, final)
	}
	return nil
}

func printDump(w io.Writer, dump string) {
	for _, line := range strings.Split(strings.TrimRight(dump, "\n"), "\n") {
		if strings.HasPrefix(line, "z=") {
			fmt.Fprintln(w, line)
			continue
		}
		fmt.Fprintln(w, viz.StyleRow(line))
	}
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	rec, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if len(rec.Counts) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", rec.ID)
	fmt.Printf("variant: %s\n", rec.Variant)
	fmt.Printf("generations: %d\n\n", rec.Generations)
	fmt.Println(viz.PlotCounts(rec.Counts, plotHeight, plotWidth, "active cells per generation"))

	if len(rec.Changes) > 0 {
		fmt.Println()
		fmt.Println(viz.PlotCounts(rec.Changes, plotHeight, plotWidth, "changes per generation"))
	}

	if plotSVG != "" {
		if err := writeCountsSVG(plotSVG, rec.Counts); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", plotSVG)
	}
	return nil
}

const (
	countsSVGWidth  = 600
	countsSVGHeight = 200
)

func writeCountsSVG(path string, counts []int) error {
	svg := export.CountsToSVG(counts, countsSVGWidth, countsSVGHeight, string(viz.CurrentTheme.Accent))
	if svg == "" {
		return fmt.Errorf("need at least two generations to draw, got %d", len(counts))
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	rec, err := st.Load(args[0])
	if err != nil {
		return err
	}
	final, err := st.LoadFinal(args[0])
	if err != nil {
		return err
	}

	if svgPath != "" {
		planes, labels := export.SplitDump(final)
		svg := export.GridToSVG(planes, labels, svgCell, viz.CurrentTheme)
		if svg == "" {
			return fmt.Errorf("run %s has no final grid", rec.ID)
		}
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", svgPath)
	}

	if outPath != "" {
		if err := storage.ExportJSONFile(outPath, rec.Input, &rec.Summary, final); err != nil {
			return err
		}
		fmt.Printf("exported %s to %s\n", rec.ID, outPath)
		return nil
	}
	return storage.ExportJSON(os.Stdout, rec.Input, &rec.Summary, final)
}

// scenarioResolver reads a step's inline layout, falling back to its input
// file or preset.
func scenarioResolver(cfg *config.Config, cache map[string][]string) automation.Resolver {
	return func(step automation.ScenarioStep, family string) ([]string, error) {
		if step.Layout != "" {
			return input.SplitText(step.Layout)
		}
		stepCfg := *cfg
		stepCfg.Input, stepCfg.Preset = step.Input, step.Preset
		lines, _, err := readInput(&stepCfg, family, cache)
		return lines, err
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if scenario.Name != "" {
		fmt.Printf("scenario: %s\n", scenario.Name)
	}

	resolve := scenarioResolver(cfg, make(map[string][]string))

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), resolve, options(cfg, log), os.Stdout)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if save {
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tVARIANT\tRESULT\tGENERATIONS\tCHECK\tRUN")
	failed := 0
	for i, r := range results {
		check := "-"
		if r.Step.Expect != nil {
			check = "ok"
			if r.Mismatch() {
				check = fmt.Sprintf("want %d", *r.Step.Expect)
				failed++
			}
		}
		runID := "-"
		if save {
			source := r.Step.SaveAs
			if source == "" {
				source = args[0]
			}
			if runID, err = st.Save(source, r.Summary, r.Final); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n", i+1, r.Summary.Variant, r.Summary.Count, r.Summary.Generations, check, runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d step(s) did not match the expected result", failed)
	}
	return nil
}

func listVariants(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tFAMILY\tDESCRIPTION")
	for _, name := range registry.List() {
		family, _ := registry.Family(name)
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, family, registry.Describe(name))
	}
	return w.Flush()
}

func joinInts(vals []int, sep string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, sep)
}
