package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/wobble/internal/analysis"
	"github.com/san-kum/wobble/internal/config"
	"github.com/san-kum/wobble/internal/experiment"
	"github.com/san-kum/wobble/internal/export"
	"github.com/san-kum/wobble/internal/motion"
	"github.com/san-kum/wobble/internal/storage"
	"github.com/san-kum/wobble/internal/viz"
	"github.com/san-kum/wobble/internal/watch"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	intervalMs int
	count      int
	theme      string
	behaviors  []string
	verbose    bool
	watchFile  bool
	ticks      int
	outFile    string
	frameTicks int
	frameOut   string

	logger = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "wobble",
		Short:         "terminal sprite animator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(cmd)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".wobble", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addSceneFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate sprites in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	liveCmd.Flags().BoolVar(&watchFile, "watch", false, "reload when the config file changes")
	rootCmd.Flags().BoolVar(&watchFile, "watch", false, "reload when the config file changes")

	traceCmd := &cobra.Command{
		Use:   "trace [behavior]",
		Short: "record a headless trace of one behavior",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}
	addSceneFlags(traceCmd)
	traceCmd.Flags().IntVar(&ticks, "ticks", 120, "ticks to record")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "step the scene and write a frame as SVG",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	addSceneFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&frameTicks, "ticks", 30, "ticks to advance before capturing")
	snapshotCmd.Flags().StringVarP(&frameOut, "out", "o", "frame.svg", "output file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded traces",
		Args:  cobra.NoArgs,
		RunE:  listTraces,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [trace_id]",
		Short: "plot a recorded trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotTrace,
	}

	exportCmd := &cobra.Command{
		Use:   "export [trace_id]",
		Short: "export trace metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportTrace,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [trace_id]",
		Short: "report the motion period of each sprite",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeTrace,
	}

	pathCmd := &cobra.Command{
		Use:   "path [trace_id]",
		Short: "write the first sprite's path as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  pathSVG,
	}
	pathCmd.Flags().StringVarP(&outFile, "out", "o", "path.svg", "output file")

	behaviorsCmd := &cobra.Command{
		Use:   "behaviors",
		Short: "list motion behaviors",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range motion.NewRegistry().Names() {
				fmt.Println(name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scene presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s %3d sprites  %3dms  %s\n", name, p.Layout.Count, p.IntervalMs, strings.Join(p.Behaviors, ","))
			}
		},
	}

	rootCmd.AddCommand(liveCmd, traceCmd, snapshotCmd, listCmd, plotCmd, exportCmd, analyzeCmd, pathCmd, behaviorsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scene file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset scene")
	cmd.Flags().Int64Var(&seed, "seed", 0, "behavior selection seed (0 = clock)")
	cmd.Flags().IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "tick interval in milliseconds")
	cmd.Flags().IntVar(&count, "count", config.DefaultCount, "sprites to lay out when the scene lists none")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme: "+strings.Join(viz.ThemeNames(), ", "))
	cmd.Flags().StringSliceVar(&behaviors, "behaviors", nil, "restrict behaviors")
}

// newLogger logs to a file under the data dir for the live view so the
// terminal stays clean.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if isLive(cmd) {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, err
		}
		path := filepath.Join(dataDir, "wobble.log")
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}
	return cfg.Build()
}

func isLive(cmd *cobra.Command) bool {
	return cmd.Name() == "live" || cmd.Name() == "wobble"
}

// loadConfig layers preset, file and explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("interval") {
		cfg.IntervalMs = intervalMs
	}
	if flags.Changed("count") {
		cfg.Layout.Count = count
		cfg.Elements = nil
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("behaviors") {
		cfg.Behaviors = behaviors
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}
	if err := exp.Driver().Start(ctx); err != nil {
		return err
	}

	m := viz.NewModel(ctx, exp.Driver(), exp.Grid(), cfg.Layout.Width, cfg.Layout.Height, cfg.FPS, cfg.Theme)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if watchFile {
		if configFile == "" {
			exp.Driver().Stop()
			return fmt.Errorf("--watch needs --config")
		}
		w, err := watch.New(configFile, logger)
		if err != nil {
			exp.Driver().Stop()
			return err
		}
		if err := w.Start(ctx); err != nil {
			exp.Driver().Stop()
			return err
		}
		defer w.Stop()
		go forwardReloads(ctx, cmd, w, p)
	}

	// The view may have swapped in a reloaded driver; it stops whichever one
	// it holds on quit, and Stop is a no-op for one already stopped.
	_, err = p.Run()
	exp.Driver().Stop()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// forwardReloads rebuilds the scene for every reloaded config and hands it
// to the running view.
func forwardReloads(ctx context.Context, cmd *cobra.Command, w *watch.Watcher, p *tea.Program) {
	for {
		select {
		case <-ctx.Done():
			return
		case cfg := <-w.Updates():
			applyFlags(cmd, cfg)
			exp, err := experiment.New(cfg, logger)
			if err != nil {
				logger.Warn("reload rejected", zap.Error(err))
				p.Send(viz.ErrMsg{Err: err})
				continue
			}
			p.Send(viz.ReloadMsg{
				Animator: exp.Driver(),
				Grid:     exp.Grid(),
				Width:    cfg.Layout.Width,
				Height:   cfg.Layout.Height,
				Theme:    cfg.Theme,
			})
		}
	}
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("count") && configFile == "" && preset == "" {
		cfg.Layout.Count = 1
	}

	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}

	name := "scene"
	if len(args) > 0 {
		name = args[0]
		if err := exp.Pin(name); err != nil {
			return err
		}
	}

	start := time.Now()
	samples, err := exp.Record(ticks)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(exp.Metadata(name, ticks), samples)
	if err != nil {
		return err
	}
	logger.Debug("trace recorded", zap.String("id", id), zap.Int("samples", len(samples)), zap.Duration("elapsed", time.Since(start)))

	fmt.Printf("trace id: %s\n", id)
	fmt.Printf("ticks: %d  sprites: %d  seed: %d\n\n", ticks, len(exp.Elements()), exp.Driver().Seed())
	first := exp.Elements()[0].ID
	behavior, _ := exp.Driver().Behavior(first)
	plotElement(samples, first, behavior)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}
	if _, err := exp.Record(frameTicks); err != nil {
		return err
	}

	canvas := viz.NewCanvas(cfg.Layout.Width, cfg.Layout.Height)
	viz.Draw(canvas, exp.Grid().Snapshot())
	svg := export.CanvasToSVG(canvas, 10, string(viz.GetTheme(cfg.Theme).Accent))
	if err := os.WriteFile(frameOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s after %d ticks\n", frameOut, frameTicks)
	return nil
}

func listTraces(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traces, err := st.List()
	if err != nil {
		return err
	}

	if len(traces) == 0 {
		fmt.Println("no traces found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tTICKS\tINTERVAL\tSPRITES\tSEED")
	for _, tr := range traces {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dms\t%d\t%d\n",
			tr.ID,
			tr.Name,
			tr.Timestamp.Format("2006-01-02 15:04:05"),
			tr.Ticks,
			tr.IntervalMs,
			len(tr.Behaviors),
			tr.Seed,
		)
	}
	return w.Flush()
}

func plotTrace(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("trace: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))

	ids := make([]string, 0, len(meta.Behaviors))
	for id := range meta.Behaviors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	const maxPlots = 3
	for i, id := range ids {
		if i == maxPlots {
			fmt.Printf("(%d more sprites not shown)\n", len(ids)-maxPlots)
			break
		}
		plotElement(samples, id, meta.Behaviors[id])
	}
	return nil
}

// plotElement draws the fields a behaviour actually moves.
func plotElement(samples []storage.Sample, id, behavior string) {
	type series struct {
		caption string
		field   func(motion.Transform) float64
	}
	var plots []series
	switch {
	case behavior == "bounce":
		plots = []series{{"vertical offset", storage.DY}}
	case strings.HasPrefix(behavior, "orbit"):
		plots = []series{{"x offset", storage.DX}, {"y offset", storage.DY}}
	case strings.HasPrefix(behavior, "spin"):
		plots = []series{{"angle", storage.Angle}}
	default:
		plots = []series{{"x offset", storage.DX}, {"y offset", storage.DY}, {"angle", storage.Angle}}
	}

	for _, pl := range plots {
		data := storage.Series(samples, id, pl.field)
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s %s (%s)", id, pl.caption, behavior)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
}

func exportTrace(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func analyzeTrace(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("period analysis: %s\n\n", meta.ID)

	ids := make([]string, 0, len(meta.Behaviors))
	for id := range meta.Behaviors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	interval := time.Duration(meta.IntervalMs) * time.Millisecond
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPRITE\tBEHAVIOR\tPERIOD\tSECONDS\tFFT ESTIMATE")
	for _, id := range ids {
		field := storage.DY
		if strings.HasPrefix(meta.Behaviors[id], "spin") {
			field = storage.Angle
		}
		data := storage.Series(samples, id, field)

		period := "-"
		seconds := "-"
		if p := analysis.Period(data, 1e-6); p > 0 {
			period = fmt.Sprintf("%d ticks", p)
			seconds = fmt.Sprintf("%.2fs", (time.Duration(p) * interval).Seconds())
		}
		estimate := "-"
		if p := analysis.DominantPeriod(data); p > 0 {
			estimate = fmt.Sprintf("~%.1f ticks", p)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", id, meta.Behaviors[id], period, seconds, estimate)
	}
	return w.Flush()
}

func pathSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data in trace %s", args[0])
	}

	id := samples[0].Element
	points := make([]export.Point, 0)
	for _, s := range samples {
		if s.Element == id {
			points = append(points, export.Point{X: s.DX, Y: s.DY})
		}
	}
	svg := export.PathToSVG(points, 400, 400, "#00ffff")
	if svg == "" {
		return fmt.Errorf("sprite %s has fewer than two samples", id)
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d points)\n", outFile, len(points))
	return nil
}
