package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rainfx/internal/config"
	"github.com/san-kum/rainfx/internal/export"
	"github.com/san-kum/rainfx/internal/input"
	"github.com/san-kum/rainfx/internal/logging"
	"github.com/san-kum/rainfx/internal/rain"
	"github.com/san-kum/rainfx/internal/remote"
	"github.com/san-kum/rainfx/internal/scenario"
	"github.com/san-kum/rainfx/internal/storage"
	"github.com/san-kum/rainfx/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	level      float64
	fps        int
	theme      string
	logLevel   string
	logFile    string
	listen     string
	force      bool
	outFile    string
	snapshot   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "rainfx",
		Short:        "rain overlay controller",
		SilenceUsage: true,
		RunE:         runOverlay,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Float64Var(&level, "level", config.DefaultConfig().Level, "initial rain level")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (error, warn, info, debug)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file (terminal modes log nowhere without it)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the overlay in the terminal",
		RunE:  runOverlay,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the overlay with a websocket bridge for browser clients",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&listen, "listen", config.DefaultListen, "websocket listen address")

	traceCmd := &cobra.Command{
		Use:   "trace [scenario]",
		Short: "replay a scenario headlessly and store the parameter stream",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list traces",
		RunE:  listTraces,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [trace_id]",
		Short: "plot a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotTrace,
	}

	exportCmd := &cobra.Command{
		Use:   "export [trace_id]",
		Short: "export a trace as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportTrace,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <trace_id>.svg)")
	exportCmd.Flags().BoolVar(&snapshot, "snapshot", false, "draw the last frame instead of the parameter plot")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(runCmd, serveCmd, traceCmd, listCmd, plotCmd, exportCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("level") {
		cfg.Level = level
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Lookup("listen") != nil && flags.Changed("listen") {
		cfg.Listen = listen
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger writes to --log-file when given. Terminal modes pass quiet so
// nothing competes with the screen; headless commands fall back to stderr.
func newLogger(cfg *config.Config, quiet bool) (*slog.Logger, func(), error) {
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if logFile == "" {
		if quiet {
			return logging.Discard(), func() {}, nil
		}
		return logging.New(os.Stderr, lvl), func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(f, lvl), func() { f.Close() }, nil
}

func runOverlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info("starting overlay", "level", cfg.Level, "fps", cfg.FPS, "theme", cfg.Theme)
	return tui.Run(tui.Options{Config: cfg, Log: log}, nil)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	var prog *tea.Program
	bridge := remote.NewServer(func(ev input.Event) {
		prog.Send(tui.EventMsg{Event: ev})
	}, log)

	mux := http.NewServeMux()
	mux.Handle("/ws", bridge)
	srv := &http.Server{Addr: cfg.Listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	serveErr := make(chan error, 1)
	bind := func(p *tea.Program) {
		prog = p
		go func() {
			log.Info("websocket bridge listening", "addr", cfg.Listen)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("websocket bridge failed", "err", err)
				serveErr <- err
				p.Quit()
			}
		}()
	}

	runErr := tui.Run(tui.Options{Config: cfg, Log: log, Extra: []rain.Renderer{bridge}}, bind)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("websocket bridge shutdown", "err", err)
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve %s: %w", cfg.Listen, err)
	default:
	}
	return runErr
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	name := "decrease"
	if len(args) == 1 {
		name = args[0]
	}
	sc, err := scenario.Resolve(name)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := &scenario.Runner{Params: cfg.Params(), Surface: cfg.Rect(), Log: log}
	frames, err := runner.Run(ctx, sc)
	if err != nil {
		return fmt.Errorf("trace %s: %w", sc.Name, err)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	params := cfg.Params()
	if sc.Level != nil {
		params.DefaultLevel = *sc.Level
	}
	fpsUsed := sc.FPS
	if fpsUsed <= 0 {
		fpsUsed = cfg.FPS
	}
	id, err := st.Save(sc.Name, fpsUsed, params, frames)
	if err != nil {
		return fmt.Errorf("save trace: %w", err)
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("about: %s\n", sc.Description)
	}
	fmt.Printf("trace: %s\n", id)
	fmt.Printf("frames: %d\n\n", len(frames))
	printPlots(frames)
	return nil
}

func listTraces(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traces, err := st.List()
	if err != nil {
		return err
	}
	if len(traces) == 0 {
		fmt.Println("no traces")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tFRAMES\tDURATION\tMEAN\tPEAK")
	for _, tr := range traces {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.3f\t%.3f\n",
			tr.ID,
			tr.Scenario,
			tr.Timestamp.Format("2006-01-02 15:04:05"),
			tr.Frames,
			tr.Duration,
			tr.Summary["mean_rain"],
			tr.Summary["peak_rain"],
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
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("trace: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("frames: %d\n\n", len(frames))
	printPlots(frames)
	return nil
}

func printPlots(frames []rain.RenderParams) {
	if len(frames) == 0 {
		return
	}
	amount := make([]float64, len(frames))
	speed := make([]float64, len(frames))
	for i, f := range frames {
		amount[i] = f.RainAmount
		speed[i] = f.SpeedMultiplier
	}

	fmt.Println(asciigraph.Plot(amount,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption("rain amount"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(speed,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.Caption("speed multiplier"),
	))
	fmt.Println()

	summary := storage.Summarize(frames)
	fmt.Printf("mean %.3f  peak %.3f  easing %.0f%%  story %.0f%%\n",
		summary["mean_rain"], summary["peak_rain"],
		100*summary["decreasing_share"], 100*summary["story_share"])
}

func exportTrace(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	var svg string
	if snapshot {
		svg = export.CanvasToSVG(export.Snapshot(frames, meta.FPS), 4, "#87afd7")
	} else {
		svg = export.TraceToSVG(frames, 800, 240)
	}
	if svg == "" {
		return fmt.Errorf("nothing to export")
	}

	path := outFile
	if path == "" {
		path = meta.ID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported %s\n", path)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLEVEL\tFPS\tTHEME\tPULSE\tHOLD\tBIAS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%d\t%s\t%.2fs\t%.2fs\t%.2f\n",
			name, p.Level, p.FPS, p.Theme,
			p.Timing.PulseDuration, p.Timing.HoldDuration, p.Timing.DecreaseBias)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "SCENARIO\tABOUT")
	for _, name := range scenario.Names() {
		fmt.Fprintf(w, "%s\t%s\n", name, scenario.Builtin()[name].Description)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "rainfx.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists (use --force to overwrite)", path)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
