package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"glowtrail/config"
	"glowtrail/effect"
	"glowtrail/game"
)

var (
	configFile string
	logLevel   string
	seed       int64
	width      int
	height     int
	fullscreen bool
	profileDir string
	// simulate
	frames      int
	pressEvery  int
	holdFrames  int
	orbitRadius float64
	orbitStep   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "glowtrail",
		Short:         "cursor trail and click burst animation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: runWindow,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed for burst speeds (0 = time based)")
	rootCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "window width")
	rootCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "window height")
	rootCmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "start fullscreen")
	rootCmd.Flags().StringVar(&profileDir, "profile-dir", "", "write CPU profiles here on frame rate drops")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "run the loop headless with a scripted pointer and plot collection sizes",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}
	simulateCmd.Flags().IntVar(&frames, "frames", 300, "frames to simulate")
	simulateCmd.Flags().IntVar(&pressEvery, "press-every", 45, "frames between presses (0 disables)")
	simulateCmd.Flags().IntVar(&holdFrames, "hold", 10, "frames each press is held")
	simulateCmd.Flags().Float64Var(&orbitRadius, "radius", 150, "pointer orbit radius in pixels")
	simulateCmd.Flags().Float64Var(&orbitStep, "step", 0.12, "pointer orbit step in radians per frame")

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(simulateCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("glowtrail failed", "error", err)
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// loadConfig reads --config if given and applies explicitly set flags on top
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}
	if flags.Changed("fullscreen") {
		cfg.Window.Fullscreen = fullscreen
	}
	if flags.Changed("profile-dir") {
		cfg.ProfileDir = profileDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	g, err := game.NewGame(cfg)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	ebiten.SetVsyncEnabled(cfg.Window.VSync)
	ebiten.SetWindowClosingHandled(true)
	if !cfg.Window.ShowCursor {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	loop := effect.New(cfg.Effect, cfg.Seed)
	loop.Resize(cfg.Window.Width, cfg.Window.Height)
	loop.Start()
	defer loop.Stop()

	script := effect.Script{
		Center:      effect.Vec2{X: float64(cfg.Window.Width) / 2, Y: float64(cfg.Window.Height) / 2},
		Radius:      orbitRadius,
		AngularStep: orbitStep,
		PressEvery:  pressEvery,
		HoldFrames:  holdFrames,
	}
	slog.Debug("simulating", "frames", frames, "press_every", pressEvery, "seed", cfg.Seed)
	samples := script.Run(loop, frames)
	if len(samples) == 0 {
		return errors.New("no frames simulated")
	}

	glowSeries := make([]float64, len(samples))
	particleSeries := make([]float64, len(samples))
	peakGlows, peakParticles := 0, 0
	for i, s := range samples {
		glowSeries[i] = float64(s.Glows)
		particleSeries[i] = float64(s.Particles)
		peakGlows = max(peakGlows, s.Glows)
		peakParticles = max(peakParticles, s.Particles)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, asciigraph.Plot(glowSeries,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("live glows per frame"),
	))
	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.Plot(particleSeries,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("live particles per frame"),
	))

	last := samples[len(samples)-1]
	fmt.Fprintf(out, "\nframes: %d  glows: %d (peak %d)  particles: %d (peak %d)  hue: %d\n",
		last.Frame, last.Glows, peakGlows, last.Particles, peakParticles, last.Hue)
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	path := "glowtrail.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	slog.Info("default config written", "path", path)
	return nil
}
