package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/schedviz/internal/chart"
	"github.com/user/schedviz/internal/config"
	"github.com/user/schedviz/internal/loader"
	"github.com/user/schedviz/internal/report"
)

var (
	// Used for flags.
	configPath     string
	outputFilePath string

	cfg    config.Config
	logger *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "schedviz",
		Short: "schedviz renders CPU scheduler simulation output as charts.",
		Long: `A tool that turns the output of an energy-aware CPU scheduler simulation
into a dashboard: a Gantt chart of time slices, a histogram and cumulative
distribution of operating frequencies, and energy consumption over time.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}

	renderCmd = &cobra.Command{
		Use:   "render INPUT...",
		Short: "Renders one or more simulation output files.",
		Long: `Renders each INPUT (a JSON or .json.xz file, or a glob such as
"runs/**/*.json") to a report in the configured format.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			for _, pattern := range args {
				matches, err := loader.Discover(pattern)
				if err != nil {
					return err
				}
				files = append(files, matches...)
			}
			if outputFilePath != "" && len(files) > 1 {
				return fmt.Errorf("--output-file-path can only be used with a single input, got %d", len(files))
			}

			for _, file := range files {
				outPath := outputFilePath
				if outPath == "" {
					outPath = defaultOutputPath(file)
				}
				if _, err := renderFile(file, outPath, nil); err != nil {
					return err
				}
			}
			return nil
		},
	}

	watchCmd = &cobra.Command{
		Use:   "watch INPUT",
		Short: "Re-renders a report whenever the input file changes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := watchTarget(args[0])
			if err != nil {
				return err
			}
			outPath := outputFilePath
			if outPath == "" {
				outPath = defaultOutputPath(input)
			}

			// The adapter is reused so every redraw replaces the previous charts.
			adapter, err := renderFile(input, outPath, nil)
			if err != nil {
				return err
			}

			w, err := loader.NewWatcher([]string{input}, cfg.Watch.Debounce, logger)
			if err != nil {
				return err
			}
			defer w.Close()

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigs)

			lastFingerprint, _ := loader.Fingerprint(input)
			logger.Info("watching for changes", "input", input, "output", outPath)
			for {
				select {
				case <-sigs:
					logger.Info("stopping watch")
					return nil
				case _, ok := <-w.Events():
					if !ok {
						return nil
					}
					fp, err := loader.Fingerprint(input)
					if err != nil {
						logger.Warn("failed to fingerprint input", "input", input, "error", err)
						continue
					}
					if fp == lastFingerprint {
						logger.Debug("input unchanged, skipping redraw", "input", input)
						continue
					}
					if _, err := renderFile(input, outPath, adapter); err != nil {
						logger.Error("redraw failed", "input", input, "error", err)
						continue
					}
					lastFingerprint = fp
				}
			}
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Prints the schedviz version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(report.Version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	for _, cmd := range []*cobra.Command{renderCmd, watchCmd} {
		cmd.Flags().StringVarP(&outputFilePath, "output-file-path", "o", "", "Output file path for the report")
		cmd.Flags().StringP("format", "f", "", "Report format (html, json, xlsx)")
		cmd.Flags().StringP("backend", "b", "", "Chart backend (gonum, gochart)")
		cmd.Flags().String("image-format", "", "Embedded image format (png, svg)")
		cmd.Flags().Int("width", 0, "Chart width in pixels")
		cmd.Flags().Int("height", 0, "Chart height in pixels")
		cmd.Flags().String("output-dir", "", "Directory for reports when no output path is given")
	}
	watchCmd.Flags().Duration("debounce", 0, "Delay before redrawing after a change")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the config file, applies flag overrides and installs the logger.
func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("backend") {
		cfg.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("image-format") {
		cfg.ImageFormat, _ = flags.GetString("image-format")
	}
	if flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("debounce") {
		cfg.Watch.Debounce, _ = flags.GetDuration("debounce")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// watchTarget resolves pattern to the single file the watch command follows.
func watchTarget(pattern string) (string, error) {
	matches, err := loader.Discover(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) != 1 {
		return "", fmt.Errorf("watch needs exactly one input file, %q matched %d", pattern, len(matches))
	}
	return matches[0], nil
}

// defaultOutputPath names the report after the input file, e.g. run.json.xz -> run.html.
func defaultOutputPath(input string) string {
	base := filepath.Base(input)
	for _, ext := range []string{".xz", ".json"} {
		base = strings.TrimSuffix(base, ext)
	}
	return filepath.Join(cfg.OutputDir, base+"."+cfg.Format)
}

// renderFile loads input and writes the report to outPath. A nil adapter
// creates a new one; the adapter used is returned for reuse.
func renderFile(input, outPath string, adapter report.ReportAdapter) (report.ReportAdapter, error) {
	absInput, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("error getting absolute path for '%s': %w", input, err)
	}
	absOutput, err := filepath.Abs(outPath)
	if err != nil {
		return nil, fmt.Errorf("invalid output file path '%s': %w", outPath, err)
	}

	logger.Info("loading simulation output", "input", absInput)
	data, err := loader.Load(absInput)
	if err != nil {
		return nil, err
	}
	fingerprint, err := loader.Fingerprint(absInput)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint %s: %w", absInput, err)
	}

	meta := report.NewMetadata(absInput, fingerprint, cfg.Backend)
	if adapter == nil {
		drawer, err := chart.NewDrawer(cfg.Backend)
		if err != nil {
			return nil, err
		}
		lib := chart.NewRasterLibrary(drawer, cfg.DrawOptions())
		adapter, err = report.New(cfg.Format, meta, lib, logger)
		if err != nil {
			return nil, err
		}
	} else if ms, ok := adapter.(report.MetadataSetter); ok {
		ms.SetMetadata(meta)
	}

	logger.Debug("preparing report data", "format", cfg.Format, "backend", cfg.Backend)
	if err := adapter.PrepareData(data); err != nil {
		return nil, fmt.Errorf("failed to prepare %s report data: %w", cfg.Format, err)
	}
	if err := adapter.Write(absOutput); err != nil {
		return nil, fmt.Errorf("failed to write %s report to %s: %w", cfg.Format, absOutput, err)
	}
	logger.Info(strings.ToUpper(cfg.Format)+" report generated successfully", "output", absOutput)
	return adapter, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
