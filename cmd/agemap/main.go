package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/san-kum/agemap/internal/anim"
	"github.com/san-kum/agemap/internal/config"
	"github.com/san-kum/agemap/internal/export"
	"github.com/san-kum/agemap/internal/geo"
	"github.com/san-kum/agemap/internal/logging"
	"github.com/san-kum/agemap/internal/source"
	"github.com/san-kum/agemap/internal/style"
	"github.com/san-kum/agemap/internal/viz"
)

var (
	configFile string
	verbose    bool
	// view
	debugLog bool
	// Source selection, shared by view/snapshot/stats
	sourceName   string
	dataPath     string
	themeName    string
	yearProperty string
	// fetch
	bboxStr  string
	fetchOut string
	// snapshot
	snapYear   float64
	snapFormat string
	snapOut    string
)

// main is the entry point for the agemap CLI; it registers commands and
// flags, launches the interactive viewer when no subcommand is given, and
// exits the process with status 1 if command execution returns an error.
func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "agemap",
		Short: "building-age choropleth for the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive viewer when no command given
			return runView(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")

	viewCmd := &cobra.Command{
		Use:   "view [preset]",
		Short: "explore building ages interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}
	addSourceFlags(viewCmd)
	viewCmd.Flags().BoolVar(&debugLog, "debug", false, "write debug logs to agemap.log")

	fetchCmd := &cobra.Command{
		Use:   "fetch [preset]",
		Short: "download building footprints from overpass into a geojson file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFetch,
	}
	fetchCmd.Flags().StringVar(&bboxStr, "bbox", "", "bounding box minLon,minLat,maxLon,maxLat")
	fetchCmd.Flags().StringVar(&fetchOut, "out", "buildings.geojson", "output path")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [preset]",
		Short: "render a still frame to svg or png",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSnapshot,
	}
	addSourceFlags(snapshotCmd)
	snapshotCmd.Flags().Float64Var(&snapYear, "year", 0, "display year (default: newest in the data)")
	snapshotCmd.Flags().StringVar(&snapFormat, "format", "svg", "output format: svg or png")
	snapshotCmd.Flags().StringVar(&snapOut, "out", "", "output path (default: generated name)")

	statsCmd := &cobra.Command{
		Use:   "stats [preset]",
		Short: "summarize the loaded footprints",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStats,
	}
	addSourceFlags(statsCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in city presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSOURCE\tBBOX")
			for _, name := range config.PresetNames() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%.5f,%.5f,%.5f,%.5f\n",
					name, p.Source, p.BBox.MinLon, p.BBox.MinLat, p.BBox.MaxLon, p.BBox.MaxLat)
			}
			return w.Flush()
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range viz.Themes {
				swatch := lipgloss.NewStyle().Foreground(t.Primary).Render("██")
				fmt.Printf("%s %s\n", swatch, t.Name)
			}
		},
	}

	rootCmd.AddCommand(viewCmd, fetchCmd, snapshotCmd, statsCmd, presetsCmd, themesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	// The viewer owns the terminal, so logs go to a file or nowhere.
	logger := logging.New(io.Discard, log.InfoLevel)
	if debugLog || verbose {
		f, err := os.OpenFile("agemap.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = logging.New(f, log.DebugLevel)
	}
	ctx := logging.WithContext(context.Background(), logger)

	set, err := loadFeatures(ctx, cfg)
	if err != nil {
		return err
	}
	if set.Len() == 0 {
		return fmt.Errorf("no footprints loaded")
	}

	viz.SetTheme(cfg.Theme)
	logger.Info("starting viewer", "footprints", set.Len(), "theme", cfg.Theme)
	return viz.Run(set, anim.Default())
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if bboxStr != "" {
		box, err := parseBBox(bboxStr)
		if err != nil {
			return err
		}
		cfg.BBox = box
	}
	if cfg.BBox.Width() <= 0 || cfg.BBox.Height() <= 0 {
		return fmt.Errorf("bounding box required: pass --bbox or a preset")
	}

	logger := stderrLogger(cfg)
	ctx := logging.WithContext(context.Background(), logger)

	f := source.NewFetcher(cfg.Overpass.Endpoint, cfg.Timeout(), logger)
	set, err := f.FetchBuildings(ctx, cfg.BBox)
	if err != nil {
		return err
	}
	if err := source.SaveGeoJSON(set, fetchOut, cfg.YearProperty); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d footprints)\n", fetchOut, set.Len())
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	ctx := logging.WithContext(context.Background(), stderrLogger(cfg))
	set, err := loadFeatures(ctx, cfg)
	if err != nil {
		return err
	}
	if set.Len() == 0 {
		return fmt.Errorf("no footprints loaded")
	}

	year := snapYear
	if !cmd.Flags().Changed("year") {
		if _, newest, ok := set.YearRange(); ok {
			year = float64(newest)
		}
	}

	spec := style.ForYear(year)
	frame := set.Bounds.Pad(0.05)
	w, h := cfg.SnapshotSize()

	out := snapOut
	switch snapFormat {
	case "svg":
		if out == "" {
			out = export.UniqueName("agemap", "svg")
		}
		if err := os.WriteFile(out, []byte(export.SVG(set, spec, frame, w, h)), 0o644); err != nil {
			return err
		}
	case "png":
		if out == "" {
			out = export.UniqueName("agemap", "png")
		}
		if err := export.SavePNG(out, set, spec, frame, w, h); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s (want svg or png)", snapFormat)
	}

	fmt.Printf("wrote %s (%d footprints at year %.0f)\n", out, set.Len(), year)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	ctx := logging.WithContext(context.Background(), stderrLogger(cfg))
	set, err := loadFeatures(ctx, cfg)
	if err != nil {
		return err
	}

	dated := 0
	for _, f := range set.Features {
		if f.Year != 0 {
			dated++
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "source\t%s\n", set.Source)
	fmt.Fprintf(w, "footprints\t%d\n", set.Len())
	fmt.Fprintf(w, "dated\t%d\n", dated)
	fmt.Fprintf(w, "undated\t%d\n", set.Len()-dated)
	if oldest, newest, ok := set.YearRange(); ok {
		fmt.Fprintf(w, "oldest\t%d\n", oldest)
		fmt.Fprintf(w, "newest\t%d\n", newest)
	}
	b := set.Bounds
	fmt.Fprintf(w, "bbox\t%.5f,%.5f,%.5f,%.5f\n", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
	if err := w.Flush(); err != nil {
		return err
	}

	decades, counts := set.DecadeCounts()
	if len(counts) > 1 {
		fmt.Println()
		graph := asciigraph.Plot(counts,
			asciigraph.Height(10),
			asciigraph.Width(72),
			asciigraph.Caption(fmt.Sprintf("buildings per decade, %ds to %ds", decades[0], decades[len(decades)-1])),
		)
		fmt.Println(graph)
	}

	return nil
}

// addSourceFlags registers the data-selection flags shared by the commands
// that load footprints.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sourceName, "source", "", "data source: geojson, overpass or synth")
	cmd.Flags().StringVar(&dataPath, "path", "", "geojson file path")
	cmd.Flags().StringVar(&themeName, "theme", "", "color theme")
	cmd.Flags().StringVar(&yearProperty, "year-property", "", "geojson property holding the construction year")
}

// loadConfig resolves the effective configuration: a named preset when one is
// given, otherwise the --config file when set, otherwise defaults.
// Environment variables apply last.
func loadConfig(args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case len(args) > 0:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)",
				args[0], strings.Join(config.PresetNames(), ", "))
		}
	case configFile != "":
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	default:
		cfg = config.DefaultConfig()
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// applyFlagOverrides lets explicitly set flags win over preset and config
// values.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("source") {
		cfg.Source = sourceName
	}
	if cmd.Flags().Changed("path") {
		cfg.Path = dataPath
		if !cmd.Flags().Changed("source") {
			cfg.Source = string(source.KindGeoJSON)
		}
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme = themeName
	}
	if cmd.Flags().Changed("year-property") {
		cfg.YearProperty = yearProperty
	}
}

// loadFeatures builds the footprint layer named by the configuration.
func loadFeatures(ctx context.Context, cfg *config.Config) (*geo.FeatureSet, error) {
	logger := logging.FromContext(ctx)

	switch source.Kind(cfg.Source) {
	case source.KindGeoJSON:
		if cfg.Path == "" {
			return nil, fmt.Errorf("geojson source needs a path")
		}
		logger.Info("loading geojson", "path", cfg.Path)
		return source.LoadGeoJSON(cfg.Path, cfg.YearProperty)
	case source.KindOverpass:
		f := source.NewFetcher(cfg.Overpass.Endpoint, cfg.Timeout(), logger)
		return f.FetchBuildings(ctx, cfg.BBox)
	case source.KindSynth:
		logger.Info("generating synthetic city", "seed", cfg.Synth.Seed, "blocks", cfg.Synth.Blocks)
		return source.Synth(cfg.Synth.Seed, cfg.Synth.Blocks), nil
	default:
		return nil, fmt.Errorf("unknown source: %s", cfg.Source)
	}
}

func stderrLogger(cfg *config.Config) *log.Logger {
	level := logging.ParseLevel(cfg.LogLevel)
	if verbose {
		level = log.DebugLevel
	}
	return logging.New(os.Stderr, level)
}

func parseBBox(s string) (geo.BBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geo.BBox{}, fmt.Errorf("bbox wants minLon,minLat,maxLon,maxLat")
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geo.BBox{}, fmt.Errorf("bad bbox value %q: %w", p, err)
		}
		vals[i] = v
	}
	box := geo.BBox{MinLon: vals[0], MinLat: vals[1], MaxLon: vals[2], MaxLat: vals[3]}
	if box.Width() <= 0 || box.Height() <= 0 {
		return geo.BBox{}, fmt.Errorf("bbox is degenerate: %s", s)
	}
	return box, nil
}
