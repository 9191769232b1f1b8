package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/solarsim/internal/catalog"
	"github.com/san-kum/solarsim/internal/config"
	"github.com/san-kum/solarsim/internal/logging"
	"github.com/san-kum/solarsim/internal/physics"
)

var (
	configFile  string
	dataDir     string
	catalogFile string
	preset      string
	bodies      []string
	timestep    float64
	workers     int
	logLevel    string
	steps       int
	rate        float64
	record      bool
	every       int
	dsn         string
	zoom        float64
	trail       int
	follow      string
	refBody     string
	outFile     string
	svgWidth    int
	svgHeight   int
	fromDB      bool

	cfg *config.Config
	log = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "solarsim",
		Short:             "gravitational simulation of the solar system",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (yaml or toml)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "run directory")
	pf.StringVar(&catalogFile, "catalog", "", "body catalog file; builtin solar system if empty")
	pf.StringVar(&preset, "preset", "", "named preset (see presets)")
	pf.StringSliceVar(&bodies, "bodies", nil, "simulate only these bodies")
	pf.Float64Var(&timestep, "timestep", config.DefaultTimestep, "seconds per step")
	pf.IntVar(&workers, "workers", config.DefaultWorkers, "goroutines for force accumulation")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	pf.StringVar(&dsn, "dsn", "", "postgres connection string")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and print the final state",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().Float64Var(&rate, "rate", config.DefaultRate, "steps per second; 0 runs flat out")
	runCmd.Flags().BoolVar(&record, "record", false, "record states under --data")
	runCmd.Flags().IntVar(&every, "every", 1, "record every n steps")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&rate, "rate", config.DefaultRate, "steps per second")
	liveCmd.Flags().Float64Var(&zoom, "zoom", 1, "zoom factor")
	liveCmd.Flags().IntVar(&trail, "trail", config.DefaultTrail, "trail length in steps")
	liveCmd.Flags().StringVar(&follow, "follow", "", "body to keep centred")

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list the bodies in the catalog",
		Args:  cobra.NoArgs,
		RunE:  listBodies,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-12s %s\n", name, p.Description)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
	listCmd.Flags().BoolVar(&fromDB, "db", false, "list runs stored in postgres (--dsn)")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [body]",
		Short: "plot a body's distance from a reference body",
		Args:  cobra.ExactArgs(2),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&refBody, "ref", "sun", "reference body")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id] [body]",
		Short: "estimate a body's orbital period",
		Args:  cobra.ExactArgs(2),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&refBody, "ref", "sun", "reference body")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file; stdout if empty")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw recorded orbits as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file; <run_id>.svg if empty")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply database migrations to --dsn",
		Args:  cobra.NoArgs,
		RunE:  migrate,
	}

	rootCmd.AddCommand(runCmd, liveCmd, bodiesCmd, presetsCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", zap.Error(err))
		_ = log.Sync()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	_ = log.Sync()
}

// setup loads the config file, applies the preset and then any flag the user
// set explicitly, and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
	} else {
		cfg = config.DefaultConfig()
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		p.Apply(cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Record.Dir = dataDir
	}
	if flags.Changed("catalog") {
		cfg.Catalog = catalogFile
	}
	if flags.Changed("bodies") {
		cfg.Bodies = bodies
	}
	if flags.Changed("timestep") {
		cfg.Timestep = timestep
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("dsn") {
		cfg.Database.DSN = dsn
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("rate") {
		cfg.Rate = rate
	}
	if flags.Changed("record") {
		cfg.Record.Enabled = record
	}
	if flags.Changed("every") {
		cfg.Record.Every = every
	}
	if flags.Changed("zoom") {
		cfg.View.Zoom = zoom
	}
	if flags.Changed("trail") {
		cfg.View.Trail = trail
	}
	if flags.Changed("follow") {
		cfg.View.Follow = follow
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err = logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	return nil
}

func loadCatalog() (catalog.Catalog, error) {
	cat := catalog.Builtin()
	if cfg.Catalog != "" {
		var err error
		if cat, err = catalog.Load(cfg.Catalog); err != nil {
			return nil, err
		}
	}
	if len(cfg.Bodies) > 0 {
		return cat.Subset(cfg.Bodies...)
	}
	return cat, nil
}

func buildSystem() (*physics.System, catalog.Catalog, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, nil, err
	}
	sys := physics.NewSystem(cfg.Name, cat, physics.Options{
		Timestep: cfg.Timestep,
		Workers:  cfg.Workers,
		Logger:   log,
	})
	log.Info("system ready",
		zap.String("name", sys.Name()),
		zap.Int("bodies", sys.Len()),
		zap.Float64("timestep", sys.Timestep()),
	)
	return sys, cat, nil
}
