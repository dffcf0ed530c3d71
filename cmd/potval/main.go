package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/potval/internal/config"
	"github.com/san-kum/potval/internal/engine"
	"github.com/san-kum/potval/internal/potential"
	"github.com/san-kum/potval/internal/report"
	"github.com/san-kum/potval/internal/store"
	"github.com/san-kum/potval/internal/tui"
	"github.com/san-kum/potval/internal/validate"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	epsilon    float64
	sigma      float64
	rcut       float64
	tolerance  float64
	engines    []string
	keepWork   bool
	noStore      bool
	exportFormat string
	// plot flags
	plotPotName string
	rmin        float64
	rmax        float64
	// detection timeout for the engines command
	detectTimeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "potval",
		Short: "pair potential validation against external MD engines",
		Long: "potval computes Lennard-Jones and WCA energies with a hand-written\n" +
			"reference formula and cross-checks the same configurations against\n" +
			"LAMMPS and HOOMD-blue, recording results in a job-keyed store.",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".potval", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the validation suite",
		RunE:  runSuite,
	}
	addSuiteFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the validation suite with a live view",
		RunE:  runLive,
	}
	addSuiteFlags(liveCmd)

	enginesCmd := &cobra.Command{
		Use:   "engines",
		Short: "detect available engines",
		RunE:  detectEngines,
	}
	enginesCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	enginesCmd.Flags().DurationVar(&detectTimeout, "timeout", 10*time.Second, "per-engine detection timeout")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored jobs",
		RunE:  listJobs,
	}

	showCmd := &cobra.Command{
		Use:   "show [job_id]",
		Short: "show one job document",
		Args:  cobra.ExactArgs(1),
		RunE:  showJob,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export stored results",
		RunE:  exportJobs,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json: job documents, csv: run values)")

	runsCmd := &cobra.Command{
		Use:   "runs [job_id]",
		Short: "list recorded run values",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot a potential curve",
		RunE:  plotPotential,
	}
	plotCmd.Flags().StringVar(&plotPotName, "potential", "lj", "potential to plot (lj, wca)")
	plotCmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "well depth")
	plotCmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "particle diameter")
	plotCmd.Flags().Float64Var(&rmin, "rmin", 0.85, "lower radius bound")
	plotCmd.Flags().Float64Var(&rmax, "rmax", 3.0, "upper radius bound")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available suite presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, enginesCmd, listCmd, showCmd, exportCmd, runsCmd, plotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSuiteFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "well depth")
	cmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "particle diameter")
	cmd.Flags().Float64Var(&rcut, "rcut", config.DefaultRCut, "cutoff radius")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "agreement tolerance")
	cmd.Flags().StringSliceVar(&engines, "engine", nil, "engine to run (repeatable; default from config)")
	cmd.Flags().BoolVar(&keepWork, "keep-work", false, "keep engine scratch directories")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "skip persisting results")
}

// loadSuiteConfig resolves preset, config file, and flag overrides:
// flags beat file beats preset beats defaults.
func loadSuiteConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("epsilon") {
		cfg.Epsilon = epsilon
	}
	if cmd.Flags().Changed("sigma") {
		cfg.Sigma = sigma
	}
	if cmd.Flags().Changed("rcut") {
		cfg.RCut = rcut
	}
	if cmd.Flags().Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if cmd.Flags().Changed("engine") {
		cfg.Engines.Enabled = engines
	}
	if cmd.Flags().Changed("keep-work") {
		cfg.Engines.KeepWork = keepWork
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openStore() (*store.Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return store.Open(filepath.Join(dataDir, "jobs.sqlite"))
}

func buildSuite(cmd *cobra.Command) (*validate.Suite, *store.Store, error) {
	cfg, err := loadSuiteConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	var st *store.Store
	if !noStore {
		st, err = openStore()
		if err != nil {
			return nil, nil, err
		}
	}

	suite, err := validate.New(cfg, st)
	if err != nil {
		if st != nil {
			st.Close()
		}
		return nil, nil, err
	}
	return suite, st, nil
}

func runSuite(cmd *cobra.Command, args []string) error {
	suite, st, err := buildSuite(cmd)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}
	cfg := suite.Config()

	fmt.Println(report.Banner(cfg.Engines.Enabled, cfg.RCut, cfg.Tolerance))
	start := time.Now()

	res, err := suite.Run(cmd.Context(), func(ev validate.Event) {
		switch {
		case ev.Skipped:
			fmt.Printf("  %s: skipped (%v)\n", ev.Engine, ev.Err)
		case ev.Case == "":
			fmt.Printf("  %s %s\n", ev.Engine, ev.Version)
		case ev.Err != nil:
			fmt.Printf("    %s: %v\n", ev.Case, ev.Err)
		default:
			fmt.Printf("    %-18s % .10f\n", ev.Case, ev.Value)
		}
	})
	if err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n\n", time.Since(start).Round(time.Millisecond))

	cmp := validate.Compare(res, cfg.Tolerance)
	if err := report.WriteComparison(os.Stdout, cmp); err != nil {
		return err
	}
	if !cmp.Pass() {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	suite, st, err := buildSuite(cmd)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	res, err := tui.Run(suite, suite.Config().Tolerance)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}

	cmp := validate.Compare(res, suite.Config().Tolerance)
	if err := report.WriteComparison(os.Stdout, cmp); err != nil {
		return err
	}
	if !cmp.Pass() {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func detectEngines(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	all := []engine.Engine{
		engine.NewReference(),
		engine.NewLAMMPS(cfg.Engines.LAMMPS.Binary),
		engine.NewHOOMD(cfg.Engines.HOOMD.Python),
	}

	rows := make([]report.EngineStatus, 0, len(all))
	for _, e := range all {
		ctx, cancel := context.WithTimeout(cmd.Context(), detectTimeout)
		version, err := e.Detect(ctx)
		cancel()
		rows = append(rows, report.EngineStatus{Name: e.Name(), Version: version, Err: err})
	}
	return report.WriteEngines(os.Stdout, rows)
}

func listJobs(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	jobs, err := st.List()
	if err != nil {
		return err
	}
	return report.WriteJobs(os.Stdout, jobs)
}

func showJob(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	job, err := st.GetByID(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(store.ExportEntry{
		ID:         job.ID,
		Statepoint: job.Statepoint,
		Document:   job.Document,
		UpdatedAt:  job.UpdatedAt,
	})
}

func exportJobs(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	switch exportFormat {
	case "json":
		return st.ExportJSONStdout()
	case "csv":
		return st.ExportRunsCSV(os.Stdout, "")
	default:
		return fmt.Errorf("unknown format: %s (json, csv)", exportFormat)
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	jobID := ""
	if len(args) > 0 {
		jobID = args[0]
	}
	runs, err := st.ListRuns(jobID)
	if err != nil {
		return err
	}
	return report.WriteRuns(os.Stdout, runs)
}

func plotPotential(cmd *cobra.Command, args []string) error {
	p := potential.Params{Epsilon: epsilon, Sigma: sigma}

	var pair potential.Pair
	switch plotPotName {
	case "lj":
		pair = potential.NewLJ(p)
	case "wca":
		pair = potential.NewWCA(p)
	default:
		return fmt.Errorf("unknown potential: %s (lj, wca)", plotPotName)
	}

	if rmin <= 0 || rmax <= rmin {
		return fmt.Errorf("need 0 < rmin < rmax, got [%g, %g]", rmin, rmax)
	}

	fmt.Println(report.PlotPotential(pair, rmin, rmax))
	return nil
}
