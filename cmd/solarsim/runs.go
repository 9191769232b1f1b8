package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/solarsim/internal/analysis"
	"github.com/san-kum/solarsim/internal/dynamo"
	"github.com/san-kum/solarsim/internal/export"
	"github.com/san-kum/solarsim/internal/persist"
	"github.com/san-kum/solarsim/internal/storage"
)

func listBodies(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tMASS (kg)\tRADIUS (km)\tDISTANCE (AU)\tSPEED (km/s)")
	for _, name := range cat.Names() {
		e := cat[name]
		fmt.Fprintf(w, "%s\t%s\t%.4g\t%.1f\t%.4f\t%.3f\n",
			name,
			e.Type,
			e.Mass,
			e.Radius,
			dynamo.V3(e.Pos).Norm()*1000/au,
			dynamo.V3(e.Velo).Norm(),
		)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	if fromDB {
		return listDBRuns(cmd.Context())
	}

	st := storage.New(cfg.Record.Dir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSTEPS\tDAYS\tBODIES\tERROR")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0f\t%d\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Elapsed/86400,
			len(run.Bodies),
			run.Error,
		)
	}
	return w.Flush()
}

func listDBRuns(ctx context.Context) error {
	if cfg.Database.DSN == "" {
		return fmt.Errorf("--db needs --dsn or database.dsn in the config")
	}
	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := persist.NewRunRepo(db).List(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTARTED\tSTEPS\tFINISHED\tERROR")
	for _, run := range runs {
		finished, runErr := "-", ""
		if run.FinishedAt != nil {
			finished = run.FinishedAt.Format("15:04:05")
		}
		if run.Error != nil {
			runErr = *run.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			run.ID, run.Name, run.StartedAt.Format("2006-01-02 15:04:05"), run.Steps, finished, runErr)
	}
	return w.Flush()
}

// distanceSeries loads a run and returns |body - ref| in AU and the sample
// spacing in days.
func distanceSeries(runID, body string) (*storage.RunMetadata, []float64, float64, error) {
	st := storage.New(cfg.Record.Dir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, 0, err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, 0, err
	}
	dist, err := traj.Distance(body, refBody)
	if err != nil {
		return nil, nil, 0, err
	}
	if len(dist) == 0 {
		return nil, nil, 0, fmt.Errorf("run %s has no samples", runID)
	}
	for i := range dist {
		dist[i] /= au
	}
	return meta, dist, meta.Timestep * float64(meta.Every) / 86400, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, dist, _, err := distanceSeries(args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("steps: %d (%.0f days)\n\n", meta.Steps, meta.Elapsed/86400)

	graph := asciigraph.Plot(dist,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s distance from %s (AU)", args[1], refBody)),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, dist, days, err := distanceSeries(args[0], args[1])
	if err != nil {
		return err
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, d := range dist {
		lo, hi = math.Min(lo, d), math.Max(hi, d)
	}

	fmt.Printf("run: %s (%d samples, %.2f days apart)\n\n", meta.ID, len(dist), days)
	fmt.Printf("  closest      %.5f AU\n", lo)
	fmt.Printf("  farthest     %.5f AU\n", hi)
	if hi+lo > 0 {
		fmt.Printf("  eccentricity %.4f\n", (hi-lo)/(hi+lo))
	}

	if p, err := analysis.DominantPeriod(dist, days); err == nil {
		fmt.Printf("  period       %.2f days (%.3f years)\n", p, p/365.25)
	} else {
		fmt.Printf("  period       %v\n", err)
	}
	if p, err := analysis.SpectralPeriod(dist, days); err == nil {
		fmt.Printf("  spectral     %.2f days\n", p)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	var w io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return storage.New(cfg.Record.Dir).ExportJSON(w, args[0])
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	traj, err := storage.New(cfg.Record.Dir).LoadTrajectory(runID)
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	colors := make(map[string][3]float64, len(cat))
	for name, e := range cat {
		colors[name] = e.Color
	}

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	svg := export.OrbitsToSVG(export.PathsFromTrajectory(traj, colors), svgWidth, svgHeight)
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func migrate(cmd *cobra.Command, args []string) error {
	if cfg.Database.DSN == "" {
		return fmt.Errorf("migrate needs --dsn or database.dsn in the config")
	}
	ctx := cmd.Context()
	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	from, err := persist.MigrationVersion(ctx, db.Pool)
	if err != nil {
		return err
	}
	to, err := persist.RunMigrations(ctx, db.Pool)
	if err != nil {
		return err
	}
	if from == to {
		fmt.Printf("schema already at version %d\n", to)
		return nil
	}
	fmt.Printf("schema migrated from version %d to %d\n", from, to)
	return nil
}
