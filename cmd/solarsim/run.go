package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/solarsim/internal/export"
	"github.com/san-kum/solarsim/internal/metrics"
	"github.com/san-kum/solarsim/internal/persist"
	"github.com/san-kum/solarsim/internal/physics"
	"github.com/san-kum/solarsim/internal/sim"
	"github.com/san-kum/solarsim/internal/storage"
	"github.com/san-kum/solarsim/internal/viz"
)

const au = 1.496e11

func runSimulation(cmd *cobra.Command, args []string) error {
	sys, _, err := buildSystem()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := sim.New(sys, log)
	closest := metrics.NewClosestApproach()
	s.AddMetric(metrics.NewEnergy())
	s.AddMetric(metrics.NewEnergyDrift())
	s.AddMetric(metrics.NewMomentumDrift())
	s.AddMetric(closest)
	s.AddObserver(&sim.LogObserver{Every: 30, Log: log})

	var fileRec *storage.Recorder
	if cfg.Record.Enabled {
		st := storage.New(cfg.Record.Dir)
		if err := st.Init(); err != nil {
			return err
		}
		if fileRec, err = st.NewRecorder(cfg.Name, sys.Timestep(), cfg.Record.Every); err != nil {
			return err
		}
		s.AddObserver(fileRec)
	}

	var dbRec *persist.Recorder
	if cfg.Database.DSN != "" {
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()
		version, err := persist.RunMigrations(ctx, db.Pool)
		if err != nil {
			return err
		}
		log.Debug("schema ready", zap.Int64("version", version))
		if dbRec, err = persist.NewRecorder(ctx, persist.NewRunRepo(db), cfg.Name, sys.Timestep(), cfg.Record.Every, log); err != nil {
			return err
		}
		s.AddObserver(dbRec)
	}

	fmt.Printf("running %s: %d bodies, %d steps of %.0fs\n", sys.Name(), sys.Len(), cfg.Steps, sys.Timestep())
	res, runErr := s.Run(ctx, sim.Config{
		Steps:         cfg.Steps,
		Rate:          cfg.Rate,
		ValidateState: true,
	})

	if fileRec != nil {
		if err := fileRec.Close(res, runErr); err != nil {
			log.Error("close recorder", zap.Error(err))
		} else {
			fmt.Printf("run id: %s\n", fileRec.ID())
		}
	}
	if dbRec != nil {
		if err := dbRec.Close(runErr); err == nil {
			fmt.Printf("db run id: %s\n", dbRec.ID())
		}
	}

	if res != nil {
		printResult(res, closest)
	}
	if runErr != nil {
		var collision *physics.CollisionError
		if errors.As(runErr, &collision) {
			fmt.Printf("\n%s and %s collided\n", collision.A, collision.B)
		}
		return runErr
	}
	return nil
}

func printResult(res *sim.Result, closest *metrics.ClosestApproach) {
	fmt.Printf("\nsteps: %d (%.1f days)\n", res.StepsTaken, res.Elapsed/86400)
	fmt.Println("\nmetrics:")
	for _, name := range []string{"energy", "energy_drift", "momentum_drift", "closest_approach"} {
		if v, ok := res.Metrics[name]; ok {
			fmt.Printf("  %-17s %.6g\n", name, v)
		}
	}
	if a, b, step := closest.Pair(); a != "" {
		fmt.Printf("  closest pair      %s-%s at step %d\n", a, b, step)
	}

	var sun *physics.BodyState
	for i := range res.Final {
		if res.Final[i].Name == "sun" {
			sun = &res.Final[i]
		}
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tX (AU)\tY (AU)\tZ (AU)\tSPEED (km/s)\tFROM SUN (AU)")
	for _, b := range res.Final {
		fromSun := "-"
		if sun != nil && b.Name != "sun" {
			fromSun = fmt.Sprintf("%.4f", b.Position.Sub(sun.Position).Norm()/au)
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.3f\t%s\n",
			b.Name,
			b.Position.X/au, b.Position.Y/au, b.Position.Z/au,
			b.Velocity.Norm()/1000,
			fromSun,
		)
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	sys, _, err := buildSystem()
	if err != nil {
		return err
	}
	if cfg.View.Follow != "" {
		if _, ok := sys.Body(cfg.View.Follow); !ok {
			return fmt.Errorf("cannot follow %q: not in the system", cfg.View.Follow)
		}
	}

	model := viz.NewModel(sys, viz.Options{
		Zoom:   cfg.View.Zoom,
		Trail:  cfg.View.Trail,
		Follow: cfg.View.Follow,
		Rate:   cfg.Rate,
	})
	model.OnSnapshot = func(c *viz.Canvas, step int) (string, error) {
		path := fmt.Sprintf("%s_%05d.svg", sys.Name(), step)
		return path, os.WriteFile(path, []byte(export.CanvasToSVG(c, 4)), 0644)
	}

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(viz.Model); ok && m.Err() != nil {
		return &sim.SimulationError{Step: sys.Steps() + 1, Time: sys.Elapsed() + sys.Timestep(), Wrapped: m.Err()}
	}
	fmt.Printf("stopped after %d steps (%.0f days)\n", sys.Steps(), sys.Elapsed()/86400)
	return nil
}
