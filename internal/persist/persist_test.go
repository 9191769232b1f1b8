package persist

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/san-kum/solarsim/internal/catalog"
	"github.com/san-kum/solarsim/internal/config"
	"github.com/san-kum/solarsim/internal/physics"
	"github.com/san-kum/solarsim/internal/sim"
)

// testDB connects to SOLARSIM_TEST_DSN and migrates it, or skips.
func testDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("SOLARSIM_TEST_DSN")
	if dsn == "" {
		t.Skip("SOLARSIM_TEST_DSN not set")
	}

	ctx := context.Background()
	db, err := NewDB(ctx, config.DatabaseConfig{DSN: dsn, MaxConns: 2, ConnMaxLifetime: time.Minute}, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(db.Close)

	if _, err := RunMigrations(ctx, db.Pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestMigrationVersion(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	before, err := MigrationVersion(ctx, db.Pool)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	after, err := RunMigrations(ctx, db.Pool)
	if err != nil {
		t.Fatalf("migrate again: %v", err)
	}
	if before != after || after < 1 {
		t.Errorf("expected a stable migrated version, got %d then %d", before, after)
	}
}

func TestNewDB_BadDSN(t *testing.T) {
	_, err := NewDB(context.Background(), config.DatabaseConfig{DSN: "postgres://%zz"}, nil)
	if err == nil {
		t.Error("expected error for malformed dsn")
	}
}

func TestRecorder_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// no repo: a done context must stop OnStep before any query
	r := &Recorder{ctx: ctx, id: "run", every: 1}
	if err := r.OnStep(3, 0, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if r.last != 0 {
		t.Errorf("expected no step recorded, got last %d", r.last)
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Error("no migrations embedded")
	}
}

func TestRecorder(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewRunRepo(db)

	cat, err := catalog.Builtin().Subset("sun", "earth")
	if err != nil {
		t.Fatal(err)
	}
	sys := physics.NewSystem("pair", cat, physics.Options{})

	rec, err := NewRecorder(ctx, repo, "pair", sys.Timestep(), 2, nil)
	if err != nil {
		t.Fatalf("recorder: %v", err)
	}
	t.Cleanup(func() { db.Pool.Exec(ctx, `DELETE FROM runs WHERE id = $1`, rec.ID()) })

	s := sim.New(sys, nil)
	s.AddObserver(rec)
	_, runErr := s.Run(ctx, sim.Config{Steps: 4})
	if err := rec.Close(runErr); err != nil {
		t.Fatal(err)
	}
	if runErr != nil {
		t.Fatal(runErr)
	}

	run, err := repo.Get(ctx, rec.ID())
	if err != nil {
		t.Fatal(err)
	}
	if run.Steps != 4 || run.FinishedAt == nil || run.Error != nil {
		t.Errorf("unexpected run row %+v", run)
	}

	rows, err := repo.Trajectory(ctx, rec.ID(), "earth")
	if err != nil {
		t.Fatal(err)
	}
	// steps 0, 2, 4
	if len(rows) != 3 || rows[2].Step != 4 {
		t.Errorf("unexpected earth rows %+v", rows)
	}
	want, _ := sys.Body("earth")
	if rows[2].Position != want.Position {
		t.Errorf("stored position %v, system has %v", rows[2].Position, want.Position)
	}
}

func TestGet_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := NewRunRepo(db).Get(context.Background(), "no-such-run")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}
