package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/san-kum/solarsim/internal/dynamo"
	"github.com/san-kum/solarsim/internal/physics"
)

var ErrRunNotFound = errors.New("persist: run not found")

type RunRow struct {
	ID         string
	Name       string
	Timestep   float64
	StartedAt  time.Time
	FinishedAt *time.Time
	Steps      int
	Error      *string
}

// StateRow is one body at one recorded step.
type StateRow struct {
	Step     int
	Time     float64
	Body     string
	Position dynamo.Vec3
	Velocity dynamo.Vec3
}

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) Create(ctx context.Context, id, name string, timestep float64) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO runs (id, name, timestep) VALUES ($1, $2, $3)`,
		id, name, timestep)
	if err != nil {
		return fmt.Errorf("create run %s: %w", id, err)
	}
	return nil
}

// InsertStates writes one row per body for a step inside a single
// transaction.
func (r *RunRepo) InsertStates(ctx context.Context, runID string, step int, t float64, bodies []physics.BodyState) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, b := range bodies {
		batch.Queue(
			`INSERT INTO body_states (run_id, step, sim_time, body, x, y, z, vx, vy, vz)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			runID, step, t, b.Name,
			b.Position.X, b.Position.Y, b.Position.Z,
			b.Velocity.X, b.Velocity.Y, b.Velocity.Z,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert step %d: %w", step, err)
	}

	_, err = tx.Exec(ctx, `UPDATE runs SET steps = $1 WHERE id = $2`, step, runID)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Finish stamps the run as done, storing runErr's message if set.
func (r *RunRepo) Finish(ctx context.Context, runID string, steps int, runErr error) error {
	var msg *string
	if runErr != nil {
		s := runErr.Error()
		msg = &s
	}
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE runs SET finished_at = now(), steps = $1, error = $2 WHERE id = $3`,
		steps, msg, runID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

func (r *RunRepo) Get(ctx context.Context, runID string) (*RunRow, error) {
	var row RunRow
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, name, timestep, started_at, finished_at, steps, error
		 FROM runs WHERE id = $1`, runID,
	).Scan(&row.ID, &row.Name, &row.Timestep, &row.StartedAt, &row.FinishedAt, &row.Steps, &row.Error)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *RunRepo) List(ctx context.Context) ([]RunRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, name, timestep, started_at, finished_at, steps, error
		 FROM runs ORDER BY started_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRow
	for rows.Next() {
		var row RunRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Timestep, &row.StartedAt, &row.FinishedAt, &row.Steps, &row.Error); err != nil {
			return nil, err
		}
		runs = append(runs, row)
	}
	return runs, rows.Err()
}

// Trajectory returns every recorded row for one body in step order.
func (r *RunRepo) Trajectory(ctx context.Context, runID, body string) ([]StateRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT step, sim_time, body, x, y, z, vx, vy, vz
		 FROM body_states WHERE run_id = $1 AND body = $2 ORDER BY step`,
		runID, body)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StateRow
	for rows.Next() {
		var s StateRow
		if err := rows.Scan(&s.Step, &s.Time, &s.Body,
			&s.Position.X, &s.Position.Y, &s.Position.Z,
			&s.Velocity.X, &s.Velocity.Y, &s.Velocity.Z); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
