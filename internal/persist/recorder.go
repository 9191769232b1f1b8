package persist

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/solarsim/internal/physics"
)

// Recorder is a sim.Observer writing every Every-th step to Postgres.
//
// sim.Observer carries no context, so the recorder keeps the one it was
// created with and is only usable for that context's lifetime: once it is
// done, OnStep returns its error and the run stops.
type Recorder struct {
	ctx   context.Context
	repo  *RunRepo
	id    string
	every int
	last  int
	log   *zap.Logger
}

func NewRecorder(ctx context.Context, repo *RunRepo, name string, timestep float64, every int, log *zap.Logger) (*Recorder, error) {
	if every <= 0 {
		every = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	id := fmt.Sprintf("%s_%d", name, time.Now().UnixNano())
	if err := repo.Create(ctx, id, name, timestep); err != nil {
		return nil, err
	}
	log.Info("recording run", zap.String("run", id))
	return &Recorder{ctx: ctx, repo: repo, id: id, every: every, log: log}, nil
}

func (r *Recorder) ID() string { return r.id }

func (r *Recorder) OnStep(step int, t float64, bodies []physics.BodyState) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	r.last = step
	if step%r.every != 0 {
		return nil
	}
	return r.repo.InsertStates(r.ctx, r.id, step, t, bodies)
}

// Close marks the run finished. It uses a fresh context so a cancelled run
// is still stamped.
func (r *Recorder) Close(runErr error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.repo.Finish(ctx, r.id, r.last, runErr); err != nil {
		r.log.Error("finish run", zap.String("run", r.id), zap.Error(err))
		return err
	}
	return nil
}
