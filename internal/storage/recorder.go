package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/solarsim/internal/physics"
	"github.com/san-kum/solarsim/internal/sim"
)

// Recorder is a sim.Observer that appends body states to a new run directory.
// Close must be called to flush the CSV and write metadata.json.
type Recorder struct {
	dir   string
	meta  RunMetadata
	file  *os.File
	w     *csv.Writer
	every int
}

// NewRecorder creates <base>/<name>_<nanos>/ and writes the CSV header.
// every <= 0 records every step.
func (s *Store) NewRecorder(name string, timestep float64, every int) (*Recorder, error) {
	if every <= 0 {
		every = 1
	}
	now := time.Now()
	id := fmt.Sprintf("%s_%d", name, now.UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create run dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, statesFile))
	if err != nil {
		return nil, fmt.Errorf("create states file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}

	return &Recorder{
		dir: dir,
		meta: RunMetadata{
			ID:        id,
			Name:      name,
			Timestamp: now,
			Timestep:  timestep,
			Every:     every,
		},
		file:  f,
		w:     w,
		every: every,
	}, nil
}

func (r *Recorder) ID() string { return r.meta.ID }

func (r *Recorder) OnStep(step int, t float64, bodies []physics.BodyState) error {
	if r.meta.Bodies == nil {
		r.meta.Bodies = make([]string, len(bodies))
		for i, b := range bodies {
			r.meta.Bodies[i] = b.Name
		}
	}
	if step%r.every != 0 {
		return nil
	}
	for _, b := range bodies {
		if err := r.w.Write(formatRow(step, t, b.Name, b.Position, b.Velocity)); err != nil {
			return fmt.Errorf("record %s: %w", b.Name, err)
		}
	}
	return r.w.Error()
}

// Close flushes the states file and writes metadata from res. runErr, when
// set, is stored so a run that ended in a collision can be told apart later.
func (r *Recorder) Close(res *sim.Result, runErr error) error {
	r.w.Flush()
	flushErr := r.w.Error()
	closeErr := r.file.Close()

	if res != nil {
		r.meta.Steps = res.StepsTaken
		r.meta.Elapsed = res.Elapsed
		r.meta.Metrics = res.Metrics
	}
	if runErr != nil {
		r.meta.Error = runErr.Error()
	}
	if err := writeMetadata(r.dir, &r.meta); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
