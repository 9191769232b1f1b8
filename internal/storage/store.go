// Package storage keeps recorded runs on disk: one directory per run holding
// metadata.json and a states.csv with one row per body per recorded step.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/solarsim/internal/dynamo"
)

var ErrNoSuchBody = errors.New("storage: body not in run")

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var csvHeader = []string{"step", "time", "body", "x", "y", "z", "vx", "vy", "vz"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Timestep  float64            `json:"timestep"`
	Every     int                `json:"every"`
	Bodies    []string           `json:"bodies"`
	Steps     int                `json:"steps"`
	Elapsed   float64            `json:"elapsed"`
	Metrics   map[string]float64 `json:"metrics"`
	Error     string             `json:"error,omitempty"`
}

// Sample is one recorded row for one body.
type Sample struct {
	Step     int
	Time     float64
	Position dynamo.Vec3
	Velocity dynamo.Vec3
}

// Trajectory maps body name to its samples in step order.
type Trajectory map[string][]Sample

func (t Trajectory) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Distance returns |body - ref| for every sample both bodies share.
func (t Trajectory) Distance(body, ref string) ([]float64, error) {
	bs, ok := t[body]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchBody, body)
	}
	rs, ok := t[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchBody, ref)
	}
	n := min(len(bs), len(rs))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = bs[i].Position.Sub(rs[i].Position).Norm()
	}
	return out, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata for %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read states for %s: %w", runID, err)
	}

	traj := make(Trajectory)
	for i := 1; i < len(records); i++ {
		sample, body, err := parseRow(records[i])
		if err != nil {
			return nil, fmt.Errorf("states for %s line %d: %w", runID, i+1, err)
		}
		traj[body] = append(traj[body], sample)
	}
	return traj, nil
}

// valueColumns are the float columns of a states.csv row: time, then x..vz.
var valueColumns = [7]int{1, 3, 4, 5, 6, 7, 8}

func parseRow(rec []string) (Sample, string, error) {
	step, err := strconv.Atoi(rec[0])
	if err != nil {
		return Sample{}, "", err
	}
	var f [7]float64
	for i, col := range valueColumns {
		if f[i], err = strconv.ParseFloat(rec[col], 64); err != nil {
			return Sample{}, "", err
		}
	}
	return Sample{
		Step:     step,
		Time:     f[0],
		Position: dynamo.Vec3{X: f[1], Y: f[2], Z: f[3]},
		Velocity: dynamo.Vec3{X: f[4], Y: f[5], Z: f[6]},
	}, rec[2], nil
}

func formatRow(step int, t float64, name string, p, v dynamo.Vec3) []string {
	return []string{
		strconv.Itoa(step),
		strconv.FormatFloat(t, 'g', -1, 64),
		name,
		strconv.FormatFloat(p.X, 'g', -1, 64),
		strconv.FormatFloat(p.Y, 'g', -1, 64),
		strconv.FormatFloat(p.Z, 'g', -1, 64),
		strconv.FormatFloat(v.X, 'g', -1, 64),
		strconv.FormatFloat(v.Y, 'g', -1, 64),
		strconv.FormatFloat(v.Z, 'g', -1, 64),
	}
}

func writeMetadata(dir string, meta *RunMetadata) error {
	f, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
