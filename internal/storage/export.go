package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Run    RunMetadata               `json:"run"`
	Bodies map[string][]ExportSample `json:"bodies"`
}

type ExportSample struct {
	Step     int        `json:"step"`
	Time     float64    `json:"time"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
}

// ExportJSON writes a recorded run, metadata and every sample, as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	traj, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:    *meta,
		Bodies: make(map[string][]ExportSample, len(traj)),
	}
	for name, samples := range traj {
		out := make([]ExportSample, len(samples))
		for i, smp := range samples {
			out[i] = ExportSample{
				Step:     smp.Step,
				Time:     smp.Time,
				Position: smp.Position.Array(),
				Velocity: smp.Velocity.Array(),
			}
		}
		data.Bodies[name] = out
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
