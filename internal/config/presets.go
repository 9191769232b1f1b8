package config

import "sort"

// Preset is a named run shape: which bodies to simulate and for how long.
type Preset struct {
	Description string
	Bodies      []string
	Steps       int
	Timestep    float64
	Zoom        float64
	Follow      string
}

var Presets = map[string]*Preset{
	"full": {
		Description: "sun, eight planets, moon and pluto for one earth year",
		Steps:       365, Timestep: DefaultTimestep, Zoom: 0.1,
	},
	"inner": {
		Description: "terrestrial planets for one earth year",
		Bodies:      []string{"sun", "mercury", "venus", "earth", "moon", "mars"},
		Steps:       365, Timestep: DefaultTimestep, Zoom: 1.0,
	},
	"outer": {
		Description: "gas giants and pluto for a jupiter year",
		Bodies:      []string{"sun", "jupiter", "saturn", "uranus", "neptune", "pluto"},
		Steps:       4333, Timestep: DefaultTimestep, Zoom: 0.1,
	},
	"earth-moon": {
		Description: "sun, earth and moon; shows the one-day step error on the moon",
		Bodies:      []string{"sun", "earth", "moon"},
		Steps:       365, Timestep: DefaultTimestep, Zoom: 1.0, Follow: "earth",
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's values into c.
func (p *Preset) Apply(c *Config) {
	c.Bodies = append([]string(nil), p.Bodies...)
	c.Steps = p.Steps
	c.Timestep = p.Timestep
	if p.Zoom > 0 {
		c.View.Zoom = p.Zoom
	}
	c.View.Follow = p.Follow
}
