package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/solarsim/internal/dynamo"
	"github.com/san-kum/solarsim/internal/physics"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	rotateStep      = 0.1
)

type TickMsg time.Time

type Options struct {
	Zoom   float64
	Trail  int     // points kept per body
	Follow string  // body to centre on; empty for the origin
	Rate   float64 // steps per second
	Width  int     // canvas cells
	Height int
}

// Model steps a System once per tick and draws it top-down. It never moves
// a body itself; all drawing goes through the camera.
type Model struct {
	sys        *physics.System
	names      []string
	colors     map[string]string
	radii      map[string]int
	canvas     *Canvas
	camera     *Camera
	trails     map[string][]dynamo.Vec3
	trailLen   int
	follow     int // index into names, -1 for none
	tick       time.Duration
	running    bool
	err        error
	energy0    float64
	drift      []float64
	message    string
	OnSnapshot func(c *Canvas, step int) (string, error)
}

func NewModel(sys *physics.System, opts Options) Model {
	if opts.Width <= 0 {
		opts.Width = width
	}
	if opts.Height <= 0 {
		opts.Height = height
	}
	if opts.Trail <= 0 {
		opts.Trail = 75
	}
	tick := time.Second / 60
	if opts.Rate > 0 {
		if d := time.Duration(float64(time.Second) / opts.Rate); d > 0 {
			tick = d
		}
	}

	bodies := sys.Snapshot()
	m := Model{
		sys:      sys,
		names:    make([]string, len(bodies)),
		colors:   make(map[string]string, len(bodies)),
		radii:    make(map[string]int, len(bodies)),
		canvas:   NewCanvas(opts.Width, opts.Height),
		camera:   NewCamera(opts.Zoom),
		trails:   make(map[string][]dynamo.Vec3, len(bodies)),
		trailLen: opts.Trail,
		follow:   -1,
		tick:     tick,
		running:  true,
		energy0:  physics.TotalEnergy(bodies),
		drift:    make([]float64, 0, historyCapacity),
	}
	for i, b := range bodies {
		m.names[i] = b.Name
		m.colors[b.Name] = BodyColor(b.Color)
		m.radii[b.Name] = discRadius(b.Radius)
		if b.Name == opts.Follow {
			m.follow = i
		}
	}
	m.recordTrails(bodies)
	return m
}

func discRadius(metres float64) int {
	switch {
	case metres > 1e8:
		return 2
	case metres > 2e7:
		return 1
	default:
		return 0
	}
}

func (m Model) Err() error { return m.err }

func (m Model) Running() bool { return m.running }

func (m Model) Camera() *Camera { return m.camera }

// Trail returns the remembered positions of one body, oldest first.
func (m Model) Trail(name string) []dynamo.Vec3 { return m.trails[name] }

func (m Model) Following() string {
	if m.follow < 0 {
		return ""
	}
	return m.names[m.follow]
}

func (m Model) Init() tea.Cmd {
	return m.nextTick()
}

func (m Model) nextTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "x":
			m.camera.RotateX(rotateStep)
		case "X":
			m.camera.RotateX(-rotateStep)
		case "y":
			m.camera.RotateY(rotateStep)
		case "Y":
			m.camera.RotateY(-rotateStep)
		case "z":
			m.camera.RotateZ(rotateStep)
		case "Z":
			m.camera.RotateZ(-rotateStep)
		case "0":
			m.camera.Reset()
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "f":
			m.follow++
			if m.follow >= len(m.names) {
				m.follow = -1
			}
		case "s":
			m.snapshot()
		}
	case TickMsg:
		if !m.running {
			return m, m.nextTick()
		}
		if err := m.step(); err != nil {
			m.err = err
			m.running = false
			return m, tea.Quit
		}
		return m, m.nextTick()
	}
	return m, nil
}

func (m *Model) step() error {
	if err := m.sys.Step(); err != nil {
		return err
	}
	bodies := m.sys.Snapshot()
	m.recordTrails(bodies)

	if m.energy0 != 0 {
		e := physics.TotalEnergy(bodies)
		if !math.IsInf(e, 0) && !math.IsNaN(e) {
			m.drift = append(m.drift, (e-m.energy0)/math.Abs(m.energy0))
			if len(m.drift) > historyCapacity {
				m.drift = m.drift[1:]
			}
		}
	}
	return nil
}

func (m *Model) recordTrails(bodies []physics.BodyState) {
	for _, b := range bodies {
		t := append(m.trails[b.Name], b.Position)
		if len(t) > m.trailLen {
			t = t[len(t)-m.trailLen:]
		}
		m.trails[b.Name] = t
	}
}

func (m *Model) snapshot() {
	if m.OnSnapshot == nil {
		return
	}
	m.draw()
	path, err := m.OnSnapshot(m.canvas, m.sys.Steps())
	if err != nil {
		m.message = "snapshot failed: " + err.Error()
		return
	}
	m.message = "saved " + path
}

// draw renders trails then bodies onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	if m.follow >= 0 {
		if b, ok := m.sys.Body(m.names[m.follow]); ok {
			m.camera.Center = b.Position
		}
	} else {
		m.camera.Center = dynamo.Vec3{}
	}

	sw, sh := m.canvas.SubWidth(), m.canvas.SubHeight()
	for _, name := range m.names {
		hex := m.colors[name]
		trail := m.trails[name]
		for i := 1; i < len(trail); i++ {
			x0, y0, v0 := m.camera.Project(trail[i-1], sw, sh)
			x1, y1, v1 := m.camera.Project(trail[i], sw, sh)
			if v0 && v1 {
				m.canvas.DrawLine(x0, y0, x1, y1, hex)
			}
		}
	}
	for _, b := range m.sys.Snapshot() {
		if x, y, ok := m.camera.Project(b.Position, sw, sh); ok {
			m.canvas.Disc(x, y, m.radii[b.Name], m.colors[b.Name])
		}
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sys.Name())) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(statusError.Render("STOPPED") + "\n")
		s.WriteString(statusError.Render(m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.drift) > 1 {
		chart := asciigraph.Plot(m.drift, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy drift"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Day") + valueStyle.Render(fmt.Sprintf("%.0f", m.sys.Elapsed()/86400)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.sys.Steps())) + "\n")
	s.WriteString(labelStyle.Render("Zoom") + valueStyle.Render(fmt.Sprintf("%.2fx", m.camera.Zoom)) + "\n")
	follow := m.Following()
	if follow == "" {
		follow = "origin"
	}
	s.WriteString(labelStyle.Render("Centre") + valueStyle.Render(follow) + "\n\n")

	for _, name := range m.names {
		s.WriteString(Swatch(m.colors[name]) + " " + valueStyle.Render(name) + "\n")
	}
	if m.message != "" {
		s.WriteString("\n" + valueStyle.Render(m.message) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause +/-:Zoom F:Follow\nx/y/z:Rotate 0:Top S:Save Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
