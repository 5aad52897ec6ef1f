package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/oscillo/internal/dynamo"
	"github.com/san-kum/oscillo/internal/physics"
	"github.com/san-kum/oscillo/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 22
	trailCapacity   = 240
	historyCapacity = 300
	rotateStep      = 0.08
	adjustUp        = 1.05
	adjustDown      = 0.95
)

// Frame rates accepted by WithRate.
const (
	MinRateHz = 1
	MaxRateHz = 240
)

type TickMsg time.Time

// Model drives a simulation and draws the mass in 3D. Each TickMsg advances
// the driver by exactly one tick, so the rate of the program is the rate of
// the simulation.
type Model struct {
	driver *sim.Driver
	panel  *sim.Panel
	rate   time.Duration

	canvas  *Canvas
	camera  *Camera
	theme   Theme
	color   string
	styles  styles
	layers  layers
	trail   []dynamo.Vec3
	history [3][]float64

	keys     []string
	selected int
	running  bool
	showHelp bool
}

type layers struct {
	trail  int
	axis   [3]int
	marker int
}

type Option func(*Model)

// WithTheme selects the palette by name.
func WithTheme(name string) Option {
	return func(m *Model) { m.theme = GetTheme(name) }
}

// WithColor sets the marker colour. Empty keeps the theme's marker.
func WithColor(c string) Option {
	return func(m *Model) { m.color = c }
}

// WithRate sets the number of frames per second, which is also ticks per
// second. hz is clamped to [MinRateHz, MaxRateHz].
func WithRate(hz int) Option {
	return func(m *Model) {
		hz = max(MinRateHz, min(hz, MaxRateHz))
		m.rate = time.Second / time.Duration(hz)
	}
}

func NewModel(d *sim.Driver, p *sim.Panel, opts ...Option) Model {
	m := Model{
		driver:  d,
		panel:   p,
		rate:    time.Second / 60,
		theme:   ThemeNight,
		trail:   make([]dynamo.Vec3, 0, trailCapacity),
		keys:    sim.ParamKeys(),
		running: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.camera = NewCamera(int(time.Second / m.rate))
	m.applyTheme()
	return m
}

func (m *Model) applyTheme() {
	if m.color != "" {
		m.theme.Marker = lipgloss.Color(m.color)
	}
	m.styles = newStyles(m.theme)
	m.canvas = NewCanvas(canvasWidth, canvasHeight)
	m.layers.trail = m.canvas.Style(m.styles.trail)
	for _, a := range dynamo.Axes {
		m.layers.axis[a] = m.canvas.Style(m.styles.axis[a])
	}
	m.layers.marker = m.canvas.Style(m.styles.marker)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.rate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		case "tab":
			m.selected = (m.selected + 1) % len(m.keys)
		case "shift+tab":
			m.selected = (m.selected + len(m.keys) - 1) % len(m.keys)
		case "up", "k":
			m.adjust(adjustUp)
		case "down", "j":
			m.adjust(adjustDown)
		case "x":
			m.camera.RotateX(rotateStep)
		case "y":
			m.camera.RotateY(rotateStep)
		case "z":
			m.camera.RotateZ(rotateStep)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "t":
			m.theme = m.theme.Next()
			m.applyTheme()
		case "?":
			m.showHelp = !m.showHelp
		case ".":
			if !m.running {
				m.step()
			}
		}
	case TickMsg:
		m.camera.Update()
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.driver.Tick()
	m.trail = appendBounded(m.trail, m.driver.Position(), trailCapacity)
	states := m.driver.States()
	for _, a := range dynamo.Axes {
		m.history[a] = appendBounded(m.history[a], states[a].Position, historyCapacity)
	}
}

func (m *Model) restart() {
	m.driver.Restart()
	m.trail = m.trail[:0]
	for _, a := range dynamo.Axes {
		m.history[a] = m.history[a][:0]
	}
}

// adjust scales the selected param. A zero value is nudged off zero so
// repeated presses can grow it.
func (m *Model) adjust(factor float64) {
	key := m.keys[m.selected]
	v := m.panel.GetParams()[key]
	if v == 0 && factor > 1 {
		r, _ := sim.Range(key)
		v = math.Max(0.1, (r.Max-r.Min)/100)
	} else {
		v *= factor
	}
	// keys come from sim.ParamKeys, which SetParam always accepts
	_ = m.panel.SetParam(key, v)
}

func appendBounded[T any](s []T, v T, limit int) []T {
	if len(s) >= limit {
		copy(s, s[1:])
		s = s[:len(s)-1]
	}
	return append(s, v)
}

// SelectedParam returns the key under the cursor.
func (m Model) SelectedParam() string { return m.keys[m.selected] }

func (m Model) Running() bool { return m.running }

// Rate is the delay between frames.
func (m Model) Rate() time.Duration { return m.rate }

func (m Model) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.viewScene(), m.viewPanel())
}

func (m Model) viewScene() string {
	c := m.canvas
	c.Clear()

	DrawEdges(c, m.camera, AxesEdges(60, m.layers.axis))

	sw, sh := c.Width*2, c.Height*4
	var prevX, prevY int
	for i, p := range m.trail {
		x, y, _, ok := m.camera.Project(p, sw, sh)
		if !ok {
			continue
		}
		if i > 0 {
			c.DrawLine(prevX, prevY, x, y, m.layers.trail)
		}
		prevX, prevY = x, y
	}
	if x, y, _, ok := m.camera.Project(m.driver.Position(), sw, sh); ok {
		c.Dot(x, y, m.layers.marker)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(c.String())
}

func (m Model) viewPanel() string {
	var b strings.Builder
	clock := m.driver.Clock()
	status := "running"
	if !m.running {
		status = "paused"
	}
	b.WriteString(m.styles.header.Render(fmt.Sprintf("oscillo  t=%.2fs  %s", clock.Time, status)))
	b.WriteString("\n")
	b.WriteString(m.styles.value.Render(fmt.Sprintf("|r|=%.3f  zoom x%.2f", m.driver.Position().Length(), m.camera.ZoomTarget())))
	b.WriteString("\n\n")

	params := m.panel.GetParams()
	states := m.driver.States()
	pos := m.driver.Position()
	mass := m.panel.Mass()

	for _, a := range dynamo.Axes {
		st := states[a]
		line := fmt.Sprintf("%s  x=%8.3f  v=%8.3f  E=%8.2f",
			strings.ToUpper(a.String()), pos.Get(a), st.Velocity,
			physics.Energy(st, m.panel.AxisParams(a), mass))
		b.WriteString(m.styles.axis[a].Render(line))
		b.WriteString("\n")
		b.WriteString(m.styles.muted.Render(Sparkline(m.history[a], 36)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, key := range m.keys {
		r, _ := sim.Range(key)
		row := fmt.Sprintf("%-6s %7.3f %s", key, params[key], ParamBar(params[key], r, 12))
		if i == m.selected {
			b.WriteString(m.styles.active.Render("> " + row))
		} else {
			b.WriteString(m.styles.value.Render("  " + row))
		}
		b.WriteString("\n")
	}

	if len(m.history[dynamo.X]) > 2 {
		b.WriteString("\n")
		b.WriteString(asciigraph.Plot(m.history[dynamo.X], asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption("x(t)")))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.styles.muted.Render(helpText))
	} else {
		b.WriteString("\n")
		b.WriteString(m.styles.muted.Render("? help  q quit"))
	}
	return m.styles.panel.Render(b.String())
}

const helpText = `tab/shift+tab  select param
up/down        adjust param
space          pause, . steps
r              restart
x y z          rotate view
+ -            zoom
t              theme
q              quit`
