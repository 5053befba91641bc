package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pendsim/internal/control"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/physics"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailCapacity   = 200
	frameRate       = 60

	// MaxManualTorque bounds the keyboard torque in N·m.
	MaxManualTorque = 20.0
)

// Snapshot stores state at a specific time for replay.
type Snapshot struct {
	State  dynamo.State
	Time   float64
	Energy float64
}

type TickMsg time.Time

// Model steps a pendulum in real time and draws it with its energy trace.
type Model struct {
	p             *physics.Pendulum
	initial       physics.Params
	controller    dynamo.Controller
	manual        *control.Manual
	u             dynamo.Control
	dt            float64
	stepsPerFrame int
	width, height int
	canvas        *Canvas
	trail         []struct{ x, y int }
	running       bool
	name          string
	energyHistory []float64
	history       []Snapshot
	playHead      int
	recording     bool
	frames        []*image.Paletted
	gifPath       string
	showHelp      bool
	err           error
}

// NewModel wraps p for interactive display. The controller's torque and the
// keyboard torque are added together; a nil controller applies none.
func NewModel(p *physics.Pendulum, ctrl dynamo.Controller, dt float64, name string) Model {
	if ctrl == nil {
		ctrl = control.NewNone()
	}
	spf := int(math.Round(1.0 / frameRate / dt))
	if spf < 1 {
		spf = 1
	}
	return Model{
		p:             p,
		initial:       p.Params(),
		controller:    ctrl,
		manual:        control.NewManual(control.DefaultManualStep, MaxManualTorque),
		dt:            dt,
		stepsPerFrame: spf,
		width:         width,
		height:        height,
		canvas:        NewCanvas(width, height),
		trail:         make([]struct{ x, y int }, 0, trailCapacity),
		running:       true,
		name:          name,
		energyHistory: make([]float64, 0, historyCapacity),
		history:       make([]Snapshot, 0, historyCapacity),
		playHead:      -1,
		gifPath:       "pendulum.gif",
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "left", "h":
			m.manual.Nudge(-1)
		case "right", "l":
			m.manual.Nudge(1)
		case "0":
			m.manual.Set(0)
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.err == nil {
			if m.playHead == -1 {
				for i := 0; i < m.stepsPerFrame && m.err == nil; i++ {
					m.step()
				}
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

// step advances the pendulum by one dt. A failed step freezes the view.
func (m *Model) step() {
	x, t := m.p.State(), m.p.Time()
	u := m.controller.Compute(x, t)
	tau, _ := u.Torque()
	tau += m.manual.Torque()
	m.u = nil
	if tau != 0 {
		m.u = dynamo.Control{tau}
	}

	if err := m.p.Step(m.dt, m.u); err != nil {
		m.err = err
		m.running = false
		return
	}

	joints := m.p.JointPositions()
	tx, ty := m.toScreen(joints[len(joints)-1].X, joints[len(joints)-1].Y)
	m.trail = append(m.trail, struct{ x, y int }{tx, ty})
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[1:]
	}

	energy := m.p.TotalEnergy()
	m.energyHistory = append(m.energyHistory, energy)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	m.history = append(m.history, Snapshot{State: m.p.State(), Time: m.p.Time(), Energy: energy})
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// scrub changes the playback position in history.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) > 0 {
			m.playHead = len(m.history) - 1
			m.running = false
		} else {
			return
		}
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

// reset rebuilds the pendulum from its initial parameters.
func (m *Model) reset() {
	p, err := physics.New(m.initial)
	if err != nil {
		m.err = err
		return
	}
	m.p = p
	m.err = nil
	m.u = nil
	m.manual.Set(0)
	m.trail = m.trail[:0]
	m.energyHistory = m.energyHistory[:0]
	m.history = m.history[:0]
	m.playHead = -1
	if r, ok := m.controller.(interface{ Reset() }); ok {
		r.Reset()
	}
}

// displayed is the state shown on screen: the replay snapshot when
// scrubbing, the live state otherwise.
func (m *Model) displayed() (dynamo.State, float64) {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		snap := m.history[m.playHead]
		return snap.State, snap.Time
	}
	return m.p.State(), m.p.Time()
}

// View renders the TUI interface.
func (m Model) View() string {
	_, t := m.displayed()
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	title := strings.ToUpper(m.name)
	if title == "" {
		title = "PENDULUM"
	}
	s.WriteString(headerStyle.Render(title) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy (J)"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", t)) + "\n")
	energy := m.p.TotalEnergy()
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f J", energy)) + "\n")
	s.WriteString(labelStyle.Render("Method") + valueStyle.Render(m.p.Method().String()) + "\n")
	body := "bulbs"
	if m.p.Compound() {
		body = "rods"
	}
	s.WriteString(labelStyle.Render("Links") + valueStyle.Render(fmt.Sprintf("%d %s", m.p.Dimension(), body)) + "\n")

	tau := m.manual.Torque()
	s.WriteString(labelStyle.Render("Torque") + valueStyle.Render(fmt.Sprintf("%+.1f N·m", tau)) + "\n")
	s.WriteString(strings.Repeat(" ", 12) + TorqueGauge(tau, MaxManualTorque, 20) + "\n")

	if m.err != nil {
		s.WriteString("\n" + StatusFailed.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n←→:Torque 0:Release\nG:Record ?:Help [ ]:Time-Travel"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset simulation         ║
║  Q        - Quit                     ║
║  Left/H   - Torque counter-clockwise ║
║  Right/L  - Torque clockwise         ║
║  0        - Release torque           ║
║  [        - Rewind (time travel)     ║
║  ]        - Forward (time travel)    ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func (m *Model) status() string {
	switch {
	case m.err != nil:
		return StatusFailed.Render("FAILED")
	case m.recording:
		return StatusRecording.Render("● REC")
	case m.playHead != -1 && len(m.history) > 0:
		back := m.history[m.playHead].Time - m.history[len(m.history)-1].Time
		if m.running {
			return StatusPaused.Render(fmt.Sprintf("REPLAYING (%.1fs)", back))
		}
		return StatusPaused.Render(fmt.Sprintf("REPLAY PAUSED (%.1fs)", back))
	case !m.running:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

// scale maps metres to canvas dots so the whole chain fits with the pivot
// in the centre.
func (m *Model) scale() (cx, cy int, k float64) {
	cw, ch := m.width*2, m.height*4
	cx, cy = cw/2, ch/2
	reach := m.p.TotalLength()
	if reach <= 0 {
		reach = 1
	}
	k = (float64(ch)/2 - 2) / reach
	return cx, cy, k
}

// toScreen converts a position in metres (y up) to canvas dots (y down).
func (m *Model) toScreen(x, y float64) (int, int) {
	cx, cy, k := m.scale()
	return cx + int(math.Round(x*k)), cy - int(math.Round(y*k))
}

// draw renders the displayed state onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	x, _ := m.displayed()
	joints := m.p.JointPositionsAt(x)
	if len(joints) == 0 {
		return
	}

	_, _, k := m.scale()
	px, py := m.toScreen(0, 0)
	m.canvas.Set(px, py)
	radii := m.p.Radii()
	for i, j := range joints {
		jx, jy := m.toScreen(j.X, j.Y)
		m.canvas.DrawLine(px, py, jx, jy)
		if !m.p.Compound() {
			m.canvas.FillDisc(jx, jy, int(math.Max(1, math.Round(radii[i]*k))))
		}
		px, py = jx, jy
	}

	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}
}

func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := m.canvas.Width*charW, m.canvas.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	dotW, dotH := charW/2, charH/4
	for y := 0; y < m.canvas.Height*4; y++ {
		for x := 0; x < m.canvas.Width*2; x++ {
			if !m.canvas.Dot(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		m.err = err
		return
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		m.err = err
	}
}

// Pendulum returns the pendulum currently on screen. Reset replaces it.
func (m Model) Pendulum() *physics.Pendulum { return m.p }

// Err reports the step failure that stopped the view, if any.
func (m Model) Err() error { return m.err }
