// Package viz renders sliding trajectories in the terminal, both as a
// live stepping view and as static charts of stored runs.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/actinfriction/internal/config"
	"github.com/san-kum/actinfriction/internal/dynamo"
	"github.com/san-kum/actinfriction/internal/equations"
)

const (
	graphWidth      = 64
	graphHeight     = 12
	historyCapacity = 600
	frameRate       = 30
)

type TickMsg time.Time

// Model steps a configured scenario at a fixed dt and charts the leading
// state component as it evolves.
type Model struct {
	cfg        *config.Config
	dyn        dynamo.System
	integrator dynamo.Integrator

	state dynamo.State
	t     float64
	steps int

	// substeps per frame so the whole horizon spans a watchable run
	substeps int

	history []float64
	running bool
	done    bool
	failed  bool
}

func NewModel(cfg *config.Config, dyn dynamo.System, integrator dynamo.Integrator) Model {
	substeps := int(cfg.Duration() / cfg.Dt / historyCapacity)
	if substeps < 1 {
		substeps = 1
	}

	return Model{
		cfg:        cfg,
		dyn:        dyn,
		integrator: integrator,
		state:      dynamo.State(cfg.InitState()),
		substeps:   substeps,
		history:    make([]float64, 0, historyCapacity),
		running:    true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.done && !m.failed {
				m.running = !m.running
			}
		case "r":
			m.state = dynamo.State(m.cfg.InitState())
			m.t = 0
			m.steps = 0
			m.history = m.history[:0]
			m.running = true
			m.done = false
			m.failed = false
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}

	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.substeps; i++ {
		if m.t >= m.cfg.Duration() {
			m.done = true
			m.running = false
			break
		}
		next := m.integrator.Step(m.dyn, m.state, m.t, m.cfg.Dt)
		if !next.IsValid() {
			m.failed = true
			m.running = false
			break
		}
		m.state = next
		m.t += m.cfg.Dt
		m.steps++
	}

	m.history = append(m.history, m.state[0])
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m Model) View() string {
	header := headerStyle.Render(fmt.Sprintf("actinfriction  %s", m.cfg.Scenario))

	graph := "collecting data..."
	if len(m.history) > 1 {
		graph = asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(m.caption()))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		graphStyle.Render(graph),
		statsStyle.Render(m.stats()))

	help := helpStyle.Render("space pause · r reset · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

func (m Model) caption() string {
	if m.cfg.Scenario == config.ScenarioHarmonic {
		return "position x"
	}
	return "overlap displacement lambda"
}

func (m Model) stats() string {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	switch {
	case m.failed:
		b.WriteString(statusError.Render("DIVERGED"))
	case m.done:
		b.WriteString(statusRunning.Render("FINISHED"))
	case m.running:
		b.WriteString(statusRunning.Render("RUNNING"))
	default:
		b.WriteString(statusPaused.Render("PAUSED"))
	}
	b.WriteString("\n\n")

	row("time", fmt.Sprintf("%.4g / %.4g s", m.t, m.cfg.Duration()))
	row("steps", fmt.Sprintf("%d", m.steps))

	switch m.cfg.Scenario {
	case config.ScenarioRingCX, config.ScenarioRingNd:
		p := *m.cfg.Ring
		lmbda := m.state[0]
		row("lambda", fmt.Sprintf("%.6g", lmbda))
		row("radius", fmt.Sprintf("%.4g m", equations.LambdaToRadius(lmbda, p)))
		row("radius eq", fmt.Sprintf("%.4g m", equations.EquilibriumRingRadius(p)))
		if len(m.state) > 1 {
			sites := equations.LambdaToSites(lmbda, p) * float64(p.Overlaps())
			row("Nd", fmt.Sprintf("%.4g", m.state[1]))
			row("occupancy", fmt.Sprintf("%.4f", m.state[1]/sites))
		}
	case config.ScenarioLinearCX, config.ScenarioLinearNd:
		row("lambda", fmt.Sprintf("%.6g", m.state[0]))
		if len(m.state) > 1 {
			row("Nd", fmt.Sprintf("%.4g", m.state[1]))
		}
	case config.ScenarioHarmonic:
		row("x", fmt.Sprintf("%.6g", m.state[0]))
	}

	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(cfg *config.Config, dyn dynamo.System, integrator dynamo.Integrator) error {
	program := tea.NewProgram(NewModel(cfg, dyn, integrator), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
