package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/fieldbot/pkg/chassis"
	"github.com/gwillem/fieldbot/pkg/input"
	"github.com/gwillem/fieldbot/pkg/robot"
)

type DriveCommand struct {
	Hz  int  `long:"hz" description:"Control loop frequency (overrides config)"`
	Dev bool `long:"dev" description:"Dev mode: simulate the drivetrain in memory"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border

	// Keyboard input has no release events; an axis held by a key
	// decays back to zero when the key repeat stops refreshing it.
	keyHold   = 250 * time.Millisecond
	decayTick = 50 * time.Millisecond
)

// Distinct colors per actuator channel
var actuatorColors = []string{
	"196", // red
	"208", // orange
	"226", // yellow
	"46",  // green
	"51",  // cyan
	"201", // magenta
	"21",  // blue
	"129", // purple
	"118", // lime
	"214", // amber
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	clampStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

type driveModel struct {
	loop     *robot.Loop
	pad      *input.SimGamepad
	chart    *streamlinechart.Model
	width    int      // terminal width
	height   int      // terminal height
	logs     []string // last N log messages
	state    robot.State
	axisHeld map[input.Axis]time.Time
	quitting bool
}

func (m *driveModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the control loop
type stateMsg robot.State
type logMsg string
type decayMsg time.Time

func waitForState(l *robot.Loop) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-l.States())
	}
}

func waitForLog(l *robot.Loop) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-l.Logs())
	}
}

func decayCmd() tea.Cmd {
	return tea.Tick(decayTick, func(t time.Time) tea.Msg {
		return decayMsg(t)
	})
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *driveModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *driveModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func actuatorLabel(i int) string {
	return fmt.Sprintf("actuator %d", i)
}

func initialDriveModel(l *robot.Loop, pad *input.SimGamepad, actuators int) driveModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-chassis.MaxVelocity, chassis.MaxVelocity),
	)

	for i := 0; i < actuators; i++ {
		color := actuatorColors[i%len(actuatorColors)]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(actuatorLabel(i), runes.ThinLineStyle, style)
	}

	return driveModel{
		loop:     l,
		pad:      pad,
		chart:    &chart,
		axisHeld: make(map[input.Axis]time.Time),
	}
}

func (m driveModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.loop),
		waitForLog(m.loop),
		decayCmd(),
	)
}

func (m *driveModel) pressAxis(a input.Axis, v float64) {
	m.pad.SetAxis(a, v)
	m.axisHeld[a] = time.Now()
}

func (m driveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "w", "up":
			m.pressAxis(input.AxisLeftY, 1)
		case "s", "down":
			m.pressAxis(input.AxisLeftY, -1)
		case "a", "left":
			m.pressAxis(input.AxisRightX, -1)
		case "d", "right":
			m.pressAxis(input.AxisRightX, 1)
		case " ":
			m.pad.Tap(input.ButtonR1)
		}
		return m, nil

	case decayMsg:
		now := time.Time(msg)
		for axis, last := range m.axisHeld {
			if now.Sub(last) > keyHold {
				m.pad.SetAxis(axis, 0)
				delete(m.axisHeld, axis)
			}
		}
		return m, decayCmd()

	case stateMsg:
		m.state = robot.State(msg)
		for i, v := range m.state.Velocities {
			m.chart.PushDataSet(actuatorLabel(i), v)
		}
		m.chart.DrawAll()
		return m, waitForState(m.loop)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.loop)
	}

	return m, nil
}

func (m driveModel) View() string {
	if m.quitting {
		return "Driving stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Fieldbot Drive"))
	sb.WriteString(fmt.Sprintf(" - %d Hz", m.loop.Hz()))
	p := m.state.Pose
	sb.WriteString(statusStyle.Render(fmt.Sprintf("  x=%.1f y=%.1f θ=%.2f", p.X, p.Y, p.Heading)))
	if m.state.Clamped {
		sb.WriteString("  " + clampStyle.Render("CLAMPED"))
	}
	if m.state.ActiveMacro != "" {
		sb.WriteString(statusStyle.Render("  macro: " + m.state.ActiveMacro))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(m.renderLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4).
		Foreground(lipgloss.Color("9"))

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("WASD/arrows drive, space toggles clamp, 'q' quits")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func (m driveModel) renderLegend() string {
	var items []string
	for i := range m.state.Velocities {
		color := actuatorColors[i%len(actuatorColors)]
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+actuatorLabel(i))
	}
	return strings.Join(items, "  ")
}

func (c *DriveCommand) Execute(args []string) error {
	cfg, err := robot.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "No configuration found. Run 'fieldbot setup' first.")
		os.Exit(1)
	}
	if c.Dev {
		cfg.DevMode = true
	}
	if c.Hz > 0 {
		cfg.Hz = c.Hz
	}

	if !cfg.DevMode && cfg.Chassis.Port == "" {
		fmt.Fprintln(os.Stderr, "Drivetrain not configured. Run 'fieldbot setup' first.")
		os.Exit(1)
	}

	fmt.Printf("Loaded configuration from %s\n", robot.DefaultConfigFile)

	pad := input.NewSimGamepad()
	r, err := robot.New(*cfg, pad)
	if err != nil {
		log.Fatalf("Failed to build robot: %v", err)
	}
	defer r.Close()

	loop := robot.NewLoop(r)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := loop.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Control loop error: %v", err)
		}
	}()

	p := tea.NewProgram(initialDriveModel(loop, pad, r.Chassis().ActuatorCount()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	return nil
}
