package sim

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"

	"boxfill/packer"
)

// TickInterval is the wall-clock period of one model tick
const TickInterval = 20 * time.Millisecond

const (
	maxSpeed      = 20
	maxLogEntries = 8
)

type tickMsg time.Time

// Model is the bubbletea front end of a Machine
type Model struct {
	m        *Machine
	speed    uint32 // simulated ms per wall-clock ms
	quitting bool

	lastState packer.MachineState
	log       []string
}

// NewModel wraps a machine. speed scales simulated time, 1 is real time.
func NewModel(m *Machine, speed uint32) Model {
	if speed == 0 {
		speed = 1
	}
	if speed > maxSpeed {
		speed = maxSpeed
	}
	return Model{
		m:         m,
		speed:     speed,
		lastState: m.Status().State,
	}
}

// Machine returns the simulated plant
func (m Model) Machine() *Machine { return m.m }

// Speed is the current time scale
func (m Model) Speed() uint32 { return m.speed }

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.m.Advance(uint32(TickInterval/time.Millisecond) * m.speed)
		m.trackState()
		return m, tickCmd()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.m.Press(ButtonUp)
	case "down", "j":
		m.m.Press(ButtonDown)
	case "enter":
		m.m.Press(ButtonEnter)
	case "s":
		m.m.Press(ButtonStart)
	case "r":
		m.m.Press(ButtonReset)
	case "b":
		if m.m.ToggleBox() {
			m.addLog("box placed")
		} else {
			m.addLog("box removed")
		}
	case "e", " ":
		if m.m.ToggleEStop() {
			m.addLog("EMERGENCY STOP pushed")
		} else {
			m.addLog("emergency stop released")
		}
	case "p":
		m.m.Pause()
	case "a":
		m.m.AutoFeed = !m.m.AutoFeed
		m.addLog(fmt.Sprintf("auto feed %s", onOff(m.m.AutoFeed)))
	case "f":
		if m.m.Jam() {
			m.addLog("cylinder A sensor jammed")
		} else {
			m.addLog("cylinder A sensor freed")
		}
	case "+", "=":
		if m.speed < maxSpeed {
			m.speed++
		}
	case "-":
		if m.speed > 1 {
			m.speed--
		}
	}
	return m, nil
}

// trackState logs machine state changes between ticks
func (m *Model) trackState() {
	st := m.m.Status()
	if st.State != m.lastState {
		text := fmt.Sprintf("%s -> %s", m.lastState, st.State)
		if st.State == packer.StateError {
			text += " (" + st.Fault.String() + ")"
		}
		m.addLog(text)
		m.lastState = st.State
	}
}

func (m *Model) addLog(text string) {
	glog.Info("sim: " + text)
	entry := fmt.Sprintf("%8.2fs %s", float64(m.m.ElapsedMS())/1000, text)
	m.log = append(m.log, entry)
	if len(m.log) > maxLogEntries {
		m.log = m.log[len(m.log)-maxLogEntries:]
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Background(lipgloss.Color("235")).Padding(0, 1)
	lcdStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("112")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	onStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	st := m.m.Status()
	var s strings.Builder

	s.WriteString(titleStyle.Render("BOXFILL - PACKAGING MACHINE SIMULATOR"))
	s.WriteString("\n\n")

	lines := m.m.Display()
	screen := lcdStyle.Render(lines[0] + "\n" + lines[1])

	var state strings.Builder
	stateText := st.State.String()
	if st.State == packer.StateError {
		stateText = errorStyle.Render(stateText + " " + st.Fault.String())
	}
	fmt.Fprintf(&state, "%s %s\n", labelStyle.Render("State:"), stateText)
	fmt.Fprintf(&state, "%s %s\n", labelStyle.Render("Cycle:"), st.Run)
	fmt.Fprintf(&state, "%s %d/%d  %s %d\n", labelStyle.Render("Lot:"), st.Lots.Quantity, st.Lots.Size,
		labelStyle.Render("No."), st.Lots.Number)
	fmt.Fprintf(&state, "%s %d ms  %s %d", labelStyle.Render("Delay:"), st.FillDelayMS,
		labelStyle.Render("Packed:"), m.m.Packed())

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, screen, "  ", boxStyle.Render(state.String())))
	s.WriteString("\n")

	var plant strings.Builder
	for _, c := range m.m.Cylinders() {
		fmt.Fprintf(&plant, "%s %s %s open %s closed %s\n",
			labelStyle.Render("Cyl "+c.Name), stroke(c.Travel),
			driveText(c.Drive), lamp(c.Open), lamp(c.Closed))
	}
	fmt.Fprintf(&plant, "%s %s  %s %s  %s %s",
		labelStyle.Render("Box"), lamp(m.m.BoxPresent()),
		labelStyle.Render("E-stop"), estopText(m.m.EStopHeld()),
		labelStyle.Render("Auto feed"), lamp(m.m.AutoFeed))
	s.WriteString(boxStyle.Render(plant.String()))
	s.WriteString("\n")

	if len(m.log) > 0 {
		s.WriteString(boxStyle.Render(strings.Join(m.log, "\n")))
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render(fmt.Sprintf(
		"↑/↓ select  enter confirm  s start  p pause  e E-stop  r reset  b box  a auto feed  f jam  +/- speed (x%d)  q quit",
		m.speed)))
	s.WriteString("\n")
	return s.String()
}

// stroke draws the cylinder rod, open on the left
func stroke(travel float64) string {
	const width = 10
	n := int(travel*width + 0.5)
	return "[" + strings.Repeat("=", n) + strings.Repeat(" ", width-n) + "]"
}

func lamp(on bool) string {
	if on {
		return onStyle.Render("●")
	}
	return offStyle.Render("○")
}

func driveText(closing bool) string {
	if closing {
		return onStyle.Render("close")
	}
	return offStyle.Render("open ")
}

func estopText(held bool) string {
	if held {
		return errorStyle.Render("PUSHED")
	}
	return offStyle.Render("released")
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
