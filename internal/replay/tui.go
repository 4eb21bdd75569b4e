package replay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var (
	tuiTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	tuiInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	tuiHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	tuiStatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

const (
	tuiHelp      = " ←/→: back/next │ g/G: start/end │ :: command │ q: quit "
	tuiShortHelp = "NEXT|BACK [n]  START  END  GOTO n  CLEAR  QUIT"
)

// RunTUI runs the session as a full-screen navigator.
func RunTUI(s *Session, title string) error {
	prog := tea.NewProgram(
		newTUIModel(s, title),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := prog.Run()
	return err
}

// tuiModel is the Bubble Tea model for the navigator.
type tuiModel struct {
	session  *Session
	title    string
	viewport viewport.Model
	content  string
	status   string
	ready    bool

	// Command line state
	typing bool
	input  textinput.Model
}

func newTUIModel(s *Session, title string) *tuiModel {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = "NEXT 5, GOTO 10, HELP"
	input.CharLimit = 64
	input.Width = 40

	m := &tuiModel{
		session: s,
		title:   title,
		input:   input,
	}
	m.refresh()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Command line mode
	if m.typing {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "enter":
				line := m.input.Value()
				m.closeInput()
				return m, m.apply(ParseCommand(line))
			case "esc", "ctrl+c":
				m.closeInput()
				return m, nil
			}
		}
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "right", "l", "n":
			return m, m.apply(Command{Verb: VerbNext, Steps: 1})
		case "left", "h", "b":
			return m, m.apply(Command{Verb: VerbBack, Steps: 1})
		case "home", "g":
			return m, m.apply(Command{Verb: VerbStart, Steps: 1})
		case "end", "G":
			return m, m.apply(Command{Verb: VerbEnd, Steps: 1})
		case ":":
			m.typing = true
			m.status = ""
			m.input.Focus()
			return m, textinput.Blink
		}

	case tea.WindowSizeMsg:
		headerHeight := 1
		footerHeight := 1

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(wrapContent(m.content, msg.Width))
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// apply runs a parsed command against the session.
func (m *tuiModel) apply(cmd Command) tea.Cmd {
	switch cmd.Verb {
	case VerbQuit:
		return tea.Quit
	case VerbNone:
	case VerbHelp:
		m.status = tuiShortHelp
	case VerbClear:
		m.status = ""
		m.content = ""
		m.setContent()
	case VerbUnknown:
		m.status = "Unknown command."
	default:
		if m.session.navigate(cmd) {
			m.status = ""
			m.refresh()
		}
	}
	return nil
}

func (m *tuiModel) closeInput() {
	m.typing = false
	m.input.Reset()
	m.input.Blur()
}

// refresh re-renders the tick under the cursor.
func (m *tuiModel) refresh() {
	m.content = m.session.replayer.renderString(m.session.cursor)
	m.setContent()
}

func (m *tuiModel) setContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(wrapContent(m.content, m.viewport.Width))
	m.viewport.GotoTop()
}

func (m *tuiModel) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	// Header
	title := tuiTitleStyle.Render(m.title)
	line := strings.Repeat("─", max(0, m.viewport.Width-lipgloss.Width(title)))
	header := lipgloss.JoinHorizontal(lipgloss.Center, title, tuiInfoStyle.Render(line))

	if m.typing {
		return header + "\n" + m.viewport.View() + "\n" + m.input.View()
	}

	// Footer with tick position and help
	c := m.session.cursor
	info := " [no ticks] "
	if c.Len() > 0 {
		info = fmt.Sprintf(" [Tick %d/%d] ", c.Position()+1, c.Len())
	}

	help := tuiHelpStyle.Render(tuiHelp)
	if m.status != "" {
		help = " " + tuiStatusStyle.Render(m.status) + " "
	}
	fill := strings.Repeat("─", max(0, m.viewport.Width-lipgloss.Width(help)-lipgloss.Width(info)))
	footer := help + tuiInfoStyle.Render(fill) + tuiInfoStyle.Render(info)

	return header + "\n" + m.viewport.View() + "\n" + footer
}

// wrapContent wraps each line to fit within the given width.
// ANSI escape codes are preserved.
func wrapContent(content string, width int) string {
	if width <= 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if lipgloss.Width(line) <= width {
			result = append(result, line)
			continue
		}
		wrapped := wordwrap.String(line, width)
		result = append(result, strings.Split(wrapped, "\n")...)
	}
	return strings.Join(result, "\n")
}
