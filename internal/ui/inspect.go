package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"keylex/internal/source"
	"keylex/internal/token"
)

type inspectModel struct {
	path     string
	tokens   []token.Token
	fileSet  *source.FileSet
	view     viewport.Model
	selected int
	width    int
	height   int
	ready    bool
}

// NewInspectModel returns a Bubble Tea model that renders a scrollable token
// list with a detail footer for the selected token.
func NewInspectModel(path string, tokens []token.Token, fs *source.FileSet) tea.Model {
	return &inspectModel{
		path:    path,
		tokens:  tokens,
		fileSet: fs,
		width:   80,
		height:  24,
	}
}

// Inspect runs the token inspector full-screen until the user quits.
func Inspect(path string, tokens []token.Token, fs *source.FileSet) error {
	p := tea.NewProgram(NewInspectModel(path, tokens, fs), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
			return m, nil
		case "down", "j":
			m.move(1)
			return m, nil
		case "pgup":
			m.move(-m.view.Height)
			return m, nil
		case "pgdown", " ":
			m.move(m.view.Height)
			return m, nil
		case "home", "g":
			m.move(-len(m.tokens))
			return m, nil
		case "end", "G":
			m.move(len(m.tokens))
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// 2 строки заголовка + 3 строки деталей внизу
		vh := msg.Height - 5
		if vh < 3 {
			vh = 3
		}
		if !m.ready {
			m.view = viewport.New(msg.Width, vh)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = vh
		}
		m.syncViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *inspectModel) move(delta int) {
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(m.tokens) {
		m.selected = len(m.tokens) - 1
	}
	m.syncViewport()
}

// syncViewport перестраивает содержимое и держит выбранную строку видимой
func (m *inspectModel) syncViewport() {
	if !m.ready || len(m.tokens) == 0 {
		return
	}
	m.view.SetContent(m.renderList())

	if m.selected < m.view.YOffset {
		m.view.SetYOffset(m.selected)
	} else if m.selected >= m.view.YOffset+m.view.Height {
		m.view.SetYOffset(m.selected - m.view.Height + 1)
	}
}

func (m *inspectModel) View() string {
	if !m.ready {
		return "loading..."
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s — %d tokens", m.path, len(m.tokens))

	var b strings.Builder
	b.WriteString(titleStyle.Render(truncate(header, m.width)))
	b.WriteString("\n\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")
	b.WriteString(m.renderDetail())
	return b.String()
}

func (m *inspectModel) renderList() string {
	selectedStyle := lipgloss.NewStyle().Reverse(true)

	var b strings.Builder
	for i, tok := range m.tokens {
		kind := styleKind(tok.Kind).Render(fmt.Sprintf("%-8s", tok.Kind.String()))
		text := tok.Text
		if text == "" {
			text = "∅"
		}
		line := fmt.Sprintf("%4d  %s %s", i+1, kind, truncate(text, m.width-16))
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *inspectModel) renderDetail() string {
	if len(m.tokens) == 0 {
		return "  (no tokens)\n  q: quit"
	}
	tok := m.tokens[m.selected]
	start, end := m.fileSet.Resolve(tok.Span)

	detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	detail := fmt.Sprintf("  %s  bytes %d-%d  at %d:%d-%d:%d",
		tok.Kind.String(), tok.Span.Start, tok.Span.End,
		start.Line, start.Col, end.Line, end.Col)
	help := "  ↑/↓: select  g/G: first/last  q: quit"
	return detailStyle.Render(truncate(detail, m.width)) + "\n" + detailStyle.Render(help)
}

func styleKind(k token.Kind) lipgloss.Style {
	switch k {
	case token.Keyword:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	case token.String:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case token.Number:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case token.Invalid:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
