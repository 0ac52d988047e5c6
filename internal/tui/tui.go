package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morphtui/morph/cli"
	"github.com/morphtui/morph/multi"
	"github.com/morphtui/morph/step"
)

// animTickInterval is the frame rate of the transition animation; one step
// animation spans animSteps ticks.
const (
	animTickInterval = 16 * time.Millisecond
	animSteps        = 8
)

// --- Styles ---
var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	statusStyle     = lipgloss.NewStyle().Faint(true)
	insertedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	deletedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("197")).Strikethrough(true)
	pendingStyle    = lipgloss.NewStyle().Faint(true)
	contextStyle    = lipgloss.NewStyle()
	lineNumStyle    = lipgloss.NewStyle().Faint(true)
	activeNumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	markerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	hunkExtentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	helpStyle       = lipgloss.NewStyle().Faint(true)
)

// --- Keys ---
type keyMap struct {
	Forward  key.Binding
	Backward key.Binding
	NextFile key.Binding
	PrevFile key.Binding
	HunkMode key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Forward: key.NewBinding(
		key.WithKeys("j", "right", " ", "enter"),
		key.WithHelp("j/space", "step forward"),
	),
	Backward: key.NewBinding(
		key.WithKeys("k", "left", "backspace"),
		key.WithHelp("k", "step back"),
	),
	NextFile: key.NewBinding(
		key.WithKeys("tab", "J"),
		key.WithHelp("tab", "next file"),
	),
	PrevFile: key.NewBinding(
		key.WithKeys("shift+tab", "K"),
		key.WithHelp("shift+tab", "prev file"),
	),
	HunkMode: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "hunk mode"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

type tickMsg time.Time

func animTick() tea.Cmd {
	return tea.Tick(animTickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model renders the composed diffs. It has read-only access to the diff
// results and drives only the navigators' positions; all access happens on
// the update goroutine.
type Model struct {
	multiDiff *multi.MultiDiff
	cfg       *cli.Config

	width  int
	height int
	scroll int

	animating bool
	progress  float64
	direction step.Direction
}

// New creates the TUI model over a composed diff set.
func New(m *multi.MultiDiff, cfg *cli.Config) Model {
	model := Model{multiDiff: m, cfg: cfg}
	if cfg.HunkMode {
		for i := 0; i < m.Len(); i++ {
			if entry, ok := m.Entry(i); ok {
				entry.Navigator.SetHunkPreview(true)
			}
		}
	}
	return model
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.animating {
			return m, nil
		}
		m.progress += 1.0 / animSteps
		if m.progress >= 1 {
			m.animating = false
			m.progress = 1
			return m, nil
		}
		return m, animTick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Forward):
			return m.step(step.Forward)

		case key.Matches(msg, keys.Backward):
			return m.step(step.Backward)

		case key.Matches(msg, keys.NextFile):
			m.multiDiff.Next()
			m.animating = false
			m.scroll = 0
			return m, nil

		case key.Matches(msg, keys.PrevFile):
			m.multiDiff.Prev()
			m.animating = false
			m.scroll = 0
			return m, nil

		case key.Matches(msg, keys.HunkMode):
			if nav := m.multiDiff.CurrentNavigator(); nav != nil {
				nav.SetHunkPreview(!nav.HunkPreview())
			}
			return m, nil
		}
	}
	return m, nil
}

// step moves the active navigator and starts the transition animation.
func (m Model) step(dir step.Direction) (tea.Model, tea.Cmd) {
	nav := m.multiDiff.CurrentNavigator()
	if nav == nil {
		return m, nil
	}

	moved := false
	if dir == step.Forward {
		moved = nav.StepForward()
	} else {
		moved = nav.StepBackward()
	}
	if !moved {
		return m, nil
	}

	m.followActive(nav)
	if m.cfg.NoAnimation {
		return m, nil
	}
	m.animating = true
	m.progress = 0
	m.direction = dir
	return m, animTick()
}

// followActive scrolls the viewport so the cursor row stays visible.
func (m *Model) followActive(nav *step.Navigator) {
	view := nav.CurrentView()
	primary := -1
	for i, line := range view {
		if line.IsPrimaryActive {
			primary = i
			break
		}
	}
	if primary < 0 {
		return
	}

	bodyHeight := m.bodyHeight(len(view))
	if bodyHeight <= 0 {
		return
	}
	if primary < m.scroll {
		m.scroll = primary
	}
	if primary >= m.scroll+bodyHeight {
		m.scroll = primary - bodyHeight + 1
	}
}

func (m Model) bodyHeight(total int) int {
	// Header, separator, and footer take three rows.
	h := m.height - 3
	if h < 1 {
		h = total
	}
	return h
}

func (m Model) frame() step.AnimationFrame {
	if !m.animating {
		return step.IdleFrame()
	}
	return step.AnimationFrame{
		Phase:     step.PhaseStepping,
		Progress:  m.progress,
		Direction: m.direction,
	}
}

func (m Model) View() string {
	entry, ok := m.multiDiff.Current()
	if !ok {
		return helpStyle.Render("No changes to show.")
	}
	nav := entry.Navigator

	var b strings.Builder
	b.WriteString(m.renderHeader(entry, nav))
	b.WriteString("\n\n")

	view := nav.CurrentViewWithFrame(m.frame())
	bodyHeight := m.bodyHeight(len(view))
	end := m.scroll + bodyHeight
	if end > len(view) {
		end = len(view)
	}
	start := m.scroll
	if start > len(view) {
		start = len(view)
	}
	for _, line := range view[start:end] {
		b.WriteString(m.renderLine(line))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter(nav))
	return b.String()
}

func (m Model) renderHeader(entry *multi.FileEntry, nav *step.Navigator) string {
	path := entry.Diff.NewPath
	if path == "" {
		path = entry.Diff.OldPath
	}
	result := entry.Diff.Result

	header := fmt.Sprintf("%s %s  %s %s",
		headerStyle.Render(path),
		statusStyle.Render("("+entry.Status+")"),
		insertedStyle.Render(fmt.Sprintf("+%d", result.Insertions)),
		deletedStyle.Strikethrough(false).Render(fmt.Sprintf("-%d", result.Deletions)),
	)
	if m.multiDiff.Len() > 1 {
		header += statusStyle.Render(fmt.Sprintf("  [file %d/%d]", m.multiDiff.Active()+1, m.multiDiff.Len()))
	}
	return header
}

func (m Model) renderFooter(nav *step.Navigator) string {
	mode := ""
	if nav.HunkPreview() {
		mode = " [hunk]"
	}
	position := fmt.Sprintf("step %d/%d%s", nav.ActiveIndex(), nav.TotalSteps(), mode)
	bindings := "j/space step · k back · h hunk · tab file · q quit"
	return helpStyle.Render(position + "  " + bindings)
}

func (m Model) renderLine(line step.ViewLine) string {
	marker := " "
	switch {
	case line.IsPrimaryActive:
		marker = markerStyle.Render("▶")
	case line.ShowHunkExtent:
		marker = hunkExtentStyle.Render("▎")
	}

	num := line.NewLine
	if num == 0 {
		num = line.OldLine
	}
	numStyle := lineNumStyle
	if line.IsActive {
		numStyle = activeNumStyle
	}
	gutter := fmt.Sprintf("%s%s %s ", marker, numStyle.Render(fmt.Sprintf("%4d", num)), sign(line.Kind))

	var text strings.Builder
	for _, span := range line.Spans {
		text.WriteString(spanStyle(span.Kind).Render(span.Text))
	}
	return gutter + text.String()
}

func sign(kind step.LineKind) string {
	switch kind {
	case step.Inserted, step.PendingInsert:
		return insertedStyle.Render("+")
	case step.Deleted, step.PendingDelete:
		return deletedStyle.Strikethrough(false).Render("-")
	case step.Modified, step.PendingModify:
		return activeNumStyle.Render("~")
	default:
		return " "
	}
}

func spanStyle(kind step.ViewSpanKind) lipgloss.Style {
	switch kind {
	case step.SpanInserted:
		return insertedStyle
	case step.SpanDeleted:
		return deletedStyle
	case step.SpanPendingInsert:
		return insertedStyle.Inherit(pendingStyle)
	case step.SpanPendingDelete:
		return deletedStyle.Inherit(pendingStyle)
	default:
		return contextStyle
	}
}

// Run starts the TUI over the composed diff set.
func Run(m *multi.MultiDiff, cfg *cli.Config) error {
	p := tea.NewProgram(New(m, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
