package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgomes/clairscript/clair"
)

type exploreKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Filter key.Binding
	Apply  key.Binding
	Clear  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k exploreKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Help, k.Quit}
}

func (k exploreKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Filter, k.Apply, k.Clear},
		{k.Help, k.Quit},
	}
}

var exploreKeys = exploreKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous node"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next node"),
	),
	Top: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "first node"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "last node"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Apply: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply filter"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filter"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type exploreModel struct {
	title       string
	rows        []clair.TreeLine
	visible     []int
	cursor      int
	filter      textinput.Model
	filtering   bool
	detail      viewport.Model
	help        help.Model
	width       int
	height      int
	quitting    bool
	initialized bool
}

func newExploreModel(title string, program *clair.Program) exploreModel {
	ti := textinput.New()
	ti.Placeholder = "kind, name or value..."
	ti.Prompt = "/ "
	ti.PromptStyle = detailStyle
	ti.CharLimit = 100

	m := exploreModel{
		title:  title,
		rows:   clair.Flatten(program),
		filter: ti,
		detail: viewport.New(60, 10),
		help:   help.New(),
	}
	m.applyFilter()
	return m
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.filter.Width = max(msg.Width-6, 10)
		m.detail.Width = max(msg.Width-4, 20)
		m.detail.Height = max(msg.Height/3, 5)
		m.initialized = true
		m.refreshDetail()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}

		switch {
		case key.Matches(msg, exploreKeys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, exploreKeys.Up):
			m.moveCursor(-1)
			return m, nil

		case key.Matches(msg, exploreKeys.Down):
			m.moveCursor(1)
			return m, nil

		case key.Matches(msg, exploreKeys.Top):
			m.moveCursor(-len(m.visible))
			return m, nil

		case key.Matches(msg, exploreKeys.Bottom):
			m.moveCursor(len(m.visible))
			return m, nil

		case key.Matches(msg, exploreKeys.Filter):
			m.filtering = true
			return m, m.filter.Focus()

		case key.Matches(msg, exploreKeys.Clear):
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil

		case key.Matches(msg, exploreKeys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m exploreModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, exploreKeys.Apply):
		m.filtering = false
		m.filter.Blur()
		return m, nil

	case key.Matches(msg, exploreKeys.Clear):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter keeps the rows whose text contains the filter, ignoring case.
func (m *exploreModel) applyFilter() {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	visible := make([]int, 0, len(m.rows))
	for i, row := range m.rows {
		if needle == "" || strings.Contains(strings.ToLower(row.String()), needle) {
			visible = append(visible, i)
		}
	}
	m.visible = visible
	m.cursor = min(m.cursor, max(len(m.visible)-1, 0))
	m.refreshDetail()
}

func (m *exploreModel) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.visible)-1)
	m.refreshDetail()
}

func (m *exploreModel) selected() (clair.TreeLine, bool) {
	if len(m.visible) == 0 {
		return clair.TreeLine{}, false
	}
	return m.rows[m.visible[m.cursor]], true
}

func (m *exploreModel) refreshDetail() {
	m.detail.SetContent(m.describeSelected())
	m.detail.GotoTop()
}

// describeSelected renders the selected node as JSON, or the field name for
// header rows.
func (m *exploreModel) describeSelected() string {
	row, ok := m.selected()
	if !ok {
		return mutedStyle.Render("No matching nodes")
	}
	if row.Node == nil {
		return mutedStyle.Render("field " + row.Label)
	}

	var buf bytes.Buffer
	if err := clair.FprintJSON(&buf, row.Node); err != nil {
		return errorStyle.Render(err.Error())
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m exploreModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	var b strings.Builder

	header := headerStyle.Render("Clair AST")
	b.WriteString(header + " " + mutedStyle.Render(m.title) + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n")

	listHeight := max(m.height-m.detail.Height-8, 3)
	start := max(min(m.cursor-listHeight/2, len(m.visible)-listHeight), 0)
	end := min(start+listHeight, len(m.visible))
	for i := start; i < end; i++ {
		row := m.rows[m.visible[i]]
		line := strings.Repeat("  ", row.Depth) + renderTreeLine(row)
		if i == m.cursor {
			line = selectedStyle.Render(strings.Repeat("  ", row.Depth) + row.String())
		}
		b.WriteString(line + "\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(mutedStyle.Render("  (no match)") + "\n")
	}

	b.WriteString(borderStyle.Render(m.detail.View()) + "\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View() + "\n")
	}

	counter := mutedStyle.Render(fmt.Sprintf("%d/%d ", min(m.cursor+1, len(m.visible)), len(m.visible)))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, counter, m.help.View(exploreKeys)))

	return b.String()
}

func exploreCommand(args []string) error {
	fs := flag.NewFlagSet("explore", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("clair explore: token file required")
	}

	program, err := parseTokenFile(remaining[0], clair.Config{MaxNesting: defaultMaxNesting})
	if err != nil {
		return err
	}

	p := tea.NewProgram(newExploreModel(filepath.Base(remaining[0]), program), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
