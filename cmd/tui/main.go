package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"seqclean/internal/classify"
	"seqclean/internal/clean"
	"seqclean/internal/report"
	"seqclean/internal/store"
)

// Colors for modern design
var (
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	accentColor  = lipgloss.Color("#F59E0B") // Amber
	surfaceColor = lipgloss.Color("#1F2937") // Dark gray
	textColor    = lipgloss.Color("#F3F4F6") // Light gray
	mutedColor   = lipgloss.Color("#9CA3AF") // Muted gray
	borderColor  = lipgloss.Color("#374151") // Border gray
)

// Styles
var (
	containerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(surfaceColor).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

type listItem struct {
	row clean.Row
}

func (i listItem) FilterValue() string { return i.row.Name }

func (i listItem) Title() string {
	if i.row.Name == "" {
		return "(unnamed)"
	}
	return i.row.Name
}

func (i listItem) Description() string {
	cat := string(i.row.Category)
	return fmt.Sprintf("%s    %d nt    GC %.1f%%", report.CategoryStyle(cat).Render(cat), i.row.Length, i.row.GCContent)
}

type mode int

const (
	modeSequence mode = iota
	modeMetrics
	modeComposition
	modeCount
)

func (m mode) String() string {
	switch m {
	case modeSequence:
		return "Sequence"
	case modeMetrics:
		return "Metrics"
	case modeComposition:
		return "Composition"
	default:
		return "Unknown"
	}
}

type model struct {
	list          list.Model
	rows          []clean.Row
	source        string
	currentMode   mode
	showHelp      bool
	width         int
	height        int
	selectedIndex int
}

func initialModel(rows []clean.Row, source string) model {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = listItem{row: r}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Cleaned sequences"
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)

	return model{
		list:        l,
		rows:        rows,
		source:      source,
		currentMode: modeSequence,
	}
}

func (m model) cycleMode() model {
	m.currentMode = (m.currentMode + 1) % modeCount
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetWidth(msg.Width / 3)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		// let the list own the keyboard while filtering
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "h":
			m.showHelp = !m.showHelp
			return m, nil
		case "tab":
			return m.cycleMode(), nil
		case "1":
			m.currentMode = modeSequence
			return m, nil
		case "2":
			m.currentMode = modeMetrics
			return m, nil
		case "3":
			m.currentMode = modeComposition
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.selectedIndex = m.list.Index()
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelpModal()
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.renderLeftPanel(), m.renderRightPanel())
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m model) renderLeftPanel() string {
	return containerStyle.
		Width(m.width/3 - 2).
		Height(m.height - 4).
		Render(m.list.View())
}

// wrap splits s into lines of at most width bytes.
func wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for len(s) > width {
		out = append(out, s[:width])
		s = s[width:]
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}

func (m model) panelWidth() int {
	return m.width*2/3 - 6
}

// buildRightLines renders the detail lines for rec in the current mode.
func (m model) buildRightLines(rec clean.Row) []string {
	switch m.currentMode {
	case modeMetrics:
		cat := string(rec.Category)
		return []string{
			labelStyle.Render("Length:     ") + fmt.Sprintf("%d nt", rec.Length),
			labelStyle.Render("GC content: ") + fmt.Sprintf("%.2f%%", rec.GCContent),
			labelStyle.Render("Type:       ") + report.CategoryStyle(cat).Render(cat),
		}
	case modeComposition:
		width := max(m.panelWidth()-20, 1)
		var lines []string
		for _, base := range classify.Alphabet {
			n := strings.Count(rec.Symbols, string(base))
			bar := 0
			if rec.Length > 0 {
				bar = n * width / rec.Length
			}
			lines = append(lines, fmt.Sprintf("%c %5d │%s", base, n, strings.Repeat("█", bar)))
		}
		return lines
	default:
		if rec.Symbols == "" {
			return []string{labelStyle.Render("No sequence available")}
		}
		return wrap(rec.Symbols, m.panelWidth())
	}
}

func (m model) renderRightPanel() string {
	style := containerStyle.Width(m.width*2/3 - 2).Height(m.height - 4)
	if len(m.rows) == 0 {
		return style.Render("No records available")
	}
	item, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return style.Render("No item selected")
	}
	header := titleStyle.Render(fmt.Sprintf("%s - %s", item.Title(), m.currentMode))
	lines := append([]string{header, ""}, m.buildRightLines(item.row)...)
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m model) renderStatusBar() string {
	leftInfo := fmt.Sprintf("%d/%d sequences", m.selectedIndex+1, len(m.rows))
	centerInfo := fmt.Sprintf("Mode: %s", m.currentMode)
	rightInfo := "Press 'h' for help • 'q' to quit"

	spacing := m.width - len(leftInfo) - len(centerInfo) - len(rightInfo) - 6
	var statusContent string
	if spacing > 0 {
		left := spacing / 2
		statusContent = leftInfo + strings.Repeat(" ", left) + centerInfo + strings.Repeat(" ", spacing-left) + rightInfo
	} else {
		statusContent = fmt.Sprintf("%s | %s", leftInfo, centerInfo)
	}
	return statusBarStyle.Width(m.width).Render(statusContent)
}

func (m model) renderHelpModal() string {
	helpContent := `Cleaned sequences browser - Help

Navigation:
  ↑/↓, j/k     Navigate list
  /            Filter by name

View Modes:
  1            Sequence
  2            Metrics
  3            Composition
  tab          Next mode

General:
  h            Toggle this help
  q, Ctrl+C    Quit

Source: ` + m.source + `
Current Mode: ` + m.currentMode.String() + `
Total Sequences: ` + fmt.Sprint(len(m.rows)) + `
`
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(surfaceColor).
		Foreground(textColor).
		Width(60).
		Render(helpContent)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// loadRows reads the latest run from a sqlite database when db is set,
// otherwise the JSON export at path.
func loadRows(path, db string) ([]clean.Row, string, error) {
	if db == "" {
		rows, err := store.ReadJSON(path)
		return rows, path, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := store.Open(ctx, db)
	if err != nil {
		return nil, "", err
	}
	defer s.Close()
	run, err := s.LatestRun(ctx)
	if err != nil {
		return nil, "", err
	}
	rows, err := s.Rows(ctx, run.ID)
	return rows, fmt.Sprintf("%s (run %s of %s)", db, run.ID, run.Source), err
}

func main() {
	in := flag.String("in", "rows.json", "cleaned rows JSON written by seqclean run --out")
	db := flag.String("db", "", "sqlite database written by seqclean run --db (latest run is shown)")
	flag.Parse()

	rows, source, err := loadRows(*in, *db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	p := tea.NewProgram(initialModel(rows, source), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
