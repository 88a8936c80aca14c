package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"icompress/internal/domain"
	"icompress/internal/presentation"
)

// Messages for the TUI
type (
	StartMsg struct {
		Total int
	}
	OutcomeMsg struct {
		Outcome domain.Outcome
	}
	DoneMsg struct {
		Summary domain.RunSummary
	}
)

// Config for the TUI
type Config struct {
	Directory  string
	Days       int
	LogSkipped bool
	// Cancel is called when the user quits before the run finishes.
	Cancel func()
}

// Model renders a progress bar for a run while per-file lines scroll above
// it.
type Model struct {
	config   Config
	spinner  spinner.Model
	progress progress.Model
	started  time.Time
	total    int
	visited  int
	summary  domain.RunSummary
	current  string
	Finished bool
	// Stopping is set once the user asked to stop; the run finishes its
	// current file and the summary is still shown.
	Stopping bool
	Quitting bool
	width    int
}

func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		spinner:  s,
		progress: p,
		started:  time.Now(),
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(min(msg.Width-20, 60), 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.Finished {
				return m, tea.Quit
			}
			if m.Stopping {
				m.Quitting = true
				return m, tea.Quit
			}
			m.Stopping = true
			if m.config.Cancel != nil {
				m.config.Cancel()
			}
			return m, nil
		}

	case StartMsg:
		m.total = msg.Total
		return m, nil

	case OutcomeMsg:
		m.visited++
		m.summary.Fold(msg.Outcome)
		m.current = msg.Outcome.Path

		cmds := []tea.Cmd{m.progress.SetPercent(m.percent())}
		if line, ok := presentation.FormatOutcome(msg.Outcome, m.config.LogSkipped); ok {
			cmds = append(cmds, tea.Println(presentation.StyleFor(msg.Outcome.Kind).Render(line)))
		}
		return m, tea.Batch(cmds...)

	case DoneMsg:
		m.Finished = true
		m.summary = msg.Summary
		m.current = ""
		return m, tea.Quit

	case spinner.TickMsg:
		if m.Finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m Model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	ratio := float64(m.visited) / float64(m.total)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.Finished {
		b.WriteString(m.renderSummary())
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderProgress())
	b.WriteString("\n")
	if m.Stopping {
		b.WriteString(helpStyle.Render("Stopping after the current file, press q again to quit now"))
	} else {
		b.WriteString(helpStyle.Render("Press q to stop after the current file"))
	}
	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("icompress")
	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		dimStyle.Render(fmt.Sprintf("%s %s  (%d d)", iconFolder, shortenPath(m.config.Directory), m.config.Days)),
	)
}

func (m Model) renderProgress() string {
	var b strings.Builder

	percent := m.percent()
	b.WriteString(fmt.Sprintf("  %s Оптимизация...\n\n", m.spinner.View()))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))

	countStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	percentStyle := lipgloss.NewStyle().Foreground(dimTextColor)
	b.WriteString(fmt.Sprintf("  %s %s\n",
		countStyle.Render(fmt.Sprintf("%d/%d", m.visited, m.total)),
		percentStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))

	b.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		successStyle.Render(fmt.Sprintf("%s %d", iconSuccess, m.summary.Processed)),
		skippedStyle.Render(fmt.Sprintf("%s %d", iconSkipped, m.summary.SkippedOptimized)),
		warningStyle.Render(fmt.Sprintf("%s %d", iconWarning, m.summary.ZeroByte)),
		errorStyle.Render(fmt.Sprintf("%s %d", iconError, m.summary.Errors)),
	))

	if m.current != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, fileNameStyle.Render(shortenPath(m.current))))
	}
	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Итог"))
	b.WriteString("\n\n")
	for _, line := range presentation.SummaryLines(m.summary) {
		b.WriteString("  ")
		b.WriteString(statValueStyle.Render(line))
		b.WriteString("\n")
	}

	if m.summary.BytesSaved() > 0 {
		b.WriteString(fmt.Sprintf("  %s\n", successStyle.Render(
			fmt.Sprintf("%s Сэкономлено: %s Мб", iconSuccess, presentation.Megabytes(m.summary.BytesSaved())))))
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)
	b.WriteString(helpStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)))
	return b.String()
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
