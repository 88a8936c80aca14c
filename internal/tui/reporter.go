package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"icompress/internal/domain"
)

// Reporter forwards run events to a running bubbletea program.
type Reporter struct {
	Program *tea.Program
}

func (r Reporter) Start(total int) {
	r.Program.Send(StartMsg{Total: total})
}

func (r Reporter) Report(outcome domain.Outcome) {
	r.Program.Send(OutcomeMsg{Outcome: outcome})
}

func (r Reporter) Finish(summary domain.RunSummary) {
	r.Program.Send(DoneMsg{Summary: summary})
}
