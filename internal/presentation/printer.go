package presentation

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"icompress/internal/domain"
	appErrors "icompress/internal/errors"
)

var (
	optimizedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#85DCB0"))
	skippedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F6AE2D"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E85D75")).Bold(true)
	summaryStyle   = lipgloss.NewStyle().Bold(true)
)

// Printer writes one line per reportable outcome and the run summary.
// Lines are styled through Renderer, which detects the color support of the
// terminal behind Writer; a nil Renderer prints plain text.
type Printer struct {
	Writer     io.Writer
	Renderer   *lipgloss.Renderer
	LogSkipped bool
}

func (p Printer) Start(total int) {}

func (p Printer) Report(outcome domain.Outcome) {
	line, ok := FormatOutcome(outcome, p.LogSkipped)
	if !ok {
		return
	}
	fmt.Fprintln(p.Writer, p.render(StyleFor(outcome.Kind), line))
}

func (p Printer) Finish(summary domain.RunSummary) {
	for _, line := range SummaryLines(summary) {
		fmt.Fprintln(p.Writer, p.render(summaryStyle, line))
	}
}

func (p Printer) render(style lipgloss.Style, line string) string {
	if p.Renderer == nil {
		return line
	}
	return style.Renderer(p.Renderer).Render(line)
}

// FormatOutcome renders the console line for an outcome. ok is false for
// outcomes that print nothing: excluded files, and already optimized files
// when logSkipped is off.
func FormatOutcome(outcome domain.Outcome, logSkipped bool) (string, bool) {
	switch outcome.Kind {
	case domain.OutcomeOptimized:
		r := outcome.Result
		return fmt.Sprintf("Оптимизация; %s; (Объем: %s -> %s Мб%s)",
			outcome.Path, Megabytes(r.OriginalSize), Megabytes(r.OptimizedSize), r.Note), true
	case domain.OutcomeSkippedOptimized:
		if !logSkipped {
			return "", false
		}
		return fmt.Sprintf("Пропуск; %s; (уже оптимизирован)", outcome.Path), true
	case domain.OutcomeSkippedZeroByte:
		return fmt.Sprintf("Предупреждение: Файл имеет размер 0 Кб: %s", outcome.Path), true
	case domain.OutcomeFailed:
		return formatFailure(outcome), true
	default:
		return "", false
	}
}

func formatFailure(outcome domain.Outcome) string {
	switch appErrors.KindOf(outcome.Err) {
	case appErrors.UnidentifiableImage:
		return fmt.Sprintf("Ошибка: Невозможно идентифицировать файл изображения: %s", outcome.Path)
	case appErrors.EmptyImage:
		return fmt.Sprintf("Ошибка: Пустое изображение: %s", outcome.Path)
	default:
		return fmt.Sprintf("Произошла ошибка: %s: %s", outcome.Path, appErrors.Cause(outcome.Err))
	}
}

func SummaryLines(summary domain.RunSummary) []string {
	return []string{
		fmt.Sprintf("Обработано файлов: %d", summary.Processed),
		fmt.Sprintf("Проблемных файлов: %d", summary.Errors),
		fmt.Sprintf("Файлов 0 Кб: %d", summary.ZeroByte),
	}
}

func StyleFor(kind domain.OutcomeKind) lipgloss.Style {
	switch kind {
	case domain.OutcomeOptimized:
		return optimizedStyle
	case domain.OutcomeSkippedOptimized:
		return skippedStyle
	case domain.OutcomeSkippedZeroByte:
		return warningStyle
	case domain.OutcomeFailed:
		return errorStyle
	default:
		return lipgloss.NewStyle()
	}
}

// Megabytes formats a byte count as binary megabytes with two decimals.
func Megabytes(n int64) string {
	return fmt.Sprintf("%.2f", float64(n)/(1024*1024))
}
