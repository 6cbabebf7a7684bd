package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/wordcloud/pkg/wordcloud/layout"
)

const (
	barWidth    = 32
	recentWords = 6
)

var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// =============================================================================
// Messages
// =============================================================================

// wordMsg reports one resolved word. It copies what the view needs because
// layout.Progress must not be retained past its callback.
type wordMsg struct {
	name     string
	size     float64
	unplaced bool
	done     int
	total    int
}

func newWordMsg(p layout.Progress) wordMsg {
	return wordMsg{
		name:     p.Word.Name,
		size:     p.Word.FontSize,
		unplaced: p.Word.Unplaced,
		done:     p.Done(),
		total:    p.Total,
	}
}

// finishedMsg ends the program once the layout goroutine returns.
type finishedMsg struct{ err error }

// =============================================================================
// LayoutModel - Live layout progress
// =============================================================================

// layoutModel shows a progress bar, placed and unplaced counts and the most
// recently resolved words while a layout runs.
type layoutModel struct {
	title    string
	start    time.Time
	done     int
	total    int
	placed   int
	unplaced int
	recent   []wordMsg
	finished bool
	err      error
	cancel   context.CancelFunc
}

func newLayoutModel(title string, cancel context.CancelFunc) layoutModel {
	return layoutModel{title: title, start: time.Now(), cancel: cancel}
}

func (m layoutModel) Init() tea.Cmd {
	return nil
}

func (m layoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
			m.err = context.Canceled
			return m, tea.Quit
		}
	case wordMsg:
		m.done, m.total = msg.done, msg.total
		if msg.unplaced {
			m.unplaced++
		} else {
			m.placed++
		}
		m.recent = append(m.recent, msg)
		if len(m.recent) > recentWords {
			m.recent = m.recent[len(m.recent)-recentWords:]
		}
	case finishedMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m layoutModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(progressBar(m.done, m.total))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d", m.done, m.total)))
	b.WriteString("\n")

	counts := StyleSuccess.Render(fmt.Sprintf("%d placed", m.placed))
	if m.unplaced > 0 {
		counts += StyleDim.Render(" · ") + StyleWarning.Render(fmt.Sprintf("%d unplaced", m.unplaced))
	}
	counts += StyleDim.Render(fmt.Sprintf(" · %s", time.Since(m.start).Round(100*time.Millisecond)))
	b.WriteString(counts)
	b.WriteString("\n")

	if len(m.recent) > 0 {
		lines := make([]string, len(m.recent))
		for i, w := range m.recent {
			if w.unplaced {
				lines[i] = StyleWarning.Render(iconWarning+" "+w.name) + StyleDim.Render("  unplaced")
				continue
			}
			lines[i] = StyleValue.Render(iconSuccess+" "+w.name) + StyleNumber.Render(fmt.Sprintf("  %spt", fmtNum(w.size)))
		}
		b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	if !m.finished {
		b.WriteString(StyleDim.Render("q cancel"))
		b.WriteString("\n")
	}
	return b.String()
}

// progressBar draws done/total as a fixed-width bar. An unknown total
// draws an empty bar.
func progressBar(done, total int) string {
	filled := 0
	if total > 0 {
		filled = min(barWidth, done*barWidth/total)
	}
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

// =============================================================================
// Runner
// =============================================================================

// runWithTUI runs work while a layoutModel renders its progress to out and
// reads keys from in (nil disables input). Pressing q cancels work's
// context. The error of work is returned; a user cancel surfaces as
// context.Canceled.
func runWithTUI(ctx context.Context, in io.Reader, out io.Writer, title string, work func(ctx context.Context, onProgress func(layout.Progress)) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newLayoutModel(title, cancel),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)

	errc := make(chan error, 1)
	go func() {
		err := work(ctx, func(pr layout.Progress) { p.Send(newWordMsg(pr)) })
		errc <- err
		p.Send(finishedMsg{err: err})
	}()

	final, runErr := p.Run()
	cancel()
	workErr := <-errc

	if workErr != nil {
		return workErr
	}
	if m, ok := final.(layoutModel); ok && m.err != nil {
		return m.err
	}
	if runErr != nil && !stderrors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("progress view: %w", runErr)
	}
	return nil
}
