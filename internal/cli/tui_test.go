package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/layout"
)

func update(m layoutModel, msg tea.Msg) (layoutModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(layoutModel), cmd
}

func TestLayoutModelCountsWords(t *testing.T) {
	m := newLayoutModel("Placing 3 words", nil)
	m, _ = update(m, wordMsg{name: "gopher", size: 40, done: 1, total: 3})
	m, _ = update(m, wordMsg{name: "channel", size: 22.5, done: 2, total: 3})
	m, _ = update(m, wordMsg{name: "enormous", unplaced: true, done: 3, total: 3})

	if m.placed != 2 || m.unplaced != 1 || m.done != 3 || m.total != 3 {
		t.Errorf("model = placed %d unplaced %d done %d/%d", m.placed, m.unplaced, m.done, m.total)
	}
	view := m.View()
	for _, want := range []string{"Placing 3 words", "3/3", "2 placed", "1 unplaced", "22.5pt", "enormous"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestLayoutModelKeepsRecentWords(t *testing.T) {
	m := newLayoutModel("t", nil)
	for i := range recentWords + 3 {
		m, _ = update(m, wordMsg{name: string(rune('a' + i)), done: i + 1, total: 20})
	}
	if len(m.recent) != recentWords || m.recent[0].name != "d" {
		t.Errorf("recent = %v", m.recent)
	}
}

func TestLayoutModelQuit(t *testing.T) {
	canceled := false
	m := newLayoutModel("t", func() { canceled = true })
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !canceled || !stderrors.Is(m.err, context.Canceled) {
		t.Errorf("q: canceled = %v, err = %v", canceled, m.err)
	}
	if cmd == nil {
		t.Fatal("q: want quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q: command does not quit")
	}

	m, cmd = update(newLayoutModel("t", nil), finishedMsg{})
	if !m.finished || cmd == nil {
		t.Errorf("finishedMsg: finished = %v, cmd = %v", m.finished, cmd)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, filled int
	}{
		{0, 0, 0},
		{0, 10, 0},
		{5, 10, barWidth / 2},
		{10, 10, barWidth},
		{12, 10, barWidth},
	}
	for _, tt := range tests {
		bar := progressBar(tt.done, tt.total)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("progressBar(%d, %d) filled = %d, want %d", tt.done, tt.total, got, tt.filled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != barWidth {
			t.Errorf("progressBar(%d, %d) width = %d, want %d", tt.done, tt.total, got, barWidth)
		}
	}
}

func TestRunWithTUI(t *testing.T) {
	var out bytes.Buffer
	calls := 0
	err := runWithTUI(context.Background(), nil, &out, "Placing", func(ctx context.Context, onProgress func(layout.Progress)) error {
		words := []wordcloud.PlacedWord{{Word: wordcloud.Word{Name: "go", Value: 1}, FontSize: 12}}
		onProgress(layout.Progress{Word: words[0], All: words, Total: 1})
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("runWithTUI() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("work ran %d times, want 1", calls)
	}
}

func TestRunWithTUIReturnsWorkError(t *testing.T) {
	boom := stderrors.New("boom")
	err := runWithTUI(context.Background(), nil, &bytes.Buffer{}, "Placing", func(context.Context, func(layout.Progress)) error {
		return boom
	})
	if !stderrors.Is(err, boom) {
		t.Errorf("runWithTUI() error = %v, want %v", err, boom)
	}
}
