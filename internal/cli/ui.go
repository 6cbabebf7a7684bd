package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func (c *CLI) printSuccess(format string, args ...any) {
	fmt.Fprintln(c.Out, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (c *CLI) printError(format string, args ...any) {
	fmt.Fprintln(c.Out, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func (c *CLI) printWarning(format string, args ...any) {
	fmt.Fprintln(c.Out, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (c *CLI) printInfo(format string, args ...any) {
	fmt.Fprintln(c.Out, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented dim line.
func (c *CLI) printDetail(format string, args ...any) {
	fmt.Fprintln(c.Out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func (c *CLI) printFile(path string) {
	fmt.Fprintln(c.Out, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func (c *CLI) printNextStep(description, cmd string) {
	fmt.Fprintln(c.Out, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func (c *CLI) printNewline() {
	fmt.Fprintln(c.Out)
}

// =============================================================================
// Stats Display
// =============================================================================

// printCloudStats prints layout statistics on a single line.
func (c *CLI) printCloudStats(s pipeline.Stats, cached bool) {
	fmt.Fprintln(c.Out, statsLine(s, cached))
}

func statsLine(s pipeline.Stats, cached bool) string {
	parts := []string{fmt.Sprintf("%d placed", s.Placed)}
	if s.Unplaced > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d unplaced", s.Unplaced)))
	}
	if s.Scale > 1 {
		parts = append(parts, fmt.Sprintf("scale %.2f", s.Scale))
	}

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	var b strings.Builder
	b.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(part))
	}
	return b.String()
}

// cloudStats derives display statistics from a layout document.
func cloudStats(cl wordcloud.Cloud) pipeline.Stats {
	unplaced := cl.UnplacedCount()
	return pipeline.Stats{
		WordCount: len(cl.Words),
		Placed:    len(cl.Words) - unplaced,
		Unplaced:  unplaced,
		Scale:     cl.Scale,
	}
}

// =============================================================================
// Word Table
// =============================================================================

// wordTable renders the first limit words of a layout as a table, heaviest
// first. Unplaced words are dimmed and show no position.
func wordTable(cl wordcloud.Cloud, limit int) string {
	words := cl.Words
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}

	rows := make([][]string, len(words))
	for i, w := range words {
		if w.Unplaced {
			rows[i] = []string{w.Name, fmtNum(w.Value), "-", "-", string(w.Reason)}
			continue
		}
		rows[i] = []string{
			w.Name,
			fmtNum(w.Value),
			fmtNum(w.FontSize),
			fmt.Sprintf("%s,%s", fmtNum(w.X), fmtNum(w.Y)),
			"",
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Word", "Value", "Size", "Position", "Unplaced").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < len(words) && words[row].Unplaced {
				return base.Foreground(colorDim)
			}
			if col == 0 {
				return base.Foreground(colorCyan)
			}
			return base.Foreground(colorWhite)
		})

	out := t.Render()
	if rest := len(cl.Words) - len(words); rest > 0 {
		out += "\n" + StyleDim.Render(fmt.Sprintf("  … %d more", rest))
	}
	return out
}

// fmtNum prints up to two decimals without trailing zeros.
func fmtNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
