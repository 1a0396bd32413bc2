// Package report renders discovery results for people.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	runewidth "github.com/mattn/go-runewidth"

	"rcfind/internal/sdk"
)

var (
	headStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	hitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#03BF87")).Bold(true)
	missStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	winStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
	boxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// MaxPathWidth caps the path column; longer paths keep their tail.
const MaxPathWidth = 72

// Probes renders a trace as a bordered table. The first hit is the one Find
// would have returned and is marked as such.
func Probes(title string, outcomes []sdk.Outcome) string {
	rows := [][]string{{"#", "probe", "result", "path", "time"}}
	winner := -1
	for i, o := range outcomes {
		res, path := "miss", "-"
		if o.Found {
			res = "found"
			path = truncatePath(o.Path, MaxPathWidth)
			if winner < 0 {
				winner = i
			}
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			o.Probe.Name,
			res,
			path,
			o.Elapsed.Round(10 * time.Microsecond).String(),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, r := range rows {
		for c, cell := range r {
			if w := xansi.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}

	var sb strings.Builder
	for i, r := range rows {
		cells := make([]string, len(r))
		for c, cell := range r {
			cells[c] = cell + strings.Repeat(" ", widths[c]-xansi.StringWidth(cell))
		}
		line := strings.Join(cells, "  ")
		switch {
		case i == 0:
			line = headStyle.Render(line)
		case i-1 == winner:
			line = winStyle.Render(line)
		case r[2] == "found":
			line = hitStyle.Render(line)
		default:
			line = missStyle.Render(line)
		}
		sb.WriteString(line)
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}

	footer := "no probe found the tool"
	if winner >= 0 {
		footer = "selected: " + outcomes[winner].Probe.Name
	}
	body := headStyle.Render(title) + "\n\n" + sb.String() + "\n\n" + footer
	return boxStyle.Render(body)
}

// truncatePath keeps the tail of p, which holds the version and file name.
func truncatePath(p string, max int) string {
	if runewidth.StringWidth(p) <= max {
		return p
	}
	rs := []rune(p)
	for i := range rs {
		tail := string(rs[i:])
		if runewidth.StringWidth(tail)+1 <= max {
			return "…" + tail
		}
	}
	return runewidth.Truncate(p, max, "…")
}
