package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/envup/pkg/bootstrap"
	"github.com/pterm/pterm"
)

// RenderOutcome renders a single outcome as a live status line.
func RenderOutcome(o bootstrap.Outcome) string {
	line := fmt.Sprintf("%s %-10s %-30s %s",
		StatusStyle(o.Status).Sprint(Indicator(o.Status)),
		o.Stage, o.Item,
		StatusStyle(o.Status).Sprint(string(o.Status)))
	if o.Note != "" {
		line += " " + MutedStyle.Sprint("("+o.Note+")")
	}
	return line
}

// RenderSummary renders the end-of-run outcome table.
func RenderSummary(result *bootstrap.Result) string {
	if len(result.Outcomes) == 0 {
		return MutedStyle.Sprint("Nothing to do")
	}

	data := pterm.TableData{{"", "STAGE", "ITEM", "STATUS", "NOTE"}}
	for _, o := range result.Outcomes {
		data = append(data, []string{
			StatusStyle(o.Status).Sprint(Indicator(o.Status)),
			o.Stage,
			o.Item,
			StatusStyle(o.Status).Sprint(string(o.Status)),
			o.Note,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// Table rendering never blocks reporting; fall back to plain lines.
		var b strings.Builder
		for _, o := range result.Outcomes {
			b.WriteString(RenderOutcome(o) + "\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Bootstrap summary") + "\n\n")
	b.WriteString(table)

	if failed := result.Failed(); len(failed) > 0 {
		b.WriteString("\n\n")
		b.WriteString(StatusStyle(bootstrap.StatusFailed).Sprintf("%d item(s) failed", len(failed)))
	}
	return b.String()
}
