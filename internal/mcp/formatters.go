package mcp

import (
	"fmt"
	"strings"

	"github.com/darvasboard/darvas-portal/internal/view"
)

// formatTickerReport formats a dashboard display model as markdown.
func formatTickerReport(d *view.Dashboard) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Stock Data Viewer: %s\n\n", d.Ticker))

	if d.Error != nil {
		sb.WriteString(fmt.Sprintf("**Error:** %s\n\n", d.Error.Message))
		sb.WriteString(d.Error.Hint + "\n")
		return sb.String()
	}

	sb.WriteString("## Company Information\n\n")
	for _, kv := range d.Company {
		sb.WriteString(fmt.Sprintf("**%s:** %s\n", kv.Label, kv.Value))
	}
	sb.WriteString("\n")

	sb.WriteString("## Last Full Trading Week\n\n")
	sb.WriteString("| Date | Open | High | Low | Close |\n")
	sb.WriteString("|------|------|------|-----|-------|\n")
	for _, row := range d.Week {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			row.Date,
			markCell(row.Open),
			markCell(row.High),
			markCell(row.Low),
			markCell(row.Close)))
	}
	sb.WriteString("\n")

	sb.WriteString("## Trade Levels\n\n")
	writeMetric(&sb, d.GTTBuy)
	writeMetric(&sb, d.Target)
	writeMetric(&sb, d.High52)
	writeMetric(&sb, d.Low52)
	sb.WriteString("\n")

	if d.Signal != nil {
		sb.WriteString(fmt.Sprintf("%s %s\n", d.Signal.Glyph, d.Signal.Caption))
	}

	return sb.String()
}

// markCell bolds week-extreme cells so the highlight survives in markdown.
func markCell(c view.Cell) string {
	if c.Highlight != view.HighlightNone {
		return "**" + c.Value + "**"
	}
	return c.Value
}

func writeMetric(sb *strings.Builder, m view.Metric) {
	sb.WriteString(fmt.Sprintf("**%s:** %s", m.Label, m.Value))
	if m.Caption != "" {
		sb.WriteString(" (" + m.Caption + ")")
	}
	sb.WriteString("\n")
}
