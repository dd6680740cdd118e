// Package report renders parsed records and cleaning results for the
// terminal: previews, per-record cards, the cleaned table, summaries and
// text charts.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"seqclean/internal/clean"
	"seqclean/internal/fasta"
)

// SymbolPreview is how many symbols cards and tables show.
const SymbolPreview = 30

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Preview lists the first n records with length and GC content.
func Preview(records []fasta.Record, n int) string {
	if len(records) == 0 {
		return labelStyle.Render("No sequences to show.")
	}
	var b strings.Builder
	shown := min(n, len(records))
	for _, r := range records[:shown] {
		fmt.Fprintf(&b, "  %s: %d nt, GC: %.2f%%\n", r.Name(), r.Len(), r.GCContent())
	}
	if rest := len(records) - shown; rest > 0 {
		fmt.Fprintf(&b, "  %s\n", labelStyle.Render(fmt.Sprintf("...and %d more sequences.", rest)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Detail renders one record as a card.
func Detail(r fasta.Record) string {
	valid := okStyle.Render("yes")
	if !r.IsValid() {
		valid = badStyle.Render("no (contains invalid nucleotides)")
	}
	cat := string(r.Category())
	lines := []string{
		titleStyle.Render("Sequence: " + r.Name()),
		labelStyle.Render("Length:   ") + fmt.Sprintf("%d nucleotides", r.Len()),
		labelStyle.Render("GC:       ") + fmt.Sprintf("%.2f%%", r.GCContent()),
		labelStyle.Render("Valid:    ") + valid,
		labelStyle.Render("Type:     ") + CategoryStyle(cat).Render(cat),
		labelStyle.Render("Symbols:  ") + truncate(r.Symbols(), SymbolPreview),
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Summary renders the removal counts.
func Summary(res clean.Result) string {
	lines := []string{
		titleStyle.Render("Cleaning summary"),
		labelStyle.Render("Duplicates removed: ") + fmt.Sprint(res.Duplicates),
		labelStyle.Render("Invalid removed:    ") + fmt.Sprint(res.Invalid),
		labelStyle.Render("Retained:           ") + fmt.Sprintf("%d of %d", res.Retained(), res.Total),
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Table renders the cleaned rows.
func Table(rows []clean.Row) string {
	if len(rows) == 0 {
		return labelStyle.Render("No rows left after cleaning.")
	}
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{
			fmt.Sprint(i),
			r.Name,
			truncate(r.Symbols, SymbolPreview),
			fmt.Sprint(r.Length),
			fmt.Sprintf("%.2f", r.GCContent),
			string(r.Category),
		}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers("#", "Name", "Sequence", "Length", "GC %", "Type").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 5 {
				return CategoryStyle(data[row][5]).Padding(0, 1)
			}
			return cellStyle
		})
	return t.String()
}

// CountCheck reports whether n lies within [lo, hi] and a message saying so.
func CountCheck(source string, n, lo, hi int) (string, bool) {
	if n < lo || n > hi {
		return warnStyle.Render(fmt.Sprintf("%s contains %d sequences; expected between %d and %d.", source, n, lo, hi)), false
	}
	return okStyle.Render(fmt.Sprintf("%s contains %d sequences; meets the minimum of %d.", source, n, lo)), true
}
