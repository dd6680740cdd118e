package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"seqclean/internal/classify"
	"seqclean/internal/clean"
)

// Bin is one histogram bucket covering [Lo, Hi).
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram splits values into n equal-width bins between their minimum and
// maximum. The last bin is closed on the right. Equal values share a single
// bin.
func Histogram(values []float64, n int) []Bin {
	if len(values) == 0 || n < 1 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo == hi {
		return []Bin{{Lo: lo, Hi: hi, Count: len(values)}}
	}
	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[n-1].Hi = hi
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins
}

func bar(count, peak, width int) string {
	if peak == 0 || count == 0 || width <= 0 {
		return ""
	}
	n := count * width / peak
	if n == 0 {
		n = 1
	}
	return barStyle.Render(strings.Repeat("█", n))
}

func renderBins(title string, bins []Bin, width int, format string) string {
	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}
	lines := []string{titleStyle.Render(title)}
	for _, b := range bins {
		label := fmt.Sprintf(format+"-"+format, b.Lo, b.Hi)
		lines = append(lines, fmt.Sprintf("%15s │%s %d", label, bar(b.Count, peak, width), b.Count))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// LengthHistogram charts the distribution of sequence lengths.
func LengthHistogram(rows []clean.Row, bins, width int) string {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = float64(r.Length)
	}
	return renderBins("Sequence length distribution (nt)", Histogram(values, bins), width, "%.0f")
}

// GCHistogram charts the distribution of GC content.
func GCHistogram(rows []clean.Row, bins, width int) string {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.GCContent
	}
	return renderBins("GC content distribution (%)", Histogram(values, bins), width, "%.1f")
}

// CategoryCounts counts rows per category, in classify.Categories order.
func CategoryCounts(rows []clean.Row) map[classify.Category]int {
	out := make(map[classify.Category]int, 3)
	for _, c := range classify.Categories() {
		out[c] = 0
	}
	for _, r := range rows {
		out[r.Category]++
	}
	return out
}

// CategoryBars charts the number of rows per category.
func CategoryBars(rows []clean.Row, width int) string {
	counts := CategoryCounts(rows)
	peak := 0
	for _, n := range counts {
		peak = max(peak, n)
	}
	lines := []string{titleStyle.Render("Sequences by type")}
	for _, c := range classify.Categories() {
		label := CategoryStyle(string(c)).Render(fmt.Sprintf("%-8s", c))
		lines = append(lines, fmt.Sprintf("%s │%s %d", label, bar(counts[c], peak, width), counts[c]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Scatter plots length (x) against GC content (y) on a w×h character grid.
func Scatter(rows []clean.Row, w, h int) string {
	if len(rows) == 0 || w < 2 || h < 2 {
		return ""
	}
	minLen, maxLen := rows[0].Length, rows[0].Length
	for _, r := range rows {
		minLen = min(minLen, r.Length)
		maxLen = max(maxLen, r.Length)
	}
	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", w))
	}
	for _, r := range rows {
		x := 0
		if maxLen > minLen {
			x = (r.Length - minLen) * (w - 1) / (maxLen - minLen)
		}
		y := int(r.GCContent / 100 * float64(h-1))
		grid[h-1-y][x] = '•'
	}
	lines := []string{titleStyle.Render("Length vs GC content")}
	for i, row := range grid {
		axis := "     "
		switch i {
		case 0:
			axis = "100% "
		case h - 1:
			axis = "  0% "
		}
		lines = append(lines, axis+"│"+string(row))
	}
	lines = append(lines, "     └"+strings.Repeat("─", w))
	lines = append(lines, fmt.Sprintf("      %-*d%d nt", w-len(fmt.Sprint(maxLen))-3, minLen, maxLen))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Charts renders all charts, or a short notice when there is no data.
func Charts(rows []clean.Row, bins, width int) string {
	if len(rows) == 0 {
		return labelStyle.Render("No data to chart.")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		LengthHistogram(rows, bins, width), "",
		GCHistogram(rows, bins, width), "",
		Scatter(rows, width, 10), "",
		CategoryBars(rows, width),
	)
}
