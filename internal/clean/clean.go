// Package clean filters a parsed collection down to valid, content-unique
// records and annotates each survivor with its derived metrics.
package clean

import (
	"fmt"

	"github.com/charmbracelet/log"

	"seqclean/internal/classify"
	"seqclean/internal/fasta"
)

// Row is the annotated projection of one accepted record.
type Row struct {
	Name      string            `json:"name"`
	Symbols   string            `json:"symbols"`
	Length    int               `json:"length"`
	GCContent float64           `json:"gc_content"`
	Category  classify.Category `json:"category"`
}

// RowOf builds the annotated row for r.
func RowOf(r fasta.Record) Row {
	return Row{
		Name:      r.Name(),
		Symbols:   r.Symbols(),
		Length:    r.Len(),
		GCContent: r.GCContent(),
		Category:  r.Category(),
	}
}

// Result carries the cleaned rows and the removal counts.
type Result struct {
	Rows       []Row
	Total      int
	Duplicates int
	Invalid    int
}

// Retained is the number of accepted rows.
func (r Result) Retained() int { return len(r.Rows) }

// Summary renders the counts in one line.
func (r Result) Summary() string {
	return fmt.Sprintf("%d duplicates removed, %d invalid removed, %d retained of %d original",
		r.Duplicates, r.Invalid, r.Retained(), r.Total)
}

type options struct {
	logger *log.Logger
}

// Option configures Clean.
type Option func(*options)

// WithLogger reports each removed record at debug level and the final
// counts at info level.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Clean walks col in iteration order. Records with out-of-alphabet symbols
// are counted as invalid; records whose symbols equal an already accepted
// record are counted as duplicates regardless of name. col is not modified.
func Clean(col *fasta.Collection, opts ...Option) Result {
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	res := Result{Rows: []Row{}, Total: col.Len()}
	seen := make(map[string]struct{}, col.Len())
	for _, rec := range col.Records() {
		if !rec.IsValid() {
			res.Invalid++
			if o.logger != nil {
				o.logger.Debug("removing invalid sequence", "name", rec.Name(), "symbols", string(classify.InvalidSymbols(rec.Symbols())))
			}
			continue
		}
		if _, dup := seen[rec.Symbols()]; dup {
			res.Duplicates++
			if o.logger != nil {
				o.logger.Debug("removing duplicate sequence", "name", rec.Name())
			}
			continue
		}
		seen[rec.Symbols()] = struct{}{}
		res.Rows = append(res.Rows, RowOf(rec))
	}

	if o.logger != nil {
		o.logger.Info("cleaned sequences", "duplicates", res.Duplicates, "invalid", res.Invalid, "retained", res.Retained(), "total", res.Total)
	}
	return res
}
