package fasta

// Package fasta parses the line-oriented FASTA text used as input by the
// project into an ordered collection of normalised records. Parsing is
// conservative: malformed input produces diagnostics rather than errors.

import (
	"fmt"
	"strings"

	"seqclean/internal/classify"
)

// Record is one normalised sequence entry. The zero value is not useful;
// build records with NewRecord.
type Record struct {
	name    string
	symbols string
}

// NewRecord trims both fields and upper-cases the symbols. No alphabet
// check is done here, see IsValid.
func NewRecord(name, symbols string) Record {
	return Record{
		name:    strings.TrimSpace(name),
		symbols: strings.ToUpper(strings.TrimSpace(symbols)),
	}
}

func (r Record) Name() string    { return r.name }
func (r Record) Symbols() string { return r.symbols }

// Len returns the number of symbols.
func (r Record) Len() int { return len(r.symbols) }

// GCContent returns the GC percentage, 0 for an empty record.
func (r Record) GCContent() float64 { return classify.GCContent(r.symbols) }

// IsValid reports whether every symbol is one of A, T, C, G.
func (r Record) IsValid() bool { return classify.IsValid(r.symbols) }

// Category classifies the record by its GC content.
func (r Record) Category() classify.Category { return classify.Of(r.symbols) }

func (r Record) String() string {
	return fmt.Sprintf("Name: %s\nSequence: %s", r.name, r.symbols)
}

// Collection is an insertion ordered mapping from record name to Record.
// Putting a name that is already present replaces the stored record but
// keeps its original position.
type Collection struct {
	index   map[string]int
	records []Record
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{index: make(map[string]int)}
}

// Put stores r under r.Name() and reports whether an existing entry was
// replaced.
func (c *Collection) Put(r Record) bool {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[r.name]; ok {
		c.records[i] = r
		return true
	}
	c.index[r.name] = len(c.records)
	c.records = append(c.records, r)
	return false
}

// Get returns the record stored under name.
func (c *Collection) Get(name string) (Record, bool) {
	if c == nil {
		return Record{}, false
	}
	i, ok := c.index[name]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// Has reports whether name is present.
func (c *Collection) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Len returns the number of distinct names.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Records returns a copy of the stored records in iteration order.
func (c *Collection) Records() []Record {
	if c == nil {
		return nil
	}
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Names returns the stored names in iteration order.
func (c *Collection) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.name
	}
	return out
}
