package classify

// Package classify holds the composition metrics and the category policy
// applied to nucleotide sequences. All functions are pure and operate on
// already normalised (upper-cased) symbol strings.

import "strings"

// Alphabet lists the nucleotides a valid sequence may contain.
const Alphabet = "ATCG"

// Category thresholds, in percent GC.
const (
	GCRichAbove = 60.0
	ATRichBelow = 40.0
)

// Category is the three-way label derived from GC content.
type Category string

const (
	GCRich   Category = "GC-rich"
	ATRich   Category = "AT-rich"
	Standard Category = "Standard"
)

// Categories returns every label in a stable display order.
func Categories() []Category {
	return []Category{ATRich, Standard, GCRich}
}

func (c Category) String() string { return string(c) }

// GCContent returns the percentage of G and C symbols in seq.
// An empty sequence yields exactly 0.
func GCContent(seq string) float64 {
	if seq == "" {
		return 0.0
	}
	gc := strings.Count(seq, "G") + strings.Count(seq, "C")
	return float64(gc) / float64(len(seq)) * 100
}

// IsValid reports whether seq only contains symbols from Alphabet.
// The empty sequence is valid.
func IsValid(seq string) bool {
	for i := 0; i < len(seq); i++ {
		if strings.IndexByte(Alphabet, seq[i]) < 0 {
			return false
		}
	}
	return true
}

// InvalidSymbols returns the distinct out-of-alphabet characters in seq,
// in order of first appearance.
func InvalidSymbols(seq string) []rune {
	var out []rune
	seen := map[rune]bool{}
	for _, r := range seq {
		if strings.ContainsRune(Alphabet, r) || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// CategoryFor maps a GC percentage to its category. Both 40 and 60 fall in
// the Standard band.
func CategoryFor(gc float64) Category {
	switch {
	case gc > GCRichAbove:
		return GCRich
	case gc < ATRichBelow:
		return ATRich
	default:
		return Standard
	}
}

// Of classifies seq directly.
func Of(seq string) Category {
	return CategoryFor(GCContent(seq))
}
