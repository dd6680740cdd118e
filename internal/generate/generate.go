// Package generate writes synthetic FASTA fixtures: random nucleotide
// sequences mixed with a block of content duplicates and a block of
// sequences that carry out-of-alphabet symbols.
package generate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"seqclean/internal/fasta"
)

var (
	nucleotides = []byte("ATCG")
	noise       = []byte("NXZ")
	noisy       = []byte("ATCGNXZ")
)

// Options control the fixture shape.
type Options struct {
	Total            int
	MinLength        int
	MaxLength        int
	Duplicates       int
	Invalid          int
	NoiseProbability float64
}

// DefaultOptions mirrors the stock fixture: 31 entries of 50..199 symbols,
// up to 6 duplicates and 6 invalid entries, 25% noisy "normal" sequences.
func DefaultOptions() Options {
	return Options{
		Total:            31,
		MinLength:        50,
		MaxLength:        199,
		Duplicates:       6,
		Invalid:          6,
		NoiseProbability: 0.25,
	}
}

// Validate rejects option sets that cannot produce a fixture.
func (o Options) Validate() error {
	switch {
	case o.Total < 0:
		return errors.New("generate: total must not be negative")
	case o.MinLength < 1:
		return errors.New("generate: min length must be positive")
	case o.MaxLength < o.MinLength:
		return fmt.Errorf("generate: max length %d below min length %d", o.MaxLength, o.MinLength)
	case o.NoiseProbability < 0 || o.NoiseProbability > 1:
		return fmt.Errorf("generate: noise probability %v outside [0,1]", o.NoiseProbability)
	}
	return nil
}

// Plan is the entry breakdown Generate will write.
type Plan struct {
	Base       int
	Duplicates int
	Invalid    int
}

// PlanFor caps duplicates and invalid entries at a quarter of the total and
// fills the rest with base sequences. At least one base sequence is kept
// when duplicates are requested, since one of them carries the payload.
func PlanFor(o Options) Plan {
	p := Plan{
		Duplicates: min(o.Duplicates, o.Total/4),
		Invalid:    min(o.Invalid, o.Total/4),
	}
	p.Duplicates = max(p.Duplicates, 0)
	p.Invalid = max(p.Invalid, 0)
	p.Base = o.Total - p.Duplicates - p.Invalid
	if p.Duplicates > 0 && p.Base < 1 {
		p.Base = 1
	}
	if p.Base < 0 {
		p.Base = 0
	}
	return p
}

// Sequence returns a random sequence of length n. With forceInvalid one
// position is replaced by N, X or Z. Otherwise the sequence is drawn from
// the noisy alphabet with probability noiseProb.
func Sequence(rng *rand.Rand, n int, forceInvalid bool, noiseProb float64) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	alphabet := nucleotides
	if !forceInvalid && rng.Float64() < noiseProb {
		alphabet = noisy
	}
	for i := range buf {
		buf[i] = alphabet[rng.Intn(len(alphabet))]
	}
	if forceInvalid {
		buf[rng.Intn(n)] = noise[rng.Intn(len(noise))]
	}
	return string(buf)
}

func length(rng *rand.Rand, o Options) int {
	return o.MinLength + rng.Intn(o.MaxLength-o.MinLength+1)
}

// Generate writes a fixture to w and returns the plan it followed.
func Generate(w io.Writer, o Options, rng *rand.Rand) (Plan, error) {
	if err := o.Validate(); err != nil {
		return Plan{}, err
	}
	p := PlanFor(o)
	var records []fasta.Record

	var dupPayload string
	dupSlot := -1
	if p.Duplicates > 0 && p.Base > 0 {
		dupSlot = 1 + rng.Intn(p.Base)
		dupPayload = Sequence(rng, length(rng, o), false, o.NoiseProbability)
	}

	for i := 1; i <= p.Base; i++ {
		n := length(rng, o)
		seq := dupPayload
		if i != dupSlot {
			seq = Sequence(rng, n, false, o.NoiseProbability)
		}
		records = append(records, fasta.NewRecord(fmt.Sprintf("Sequence_%d", i), seq))
	}

	for i := 1; i <= p.Duplicates; i++ {
		records = append(records, fasta.NewRecord(fmt.Sprintf("Duplicate_A_%d", i), dupPayload))
	}

	for i := 1; i <= p.Invalid; i++ {
		seq := Sequence(rng, length(rng, o), true, o.NoiseProbability)
		records = append(records, fasta.NewRecord(fmt.Sprintf("Invalid_%d", i), seq))
	}

	bw := bufio.NewWriter(w)
	if err := fasta.WriteRecords(bw, records); err != nil {
		return p, err
	}
	return p, bw.Flush()
}

// WriteFile creates or truncates path and writes a fixture into it.
func WriteFile(path string, o Options, rng *rand.Rand) (Plan, error) {
	f, err := os.Create(path)
	if err != nil {
		return Plan{}, err
	}
	p, err := Generate(f, o, rng)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return p, fmt.Errorf("write fixture %s: %w", path, err)
	}
	return p, nil
}

// RandomTotal picks a fixture size in [lo, hi].
func RandomTotal(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// NewRand returns a generator seeded with seed, or with the clock when
// seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Names lists the entry names a plan produces, in file order.
func (p Plan) Names() []string {
	var out []string
	for i := 1; i <= p.Base; i++ {
		out = append(out, fmt.Sprintf("Sequence_%d", i))
	}
	for i := 1; i <= p.Duplicates; i++ {
		out = append(out, fmt.Sprintf("Duplicate_A_%d", i))
	}
	for i := 1; i <= p.Invalid; i++ {
		out = append(out, fmt.Sprintf("Invalid_%d", i))
	}
	return out
}

func (p Plan) String() string {
	return fmt.Sprintf("%d base, %d duplicates, %d invalid", p.Base, p.Duplicates, p.Invalid)
}
