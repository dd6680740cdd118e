// Package prompt asks the user for a single sequence on a line-oriented
// terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"seqclean/internal/fasta"
)

// ErrCancelled is returned when the user leaves the name or sequence empty.
var ErrCancelled = errors.New("prompt: cancelled")

// Asker reads answers from in and writes questions to out.
type Asker struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Asker {
	return &Asker{in: bufio.NewReader(in), out: out}
}

// Ask writes question and returns the trimmed answer. EOF with no input
// yields an empty answer.
func (a *Asker) Ask(question string) (string, error) {
	if _, err := fmt.Fprint(a.out, question); err != nil {
		return "", err
	}
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Only "y", "yes" (any case) are yes.
func (a *Asker) Confirm(question string) (bool, error) {
	ans, err := a.Ask(question + " (yes/no): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(ans) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Sequence asks for a name and a sequence and returns them as a record.
// Either answer left empty cancels.
func (a *Asker) Sequence() (fasta.Record, error) {
	name, err := a.Ask("Sequence name (e.g. My_Sequence): ")
	if err != nil {
		return fasta.Record{}, err
	}
	if name == "" {
		return fasta.Record{}, fmt.Errorf("%w: empty name", ErrCancelled)
	}
	symbols, err := a.Ask("Paste the DNA sequence (A, T, C, G only): ")
	if err != nil {
		return fasta.Record{}, err
	}
	if symbols == "" {
		return fasta.Record{}, fmt.Errorf("%w: empty sequence", ErrCancelled)
	}
	return fasta.NewRecord(name, symbols), nil
}
