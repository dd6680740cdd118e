package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// HeaderMarker starts every header line.
const HeaderMarker = '>'

var (
	// ErrNotFound is returned when the input file does not exist.
	ErrNotFound = errors.New("fasta: input not found")
	// ErrRead wraps I/O faults hit while reading the input.
	ErrRead = errors.New("fasta: read failed")
)

// maxLine bounds a single input line; sequences may be written unwrapped.
const maxLine = 16 * 1024 * 1024

// parser holds the header/body state machine. open is false until the
// first header is seen.
type parser struct {
	out   *Collection
	diags []Diagnostic

	open       bool
	name       string
	headerLine int
	body       []string
}

func (p *parser) warn(d Diagnostic) { p.diags = append(p.diags, d) }

// finish closes the record being accumulated, if any.
func (p *parser) finish() {
	if !p.open {
		return
	}
	if len(p.body) == 0 {
		p.warn(Diagnostic{Kind: DiagMissingBody, Line: p.headerLine, Name: p.name})
	} else {
		p.out.Put(NewRecord(p.name, strings.Join(p.body, "")))
	}
	p.open = false
	p.body = nil
}

func (p *parser) line(n int, raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}
	if line[0] == HeaderMarker {
		p.finish()
		p.open = true
		p.name = line[1:]
		p.headerLine = n
		if p.name == "" {
			p.warn(Diagnostic{Kind: DiagEmptyName, Line: n})
		}
		return
	}
	if !p.open {
		p.warn(Diagnostic{Kind: DiagOrphanLine, Line: n, Text: line})
		return
	}
	p.body = append(p.body, line)
}

// Parse reads FASTA text from r and returns the parsed records together
// with advisory diagnostics. Only read faults are returned as errors; in
// that case the collection is nil.
func Parse(r io.Reader) (*Collection, []Diagnostic, error) {
	p := &parser{out: NewCollection()}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLine)

	n := 0
	var read int
	everOpened := false
	for scanner.Scan() {
		n++
		raw := scanner.Text()
		read += len(raw) + 1
		p.line(n, raw)
		everOpened = everOpened || p.open
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if read == 0 {
		return p.out, []Diagnostic{{Kind: DiagEmptySource}}, nil
	}
	p.finish()
	if !everOpened && p.out.Len() == 0 {
		p.warn(Diagnostic{Kind: DiagNoEntries})
	}
	return p.out, p.diags, nil
}

// ParseFile opens path, parses it fully and closes it. A missing file
// yields ErrNotFound, any other open or read fault ErrRead.
func ParseFile(path string) (*Collection, []Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer f.Close()
	return Parse(f)
}
