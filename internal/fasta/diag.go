package fasta

import "fmt"

// DiagKind identifies the kind of problem a Diagnostic reports.
type DiagKind int

const (
	// DiagEmptySource: the input had zero bytes.
	DiagEmptySource DiagKind = iota
	// DiagMissingBody: a header was followed by no sequence lines; the entry is skipped.
	DiagMissingBody
	// DiagEmptyName: a header line carried no name. The entry is still
	// accumulated under the empty name.
	DiagEmptyName
	// DiagOrphanLine: sequence data appeared before any header and was dropped.
	DiagOrphanLine
	// DiagNoEntries: the input contained no header at all.
	DiagNoEntries
)

func (k DiagKind) String() string {
	switch k {
	case DiagEmptySource:
		return "empty-source"
	case DiagMissingBody:
		return "missing-body"
	case DiagEmptyName:
		return "empty-name"
	case DiagOrphanLine:
		return "orphan-line"
	case DiagNoEntries:
		return "no-entries"
	default:
		return "unknown"
	}
}

// Diagnostic is an advisory notice about malformed input. Line is 1-based
// and 0 when the notice concerns the whole input.
type Diagnostic struct {
	Kind DiagKind
	Line int
	Name string
	Text string
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagEmptySource:
		return "input is empty"
	case DiagMissingBody:
		return fmt.Sprintf("header %q on line %d has no sequence body; entry skipped", d.Name, d.Line)
	case DiagEmptyName:
		return fmt.Sprintf("empty header on line %d; entry kept under an empty name", d.Line)
	case DiagOrphanLine:
		return fmt.Sprintf("sequence data without preceding header on line %d: %q; dropped", d.Line, d.Text)
	case DiagNoEntries:
		return "input contains no FASTA entries"
	default:
		return fmt.Sprintf("line %d: %s", d.Line, d.Kind)
	}
}
