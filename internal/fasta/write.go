package fasta

import (
	"fmt"
	"io"
	"os"
)

// Format renders a single entry as a header line followed by one body line.
func Format(name, symbols string) string {
	return fmt.Sprintf("%c%s\n%s\n", HeaderMarker, name, symbols)
}

// WriteRecords writes each record in FASTA form.
func WriteRecords(w io.Writer, records []Record) error {
	for _, r := range records {
		if _, err := io.WriteString(w, Format(r.name, r.symbols)); err != nil {
			return err
		}
	}
	return nil
}

// AppendFile appends r to the FASTA file at path, creating it if needed.
func AppendFile(path string, r Record) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, Format(r.name, r.symbols)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
