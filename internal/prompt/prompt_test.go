package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSequence(t *testing.T) {
	var out bytes.Buffer
	a := New(strings.NewReader("  My_Seq \natcgg\n"), &out)
	rec, err := a.Sequence()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Name() != "My_Seq" || rec.Symbols() != "ATCGG" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if !strings.Contains(out.String(), "Sequence name") {
		t.Fatalf("question not written: %q", out.String())
	}
}

func TestSequenceCancelled(t *testing.T) {
	cases := []string{"\nATCG\n", "name\n\n", ""}
	for _, in := range cases {
		_, err := New(strings.NewReader(in), &bytes.Buffer{}).Sequence()
		if !errors.Is(err, ErrCancelled) {
			t.Fatalf("input %q: expected ErrCancelled, got %v", in, err)
		}
	}
}

func TestConfirm(t *testing.T) {
	cases := map[string]bool{"yes\n": true, "Y\n": true, "no\n": false, "\n": false, "tak\n": false}
	for in, want := range cases {
		got, err := New(strings.NewReader(in), &bytes.Buffer{}).Confirm("Continue?")
		if err != nil || got != want {
			t.Fatalf("Confirm(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}

func TestAskWithoutTrailingNewline(t *testing.T) {
	got, err := New(strings.NewReader("last"), &bytes.Buffer{}).Ask("? ")
	if err != nil || got != "last" {
		t.Fatalf("got %q, %v", got, err)
	}
}
