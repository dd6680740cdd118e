package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqclean/internal/fasta"
	"seqclean/internal/store"
)

type result struct {
	out, errOut string
	err         error
	app         *app
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	root, a := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	require.NoError(t, a.Close())
	return result{out: out.String(), errOut: errOut.String(), err: err, app: a}
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	p := filepath.Join(dir, "seqs.fasta")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestVersion(t *testing.T) {
	t.Chdir(t.TempDir())
	r := execute(t, "", "version")
	require.NoError(t, r.err)
	assert.Equal(t, "seqclean "+version+"\n", r.out)
}

func TestRunScenarioA(t *testing.T) {
	in := writeInput(t, ">S1\nATCG\n>S2\nATCG\n>S3\nNNNN\n")
	out := filepath.Join(filepath.Dir(in), "rows.json")
	db := filepath.Join(filepath.Dir(in), "runs.db")

	r := execute(t, "", "run", "--in", in, "--out", out, "--db", db, "--no-charts")
	require.NoError(t, r.err, r.errOut)
	assert.Contains(t, r.out, "Retained:           1 of 3")
	assert.Contains(t, r.errOut, "cleaned sequences")

	rows, err := store.ReadJSON(out)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "S1", rows[0].Name)
	assert.Equal(t, 50.0, rows[0].GCContent)

	s, err := store.Open(context.Background(), db)
	require.NoError(t, err)
	defer s.Close()
	run, err := s.LatestRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, run.Total)
	assert.Equal(t, 1, run.Duplicates)
	assert.Equal(t, 1, run.Invalid)
}

func TestRunReportsDiagnostics(t *testing.T) {
	in := writeInput(t, "ATCG\n>S1\nATCG\n>Empty\n")
	r := execute(t, "", "run", "--in", in, "--no-charts")
	require.NoError(t, r.err)
	assert.Contains(t, r.errOut, "sequence data without preceding header")
	assert.Contains(t, r.errOut, "has no sequence body")
	assert.Contains(t, r.out, "Retained:           1 of 1")
}

func TestRunEmptyFile(t *testing.T) {
	in := writeInput(t, "")
	r := execute(t, "", "run", "--in", in)
	require.NoError(t, r.err)
	assert.Contains(t, r.errOut, "input is empty")
	assert.Contains(t, r.out, "No rows left after cleaning.")
	assert.Contains(t, r.out, "No data to chart.")
}

func TestRunReadFaultIsFatal(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	r := execute(t, "", "run", "--in", dir, "--out", filepath.Join(dir, "rows.json"))
	require.ErrorIs(t, r.err, fasta.ErrRead)
	assert.Contains(t, r.errOut, "cannot continue")
	_, err := os.Stat(filepath.Join(dir, "rows.json"))
	assert.True(t, os.IsNotExist(err), "no output expected after a fatal read error")
}

func TestLogFileClosedAfterFailedRun(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	logPath := filepath.Join(dir, "seqclean.log")
	t.Setenv("SEQCLEAN_LOG_FILE", logPath)

	r := execute(t, "", "run", "--in", dir)
	require.ErrorIs(t, r.err, fasta.ErrRead)
	assert.Nil(t, r.app.closer)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cannot continue")
}

func TestRunGeneratesMissingInput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	in := filepath.Join(dir, "fresh.fasta")
	t.Setenv("SEQCLEAN_SEED", "17")

	r := execute(t, "", "run", "--in", in, "--no-charts")
	require.NoError(t, r.err, r.errOut)
	col, _, err := fasta.ParseFile(in)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, col.Len(), 31)
	assert.LessOrEqual(t, col.Len(), 50)
	assert.Contains(t, r.errOut, "fixture written")
	assert.Contains(t, r.errOut, "duplicates")
}

func TestRunAddsSequenceFromFlags(t *testing.T) {
	in := writeInput(t, ">S1\nATCG\n")
	r := execute(t, "", "run", "--in", in, "--name", "Mine", "--symbols", "ggcc", "--no-charts")
	require.NoError(t, r.err, r.errOut)
	assert.Contains(t, r.out, "Retained:           2 of 2")

	col, _, err := fasta.ParseFile(in)
	require.NoError(t, err)
	rec, ok := col.Get("Mine")
	require.True(t, ok)
	assert.Equal(t, "GGCC", rec.Symbols())
}

func TestRunInteractive(t *testing.T) {
	in := writeInput(t, ">S1\nATCG\n")
	// keep the file, then add a sequence that overwrites S1
	r := execute(t, "no\nyes\nS1\nGGGG\n", "run", "-i", "--in", in, "--no-charts")
	require.NoError(t, r.err, r.errOut)
	assert.Contains(t, r.errOut, "overwritten")
	assert.Contains(t, r.out, "GC-rich")
	assert.Contains(t, r.out, "Retained:           1 of 1")
}

func TestAddPromptCancelled(t *testing.T) {
	in := writeInput(t, ">S1\nATCG\n")
	r := execute(t, "\n", "add", "--in", in)
	require.NoError(t, r.err)
	assert.Contains(t, r.errOut, "cancelled")
	data, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, ">S1\nATCG\n", string(data))
}

func TestAddFromPrompt(t *testing.T) {
	in := writeInput(t, ">S1\nATCG\n")
	r := execute(t, "New\natnn\n", "add", "--in", in)
	require.NoError(t, r.err)
	assert.Contains(t, r.errOut, "invalid characters")
	data, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, ">S1\nATCG\n>New\nATNN\n", string(data))
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	in := filepath.Join(dir, "gen.fasta")
	r := execute(t, "", "generate", "--in", in, "--total", "12", "--seed", "3")
	require.NoError(t, r.err, r.errOut)
	col, _, err := fasta.ParseFile(in)
	require.NoError(t, err)
	assert.Equal(t, 12, col.Len())
}
