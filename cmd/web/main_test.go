package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqclean/internal/clean"
	"seqclean/internal/fasta"
	"seqclean/internal/store"
)

func newTestServer(t *testing.T, inputs ...string) (*server, *bytes.Buffer) {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	for _, in := range inputs {
		col, _, err := fasta.Parse(strings.NewReader(in))
		require.NoError(t, err)
		_, err = st.SaveRun(context.Background(), "test.fasta", clean.Clean(col))
		require.NoError(t, err)
	}
	var logs bytes.Buffer
	return &server{store: st, logger: log.New(&logs)}, &logs
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

const sample = ">b_at\nAAAAAT\n>a_gc\nGGGGGC\n>c_std\nATCGATCG\n>dup\nATCGATCG\n>bad\nNNN\n"

func TestRowsFilterAndSort(t *testing.T) {
	s, logs := newTestServer(t, sample)
	h := s.routes()

	rec := get(t, h, "/api/rows?sort=name")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []clean.Row
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a_gc", "b_at", "c_std"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})

	rec = get(t, h, "/api/rows?q=gc-rich")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "a_gc", rows[0].Name)

	assert.Contains(t, logs.String(), "/api/rows")
}

func TestRowLookup(t *testing.T) {
	s, _ := newTestServer(t, sample)
	h := s.routes()

	rec := get(t, h, "/api/row/c_std")
	require.Equal(t, http.StatusOK, rec.Code)
	var row clean.Row
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &row))
	assert.Equal(t, 8, row.Length)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/row/dup").Code)
}

func TestSummaryAndRuns(t *testing.T) {
	s, _ := newTestServer(t, ">x\nA\n", sample)
	h := s.routes()

	rec := get(t, h, "/api/runs")
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []store.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 2)

	rec = get(t, h, "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	var sum summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 5, sum.Run.Total)
	assert.Equal(t, 1, sum.Run.Duplicates)
	assert.Equal(t, map[string]int{"GC-rich": 1, "AT-rich": 1, "Standard": 1}, sum.Categories)
}

func TestEmptyDatabase(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.routes()
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/summary").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/rows").Code)

	rec := get(t, h, "/api/runs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestRowsForNamedRun(t *testing.T) {
	s, _ := newTestServer(t, ">x\nGGGG\n", sample)
	h := s.routes()

	runs, err := s.store.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)
	older := runs[1].ID

	rec := get(t, h, "/api/rows?run="+older)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []clean.Row
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "x", rows[0].Name)

	rec = get(t, h, "/api/rows?run=no-such-id")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no such run")

	rec = get(t, h, "/api/row/x?run=no-such-id")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no such run")
}
