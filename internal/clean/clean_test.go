package clean

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqclean/internal/classify"
	"seqclean/internal/fasta"
)

func parse(t *testing.T, input string) *fasta.Collection {
	t.Helper()
	col, _, err := fasta.Parse(strings.NewReader(input))
	require.NoError(t, err)
	return col
}

func TestCleanScenarioA(t *testing.T) {
	col := parse(t, ">S1\nATCG\n>S2\nATCG\n>S3\nNNNN\n")
	require.Equal(t, 3, col.Len())

	res := Clean(col)

	want := []Row{{Name: "S1", Symbols: "ATCG", Length: 4, GCContent: 50.0, Category: classify.Standard}}
	if diff := cmp.Diff(want, res.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, 1, res.Invalid)
	assert.Equal(t, 1, res.Retained())
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, "1 duplicates removed, 1 invalid removed, 1 retained of 3 original", res.Summary())
}

func TestCleanEmpty(t *testing.T) {
	res := Clean(fasta.NewCollection())
	require.NotNil(t, res.Rows)
	assert.Empty(t, res.Rows)
	assert.Zero(t, res.Total)

	res = Clean(parse(t, ""))
	assert.Empty(t, res.Rows)
}

func TestCleanNothingSurvives(t *testing.T) {
	res := Clean(parse(t, ">a\nNNN\n>b\nXYZ\n"))
	require.NotNil(t, res.Rows)
	assert.Empty(t, res.Rows)
	assert.Equal(t, 2, res.Invalid)
}

func TestCleanInvalidIsNotCountedAsDuplicate(t *testing.T) {
	res := Clean(parse(t, ">a\nATN\n>b\nATN\n>c\nAT\n"))
	assert.Equal(t, 2, res.Invalid)
	assert.Equal(t, 0, res.Duplicates)
	assert.Len(t, res.Rows, 1)
}

func TestCleanDuplicateByContentNotName(t *testing.T) {
	col := fasta.NewCollection()
	col.Put(fasta.NewRecord("first", "GGGG"))
	col.Put(fasta.NewRecord("second", "gggg"))
	col.Put(fasta.NewRecord("third", "GGGA"))

	res := Clean(col)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "first", res.Rows[0].Name)
	assert.Equal(t, "third", res.Rows[1].Name)
	assert.Equal(t, classify.GCRich, res.Rows[0].Category)
	assert.Equal(t, 1, res.Duplicates)
}

func TestCleanFollowsCollectionOrderAfterOverwrite(t *testing.T) {
	// A is overwritten by a later entry but keeps its first slot, so its
	// new content is seen before B's identical symbols.
	col := parse(t, ">A\nTTTT\n>B\nCCCC\n>A\nCCCC\n")
	res := Clean(col)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "A", res.Rows[0].Name)
	assert.Equal(t, 1, res.Duplicates)
}

func TestCleanDoesNotMutateInput(t *testing.T) {
	col := parse(t, ">a\nAT\n>b\nAT\n>c\nNN\n")
	before := col.Records()
	Clean(col)
	if diff := cmp.Diff(before, col.Records(), cmp.AllowUnexported(fasta.Record{})); diff != "" {
		t.Fatalf("collection changed:\n%s", diff)
	}
}

func TestCleanAccountingProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := "ATCGN"
	for round := 0; round < 50; round++ {
		col := fasta.NewCollection()
		inputs := map[string]bool{}
		for i := 0; i < 40; i++ {
			var b strings.Builder
			for j := 0; j < 1+rng.Intn(3); j++ {
				b.WriteByte(alphabet[rng.Intn(len(alphabet))])
			}
			name := string(rune('a' + rng.Intn(26)))
			col.Put(fasta.NewRecord(name, b.String()))
		}
		for _, r := range col.Records() {
			inputs[r.Symbols()] = true
		}

		res := Clean(col)
		require.Equal(t, col.Len(), res.Total)
		require.Equal(t, res.Total, res.Retained()+res.Duplicates+res.Invalid)

		seen := map[string]bool{}
		for _, row := range res.Rows {
			require.True(t, inputs[row.Symbols], "row symbols must come from the input")
			require.False(t, seen[row.Symbols], "accepted symbols must be distinct")
			seen[row.Symbols] = true
			require.Equal(t, len(row.Symbols), row.Length)
		}
	}
}

func TestCleanWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	Clean(parse(t, ">S1\nATCG\n>S2\nATCG\n>S3\nNNNN\n"), WithLogger(logger))

	out := buf.String()
	assert.Contains(t, out, "removing invalid sequence")
	assert.Contains(t, out, "removing duplicate sequence")
	assert.Contains(t, out, "cleaned sequences")
}
