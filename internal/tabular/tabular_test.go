package tabular_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tengben1989/biclustlib/internal/tabular"
	"github.com/tengben1989/biclustlib/matrix"
)

func cells(t *testing.T, tb *tabular.Table) [][]float64 {
	t.Helper()

	return matrix.ToRows(tb.Data)
}

func TestRead_PlainSniffing(t *testing.T) {
	tests := map[string]string{
		"comma": "1,2,3\n4,5,6\n",
		"tab":   "1\t2\t3\n4\t5\t6\n",
		"space": "1, 2, 3\n4, 5, 6\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			tb, err := tabular.Read(strings.NewReader(in), tabular.Options{})
			require.NoError(t, err)
			assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, cells(t, tb))
			assert.Nil(t, tb.RowLabels)
			assert.Nil(t, tb.ColLabels)
			assert.Equal(t, "2", tb.ColLabel(2))
		})
	}
}

func TestRead_LabelsWithCornerCell(t *testing.T) {
	in := "# expression\n" +
		"gene\tc0\tc1\n" +
		"\n" +
		"g1\t1.5\t-2\n" +
		"g2\t0\t3e2\n"
	tb, err := tabular.Read(strings.NewReader(in), tabular.Options{Header: true, RowLabels: true})
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{1.5, -2}, {0, 300}}, cells(t, tb))
	assert.Equal(t, []string{"g1", "g2"}, tb.RowLabels)
	assert.Equal(t, []string{"c0", "c1"}, tb.ColLabels)
	assert.Equal(t, []string{"g2", "g1"}, tb.RowNames([]int{1, 0}))
	assert.Equal(t, []string{"c1"}, tb.ColNames([]int{1}))
}

func TestRead_LabelsWithoutCornerCell(t *testing.T) {
	in := "\"col a\",\"col b\"\n\"row, one\",1,2\n"
	tb, err := tabular.Read(strings.NewReader(in), tabular.Options{Comma: ',', Header: true, RowLabels: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"col a", "col b"}, tb.ColLabels)
	assert.Equal(t, []string{"row, one"}, tb.RowLabels)
}

func TestRead_Errors(t *testing.T) {
	tests := map[string]struct {
		in   string
		opts tabular.Options
	}{
		"empty":          {in: "\n# nothing\n"},
		"header only":    {in: "a,b\n", opts: tabular.Options{Header: true}},
		"not a number":   {in: "1,2\n3,x\n"},
		"missing value":  {in: "1\t\t2\n3\t4\t5\n"},
		"ragged":         {in: "1,2,3\n4,5\n"},
		"label only":     {in: "g1\n", opts: tabular.Options{RowLabels: true}},
		"header width":   {in: "a,b,c,d\n1,2\n", opts: tabular.Options{Header: true}},
		"bad quoting":    {in: "\"1,2\n"},
		"non-finite":     {in: "1,NaN\n"},
		"infinite value": {in: "1,+Inf\n"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tabular.Read(strings.NewReader(tc.in), tc.opts)
			require.Error(t, err)
		})
	}
}

func TestRead_ErrorKinds(t *testing.T) {
	_, err := tabular.Read(strings.NewReader("1,2\n3,x\n"), tabular.Options{})
	require.ErrorIs(t, err, tabular.ErrMalformed)
	assert.Contains(t, err.Error(), "record 2")

	_, err = tabular.Read(strings.NewReader("1,2,3\n4,5\n"), tabular.Options{})
	require.ErrorIs(t, err, matrix.ErrInvalidInput)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = tabular.Read(strings.NewReader("1,NaN\n"), tabular.Options{})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestParseDelimiter(t *testing.T) {
	for name, want := range map[string]rune{"": 0, "auto": 0, "tab": '\t', "comma": ','} {
		got, err := tabular.ParseDelimiter(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := tabular.ParseDelimiter("pipe")
	require.ErrorIs(t, err, tabular.ErrMalformed)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.tsv")
	require.NoError(t, os.WriteFile(path, []byte("1\t2\n3\t4\n"), 0o644))

	tb, err := tabular.ReadFile(path, tabular.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, tb.Data.Rows())

	_, err = tabular.ReadFile(filepath.Join(t.TempDir(), "missing.tsv"), tabular.Options{})
	require.Error(t, err)
}
