// Package tabular reads delimited numeric matrices with optional labels.
//
// Layout accepted by Read:
//
//	        c0    c1    c2      <- header line (Options.Header)
//	geneA   1.0   2.5   0.3
//	geneB   0.7   1.1   4.0
//	^ label column (Options.RowLabels)
//
// Blank lines and lines starting with '#' are skipped. Every data cell must
// parse as a finite float64; missing values are rejected.
package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tengben1989/biclustlib/matrix"
)

// ErrMalformed wraps every parse failure.
var ErrMalformed = errors.New("tabular: malformed input")

// Delimiter names accepted by ParseDelimiter.
const (
	DelimiterAuto  = "auto"
	DelimiterTab   = "tab"
	DelimiterComma = "comma"
)

// Options controls the input layout. Comma == 0 sniffs the delimiter from
// the first data line: tab when present, comma otherwise.
type Options struct {
	Comma     rune
	Header    bool
	RowLabels bool
}

// ParseDelimiter maps a configuration name to Options.Comma.
func ParseDelimiter(name string) (rune, error) {
	switch name {
	case "", DelimiterAuto:
		return 0, nil
	case DelimiterTab:
		return '\t', nil
	case DelimiterComma:
		return ',', nil
	default:
		return 0, fmt.Errorf("%w: unknown delimiter %q", ErrMalformed, name)
	}
}

// Table is a parsed matrix plus the labels found next to it.
// RowLabels / ColLabels are nil when the input carried none.
type Table struct {
	Data      *matrix.Dense
	RowLabels []string
	ColLabels []string
}

// RowLabel returns the label of row i, or its decimal id.
func (t *Table) RowLabel(i int) string { return label(t.RowLabels, i) }

// ColLabel returns the label of column j, or its decimal id.
func (t *Table) ColLabel(j int) string { return label(t.ColLabels, j) }

// RowNames resolves a list of row ids.
func (t *Table) RowNames(ids []int) []string { return names(t.RowLabels, ids) }

// ColNames resolves a list of column ids.
func (t *Table) ColNames(ids []int) []string { return names(t.ColLabels, ids) }

func label(labels []string, i int) string {
	if i >= 0 && i < len(labels) && labels[i] != "" {
		return labels[i]
	}

	return strconv.Itoa(i)
}

func names(labels []string, ids []int) []string {
	out := make([]string, len(ids))
	for k, id := range ids {
		out[k] = label(labels, id)
	}

	return out
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, o Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tabular: open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Read parses a delimited matrix.
// Implementation:
//   - Stage 1: drop blank and comment lines; sniff the delimiter if unset.
//   - Stage 2: split records with encoding/csv (quoted labels allowed).
//   - Stage 3: peel header and label column; parse cells; build a strict Dense.
//
// Errors: ErrMalformed (wrapped with the 1-based record number) or the
// matrix.ErrInvalidInput family from matrix.NewDenseFromRows.
func Read(r io.Reader, o Options) (*Table, error) {
	body, first, err := dataLines(r)
	if err != nil {
		return nil, err
	}
	if first == "" {
		return nil, fmt.Errorf("%w: no data", ErrMalformed)
	}

	comma := o.Comma
	if comma == 0 {
		comma = ','
		if strings.ContainsRune(first, '\t') {
			comma = '\t'
		}
	}

	cr := csv.NewReader(bytes.NewReader(body))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = comma != '\t' // with a tab delimiter this would swallow empty fields

	var (
		t      = &Table{}
		header []string
		rows   [][]float64
		record int
	)
	for {
		rec, rerr := cr.Read()
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, rerr)
		}
		record++

		if o.Header && header == nil {
			header = trimAll(rec)
			continue
		}

		cells := rec
		if o.RowLabels {
			if len(rec) < 2 {
				return nil, fmt.Errorf("%w: record %d: label without values", ErrMalformed, record)
			}
			t.RowLabels = append(t.RowLabels, strings.TrimSpace(rec[0]))
			cells = rec[1:]
		}

		row := make([]float64, len(cells))
		for j, cell := range cells {
			if row[j], err = strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
				return nil, fmt.Errorf("%w: record %d, field %d: %q is not a number", ErrMalformed, record, j+1, cell)
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrMalformed)
	}
	if t.Data, err = matrix.NewDenseFromRows(rows); err != nil {
		return nil, err
	}
	if header != nil {
		// A labelled layout may carry a corner cell above the label column.
		if o.RowLabels && len(header) == t.Data.Cols()+1 {
			header = header[1:]
		}
		if len(header) != t.Data.Cols() {
			return nil, fmt.Errorf("%w: header has %d labels for %d columns", ErrMalformed, len(header), t.Data.Cols())
		}
		t.ColLabels = header
	}

	return t, nil
}

func trimAll(rec []string) []string {
	out := make([]string, len(rec))
	for i, s := range rec {
		out[i] = strings.TrimSpace(s)
	}

	return out
}

// dataLines strips blank and '#' lines, returning the remaining bytes and the
// first kept line.
func dataLines(r io.Reader) ([]byte, string, error) {
	var (
		buf   bytes.Buffer
		first string
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		text := sc.Text()
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if first == "" {
			first = text
		}
		buf.WriteString(text)
		buf.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, "", fmt.Errorf("tabular: read: %w", err)
	}

	return buf.Bytes(), first, nil
}
