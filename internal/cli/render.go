package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tengben1989/biclustlib/bicluster"
	"github.com/tengben1989/biclustlib/internal/tabular"
	"github.com/tengben1989/biclustlib/matrix"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// report is the rendered form of one run; labels are resolved when the
// input carried them.
type report struct {
	Job        string             `json:"job,omitempty"`
	Input      string             `json:"input,omitempty"`
	Algorithm  string             `json:"algorithm,omitempty"`
	Seed       int64              `json:"seed,omitempty"`
	RunID      string             `json:"run_id,omitempty"`
	Requested  int                `json:"requested,omitempty"`
	Found      int                `json:"found"`
	Exhausted  bool               `json:"exhausted"`
	Reason     string             `json:"reason,omitempty"`
	Error      string             `json:"error,omitempty"`
	Biclusters []labeledBicluster `json:"biclusters"`
}

type labeledBicluster struct {
	bicluster.Bicluster
	Area           int         `json:"area"`
	RowLabels      []string    `json:"row_labels,omitempty"`
	ColLabels      []string    `json:"col_labels,omitempty"`
	InvertedLabels []string    `json:"inverted_row_labels,omitempty"`
	Values         [][]float64 `json:"values,omitempty"`
}

// newReport labels res against t. With values set, every bicluster also
// carries a copy of its cells in Rows × Cols order.
func newReport(input string, t *tabular.Table, res bicluster.Biclustering, values bool) (report, error) {
	r := report{
		Input:      input,
		Algorithm:  res.Algorithm,
		Seed:       res.Seed,
		RunID:      res.RunID,
		Requested:  res.Requested,
		Found:      res.Found(),
		Exhausted:  res.Exhausted,
		Reason:     string(res.Reason),
		Biclusters: make([]labeledBicluster, len(res.Biclusters)),
	}
	for k, b := range res.Biclusters {
		lb := labeledBicluster{Bicluster: b, Area: b.Area()}
		if t.RowLabels != nil {
			lb.RowLabels = t.RowNames(b.Rows)
			if len(b.InvertedRows) > 0 {
				lb.InvertedLabels = t.RowNames(b.InvertedRows)
			}
		}
		if t.ColLabels != nil {
			lb.ColLabels = t.ColNames(b.Cols)
		}
		if values && b.Area() > 0 {
			sub, err := b.Submatrix(t.Data)
			if err != nil {
				return report{}, fmt.Errorf("bicluster %d: %w", k+1, err)
			}
			lb.Values = matrix.ToRows(sub)
		}
		r.Biclusters[k] = lb
	}

	return r, nil
}

// styles follows the usual header / label / dim split; plain output keeps
// every style empty.
type styles struct {
	header lipgloss.Style
	label  lipgloss.Style
	dim    lipgloss.Style
	warn   lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		return styles{header: r.NewStyle(), label: r.NewStyle(), dim: r.NewStyle(), warn: r.NewStyle()}
	}

	return styles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("154")),
		label:  r.NewStyle().Foreground(lipgloss.Color("245")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("238")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("220")),
	}
}

// render writes reports as indented JSON (a single object for one report,
// an array otherwise) or as text.
func render(w io.Writer, format string, color bool, reports []report) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(reports) == 1 {
			return enc.Encode(reports[0])
		}

		return enc.Encode(reports)
	}

	st := newStyles(w, color)
	var b strings.Builder
	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		writeText(&b, st, r)
	}
	_, err := io.WriteString(w, b.String())

	return err
}

func writeText(b *strings.Builder, st styles, r report) {
	if r.Error != "" {
		fmt.Fprintf(b, "%s  %s\n", st.header.Render(r.Job), st.warn.Render("error: "+r.Error))
		return
	}
	title := r.Algorithm
	if r.Job != "" {
		title = r.Job + "  " + title
	}

	fmt.Fprintf(b, "%s  %s\n", st.header.Render(title), st.dim.Render(fmt.Sprintf("seed %d  run %s", r.Seed, r.RunID)))
	fmt.Fprintf(b, "found %d of %d\n", r.Found, r.Requested)
	if r.Exhausted {
		fmt.Fprintln(b, st.warn.Render("stopped early: "+r.Reason))
	}

	for k, bc := range r.Biclusters {
		rows, cols := bc.Shape()
		fmt.Fprintf(b, "\n%s  %d x %d (%d cells)  msr=%.6g", st.header.Render(fmt.Sprintf("#%d", k+1)), rows, cols, bc.Area, bc.MSR)
		if bc.Score != 0 {
			fmt.Fprintf(b, "  score=%.4g  avg=%.4g", bc.Score, bc.Average)
		}
		b.WriteString("\n")
		fmt.Fprintf(b, "  %s %s\n", st.label.Render("rows:"), joinIDs(bc.RowLabels, bc.Rows))
		fmt.Fprintf(b, "  %s %s\n", st.label.Render("cols:"), joinIDs(bc.ColLabels, bc.Cols))
		if len(bc.InvertedRows) > 0 {
			fmt.Fprintf(b, "  %s %s\n", st.label.Render("inverted:"), joinIDs(bc.InvertedLabels, bc.InvertedRows))
		}
		if len(bc.Values) > 0 {
			fmt.Fprintf(b, "  %s\n", st.label.Render("values:"))
			for _, row := range bc.Values {
				fmt.Fprintf(b, "    %s\n", joinValues(row))
			}
		}
	}
}

func joinValues(row []float64) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = fmt.Sprintf("%.6g", v)
	}

	return strings.Join(parts, "\t")
}

func joinIDs(labels []string, ids []int) string {
	if labels != nil {
		return strings.Join(labels, " ")
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}

	return strings.Join(parts, " ")
}
