package operations

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"salescleanup/internal/dataprocessing"
	"salescleanup/pkg/contracts/domain"
)

const (
	bannerWidth  = 60
	sectionWidth = 40
	maxCellWidth = 24

	ansiGreen = "\x1b[32m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Reporter prints human-readable progress lines. A nil *Reporter prints nothing.
type Reporter struct {
	out   io.Writer
	color bool
}

// NewReporter creates a reporter writing to out. Colors are enabled when out is a terminal.
func NewReporter(out io.Writer) *Reporter {
	r := &Reporter{out: out}
	if f, ok := out.(*os.File); ok {
		r.color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return r
}

func (r *Reporter) enabled() bool {
	return r != nil && r.out != nil
}

func (r *Reporter) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

// Banner prints a title between two full-width rules
func (r *Reporter) Banner(title string) {
	if !r.enabled() {
		return
	}
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(r.out, "%s\n%s\n%s\n", rule, r.paint(ansiBold, title), rule)
}

// Section prints a section heading preceded by a blank line
func (r *Reporter) Section(title string) {
	if !r.enabled() {
		return
	}
	rule := strings.Repeat("-", sectionWidth)
	fmt.Fprintf(r.out, "\n%s\n%s\n%s\n", rule, title, rule)
}

// Linef prints one line
func (r *Reporter) Linef(format string, args ...any) {
	if !r.enabled() {
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Checkf prints a line marked as done
func (r *Reporter) Checkf(format string, args ...any) {
	if !r.enabled() {
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", r.paint(ansiGreen, "✓"), fmt.Sprintf(format, args...))
}

// Values prints a list of values in brackets
func (r *Reporter) Values(values []string) {
	if !r.enabled() {
		return
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	fmt.Fprintf(r.out, "[%s]\n", strings.Join(quoted, " "))
}

// Table prints rows aligned under header. Wide cells are truncated.
func (r *Reporter) Table(header []string, rows [][]string) {
	if !r.enabled() {
		return
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(header))
		for j := range header {
			if j >= len(row) {
				continue
			}
			c := runewidth.Truncate(row[j], maxCellWidth, "…")
			cells[i][j] = c
			if w := runewidth.StringWidth(c); w > widths[j] {
				widths[j] = w
			}
		}
	}

	writeRow := func(row []string) {
		padded := make([]string, len(row))
		for j, c := range row {
			padded[j] = runewidth.FillRight(c, widths[j])
		}
		fmt.Fprintln(r.out, strings.TrimRight(strings.Join(padded, "  "), " "))
	}
	writeRow(header)
	for _, row := range cells {
		writeRow(row)
	}
}

// Transactions prints a table of rows with their row id first
func (r *Reporter) Transactions(rows []domain.Transaction) {
	if !r.enabled() {
		return
	}
	header := append([]string{"#"}, domain.Columns...)
	table := make([][]string, len(rows))
	for i := range rows {
		tx := &rows[i]
		line := []string{strconv.Itoa(tx.RowID)}
		for f := range domain.Columns {
			v := dataprocessing.CellText(tx, domain.Field(f))
			if tx.IsMissing(domain.Field(f)) {
				v = "NaN"
			}
			line = append(line, v)
		}
		table[i] = line
	}
	r.Table(header, table)
}

// Profile prints column statistics
func (r *Reporter) Profile(profiles []dataprocessing.ColumnProfile) {
	if !r.enabled() {
		return
	}
	header := []string{"column", "count", "missing", "unique", "top", "freq", "min", "mean", "max"}
	table := make([][]string, len(profiles))
	for i, p := range profiles {
		line := []string{
			p.Column,
			strconv.Itoa(p.Count),
			strconv.Itoa(p.Missing),
			strconv.Itoa(p.Unique),
			p.Top,
			strconv.Itoa(p.TopCount),
			"", "", "",
		}
		if p.Numeric && p.Count > 0 {
			line[6] = p.Min.String()
			line[7] = p.Mean.StringFixed(2)
			line[8] = p.Max.String()
		}
		table[i] = line
	}
	r.Table(header, table)
}

// Summary prints the closing banner with record counts
func (r *Reporter) Summary(s domain.CleanupSummary) {
	if !r.enabled() {
		return
	}
	fmt.Fprintln(r.out)
	r.Banner("CLEANUP COMPLETED SUCCESSFULLY")
	r.Linef("Original records: %d", s.OriginalCount)
	r.Linef("Final clean records: %d", s.FinalCount)
	r.Linef("Data quality improvement: %.1f%% retention", s.RetentionPercent())
	r.Checkf("All data standardized and ready for analysis")
	fmt.Fprintln(r.out, strings.Repeat("=", bannerWidth))
}
