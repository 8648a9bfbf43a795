// Package report renders a summary of a script run.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/vibefolio/vibefolio-e2e/internal/cases"
)

// Summary is the run being reported.
type Summary struct {
	BaseURL  string
	Started  time.Time
	Duration time.Duration
	Results  []cases.Result
}

// counts tallies results per status.
func (s Summary) counts() map[cases.Status]int {
	out := make(map[cases.Status]int)
	for _, r := range s.Results {
		out[r.Status()]++
	}
	return out
}

// WriteMarkdown writes the run summary as GitHub-flavoured Markdown.
func WriteMarkdown(w io.Writer, s Summary) error {
	md := markdown.NewMarkdown(w)

	md.H1("VIBEFOLIO E2E Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + s.BaseURL + "`"},
			{"Started", s.Started.Format("2006-01-02 15:04:05 MST")},
			{"Duration", s.Duration.Round(time.Millisecond).String()},
			{"Cases", fmt.Sprint(len(s.Results))},
		},
	})
	md.PlainText("")

	writeSummary(md, s)
	writeResults(md, s)
	writeFailures(md, s)

	return md.Build()
}

func writeSummary(md *markdown.Markdown, s Summary) {
	md.H2("Summary")
	md.PlainText("")

	counts := s.counts()
	statuses := []cases.Status{
		cases.StatusPassed,
		cases.StatusFailed,
		cases.StatusKnownFailure,
		cases.StatusUnexpectedPass,
	}

	rows := make([][]string, 0, len(statuses))
	chart := piechart.NewPieChart(io.Discard, piechart.WithTitle("Results"), piechart.WithShowData(true))
	for _, st := range statuses {
		rows = append(rows, []string{string(st), fmt.Sprint(counts[st])})
		if counts[st] > 0 {
			chart.LabelAndIntValue(string(st), uint64(counts[st]))
		}
	}
	md.Table(markdown.TableSet{Header: []string{"Status", "Count"}, Rows: rows})
	md.PlainText("")

	if len(s.Results) > 0 {
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	switch {
	case counts[cases.StatusFailed] > 0:
		md.Cautionf("%d case(s) failed.", counts[cases.StatusFailed])
	case counts[cases.StatusUnexpectedPass] > 0:
		md.Warningf("%d case(s) passed although a failure was recorded; drop their known failure.",
			counts[cases.StatusUnexpectedPass])
	default:
		md.Tip("Every case matched its recorded outcome.")
	}
	md.PlainText("")
}

func writeResults(md *markdown.Markdown, s Summary) {
	md.H2("Cases")
	md.PlainText("")

	if len(s.Results) == 0 {
		md.PlainText("No cases were run.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(s.Results))
	for _, r := range s.Results {
		rows = append(rows, []string{
			r.ID,
			r.Title,
			string(r.Status()),
			r.Duration.Round(time.Millisecond).String(),
		})
	}
	md.Table(markdown.TableSet{Header: []string{"ID", "Title", "Status", "Duration"}, Rows: rows})
	md.PlainText("")
}

func writeFailures(md *markdown.Markdown, s Summary) {
	var lines []string
	for _, r := range s.Results {
		if r.Err == nil {
			continue
		}
		msg := strings.Join(strings.Fields(r.Err.Error()), " ")
		lines = append(lines, fmt.Sprintf("**%s** (%s): %s", r.ID, r.Status(), msg))
	}
	if len(lines) == 0 {
		return
	}

	md.H2("Failures")
	md.PlainText("")
	md.BulletList(lines...)
	md.PlainText("")
}
