package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/supercrawl/internal/model"
)

// MarkdownWriter outputs issue reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation, which gives us tables, GitHub alerts and mermaid charts
// without hand-escaping.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the issue report in Markdown format.
func (w *MarkdownWriter) Write(report *model.IssueReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeIssues(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with project information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.IssueReport) {
	md.H1("SEO Report: " + report.Project.Domain)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Domain", "`" + report.Project.Domain + "`"},
			{"Project ID", "`" + report.Project.ID + "`"},
			{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Issues", strconv.Itoa(report.Total())},
		},
	})
	md.PlainText("")
}

// writeSummary writes the severity summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.IssueReport) {
	critical := report.Count(model.SeverityCritical)
	high := report.Count(model.SeverityHigh)
	other := report.Count(model.SeverityOther)

	md.H2("Severity Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Critical", strconv.Itoa(critical)},
			{"🟠 High", strconv.Itoa(high)},
			{"🟡 Other", strconv.Itoa(other)},
			{"**Total**", "**" + strconv.Itoa(report.Total()) + "**"},
		},
	})
	md.PlainText("")

	if report.HasIssues() {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Issue Severity Distribution"),
			piechart.WithShowData(true),
		)
		if critical > 0 {
			chart.LabelAndIntValue("Critical", uint64(critical))
		}
		if high > 0 {
			chart.LabelAndIntValue("High", uint64(high))
		}
		if other > 0 {
			chart.LabelAndIntValue("Other", uint64(other))
		}
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	switch {
	case critical > 0:
		md.Cautionf("%d critical issue(s) likely block indexing or ranking.", critical)
	case high > 0:
		md.Warningf("%d high severity issue(s) should be addressed.", high)
	case report.HasIssues():
		md.Note("Only minor issues detected.")
	default:
		md.Tip("No SEO issues detected.")
	}
	md.PlainText("")
}

// writeIssues writes one table per severity rank, critical first.
func (w *MarkdownWriter) writeIssues(md *markdown.Markdown, report *model.IssueReport) {
	md.H2("Issues")
	md.PlainText("")

	if !report.HasIssues() {
		md.PlainText("No issues found.")
		md.PlainText("")
		return
	}

	headers := map[model.Severity]string{
		model.SeverityCritical: "### 🔴 Critical",
		model.SeverityHigh:     "### 🟠 High",
		model.SeverityOther:    "### 🟡 Other",
	}

	for _, level := range model.Severities() {
		issues := report.BySeverity(level)
		if len(issues) == 0 {
			continue
		}

		md.PlainText(headers[level])
		md.PlainText("")

		rows := make([][]string, len(issues))
		for i, is := range issues {
			rows[i] = []string{
				IssueTypeTitle(is.IssueType),
				is.Severity,
				truncateString(orDash(is.PageTitle), 40),
				truncateString(orDash(is.URL), 60),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Issue", "Severity", "Page", "URL"},
			Rows:   rows,
		})
		md.PlainText("")

		for _, is := range issues {
			if is.Description != "" {
				md.Details(IssueTypeTitle(is.IssueType)+" ("+orDash(is.URL)+")", is.Description)
			}
		}
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by SuperCrawl*")
}
