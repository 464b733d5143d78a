package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nao1215/supercrawl/internal/dashboard"
	"github.com/nao1215/supercrawl/internal/model"
)

// SimpleWriter outputs human-readable text reports.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because the output is often piped to files or other tools.
// The interactive TUI is where colour lives.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether severity sections with no issues are shown.
	showEmpty bool

	// verbose adds issue descriptions to the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with issue descriptions.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the issue report in human-readable format.
func (w *SimpleWriter) Write(report *model.IssueReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeIssues(&sb, report)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the report header with project information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.IssueReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        SUPERCRAWL SEO REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Domain:       %s\n", orDash(report.Project.Domain))
	fmt.Fprintf(sb, "Project ID:   %s\n", report.Project.ID)
	fmt.Fprintf(sb, "Generated At: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	sb.WriteString("\n")
}

// writeSummary writes the severity summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.IssueReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SEVERITY SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "  CRITICAL: %d\n", report.Count(model.SeverityCritical))
	fmt.Fprintf(sb, "  HIGH:     %d\n", report.Count(model.SeverityHigh))
	fmt.Fprintf(sb, "  OTHER:    %d\n", report.Count(model.SeverityOther))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  TOTAL:    %d issues\n", report.Total())
	sb.WriteString("\n")
}

// writeIssues writes all issues grouped by severity, critical first.
// Within a group the backend order is kept.
func (w *SimpleWriter) writeIssues(sb *strings.Builder, report *model.IssueReport) {
	if !report.HasIssues() && !w.showEmpty {
		sb.WriteString("  No issues found.\n\n")
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("ISSUES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, level := range model.Severities() {
		issues := report.BySeverity(level)
		if len(issues) == 0 && !w.showEmpty {
			continue
		}
		w.writeIssuesForSeverity(sb, level, issues)
	}
}

// writeIssuesForSeverity writes issues of one severity rank.
func (w *SimpleWriter) writeIssuesForSeverity(sb *strings.Builder, level model.Severity, issues []model.Issue) {
	fmt.Fprintf(sb, "[%s] %s\n", severityIndicator(level), level.String())

	if len(issues) == 0 {
		sb.WriteString("  No issues\n\n")
		return
	}

	for _, is := range issues {
		fmt.Fprintf(sb, "  * %s\n", IssueTypeTitle(is.IssueType))
		// The raw severity is shown when it differs from the rank name,
		// e.g. "warning" in the OTHER group.
		if !strings.EqualFold(is.Severity, level.String()) {
			fmt.Fprintf(sb, "    Severity: %s\n", is.Severity)
		}
		if is.URL != "" {
			fmt.Fprintf(sb, "    URL: %s\n", is.URL)
		}
		if is.PageTitle != "" {
			fmt.Fprintf(sb, "    Page: %s\n", is.PageTitle)
		}
		if w.verbose && is.Description != "" {
			fmt.Fprintf(sb, "    Description: %s\n", is.Description)
		}
	}
	sb.WriteString("\n")
}

// severityIndicator returns a visual indicator for the severity rank.
func severityIndicator(level model.Severity) string {
	switch level {
	case model.SeverityCritical:
		return "!!!"
	case model.SeverityHigh:
		return "!!"
	case model.SeverityOther:
		return "!"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by SuperCrawl\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// WriteProjects writes the project list as a table in the given order.
func (w *SimpleWriter) WriteProjects(projects []model.Project) error {
	if len(projects) == 0 {
		_, err := io.WriteString(w.output, "No projects yet. Create one with: supercrawl create <domain>\n")
		return err
	}

	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDOMAIN\tCREATED")
	for _, p := range projects {
		created := "-"
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Domain, created)
	}
	return tw.Flush()
}

// WritePages writes the crawled pages of a project as a table.
func (w *SimpleWriter) WritePages(pages []model.Page) error {
	if len(pages) == 0 {
		_, err := io.WriteString(w.output, "No pages crawled yet.\n")
		return err
	}

	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tLOAD(ms)\tURL\tTITLE")
	for _, p := range pages {
		status := "-"
		if p.StatusCode != 0 {
			status = fmt.Sprint(p.StatusCode)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", status, p.LoadTimeMS, p.URL, truncateString(orDash(p.Title), 50))
	}
	return tw.Flush()
}

// WriteSummary writes the dashboard overview followed by one line per project.
func (w *SimpleWriter) WriteSummary(sum *dashboard.Summary) error {
	st := sum.Stats
	var sb strings.Builder
	fmt.Fprintf(&sb, "Projects:         %d (%d crawled)\n", st.Projects, st.CrawledProjects)
	fmt.Fprintf(&sb, "Pages indexed:    %d\n", st.PagesIndexed)
	fmt.Fprintf(&sb, "Issues detected:  %d (critical %d, high %d, other %d)\n",
		st.IssuesFound, st.Critical, st.High, st.Other)
	sb.WriteString("\n")
	if _, err := io.WriteString(w.output, sb.String()); err != nil {
		return err
	}
	if len(sum.Projects) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DOMAIN\tPAGES\tISSUES\tCRITICAL\tHIGH\tOTHER")
	for _, p := range sum.Projects {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n", p.Project.Domain, p.Pages, p.Issues, p.Critical, p.High, p.Other)
	}
	return tw.Flush()
}
