// Package report renders SuperCrawl data for output.
//
// Issue reports can be written in three formats:
//   - SimpleWriter: Human-readable text for terminal display
//   - JSONWriter: Structured JSON for tool integration
//   - MarkdownWriter: Markdown with a severity pie chart for sharing
//
// Design decision: We keep rendering out of the model package. The model
// types carry backend data as received; grouping by severity, titles and
// layout are decided here.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output. SimpleWriter also
// renders the project, page and dashboard listings used by the CLI.
package report
