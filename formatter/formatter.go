// Package formatter renders lint issues as human-readable reports with the
// offending code snippet, an underline, and the suggested replacement.
package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/speclint/speclint/internal"
	tt "github.com/speclint/speclint/internal/types"
)

var (
	errorStyle      = color.New(color.FgRed, color.Bold)
	warningStyle    = color.New(color.FgHiYellow, color.Bold)
	ruleStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
)

// GenerateFormattedIssue formats a slice of issues into a human-readable string.
func GenerateFormattedIssue(issues []tt.Issue, snippet *internal.SourceCode) string {
	var builder strings.Builder
	for _, issue := range issues {
		builder.WriteString(formatIssue(issue, snippet))
		builder.WriteByte('\n')
	}
	return builder.String()
}

func formatIssue(issue tt.Issue, snippet *internal.SourceCode) string {
	var b strings.Builder

	sevStyle := warningStyle
	if issue.Severity == tt.SeverityError {
		sevStyle = errorStyle
	}
	b.WriteString(sevStyle.Sprintf("%s: ", issue.Severity))
	b.WriteString(ruleStyle.Sprintf("%s", issue.Rule))
	b.WriteByte('\n')

	numWidth := lineNumWidth(issue.End.Line)
	padding := strings.Repeat(" ", numWidth+1)

	b.WriteString(lineStyle.Sprintf("%s--> ", padding))
	b.WriteString(fileStyle.Sprintf("%s:%d:%d\n", issue.Filename, issue.Start.Line, issue.Start.Column))
	b.WriteString(lineStyle.Sprintf("%s|\n", padding))

	for line := issue.Start.Line; line <= issue.End.Line && line <= len(snippet.Lines); line++ {
		b.WriteString(lineStyle.Sprintf("%*d | ", numWidth, line))
		b.WriteString(snippet.Lines[line-1])
		b.WriteByte('\n')
	}
	b.WriteString(lineStyle.Sprintf("%s| ", padding))
	b.WriteString(messageStyle.Sprintf("%s %s\n", underline(issue), issue.Message))

	if issue.Suggestion != "" {
		b.WriteString(suggestionStyle.Sprintf("%ssuggestion: %s\n", padding, issue.Suggestion))
	}
	if issue.Note != "" {
		b.WriteString(fmt.Sprintf("%snote: %s\n", padding, issue.Note))
	}
	return b.String()
}

// underline builds the caret marker for the issue's first line.
func underline(issue tt.Issue) string {
	width := 1
	if issue.Start.Line == issue.End.Line && issue.End.Column > issue.Start.Column {
		width = issue.End.Column - issue.Start.Column
	}
	return strings.Repeat(" ", issue.Start.Column-1) + strings.Repeat("^", width)
}

func lineNumWidth(line int) int {
	width := 1
	for line >= 10 {
		line /= 10
		width++
	}
	return width
}
