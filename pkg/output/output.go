// Package output renders check results for humans.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/deploycheck/pkg/check"
)

var (
	green = "\033[32m"
	red   = "\033[31m"
	bold  = "\033[1m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

// RuleWidth is the width of the banner and summary rules.
const RuleWidth = 60

const (
	passMessage = "All tests passed! Your application is ready for deployment."
	failMessage = "Some tests failed. Fix the issues above before deploying."
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		DisableColor()
	}
}

// DisableColor turns off ANSI escape codes in all further output.
func DisableColor() {
	green, red, bold, dim, reset = "", "", "", "", ""
}

// Banner prints the run title followed by a rule.
func Banner(w io.Writer, appName string) {
	_, _ = fmt.Fprintf(w, "%s%s - Deployment Test%s\n", bold, appName, reset)
	_, _ = fmt.Fprintln(w, strings.Repeat("=", RuleWidth))
}

// Section prints a section heading preceded by a blank line.
func Section(w io.Writer, title string) {
	_, _ = fmt.Fprintf(w, "\n%s%s%s\n", bold, title, reset)
}

// PrintResult outputs a check result with colored status.
// Details are indented to line up with the check name.
func PrintResult(w io.Writer, r check.Result) {
	var indent string
	if r.OK() {
		_, _ = fmt.Fprintf(w, "%s[OK]%s %s\n", green, reset, formatLabel(r.Name))
		indent = strings.Repeat(" ", len("[OK] "))
	} else {
		_, _ = fmt.Fprintf(w, "%s[FAIL]%s %s\n", red, reset, formatLabel(r.Name))
		indent = strings.Repeat(" ", len("[FAIL] "))
	}
	for _, d := range r.Details {
		_, _ = fmt.Fprintf(w, "%s%s\n", indent, formatLabel(d))
	}
}

// SummaryLine returns the closing verdict for the run.
func SummaryLine(ok bool) string {
	if ok {
		return passMessage
	}
	return failMessage
}

// PrintSummary prints the summary table and verdict for results.
func PrintSummary(w io.Writer, results []check.Result) {
	ok := check.All(results)
	_, _ = fmt.Fprintln(w, strings.Repeat("=", RuleWidth))
	if len(results) > 0 {
		_, _ = fmt.Fprintln(w, renderSummaryTable(results))
	}
	if ok {
		_, _ = fmt.Fprintf(w, "%s[OK]%s %s\n", green, reset, SummaryLine(true))
	} else {
		_, _ = fmt.Fprintf(w, "%s[FAIL]%s %s\n", red, reset, SummaryLine(false))
	}
}

// formatLabel dims the "label:" prefix of a line, if any.
func formatLabel(s string) string {
	label, rest, ok := strings.Cut(s, ": ")
	if !ok || dim == "" {
		return s
	}
	return dim + label + ":" + reset + " " + rest
}
