package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/assetsync/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary values
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(10)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+styleValue.Render(value))
}

// =============================================================================
// Report
// =============================================================================

// printReport renders a sync report: one line per file, then a summary.
func printReport(w io.Writer, r *pipeline.Report) {
	for _, f := range r.Files {
		switch f.Status {
		case pipeline.StatusUpdated:
			printSuccess(w, "%s", f.Path)
			printDetail(w, "%s", updateDetail(f))
		case pipeline.StatusUnchanged:
			printInfo(w, "%s %s", f.Path, styleDim.Render("unchanged"))
		case pipeline.StatusSkipped:
			printInfo(w, "%s %s", f.Path, styleDim.Render("skipped"))
			printDetail(w, "%s", f.Reason)
		case pipeline.StatusFailed:
			printError(w, "%s", f.Path)
			printDetail(w, "%s", f.Reason)
		}
	}

	if len(r.Files) > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, styleTitle.Render(appName)+" "+styleDim.Render(r.RunID))
	printKeyValue(w, "root", r.Root)
	printKeyValue(w, "duration", r.Duration().Round(time.Millisecond).String())
	printSummary(w, r.Summary())

	if failed := r.Failed(); len(failed) > 0 {
		fmt.Fprintln(w)
		printWarning(w, "%d files left untouched after errors:", len(failed))
		for _, f := range failed {
			printDetail(w, "%s (%s)", f.Path, f.Code)
		}
	}

	if r.DryRun {
		printWarning(w, "dry run: no files were written")
	}
}

// printSummary prints the per-status counts on a single line.
func printSummary(w io.Writer, s pipeline.Summary) {
	parts := []string{
		styleNumber.Render(fmt.Sprint(s.Total)) + styleDim.Render(" files"),
		styleNumber.Render(fmt.Sprint(s.Updated)) + styleDim.Render(" updated"),
		styleNumber.Render(fmt.Sprint(s.Unchanged)) + styleDim.Render(" unchanged"),
		styleNumber.Render(fmt.Sprint(s.Skipped)) + styleDim.Render(" skipped"),
		styleNumber.Render(fmt.Sprint(s.Failed)) + styleDim.Render(" failed"),
	}
	fmt.Fprintln(w, "  "+strings.Join(parts, styleDim.Render(" · ")))
}

func updateDetail(f pipeline.FileResult) string {
	var parts []string
	if f.Owner != "" {
		parts = append(parts, f.Owner+"/"+f.Repo)
	}
	if len(f.Licenses) > 0 {
		parts = append(parts, "licenses "+strings.Join(f.Licenses, ", "))
	}
	if len(f.Versions) > 0 {
		v := strings.Join(f.Versions, ", ")
		if f.Dependency != "" {
			v = f.Dependency + " " + v
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, " · ")
}
