package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/lbcm/coursebuild/internal/course"
	"github.com/lbcm/coursebuild/internal/latex"
	"github.com/lbcm/coursebuild/internal/module"
	"github.com/lbcm/coursebuild/internal/output"
)

// logTailLines is how much of a compiler log is shown after a failure.
const logTailLines = 20

// WriteModuleList writes the module catalogue as a table.
func WriteModuleList(w io.Writer, infos []*module.Info) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No modules found.")
		return
	}

	tbl := output.NewTable("MODULE", "DESCRIPTION", "TIME", "FILES")
	for _, info := range infos {
		tbl.Row(
			output.StyleNoun.Render(info.Name),
			truncate(info.Description, 60),
			info.EstimatedTime,
			fmt.Sprintf("%d", info.Files.Len()),
		)
	}
	fmt.Fprintln(w, tbl.String())
}

// WriteValidation writes one status line per module followed by its
// errors and warnings, then a summary.
func WriteValidation(w io.Writer, cv *module.CourseValidation) {
	for _, e := range cv.Errors {
		fmt.Fprintln(w, output.FormatCross(e))
	}

	names := cv.Names()
	for _, name := range names {
		res := cv.Modules[name]
		status := output.StatusValid
		if !res.Valid {
			status = output.StatusInvalid
		}
		fmt.Fprintln(w, output.FormatModuleLine(name, status))
		for _, e := range res.Errors {
			fmt.Fprintf(w, "    %s %s\n", output.StatusStyle(output.StatusInvalid).Render("error:"), e)
		}
		for _, warn := range res.Warnings {
			fmt.Fprintf(w, "    %s %s\n", output.StatusStyle(output.StatusSkipped).Render("warning:"), warn)
		}
	}

	summary := fmt.Sprintf("%d modules, %d valid, %d invalid", cv.TotalModules, cv.ValidModules, cv.InvalidModules)
	if cv.Valid {
		fmt.Fprintln(w, output.FormatCheckmark("All modules are valid: "+summary))
	} else {
		fmt.Fprintln(w, output.FormatCross("Validation failed: "+summary))
	}
}

// WriteBuildResult writes the modules of a build and its output path.
func WriteBuildResult(w io.Writer, res *course.BuildResult) {
	for _, name := range res.Modules {
		fmt.Fprintln(w, output.FormatModuleLine(name, output.StatusBuilt))
	}
	for _, s := range res.Skipped {
		fmt.Fprintln(w, output.FormatModuleLine(s.Name, output.StatusSkipped))
	}
	if res.Merge != nil && res.Merge.Warning != "" {
		fmt.Fprintln(w, output.StatusStyle(output.StatusSkipped).Render("warning: "+res.Merge.Warning))
	}
	fmt.Fprintln(w, output.FormatCheckmark("Output: "+output.StyleNoun.Render(res.OutputPath)))
}

// PrintError reports a failed operation. Compiler failures also show the
// tail of the compiler log.
func PrintError(msg string, err error) {
	var ce *latex.CompileError
	if !errors.As(err, &ce) {
		output.Error(msg, "error", err)
		return
	}

	output.Error(msg, "kind", ce.Kind, "source", filepath.Base(ce.Source), "error", ce.Message)
	if tail := lastLines(ce.Log, logTailLines); tail != "" {
		output.Println(output.StyleDim.Render(tail))
	}
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
