package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
)

//go:embed templates/*.md
var templateFS embed.FS

// templates holds every template file, by base name.
var templates = func() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}()

// RenderOptions holds configuration for rendering a simulation report.
type RenderOptions struct {
	SkipEvents  bool        // Do not render the event log.
	SkipChart   bool        // Do not render the chart table.
	ChartPeriod date.Period // Render one chart row per period, the last value of the period.
}

// RenderResult renders a simulation result of the security named name to a markdown string.
func RenderResult(name string, r *drip.Result, opts RenderOptions) string {
	partials := map[string]string{
		"report_title":   "report_title.md",
		"report_summary": "report_summary.md",
		"report_years":   "report_years.md",
		"report_events":  "report_events.md",
		"report_chart":   "report_chart.md",
	}
	// An empty file name results in an empty template.
	if opts.SkipEvents {
		partials["report_events"] = ""
	}
	if opts.SkipChart {
		partials["report_chart"] = ""
	}
	return renderTemplate("report", "report.md", partials, NewReport(name, r, opts.ChartPeriod))
}

// renderTemplate is a generic utility to render a main template with a set of partials.
// The partials map keys are the template names used in the main template ({{template "name"}}),
// and the values are the file names in the templates FS.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
