// ABOUTME: Template rendering functions for the demo pages
// ABOUTME: Converts render instructions into view data for the embedded templates

package webui

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/2389/widgetdash/internal/demo"
	"github.com/2389/widgetdash/internal/page"
)

// Template data types
type indexData struct {
	Title   string
	Scripts []demo.Script
}

type appData struct {
	Title    string
	Script   string
	Scripts  []demo.Script
	Elements []elementView
}

type tableRow struct {
	Index int
	Cells []string
}

// elementView is a page.Element with everything the template needs
// precomputed.
type elementView struct {
	page.Element

	HTML       template.HTML // rendered markdown for text elements
	Columns    []string
	Rows       []tableRow
	TableIndex int
	Chart      *chartView
	Accept     string
}

type templates struct {
	index *template.Template
	app   *template.Template
}

func parseTemplates() *templates {
	return &templates{
		index: template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/index.html")),
		app:   template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/app.html")),
	}
}

// buildViews converts render instructions into template views. Chart
// failures become error elements.
func buildViews(elems []page.Element) []elementView {
	views := make([]elementView, 0, len(elems))
	tables := 0

	for _, e := range elems {
		v := elementView{Element: e}

		switch e.Kind {
		case page.KindText:
			v.HTML = renderMarkdown(e.Text)
		case page.KindTable:
			v.Columns = e.Frame.Columns()
			for i, row := range e.Frame.Rows() {
				v.Rows = append(v.Rows, tableRow{Index: i, Cells: row})
			}
			v.TableIndex = tables
			tables++
		case page.KindLineChart:
			chart, err := buildChart(e.Frame)
			if err != nil {
				v.Kind = page.KindError
				v.Text = err.Error()
				break
			}
			v.Chart = chart
		case page.KindFileUploader:
			accept := make([]string, len(e.Types))
			for i, t := range e.Types {
				accept[i] = "." + strings.TrimPrefix(t, ".")
			}
			v.Accept = strings.Join(accept, ",")
		}

		views = append(views, v)
	}

	return views
}

// renderIndex renders the script list
func (h *Host) renderIndex(w http.ResponseWriter) {
	data := indexData{
		Title:   "Demos",
		Scripts: h.registry.List(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.index.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render index", "error", err)
	}
}

// renderApp renders one rerun of a script
func (h *Host) renderApp(w http.ResponseWriter, script demo.Script, elems []page.Element) {
	data := appData{
		Title:    script.Title,
		Script:   script.Name,
		Scripts:  h.registry.List(),
		Elements: buildViews(elems),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.app.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render app page", "script", script.Name, "error", err)
	}
}
