// Package web renders the dashboard as a single dark-themed HTML page.
package web

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"github.com/dennisdiepolder/monti/calldash/internal/dashboard"
	"github.com/dennisdiepolder/monti/calldash/internal/types"
	"github.com/rs/zerolog"
)

// Builder renders dashboards
type Builder interface {
	BuildSection(ctx context.Context, section dashboard.Section) *types.Dashboard
}

var statusColors = map[types.AgentState]string{
	types.StateAvailable: "#4ecdc4",
	types.StateBusy:      "#ff6b6b",
}

var funcMap = template.FuncMap{
	"barColor": func(state types.AgentState) string {
		if c, ok := statusColors[state]; ok {
			return c
		}
		return "#8b949e"
	},
	// barWidth scales a bar against the largest count in the chart
	"barWidth": func(count int, bars []types.ChartBar) int {
		top := 0
		for _, b := range bars {
			if b.Count > top {
				top = b.Count
			}
		}
		if top == 0 {
			return 0
		}
		return count * 100 / top
	},
	"fmtTime": func(d *types.Dashboard) string {
		return d.GeneratedAt.Format("2006-01-02 15:04:05")
	},
}

var pageTmpl = template.Must(template.New("page").Funcs(funcMap).Parse(tmplPage))

// Page serves the HTML dashboard
type Page struct {
	builder Builder
	logger  zerolog.Logger
}

// NewPage creates a new Page handler
func NewPage(builder Builder, logger zerolog.Logger) *Page {
	return &Page{
		builder: builder,
		logger:  logger.With().Str("component", "web").Logger(),
	}
}

// ServeHTTP renders a fresh dashboard on every request
func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d := p.builder.BuildSection(r.Context(), dashboard.SectionAll)

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, d); err != nil {
		p.logger.Error().Err(err).Str("render_id", d.RenderID).Msg("failed to render page")
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}
