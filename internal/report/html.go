package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/daybook-app/daybook/internal/model"
)

// Meta is the report envelope around the task data: where it came
// from and how it was triggered.
type Meta struct {
	Title       string // header line
	RoutineName string // set for routine-triggered reports
	Memo        string // free-text note appended after the sections
	Test        bool   // marks test sends
	GeneratedAt time.Time
	// CategoryColor resolves a category name to its display color.
	CategoryColor func(name string) string
}

type sectionData struct {
	Title string
	Color string
	Tasks []taskRow
}

type taskRow struct {
	Title         string
	Content       string
	Category      string
	CategoryColor string
	Completed     bool
	Important     bool
}

type pageData struct {
	Meta           Meta
	Generated      string
	ReportDate     string
	Total          int
	CompletedCount int
	IncompleteCnt  int
	CompletionRate string
	FilterLabel    string
	Sections       []sectionData
	Memo           string
	Test           bool
	RoutineName    string
}

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: 'Segoe UI', Arial, sans-serif; line-height: 1.6; color: #333; background: #f5f5f5; padding: 20px; }
.container { max-width: 640px; margin: 0 auto; background: white; border-radius: 10px; overflow: hidden; box-shadow: 0 4px 6px rgba(0,0,0,0.1); }
.header { background: linear-gradient(135deg, #4facfe 0%, #00f2fe 100%); color: white; padding: 20px; text-align: center; }
.content { padding: 20px; }
.footer { background: #f8f9fa; padding: 15px; text-align: center; color: #666; font-size: 12px; }
.stat { text-align: center; display: inline-block; width: 30%; }
.stat .num { font-size: 24px; font-weight: bold; }
.chip { color: white; padding: 2px 6px; border-radius: 10px; font-size: 10px; margin-left: 8px; }
.task { background: #f8f9fa; margin: 5px 0; padding: 10px; border-radius: 5px; border-left: 3px solid #2196f3; }
.task.done { border-left-color: #4caf50; }
.task.done .line { text-decoration: line-through; color: #666; }
.bar { background: #e0e0e0; height: 8px; border-radius: 4px; margin-top: 5px; }
.bar .fill { background: #4caf50; height: 8px; border-radius: 4px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1 style="margin: 0;">{{.Meta.Title}}</h1>
    <div>{{.ReportDate}}</div>
  </div>
  <div class="content">
    {{if .Test}}<div style="background: #fff3cd; padding: 10px; margin-bottom: 20px; border-radius: 5px;"><strong>Test report</strong></div>{{end}}
    {{if .RoutineName}}<div style="background: #e8f4fd; padding: 10px; margin-bottom: 20px; border-radius: 5px;">Sent automatically by routine <strong>{{.RoutineName}}</strong></div>{{end}}
    <div style="background: #d4edda; padding: 10px; border-radius: 5px; margin-bottom: 20px;"><strong>Categories:</strong> {{.FilterLabel}}</div>
    <div style="background: #e3f2fd; padding: 15px; border-radius: 10px; margin-bottom: 20px;">
      <div class="stat"><div class="num" style="color: #2196f3;">{{.Total}}</div><div>Total</div></div>
      <div class="stat"><div class="num" style="color: #4caf50;">{{.CompletedCount}}</div><div>Done</div></div>
      <div class="stat"><div class="num" style="color: #f44336;">{{.IncompleteCnt}}</div><div>Open</div></div>
      <div style="background: #fff; padding: 10px; border-radius: 5px; margin-top: 15px;">
        <span>Completion</span> <strong style="color: #4caf50;">{{.CompletionRate}}%</strong>
        <div class="bar"><div class="fill" style="width: {{.CompletionRate}}%;"></div></div>
      </div>
    </div>
    {{range .Sections}}
    <div style="margin-bottom: 20px;">
      <h3 style="color: {{.Color}}; border-bottom: 2px solid {{.Color}}; padding-bottom: 5px;">{{.Title}} ({{len .Tasks}})</h3>
      {{if .Tasks}}{{range .Tasks}}
      <div class="task{{if .Completed}} done{{end}}">
        <div class="line">
          {{if .Completed}}&#x2705;{{else}}&#x23F3;{{end}}
          {{if .Important}}&#x2B50;{{end}}
          <strong>{{.Title}}</strong>
          <span class="chip" style="background: {{.CategoryColor}};">{{.Category}}</span>
        </div>
        {{if .Content}}<div style="font-size: 12px; color: #666; margin-top: 5px;">{{.Content}}</div>{{end}}
      </div>
      {{end}}{{else}}<div style="text-align: center; color: #666; padding: 15px;">No tasks</div>{{end}}
    </div>
    {{end}}
    {{if .Memo}}
    <div style="background: #f8f9fa; padding: 15px; border-radius: 5px; border-left: 4px solid #6c757d;">
      <h3 style="margin-top: 0;">Memo</h3>
      <div style="white-space: pre-line;">{{.Memo}}</div>
    </div>
    {{end}}
  </div>
  <div class="footer">Generated by daybook | {{.Generated}}</div>
</div>
</body>
</html>
`))

// contentSnippet truncates long task content for the report body.
func contentSnippet(content string) string {
	const max = 100
	if len(content) > max {
		return content[:max] + "..."
	}
	return content
}

// RenderHTML produces the full HTML body for a report.
func RenderHTML(d Data, meta Meta) (string, error) {
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now()
	}
	if meta.CategoryColor == nil {
		meta.CategoryColor = func(string) string { return "#6c757d" }
	}

	p := pageData{
		Meta:           meta,
		Generated:      meta.GeneratedAt.Format("2006-01-02 15:04"),
		ReportDate:     d.Date.String(),
		Total:          d.Total,
		CompletedCount: d.CompletedCount,
		IncompleteCnt:  d.Total - d.CompletedCount,
		CompletionRate: fmt.Sprintf("%.0f", d.CompletionRate),
		Memo:           meta.Memo,
		Test:           meta.Test,
		RoutineName:    meta.RoutineName,
	}

	if d.Filter.All() {
		p.FilterLabel = "all categories"
	} else {
		p.FilterLabel = strings.Join(d.Filter, ", ")
	}

	type section struct {
		contentType, title, color string
		tasks                     []taskRow
	}
	sections := []section{
		{"all", "All tasks", "#2196F3", rows(d.All, meta)},
		{"completed", "Completed", "#4CAF50", rows(d.Completed, meta)},
		{"incomplete", "Open", "#FF9800", rows(d.Incomplete, meta)},
		{"pending_important", "Still pending (last 30 days)", "#9C27B0", rows(d.Pending, meta)},
	}
	for _, sec := range sections {
		if d.Has(sec.contentType) {
			p.Sections = append(p.Sections, sectionData{Title: sec.title, Color: sec.color, Tasks: sec.tasks})
		}
	}

	var b strings.Builder
	if err := page.Execute(&b, p); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return b.String(), nil
}

func rows(tasks []model.Task, meta Meta) []taskRow {
	out := make([]taskRow, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskRow{
			Title:         t.Title,
			Content:       contentSnippet(t.Content),
			Category:      t.Category,
			CategoryColor: meta.CategoryColor(t.Category),
			Completed:     t.Completed,
			Important:     t.Important,
		})
	}
	return out
}
