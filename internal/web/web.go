// Package web holds the embedded HTML templates of the dashboard.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"time"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/timezone"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/view"
)

//go:embed templates/*.html
var files embed.FS

// Root is the template every page is rendered through.
const Root = "base"

// Refresh drives a timed navigation through a meta refresh.
type Refresh struct {
	URL   string
	Delay time.Duration
}

func (r Refresh) Content() string {
	return fmt.Sprintf("%d;url=%s", int(math.Ceil(r.Delay.Seconds())), r.URL)
}

func Templates(loc *time.Location) (*template.Template, error) {
	return template.New(Root).Funcs(funcs(loc)).ParseFS(files, "templates/*.html")
}

func funcs(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"errorsFor": func(errs map[string][]string, field string) []string {
			return errs[field]
		},
		"when": func(t time.Time) string {
			return timezone.Display(t, loc)
		},
		"add":  func(a, b int) int { return a + b },
		"sub":  func(a, b int) int { return a - b },
		"itoa": func(n int) string { return fmt.Sprint(n) },
		"deref": func(p *int) string {
			if p == nil {
				return ""
			}
			return fmt.Sprint(*p)
		},
	}
}

// Layout is the part of every page the base template reads.
type Layout struct {
	Page      string
	Title     string
	Shell     bool
	Username  string
	CSRFField template.HTML
	Notice    *view.Notice
	Refresh   *Refresh
}
