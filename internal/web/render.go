package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	pageHome      = "home.html"
	pageLogin     = "login.html"
	pageSignup    = "signup.html"
	pageDashboard = "dashboard.html"
	pageAccount   = "account.html"
	pageError     = "error.html"
)

var pages = []string{pageHome, pageLogin, pageSignup, pageDashboard, pageAccount, pageError}

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("1/2/2006")
	},
	"upper": strings.ToUpper,
}

// pageRender gives every page its own template set so each can define
// "content" without clashing with the others.
type pageRender map[string]*template.Template

func loadTemplates(fsys fs.FS) (pageRender, error) {
	out := make(pageRender, len(pages))
	for _, p := range pages {
		t, err := template.New(p).Funcs(functions).ParseFS(fsys,
			"templates/layout.html", "templates/navbar.html", "templates/"+p)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		out[p] = t
	}
	return out, nil
}

func (r pageRender) Instance(name string, data any) render.Render {
	return render.HTML{Template: r[name], Name: "layout", Data: data}
}
