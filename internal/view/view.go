// Package view 以內嵌的 html/template 實作 echo.Renderer
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"ecocoin/internal/middleware"
	"ecocoin/internal/service"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Pages 可供 c.Render 使用的頁面名稱
var Pages = []string{
	"index",
	"register",
	"login",
	"dashboard",
	"profile",
	"edit_profile",
	"leaderboard",
	"admin",
	"admin_edit",
	"credit",
}

// Page 傳給每個模板的資料
type Page struct {
	Name        string
	Session     *service.Session
	Flash       *middleware.Flash
	CurrentYear int
	Data        any
}

type Renderer struct {
	pages map[string]*template.Template
	now   func() time.Time
}

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"photoURL": func(name string) string {
		if name == "" {
			return ""
		}
		return "/uploads/" + name
	},
	"fmtTime": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04")
	},
}

// New 解析全部模板，任何模板錯誤都會回傳
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages)), now: time.Now}
	for _, name := range Pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templatesFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", Page{
		Name:        name,
		Session:     middleware.SessionFrom(c),
		Flash:       middleware.PopFlash(c),
		CurrentYear: r.now().UTC().Year(),
		Data:        data,
	})
}
