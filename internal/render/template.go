package render

import (
	"bytes"
	"context"
	"flowweb/internal/domain/site"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
)

// Template names looked up in the templates directory.
const (
	TemplateIndex       = "index.tmpl"
	TemplatePost        = "blog_post.tmpl"
	TemplateOverview    = "blog_overview.tmpl"
	TemplateGallery     = "screenshots.tmpl"
	TemplateScreenshot  = "screenshot.tmpl"
	TemplateNotFound    = "404.tmpl"
	TemplateServerError = "500.tmpl"
	TemplateContact     = "contact.tmpl"
	TemplateProject     = "project.tmpl"
)

var requiredTemplates = []string{
	TemplateIndex,
	TemplatePost,
	TemplateOverview,
	TemplateGallery,
	TemplateScreenshot,
	TemplateNotFound,
	TemplateServerError,
	TemplateContact,
	TemplateProject,
}

type TemplateRenderer struct {
	tpl *template.Template
}

// NewTemplateRenderer parses every *.tmpl file in dir into one template set,
// so files can share {{define}} blocks.
func NewTemplateRenderer(dir string) (*TemplateRenderer, error) {
	pattern := filepath.Join(dir, "*.tmpl")
	tpl, err := template.New("").Funcs(templateFuncs()).ParseGlob(pattern)
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{tpl: tpl}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"date": func(t interface{}, layout string) string {
			switch v := t.(type) {
			case nil:
				return ""
			case string:
				return v
			case interface{ Format(string) string }:
				return v.Format(layout)
			default:
				return ""
			}
		},
		"sanitize": site.Sanitize,
		"join":     strings.Join,
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
	}
}

func (r *TemplateRenderer) RenderIndex(ctx context.Context, page IndexPage) ([]byte, error) {
	return r.exec(TemplateIndex, page)
}

func (r *TemplateRenderer) RenderPost(ctx context.Context, page PostPage) ([]byte, error) {
	return r.exec(TemplatePost, page)
}

func (r *TemplateRenderer) RenderOverview(ctx context.Context, page OverviewPage) ([]byte, error) {
	return r.exec(TemplateOverview, page)
}

func (r *TemplateRenderer) RenderGallery(ctx context.Context, page GalleryPage) ([]byte, error) {
	return r.exec(TemplateGallery, page)
}

func (r *TemplateRenderer) RenderScreenshot(ctx context.Context, page ScreenshotPage) ([]byte, error) {
	return r.exec(TemplateScreenshot, page)
}

func (r *TemplateRenderer) RenderStatic(ctx context.Context, name string, page StaticPage) ([]byte, error) {
	return r.exec(name, page)
}

func (r *TemplateRenderer) exec(name string, data interface{}) ([]byte, error) {
	t := r.tpl.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// CheckTemplates reports the first required template missing from dir.
func CheckTemplates(dir string) error {
	for _, name := range requiredTemplates {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("missing template: %s", name)
		}
	}
	return nil
}
