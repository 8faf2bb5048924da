// Package sitetest writes small but complete input trees for tests: page
// templates, blog posts, screenshot descriptions and static assets.
package sitetest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Templates maps every page template to a minimal body that exposes the
// data tests assert on.
var Templates = map[string]string{
	"layout.tmpl": `{{define "head"}}<head><title>{{.}}</title></head>{{end}}`,
	"index.tmpl": `<html>{{template "head" .Title}}<body>
<ul class="latest">{{range .Posts}}<li class="post"><a href="/{{$.BlogBase}}/{{.Slug}}/">{{.Title}}</a></li>{{end}}</ul>
<ul class="shots">{{range .Screenshots}}<li class="shot"><a href="/{{.URL}}/">{{.Title}}</a></li>{{end}}</ul>
<a href="/{{.ProjectURL}}/">project</a>
</body></html>`,
	"blog_post.tmpl": `<html>{{template "head" .Title}}<body><article>
<h1>{{.Post.Title}}</h1><p class="meta">{{.Post.Author}} {{date .Post.Published "2006-01-02"}}</p>
{{.Post.HTML}}
<ul class="topics">{{range $i, $t := .Post.Topics}}<li><a href="/{{$.BlogBase}}/topic/{{index $.Post.TopicSlugs $i}}/">{{$t}}</a></li>{{end}}</ul>
</article></body></html>`,
	"blog_overview.tmpl": `<html>{{template "head" .Title}}<body>
<h1>{{.Title}}</h1><meta name="keywords" content="{{.Keywords}}">
<p class="pagination">page {{.Pagination.Current}} of {{.Pagination.Total}} offset {{.Pagination.Offset}} count {{.Pagination.Count}}</p>
<ul class="posts">{{range .Posts}}<li class="post"><a href="/{{$.BlogBase}}/{{.Slug}}/">{{.Title}}</a></li>{{end}}</ul>
<nav>{{range .Topics}}<span class="topic">{{.}}</span>{{end}}{{range .TopicSlugs}}<span class="topic-slug">{{.}}</span>{{end}}{{range .Years}}<span class="year">{{.}}</span>{{end}}</nav>
{{if .Pagination.HasNext}}<a class="next" href="/{{.Pagination.URL (add .Pagination.Current 1)}}/">older</a>{{end}}
</body></html>`,
	"screenshots.tmpl": `<html>{{template "head" .Title}}<body><h1>{{.Gallery.Name}}</h1>
{{range .Gallery.Screenshots}}<a class="shot" href="/{{.URL}}/"><img src="{{.ThumbnailPath}}" alt="{{.Title}}"></a>{{end}}
</body></html>`,
	"screenshot.tmpl": `<html>{{template "head" .Title}}<body><h1>{{.Screenshot.Title}}</h1>
<a href="/{{.Screenshot.GalleryURL}}/">{{.Screenshot.GalleryName}}</a><img src="{{.Screenshot.ImagePath}}">
{{range .Screenshot.Siblings}}<a class="sibling" href="/{{.URL}}/">{{.Title}}</a>{{end}}
{{with .Screenshot.Next}}<a class="next" href="/{{.URL}}/">next</a>{{end}}
</body></html>`,
	"404.tmpl":     `<html>{{template "head" .Title}}<body><h1>Page not found</h1></body></html>`,
	"500.tmpl":     `<html>{{template "head" .Title}}<body><h1>Internal server error</h1></body></html>`,
	"contact.tmpl": `<html>{{template "head" .Title}}<body><h1>Contact</h1></body></html>`,
	"project.tmpl": `<html>{{template "head" .Title}}<body><h1>HFGE</h1></body></html>`,
}

// Post is one blog post source file.
type Post struct {
	File      string
	Author    string
	Published string
	Updated   string
	Topics    string
	Title     string
	Snippet   string
	Body      string
}

// Source renders p in the front matter format read by the post parser.
func (p Post) Source() string {
	var b strings.Builder
	field := func(key, val string) {
		if val != "" {
			b.WriteString(key + ": " + val + "\n")
		}
	}
	field("author", p.Author)
	field("published", p.Published)
	field("updated", p.Updated)
	field("topics", p.Topics)
	field("title", p.Title)
	field("snippet", p.Snippet)
	b.WriteString("---\n")
	b.WriteString(p.Body)
	return b.String()
}

// Posts is the default corpus: five posts over three years and three topics.
func Posts() []Post {
	return []Post{
		{
			File: "first.md", Author: "Andreas", Published: "2022-03-01 10:00:00",
			Topics: "Free Software", Title: "First Post", Snippet: "The very first post.",
			Body: "# Hello\n\nWelcome to the blog.\n",
		},
		{
			File: "engine.md", Author: "Andreas", Published: "2023-05-10 08:30:00", Updated: "2023-06-01 09:00:00",
			Topics: "HFGE, Free Software", Title: "Engine Update", Snippet: "News about the engine.",
			Body: "Some **news**.\n\n```go\nfmt.Println(1)\n```\n",
		},
		{
			File: "graphics.md", Author: "Andreas", Published: "2023-12-31 23:59:59",
			Topics: "graphics, HFGE", Title: "Graphics Notes", Snippet: "Shaders and such.",
			Body: "## Shaders\n\nText.\n",
		},
		{
			File: "new-year.md", Author: "Andreas", Published: "2024-01-01 00:00:00",
			Topics: "Free Software", Title: "New Year", Snippet: "Plans for the year.",
			Body: "Plans.\n",
		},
		{
			File: "summer.md", Author: "Andreas", Published: "2024-06-01 12:00:00",
			Topics: "HFGE", Title: "Summer Release", Snippet: "A release.",
			Body: "Released.\n",
		},
	}
}

// Screenshots is the default set of screenshot description files. The
// "HFGE Screenshots" gallery holds seven entries.
func Screenshots() map[string]string {
	var hfge strings.Builder
	hfge.WriteString("screenshots_title: HFGE Screenshots\nscreenshots_url: screenshots/hfge\n\n")
	for _, name := range []string{"editor", "terrain", "water", "lights", "shadows", "particles", "menu"} {
		hfge.WriteString("title: " + strings.ToUpper(name[:1]) + name[1:] + "\n")
		hfge.WriteString("image_min: /static/img/hfge/" + name + "_min.png\n")
		hfge.WriteString("image_big: /static/img/hfge/" + name + ".png\n")
		hfge.WriteString("url: screenshots/hfge/" + name + "\n\n")
	}
	return map[string]string{
		"hfge.txt": hfge.String(),
		"flow.txt": "screenshots_title: Flow Screenshots\nscreenshots_url: screenshots/flow\n" +
			"url: screenshots/flow/main\ntitle: Main\nimage_big: /static/img/flow/main.png\nimage_min: /static/img/flow/main_min.png\n" +
			"title: Settings\nimage_min: /static/img/flow/settings_min.png\nimage_big: /static/img/flow/settings.png\nurl: screenshots/flow/settings\n",
	}
}

// WriteTemplates writes Templates into dir.
func WriteTemplates(t testing.TB, dir string) {
	t.Helper()
	for name, body := range Templates {
		WriteFile(t, filepath.Join(dir, name), body)
	}
}

// WriteSite lays out a full site under root: templates, the given posts and
// screenshot files, and small static and static_root trees.
func WriteSite(t testing.TB, root string, posts []Post, screenshots map[string]string) {
	t.Helper()
	WriteTemplates(t, filepath.Join(root, "templates"))
	if err := os.MkdirAll(filepath.Join(root, "blog-posts"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, p := range posts {
		WriteFile(t, filepath.Join(root, "blog-posts", p.File), p.Source())
	}
	if err := os.MkdirAll(filepath.Join(root, "screenshots"), 0o755); err != nil {
		t.Fatal(err)
	}
	for name, body := range screenshots {
		WriteFile(t, filepath.Join(root, "screenshots", name), body)
	}
	WriteFile(t, filepath.Join(root, "static", "css", "site.css"), "body { margin: 0; }\n")
	WriteFile(t, filepath.Join(root, "static_root", "robots.txt"), "User-agent: *\n")
}

func WriteFile(t testing.TB, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

// ReadFile returns the content of root/rel, failing the test when it is
// missing.
func ReadFile(t testing.TB, root, rel string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
