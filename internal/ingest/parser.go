package ingest

import (
	"errors"
	"flowweb/internal/domain/content"
	"flowweb/internal/domain/site"
	"flowweb/internal/render"
	"fmt"
	"html/template"
	"slices"
	"strings"
	"time"
)

var (
	ErrMalformedLine = errors.New("malformed line")
	ErrMissingField  = errors.New("missing required field")
)

// TimeLayout is the front matter timestamp format.
const TimeLayout = time.DateTime

const frontMatterEnd = "---"

type FrontMatter struct {
	Author    string
	Published string
	Updated   string
	Topics    string
	Title     string
	Snippet   string
}

// MarkdownConverter turns a post body into HTML.
type MarkdownConverter interface {
	Render(src []byte) (render.MarkdownResult, error)
}

// SplitLines normalizes line endings and splits raw into lines.
func SplitLines(raw []byte) []string {
	s := strings.ReplaceAll(string(raw), "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// ParseFrontMatter reads "key: value" lines up to the first "---" line and
// returns the body that follows. Empty lines are skipped; a non-empty line
// without a colon is an error. Unknown keys are ignored. A file without the
// delimiter has an empty body.
func ParseFrontMatter(raw []byte) (FrontMatter, string, error) {
	var fm FrontMatter
	lines := SplitLines(raw)
	for i, line := range lines {
		if line == "" {
			continue
		}
		if line == frontMatterEnd {
			return fm, strings.Join(lines[i+1:], "\n"), nil
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return FrontMatter{}, "", fmt.Errorf("line %d %q: %w", i+1, line, ErrMalformedLine)
		}
		value = strings.TrimSpace(value)
		switch key {
		case "author":
			fm.Author = value
		case "published":
			fm.Published = value
		case "updated":
			fm.Updated = value
		case "topics":
			fm.Topics = value
		case "title":
			fm.Title = value
		case "snippet":
			fm.Snippet = value
		}
	}
	return fm, "", nil
}

// ParseTime parses a front matter timestamp. The result carries no zone
// information beyond UTC.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, strings.TrimSpace(s))
}

// SplitTopics splits a comma separated topic list, trimming every entry and
// dropping empty and repeated ones.
func SplitTopics(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

// ParsePost builds a post from one source file. title and published are
// required; updated defaults to published.
func ParsePost(path string, raw []byte, md MarkdownConverter) (content.Post, error) {
	fm, body, err := ParseFrontMatter(raw)
	if err != nil {
		return content.Post{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if fm.Title == "" {
		return content.Post{}, fmt.Errorf("parse %s: title: %w", path, ErrMissingField)
	}
	if fm.Published == "" {
		return content.Post{}, fmt.Errorf("parse %s: published: %w", path, ErrMissingField)
	}
	published, err := ParseTime(fm.Published)
	if err != nil {
		return content.Post{}, fmt.Errorf("parse %s: published: %w", path, err)
	}
	updated := published
	if fm.Updated != "" {
		if updated, err = ParseTime(fm.Updated); err != nil {
			return content.Post{}, fmt.Errorf("parse %s: updated: %w", path, err)
		}
	}

	topics := SplitTopics(fm.Topics)
	slugs := make([]string, len(topics))
	for i, t := range topics {
		slugs[i] = site.Sanitize(t)
	}

	res, err := md.Render([]byte(body))
	if err != nil {
		return content.Post{}, fmt.Errorf("render markdown %s: %w", path, err)
	}

	return content.Post{
		Author:     fm.Author,
		Published:  published,
		Updated:    updated,
		Topics:     topics,
		TopicSlugs: slugs,
		Title:      fm.Title,
		Snippet:    fm.Snippet,
		Slug:       site.Sanitize(fm.Title),
		HTML:       template.HTML(res.HTML),
		Headings:   res.Headings,
		SourcePath: path,
	}, nil
}
