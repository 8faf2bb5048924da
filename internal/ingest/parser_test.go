package ingest

import (
	"errors"
	"flowweb/internal/render"
	"reflect"
	"strings"
	"testing"
	"time"
)

var md = render.NewMarkdownRenderer("onedark")

func TestParseFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     FrontMatter
		wantBody string
		wantErr  error
	}{
		{
			name: "all keys",
			raw: "author: Andreas\npublished: 2024-06-01 12:00:00\nupdated: 2024-06-02 08:00:00\n" +
				"topics: Go, Free Software\ntitle: A Title: With Colon\nsnippet: short\n---\nbody\n",
			want: FrontMatter{
				Author: "Andreas", Published: "2024-06-01 12:00:00", Updated: "2024-06-02 08:00:00",
				Topics: "Go, Free Software", Title: "A Title: With Colon", Snippet: "short",
			},
			wantBody: "body",
		},
		{
			name:     "unknown keys and blank lines ignored",
			raw:      "\ncolor: blue\n\ntitle: T\n---\n",
			want:     FrontMatter{Title: "T"},
			wantBody: "",
		},
		{
			name:     "body keeps blank lines and later delimiters",
			raw:      "title: T\r\n---\r\nfirst\r\n\r\n---\r\nlast",
			want:     FrontMatter{Title: "T"},
			wantBody: "first\n\n---\nlast",
		},
		{
			name:    "line without colon",
			raw:     "title: T\njust words\n---\n",
			wantErr: ErrMalformedLine,
		},
		{
			name:     "keys match exactly",
			raw:      " title: indented\nTitle: capital\ntitle: T\n---\n",
			want:     FrontMatter{Title: "T"},
			wantBody: "",
		},
		{
			name: "no delimiter",
			raw:  "title: T\n",
			want: FrontMatter{Title: "T"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, err := ParseFrontMatter([]byte(tt.raw))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fm != tt.want {
				t.Errorf("front matter = %+v, want %+v", fm, tt.want)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParsePost(t *testing.T) {
	raw := "author: Andreas\npublished: 2023-12-31 23:59:59\ntopics:  Free Software ,HFGE,, \n" +
		"title: This is a Test, and so on.\nsnippet: s\n---\n# Heading\n\ntext\n"
	p, err := ParsePost("blog-posts/test.md", []byte(raw), md)
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}
	if p.Slug != "this-is-a-test-and-so-on" {
		t.Errorf("slug = %q", p.Slug)
	}
	wantTime := time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)
	if !p.Published.Equal(wantTime) || !p.Updated.Equal(wantTime) {
		t.Errorf("published/updated = %v/%v, want %v", p.Published, p.Updated, wantTime)
	}
	if !reflect.DeepEqual(p.Topics, []string{"Free Software", "HFGE"}) {
		t.Errorf("topics = %q", p.Topics)
	}
	if !reflect.DeepEqual(p.TopicSlugs, []string{"free-software", "hfge"}) {
		t.Errorf("topic slugs = %q", p.TopicSlugs)
	}
	if !strings.Contains(string(p.HTML), "<h1") || !strings.Contains(string(p.HTML), "<p>text</p>") {
		t.Errorf("html = %s", p.HTML)
	}
	if len(p.Headings) != 1 || p.Headings[0].Text != "Heading" {
		t.Errorf("headings = %+v", p.Headings)
	}
	if p.Year() != "2023" {
		t.Errorf("year = %q", p.Year())
	}
}

func TestParsePostErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"missing title", "published: 2024-01-01 00:00:00\n---\n", ErrMissingField},
		{"missing published", "title: T\n---\n", ErrMissingField},
		{"malformed line", "title: T\npublished 2024-01-01\n---\n", ErrMalformedLine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePost("x.md", []byte(tt.raw), md)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("bad timestamp", func(t *testing.T) {
		_, err := ParsePost("x.md", []byte("title: T\npublished: 2024-01-01T00:00:00Z\n---\n"), md)
		if err == nil || !strings.Contains(err.Error(), "published") {
			t.Fatalf("err = %v, want published parse error", err)
		}
	})
	t.Run("bad updated", func(t *testing.T) {
		_, err := ParsePost("x.md", []byte("title: T\npublished: 2024-01-01 00:00:00\nupdated: yesterday\n---\n"), md)
		if err == nil || !strings.Contains(err.Error(), "updated") {
			t.Fatalf("err = %v, want updated parse error", err)
		}
	})
}

func TestSplitTopics(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"trimmed", " Go ,  Free Software", []string{"Go", "Free Software"}},
		{"empty entries dropped", "a,,b, ,", []string{"a", "b"}},
		{"repeats dropped", "Go, HFGE, Go", []string{"Go", "HFGE"}},
		{"case differs", "Go, go", []string{"Go", "go"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitTopics(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTopics(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
