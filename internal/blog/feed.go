package blog

import (
	"encoding/xml"
	"flowweb/internal/domain/config"
	"flowweb/internal/domain/content"
	"strings"
)

// Feed serializes posts, in the given order, into one Atom 1.0 document.
// Titles, summaries and bodies are written as CDATA; a "]]>" inside them is
// split across two sections.
func Feed(cfg config.Config, posts []content.Post) []byte {
	base := cfg.SiteURL()
	blogURL := base + "/" + cfg.Blog.BaseDir + "/"
	feedURL := base + "/feeds/blog.atom"

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	b.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">` + "\n")
	element(&b, 1, "id", feedURL)
	element(&b, 1, "title", cfg.Feed.Title)
	element(&b, 1, "updated", content.FeedTime(cfg.Build.Now))
	element(&b, 1, "generator", cfg.Feed.Generator)
	b.WriteString("    <author>\n")
	element(&b, 2, "name", cfg.Feed.AuthorName)
	element(&b, 2, "uri", cfg.Feed.AuthorURI)
	b.WriteString("    </author>\n")
	b.WriteString(`    <link rel="alternate" href="` + escape(blogURL) + `"/>` + "\n")
	b.WriteString(`    <link rel="self" href="` + escape(feedURL) + `"/>` + "\n")
	element(&b, 1, "subtitle", cfg.Feed.Subtitle)
	if cfg.Feed.Logo != "" {
		element(&b, 1, "logo", absURL(base, cfg.Feed.Logo))
	}
	if cfg.Feed.Icon != "" {
		element(&b, 1, "icon", absURL(base, cfg.Feed.Icon))
	}

	for _, p := range posts {
		link := blogURL + p.Slug + "/"
		author := p.Author
		if author == "" {
			author = cfg.Feed.EntryAuthor
		}
		b.WriteString("    <entry>\n")
		b.WriteString("        <author>\n")
		element(&b, 3, "name", author)
		b.WriteString("        </author>\n")
		b.WriteString(`        <title type="html">` + cdata(p.Title) + "</title>\n")
		b.WriteString(`        <link href="` + escape(link) + `"/>` + "\n")
		element(&b, 2, "id", link)
		element(&b, 2, "updated", p.UpdatedForFeed())
		element(&b, 2, "published", p.PublishedForFeed())
		for _, t := range p.Topics {
			b.WriteString(`        <category term="` + escape(t) + `"/>` + "\n")
		}
		b.WriteString(`        <summary type="html">` + cdata(p.Snippet) + "</summary>\n")
		b.WriteString(`        <content type="html">` + cdata(string(p.HTML)) + "</content>\n")
		b.WriteString("    </entry>\n")
	}
	b.WriteString("</feed>")
	return []byte(b.String())
}

func element(b *strings.Builder, depth int, name, text string) {
	b.WriteString(strings.Repeat("    ", depth))
	b.WriteString("<" + name + ">")
	b.WriteString(escape(text))
	b.WriteString("</" + name + ">\n")
}

func escape(s string) string {
	var b strings.Builder
	// strings.Builder writes never fail
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// cdata wraps s in a CDATA section. Characters XML does not allow, and
// invalid UTF-8, become U+FFFD as they do in escape.
func cdata(s string) string {
	s = strings.Map(func(r rune) rune {
		if !isXMLChar(r) {
			return '\uFFFD'
		}
		return r
	}, strings.ToValidUTF8(s, "\uFFFD"))
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

func absURL(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return base + "/" + strings.TrimPrefix(ref, "/")
}
