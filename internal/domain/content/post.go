package content

import (
	"html/template"
	"strconv"
	"time"
)

type Post struct {
	Author    string
	Published time.Time
	Updated   time.Time

	// Topics keeps front matter order; TopicSlugs[i] is the sanitized Topics[i].
	Topics     []string
	TopicSlugs []string

	Title   string
	Snippet string
	Slug    string

	HTML     template.HTML
	Headings []Heading

	SourcePath string
}

type Heading struct {
	Level int
	ID    string
	Text  string
}

func (p Post) Year() string {
	return strconv.Itoa(p.Published.Year())
}

func (p Post) PublishedForFeed() string {
	return FeedTime(p.Published)
}

func (p Post) UpdatedForFeed() string {
	return FeedTime(p.Updated)
}

// FeedTime renders t for the Atom feed. The wall clock is written as-is with
// a literal Z: post times carry no zone and are not converted to UTC.
func FeedTime(t time.Time) string {
	return t.Format("2006-01-02T15:04:05") + ".000Z"
}
