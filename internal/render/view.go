package render

import (
	"flowweb/internal/domain/config"
	"flowweb/internal/domain/content"
	"flowweb/internal/domain/site"
	"path"
	"strconv"
)

type PostPage struct {
	Site     config.SiteConfig
	BlogBase string
	URL      string
	Title    string
	Post     content.Post
}

// Pagination describes one page of a listing.
type Pagination struct {
	// BaseURL is the listing root, e.g. "blog/topic/go".
	BaseURL string
	PageURL string
	Current int
	Total   int
	// Offset is the position of the first post of this page in the listing.
	Offset int
	// Count is the number of posts on this page.
	Count int
}

func (p Pagination) HasPrevious() bool { return p.Current > 1 }

func (p Pagination) HasNext() bool { return p.Current < p.Total }

// URL returns the URL of page n of the same listing.
func (p Pagination) URL(n int) string {
	return path.Join(p.BaseURL, "page", strconv.Itoa(n))
}

func (p Pagination) Numbers() []int {
	nums := make([]int, 0, p.Total)
	for i := 1; i <= p.Total; i++ {
		nums = append(nums, i)
	}
	return nums
}

type OverviewPage struct {
	Site     config.SiteConfig
	BlogBase string
	Kind     site.RouteKind
	Title    string
	Keywords string

	Topic     string
	TopicSlug string
	Year      string

	Pagination Pagination
	Posts      []content.Post

	// Navigation. Topics and TopicSlugs are sorted independently.
	Topics     []string
	TopicSlugs []string
	Years      []string
}

func (p OverviewPage) IsOverview() bool { return p.Kind == site.RouteOverview }

func (p OverviewPage) IsTopic() bool { return p.Kind == site.RouteTopic }

func (p OverviewPage) IsYear() bool { return p.Kind == site.RouteYear }

type GalleryPage struct {
	Site    config.SiteConfig
	Title   string
	Gallery content.Gallery
}

type ScreenshotPage struct {
	Site       config.SiteConfig
	Title      string
	Screenshot content.Screenshot
}

type IndexPage struct {
	Site        config.SiteConfig
	Title       string
	BlogBase    string
	ProjectURL  string
	Posts       []content.Post
	Screenshots []content.Screenshot
}

// StaticPage feeds the pages that need no content: 404, 500, contact and
// the project page.
type StaticPage struct {
	Site  config.SiteConfig
	Title string
	URL   string
}
