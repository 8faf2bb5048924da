package site

import (
	"fmt"
	"path"
	"strconv"
	"strings"
)

type RouteKind string

const (
	RouteIndex       RouteKind = "index"
	RoutePost        RouteKind = "post"
	RouteOverview    RouteKind = "overview"
	RouteTopic       RouteKind = "topic"
	RouteYear        RouteKind = "year"
	RouteAtom        RouteKind = "atom"
	RouteGallery     RouteKind = "gallery"
	RouteScreenshot  RouteKind = "screenshot"
	RouteNotFound    RouteKind = "404"
	RouteServerError RouteKind = "500"
	RouteContact     RouteKind = "contact"
	RouteProject     RouteKind = "project"
)

// Route ties a generated page to its URL and to the file it is written to.
// URL is relative to the site root and has no leading slash; OutPath is
// the slash separated file path relative to the output directory.
type Route struct {
	Kind    RouteKind
	Slug    string
	Key     string
	Page    int
	URL     string
	OutPath string
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.Key != "" {
		parts = append(parts, "key="+r.Key)
	}
	if r.Page > 0 {
		parts = append(parts, fmt.Sprintf("page=%d", r.Page))
	}
	if r.OutPath != "" {
		parts = append(parts, "out="+r.OutPath)
	}
	return strings.Join(parts, " ")
}

func dirRoute(kind RouteKind, url string) Route {
	url = strings.Trim(url, "/")
	return Route{
		Kind:    kind,
		URL:     url,
		OutPath: path.Join(url, "index.html"),
	}
}

func Index() Route {
	return Route{Kind: RouteIndex, OutPath: "index.html"}
}

func NotFound() Route {
	return Route{Kind: RouteNotFound, URL: "404.html", OutPath: "404.html"}
}

func ServerError() Route {
	return Route{Kind: RouteServerError, URL: "500.html", OutPath: "500.html"}
}

func Contact() Route {
	return dirRoute(RouteContact, "contact")
}

func Project(url string) Route {
	return dirRoute(RouteProject, url)
}

func Post(blogBase, slug string) Route {
	r := dirRoute(RoutePost, path.Join(blogBase, slug))
	r.Slug = slug
	return r
}

// listingBase is the URL a paginated listing hangs off: the blog base for
// the overview, <base>/topic/<key> and <base>/year/<key> otherwise.
func listingBase(blogBase string, kind RouteKind, key string) string {
	switch kind {
	case RouteTopic:
		return path.Join(blogBase, "topic", key)
	case RouteYear:
		return path.Join(blogBase, "year", key)
	default:
		return blogBase
	}
}

// Listing is the canonical index of a listing, e.g. blog/topic/go/index.html.
func Listing(blogBase string, kind RouteKind, key string) Route {
	r := dirRoute(kind, listingBase(blogBase, kind, key))
	r.Key = key
	return r
}

// ListingPage is page n of a listing, e.g. blog/year/2024/page/2/index.html.
func ListingPage(blogBase string, kind RouteKind, key string, n int) Route {
	r := dirRoute(kind, path.Join(listingBase(blogBase, kind, key), "page", strconv.Itoa(n)))
	r.Key = key
	r.Page = n
	return r
}

func Atom() Route {
	return Route{Kind: RouteAtom, URL: "feeds/blog.atom", OutPath: "feeds/blog.atom"}
}

func Gallery(url string) Route {
	return dirRoute(RouteGallery, url)
}

func Screenshot(url string) Route {
	return dirRoute(RouteScreenshot, url)
}
