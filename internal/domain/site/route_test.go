package site

import (
	"testing"
)

func TestRoutes(t *testing.T) {
	tests := []struct {
		name    string
		route   Route
		url     string
		outPath string
	}{
		{"index", Index(), "", "index.html"},
		{"404", NotFound(), "404.html", "404.html"},
		{"contact", Contact(), "contact", "contact/index.html"},
		{"project", Project("projects/hfge"), "projects/hfge", "projects/hfge/index.html"},
		{"post", Post("blog", "hello-world"), "blog/hello-world", "blog/hello-world/index.html"},
		{"overview", Listing("blog", RouteOverview, ""), "blog", "blog/index.html"},
		{"overview page", ListingPage("blog", RouteOverview, "", 3), "blog/page/3", "blog/page/3/index.html"},
		{"topic", Listing("blog", RouteTopic, "go"), "blog/topic/go", "blog/topic/go/index.html"},
		{"topic page", ListingPage("blog", RouteTopic, "go", 1), "blog/topic/go/page/1", "blog/topic/go/page/1/index.html"},
		{"year page", ListingPage("blog", RouteYear, "2024", 2), "blog/year/2024/page/2", "blog/year/2024/page/2/index.html"},
		{"atom", Atom(), "feeds/blog.atom", "feeds/blog.atom"},
		{"gallery trims slashes", Gallery("/screenshots/hfge/"), "screenshots/hfge", "screenshots/hfge/index.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.route.URL != tt.url {
				t.Errorf("URL = %q, want %q", tt.route.URL, tt.url)
			}
			if want := tt.outPath; tt.route.OutPath != want {
				t.Errorf("OutPath = %q, want %q", tt.route.OutPath, want)
			}
		})
	}
}

func TestRouteString(t *testing.T) {
	r := ListingPage("blog", RouteTopic, "go", 2)
	want := "topic key=go page=2 out=blog/topic/go/page/2/index.html"
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
