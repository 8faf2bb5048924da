// Package blog turns the blog-posts directory into post pages, paginated
// overview, topic and year listings, and the Atom feed.
package blog

import (
	"context"
	"flowweb/internal/domain/config"
	"flowweb/internal/domain/content"
	"flowweb/internal/domain/site"
	"flowweb/internal/ingest"
	"flowweb/internal/output"
	"flowweb/internal/render"
	"fmt"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"runtime"
	"sync/atomic"
)

type Generator struct {
	Cfg      config.Config
	Dir      string
	Markdown ingest.MarkdownConverter
	Renderer render.Renderer
	Out      *output.Dir
	Log      *zap.Logger
}

// Result is what the rest of the site needs from a finished blog run.
type Result struct {
	Index *Index
	Pages int
}

func (r *Result) Latest(n int) []content.Post {
	return r.Index.Latest(n)
}

func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	posts, err := ingest.IngestPosts(ctx, g.Dir, g.Markdown, g.Log)
	if err != nil {
		return nil, fmt.Errorf("ingest posts: %w", err)
	}
	ix := NewIndex(posts)

	var pages atomic.Int64
	if err := g.writePosts(ctx, ix, &pages); err != nil {
		return nil, err
	}
	if err := g.writeListings(ctx, ix, &pages); err != nil {
		return nil, err
	}
	if err := g.Out.WriteRoute(site.Atom(), Feed(g.Cfg, ix.Posts)); err != nil {
		return nil, fmt.Errorf("write feed: %w", err)
	}

	g.Log.Info("blog generated",
		zap.Int("posts", len(ix.Posts)),
		zap.Int("topics", len(ix.Topics)),
		zap.Int("years", len(ix.Years)),
		zap.Int64("pages", pages.Load()),
	)
	return &Result{Index: ix, Pages: int(pages.Load())}, nil
}

// pagePosts returns the posts that get their own page. Of posts sharing a
// slug only the one listed last, in date order, is kept.
func (g *Generator) pagePosts(ix *Index) []content.Post {
	last := make(map[string]int, len(ix.Posts))
	for i, p := range ix.Posts {
		last[p.Slug] = i
	}
	out := make([]content.Post, 0, len(last))
	for i, p := range ix.Posts {
		if last[p.Slug] != i {
			g.Log.Warn("skipping post page, slug taken by an older post",
				zap.String("slug", p.Slug),
				zap.String("skipped", p.SourcePath),
				zap.String("kept", ix.Posts[last[p.Slug]].SourcePath),
			)
			continue
		}
		out = append(out, p)
	}
	return out
}

func (g *Generator) writePosts(ctx context.Context, ix *Index, pages *atomic.Int64) error {
	base := g.Cfg.Blog.BaseDir
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, p := range g.pagePosts(ix) {
		p := p
		eg.Go(func() error {
			route := site.Post(base, p.Slug)
			html, err := g.Renderer.RenderPost(ctx, render.PostPage{
				Site:     g.Cfg.Site,
				BlogBase: base,
				URL:      route.URL,
				Title:    p.Title,
				Post:     p,
			})
			if err != nil {
				return fmt.Errorf("render post %s: %w", p.SourcePath, err)
			}
			if err := g.Out.WriteRoute(route, html); err != nil {
				return err
			}
			pages.Add(1)
			return nil
		})
	}
	return eg.Wait()
}

type listing struct {
	kind      site.RouteKind
	key       string
	title     string
	keywords  string
	topic     string
	topicSlug string
	year      string
	posts     []content.Post
}

func (g *Generator) listings(ix *Index) []listing {
	out := []listing{{
		kind:     site.RouteOverview,
		title:    "Blog Overview",
		keywords: "overview",
		posts:    ix.Posts,
	}}
	for _, t := range ix.Topics {
		slug := site.Sanitize(t)
		out = append(out, listing{
			kind:      site.RouteTopic,
			key:       slug,
			title:     "Blog posts by topic: " + t,
			keywords:  "topic, " + t,
			topic:     t,
			topicSlug: slug,
			posts:     ix.TopicPosts(t),
		})
	}
	for _, y := range ix.Years {
		out = append(out, listing{
			kind:     site.RouteYear,
			key:      y,
			title:    "Blog posts by year: " + y,
			keywords: "year, " + y,
			year:     y,
			posts:    ix.YearPosts(y),
		})
	}
	return out
}

// writeListings renders listings one after another, so when two topics
// share a slug the one sorted later owns the route.
func (g *Generator) writeListings(ctx context.Context, ix *Index, pages *atomic.Int64) error {
	topicBySlug := make(map[string]string)
	for _, l := range g.listings(ix) {
		if l.kind == site.RouteTopic {
			if prev, ok := topicBySlug[l.key]; ok {
				g.Log.Warn("topics share a slug, the later listing overwrites the earlier one",
					zap.String("slug", l.key), zap.String("first", prev), zap.String("second", l.topic))
			}
			topicBySlug[l.key] = l.topic
		}
		if err := g.writeListing(ctx, ix, l, pages); err != nil {
			return fmt.Errorf("%s listing %q: %w", l.kind, l.key, err)
		}
	}
	return nil
}

// writeListing renders every page of one listing. Page 1 goes to the
// listing's own index as well as to page/1.
func (g *Generator) writeListing(ctx context.Context, ix *Index, l listing, pages *atomic.Int64) error {
	base := g.Cfg.Blog.BaseDir
	canonical := site.Listing(base, l.kind, l.key)
	for _, p := range Paginate(len(l.posts), g.Cfg.Blog.PostsPerPage) {
		if err := ctx.Err(); err != nil {
			return err
		}
		route := site.ListingPage(base, l.kind, l.key, p.Number)
		html, err := g.Renderer.RenderOverview(ctx, render.OverviewPage{
			Site:      g.Cfg.Site,
			BlogBase:  base,
			Kind:      l.kind,
			Title:     l.title,
			Keywords:  l.keywords,
			Topic:     l.topic,
			TopicSlug: l.topicSlug,
			Year:      l.year,
			Pagination: render.Pagination{
				BaseURL: canonical.URL,
				PageURL: route.URL,
				Current: p.Number,
				Total:   p.Total,
				Offset:  p.Offset,
				Count:   p.Count,
			},
			Posts:      l.posts[p.Offset : p.Offset+p.Count],
			Topics:     ix.Topics,
			TopicSlugs: ix.TopicSlugs,
			Years:      ix.Years,
		})
		if err != nil {
			return fmt.Errorf("render page %d: %w", p.Number, err)
		}
		if p.Number == 1 {
			if err := g.Out.WriteRoute(canonical, html); err != nil {
				return err
			}
			pages.Add(1)
		}
		if err := g.Out.WriteRoute(route, html); err != nil {
			return err
		}
		pages.Add(1)
	}
	return nil
}
