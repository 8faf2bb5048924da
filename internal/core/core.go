// Package core renders the pages that need no blog or screenshot data,
// copies the static trees and, once both are available, the root index.
package core

import (
	"context"
	"flowweb/internal/domain/config"
	"flowweb/internal/domain/content"
	"flowweb/internal/domain/site"
	"flowweb/internal/output"
	"flowweb/internal/render"
	"fmt"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"path/filepath"
)

// Input directories copied verbatim into the output.
const (
	StaticDir     = "static"
	StaticRootDir = "static_root"
)

type Generator struct {
	Cfg      config.Config
	Root     string
	Renderer render.Renderer
	Out      *output.Dir
	Log      *zap.Logger
}

type page struct {
	route    site.Route
	template string
	title    string
}

func (g *Generator) pages() []page {
	return []page{
		{site.NotFound(), render.TemplateNotFound, "Page not found"},
		{site.ServerError(), render.TemplateServerError, "Internal server error"},
		{site.Contact(), render.TemplateContact, "Contact"},
		{site.Project(g.Cfg.Home.ProjectURL), render.TemplateProject, "HFGE"},
	}
}

// Generate renders the fixed pages and copies static and static_root, all
// concurrently. It returns the number of pages written.
func (g *Generator) Generate(ctx context.Context) (int, error) {
	pages := g.pages()
	eg, ctx := errgroup.WithContext(ctx)
	for _, p := range pages {
		p := p
		eg.Go(func() error {
			html, err := g.Renderer.RenderStatic(ctx, p.template, render.StaticPage{
				Site:  g.Cfg.Site,
				Title: p.title,
				URL:   p.route.URL,
			})
			if err != nil {
				return fmt.Errorf("render %s: %w", p.route.Kind, err)
			}
			return g.Out.WriteRoute(p.route, html)
		})
	}
	eg.Go(func() error {
		return g.Out.CopyTree(filepath.Join(g.Root, StaticDir), StaticDir)
	})
	eg.Go(func() error {
		return g.Out.CopyTree(filepath.Join(g.Root, StaticRootDir), "")
	})
	if err := eg.Wait(); err != nil {
		return 0, err
	}
	g.Log.Info("core pages generated", zap.Int("pages", len(pages)))
	return len(pages), nil
}

// IndexData is what the root index shows from the other generators.
type IndexData struct {
	Posts       []content.Post
	Screenshots []content.Screenshot
}

func (g *Generator) RenderRootIndex(ctx context.Context, data IndexData) error {
	html, err := g.Renderer.RenderIndex(ctx, render.IndexPage{
		Site:        g.Cfg.Site,
		Title:       g.Cfg.Site.Title,
		BlogBase:    g.Cfg.Blog.BaseDir,
		ProjectURL:  g.Cfg.Home.ProjectURL,
		Posts:       data.Posts,
		Screenshots: data.Screenshots,
	})
	if err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	if err := g.Out.WriteRoute(site.Index(), html); err != nil {
		return err
	}
	g.Log.Info("root index generated",
		zap.Int("posts", len(data.Posts)),
		zap.Int("screenshots", len(data.Screenshots)),
	)
	return nil
}
