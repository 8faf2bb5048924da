// Package screenshots builds the screenshot catalog and renders one page
// per gallery plus one page per screenshot.
package screenshots

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
	"sync/atomic"
)

type Generator struct {
	Cfg      config.Config
	Dir      string
	Renderer render.Renderer
	Out      *output.Dir
	Log      *zap.Logger
}

type Result struct {
	Catalog *Catalog
	Pages   int
}

func (r *Result) Screenshots(n int, gallery string) ([]content.Screenshot, error) {
	return r.Catalog.Screenshots(n, gallery)
}

func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	cat, err := LoadCatalog(g.Dir)
	if err != nil {
		return nil, fmt.Errorf("load screenshots: %w", err)
	}

	var pages atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	for _, gal := range cat.Galleries {
		gal := gal
		eg.Go(func() error {
			route := site.Gallery(gal.URL)
			html, err := g.Renderer.RenderGallery(ctx, render.GalleryPage{
				Site:    g.Cfg.Site,
				Title:   gal.Name,
				Gallery: gal,
			})
			if err != nil {
				return fmt.Errorf("render gallery %q: %w", gal.Name, err)
			}
			if err := g.Out.WriteRoute(route, html); err != nil {
				return err
			}
			pages.Add(1)

			for _, s := range gal.Screenshots {
				if err := ctx.Err(); err != nil {
					return err
				}
				html, err := g.Renderer.RenderScreenshot(ctx, render.ScreenshotPage{
					Site:       g.Cfg.Site,
					Title:      s.Title,
					Screenshot: s,
				})
				if err != nil {
					return fmt.Errorf("render screenshot %q: %w", s.URL, err)
				}
				if err := g.Out.WriteRoute(site.Screenshot(s.URL), html); err != nil {
					return err
				}
				pages.Add(1)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g.Log.Info("screenshots generated",
		zap.Int("galleries", len(cat.Galleries)),
		zap.Int("screenshots", cat.Count()),
		zap.Int64("pages", pages.Load()),
	)
	return &Result{Catalog: cat, Pages: int(pages.Load())}, nil
}
