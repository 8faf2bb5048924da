// Package build drives one full generation pass over a site directory.
package build

import (
	"context"
	"errors"
	"flowweb/internal/blog"
	"flowweb/internal/core"
	"flowweb/internal/domain/config"
	domainerr "flowweb/internal/domain/errors"
	"flowweb/internal/output"
	"flowweb/internal/render"
	"flowweb/internal/screenshots"
	"fmt"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"os"
	"path/filepath"
	"time"
)

// Input directories, relative to the site root.
const (
	PostsDir       = "blog-posts"
	ScreenshotsDir = "screenshots"
	TemplatesDir   = "templates"
)

// InputDirs must all exist before a run starts.
var InputDirs = []string{PostsDir, ScreenshotsDir, TemplatesDir, core.StaticDir, core.StaticRootDir}

var ErrMissingInput = errors.New("missing input directory")

type BlogGenerator interface {
	Generate(ctx context.Context) (*blog.Result, error)
}

type ScreenshotGenerator interface {
	Generate(ctx context.Context) (*screenshots.Result, error)
}

type Builder struct {
	Cfg  config.Config
	Root string
	Log  *zap.Logger

	// WrapBlog and WrapScreenshots, when set, decorate the generators of a
	// run before they start.
	WrapBlog        func(BlogGenerator) BlogGenerator
	WrapScreenshots func(ScreenshotGenerator) ScreenshotGenerator
}

type Result struct {
	Posts       int
	Galleries   int
	Screenshots int
	Pages       int
	Files       int
	// Digest covers the path and content of every output file.
	Digest   string
	Duration time.Duration
}

func (b *Builder) root() string {
	if b.Root == "" {
		return "."
	}
	return b.Root
}

// CheckInputs reports every missing input directory at once.
func CheckInputs(root string) error {
	ve := domainerr.ValidationError{Subject: "input directories"}
	for _, d := range InputDirs {
		st, err := os.Stat(filepath.Join(root, d))
		switch {
		case err != nil:
			ve.Add(d, "directory not found")
		case !st.IsDir():
			ve.Add(d, "not a directory")
		}
	}
	if !ve.HasAny() {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrMissingInput, ve)
}

func (b *Builder) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	root := b.root()

	if err := b.Cfg.Validate(); err != nil {
		return nil, err
	}
	if err := CheckInputs(root); err != nil {
		return nil, err
	}
	tplDir := filepath.Join(root, TemplatesDir)
	if err := render.CheckTemplates(tplDir); err != nil {
		return nil, err
	}
	tpl, err := render.NewTemplateRenderer(tplDir)
	if err != nil {
		return nil, fmt.Errorf("load templates(%s): %w", tplDir, err)
	}

	out := output.New(filepath.Join(root, output.DirName), b.Log.Named("output"))
	if err := out.Reset(); err != nil {
		return nil, err
	}

	var blogGen BlogGenerator = &blog.Generator{
		Cfg:      b.Cfg,
		Dir:      filepath.Join(root, PostsDir),
		Markdown: render.NewMarkdownRenderer(b.Cfg.Blog.CodeStyle),
		Renderer: tpl,
		Out:      out,
		Log:      b.Log.Named("blog"),
	}
	if b.WrapBlog != nil {
		blogGen = b.WrapBlog(blogGen)
	}
	var shotGen ScreenshotGenerator = &screenshots.Generator{
		Cfg:      b.Cfg,
		Dir:      filepath.Join(root, ScreenshotsDir),
		Renderer: tpl,
		Out:      out,
		Log:      b.Log.Named("screenshots"),
	}
	if b.WrapScreenshots != nil {
		shotGen = b.WrapScreenshots(shotGen)
	}
	coreGen := &core.Generator{
		Cfg:      b.Cfg,
		Root:     root,
		Renderer: tpl,
		Out:      out,
		Log:      b.Log.Named("core"),
	}

	var (
		blogRes   *blog.Result
		shotRes   *screenshots.Result
		corePages int
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		n, err := coreGen.Generate(ctx)
		corePages = n
		return err
	})
	eg.Go(func() error {
		// The root index needs the finished blog and screenshot results,
		// so it only runs after both have returned.
		stage, sctx := errgroup.WithContext(ctx)
		stage.Go(func() error {
			var err error
			blogRes, err = blogGen.Generate(sctx)
			return err
		})
		stage.Go(func() error {
			var err error
			shotRes, err = shotGen.Generate(sctx)
			return err
		})
		if err := stage.Wait(); err != nil {
			return err
		}

		shots, err := shotRes.Screenshots(b.Cfg.Home.Screenshots, b.Cfg.Home.Gallery)
		if err != nil {
			return fmt.Errorf("root index: %w", err)
		}
		return coreGen.RenderRootIndex(ctx, core.IndexData{
			Posts:       blogRes.Latest(b.Cfg.Home.LatestPosts),
			Screenshots: shots,
		})
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Posts:       len(blogRes.Index.Posts),
		Galleries:   len(shotRes.Catalog.Galleries),
		Screenshots: shotRes.Catalog.Count(),
		Pages:       blogRes.Pages + shotRes.Pages + corePages + 1,
		Files:       out.Fingerprint().Len(),
		Digest:      out.Fingerprint().Sum(),
		Duration:    time.Since(start),
	}
	b.Log.Info("site generated",
		zap.Int("posts", res.Posts),
		zap.Int("galleries", res.Galleries),
		zap.Int("screenshots", res.Screenshots),
		zap.Int("pages", res.Pages),
		zap.Int("files", res.Files),
		zap.String("digest", res.Digest),
		zap.Duration("took", res.Duration),
	)
	return res, nil
}
