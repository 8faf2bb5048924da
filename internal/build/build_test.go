package build

import (
	"context"
	"errors"
	"flowweb/internal/blog"
	"flowweb/internal/domain/config"
	domainerr "flowweb/internal/domain/errors"
	"flowweb/internal/output"
	"flowweb/internal/screenshots"
	"flowweb/internal/sitetest"
	"go.uber.org/zap/zaptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Blog.PostsPerPage = 2
	cfg.Build.Now = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	return cfg
}

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	root := t.TempDir()
	sitetest.WriteSite(t, root, sitetest.Posts(), sitetest.Screenshots())
	return &Builder{Cfg: testConfig(), Root: root, Log: zaptest.NewLogger(t)}
}

func TestRun(t *testing.T) {
	b := newTestBuilder(t)
	sitetest.WriteFile(t, filepath.Join(b.Root, output.DirName, "stale.html"), "left over")

	res, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Posts != 5 || res.Galleries != 2 || res.Screenshots != 9 {
		t.Errorf("result = %+v", res)
	}
	// blog 23, screenshots 11, core 4, root index 1
	if res.Pages != 39 {
		t.Errorf("pages = %d, want 39", res.Pages)
	}
	// pages plus the feed and two copied static files
	if res.Files != 42 {
		t.Errorf("files = %d, want 42", res.Files)
	}
	if res.Digest == "" {
		t.Error("empty digest")
	}

	out := filepath.Join(b.Root, output.DirName)
	if _, err := os.Stat(filepath.Join(out, "stale.html")); err == nil {
		t.Error("output directory was not wiped")
	}
	index := sitetest.ReadFile(t, out, "index.html")
	if n := strings.Count(index, `class="post"`); n != 3 {
		t.Errorf("root index shows %d posts, want 3", n)
	}
	if n := strings.Count(index, `class="shot"`); n != 6 {
		t.Errorf("root index shows %d screenshots, want 6", n)
	}
	if !strings.Contains(index, "Summer Release") || strings.Contains(index, "First Post") {
		t.Errorf("root index should list the latest posts:\n%s", index)
	}
	for _, rel := range []string{"404.html", "500.html", "contact/index.html", "projects/hfge/index.html",
		"feeds/blog.atom", "static/css/site.css", "robots.txt", "screenshots/hfge/menu/index.html"} {
		sitetest.ReadFile(t, out, rel)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	b := newTestBuilder(t)
	first, err := b.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.Digest != second.Digest || first.Files != second.Files {
		t.Errorf("runs differ: %s/%d vs %s/%d", first.Digest, first.Files, second.Digest, second.Files)
	}
}

func TestRunMissingInputs(t *testing.T) {
	b := newTestBuilder(t)
	for _, d := range []string{ScreenshotsDir, "static_root"} {
		if err := os.RemoveAll(filepath.Join(b.Root, d)); err != nil {
			t.Fatal(err)
		}
	}

	_, err := b.Run(context.Background())
	if !errors.Is(err, ErrMissingInput) || !errors.Is(err, domainerr.ErrInvalid) {
		t.Fatalf("err = %v, want missing input validation error", err)
	}
	for _, d := range []string{ScreenshotsDir, "static_root"} {
		if !strings.Contains(err.Error(), d) {
			t.Errorf("error does not name %s: %v", d, err)
		}
	}
	if _, err := os.Stat(filepath.Join(b.Root, output.DirName)); err == nil {
		t.Error("output directory created despite failed pre-flight check")
	}
}

func TestRunMissingTemplate(t *testing.T) {
	b := newTestBuilder(t)
	if err := os.Remove(filepath.Join(b.Root, TemplatesDir, "screenshot.tmpl")); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "screenshot.tmpl") {
		t.Fatalf("err = %v, want missing template error", err)
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, b *Builder)
		wantErr error
	}{
		{
			name:    "unknown home gallery",
			mutate:  func(t *testing.T, b *Builder) { b.Cfg.Home.Gallery = "Nope" },
			wantErr: screenshots.ErrGalleryNotFound,
		},
		{
			name:    "invalid config",
			mutate:  func(t *testing.T, b *Builder) { b.Cfg.Blog.PostsPerPage = 0 },
			wantErr: domainerr.ErrInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder(t)
			tt.mutate(t, b)
			if _, err := b.Run(context.Background()); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("bad post", func(t *testing.T) {
		b := newTestBuilder(t)
		sitetest.WriteFile(t, filepath.Join(b.Root, PostsDir, "zz.md"), "title: x\nno colon here\n---\n")
		if _, err := b.Run(context.Background()); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

type slowBlog struct {
	inner BlogGenerator
	delay time.Duration
	done  *atomic.Bool
}

func (s slowBlog) Generate(ctx context.Context) (*blog.Result, error) {
	res, err := s.inner.Generate(ctx)
	time.Sleep(s.delay)
	s.done.Store(true)
	return res, err
}

type slowScreenshots struct {
	inner ScreenshotGenerator
	delay time.Duration
	done  *atomic.Bool
}

func (s slowScreenshots) Generate(ctx context.Context) (*screenshots.Result, error) {
	time.Sleep(s.delay)
	res, err := s.inner.Generate(ctx)
	s.done.Store(true)
	return res, err
}

func TestRootIndexWaitsForGenerators(t *testing.T) {
	tests := []struct {
		name      string
		blogDelay time.Duration
		shotDelay time.Duration
	}{
		{"slow blog", 150 * time.Millisecond, 0},
		{"slow screenshots", 0, 150 * time.Millisecond},
		{"both slow", 100 * time.Millisecond, 120 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder(t)
			var blogDone, shotsDone atomic.Bool
			b.WrapBlog = func(g BlogGenerator) BlogGenerator {
				return slowBlog{inner: g, delay: tt.blogDelay, done: &blogDone}
			}
			b.WrapScreenshots = func(g ScreenshotGenerator) ScreenshotGenerator {
				return slowScreenshots{inner: g, delay: tt.shotDelay, done: &shotsDone}
			}

			if _, err := b.Run(context.Background()); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !blogDone.Load() || !shotsDone.Load() {
				t.Fatal("generators did not finish")
			}
			index := sitetest.ReadFile(t, filepath.Join(b.Root, output.DirName), "index.html")
			if n := strings.Count(index, `class="post"`); n != 3 {
				t.Errorf("root index shows %d posts, want 3", n)
			}
			if n := strings.Count(index, `class="shot"`); n != 6 {
				t.Errorf("root index shows %d screenshots, want 6", n)
			}
		})
	}
}
