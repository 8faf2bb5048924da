package config

import (
	"errors"
	domainerr "flowweb/internal/domain/errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty title", func(c *Config) { c.Site.Title = " " }, "site.title"},
		{"relative url", func(c *Config) { c.Site.URL = "www.luflow.net" }, "site.url"},
		{"nested base dir", func(c *Config) { c.Blog.BaseDir = "a/b" }, "blog.base_dir"},
		{"zero page size", func(c *Config) { c.Blog.PostsPerPage = 0 }, "blog.posts_per_page"},
		{"negative latest", func(c *Config) { c.Home.LatestPosts = -1 }, "home.latest_posts"},
		{"empty gallery", func(c *Config) { c.Home.Gallery = "" }, "home.gallery"},
		{"absolute project url", func(c *Config) { c.Home.ProjectURL = "/projects/hfge" }, "home.project_url"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, domainerr.ErrInvalid) {
				t.Fatalf("Validate() = %v, want ErrInvalid", err)
			}
			var ve domainerr.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error is %T, want ValidationError", err)
			}
			if len(ve.Items) != 1 || ve.Items[0].Field != tt.field {
				t.Errorf("Validate() items = %v, want one item for %s", ve.Items, tt.field)
			}
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := "blog:\n  posts_per_page: 5\nhome:\n  gallery: Other\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Blog.PostsPerPage != 5 {
		t.Errorf("PostsPerPage = %d, want 5", cfg.Blog.PostsPerPage)
	}
	if cfg.Home.Gallery != "Other" {
		t.Errorf("Gallery = %q, want Other", cfg.Home.Gallery)
	}
	if cfg.Blog.BaseDir != "blog" {
		t.Errorf("BaseDir = %q, want default blog", cfg.Blog.BaseDir)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Blog.PostsPerPage != 20 {
		t.Errorf("PostsPerPage = %d, want 20", cfg.Blog.PostsPerPage)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("blog:\n  posts_per_page: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(path); !errors.Is(err, domainerr.ErrInvalid) {
		t.Fatalf("LoadOrDefault() error = %v, want ErrInvalid", err)
	}
}

func TestSiteURLTrimsSlash(t *testing.T) {
	cfg := Default()
	cfg.Site.URL = "https://example.org/"
	if got := cfg.SiteURL(); got != "https://example.org" {
		t.Errorf("SiteURL() = %q", got)
	}
}
