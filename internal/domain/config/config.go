package config

import (
	domainerr "flowweb/internal/domain/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
	"net/url"
	"os"
	"strings"
	"time"
)

// FileName is the optional configuration file looked up in the site root.
const FileName = "flowweb.yaml"

type Config struct {
	Site  SiteConfig  `yaml:"site"`
	Blog  BlogConfig  `yaml:"blog"`
	Feed  FeedConfig  `yaml:"feed"`
	Home  HomeConfig  `yaml:"home"`
	Log   LogConfig   `yaml:"log"`
	Build BuildConfig `yaml:"-"`
}

type SiteConfig struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Author      string `yaml:"author"`
	Description string `yaml:"description"`
}

type BlogConfig struct {
	BaseDir      string `yaml:"base_dir"`
	PostsPerPage int    `yaml:"posts_per_page"`
	CodeStyle    string `yaml:"code_style"`
}

// FeedConfig holds the static elements of the Atom document.
type FeedConfig struct {
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle"`
	Generator   string `yaml:"generator"`
	AuthorName  string `yaml:"author_name"`
	AuthorURI   string `yaml:"author_uri"`
	EntryAuthor string `yaml:"entry_author"`
	Logo        string `yaml:"logo"`
	Icon        string `yaml:"icon"`
}

// HomeConfig controls what the root index shows.
type HomeConfig struct {
	LatestPosts int    `yaml:"latest_posts"`
	Screenshots int    `yaml:"screenshots"`
	Gallery     string `yaml:"gallery"`
	ProjectURL  string `yaml:"project_url"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type BuildConfig struct {
	// Now stamps the feed's <updated> element.
	Now time.Time
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:       "luflow.net",
			URL:         "https://www.luflow.net",
			Author:      "Andreas",
			Description: "Free software, game engines and more.",
		},
		Blog: BlogConfig{
			BaseDir:      "blog",
			PostsPerPage: 20,
			CodeStyle:    "onedark",
		},
		Feed: FeedConfig{
			Title:       "luflow.net Blog",
			Subtitle:    "This blog is dedicated to free software in general.",
			Generator:   "https://codeberg.org/hfsoulz/flow-web.git",
			AuthorName:  "luflow.net",
			AuthorURI:   "https://www.luflow.net/",
			EntryAuthor: "Andreas",
			Logo:        "/static/img/icon.png",
			Icon:        "/favicon.ico",
		},
		Home: HomeConfig{
			LatestPosts: 3,
			Screenshots: 6,
			Gallery:     "HFGE Screenshots",
			ProjectURL:  "projects/hfge",
		},
		Log: LogConfig{
			Level: "info",
		},
		Build: BuildConfig{
			Now: time.Now(),
		},
	}
}

func (c Config) Validate() error {
	ve := domainerr.ValidationError{Subject: "config"}

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}
	if strings.TrimSpace(c.Site.URL) == "" {
		ve.Add("site.url", "must not be empty")
	} else if !isValidAbsURL(c.Site.URL) {
		ve.Add("site.url", "must be a valid absolute URL")
	}

	if bd := strings.TrimSpace(c.Blog.BaseDir); bd == "" {
		ve.Add("blog.base_dir", "must not be empty")
	} else if strings.ContainsAny(bd, `/\`) || bd == "." || bd == ".." {
		ve.Add("blog.base_dir", "must be a single path segment")
	}
	if c.Blog.PostsPerPage <= 0 {
		ve.Add("blog.posts_per_page", "must be greater than zero")
	}

	if strings.TrimSpace(c.Feed.Title) == "" {
		ve.Add("feed.title", "must not be empty")
	}

	if c.Home.LatestPosts < 0 {
		ve.Add("home.latest_posts", "must not be negative")
	}
	if c.Home.Screenshots < 0 {
		ve.Add("home.screenshots", "must not be negative")
	}
	if strings.TrimSpace(c.Home.Gallery) == "" {
		ve.Add("home.gallery", "must not be empty")
	}
	if pu := strings.TrimSpace(c.Home.ProjectURL); pu == "" || strings.HasPrefix(pu, "/") {
		ve.Add("home.project_url", "must be a non-empty relative path")
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		ve.Addf("log.level", "unknown level %q", c.Log.Level)
	}

	return ve.OrNil()
}

// SiteURL returns the site URL without a trailing slash.
func (c Config) SiteURL() string {
	return strings.TrimRight(strings.TrimSpace(c.Site.URL), "/")
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the file
// does not exist.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil && os.IsNotExist(err) {
		cfg = Default()
		return cfg, cfg.Validate()
	}
	return cfg, err
}
