package ingest

import (
	"context"
	"flowweb/internal/domain/content"
	"fmt"
	"go.uber.org/zap"
	"os"
	"runtime"
	"sync"
)

type result struct {
	index int
	post  content.Post
	err   error
}

// IngestPosts parses every file in dir on a pool of workers. Posts come back
// in file name order; the first failing file, in that order, fails the
// whole call.
func IngestPosts(ctx context.Context, dir string, md MarkdownConverter, log *zap.Logger) ([]content.Post, error) {
	files, err := DiscoverSource(dir)
	if err != nil {
		return nil, err
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(files) {
		workers = len(files)
	}
	jobs := make(chan int)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				path := files[idx].Path
				if err := ctx.Err(); err != nil {
					results <- result{index: idx, err: err}
					continue
				}
				raw, err := os.ReadFile(path)
				if err != nil {
					results <- result{index: idx, err: fmt.Errorf("read %s: %w", path, err)}
					continue
				}
				p, err := ParsePost(path, raw, md)
				results <- result{index: idx, post: p, err: err}
			}
		}()
	}

	go func() {
		for i := range files {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	posts := make([]content.Post, len(files))
	errs := make([]error, len(files))
	for r := range results {
		posts[r.index] = r.post
		errs[r.index] = r.err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[string]string, len(posts))
	for _, p := range posts {
		if prev, ok := seen[p.Slug]; ok {
			log.Warn("duplicate post slug, only one page is written",
				zap.String("slug", p.Slug), zap.String("first", prev), zap.String("second", p.SourcePath))
			continue
		}
		seen[p.Slug] = p.SourcePath
	}
	log.Debug("posts parsed", zap.Int("count", len(posts)), zap.String("dir", dir))
	return posts, nil
}
