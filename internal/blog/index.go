package blog

import (
	"flowweb/internal/domain/content"
	"flowweb/internal/domain/site"
	"golang.org/x/text/cases"
	"slices"
	"sort"
	"strings"
)

// Index is the sorted post list with its topic and year groupings. Group
// values are positions in Posts, so every group is latest first as well.
type Index struct {
	Posts   []content.Post
	ByTopic map[string][]int
	ByYear  map[string][]int

	// Topics is ordered case-insensitively, TopicSlugs plainly. The two
	// orders are independent and may differ.
	Topics     []string
	TopicSlugs []string
	Years      []string
}

// SortPosts orders posts latest first. Posts published at the same instant
// keep their input order.
func SortPosts(posts []content.Post) {
	slices.SortStableFunc(posts, func(a, b content.Post) int {
		return b.Published.Compare(a.Published)
	})
}

func NewIndex(posts []content.Post) *Index {
	sorted := slices.Clone(posts)
	SortPosts(sorted)

	ix := &Index{
		Posts:   sorted,
		ByTopic: make(map[string][]int),
		ByYear:  make(map[string][]int),
	}
	for i, p := range sorted {
		for _, t := range p.Topics {
			ix.ByTopic[t] = append(ix.ByTopic[t], i)
		}
		y := p.Year()
		ix.ByYear[y] = append(ix.ByYear[y], i)
	}

	for t := range ix.ByTopic {
		ix.Topics = append(ix.Topics, t)
		ix.TopicSlugs = append(ix.TopicSlugs, site.Sanitize(t))
	}
	sort.Strings(ix.Topics)
	fold := cases.Fold()
	sort.SliceStable(ix.Topics, func(i, j int) bool {
		return strings.Compare(fold.String(ix.Topics[i]), fold.String(ix.Topics[j])) < 0
	})
	sort.Strings(ix.TopicSlugs)

	for y := range ix.ByYear {
		ix.Years = append(ix.Years, y)
	}
	sort.Strings(ix.Years)
	return ix
}

func (ix *Index) pick(positions []int) []content.Post {
	out := make([]content.Post, len(positions))
	for i, pos := range positions {
		out[i] = ix.Posts[pos]
	}
	return out
}

func (ix *Index) TopicPosts(topic string) []content.Post {
	return ix.pick(ix.ByTopic[topic])
}

func (ix *Index) YearPosts(year string) []content.Post {
	return ix.pick(ix.ByYear[year])
}

// Latest returns up to n posts, latest first.
func (ix *Index) Latest(n int) []content.Post {
	if n > len(ix.Posts) {
		n = len(ix.Posts)
	}
	if n < 0 {
		n = 0
	}
	return slices.Clone(ix.Posts[:n])
}
