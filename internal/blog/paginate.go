package blog

// Page is one page of a listing. Number is 1-based; Offset is the position
// of the page's first post in the listing.
type Page struct {
	Number int
	Total  int
	Offset int
	Count  int
}

// Paginate slices count posts into pages of size posts. Every page but the
// last is full; the last holds the remainder. No posts means no pages.
func Paginate(count, size int) []Page {
	if count <= 0 || size <= 0 {
		return nil
	}
	total := (count + size - 1) / size
	pages := make([]Page, 0, total)
	offset := 0
	for i := 1; i <= total; i++ {
		n := size
		if i == total {
			n = count - size*(total-1)
		}
		pages = append(pages, Page{Number: i, Total: total, Offset: offset, Count: n})
		offset += n
	}
	return pages
}
