// Package pagination computes page metadata for catalog listings
package pagination

// Pages describes the pagination state of a listing: how many pages
// exist, where the current page's rows start, and which page numbers to
// render as navigation links.
type Pages struct {
	PageCount int
	Offset    int
	Window    []int
}

// Compute derives pagination metadata from a total row count, a page
// size, the requested 1-based page and a window radius.
//
// Compute does not clamp page; callers clamp it into
// [1, max(PageCount, 1)] before use. The window holds all pages within
// radius of page, clipped to [1, PageCount], ascending. With one page
// or none there is nothing to navigate to, so the window is empty.
func Compute(totalCount, pageSize, page, radius int) Pages {
	p := Pages{
		Offset: (page - 1) * pageSize,
		Window: []int{},
	}

	p.PageCount = PageCount(totalCount, pageSize)

	if p.PageCount <= 1 {
		return p
	}

	lo := page - radius
	if lo < 1 {
		lo = 1
	}
	hi := page + radius
	if hi > p.PageCount {
		hi = p.PageCount
	}
	for n := lo; n <= hi; n++ {
		p.Window = append(p.Window, n)
	}

	return p
}

// PageCount returns ceil(totalCount / pageSize), 0 for an empty catalog
func PageCount(totalCount, pageSize int) int {
	if totalCount <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

// ClampPage bounds a requested page into [1, max(pageCount, 1)]
func ClampPage(page, pageCount int) int {
	if page < 1 {
		return 1
	}
	if pageCount < 1 {
		return 1
	}
	if page > pageCount {
		return pageCount
	}
	return page
}
