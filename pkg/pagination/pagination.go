package pagination

const (
	// DefaultPageSize is the number of items shown on one catalog page.
	DefaultPageSize = 10
	// FirstPage is the lowest valid page number.
	FirstPage = 1
)

// Params holds 1-based page inputs from controllers or the CLI.
type Params struct {
	Page     int
	PageSize int
}

// NormalizePage clamps page numbers below 1 to the first page.
func NormalizePage(page int) int {
	if page < FirstPage {
		return FirstPage
	}
	return page
}

// NormalizePageSize falls back to DefaultPageSize for non-positive sizes.
func NormalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	return size
}

// TotalPages returns ceil(total/size), never less than 1.
func TotalPages(total, size int) int {
	size = NormalizePageSize(size)
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Bounds returns the half-open [start, end) slice window for the page. A page past the
// end yields start == end == total.
func Bounds(total int, p Params) (start, end int) {
	size := NormalizePageSize(p.PageSize)
	page := NormalizePage(p.Page)
	if total <= 0 {
		return 0, 0
	}
	start = (page - 1) * size
	if start >= total {
		return total, total
	}
	end = start + size
	if end > total {
		end = total
	}
	return start, end
}
