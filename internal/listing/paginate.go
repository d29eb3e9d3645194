package listing

// DefaultPerPage is the page size of the portal listings.
const DefaultPerPage = 10

// MaxPerPage caps client supplied page sizes.
const MaxPerPage = 100

// Page describes one page of a listing. Start and End are slice bounds
// into the filtered items.
type Page struct {
	Number     int  `json:"page"`
	PerPage    int  `json:"perPage"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	Start      int  `json:"-"`
	End        int  `json:"-"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`
}

// Paginate computes page number for total items. perPage <= 0 uses
// DefaultPerPage; the page is clamped to [1, max(1, TotalPages)].
func Paginate(total, number, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if total < 0 {
		total = 0
	}

	pages := (total + perPage - 1) / perPage
	last := max(1, pages)
	number = min(max(1, number), last)

	start := min((number-1)*perPage, total)
	end := min(start+perPage, total)

	return Page{
		Number:     number,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: pages,
		Start:      start,
		End:        end,
		HasPrev:    number > 1,
		HasNext:    number < pages,
	}
}

// Slice returns the items of page p.
func Slice[T any](items []T, p Page) []T {
	if p.Start >= len(items) {
		return []T{}
	}
	return items[p.Start:min(p.End, len(items))]
}
