package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination fills the derived fields for a 1-based page. From and To are
// 1-based item positions and are zero on an empty page.
func NewPagination(page, pageSize int, totalItems int64, itemsOnPage int) *Pagination {
	p := &Pagination{Page: page, PageSize: pageSize, TotalItems: totalItems}
	if pageSize > 0 {
		p.TotalPages = (totalItems + int64(pageSize) - 1) / int64(pageSize)
	}
	p.HasMore = int64(page) < p.TotalPages
	if itemsOnPage > 0 {
		p.From = (page-1)*pageSize + 1
		p.To = p.From + itemsOnPage - 1
	}
	return p
}
