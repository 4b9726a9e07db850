package model

// NewPaging clamps page into [1, TotalPages]. An empty result still has one page.
func NewPaging(page, size, total int) Paging {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	return Paging{
		Page:          page,
		PageSize:      size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

func (p Paging) Offset() int {
	return (p.Page - 1) * p.PageSize
}
