package entity

// PageRequest selects a zero-based page of a listing.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// SortField names a listing order exposed to clients.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByPrice     SortField = "price"
	SortByNameTr    SortField = "nameTr"
)

// Sort orders a listing. The zero value is the default, newest first.
type Sort struct {
	Field SortField
	Desc  bool
}

// IsDefault reports whether s orders newest first.
func (s Sort) IsDefault() bool {
	return s.Field == "" || (s.Field == SortByCreatedAt && s.Desc)
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Items []T
	Page  int
	Size  int
	Total int64
}

// TotalPages returns the number of pages needed for Total items.
func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}

	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// MapPage converts the items of a page while keeping its position.
func MapPage[T, R any](p *Page[T], fn func(T) R) *Page[R] {
	items := make([]R, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}

	return &Page[R]{Items: items, Page: p.Page, Size: p.Size, Total: p.Total}
}
