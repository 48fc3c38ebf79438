package model

// PageMeta describes the position of a page within a full result set.
type PageMeta struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// Page is one page of a paginated result set.
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}

// MapPage applies fn to every item of a page, passing the pagination
// metadata through unchanged.
func MapPage[S, T any](src Page[S], fn func(S) T) Page[T] {
	items := make([]T, len(src.Items))
	for i, it := range src.Items {
		items[i] = fn(it)
	}
	return Page[T]{Items: items, Meta: src.Meta}
}

// Paginate slices items into the requested page. TotalPages is at least 1
// even for an empty set, and an out-of-range page is clamped into
// [1, TotalPages] rather than rejected.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	current := page
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start := (current - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items: items[start:end],
		Meta: PageMeta{
			Page:       current,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
