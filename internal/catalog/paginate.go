package catalog

// Page returns the 1-indexed page of items for the given page size. Requests
// outside [1, TotalPages] yield an empty slice rather than an error; the
// stale-page case after a filter change is the caller's to avoid by resetting
// to page 1.
func Page[T any](items []T, pageSize, page int) []T {
	if pageSize <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages returns the number of pages needed to cover items.
func TotalPages[T any](items []T, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (len(items) + pageSize - 1) / pageSize
}
