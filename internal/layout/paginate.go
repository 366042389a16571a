package layout

// PageCount returns how many pages n items need on the given grid.
func PageCount(n int, shape GridShape) int {
	perPage := shape.PerPage()
	if n <= 0 || perPage <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// Paginate splits items into consecutive pages of rows*cols items.
// Every page except possibly the last is full, and concatenating the pages
// reproduces the input order. The returned pages share the backing array of items.
func Paginate[T any](items []T, shape GridShape) [][]T {
	count := PageCount(len(items), shape)
	if count == 0 {
		return nil
	}

	perPage := shape.PerPage()
	pages := make([][]T, 0, count)
	for i := 0; i < count; i++ {
		start := i * perPage
		end := min(start+perPage, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages
}

// CellPosition maps a page-local index to its cell in row-major order.
func CellPosition(index, cols int) (row, col int) {
	return index / cols, index % cols
}
