package repository

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NormalizePage clamps user-supplied pagination to sane bounds. Callers
// normalize once before hitting a repository so the page and limit they
// echo back match the query that ran.
func NormalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return page, limit
}
