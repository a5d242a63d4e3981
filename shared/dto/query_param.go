package dto

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams controls ordering and paging of Repository.GetAll. Zero values
// mean unordered and unpaged.
type QueryParams struct {
	Page    int
	Limit   int
	SortBy  string
	SortDir string
}

// OrderBy sorts ascending on column. Time-ordered ids make this insertion order.
func OrderBy(column string) QueryParams {
	return QueryParams{SortBy: column, SortDir: SortDirAsc}
}
