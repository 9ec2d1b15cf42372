package shared

// Filter is the listing query handed to repositories. Filters holds exact
// column matches keyed by column name; repositories ignore keys they do not
// know.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]string
}
