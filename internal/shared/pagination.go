package shared

// ListFilters represents standard list filters for collection endpoints.
type ListFilters struct {
	Page   int
	Limit  int
	Search string
}

const (
	// DefaultPage is the first page number.
	DefaultPage = 1
	// DefaultLimit bounds unfiltered listings.
	DefaultLimit = 50
)

// Normalize clamps filter values into valid ranges.
func (f ListFilters) Normalize() ListFilters {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	return f
}

// Offset translates page/limit into a SQL offset. Callers must Normalize first.
func (f ListFilters) Offset() int {
	return (f.Page - 1) * f.Limit
}
