package shared

import "time"

// DateRange is an inclusive calendar window used by read-only projections
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange parses two YYYY-MM-DD dates. The end date must not precede the start date.
func NewDateRange(from, to string) (DateRange, error) {
	start, err := time.Parse(time.DateOnly, from)
	if err != nil {
		return DateRange{}, NewInvalidInputError("invalid start_date %q, expected YYYY-MM-DD", from)
	}
	end, err := time.Parse(time.DateOnly, to)
	if err != nil {
		return DateRange{}, NewInvalidInputError("invalid end_date %q, expected YYYY-MM-DD", to)
	}
	if end.Before(start) {
		return DateRange{}, NewInvalidInputError("start_date %s must be before or equal to end_date %s", from, to)
	}
	return DateRange{From: start, To: end}, nil
}

// EndExclusive returns the first instant after the window
func (r DateRange) EndExclusive() time.Time {
	return r.To.AddDate(0, 0, 1)
}

// Filter represents list paging and ordering options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{Page: 1, PageSize: 20}
}

// Offset returns the row offset of the current page
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
