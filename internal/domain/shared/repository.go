package shared

// Filter carries pagination and ordering for list queries. Invoice lists
// are always scoped to a single owner, so the filter holds no identity.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// DefaultFilter lists newest invoices first, twenty per page.
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}
