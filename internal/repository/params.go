package repository

// ListParams carries pagination, search and active-flag filtering shared by
// every list query.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Active *bool
}

// Normalize clamps page/limit to sane values.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset returns the row offset for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
