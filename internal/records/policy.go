package records

import "github.com/blackwell-systems/shelflog/internal/catalog"

// SizePolicy derives the page size from an environment signal, here the
// available width in pixels. It keeps paging logic free of any display API.
type SizePolicy interface {
	PageSize(widthPx int) int
}

// BreakpointPolicy picks Compact at or below Breakpoint and Wide above it.
type BreakpointPolicy struct {
	Breakpoint int
	Compact    int
	Wide       int
}

// DefaultPolicy is 6 items up to 768px, 10 above.
func DefaultPolicy() BreakpointPolicy {
	return BreakpointPolicy{Breakpoint: 768, Compact: catalog.SizeCompact, Wide: catalog.SizeWide}
}

// PageSize implements SizePolicy.
func (p BreakpointPolicy) PageSize(widthPx int) int {
	if widthPx <= p.Breakpoint {
		return p.Compact
	}
	return p.Wide
}
