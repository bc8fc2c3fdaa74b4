package gpdf

import "fmt"

// Location identifies where in a document a match was found: a 1-based
// page number when the backend reports page boundaries, or a fractional
// position through the document text when it cannot. Exactly one of the
// two is populated; a fractional position is never rounded into a page
// number.
type Location struct {
	page     int
	fraction float64
}

// PageLocation returns the Location of the page with the given 0-based
// index.
func PageLocation(pageIndex int) Location {
	return Location{page: pageIndex + 1}
}

// FractionLocation returns the Location offset/total of the way through a
// document whose page boundaries are unknown. total <= 0 yields position
// zero.
func FractionLocation(offset, total int) Location {
	l := Location{page: 0}
	if total > 0 {
		l.fraction = float64(offset) / float64(total)
	}
	return l
}

// Page returns the 1-based page number and whether one is known.
func (l Location) Page() (int, bool) {
	return l.page, l.page > 0
}

// Fraction returns the position in [0,1]. It is meaningful only when no
// page number is known.
func (l Location) Fraction() float64 {
	return l.fraction
}

// String renders the location the way the console output prints it:
// "page 3", or "41.2%" when only a fractional position is known.
func (l Location) String() string {
	if l.page > 0 {
		return fmt.Sprintf("page %d", l.page)
	}
	return fmt.Sprintf("%.1f%%", l.fraction*100)
}
