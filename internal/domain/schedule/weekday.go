package schedule

import (
	"strings"

	"github.com/fitpulse/gym-api/internal/httperr"
)

// Weekday is the closed set of days a class can recur on. The display
// order below is the canonical one everywhere classes are grouped or
// sorted by day; it is deliberately not alphabetical.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

var ordered = []Weekday{
	Monday,
	Tuesday,
	Wednesday,
	Thursday,
	Friday,
	Saturday,
	Sunday,
}

// Weekdays returns the seven days in canonical order.
func Weekdays() []Weekday {
	out := make([]Weekday, len(ordered))
	copy(out, ordered)
	return out
}

// Index returns the position of d in the canonical order, or -1 for an
// unknown value.
func (d Weekday) Index() int {
	for i, w := range ordered {
		if w == d {
			return i
		}
	}
	return -1
}

func (d Weekday) Valid() bool {
	return d.Index() >= 0
}

// Less orders weekdays by the canonical sequence. Unknown values sort
// last so malformed rows never displace real ones.
func Less(a, b Weekday) bool {
	ai, bi := a.Index(), b.Index()
	if ai < 0 {
		return false
	}
	if bi < 0 {
		return true
	}
	return ai < bi
}

// Parse normalizes casing at the boundary and rejects anything outside
// the closed set.
func Parse(s string) (Weekday, error) {
	d := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", httperr.ErrBusiness("invalid_day_of_week")
	}
	return d, nil
}
