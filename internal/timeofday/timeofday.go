package timeofday

import (
	"time"

	"github.com/fitpulse/gym-api/internal/httperr"
)

// Class windows are wall-clock "15:04" strings. Zero-padded values in
// this layout compare correctly as plain strings, which the schedule
// sorting relies on.

const Layout = "15:04"

func Valid(s string) bool {
	t, err := time.Parse(Layout, s)
	return err == nil && t.Format(Layout) == s
}

// Before reports whether a is strictly earlier than b. Both must be
// valid Layout strings.
func Before(a, b string) bool {
	return a < b
}

// ValidateWindow checks a class time window: both ends well-formed and
// start strictly before end.
func ValidateWindow(start, end string) error {
	if !Valid(start) || !Valid(end) {
		return httperr.ErrBusiness("invalid_time_window")
	}
	if !Before(start, end) {
		return httperr.ErrBusiness("invalid_time_window")
	}
	return nil
}
