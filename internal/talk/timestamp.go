package talk

import (
	"fmt"
	"regexp"
	"time"
)

// Exports are always written in Japan Standard Time.
const (
	offset          = "+09:00"
	timestampLayout = "2006/01/02 15:04:05 -07:00"
)

var jst = time.FixedZone("JST", 9*60*60)

// time.Parse lets a layout space match several spaces, so the clock is
// checked for exactly two-digit hours and minutes first.
var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// BuildTimestamp combines a block date with a line's HH:MM at +09:00.
// Parsing is strict: nothing is defaulted.
func BuildTimestamp(d Date, hhmm string) (time.Time, error) {
	if !clockPattern.MatchString(hhmm) {
		return time.Time{}, fmt.Errorf("%w: clock %q", ErrMalformedTimestamp, hhmm)
	}
	s := fmt.Sprintf("%s %s:00 %s", d, hhmm, offset)
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrMalformedTimestamp, s, err)
	}
	return t.In(jst), nil
}
