package talk

import "time"

// NotificationAuthor is the author assigned to system notices.
const NotificationAuthor = "LINE notification"

// Talk is a parsed transcript: its title and messages in transcript order.
type Talk struct {
	Title   string
	SavedAt *time.Time // only set when the saved-at header is extracted
	Cards   []Card
}

// Card is one message or notice, with continuation lines already merged
// into Text.
type Card struct {
	Timestamp time.Time
	Author    string
	Text      string
	Line      int // 1-based transcript line that started the card
}

// Date is a block date as captured from its separator line.
type Date struct {
	Year  string
	Month string
	Day   string
}

func (d Date) String() string {
	return d.Year + "/" + d.Month + "/" + d.Day
}

// RawLine is a body line with its 1-based number.
type RawLine struct {
	Number int
	Text   string
}

// Block is the run of lines under one date separator.
type Block struct {
	Date  Date
	Line  int // line number of the separator
	Lines []RawLine
}

// Regression records a block whose date precedes the block before it.
type Regression struct {
	Line int
	Prev Date
	Date Date
}

// Meta counts what the parser saw. Lines counts non-empty lines inside
// date blocks.
type Meta struct {
	Lines         int
	Blocks        int
	Messages      int
	Notices       int
	Continuations int
	Orphans       int
	Regressions   []Regression
}

type ParseResult struct {
	Talk Talk
	Meta Meta
}
