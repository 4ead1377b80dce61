package talk

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindMessage Kind = iota
	KindNotice
	KindContinuation
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindNotice:
		return "notice"
	case KindContinuation:
		return "continuation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Line is a classified transcript line.
type Line struct {
	Kind   Kind
	Time   string // HH:MM, empty for continuations
	Author string
	Text   string
}

// ClassifyLine interprets a non-empty line by its tab-separated field count:
// time/name/body is a message, time/body a notice, a single field continues
// the previous card.
func ClassifyLine(s string) (Line, error) {
	fields := strings.Split(s, "\t")
	var ln Line
	switch len(fields) {
	case 3:
		ln = Line{Kind: KindMessage, Time: fields[0], Author: fields[1], Text: fields[2]}
		if ln.Author == "" {
			return Line{}, fmt.Errorf("%w: empty author", ErrMalformedLine)
		}
	case 2:
		ln = Line{Kind: KindNotice, Time: fields[0], Author: NotificationAuthor, Text: fields[1]}
	case 1:
		return Line{Kind: KindContinuation, Text: fields[0]}, nil
	default:
		return Line{}, fmt.Errorf("%w: %d tab-separated fields", ErrMalformedLine, len(fields))
	}
	if ln.Text == "" {
		return Line{}, fmt.Errorf("%w: empty %s text", ErrMalformedLine, ln.Kind)
	}
	return ln, nil
}
