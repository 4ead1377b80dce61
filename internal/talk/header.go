package talk

import (
	"fmt"
	"strings"
	"time"
)

const (
	bom    = "\uFEFF"
	marker = "[LINE] "

	// savedAtLabel prefixes the second header line of newer exports.
	savedAtLabel      = "保存日時："
	savedAtLabelASCII = "保存日時:"
	savedAtLayout     = "2006/01/02 15:04 -07:00"
)

type Header struct {
	Title   string
	SavedAt *time.Time
	Lines   int // header lines consumed from the input
}

// ExtractHeader strips the export marker, takes the first line as the title
// and, when withSavedAt is set, requires a saved-at line right after it.
// The returned body starts at the first line following the header.
func ExtractHeader(text string, withSavedAt bool) (Header, string, error) {
	text = stripMarker(text)

	want := 1
	if withSavedAt {
		want = 2
	}
	parts := strings.SplitN(text, "\n", want+1)

	title := strings.TrimRight(parts[0], "\r")
	if strings.TrimSpace(title) == "" {
		return Header{}, "", fmt.Errorf("%w: missing title", ErrMalformedHeader)
	}
	h := Header{Title: title, Lines: 1}

	if withSavedAt {
		if len(parts) < 2 {
			return Header{}, "", fmt.Errorf("%w: missing saved-at line", ErrMalformedHeader)
		}
		savedAt, err := parseSavedAt(strings.TrimRight(parts[1], "\r"))
		if err != nil {
			return Header{}, "", err
		}
		h.SavedAt = &savedAt
		h.Lines = 2
	}

	body := ""
	if len(parts) > want {
		body = parts[want]
	}
	return h, body, nil
}

// stripMarker removes one leading BOM+marker occurrence. A marker without
// a BOM and a bare BOM are removed as well.
func stripMarker(text string) string {
	switch {
	case strings.HasPrefix(text, bom+marker):
		return text[len(bom+marker):]
	case strings.HasPrefix(text, marker):
		return text[len(marker):]
	default:
		return strings.TrimPrefix(text, bom)
	}
}

func parseSavedAt(line string) (time.Time, error) {
	var value string
	switch {
	case strings.HasPrefix(line, savedAtLabel):
		value = line[len(savedAtLabel):]
	case strings.HasPrefix(line, savedAtLabelASCII):
		value = line[len(savedAtLabelASCII):]
	default:
		return time.Time{}, fmt.Errorf("%w: missing saved-at line", ErrMalformedHeader)
	}

	s := strings.TrimSpace(value) + " " + offset
	t, err := time.Parse(savedAtLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: saved-at %q: %v", ErrMalformedTimestamp, value, err)
	}
	return t.In(jst), nil
}
