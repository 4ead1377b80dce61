package talk

import (
	"fmt"
	"regexp"
	"strings"
)

// DateDetector recognizes date separator lines.
type DateDetector interface {
	Detect(line string) (Date, bool)
}

type patternDetector struct {
	re *regexp.Regexp
}

func (p patternDetector) Detect(line string) (Date, bool) {
	m := p.re.FindStringSubmatch(line)
	if m == nil {
		return Date{}, false
	}
	return Date{Year: m[1], Month: m[2], Day: m[3]}, true
}

var (
	// LineDetector matches a line consisting solely of YYYY/MM/DD(weekday).
	LineDetector DateDetector = patternDetector{regexp.MustCompile(`^(\d{4})/(\d{2})/(\d{2})\([^()\t]*\)$`)}

	// PrefixDetector matches any line starting with YYYY/MM/DD(.
	PrefixDetector DateDetector = patternDetector{regexp.MustCompile(`^(\d{4})/(\d{2})/(\d{2})\(`)}
)

// DetectorByName maps a config value to a detector. Empty means "line".
func DetectorByName(name string) (DateDetector, error) {
	switch name {
	case "", "line":
		return LineDetector, nil
	case "prefix":
		return PrefixDetector, nil
	default:
		return nil, fmt.Errorf("unknown date detection %q (want line or prefix)", name)
	}
}

// SplitBlocks partitions body into date blocks. Line numbers are 1-based
// and relative to body. Text before the first separator is dropped.
func SplitBlocks(body string, d DateDetector) []Block {
	var blocks []Block
	for i, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if date, ok := d.Detect(line); ok {
			blocks = append(blocks, Block{Date: date, Line: i + 1})
			continue
		}
		if len(blocks) == 0 {
			continue
		}
		cur := &blocks[len(blocks)-1]
		cur.Lines = append(cur.Lines, RawLine{Number: i + 1, Text: line})
	}
	return blocks
}
