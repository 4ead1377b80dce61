package render

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/linetalk/internal/index"
	"github.com/Zuo-Peng/linetalk/internal/talk"
)

const (
	colorReset   = "\033[0m"
	colorNotice  = "\033[2;35m" // dim magenta for LINE notifications
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

// authorColors are cycled by author name so a speaker keeps one color.
var authorColors = []string{
	"\033[1;34m", // bold blue
	"\033[1;32m", // bold green
	"\033[1;36m", // bold cyan
	"\033[1;33m", // bold yellow
}

type Options struct {
	HitCardID int
	Context   int    // cards before/after hit to show
	Width     int    // wrap width (0 = no wrap)
	Query     string // search query for keyword highlighting
}

// fts5Operators are FTS5 operators that should not be highlighted as keywords.
var fts5Operators = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NEAR": true,
	"and": true, "or": true, "not": true, "near": true,
}

func authorColor(author string) string {
	if author == talk.NotificationAuthor {
		return colorNotice
	}
	h := fnv.New32a()
	h.Write([]byte(author))
	return authorColors[h.Sum32()%uint32(len(authorColors))]
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	var terms []string
	for _, t := range strings.Fields(query) {
		if !fts5Operators[t] {
			terms = append(terms, t)
		}
	}
	for _, term := range terms {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a line into pieces of at most maxWidth visible columns,
// skipping ANSI escape sequences when measuring.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth && visW > 0 {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// RenderTalk renders an archived talk and returns the content, the 0-based
// line of the hit card header (-1 if no hit), and any error.
func RenderTalk(db *index.DB, talkKey string, opts Options) (string, int, error) {
	if opts.Context == 0 {
		opts.Context = 10
	}
	if opts.Context < 0 {
		opts.Context = 1000000 // no limit
	}

	t, err := db.GetTalkByKey(talkKey)
	if err != nil {
		return "", -1, fmt.Errorf("get talk: %w", err)
	}
	if t == nil {
		return "", -1, fmt.Errorf("talk not found: %s", talkKey)
	}

	cards, hitIdx, startPos, totalCount, err := db.GetCardsWindow(talkKey, opts.HitCardID, opts.Context)
	if err != nil {
		return "", -1, fmt.Errorf("get cards: %w", err)
	}

	if totalCount == 0 {
		return "(empty talk)", -1, nil
	}

	skipAfter := totalCount - startPos - len(cards)

	var b strings.Builder
	hitLine := -1
	lineCount := 0

	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	header := fmt.Sprintf("--- %s [%s] ---", t.Title, talkKey)
	if t.SavedAt != "" {
		header = fmt.Sprintf("--- %s [%s] saved %s ---", t.Title, talkKey, t.SavedAt)
	}
	writeLine(colorDim + header + colorReset)

	if startPos > 0 {
		writeLine(fmt.Sprintf("%s... (%d messages before) ...%s", colorDim, startPos, colorReset))
	}

	prevDay := ""
	for i, c := range cards {
		if day := dayOf(c.Ts); day != prevDay {
			writeLine(fmt.Sprintf("%s===== %s =====%s", colorDim, day, colorReset))
			prevDay = day
		}

		isHit := i == hitIdx
		if isHit {
			hitLine = lineCount
			writeLine(fmt.Sprintf("%s>> %s %s <<%s", colorHit, clock(c.Ts), c.Author, colorReset))
		} else {
			writeLine(fmt.Sprintf("%s%s%s %s%s%s", colorDim, clock(c.Ts), colorReset, authorColor(c.Author), c.Author, colorReset))
		}

		text := highlightKeywords(c.Text, opts.Query)
		for _, tl := range strings.Split(indentLines(text, "  "), "\n") {
			writeLine(tl)
		}
	}

	if skipAfter > 0 {
		writeLine(fmt.Sprintf("%s... (%d messages after) ...%s", colorDim, skipAfter, colorReset))
	}

	return b.String(), hitLine, nil
}

// dayOf and clock slice an RFC 3339 timestamp.
func dayOf(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func clock(ts string) string {
	if len(ts) >= 16 {
		return ts[11:16]
	}
	return ts
}
