// Package search queries the message archive built by package index.
package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/Zuo-Peng/linetalk/internal/index"
)

type Result struct {
	TalkKey string
	CardID  int // -1 when the result is a whole talk
	Ts      string
	Title   string
	Author  string
	Snippet string
	Rank    float64
}

type Options struct {
	Query  string
	Author string // exact speaker name, "LINE notification" for notices
	Since  string // YYYY-MM-DD, compared against the RFC 3339 timestamp
	Limit  int
}

const (
	defaultLimit = 100
	// talks contribute several hits each before dedup
	overfetch = 3
)

// containsCJK reports whether s has characters the unicode61 tokenizer
// cannot split into words. Such queries fall back to substring matching.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
			return true
		}
	}
	return false
}

// makeSnippet cuts radius runes either side of the first case-insensitive
// match of query and marks the match with >>> <<<. Without a match it
// returns the head of text.
func makeSnippet(text, query string, radius int) string {
	runes := []rune(text)
	q := []rune(query)
	from := indexFold(runes, q)
	if from < 0 {
		if len(runes) > 2*radius {
			return string(runes[:2*radius]) + "..."
		}
		return text
	}

	to := from + len(q)
	lo, hi := max(from-radius, 0), min(to+radius, len(runes))

	var b strings.Builder
	if lo > 0 {
		b.WriteString("...")
	}
	b.WriteString(string(runes[lo:from]))
	b.WriteString(">>>" + string(runes[from:to]) + "<<<")
	b.WriteString(string(runes[to:hi]))
	if hi < len(runes) {
		b.WriteString("...")
	}
	return b.String()
}

// indexFold returns the rune index of the first case-insensitive occurrence
// of sub in s, or -1. Comparing rune by rune keeps the index valid for s
// even where lowercasing changes a character's encoded length.
func indexFold(s, sub []rune) int {
	if len(sub) == 0 {
		return -1
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j, r := range sub {
			if unicode.ToLower(s[i+j]) != unicode.ToLower(r) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// Search returns the best matching message of each talk, at most
// opts.Limit of them.
func Search(db *index.DB, opts Options) ([]Result, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	find := searchFTS
	if containsCJK(opts.Query) {
		find = searchLike
	}
	hits, err := find(db, opts, limit*overfetch)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var results []Result
	for _, h := range hits {
		if seen[h.TalkKey] {
			continue
		}
		seen[h.TalkKey] = true
		results = append(results, h)
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// where collects SQL conditions and their arguments.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	return strings.Join(w.conds, " AND ")
}

func cardFilters(w *where, opts Options) {
	if opts.Author != "" {
		w.add("c.author = ?", opts.Author)
	}
	if opts.Since != "" {
		w.add("c.ts >= ?", opts.Since)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func searchFTS(db *index.DB, opts Options, limit int) ([]Result, error) {
	w := &where{}
	w.add("cards_fts MATCH ?", opts.Query)
	cardFilters(w, opts)

	rows, err := db.Raw().Query(fmt.Sprintf(`
		SELECT c.talk_key, c.card_id, c.ts, t.title, c.author,
		       snippet(cards_fts, 0, '>>>', '<<<', '...', 40),
		       bm25(cards_fts) AS rank
		FROM cards_fts
		JOIN cards c ON c.rowid = cards_fts.rowid
		JOIN talks t ON t.talk_key = c.talk_key
		WHERE %s
		ORDER BY rank
		LIMIT ?`, w), append(w.args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return collect(rows, func(r *Result) []any {
		return []any{&r.TalkKey, &r.CardID, &r.Ts, &r.Title, &r.Author, &r.Snippet, &r.Rank}
	})
}

// searchLike matches substrings, newest message first.
func searchLike(db *index.DB, opts Options, limit int) ([]Result, error) {
	w := &where{}
	w.add(`c.text LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(opts.Query)+"%")
	cardFilters(w, opts)

	rows, err := db.Raw().Query(fmt.Sprintf(`
		SELECT c.talk_key, c.card_id, c.ts, t.title, c.author, c.text
		FROM cards c
		JOIN talks t ON t.talk_key = c.talk_key
		WHERE %s
		ORDER BY c.ts DESC
		LIMIT ?`, w), append(w.args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	results, err := collect(rows, func(r *Result) []any {
		return []any{&r.TalkKey, &r.CardID, &r.Ts, &r.Title, &r.Author, &r.Snippet}
	})
	for i := range results {
		results[i].Snippet = makeSnippet(results[i].Snippet, opts.Query, 30)
	}
	return results, err
}

// ListAll lists archived talks, most recently active first. A non-empty
// opts.Query filters by title.
func ListAll(db *index.DB, opts Options) ([]Result, error) {
	w := &where{}
	if opts.Query != "" {
		w.add(`title LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(opts.Query)+"%")
	}

	q := "SELECT talk_key, last_at, title, card_count FROM talks"
	if len(w.conds) > 0 {
		q += " WHERE " + w.String()
	}
	q += " ORDER BY last_at DESC"
	if opts.Limit > 0 {
		w.args = append(w.args, opts.Limit)
		q += " LIMIT ?"
	}

	rows, err := db.Raw().Query(q, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	var count int
	results, err := collect(rows, func(r *Result) []any {
		return []any{&r.TalkKey, &r.Ts, &r.Title, &count}
	}, func(r *Result) {
		r.CardID = -1
		r.Snippet = fmt.Sprintf("%d messages", count)
	})
	return results, err
}

// collect scans every row into a Result using the destinations from dest,
// then applies each fix in turn.
func collect(rows *sql.Rows, dest func(*Result) []any, fixes ...func(*Result)) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(dest(&r)...); err != nil {
			return nil, err
		}
		for _, fix := range fixes {
			fix(&r)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
