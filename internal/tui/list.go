package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/linetalk/internal/search"
	"github.com/Zuo-Peng/linetalk/internal/talk"
)

// linesPerItem is the number of rows each result takes in the list.
const linesPerItem = 2

func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		empty := "No messages"
		if m.mode == modeList {
			empty = "No talks archived"
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styleSnippet.Render(empty))
	}

	rows := make([]string, 0, height)
	for i := m.offset; i < len(m.results) && len(rows)+linesPerItem <= height; i++ {
		rows = append(rows, formatResultLine(m.results[i], width, i == m.cursor)...)
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

// formatResultLine renders one result in two rows. A message hit shows
//
//	MM-DD HH:MM author  talk title
//	    snippet
//
// and a whole talk shows its title over its message count.
func formatResultLine(r search.Result, width int, selected bool) []string {
	var head string
	if r.CardID < 0 {
		head = fit(oneLine(r.Title), width-2)
	} else {
		when := r.Ts
		if len(when) >= 16 {
			when = when[5:10] + " " + when[11:16]
		}
		who := r.Author
		style := styleAuthor
		if who == talk.NotificationAuthor {
			who, style = "notice", styleNotice
		}
		rest := width - 2 - runewidth.StringWidth(when) - runewidth.StringWidth(who) - 4
		head = when + " " + style.Render(who) + "  " + fit(oneLine(r.Title), rest)
	}

	if selected {
		head = styleCursor.Render("> ") + head
	} else {
		head = "  " + head
	}

	snippet := strings.NewReplacer(">>>", "", "<<<", "").Replace(oneLine(r.Snippet))
	return []string{head, "    " + styleSnippet.Render(fit(snippet, width-4))}
}

func oneLine(s string) string {
	return strings.NewReplacer("\n", " ", "\t", " ").Replace(s)
}

// fit truncates s to at most w terminal columns.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > w {
		return runewidth.Truncate(s, w, "")
	}
	return s
}

// adjustListScroll keeps the cursor inside the visible part of the list.
func (m *model) adjustListScroll(listHeight int) {
	visible := max(listHeight/linesPerItem, 1)
	switch {
	case m.cursor < m.offset:
		m.offset = m.cursor
	case m.cursor >= m.offset+visible:
		m.offset = m.cursor - visible + 1
	}
}
