package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/linetalk/internal/index"
	"github.com/Zuo-Peng/linetalk/internal/search"
)

const typingPause = 200 * time.Millisecond

type tuiMode int

const (
	modeSearch tuiMode = iota
	modeList
)

func (m tuiMode) placeholder() string {
	if m == modeList {
		return "Filter talks by title..."
	}
	return "Search messages..."
}

type searchResultMsg struct {
	mode    tuiMode
	query   string
	author  string
	results []search.Result
	err     error
}

type typingPauseMsg struct {
	query string
}

type model struct {
	db      *index.DB
	opts    search.Options
	mode    tuiMode
	query   string
	authors []string // speakers seen in the last unfiltered search

	results []search.Result
	cursor  int
	offset  int

	input      textinput.Model
	preview    viewport.Model
	previewKey string

	width, height int
	ready         bool
	quitting      bool
	selected      *search.Result
}

func newModel(db *index.DB, mode tuiMode, query string, opts search.Options) model {
	in := textinput.New()
	in.Prompt = "> "
	in.PromptStyle = stylePrompt
	in.TextStyle = styleQuery
	in.Placeholder = mode.placeholder()
	in.CharLimit = 256
	in.SetValue(query)
	in.Focus()

	return model{
		db:      db,
		opts:    opts,
		mode:    mode,
		query:   query,
		input:   in,
		preview: viewport.New(0, 0),
	}
}

// Run opens the message search panel and blocks until it closes. The chosen
// message is copied to the clipboard.
func Run(db *index.DB, query string, opts search.Options) error {
	return run(db, newModel(db, modeSearch, query, opts))
}

// RunList opens the panel in talk listing mode.
func RunList(db *index.DB, opts search.Options) error {
	return run(db, newModel(db, modeList, "", opts))
}

func run(db *index.DB, m model) error {
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm := final.(model); fm.selected != nil {
		return copySelection(db, *fm.selected)
	}
	return nil
}

// copySelection puts the chosen message, or the transcript path of a whole
// talk, on the clipboard. Without a clipboard it prints to stdout.
func copySelection(db *index.DB, r search.Result) error {
	text, err := selectionText(db, r)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(text); err != nil {
		fmt.Println(text)
		return nil
	}
	fmt.Printf("Copied: %s\n", firstLine(text))
	return nil
}

func selectionText(db *index.DB, r search.Result) (string, error) {
	if r.CardID < 0 {
		t, err := db.GetTalkByKey(r.TalkKey)
		if err != nil {
			return "", fmt.Errorf("get talk: %w", err)
		}
		if t == nil {
			return "", fmt.Errorf("talk not found: %s", r.TalkKey)
		}
		return t.FilePath, nil
	}

	cards, hit, _, _, err := db.GetCardsWindow(r.TalkKey, r.CardID, 0)
	if err != nil {
		return "", fmt.Errorf("get card: %w", err)
	}
	if hit < 0 {
		return "", fmt.Errorf("card not found: %s:%d", r.TalkKey, r.CardID)
	}
	c := cards[hit]
	return fmt.Sprintf("[%s] %s: %s", c.Ts, c.Author, c.Text), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.reload())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		l := m.layout()
		m.preview = newViewport(l.previewW, l.panelH)
		m.previewKey = ""
		return m, m.loadCurrentPreview()
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case typingPauseMsg:
		if msg.query != m.query {
			return m, nil
		}
		return m, m.reload()
	case searchResultMsg:
		return m.applyResults(msg)
	case previewRenderedMsg:
		return m.applyPreview(msg), nil
	}
	return m, nil
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	panelH := m.layout().panelH

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Choose):
		if m.cursor < len(m.results) {
			r := m.results[m.cursor]
			m.selected = &r
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, keys.Up):
		return m.moveCursor(m.cursor - 1)

	case key.Matches(msg, keys.Down):
		return m.moveCursor(m.cursor + 1)

	case key.Matches(msg, keys.SwitchMode):
		if m.mode == modeList {
			m.mode = modeSearch
		} else {
			m.mode = modeList
		}
		m.input.Placeholder = m.mode.placeholder()
		return m, m.reload()

	case key.Matches(msg, keys.NextAuthor):
		if m.mode != modeSearch || len(m.authors) == 0 {
			return m, nil
		}
		m.opts.Author = nextAuthor(m.authors, m.opts.Author)
		return m, m.reload()

	case key.Matches(msg, keys.HalfUp):
		m.preview.LineUp(panelH / 2)
		return m, nil
	case key.Matches(msg, keys.HalfDown):
		m.preview.LineDown(panelH / 2)
		return m, nil
	case key.Matches(msg, keys.PageUp):
		m.preview.LineUp(panelH)
		return m, nil
	case key.Matches(msg, keys.PageDown):
		m.preview.LineDown(panelH)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.query {
		m.query = q
		return m, tea.Batch(cmd, waitForTypingPause(q))
	}
	return m, cmd
}

func (m model) moveCursor(to int) (tea.Model, tea.Cmd) {
	if to < 0 || to >= len(m.results) || to == m.cursor {
		return m, nil
	}
	m.cursor = to
	m.adjustListScroll(m.layout().panelH)
	return m, m.loadCurrentPreview()
}

func (m model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready || len(m.results) == 0 {
		return m, nil
	}

	region, item := m.hitTest(msg.X, msg.Y)
	wheel := msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown

	switch region {
	case regionList:
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			if m.offset > 0 {
				m.offset--
			}
		case msg.Button == tea.MouseButtonWheelDown:
			if m.offset < len(m.results)-m.layout().panelH/linesPerItem {
				m.offset++
			}
		case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			return m.moveCursor(item)
		}
	case regionPreview:
		if wheel {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) applyResults(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if msg.mode != m.mode || msg.query != m.query || msg.author != m.opts.Author {
		return m, nil
	}
	m.cursor, m.offset = 0, 0
	m.previewKey = ""
	m.results = msg.results
	if msg.err != nil {
		m.results = nil
		m.preview.SetContent("Error: " + msg.err.Error())
		return m, nil
	}
	if m.mode == modeSearch && msg.author == "" {
		m.authors = distinctAuthors(msg.results)
	}
	if len(m.results) == 0 {
		m.preview.SetContent("")
		return m, nil
	}
	return m, m.loadCurrentPreview()
}

func (m model) applyPreview(msg previewRenderedMsg) model {
	k := previewCacheKey(msg.talkKey, msg.cardID)
	if k == m.previewKey {
		return m
	}
	if m.cursor < len(m.results) {
		r := m.results[m.cursor]
		if k != previewCacheKey(r.TalkKey, r.CardID) {
			return m
		}
	}
	switch {
	case msg.err != nil:
		m.preview.SetContent("Preview error: " + msg.err.Error())
	default:
		m.preview.SetContent(msg.content)
		if msg.hitLine > 0 {
			m.preview.SetYOffset(msg.hitLine)
		} else {
			m.preview.GotoTop()
		}
	}
	m.previewKey = k
	return m
}

func distinctAuthors(results []search.Result) []string {
	seen := make(map[string]bool)
	var authors []string
	for _, r := range results {
		if r.Author == "" || seen[r.Author] {
			continue
		}
		seen[r.Author] = true
		authors = append(authors, r.Author)
	}
	return authors
}

// nextAuthor cycles "" -> authors[0] -> ... -> authors[n-1] -> "".
func nextAuthor(authors []string, current string) string {
	if current == "" {
		return authors[0]
	}
	for i, a := range authors {
		if a == current && i+1 < len(authors) {
			return authors[i+1]
		}
	}
	return ""
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}
	l := m.layout()

	list := stylePanel.
		Width(l.listW).
		Height(l.panelH).
		Render(m.renderList(l.listW, l.panelH))

	m.preview.Width = l.previewW
	m.preview.Height = l.panelH
	preview := styleFocusedPanel.
		Width(l.previewW).
		Height(l.panelH).
		Render(m.preview.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.input.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, list, preview),
		m.statusBar(),
	)
}

// layout holds the panel sizes for the current terminal size.
type layout struct {
	listW, previewW, panelH int
}

// Borders take two columns per panel; the input row, the status bar and the
// panel borders take six rows.
func (m model) layout() layout {
	l := layout{listW: 40, previewW: 60, panelH: 20}
	if m.width > 0 {
		l.listW = max(m.width*38/100-2, 20)
		l.previewW = max(m.width-l.listW-4, 20)
	}
	if m.height > 0 {
		l.panelH = max(m.height-6, 5)
	}
	return l
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps a mouse position to a panel and, inside the list, the index
// of the result under it.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	const top = 2 // input row and top border
	l := m.layout()
	if y < top || y >= top+l.panelH {
		return regionNone, -1
	}
	switch {
	case x >= 1 && x <= l.listW:
		return regionList, m.offset + (y-top)/linesPerItem
	case x > l.listW+2:
		return regionPreview, -1
	}
	return regionNone, -1
}

func (m model) statusBar() string {
	noun := "messages"
	if m.mode == modeList {
		noun = "talks"
	}
	parts := []string{fmt.Sprintf("%d %s", len(m.results), noun)}
	if m.opts.Author != "" {
		parts = append(parts, "from "+m.opts.Author)
	}
	parts = append(parts, "Tab talks/messages")
	if m.mode == modeSearch {
		parts = append(parts, "C-a author")
	}
	parts = append(parts, "C-u/C-d scroll", "Enter copy", "Esc quit")
	return styleStatusBar.Render(strings.Join(parts, " · "))
}

// reload reruns the query for the current mode.
func (m model) reload() tea.Cmd {
	db, opts, mode := m.db, m.opts, m.mode
	opts.Query = m.query
	return func() tea.Msg {
		msg := searchResultMsg{mode: mode, query: opts.Query, author: opts.Author}
		switch {
		case mode == modeList:
			msg.results, msg.err = search.ListAll(db, opts)
		case opts.Query != "":
			msg.results, msg.err = search.Search(db, opts)
		}
		return msg
	}
}

func waitForTypingPause(query string) tea.Cmd {
	return tea.Tick(typingPause, func(time.Time) tea.Msg {
		return typingPauseMsg{query: query}
	})
}

func (m model) loadCurrentPreview() tea.Cmd {
	if m.cursor >= len(m.results) {
		return nil
	}
	r := m.results[m.cursor]
	if previewCacheKey(r.TalkKey, r.CardID) == m.previewKey {
		return nil
	}
	return loadPreviewCmd(m.db, r, m.query, m.layout().previewW)
}

func previewCacheKey(talkKey string, cardID int) string {
	return fmt.Sprintf("%s:%d", talkKey, cardID)
}
