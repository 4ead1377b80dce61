package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/linetalk/internal/index"
	"github.com/Zuo-Peng/linetalk/internal/render"
	"github.com/Zuo-Peng/linetalk/internal/search"
)

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	talkKey string
	cardID  int
	content string
	hitLine int
	err     error
}

// loadPreviewCmd renders the talk preview off the UI goroutine.
func loadPreviewCmd(db *index.DB, r search.Result, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := render.RenderTalk(db, r.TalkKey, render.Options{
			HitCardID: r.CardID,
			Context:   -1,
			Width:     width,
			Query:     query,
		})
		return previewRenderedMsg{
			talkKey: r.TalkKey,
			cardID:  r.CardID,
			content: content,
			hitLine: hitLine,
			err:     err,
		}
	}
}

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanel
	return vp
}
