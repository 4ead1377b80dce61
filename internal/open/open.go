package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/linetalk/internal/index"
)

// OpenTalk opens the transcript behind talkKey in $EDITOR, positioned at
// the source line of hitCardID when the editor supports it.
func OpenTalk(db *index.DB, talkKey string, hitCardID int) error {
	t, err := db.GetTalkByKey(talkKey)
	if err != nil {
		return fmt.Errorf("get talk: %w", err)
	}
	if t == nil {
		return fmt.Errorf("talk not found: %s", talkKey)
	}

	if _, err := os.Stat(t.FilePath); err != nil {
		return fmt.Errorf("file not found: %s", t.FilePath)
	}

	lineNum, err := hitLine(db, talkKey, hitCardID)
	if err != nil {
		return err
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	cmd := editorCommand(editor, t.FilePath, lineNum)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func hitLine(db *index.DB, talkKey string, hitCardID int) (int, error) {
	if hitCardID < 0 {
		return 1, nil
	}
	cards, err := db.GetCards(talkKey)
	if err != nil {
		return 0, fmt.Errorf("get cards: %w", err)
	}
	for _, c := range cards {
		if c.CardID == hitCardID {
			return c.LineNumber, nil
		}
	}
	return 1, nil
}

func editorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		return exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"):
		return exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		return exec.Command(editor, filePath)
	}
}
