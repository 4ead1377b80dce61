package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/linetalk/internal/index"
	"github.com/Zuo-Peng/linetalk/internal/talk"
)

func setupDB(t *testing.T) *index.DB {
	t.Helper()
	root := t.TempDir()
	content := "[LINE] Friends Chat\n" +
		"2020/01/01(Wed)\n" +
		"10:00\tAlice\tHello\n" +
		"10:01\tBob\tHi\n" +
		"again\n" +
		"2020/01/02(Thu)\n" +
		"10:02\tMeeting reminder\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "friends.txt"), []byte(content), 0o644))

	db, err := index.OpenDB(filepath.Join(t.TempDir(), "linetalk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = index.IndexAll(db, root, talk.Options{})
	require.NoError(t, err)
	return db
}

func TestRenderTalk(t *testing.T) {
	db := setupDB(t)

	out, hitLine, err := RenderTalk(db, "friends", Options{HitCardID: 1, Context: -1})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Greater(t, hitLine, 0)
	assert.Contains(t, lines[hitLine], ">> 10:01 Bob <<")
	assert.Contains(t, out, "  Hi\n  again\n")
	assert.Contains(t, out, "===== 2020-01-01 =====")
	assert.Contains(t, out, "===== 2020-01-02 =====")
	assert.Contains(t, out, talk.NotificationAuthor)
}

func TestRenderTalk_Window(t *testing.T) {
	db := setupDB(t)

	out, _, err := RenderTalk(db, "friends", Options{HitCardID: 0, Context: 1})
	require.NoError(t, err)
	assert.Contains(t, out, "(1 messages after)")
	assert.NotContains(t, out, "Meeting reminder")
}

func TestRenderTalk_NotFound(t *testing.T) {
	db := setupDB(t)

	_, _, err := RenderTalk(db, "missing", Options{HitCardID: -1})
	assert.ErrorContains(t, err, "talk not found")
}

func TestHighlightKeywords(t *testing.T) {
	got := highlightKeywords("Hello and hello", "hello AND")
	assert.Equal(t, colorBoldRed+"Hello"+colorReset+" and "+colorBoldRed+"hello"+colorReset, got)
	assert.Equal(t, "text", highlightKeywords("text", ""))
}

func TestWrapLine(t *testing.T) {
	assert.Equal(t, []string{"abc", "def", "g"}, wrapLine("abcdefg", 3))
	assert.Equal(t, []string{"あい", "う"}, wrapLine("あいう", 4))
	assert.Equal(t, []string{colorDim + "ab", "c" + colorReset}, wrapLine(colorDim+"abc"+colorReset, 2))
	assert.Equal(t, []string{"whole"}, wrapLine("whole", 0))
	assert.Equal(t, []string{""}, wrapLine("", 5))
}

func TestAuthorColor(t *testing.T) {
	assert.Equal(t, colorNotice, authorColor(talk.NotificationAuthor))
	assert.Equal(t, authorColor("Alice"), authorColor("Alice"))
}
