package open

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/linetalk/internal/index"
	"github.com/Zuo-Peng/linetalk/internal/talk"
)

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		editor string
		want   []string
	}{
		{"nvim", []string{"nvim", "+7", "chat.txt"}},
		{"code", []string{"code", "--goto", "chat.txt:7"}},
		{"less", []string{"less", "+7", "chat.txt"}},
		{"nano", []string{"nano", "chat.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.editor, func(t *testing.T) {
			assert.Equal(t, tt.want, editorCommand(tt.editor, "chat.txt", 7).Args)
		})
	}
}

func TestHitLine(t *testing.T) {
	root := t.TempDir()
	content := "Chat\n2020/01/01(Wed)\n\n10:00\tA\tone\n10:01\tB\ttwo\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "chat.txt"), []byte(content), 0o644))

	db, err := index.OpenDB(filepath.Join(t.TempDir(), "linetalk.db"))
	require.NoError(t, err)
	defer db.Close()
	_, err = index.IndexAll(db, root, talk.Options{})
	require.NoError(t, err)

	line, err := hitLine(db, "chat", 1)
	require.NoError(t, err)
	assert.Equal(t, 5, line)

	line, err = hitLine(db, "chat", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, line)
}

func TestOpenTalk_NotFound(t *testing.T) {
	db, err := index.OpenDB(filepath.Join(t.TempDir(), "linetalk.db"))
	require.NoError(t, err)
	defer db.Close()

	assert.ErrorContains(t, OpenTalk(db, "missing", -1), "talk not found")
}
