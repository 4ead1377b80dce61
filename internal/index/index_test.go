package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/linetalk/internal/talk"
)

const friendsChat = "\uFEFF[LINE] Friends Chat\n" +
	"2020/01/01(Wed)\n" +
	"10:00\tAlice\tHello\n" +
	"10:01\tBob\tHi\n" +
	"again\n" +
	"10:02\tMeeting reminder\n"

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "db", "linetalk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestTalkKey(t *testing.T) {
	assert.Equal(t, "friends", TalkKey("/root", "/root/friends.txt"))
	assert.Equal(t, "2020/work", TalkKey("/root", "/root/2020/work.txt"))
}

func TestIndexAll(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "friends.txt"), friendsChat)
	writeFile(t, filepath.Join(root, "broken.txt"), "Broken\n2020/01/01(Wed)\n10:00\tA\tB\tC\n")

	stats, err := IndexAll(db, root, talk.Options{})
	require.NoError(t, err)
	assert.Equal(t, Stats{Scanned: 2, Updated: 1, Errors: 1}, stats)

	n, err := db.TalkCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = db.CardCount()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	fts, err := db.FTSCount()
	require.NoError(t, err)
	assert.Equal(t, 3, fts)

	row, err := db.GetTalkByKey("friends")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "Friends Chat", row.Title)
	assert.Equal(t, "2020-01-01T10:00:00+09:00", row.FirstAt)
	assert.Equal(t, "2020-01-01T10:02:00+09:00", row.LastAt)
	assert.Equal(t, 3, row.CardCount)
	assert.Empty(t, row.SavedAt)

	cards, err := db.GetCards("friends")
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "Hi\nagain", cards[1].Text)
	assert.Equal(t, 4, cards[1].LineNumber)
	assert.Equal(t, "LINE notification", cards[2].Author)

	// second run skips the unchanged transcript
	stats, err = IndexAll(db, root, talk.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.Zero(t, stats.Updated)

	// removed files are pruned
	require.NoError(t, os.Remove(filepath.Join(root, "friends.txt")))
	stats, err = IndexAll(db, root, talk.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Pruned)

	row, err = db.GetTalkByKey("friends")
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestIndexAll_ChangedFile(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	path := filepath.Join(root, "friends.txt")
	writeFile(t, path, friendsChat)

	_, err := IndexAll(db, root, talk.Options{})
	require.NoError(t, err)

	writeFile(t, path, friendsChat+"10:03\tAlice\tBye\n")
	stats, err := IndexAll(db, root, talk.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)

	n, err := db.CardCount()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestGetCardsWindow(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	content := "Chat\n2020/01/01(Wed)\n"
	for _, hm := range []string{"10:00", "10:01", "10:02", "10:03", "10:04", "10:05"} {
		content += hm + "\tA\tmsg " + hm + "\n"
	}
	writeFile(t, filepath.Join(root, "chat.txt"), content)
	_, err := IndexAll(db, root, talk.Options{})
	require.NoError(t, err)

	cards, hitIdx, startPos, total, err := db.GetCardsWindow("chat", 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Equal(t, 2, startPos)
	assert.Equal(t, 1, hitIdx)
	require.Len(t, cards, 3)
	assert.Equal(t, 2, cards[0].CardID)
	assert.Equal(t, 4, cards[2].CardID)

	cards, hitIdx, startPos, _, err = db.GetCardsWindow("chat", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, startPos)
	assert.Equal(t, 0, hitIdx)
	assert.Len(t, cards, 3)

	cards, hitIdx, _, _, err = db.GetCardsWindow("chat", -1, 2)
	require.NoError(t, err)
	assert.Equal(t, -1, hitIdx)
	assert.Len(t, cards, 6)
}
