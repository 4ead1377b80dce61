package emit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/linetalk/internal/talk"
)

func sampleTalk(t *testing.T) *talk.Talk {
	t.Helper()
	res, err := talk.Parse("\uFEFF[LINE] Friends Chat\n"+
		"2020/01/01(Wed)\n"+
		"10:00\tAlice\tHello\n"+
		"10:01\tBob\tHi\n"+
		"again\n"+
		"10:02\tMeeting reminder\n", talk.Options{})
	require.NoError(t, err)
	return &res.Talk
}

func wantDocument() Document {
	return Document{
		Title: "Friends Chat",
		Records: []Record{
			{Timestamp: "2020-01-01T10:00:00+09:00", Author: "Alice", Text: "Hello"},
			{Timestamp: "2020-01-01T10:01:00+09:00", Author: "Bob", Text: "Hi\nagain"},
			{Timestamp: "2020-01-01T10:02:00+09:00", Author: "LINE notification", Text: "Meeting reminder"},
		},
	}
}

func TestNewDocument(t *testing.T) {
	assert.Equal(t, wantDocument(), NewDocument(sampleTalk(t)))
}

func TestNewDocument_SavedAt(t *testing.T) {
	saved := time.Date(2020, 1, 2, 12, 34, 0, 0, time.FixedZone("JST", 9*60*60))
	doc := NewDocument(&talk.Talk{Title: "x", SavedAt: &saved})
	assert.Equal(t, "2020-01-02T12:34:00+09:00", doc.SavedAt)
	assert.NotNil(t, doc.Records)
	assert.Empty(t, doc.Records)
}

func TestMarshal_TOML(t *testing.T) {
	out, err := Marshal(wantDocument(), FormatTOML)
	require.NoError(t, err)
	assert.Contains(t, string(out), `title = "Friends Chat"`)
	assert.Contains(t, string(out), "[[records]]")
	assert.NotContains(t, string(out), "saved_at")
	assert.Equal(t, byte('\n'), out[len(out)-1])

	var got Document
	_, err = toml.Decode(string(out), &got)
	require.NoError(t, err)
	assert.Equal(t, wantDocument(), got)
}

func TestMarshal_YAML(t *testing.T) {
	out, err := Marshal(wantDocument(), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), out[len(out)-1])

	var got struct {
		Title   string `yaml:"title"`
		Records []struct {
			Author string `yaml:"author"`
			Text   string `yaml:"text"`
		} `yaml:"records"`
	}
	require.NoError(t, yaml.Unmarshal(out, &got))
	assert.Equal(t, "Friends Chat", got.Title)
	require.Len(t, got.Records, 3)
	assert.Equal(t, "Hi\nagain", got.Records[1].Text)
	assert.Equal(t, "LINE notification", got.Records[2].Author)
	assert.Contains(t, string(out), "2020-01-01T10:01:00+09:00")
}

func TestMarshal_JSON(t *testing.T) {
	out, err := Marshal(wantDocument(), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), out[len(out)-1])

	var got Document
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, wantDocument(), got)
}

func TestMarshal_UnknownFormat(t *testing.T) {
	_, err := Marshal(wantDocument(), Format("xml"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatTOML},
		{"toml", FormatTOML},
		{"YAML", FormatYAML},
		{"yml", FormatYAML},
		{"json", FormatJSON},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Friends Chat.toml", FileName("Friends Chat", FormatTOML))
	assert.Equal(t, "a_b_c.yaml", FileName(`a/b\c`, FormatYAML))
	assert.Equal(t, "__.json", FileName("..", FormatJSON))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, sampleTalk(t), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Friends Chat.toml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `title = "Friends Chat"`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWrite_MissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := Write(dir, sampleTalk(t), FormatTOML)
	assert.Error(t, err)
}
