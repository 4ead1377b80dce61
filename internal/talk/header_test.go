package talk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHeader_Marker(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bom and marker", "\uFEFF[LINE] Friends\nbody", "Friends"},
		{"marker only", "[LINE] Friends\nbody", "Friends"},
		{"bom only", "\uFEFFFriends\nbody", "Friends"},
		{"no marker", "Friends\nbody", "Friends"},
		{"only one occurrence", "\uFEFF[LINE] [LINE] Friends\nbody", "[LINE] Friends"},
		{"crlf", "[LINE] Friends\r\nbody", "Friends"},
		{"utf-8 bom bytes", "\xef\xbb\xbf[LINE] Friends\nbody", "Friends"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, body, err := ExtractHeader(tt.text, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.Title)
			assert.Equal(t, "body", body)
			assert.Equal(t, 1, h.Lines)
		})
	}
}

func TestExtractHeader_TitleOnly(t *testing.T) {
	h, body, err := ExtractHeader("Friends", false)
	require.NoError(t, err)
	assert.Equal(t, "Friends", h.Title)
	assert.Empty(t, body)
}

func TestExtractHeader_SavedAt(t *testing.T) {
	h, body, err := ExtractHeader("[LINE] Friends\n保存日時：2024/12/31 23:05\n\n2025/01/01(水)", true)
	require.NoError(t, err)
	require.NotNil(t, h.SavedAt)
	assert.Equal(t, "2024-12-31T23:05:00+09:00", rfc(*h.SavedAt))
	assert.Equal(t, 2, h.Lines)
	assert.Equal(t, "\n2025/01/01(水)", body)
}

func TestExtractHeader_SavedAtASCIIColon(t *testing.T) {
	h, _, err := ExtractHeader("Friends\n保存日時:2024/12/31 23:05", true)
	require.NoError(t, err)
	require.NotNil(t, h.SavedAt)
	assert.Equal(t, "2024-12-31T23:05:00+09:00", rfc(*h.SavedAt))
}

func TestExtractHeader_SavedAtErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"missing line", "Friends", ErrMalformedHeader},
		{"wrong label", "Friends\nSaved: 2024/12/31 23:05", ErrMalformedHeader},
		{"bad date", "Friends\n保存日時：2024/12/32 23:05", ErrMalformedTimestamp},
		{"missing time", "Friends\n保存日時：2024/12/31", ErrMalformedTimestamp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ExtractHeader(tt.text, true)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
