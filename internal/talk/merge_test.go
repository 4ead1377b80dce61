package talk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendContinuation(t *testing.T) {
	cards := []Card{
		{Author: "A", Text: "first"},
		{Author: "B", Text: "Hi"},
	}

	assert.True(t, AppendContinuation(cards, "again"))
	assert.True(t, AppendContinuation(cards, ""))
	assert.Equal(t, "first", cards[0].Text)
	assert.Equal(t, "Hi\nagain\n", cards[1].Text)
}

func TestAppendContinuation_NoCard(t *testing.T) {
	var cards []Card
	assert.False(t, AppendContinuation(cards, "orphan"))
	assert.Empty(t, cards)
}
