package talk

// AppendContinuation folds text into the most recent card, separated by a
// newline. It reports false, leaving cards untouched, when there is no card
// to continue.
func AppendContinuation(cards []Card, text string) bool {
	if len(cards) == 0 {
		return false
	}
	last := &cards[len(cards)-1]
	last.Text += "\n" + text
	return true
}
