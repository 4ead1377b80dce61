package talk

import (
	"fmt"
	"os"
)

type Options struct {
	SavedAt   bool         // require and parse the saved-at header line
	Detection DateDetector // nil means LineDetector
}

// ParseFile reads the whole transcript before parsing it.
func ParseFile(filePath string, opts Options) (*ParseResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}
	return Parse(string(data), opts)
}

// Parse converts a transcript into a Talk. Any malformed header, line or
// timestamp aborts the whole conversion.
func Parse(text string, opts Options) (*ParseResult, error) {
	detect := opts.Detection
	if detect == nil {
		detect = LineDetector
	}

	header, body, err := ExtractHeader(text, opts.SavedAt)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Talk: Talk{
			Title:   header.Title,
			SavedAt: header.SavedAt,
		},
	}

	blocks := SplitBlocks(body, detect)
	result.Meta.Blocks = len(blocks)

	for i, b := range blocks {
		if i > 0 && b.Date.String() < blocks[i-1].Date.String() {
			result.Meta.Regressions = append(result.Meta.Regressions, Regression{
				Line: b.Line + header.Lines,
				Prev: blocks[i-1].Date,
				Date: b.Date,
			})
		}

		for _, raw := range b.Lines {
			if raw.Text == "" {
				continue
			}
			lineNum := raw.Number + header.Lines
			result.Meta.Lines++

			ln, err := ClassifyLine(raw.Text)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}

			switch ln.Kind {
			case KindContinuation:
				result.Meta.Continuations++
				if !AppendContinuation(result.Talk.Cards, ln.Text) {
					result.Meta.Orphans++
				}
				continue
			case KindMessage:
				result.Meta.Messages++
			case KindNotice:
				result.Meta.Notices++
			}

			ts, err := BuildTimestamp(b.Date, ln.Time)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			result.Talk.Cards = append(result.Talk.Cards, Card{
				Timestamp: ts,
				Author:    ln.Author,
				Text:      ln.Text,
				Line:      lineNum,
			})
		}
	}

	return result, nil
}
