package index

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zuo-Peng/linetalk/internal/logger"
	"github.com/Zuo-Peng/linetalk/internal/scan"
	"github.com/Zuo-Peng/linetalk/internal/talk"
)

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors)
}

// TalkKey derives the archive key of a transcript from its path under root.
func TalkKey(root, filePath string) string {
	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		rel = filePath
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
}

// IndexAll loads every transcript under root into db. Transcripts that fail
// to parse are counted and skipped; unchanged files are not re-parsed.
func IndexAll(db *DB, root string, opts talk.Options) (Stats, error) {
	var stats Stats

	files, err := scan.ScanRoot(root)
	if err != nil {
		return stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(files)

	// track which files we see, for pruning
	seenKeys := make(map[string]struct{})

	for _, fi := range files {
		key := TalkKey(root, fi.Path)
		seenKeys[key] = struct{}{}

		needs, err := needsUpdate(db, key, fi.Mtime, fi.Size)
		if err != nil {
			stats.Errors++
			continue
		}
		if !needs {
			stats.Skipped++
			continue
		}

		result, err := talk.ParseFile(fi.Path, opts)
		if err != nil {
			stats.Errors++
			logger.Warn("parse %s: %v", fi.Path, err)
			continue
		}
		for _, r := range result.Meta.Regressions {
			logger.Warn("%s: line %d: date %s precedes %s", fi.Path, r.Line, r.Date, r.Prev)
		}

		if err := indexTalk(db, key, fi, &result.Talk); err != nil {
			stats.Errors++
			logger.Warn("index %s: %v", fi.Path, err)
			continue
		}
		logger.Debug("indexed %s (%d cards)", key, len(result.Talk.Cards))
		stats.Updated++
	}

	// prune talks whose files no longer exist
	pruned, err := pruneTalks(db, seenKeys)
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	stats.Pruned = pruned

	return stats, nil
}

func needsUpdate(db *DB, talkKey string, mtime, size int64) (bool, error) {
	info, err := db.GetTalkInfo(talkKey)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // new talk
	}
	return info.Mtime != mtime || info.Size != size, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func indexTalk(db *DB, key string, fi scan.FileInfo, t *talk.Talk) error {
	// delete old data first
	if err := db.DeleteTalk(key); err != nil {
		return err
	}

	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var savedAt, firstAt, lastAt string
	if t.SavedAt != nil {
		savedAt = formatTime(*t.SavedAt)
	}
	if n := len(t.Cards); n > 0 {
		firstAt = formatTime(t.Cards[0].Timestamp)
		lastAt = formatTime(t.Cards[n-1].Timestamp)
	}

	_, err = tx.Exec(
		`INSERT INTO talks (talk_key, file_path, title, saved_at, first_at, last_at, card_count, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key, fi.Path, t.Title, savedAt, firstAt, lastAt, len(t.Cards), fi.Mtime, fi.Size,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO cards (talk_key, card_id, ts, author, text, line_number)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, c := range t.Cards {
		if _, err := stmt.Exec(key, i, formatTime(c.Timestamp), c.Author, c.Text, c.Line); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func pruneTalks(db *DB, seenKeys map[string]struct{}) (int, error) {
	allKeys, err := db.AllTalkKeys()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for key := range allKeys {
		if _, ok := seenKeys[key]; !ok {
			if err := db.DeleteTalk(key); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}
