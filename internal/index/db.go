package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS talks (
    talk_key    TEXT PRIMARY KEY,
    file_path   TEXT NOT NULL,
    title       TEXT NOT NULL,
    saved_at    TEXT NOT NULL DEFAULT '',
    first_at    TEXT NOT NULL DEFAULT '',
    last_at     TEXT NOT NULL DEFAULT '',
    card_count  INTEGER NOT NULL DEFAULT 0,
    mtime       INTEGER NOT NULL DEFAULT 0,
    size        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS cards (
    talk_key    TEXT NOT NULL,
    card_id     INTEGER NOT NULL,
    ts          TEXT NOT NULL,
    author      TEXT NOT NULL,
    text        TEXT NOT NULL,
    line_number INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (talk_key, card_id)
);

CREATE VIRTUAL TABLE IF NOT EXISTS cards_fts USING fts5(
    text,
    content=cards,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS cards_ai AFTER INSERT ON cards BEGIN
    INSERT INTO cards_fts(rowid, text) VALUES (new.rowid, new.text);
END;

CREATE TRIGGER IF NOT EXISTS cards_ad AFTER DELETE ON cards BEGIN
    INSERT INTO cards_fts(cards_fts, rowid, text) VALUES('delete', old.rowid, old.text);
END;

CREATE TRIGGER IF NOT EXISTS cards_au AFTER UPDATE ON cards BEGIN
    INSERT INTO cards_fts(cards_fts, rowid, text) VALUES('delete', old.rowid, old.text);
    INSERT INTO cards_fts(rowid, text) VALUES (new.rowid, new.text);
END;

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	d := &DB{db: db}
	d.migrateSchemaVersion()

	return d, nil
}

// schemaVersion should be bumped whenever transcript parsing changes
// to force a full re-index.
const schemaVersion = "1"

func (d *DB) migrateSchemaVersion() {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err != nil || ver != schemaVersion {
		// force re-index by resetting all talk mtime/size to 0
		d.db.Exec("UPDATE talks SET mtime = 0, size = 0")
		d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	}
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

type TalkInfo struct {
	Mtime int64
	Size  int64
}

func (d *DB) GetTalkInfo(talkKey string) (*TalkInfo, error) {
	var info TalkInfo
	err := d.db.QueryRow(
		"SELECT mtime, size FROM talks WHERE talk_key = ?",
		talkKey,
	).Scan(&info.Mtime, &info.Size)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (d *DB) AllTalkKeys() (map[string]struct{}, error) {
	rows, err := d.db.Query("SELECT talk_key FROM talks")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys[k] = struct{}{}
	}
	return keys, rows.Err()
}

func (d *DB) DeleteTalk(talkKey string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cards WHERE talk_key = ?", talkKey); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM talks WHERE talk_key = ?", talkKey); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) TalkCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM talks").Scan(&n)
	return n, err
}

func (d *DB) CardCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&n)
	return n, err
}

// FTSCount returns the number of rows in the full-text index.
func (d *DB) FTSCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM cards_fts").Scan(&n)
	return n, err
}

type TalkRow struct {
	TalkKey   string
	FilePath  string
	Title     string
	SavedAt   string
	FirstAt   string
	LastAt    string
	CardCount int
}

func (d *DB) GetTalkByKey(talkKey string) (*TalkRow, error) {
	var t TalkRow
	err := d.db.QueryRow(
		"SELECT talk_key, file_path, title, saved_at, first_at, last_at, card_count FROM talks WHERE talk_key = ?",
		talkKey,
	).Scan(&t.TalkKey, &t.FilePath, &t.Title, &t.SavedAt, &t.FirstAt, &t.LastAt, &t.CardCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type CardRow struct {
	TalkKey    string
	CardID     int
	Ts         string
	Author     string
	Text       string
	LineNumber int
}

const cardColumns = "talk_key, card_id, ts, author, text, line_number"

func scanCard(rows *sql.Rows) (CardRow, error) {
	var c CardRow
	err := rows.Scan(&c.TalkKey, &c.CardID, &c.Ts, &c.Author, &c.Text, &c.LineNumber)
	return c, err
}

func (d *DB) GetCards(talkKey string) ([]CardRow, error) {
	rows, err := d.db.Query(
		"SELECT "+cardColumns+" FROM cards WHERE talk_key = ? ORDER BY card_id",
		talkKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []CardRow
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// GetCardsWindow returns the cards within context positions of hitCardID.
// A negative hitCardID returns every card. startPos is the number of cards
// before the window and hitIdx the hit's index inside it (-1 if absent).
func (d *DB) GetCardsWindow(talkKey string, hitCardID, context int) (cards []CardRow, hitIdx int, startPos int, totalCount int, err error) {
	err = d.db.QueryRow(
		"SELECT COUNT(*) FROM cards WHERE talk_key = ?", talkKey,
	).Scan(&totalCount)
	if err != nil {
		return nil, -1, 0, 0, err
	}

	// card_id is dense and 0-based, so it is also the card's position
	startPos = 0
	limit := totalCount
	if hitCardID >= 0 && hitCardID < totalCount {
		startPos = hitCardID - context
		if startPos < 0 {
			startPos = 0
		}
		endPos := hitCardID + context + 1
		if endPos > totalCount {
			endPos = totalCount
		}
		limit = endPos - startPos
	}

	rows, err := d.db.Query(
		"SELECT "+cardColumns+" FROM cards WHERE talk_key = ? ORDER BY card_id LIMIT ? OFFSET ?",
		talkKey, limit, startPos,
	)
	if err != nil {
		return nil, -1, 0, 0, err
	}
	defer rows.Close()

	hitIdx = -1
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, -1, 0, 0, err
		}
		if c.CardID == hitCardID {
			hitIdx = len(cards)
		}
		cards = append(cards, c)
	}
	return cards, hitIdx, startPos, totalCount, rows.Err()
}
