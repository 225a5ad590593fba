package concordance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/FocuswithJustin/Lectionarium/core/locator"
	"github.com/FocuswithJustin/Lectionarium/core/sqlite"
	"github.com/FocuswithJustin/Lectionarium/core/text"
)

const schema = `
CREATE TABLE IF NOT EXISTS words (
	book     TEXT    NOT NULL,
	word     TEXT    NOT NULL,
	sort_key TEXT    NOT NULL,
	initial  TEXT    NOT NULL,
	chapter  INTEGER NOT NULL,
	verse    INTEGER,
	seq      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS words_by_word ON words (word, seq);
CREATE INDEX IF NOT EXISTS words_by_initial ON words (book, initial, sort_key, seq);
`

// Index is a word index persisted in a SQLite database. It holds the
// same word-to-addresses mapping as Concordance, queryable without
// reloading the corpus.
type Index struct {
	db *sql.DB
}

// OpenIndex opens or creates an index database at path.
func OpenIndex(path string) (*Index, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}
	return &Index{db: db}, nil
}

// OpenIndexReadOnly opens an existing index database for querying.
func OpenIndexReadOnly(path string) (*Index, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", path, err)
	}
	return &Index{db: db}, nil
}

// Close releases the underlying database handle.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// IndexText indexes every word of one book's text, replacing any rows
// previously indexed for that book.
func (ix *Index) IndexText(ctx context.Context, book string, t *text.Text) error {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("indexing %s: %w", book, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM words WHERE book = ?`, book); err != nil {
		return fmt.Errorf("clearing index rows for %s: %w", book, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO words (book, word, sort_key, initial, chapter, verse, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing index insert: %w", err)
	}
	defer stmt.Close()

	for seq, w := range t.Words() {
		var verse any
		if v, ok := w.Addr.Verse(); ok {
			verse = v
		}
		_, err := stmt.ExecContext(ctx, book, w.Word, foldLigatures(w.Word),
			initialOf(w.Word), w.Addr.First(), verse, seq)
		if err != nil {
			return fmt.Errorf("inserting index row for %s: %w", book, err)
		}
	}
	return tx.Commit()
}

// Lookup returns the addresses a word appears at in one book, in text
// order. A word that was never indexed yields no addresses and no
// error.
func (ix *Index) Lookup(ctx context.Context, book, word string) ([]locator.Addr, error) {
	rows, err := ix.db.QueryContext(ctx, `
		SELECT chapter, verse FROM words
		WHERE book = ? AND word = ? ORDER BY seq`, book, word)
	if err != nil {
		return nil, fmt.Errorf("looking up %q in %s: %w", word, book, err)
	}
	defer rows.Close()

	var addrs []locator.Addr
	for rows.Next() {
		var chapter int
		var verse sql.NullInt64
		if err := rows.Scan(&chapter, &verse); err != nil {
			return nil, fmt.Errorf("scanning index row: %w", err)
		}
		if verse.Valid {
			addrs = append(addrs, locator.ChapterVerse(chapter, int(verse.Int64)))
		} else {
			addrs = append(addrs, locator.Chapter(chapter))
		}
	}
	return addrs, rows.Err()
}

// Words returns the distinct indexed words of one book under one
// initial, in ligature-folded sort order.
func (ix *Index) Words(ctx context.Context, book, initial string) ([]string, error) {
	rows, err := ix.db.QueryContext(ctx, `
		SELECT word FROM words
		WHERE book = ? AND initial = ?
		GROUP BY word ORDER BY MIN(sort_key), word`, book, initial)
	if err != nil {
		return nil, fmt.Errorf("listing words for initial %q: %w", initial, err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scanning index row: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}
