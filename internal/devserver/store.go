// Package devserver is a small implementation of the reading-log API backed
// by a single SQLite file. It exists for local use and integration tests.
package devserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a record does not exist or belongs to
	// another user.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned for requests the store cannot act on.
	ErrInvalid = errors.New("invalid input")
)

// Paging and search limits.
const (
	MaxPageSize     = 50
	CandidateLimit  = 20
	defaultPageSize = catalog.SizeWide
)

// Store is the SQLite-backed data layer.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path. Use ":memory:" for a
// throwaway database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one connection keeps :memory: databases shared and writes serialized
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			publisher TEXT NOT NULL DEFAULT '',
			isbn TEXT,
			cover_url TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS books_isbn ON books(isbn) WHERE isbn IS NOT NULL AND isbn != '';`,
		`CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			title TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			sentence TEXT NOT NULL DEFAULT '',
			comment TEXT NOT NULL DEFAULT '',
			recorded_at TEXT NOT NULL,
			book_id INTEGER REFERENCES books(id),
			cover_url TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS records_user_time ON records(user_id, recorded_at DESC);`,
	}
	for i, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate stmt %d: %w", i, err)
		}
	}
	return nil
}

// EnsureUser creates the user row if needed.
func (s *Store) EnsureUser(ctx context.Context, id int64, name string) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO users (id, name) VALUES (?, ?)`, id, name)
	return err
}

// SummaryBooks returns the distinct books linked from the user's records,
// most recently read first.
func (s *Store) SummaryBooks(ctx context.Context, userID int64) ([]catalog.SummaryBook, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.title, b.author, b.cover_url
		FROM books b
		JOIN records r ON r.book_id = b.id
		WHERE r.user_id = ?
		GROUP BY b.id
		ORDER BY MAX(r.recorded_at) DESC, b.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query shelf: %w", err)
	}
	defer func() { _ = rows.Close() }()

	books := []catalog.SummaryBook{}
	for rows.Next() {
		var b catalog.SummaryBook
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CoverURL); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// ClampQuery bounds page to >= 0 and size to [1, MaxPageSize].
func ClampQuery(q catalog.Query) catalog.Query {
	if q.Page < 0 {
		q.Page = 0
	}
	switch {
	case q.Size <= 0:
		q.Size = defaultPageSize
	case q.Size > MaxPageSize:
		q.Size = MaxPageSize
	}
	q.Q = strings.TrimSpace(q.Q)
	return q
}

// Records returns one page of the user's records, newest first. A non-empty
// q matches title, author, sentence or comment.
func (s *Store) Records(ctx context.Context, userID int64, q catalog.Query) (catalog.Page[catalog.Record], error) {
	q = ClampQuery(q)

	where := `WHERE user_id = ?`
	args := []any{userID}
	if q.Q != "" {
		p := likePattern(q.Q)
		where += ` AND (title LIKE ? ESCAPE '\' OR author LIKE ? ESCAPE '\' OR sentence LIKE ? ESCAPE '\' OR comment LIKE ? ESCAPE '\')`
		args = append(args, p, p, p, p)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records `+where, args...).Scan(&total); err != nil {
		return catalog.Page[catalog.Record]{}, fmt.Errorf("count records: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, author, sentence, comment, recorded_at, book_id, cover_url
		FROM records `+where+`
		ORDER BY recorded_at DESC, id DESC
		LIMIT ? OFFSET ?`, append(args, q.Size, q.Page*q.Size)...)
	if err != nil {
		return catalog.Page[catalog.Record]{}, fmt.Errorf("query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []catalog.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return catalog.Page[catalog.Record]{}, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return catalog.Page[catalog.Record]{}, err
	}

	totalPages := (total + q.Size - 1) / q.Size
	return catalog.Page[catalog.Record]{
		Items:      items,
		Page:       q.Page,
		TotalPages: totalPages,
		HasPrev:    q.Page > 0,
		HasNext:    q.Page+1 < totalPages,
	}, nil
}

func scanRecord(rows *sql.Rows) (catalog.Record, error) {
	var (
		rec      catalog.Record
		recorded string
		bookID   sql.NullInt64
		cover    sql.NullString
	)
	if err := rows.Scan(&rec.ID, &rec.Title, &rec.Author, &rec.Sentence, &rec.Comment, &recorded, &bookID, &cover); err != nil {
		return rec, err
	}
	t, err := time.Parse(time.RFC3339Nano, recorded)
	if err != nil {
		return rec, fmt.Errorf("record %d: bad recorded_at %q: %w", rec.ID, recorded, err)
	}
	rec.RecordedAt = t
	if bookID.Valid {
		id := bookID.Int64
		rec.BookID = &id
	}
	if cover.Valid {
		c := cover.String
		rec.CoverURL = &c
	}
	return rec, nil
}

// SearchBooks matches books by title and/or author. Empty fields are not
// constrained; with both empty nothing is returned.
func (s *Store) SearchBooks(ctx context.Context, title, author string) ([]catalog.BookCandidate, error) {
	title, author = strings.TrimSpace(title), strings.TrimSpace(author)
	out := []catalog.BookCandidate{}
	if title == "" && author == "" {
		return out, nil
	}

	var conds []string
	var args []any
	if title != "" {
		conds = append(conds, `title LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(title))
	}
	if author != "" {
		conds = append(conds, `author LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(author))
	}
	args = append(args, CandidateLimit)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, author, publisher, COALESCE(isbn, ''), cover_url
		FROM books
		WHERE `+strings.Join(conds, " AND ")+`
		ORDER BY title, id
		LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var b catalog.BookCandidate
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Publisher, &b.ISBN, &b.CoverURL); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Link points the record at book and copies the book's cover onto it. A
// book that is not in the catalog yet (unknown id, new ISBN) is inserted.
func (s *Store) Link(ctx context.Context, userID, recordID int64, book catalog.BookCandidate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := ownRecord(ctx, tx, userID, recordID); err != nil {
		return err
	}

	bookID, cover, err := upsertBook(ctx, tx, book)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE records SET book_id = ?, cover_url = ? WHERE id = ?`,
		bookID, nullIfEmpty(cover), recordID); err != nil {
		return fmt.Errorf("link record %d: %w", recordID, err)
	}
	return tx.Commit()
}

// Unlink clears the record's book and cover.
func (s *Store) Unlink(ctx context.Context, userID, recordID int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE records SET book_id = NULL, cover_url = NULL WHERE id = ? AND user_id = ?`,
		recordID, userID)
	if err != nil {
		return fmt.Errorf("unlink record %d: %w", recordID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func ownRecord(ctx context.Context, tx *sql.Tx, userID, recordID int64) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM records WHERE id = ? AND user_id = ?`, recordID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// upsertBook resolves book to a row id, by id first, then by ISBN, then by
// inserting it. Returns the id and the cover to copy onto the record.
func upsertBook(ctx context.Context, tx *sql.Tx, book catalog.BookCandidate) (int64, string, error) {
	var (
		id    int64
		cover string
	)
	if book.ID > 0 {
		err := tx.QueryRowContext(ctx, `SELECT id, cover_url FROM books WHERE id = ?`, book.ID).Scan(&id, &cover)
		if err == nil {
			return id, coverOr(cover, book.CoverURL), nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, "", err
		}
	}
	if book.ISBN != "" {
		err := tx.QueryRowContext(ctx, `SELECT id, cover_url FROM books WHERE isbn = ?`, book.ISBN).Scan(&id, &cover)
		if err == nil {
			return id, coverOr(cover, book.CoverURL), nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, "", err
		}
	}
	if strings.TrimSpace(book.Title) == "" {
		return 0, "", fmt.Errorf("book has no title: %w", ErrInvalid)
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO books (title, author, publisher, isbn, cover_url) VALUES (?, ?, ?, ?, ?)`,
		book.Title, book.Author, book.Publisher, nullIfEmpty(book.ISBN), book.CoverURL)
	if err != nil {
		return 0, "", fmt.Errorf("insert book: %w", err)
	}
	id, err = res.LastInsertId()
	return id, book.CoverURL, err
}

func coverOr(stored, fallback string) string {
	if stored != "" {
		return stored
	}
	return fallback
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// likePattern wraps s for a substring LIKE, escaping wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
