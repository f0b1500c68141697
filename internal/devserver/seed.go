package devserver

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed seed/schema.json seed/sample.json
var seedFS embed.FS

// Seed is the fixture file format.
type Seed struct {
	Users   []SeedUser   `json:"users"`
	Books   []SeedBook   `json:"books"`
	Records []SeedRecord `json:"records"`
}

type SeedUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SeedBook struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	ISBN      string `json:"isbn"`
	CoverURL  string `json:"coverUrl"`
}

type SeedRecord struct {
	UserID     int64     `json:"userId"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Sentence   string    `json:"sentence"`
	Comment    string    `json:"comment"`
	RecordedAt time.Time `json:"recordedAt"`
	BookID     *int64    `json:"bookId"`
}

// ValidateSeed checks data against the embedded JSON schema.
func ValidateSeed(data []byte) error {
	schema, err := seedFS.ReadFile("seed/schema.json")
	if err != nil {
		return err
	}
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate seed: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid seed: %s", strings.Join(msgs, "; "))
}

// ParseSeed validates and decodes a seed document.
func ParseSeed(data []byte) (*Seed, error) {
	if err := ValidateSeed(data); err != nil {
		return nil, err
	}
	var s Seed
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal seed: %w", err)
	}
	return &s, nil
}

// LoadSeed reads and validates a seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return ParseSeed(data)
}

// SampleSeed returns the built-in demo fixture.
func SampleSeed() (*Seed, error) {
	data, err := seedFS.ReadFile("seed/sample.json")
	if err != nil {
		return nil, err
	}
	return ParseSeed(data)
}

// Seed inserts the fixture in one transaction. Users and books that already
// exist are left alone; records are always appended. Returns the number of
// records inserted.
func (s *Store) Seed(ctx context.Context, seed *Seed) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, u := range seed.Users {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO users (id, name) VALUES (?, ?)`, u.ID, u.Name); err != nil {
			return 0, fmt.Errorf("insert user %d: %w", u.ID, err)
		}
	}
	for _, b := range seed.Books {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO books (id, title, author, publisher, isbn, cover_url) VALUES (?, ?, ?, ?, ?, ?)`,
			b.ID, b.Title, b.Author, b.Publisher, nullIfEmpty(b.ISBN), b.CoverURL); err != nil {
			return 0, fmt.Errorf("insert book %d: %w", b.ID, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (user_id, title, author, sentence, comment, recorded_at, book_id, cover_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT NULLIF(cover_url, '') FROM books WHERE id = ?))`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert record: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for i, r := range seed.Records {
		var bookID any
		if r.BookID != nil {
			bookID = *r.BookID
		}
		if _, err := stmt.ExecContext(ctx, r.UserID, r.Title, r.Author, r.Sentence, r.Comment,
			r.RecordedAt.UTC().Format(time.RFC3339Nano), bookID, bookID); err != nil {
			return 0, fmt.Errorf("insert record %d: %w", i, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return inserted, nil
}

// Empty reports whether the database has no records yet.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
