// Package review keeps guessed and undecided transcriptions in a SQLite
// queue until a person approves, corrects or rejects them.
package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ieee0824/g2pdict/g2p"
	"github.com/ieee0824/g2pdict/internal/review/migrations"
	"github.com/ieee0824/g2pdict/phoneme"
)

// ErrNotFound is returned when a word is not in the queue.
var ErrNotFound = errors.New("review: word not in queue")

// Status is the review state of a word.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Item is one queued word.
type Item struct {
	Word      string
	Tier      g2p.Tier
	Proposed  phoneme.Pronunciation
	Status    Status
	Resolved  phoneme.Pronunciation // set when a reviewer supplied a correction
	RunID     string
	UpdatedAt time.Time
}

// Pronunciation returns the correction if there is one, else the proposal.
func (it Item) Pronunciation() phoneme.Pronunciation {
	if it.Resolved != nil {
		return it.Resolved
	}
	return it.Proposed
}

// Line renders the item as a dictionary line.
func (it Item) Line() string {
	return g2p.Entry{Word: it.Word, Pronunciation: it.Pronunciation()}.Line()
}

// Run summarises one recorded generate run.
type Run struct {
	ID        string
	Source    string
	CreatedAt time.Time
	Processed int
	Certain   int
	Guessed   int
	Undecided int
	Dropped   int
	Failed    int
}

// Store is the review queue.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the queue database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path, now: time.Now}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			applied_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	var upFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			upFiles = append(upFiles, e.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= current {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)", version, s.now().Unix()); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

// RecordRun stores the summary of res and queues its guessed and undecided
// words. Words already approved or rejected keep their decision.
// It returns the new run ID.
func (s *Store) RecordRun(ctx context.Context, source string, res *g2p.Result) (string, error) {
	id := uuid.NewString()
	now := s.now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, created_at, processed, certain, guessed, undecided, dropped, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, source, now, res.Processed, res.Certain.Len(), res.Guessed.Len(), res.Undecided.Len(),
		len(res.Dropped), len(res.Failed))
	if err != nil {
		return "", fmt.Errorf("saving run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO words (word, tier, proposed, status, run_id, updated_at)
		VALUES (?, ?, ?, 'pending', ?, ?)
		ON CONFLICT(word) DO UPDATE SET
			tier = excluded.tier,
			proposed = excluded.proposed,
			run_id = excluded.run_id,
			updated_at = excluded.updated_at
		WHERE words.status = 'pending'
	`)
	if err != nil {
		return "", fmt.Errorf("preparing word insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range []g2p.Tier{g2p.Guessed, g2p.Undecided} {
		for _, e := range res.Tier(t).All() {
			if _, err := stmt.ExecContext(ctx, e.Word, t.String(), e.Pronunciation.String(), id, now); err != nil {
				return "", fmt.Errorf("queueing %s: %w", e.Word, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Runs returns every recorded run, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, created_at, processed, certain, guessed, undecided, dropped, failed
		FROM runs ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var created int64
		if err := rows.Scan(&r.ID, &r.Source, &created, &r.Processed, &r.Certain, &r.Guessed,
			&r.Undecided, &r.Dropped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.CreatedAt = time.Unix(created, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Pending returns the words of tier t that wait for a decision, sorted.
func (s *Store) Pending(ctx context.Context, t g2p.Tier) ([]Item, error) {
	return s.query(ctx, "WHERE status = ? AND tier = ?", string(StatusPending), t.String())
}

// Approved returns every approved word, sorted.
func (s *Store) Approved(ctx context.Context) ([]Item, error) {
	return s.query(ctx, "WHERE status = ?", string(StatusApproved))
}

// Get returns one queued word.
func (s *Store) Get(ctx context.Context, word string) (Item, error) {
	items, err := s.query(ctx, "WHERE word = ?", word)
	if err != nil {
		return Item{}, err
	}
	if len(items) == 0 {
		return Item{}, fmt.Errorf("%s: %w", word, ErrNotFound)
	}
	return items[0], nil
}

// Resolve approves word. A non-empty pron replaces the proposed pronunciation.
func (s *Store) Resolve(ctx context.Context, word, pron string) error {
	var resolved any
	if strings.TrimSpace(pron) != "" {
		resolved = phoneme.Parse(pron).String()
	}
	return s.decide(ctx, word, StatusApproved, resolved)
}

// Reject marks word as not to be added to the dictionary.
func (s *Store) Reject(ctx context.Context, word string) error {
	return s.decide(ctx, word, StatusRejected, nil)
}

func (s *Store) decide(ctx context.Context, word string, st Status, resolved any) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE words SET status = ?, resolved = ?, updated_at = ? WHERE word = ?
	`, string(st), resolved, s.now().Unix(), word)
	if err != nil {
		return fmt.Errorf("updating %s: %w", word, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating %s: %w", word, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", word, ErrNotFound)
	}
	return nil
}

func (s *Store) query(ctx context.Context, where string, args ...any) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT word, tier, proposed, status, resolved, run_id, updated_at
		FROM words `+where+` ORDER BY word`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying words: %w", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var (
			it       Item
			tier     string
			proposed string
			status   string
			resolved sql.NullString
			updated  int64
		)
		if err := rows.Scan(&it.Word, &tier, &proposed, &status, &resolved, &it.RunID, &updated); err != nil {
			return nil, fmt.Errorf("scanning word: %w", err)
		}
		if it.Tier, err = g2p.ParseTier(tier); err != nil {
			return nil, fmt.Errorf("word %s: %w", it.Word, err)
		}
		it.Proposed = phoneme.Parse(proposed)
		it.Status = Status(status)
		if resolved.Valid {
			it.Resolved = phoneme.Parse(resolved.String)
		}
		it.UpdatedAt = time.Unix(updated, 0)
		out = append(out, it)
	}
	return out, rows.Err()
}
