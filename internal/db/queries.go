package db

import (
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
)

// Snapshot reasons.
const (
	ReasonImport  = "import"
	ReasonReset   = "reset"
	ReasonRestore = "restore"
	ReasonCorrupt = "corrupt"
)

// Snapshot is a copy of the library document taken before it was replaced.
type Snapshot struct {
	ID        string `json:"id" yaml:"id"`
	Reason    string `json:"reason" yaml:"reason"`
	Source    string `json:"source,omitempty" yaml:"source,omitempty"`
	Content   string `json:"content,omitempty" yaml:"content,omitempty"`
	Valid     bool   `json:"valid" yaml:"valid"`
	Bytes     int    `json:"bytes" yaml:"bytes"`
	CreatedAt int64  `json:"created_at" yaml:"created_at"`
}

// InsertSnapshot stores a snapshot and returns its generated id.
func InsertSnapshot(db *sql.DB, reason, source string, content []byte, valid bool) (string, error) {
	id := library.NewULID()
	query := `
		INSERT INTO snapshots (id, reason, source, content, valid, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, id, reason, toNullString(source), string(content), boolToInt(valid), time.Now().Unix())
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return id, nil
}

// GetSnapshot retrieves a snapshot including its content.
func GetSnapshot(db *sql.DB, id string) (*Snapshot, error) {
	query := `
		SELECT id, reason, source, content, valid, created_at
		FROM snapshots
		WHERE id = ?
	`
	var (
		s      Snapshot
		source sql.NullString
		valid  int
	)
	err := db.QueryRow(query, id).Scan(&s.ID, &s.Reason, &source, &s.Content, &valid, &s.CreatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFound("snapshot", id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	s.Source = source.String
	s.Valid = valid != 0
	s.Bytes = len(s.Content)
	return &s, nil
}

// ListSnapshots returns snapshot metadata, newest first, without content.
func ListSnapshots(db *sql.DB, limit, offset int) ([]Snapshot, error) {
	query := `
		SELECT id, reason, source, valid, length(CAST(content AS BLOB)), created_at
		FROM snapshots
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := db.Query(query, limit, offset)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	items := make([]Snapshot, 0)
	for rows.Next() {
		var (
			s      Snapshot
			source sql.NullString
			valid  int
		)
		if err := rows.Scan(&s.ID, &s.Reason, &source, &valid, &s.Bytes, &s.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		s.Source = source.String
		s.Valid = valid != 0
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return items, nil
}

// CountSnapshots returns the number of stored snapshots.
func CountSnapshots(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// PruneSnapshots deletes all but the newest keep snapshots and returns how
// many rows were removed. keep <= 0 disables pruning.
func PruneSnapshots(db *sql.DB, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	query := `
		DELETE FROM snapshots
		WHERE id NOT IN (
			SELECT id FROM snapshots
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)
	`
	result, err := db.Exec(query, keep)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(n), nil
}

// Journal adapts the snapshot table to the store's journal interface.
type Journal struct {
	db   *sql.DB
	keep int
}

// NewJournal returns a Journal that retains the newest keep snapshots.
func NewJournal(db *sql.DB, keep int) *Journal {
	return &Journal{db: db, keep: keep}
}

// Record inserts a snapshot and prunes old ones.
func (j *Journal) Record(reason, source string, content []byte, valid bool) (string, error) {
	id, err := InsertSnapshot(j.db, reason, source, content, valid)
	if err != nil {
		return "", err
	}
	if _, err := PruneSnapshots(j.db, j.keep); err != nil {
		return id, err
	}
	return id, nil
}

// Get returns a snapshot with content.
func (j *Journal) Get(id string) (*Snapshot, error) {
	return GetSnapshot(j.db, id)
}

// List returns snapshot metadata, newest first.
func (j *Journal) List(limit, offset int) ([]Snapshot, error) {
	return ListSnapshots(j.db, limit, offset)
}

// Count returns the number of retained snapshots.
func (j *Journal) Count() (int, error) {
	return CountSnapshots(j.db)
}

// toNullString maps "" to NULL.
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
