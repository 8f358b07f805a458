package datastore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	bkerrors "bookjan/internal/errors"
)

const booksSchema = `
CREATE TABLE IF NOT EXISTS books (
	isbn TEXT PRIMARY KEY NOT NULL,
	fields TEXT NOT NULL,
	added_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteStore implements the Store interface for local SQLite storage
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLiteStore instance
func NewSQLiteStore(dbPath string) *SQLiteStore {
	return &SQLiteStore{
		dbPath: dbPath,
	}
}

// Connect opens the SQLite database and ensures the books table exists
func (s *SQLiteStore) Connect() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(booksSchema); err != nil {
		closeErr := db.Close()
		return errors.Join(fmt.Errorf("failed to create books table: %w", err), closeErr)
	}

	s.db = db
	return nil
}

// Append inserts one record, enforcing ISBN uniqueness
func (s *SQLiteStore) Append(record map[string]string) error {
	isbn := record["isbn"]
	if isbn == "" {
		return errors.New("record has no isbn field")
	}

	exists, err := s.Has(isbn)
	if err != nil {
		return err
	}
	if exists {
		return bkerrors.NewDuplicateRecordError(isbn)
	}

	fields, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	if _, err := s.db.Exec("INSERT INTO books (isbn, fields) VALUES (?, ?)", isbn, string(fields)); err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// Has reports whether a record with the given ISBN exists
func (s *SQLiteStore) Has(isbn string) (bool, error) {
	var found int
	err := s.db.QueryRow("SELECT 1 FROM books WHERE isbn = ?", isbn).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query store: %w", err)
	}
	return true, nil
}

// List returns all stored records in insertion order
func (s *SQLiteStore) List() ([]map[string]string, error) {
	rows, err := s.db.Query("SELECT fields FROM books ORDER BY added_at, isbn")
	if err != nil {
		return nil, fmt.Errorf("failed to query store: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []map[string]string
	for rows.Next() {
		var fields string
		if err := rows.Scan(&fields); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		var record map[string]string
		if err := json.Unmarshal([]byte(fields), &record); err != nil {
			return nil, fmt.Errorf("failed to deserialize record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return records, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
