package content

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore serves content files packed into a SQLite bundle by WriteBundle.
// The bundle is opened read-only; listing order is the order the files were
// packed in.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the bundle at path read-only.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns the packed filenames in their original listing order.
func (s *SQLiteStore) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT filename FROM content_files ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list content: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return names, nil
}

// Read returns the packed source of filename.
func (s *SQLiteStore) Read(filename string) ([]byte, error) {
	var src []byte
	err := s.db.QueryRow(`SELECT source FROM content_files WHERE filename = ?`, filename).Scan(&src)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read %s: %w", filename, os.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return src, nil
}

// WriteBundle packs every file of src into a fresh SQLite bundle at path,
// replacing any existing bundle. The bundle is filled under path+".tmp" and
// renamed into place once complete, so a failed pack leaves the previous
// bundle untouched. It returns the number of files packed.
func WriteBundle(path string, src Store) (int, error) {
	names, err := src.List()
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	tmp := path + ".tmp"
	if err := os.Remove(tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, err
	}
	if err := fillBundle(tmp, names, src); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	return len(names), nil
}

func fillBundle(path string, names []string, src Store) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(`
CREATE TABLE content_files (
    position INTEGER PRIMARY KEY,
    filename TEXT NOT NULL UNIQUE,
    source BLOB NOT NULL
);
`); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO content_files (position, filename, source) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, name := range names {
		data, err := src.Read(name)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(i, name, data); err != nil {
			return fmt.Errorf("pack %s: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return db.Close()
}
