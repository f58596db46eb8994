package repo

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mkrivushin/libcat/config"
	"github.com/mkrivushin/libcat/logger"
	_ "github.com/mattn/go-sqlite3"
)

func GetStorage(path string) (*Repo, error) {
	return GetStorageWithConfig(path, config.Load())
}

func GetStorageWithConfig(path string, cfg *config.Config) (*Repo, error) {
	r := &Repo{path: path}

	db, err := sql.Open("sqlite3", "file:"+r.path+"?cache=shared&mode=rwc&_journal_mode=WAL")
	if err != nil {
		logger.Error("Failed to open database", "path", r.path, "error", err)
		return nil, fmt.Errorf("open database %s: %w", r.path, err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	r.db = db

	if err := r.CreateSchema(); err != nil {
		if cerr := db.Close(); cerr != nil {
			logger.Error("Failed to close database after schema error", "error", cerr)
		}
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return r, nil
}

// CreateSchema creates the books table and its indexes if missing.
// Year is TEXT on purpose: keyword search treats it as a plain
// substring like every other searchable field.
func (r *Repo) CreateSchema() error {
	sqlStmt := `
           CREATE TABLE IF NOT EXISTS "books" (
                book_id integer primary key autoincrement not null,
                title text not null,
                author text not null,
                genre text not null default '',
                year text not null default ''
           );
           CREATE INDEX IF NOT EXISTS [I_title] ON "books" ([title]);
           CREATE INDEX IF NOT EXISTS [I_author] ON "books" ([author]);
    `
	if _, err := r.db.Exec(sqlStmt); err != nil {
		return fmt.Errorf("create books schema: %w", err)
	}
	return nil
}
