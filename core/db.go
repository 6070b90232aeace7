package core

import (
	"database/sql"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

type SQLiteDBOption struct {
	// Mode can be ro | rw | rwc | memory
	Mode string
	// Cache can be shared | private
	Cache string
	// JournalMode can be DELETE | TRUNCATE | PERSIST | MEMORY | WAL | OFF
	JournalMode string
}

func (o *SQLiteDBOption) dsn(file string) string {
	var sb strings.Builder
	sb.WriteString("file:")
	sb.WriteString(file)

	if o == nil {
		return sb.String()
	}

	params := make([]string, 0, 3)
	if o.Mode != "" {
		params = append(params, "mode="+o.Mode)
	}
	if o.Cache != "" {
		params = append(params, "cache="+o.Cache)
	}
	if o.JournalMode != "" {
		params = append(params, "_journal_mode="+o.JournalMode)
	}
	if len(params) > 0 {
		sb.WriteString("?")
		sb.WriteString(strings.Join(params, "&"))
	}
	return sb.String()
}

type SQLiteDB struct {
	*sql.DB
	migrationDir string
}

func NewSQLiteDB(file, migrationDir string, opts *SQLiteDBOption) (*SQLiteDB, error) {
	d, err := sql.Open("sqlite3", opts.dsn(file))
	if err != nil {
		return nil, err
	}

	return &SQLiteDB{DB: d, migrationDir: migrationDir}, nil
}

func (db *SQLiteDB) Migrate() error {
	goose.SetBaseFS(os.DirFS(db.migrationDir))

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.Up(db.DB, ".")
}
