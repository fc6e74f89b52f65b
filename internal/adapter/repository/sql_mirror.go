package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/charm/internal/entity"
	"github.com/eslsoft/charm/internal/repository"
)

const mirrorTable = "words"

// MirrorProgress is notified after every word written by Sync.
type MirrorProgress func(done, total int)

type sqlMirror struct {
	db       *sql.DB
	driver   string
	logger   *logrus.Logger
	progress MirrorProgress
}

type MirrorOption func(*sqlMirror)

func WithMirrorProgress(fn MirrorProgress) MirrorOption {
	return func(m *sqlMirror) {
		if fn != nil {
			m.progress = fn
		}
	}
}

// NewSQLMirror writes the vocabulary into a words table reachable through db.
// driver is "sqlite3" or "postgres".
func NewSQLMirror(db *sql.DB, driver string, logger *logrus.Logger, opts ...MirrorOption) repository.WordMirror {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	m := &sqlMirror{db: db, driver: driver, logger: logger, progress: func(int, int) {}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Sync upserts every word and returns the number of rows written. Rows for
// words no longer in the vocabulary are left alone.
func (m *sqlMirror) Sync(ctx context.Context, words []*entity.Word) (n int, err error) {
	upsert, err := m.upsertStatement()
	if err != nil {
		return 0, err
	}
	if _, err := m.db.ExecContext(ctx, createMirrorTable); err != nil {
		return 0, fmt.Errorf("create %s table: %w", mirrorTable, err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for i, w := range words {
		if _, err = stmt.ExecContext(ctx, w.Text, joinIndices(w.PartIndices()), w.Definition); err != nil {
			return 0, fmt.Errorf("upsert %q: %w", w.Text, err)
		}
		m.progress(i+1, len(words))
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit mirror: %w", err)
	}
	m.logger.WithFields(logrus.Fields{"driver": m.driver, "words": len(words)}).Info("vocabulary mirrored")
	return len(words), nil
}

const createMirrorTable = `CREATE TABLE IF NOT EXISTS ` + mirrorTable + ` (
	text TEXT PRIMARY KEY,
	parts TEXT NOT NULL,
	definition TEXT NOT NULL DEFAULT ''
)`

func (m *sqlMirror) upsertStatement() (string, error) {
	holders := buildPlaceholders(m.driver, 3)
	if holders == nil {
		return "", fmt.Errorf("unsupported driver %q for placeholders", m.driver)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (text, parts, definition) VALUES (%s) ON CONFLICT (text) DO UPDATE SET parts = excluded.parts, definition = excluded.definition",
		mirrorTable, strings.Join(holders, ", "),
	), nil
}

func buildPlaceholders(driver string, count int) []string {
	switch driver {
	case "postgres", "postgresql":
		return lo.Times(count, func(i int) string { return "$" + strconv.Itoa(i+1) })
	case "sqlite3", "sqlite":
		return lo.Times(count, func(int) string { return "?" })
	default:
		return nil
	}
}

func joinIndices(indices []int) string {
	return strings.Join(lo.Map(indices, func(i int, _ int) string { return strconv.Itoa(i) }), " ")
}
