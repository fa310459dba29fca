package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

const defaultSQLiteDSN = "file:examtrack.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// Open opens the database for driver and makes sure the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName, schema string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		schema = schemaSQLite
		if dsn == "" {
			dsn = defaultSQLiteDSN
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		schema = schemaPostgres
		if dsn == "" {
			dsn = "postgres://localhost:5432/examtrack?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// SQLite allows a single writer; one connection also keeps
		// ":memory:" databases alive and shared.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// rebind rewrites "?" placeholders as "$1", "$2", ... for Postgres.
func rebind(driver Driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS exams (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    board TEXT NOT NULL DEFAULT '',
    exam_date TEXT NOT NULL,
    total_questions INTEGER NOT NULL,
    scoring_policy TEXT NOT NULL,
    kind TEXT NOT NULL DEFAULT 'contest',
    candidates INTEGER,
    user_answers TEXT NOT NULL DEFAULT '',
    preliminary_key TEXT NOT NULL DEFAULT '',
    definitive_key TEXT NOT NULL DEFAULT '',
    percentage REAL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS subjects (
    id TEXT PRIMARY KEY,
    exam_id TEXT NOT NULL,
    name TEXT NOT NULL,
    question_count INTEGER NOT NULL,
    start_question INTEGER NOT NULL,
    end_question INTEGER NOT NULL,
    position INTEGER NOT NULL,
    UNIQUE (exam_id, name),
    FOREIGN KEY (exam_id) REFERENCES exams(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS results (
    exam_id TEXT NOT NULL,
    subject_name TEXT NOT NULL,
    correct INTEGER NOT NULL,
    incorrect INTEGER NOT NULL,
    blank INTEGER NOT NULL,
    annulled INTEGER NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (exam_id, subject_name),
    FOREIGN KEY (exam_id) REFERENCES exams(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_exams_date ON exams(exam_date);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS exams (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    board TEXT NOT NULL DEFAULT '',
    exam_date TEXT NOT NULL,
    total_questions INTEGER NOT NULL,
    scoring_policy TEXT NOT NULL,
    kind TEXT NOT NULL DEFAULT 'contest',
    candidates INTEGER,
    user_answers TEXT NOT NULL DEFAULT '',
    preliminary_key TEXT NOT NULL DEFAULT '',
    definitive_key TEXT NOT NULL DEFAULT '',
    percentage DOUBLE PRECISION,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS subjects (
    id TEXT PRIMARY KEY,
    exam_id TEXT NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    question_count INTEGER NOT NULL,
    start_question INTEGER NOT NULL,
    end_question INTEGER NOT NULL,
    position INTEGER NOT NULL,
    UNIQUE (exam_id, name)
);

CREATE TABLE IF NOT EXISTS results (
    exam_id TEXT NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
    subject_name TEXT NOT NULL,
    correct INTEGER NOT NULL,
    incorrect INTEGER NOT NULL,
    blank INTEGER NOT NULL,
    annulled INTEGER NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (exam_id, subject_name)
);

CREATE INDEX IF NOT EXISTS idx_exams_date ON exams(exam_date);
`
