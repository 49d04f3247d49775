// Package history records runs in a SQL database so past runs can be listed.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"pharaoh/internal/domain"
)

const (
	sqlitePrefix = "sqlite://"
	mysqlPrefix  = "mysql://"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		search_dir VARCHAR(1024) NOT NULL,
		total_suites INTEGER NOT NULL,
		total_cases INTEGER NOT NULL,
		passed_cases INTEGER NOT NULL,
		failed_cases INTEGER NOT NULL,
		duration_seconds DOUBLE NOT NULL,
		jobs INTEGER NOT NULL,
		started_at VARCHAR(40) NOT NULL,
		recorded_ns BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS results (
		run_id VARCHAR(36) NOT NULL,
		seq INTEGER NOT NULL,
		suite VARCHAR(512) NOT NULL,
		name VARCHAR(1024) NOT NULL,
		passed INTEGER NOT NULL,
		expected_status INTEGER NOT NULL,
		actual_status INTEGER NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`,
}

// NewRunID returns a fresh run identifier
func NewRunID() string {
	return uuid.NewString()
}

// Store records runs in a database
type Store struct {
	db *sql.DB
}

// ParseDSN maps a history DSN to a database/sql driver name and data source.
// Supported forms are sqlite://<path> and mysql://<user>:<pass>@tcp(<host>:<port>)/<db>.
func ParseDSN(dsn string) (driver, source string, err error) {
	switch {
	case strings.HasPrefix(dsn, sqlitePrefix):
		path := strings.TrimPrefix(dsn, sqlitePrefix)
		if path == "" {
			return "", "", fmt.Errorf("missing sqlite database path in %q", dsn)
		}
		return "sqlite", path, nil
	case strings.HasPrefix(dsn, mysqlPrefix):
		cfg, err := mysql.ParseDSN(strings.TrimPrefix(dsn, mysqlPrefix))
		if err != nil {
			return "", "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		if !isValidDatabaseName(cfg.DBName) {
			return "", "", fmt.Errorf("invalid database name: %q", cfg.DBName)
		}
		return "mysql", cfg.FormatDSN(), nil
	default:
		return "", "", fmt.Errorf("unsupported history dsn %q: want sqlite:// or mysql://", dsn)
	}
}

// isValidDatabaseName validates database name (basic check)
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	invalidChars := []string{"'", "\"", ";", "--", "/*", "*/", "`"}
	for _, char := range invalidChars {
		if strings.Contains(name, char) {
			return false
		}
	}
	return true
}

// Open connects to the database named by dsn and creates the schema if missing
func Open(ctx context.Context, dsn string) (*Store, error) {
	driver, source, err := ParseDSN(dsn)
	if err != nil {
		return nil, domain.NewError(domain.KindStorage, "open history", err)
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, domain.NewError(domain.KindStorage, "open history", err)
	}
	if driver == "sqlite" {
		// a single connection serializes writers
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, domain.NewError(domain.KindStorage, "ping history database", err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return domain.NewError(domain.KindStorage, "create history schema", err)
		}
	}
	return nil
}

// Record stores a run and all of its results in one transaction
func (s *Store) Record(ctx context.Context, meta domain.RunMeta, report domain.TestReport) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewError(domain.KindStorage, "begin history transaction", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, search_dir, total_suites, total_cases, passed_cases, failed_cases, duration_seconds, jobs, started_at, recorded_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.RunID, meta.SearchDir, meta.TotalSuites, meta.TotalTestCases, meta.PassedTestCases,
		meta.FailedTestCases, meta.DurationSeconds, meta.Jobs, meta.Timestamp, time.Now().UnixNano())
	if err != nil {
		return domain.NewError(domain.KindStorage, "record run "+meta.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, seq, suite, name, passed, expected_status, actual_status) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return domain.NewError(domain.KindStorage, "prepare result insert", err)
	}
	defer stmt.Close()

	seq := 0
	for _, suite := range report.TestSuites {
		for _, result := range suite.Results {
			passed := 0
			if result.IsSuccessful() {
				passed = 1
			}
			if _, err = stmt.ExecContext(ctx, meta.RunID, seq, suite.Name, result.Name, passed, result.ExpectedStatus, result.ActualStatus); err != nil {
				return domain.NewError(domain.KindStorage, "record result "+result.Name, err)
			}
			seq++
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.NewError(domain.KindStorage, "commit history", err)
	}
	return nil
}

// Recent returns up to limit runs, most recent first
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.RunMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, search_dir, total_suites, total_cases, passed_cases, failed_cases, duration_seconds, jobs, started_at
		FROM runs ORDER BY recorded_ns DESC LIMIT ?`, limit)
	if err != nil {
		return nil, domain.NewError(domain.KindStorage, "query history", err)
	}
	defer rows.Close()

	var runs []domain.RunMeta
	for rows.Next() {
		var m domain.RunMeta
		if err := rows.Scan(&m.RunID, &m.SearchDir, &m.TotalSuites, &m.TotalTestCases, &m.PassedTestCases,
			&m.FailedTestCases, &m.DurationSeconds, &m.Jobs, &m.Timestamp); err != nil {
			return nil, domain.NewError(domain.KindStorage, "scan history", err)
		}
		m.Duration = (time.Duration(m.DurationSeconds * float64(time.Second))).String()
		runs = append(runs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewError(domain.KindStorage, "query history", err)
	}
	return runs, nil
}

// FailedResults returns the names of the failed results of a run in run order
func (s *Store) FailedResults(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM results WHERE run_id = ? AND passed = 0 ORDER BY seq`, runID)
	if err != nil {
		return nil, domain.NewError(domain.KindStorage, "query results", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, domain.NewError(domain.KindStorage, "scan results", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewError(domain.KindStorage, "query results", err)
	}
	return names, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
