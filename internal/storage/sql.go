package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"caselist/internal/config"
	"caselist/internal/domain"
	"caselist/internal/logging"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		run_id VARCHAR(36) NOT NULL PRIMARY KEY,
		created_at DATETIME NOT NULL,
		meta JSON NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS results (
		run_id VARCHAR(36) NOT NULL,
		path VARCHAR(768) NOT NULL,
		status VARCHAR(32) NOT NULL,
		details TEXT,
		batch INT NOT NULL,
		resolved BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (run_id, path)
	)`,
}

// SQLStorage stores runs in MySQL. The database and tables are created on
// first use.
type SQLStorage struct {
	cfg *config.Config
}

// NewSQLStorage creates a new SQLStorage
func NewSQLStorage(cfg *config.Config) *SQLStorage {
	return &SQLStorage{cfg: cfg}
}

// DSN returns the connection string, optionally without selecting the database
func (s *SQLStorage) DSN(withDatabase bool) string {
	db := s.cfg.Database
	mc := mysql.NewConfig()
	mc.User = db.User
	mc.Passwd = db.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(db.Host, db.Port)
	mc.ParseTime = true
	if withDatabase {
		mc.DBName = db.Name
	}
	return mc.FormatDSN()
}

// isValidDatabaseName validates database name (basic check)
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	return !strings.ContainsAny(name, "`'\";/\\ ")
}

func (s *SQLStorage) open() (*sql.DB, error) {
	name := s.cfg.Database.Name
	if !isValidDatabaseName(name) {
		return nil, fmt.Errorf("invalid database name: %q", name)
	}

	// Connect to MySQL server (without specifying database)
	server, err := sql.Open("mysql", s.DSN(false))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer server.Close()

	if err := server.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}
	if _, err := server.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", name)); err != nil {
		return nil, fmt.Errorf("failed to create database %s: %w", name, err)
	}

	db, err := sql.Open("mysql", s.DSN(true))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", name, err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create tables: %w", err)
		}
	}
	return db, nil
}

// Save writes the run, replacing any stored results for the same run ID.
func (s *SQLStorage) Save(output *domain.RunOutput) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	meta, err := json.Marshal(output.Meta)
	if err != nil {
		return fmt.Errorf("marshal run meta: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (run_id, created_at, meta) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE meta = VALUES(meta)`,
		output.Meta.RunID, time.Now().UTC(), meta,
	); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM results WHERE run_id = ?`, output.Meta.RunID); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO results (run_id, path, status, details, batch, resolved) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare results insert: %w", err)
	}
	defer stmt.Close()
	for _, r := range output.Details {
		if _, err := stmt.Exec(output.Meta.RunID, r.Path, string(r.Status), r.Details, r.Batch, r.Resolved); err != nil {
			return fmt.Errorf("save result %s: %w", r.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	logging.Debug("saved run", "run", output.Meta.RunID, "results", len(output.Details))
	return nil
}

// Load returns the most recently created run.
func (s *SQLStorage) Load() (*domain.RunOutput, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var (
		runID string
		meta  []byte
	)
	err = db.QueryRow(`SELECT run_id, meta FROM runs ORDER BY created_at DESC LIMIT 1`).Scan(&runID, &meta)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoResults
	}
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}

	output := &domain.RunOutput{Details: make([]domain.CaseResult, 0)}
	if err := json.Unmarshal(meta, &output.Meta); err != nil {
		return nil, fmt.Errorf("parse run meta: %w", err)
	}

	rows, err := db.Query(`SELECT path, status, details, batch, resolved FROM results WHERE run_id = ? ORDER BY batch, path`, runID)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r       domain.CaseResult
			status  string
			details sql.NullString
		)
		if err := rows.Scan(&r.Path, &status, &details, &r.Batch, &r.Resolved); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.Status = domain.Status(status)
		r.Details = details.String
		output.Details = append(output.Details, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	return output, nil
}
