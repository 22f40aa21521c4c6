// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/questbridge/server/db"
	"github.com/questbridge/server/models"
)

// SQLStore persists the ledger in SQLite or PostgreSQL.
type SQLStore struct {
	db      *sql.DB
	dialect string
}

// NewSQLStore wraps an open connection. The schema must already exist.
func NewSQLStore(conn *sql.DB, dialect string) *SQLStore {
	return &SQLStore{db: conn, dialect: dialect}
}

// OpenSQL opens a connection for the dialect, verifies it and creates the schema.
func OpenSQL(ctx context.Context, dialect, dsn string) (*SQLStore, error) {
	driver := dialect
	switch dialect {
	case db.DialectSQLite:
		dsn = sqliteDSN(dsn)
	case db.DialectPostgres:
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	// Every connection to :memory: is a separate database.
	if dialect == db.DialectSQLite && strings.Contains(dsn, ":memory:") {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	if err := db.CreateSchema(conn, dialect); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return NewSQLStore(conn, dialect), nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite"
}

// DB exposes the underlying handle for tests and maintenance.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	err := s.db.QueryRowContext(ctx, s.rebind(`
		INSERT INTO participants (name, email, organization, phone, ticket_type, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), p.Name, p.Email, p.Organization, p.Phone, p.TicketType, p.Status, p.CreatedAt).Scan(&p.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert participant: %w", err)
	}

	return nil
}

func (s *SQLStore) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, organization, phone, ticket_type, status, created_at
		FROM participants
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Email,
			&p.Organization,
			&p.Phone,
			&p.TicketType,
			&p.Status,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}

	return participants, nil
}

func (s *SQLStore) UpdateParticipant(ctx context.Context, id int64, status, ticketType *string) error {
	// COALESCE keeps the stored value for NULL (omitted) fields
	res, err := s.db.ExecContext(ctx, s.rebind(`
		UPDATE participants
		SET status = COALESCE(?, status), ticket_type = COALESCE(?, ticket_type)
		WHERE id = ?
	`), status, ticketType, id)
	if err != nil {
		return fmt.Errorf("update participant: %w", err)
	}

	return requireAffected(res)
}

func (s *SQLStore) DeleteParticipant(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM participants WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}

	return requireAffected(res)
}

func (s *SQLStore) CreateEngagementLog(ctx context.Context, l *models.EngagementLog) error {
	var details sql.NullString
	if len(l.Details) > 0 {
		details = sql.NullString{String: string(l.Details), Valid: true}
	}

	err := s.db.QueryRowContext(ctx, s.rebind(`
		INSERT INTO engagement_logs (participant_email, activity_type, details, score, timestamp)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`), l.ParticipantEmail, l.ActivityType, details, l.Score, l.Timestamp).Scan(&l.ID)

	if err != nil {
		return fmt.Errorf("insert engagement log: %w", err)
	}

	return nil
}

func (s *SQLStore) ListEngagementLogs(ctx context.Context) ([]models.EngagementLogRow, error) {
	// LEFT JOIN: orphaned logs are listed with a NULL name
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			el.id,
			p.name,
			el.participant_email,
			el.activity_type,
			el.details,
			el.score,
			el.timestamp
		FROM engagement_logs el
		LEFT JOIN participants p ON el.participant_email = p.email
		ORDER BY el.timestamp DESC, el.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query engagement logs: %w", err)
	}
	defer rows.Close()

	logs := []models.EngagementLogRow{}
	for rows.Next() {
		var row models.EngagementLogRow
		var name, details sql.NullString

		if err := rows.Scan(
			&row.ID,
			&name,
			&row.ParticipantEmail,
			&row.ActivityType,
			&details,
			&row.Score,
			&row.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan engagement log: %w", err)
		}

		if name.Valid {
			row.ParticipantName = &name.String
		}
		if details.Valid {
			row.Details = json.RawMessage(details.String)
		}
		row.Timestamp = row.Timestamp.UTC()

		logs = append(logs, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate engagement logs: %w", err)
	}

	return logs, nil
}

func (s *SQLStore) Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	// Inner join: emails without a participant are excluded
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			p.name,
			el.participant_email,
			SUM(el.score) AS total_score,
			COUNT(el.id) AS activities_completed
		FROM engagement_logs el
		JOIN participants p ON el.participant_email = p.email
		GROUP BY el.participant_email, p.name
		ORDER BY total_score DESC, el.participant_email ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	board := []models.LeaderboardRow{}
	for rows.Next() {
		var row models.LeaderboardRow
		if err := rows.Scan(
			&row.ParticipantName,
			&row.ParticipantEmail,
			&row.TotalScore,
			&row.ActivitiesCompleted,
		); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		board = append(board, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}

	return board, nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL
func (s *SQLStore) rebind(query string) string {
	if s.dialect != db.DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation classifies driver errors without matching message text
func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" // unique_violation
	}

	return false
}

var _ Store = (*SQLStore)(nil)
