package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/domain"
	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS evidence (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source TEXT NOT NULL,
	url TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL DEFAULT '',
	body TEXT NOT NULL DEFAULT '',
	author TEXT NOT NULL DEFAULT 'unknown',
	posted_at TIMESTAMP NOT NULL,
	collected_at TIMESTAMP NOT NULL,
	sentiment_score REAL NOT NULL DEFAULT 0,
	sentiment_label TEXT NOT NULL DEFAULT 'neutral',
	iocs TEXT NOT NULL DEFAULT '{}',
	threat_level TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'ok',
	status_note TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_evidence_collected_at ON evidence(collected_at);
CREATE INDEX IF NOT EXISTS idx_evidence_threat_level ON evidence(threat_level);
`

// SQLiteStore persists evidence records in SQLite. Records are
// append-only; the store offers no update or delete path. A mutex
// serializes writers so each insert is one atomic row.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

var _ ports.EvidenceStore = (*SQLiteStore)(nil)

// Open creates (or opens) the database at path and ensures the schema.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLiteStore wraps an existing sql.DB and ensures the schema.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) ensureSchema() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Insert appends one evidence record.
func (s *SQLiteStore) Insert(ctx context.Context, ev domain.Evidence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args, err := sq.Insert("evidence").
		Columns("source", "url", "title", "body", "author",
			"posted_at", "collected_at",
			"sentiment_score", "sentiment_label",
			"iocs", "threat_level", "status", "status_note").
		Values(ev.Source, ev.URL, ev.Title, ev.Body, ev.Author,
			ev.PostedAt, ev.CollectedAt,
			ev.SentimentScore, string(ev.SentimentLabel),
			ev.IOCs, string(ev.ThreatLevel), string(ev.Status), ev.StatusNote).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert evidence: %w", err)
	}
	return nil
}

// Query returns records matching the filter, newest first.
func (s *SQLiteStore) Query(ctx context.Context, filter ports.EvidenceFilter) ([]domain.Evidence, error) {
	builder := sq.Select("id", "source", "url", "title", "body", "author",
		"posted_at", "collected_at",
		"sentiment_score", "sentiment_label",
		"iocs", "threat_level", "status", "status_note").
		From("evidence").
		OrderBy("collected_at DESC, id DESC")

	if !filter.Since.IsZero() {
		builder = builder.Where(sq.GtOrEq{"collected_at": filter.Since})
	}
	if filter.ThreatLevel != "" {
		builder = builder.Where(sq.Eq{"threat_level": string(filter.ThreatLevel)})
	}
	if filter.SentimentLabel != "" {
		builder = builder.Where(sq.Eq{"sentiment_label": string(filter.SentimentLabel)})
	}
	if filter.SourceContains != "" {
		builder = builder.Where(sq.Like{"source": "%" + filter.SourceContains + "%"})
	}
	if filter.TextContains != "" {
		pattern := "%" + filter.TextContains + "%"
		builder = builder.Where(sq.Or{
			sq.Like{"title": pattern},
			sq.Like{"body": pattern},
			sq.Like{"iocs": pattern},
		})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evidence: %w", err)
	}
	defer rows.Close()

	var records []domain.Evidence
	for rows.Next() {
		ev, err := scanEvidence(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return records, nil
}

func scanEvidence(rows *sql.Rows) (domain.Evidence, error) {
	var (
		ev             domain.Evidence
		postedAt       time.Time
		collectedAt    time.Time
		sentimentLabel string
		threatLevel    string
		status         string
	)

	err := rows.Scan(&ev.ID, &ev.Source, &ev.URL, &ev.Title, &ev.Body, &ev.Author,
		&postedAt, &collectedAt,
		&ev.SentimentScore, &sentimentLabel,
		&ev.IOCs, &threatLevel, &status, &ev.StatusNote)
	if err != nil {
		return domain.Evidence{}, fmt.Errorf("scan evidence: %w", err)
	}

	ev.PostedAt = postedAt
	ev.CollectedAt = collectedAt
	ev.SentimentLabel = domain.SentimentLabel(sentimentLabel)
	ev.ThreatLevel = domain.ThreatLevel(threatLevel)
	ev.Status = domain.RetrievalStatus(status)
	return ev, nil
}
