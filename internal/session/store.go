package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/berth-dev/deckhand/internal/answers"
)

// Store provides SQLite-backed persistence for sessions.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they don't exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		questionnaire TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS answers (
		session_id TEXT NOT NULL,
		question_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (session_id, question_id),
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateSession starts a new session for the given questionnaire.
func (s *Store) CreateSession(questionnaire string) (*Session, error) {
	id := uuid.New().String()
	now := time.Now()

	_, err := s.db.Exec(
		`INSERT INTO sessions (id, questionnaire, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, questionnaire, StatusActive, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	return &Session{
		ID:            id,
		Questionnaire: questionnaire,
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// GetSession retrieves a session by ID. Returns nil, nil when not found.
func (s *Store) GetSession(id string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, questionnaire, status, created_at, updated_at
		 FROM sessions WHERE id = ?`,
		id,
	)

	var sess Session
	err := row.Scan(&sess.ID, &sess.Questionnaire, &sess.Status, &sess.CreatedAt, &sess.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}

	return &sess, nil
}

// SetStatus updates a session's status.
func (s *Store) SetStatus(id, status string) error {
	_, err := s.db.Exec(
		`UPDATE sessions SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// GetLatestActive returns the most recently updated active session for the
// given questionnaire. Returns nil, nil when there is none.
func (s *Store) GetLatestActive(questionnaire string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, questionnaire, status, created_at, updated_at
		 FROM sessions
		 WHERE questionnaire = ? AND status = ?
		 ORDER BY updated_at DESC
		 LIMIT 1`,
		questionnaire, StatusActive,
	)

	var sess Session
	err := row.Scan(&sess.ID, &sess.Questionnaire, &sess.Status, &sess.CreatedAt, &sess.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}

	return &sess, nil
}

// ListSessions returns summaries of the most recent sessions.
func (s *Store) ListSessions(limit int) ([]Summary, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.questionnaire, s.status, s.updated_at,
		        COALESCE(COUNT(a.question_id), 0) as answered
		 FROM sessions s
		 LEFT JOIN answers a ON s.id = a.session_id
		 GROUP BY s.id
		 ORDER BY s.updated_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Questionnaire, &sum.Status, &sum.UpdatedAt, &sum.Answered); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return summaries, nil
}

// SaveAnswers replaces every stored answer for the session with the
// contents of store.
func (s *Store) SaveAnswers(sessionID string, store answers.Store) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM answers WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clear answers: %w", err)
	}

	now := time.Now()
	exported := store.Export()
	for _, qid := range store.QuestionIDs() {
		value, err := json.Marshal(exported[qid])
		if err != nil {
			return fmt.Errorf("encode answer %s: %w", qid, err)
		}
		_, err = tx.Exec(
			`INSERT INTO answers (session_id, question_id, kind, value, updated_at)
			 VALUES (?, ?, ?, ?, ?)`,
			sessionID, qid, store.KindOf(qid).String(), string(value), now,
		)
		if err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}
	}

	if _, err := tx.Exec(`UPDATE sessions SET updated_at = ? WHERE id = ?`, now, sessionID); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit answers: %w", err)
	}
	return nil
}

// GetAnswerRows retrieves the raw stored answers for a session.
func (s *Store) GetAnswerRows(sessionID string) ([]AnswerRow, error) {
	rows, err := s.db.Query(
		`SELECT session_id, question_id, kind, value, updated_at
		 FROM answers
		 WHERE session_id = ?
		 ORDER BY question_id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []AnswerRow
	for rows.Next() {
		var row AnswerRow
		if err := rows.Scan(&row.SessionID, &row.QuestionID, &row.Kind, &row.Value, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return out, nil
}

// GetAnswers rebuilds the answer store for a session.
func (s *Store) GetAnswers(sessionID string) (answers.Store, error) {
	rows, err := s.GetAnswerRows(sessionID)
	if err != nil {
		return answers.Store{}, err
	}

	exported := make(map[string]any, len(rows))
	for _, row := range rows {
		var v any
		if err := json.Unmarshal([]byte(row.Value), &v); err != nil {
			return answers.Store{}, fmt.Errorf("decode answer %s: %w", row.QuestionID, err)
		}
		exported[row.QuestionID] = v
	}

	return answers.Import(exported), nil
}
