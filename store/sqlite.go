package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/campusgo/assistant/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS faq_templates (
			id TEXT PRIMARY KEY,
			keywords TEXT NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			priority INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_faq_priority ON faq_templates(priority DESC)`,
		`CREATE TABLE IF NOT EXISTS dining_locations (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			hours TEXT NOT NULL DEFAULT '',
			is_open INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS buildings (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			code TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS campus_events (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			start_time DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_start ON campus_events(start_time)`,
		`CREATE TABLE IF NOT EXISTS courses (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL,
			name TEXT NOT NULL,
			instructor TEXT NOT NULL DEFAULT '',
			schedule TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS response_cache (
			query_key TEXT PRIMARY KEY,
			response_data TEXT NOT NULL,
			category TEXT,
			expires_at DATETIME NOT NULL,
			hit_count INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			message_index INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			metadata TEXT,
			FOREIGN KEY (session_id) REFERENCES sessions(session_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, message_index)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// DB exposes the underlying connection for tests and migrations.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ListFAQTemplates returns all FAQ templates ordered by priority descending.
func (s *SQLiteStore) ListFAQTemplates(ctx context.Context) ([]domain.FAQTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, keywords, question, answer, category, priority FROM faq_templates ORDER BY priority DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.FAQTemplate
	for rows.Next() {
		var t domain.FAQTemplate
		var keywords string
		if err := rows.Scan(&t.ID, &keywords, &t.Question, &t.Answer, &t.Category, &t.Priority); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(keywords), &t.Keywords); err != nil {
			return nil, fmt.Errorf("failed to decode keywords for template %s: %w", t.ID, err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// CreateFAQTemplate inserts or replaces an FAQ template.
func (s *SQLiteStore) CreateFAQTemplate(ctx context.Context, t *domain.FAQTemplate) error {
	keywords, err := json.Marshal(t.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO faq_templates (id, keywords, question, answer, category, priority) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, string(keywords), t.Question, t.Answer, t.Category, t.Priority)
	return err
}

// SearchDining returns dining locations whose name contains term
// (case-insensitive).
func (s *SQLiteStore) SearchDining(ctx context.Context, term string, limit int) ([]domain.DiningLocation, error) {
	query := `SELECT id, name, hours, is_open FROM dining_locations WHERE LOWER(name) LIKE ? ESCAPE '\' ORDER BY name ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := s.db.QueryContext(ctx, query, likePattern(term))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDining(rows)
}

// ListOpenDining returns currently-open dining locations.
func (s *SQLiteStore) ListOpenDining(ctx context.Context, limit int) ([]domain.DiningLocation, error) {
	query := `SELECT id, name, hours, is_open FROM dining_locations WHERE is_open = 1 ORDER BY name ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDining(rows)
}

// SearchBuildings returns buildings whose name or code contains term
// (case-insensitive).
func (s *SQLiteStore) SearchBuildings(ctx context.Context, term string, limit int) ([]domain.Building, error) {
	query := `SELECT id, name, code, address FROM buildings WHERE LOWER(name) LIKE ? ESCAPE '\' OR LOWER(code) LIKE ? ESCAPE '\' ORDER BY name ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := s.db.QueryContext(ctx, query, likePattern(term), likePattern(term))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buildings []domain.Building
	for rows.Next() {
		var b domain.Building
		if err := rows.Scan(&b.ID, &b.Name, &b.Code, &b.Address); err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}

// SearchEvents returns events whose title contains term, starting at or after
// the given time.
func (s *SQLiteStore) SearchEvents(ctx context.Context, term string, after time.Time, limit int) ([]domain.CampusEvent, error) {
	query := `SELECT id, title, location, start_time FROM campus_events WHERE LOWER(title) LIKE ? ESCAPE '\' AND start_time >= ? ORDER BY start_time ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := s.db.QueryContext(ctx, query, likePattern(term), after)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListUpcomingEvents returns events starting at or after the given time.
func (s *SQLiteStore) ListUpcomingEvents(ctx context.Context, after time.Time, limit int) ([]domain.CampusEvent, error) {
	query := `SELECT id, title, location, start_time FROM campus_events WHERE start_time >= ? ORDER BY start_time ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := s.db.QueryContext(ctx, query, after)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// SearchCourses returns courses whose name or code contains term
// (case-insensitive).
func (s *SQLiteStore) SearchCourses(ctx context.Context, term string, limit int) ([]domain.Course, error) {
	query := `SELECT id, code, name, instructor, schedule FROM courses WHERE LOWER(name) LIKE ? ESCAPE '\' OR LOWER(code) LIKE ? ESCAPE '\' ORDER BY code ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := s.db.QueryContext(ctx, query, likePattern(term), likePattern(term))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Instructor, &c.Schedule); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetResponseCache retrieves a cache entry by key. Returns nil without error
// when no row exists; expiry is the caller's concern.
func (s *SQLiteStore) GetResponseCache(ctx context.Context, key string) (*domain.CacheEntry, error) {
	var entry domain.CacheEntry
	var responseData string
	var category sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT query_key, response_data, category, expires_at, hit_count FROM response_cache WHERE query_key = ?`,
		key).Scan(&entry.QueryKey, &responseData, &category, &entry.ExpiresAt, &entry.HitCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	entry.ResponseData = json.RawMessage(responseData)
	if category.Valid {
		entry.Category = category.String
	}
	return &entry, nil
}

// UpsertResponseCache inserts or unconditionally replaces a cache entry.
func (s *SQLiteStore) UpsertResponseCache(ctx context.Context, entry *domain.CacheEntry) error {
	var category sql.NullString
	if entry.Category != "" {
		category = sql.NullString{String: entry.Category, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO response_cache (query_key, response_data, category, expires_at, hit_count) VALUES (?, ?, ?, ?, ?)`,
		entry.QueryKey, string(entry.ResponseData), category, entry.ExpiresAt, entry.HitCount)
	return err
}

// IncrementCacheHit increments the hit count for a cache entry.
func (s *SQLiteStore) IncrementCacheHit(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE response_cache SET hit_count = hit_count + 1 WHERE query_key = ?`,
		key)
	return err
}

// CreateSession creates a new session.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, user_id, created_at) VALUES (?, ?, ?)`,
		session.SessionID, session.UserID, session.CreatedAt)
	return err
}

// GetSession retrieves a session by ID.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session domain.Session
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, user_id, created_at FROM sessions WHERE session_id = ?`,
		sessionID).Scan(&session.SessionID, &session.UserID, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetOrCreateSession gets an existing session or creates a new one.
func (s *SQLiteStore) GetOrCreateSession(ctx context.Context, sessionID, userID string) (*domain.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	session = &domain.Session{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CreateMessage creates a new message, assigning the next message index for
// its session. Sessions are single-writer, so the read-then-insert race is
// acceptable.
func (s *SQLiteStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	metadata := ""
	if message.Metadata != nil {
		metadata = string(message.Metadata)
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO messages (message_id, session_id, role, content, message_index, created_at, metadata)
		 VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(message_index) + 1, 0) FROM messages WHERE session_id = ?), ?, ?)
		 RETURNING message_index`,
		message.MessageID, message.SessionID, message.Role, message.Content,
		message.SessionID, message.CreatedAt, metadata).Scan(&message.MessageIndex)
	return err
}

// GetMessages retrieves messages for a session ordered by message index.
// beforeIndex < 0 disables the cursor.
func (s *SQLiteStore) GetMessages(ctx context.Context, sessionID string, limit int, beforeIndex int) ([]domain.Message, error) {
	query := `SELECT message_id, session_id, role, content, message_index, created_at, metadata FROM messages WHERE session_id = ?`
	args := []interface{}{sessionID}

	if beforeIndex >= 0 {
		query += ` AND message_index < ?`
		args = append(args, beforeIndex)
	}

	query += ` ORDER BY message_index ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// GetRecentMessages returns the last limit messages for a session in
// ascending index order.
func (s *SQLiteStore) GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	query := `SELECT message_id, session_id, role, content, message_index, created_at, metadata FROM (
		SELECT message_id, session_id, role, content, message_index, created_at, metadata
		FROM messages WHERE session_id = ? ORDER BY message_index DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	query += `) ORDER BY message_index ASC`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func scanDining(rows *sql.Rows) ([]domain.DiningLocation, error) {
	var locations []domain.DiningLocation
	for rows.Next() {
		var d domain.DiningLocation
		if err := rows.Scan(&d.ID, &d.Name, &d.Hours, &d.IsOpen); err != nil {
			return nil, err
		}
		locations = append(locations, d)
	}
	return locations, rows.Err()
}

func scanEvents(rows *sql.Rows) ([]domain.CampusEvent, error) {
	var events []domain.CampusEvent
	for rows.Next() {
		var e domain.CampusEvent
		if err := rows.Scan(&e.ID, &e.Title, &e.Location, &e.StartTime); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func scanMessages(rows *sql.Rows) ([]domain.Message, error) {
	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var metadata sql.NullString
		if err := rows.Scan(&msg.MessageID, &msg.SessionID, &msg.Role, &msg.Content, &msg.MessageIndex, &msg.CreatedAt, &metadata); err != nil {
			return nil, err
		}
		if metadata.Valid && metadata.String != "" {
			msg.Metadata = json.RawMessage(metadata.String)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a contains-match LIKE pattern, escaping metacharacters
// in the term so "50%" matches literally. Queries using it must carry
// ESCAPE '\'.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
