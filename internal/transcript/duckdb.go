package transcript

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/Project-Sylos/Studio/internal/types"
	"github.com/goccy/go-json"
	_ "github.com/marcboeker/go-duckdb"
)

const createTranscriptsSQL = `CREATE TABLE IF NOT EXISTS transcripts (
	session_id  VARCHAR NOT NULL,
	storage_key VARCHAR NOT NULL,
	messages    VARCHAR NOT NULL,
	updated_at  TIMESTAMP NOT NULL,
	PRIMARY KEY (session_id, storage_key)
)`

// DuckDB stores each transcript as one JSON row
type DuckDB struct {
	conn *sql.DB
	mu   sync.Mutex // Protects all database operations from concurrent access
}

// NewDuckDB opens the database file and creates the schema
func NewDuckDB(dbPath string) (*DuckDB, error) {
	conn, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	db := &DuckDB{conn: conn}
	if err := db.InitializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

// InitializeSchema creates the transcripts table if it does not exist
func (db *DuckDB) InitializeSchema() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec(createTranscriptsSQL); err != nil {
		return fmt.Errorf("failed to create transcripts table: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DuckDB) Close() error {
	return db.conn.Close()
}

// Load returns the transcript stored under key
func (db *DuckDB) Load(key Key) ([]types.ChatMessage, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var raw string
	err := db.conn.QueryRow(
		"SELECT messages FROM transcripts WHERE session_id = ? AND storage_key = ?",
		key.SessionID, key.StorageKey,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript %s/%s: %w", key.SessionID, key.StorageKey, err)
	}

	var messages []types.ChatMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transcript: %w", err)
	}
	return messages, nil
}

// Save replaces the transcript stored under key
func (db *DuckDB) Save(key Key, messages []types.ChatMessage) error {
	if messages == nil {
		messages = []types.ChatMessage{}
	}
	raw, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM transcripts WHERE session_id = ? AND storage_key = ?",
		key.SessionID, key.StorageKey,
	); err != nil {
		return fmt.Errorf("failed to replace transcript: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO transcripts (session_id, storage_key, messages, updated_at) VALUES (?, ?, ?, ?)",
		key.SessionID, key.StorageKey, string(raw), time.Now(),
	); err != nil {
		return fmt.Errorf("failed to insert transcript: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transcript: %w", err)
	}
	return nil
}

// Clear removes the transcript stored under key
func (db *DuckDB) Clear(key Key) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec(
		"DELETE FROM transcripts WHERE session_id = ? AND storage_key = ?",
		key.SessionID, key.StorageKey,
	); err != nil {
		return fmt.Errorf("failed to clear transcript: %w", err)
	}
	return nil
}

// Count returns the number of stored transcripts
func (db *DuckDB) Count() (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM transcripts").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transcripts: %w", err)
	}
	return count, nil
}
