package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TWStockBoard/internal/model"
)

// MemoryDSN keeps the SQLite cache in RAM for the life of the process.
const MemoryDSN = ":memory:"

// SQLite keeps monthly payloads in a SQLite table.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLite opens (or creates) the cache database and runs migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every pooled connection to ":memory:" would see its own empty database.
	db.SetMaxOpenConns(1)

	if !strings.Contains(dsn, "memory") {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	c := &SQLite{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite month cache opened: %s", dsn)
	return c, nil
}

func (c *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS month_payloads (
			code       TEXT    NOT NULL,
			month      TEXT    NOT NULL,
			payload    BLOB    NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (code, month)
		)`,
	}
	for _, s := range stmts {
		if _, err := c.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (c *SQLite) Get(key model.MonthKey) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var payload []byte
	err := c.db.QueryRow(`SELECT payload FROM month_payloads WHERE code = ? AND month = ?`,
		key.Code, key.Param()).Scan(&payload)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("[WARN] sqlite cache get %s: %v", key, err)
		}
		return nil, false
	}
	return payload, true
}

func (c *SQLite) Put(key model.MonthKey, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(`INSERT OR REPLACE INTO month_payloads (code, month, payload, fetched_at)
		VALUES (?,?,?,?)`,
		key.Code, key.Param(), payload, time.Now().Unix(),
	)
	if err != nil {
		log.Printf("[WARN] sqlite cache put %s: %v", key, err)
	}
}

func (c *SQLite) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM month_payloads`).Scan(&n); err != nil {
		log.Printf("[WARN] sqlite cache count: %v", err)
		return 0
	}
	return n
}

func (c *SQLite) Close() error {
	log.Println("[INFO] closing sqlite month cache")
	return c.db.Close()
}
