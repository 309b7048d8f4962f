package symbolgraph

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/sweepa/sweepa/internal/engine/model"
)

const sqliteDriverName = "sqlite"

// Cache is an optional on-disk store for a built Graph, narrowed from the
// teacher's SQLiteSymbolStore (internal/engine/graph/symbol_store.go): one
// full snapshot per project instead of per-file upserts, since Build always
// re-derives the whole graph from the candidate file set in one pass. A
// large tree whose file set hasn't changed since the last run can load the
// graph straight back instead of re-running every facade call C5 needs.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if absent) the sqlite-backed cache at path.
func OpenCache(path string) (*Cache, error) {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return nil, fmt.Errorf("symbol cache path must not be empty")
	}
	if dir := filepath.Dir(clean); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create symbol cache directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", clean)
	db, err := sql.Open(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open symbol cache %q: %w", clean, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping symbol cache %q: %w", clean, err)
	}
	if err := migrateCacheSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func migrateCacheSchema(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS cache_meta (key TEXT PRIMARY KEY, value TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS cache_nodes (
  id TEXT PRIMARY KEY,
  file TEXT NOT NULL,
  name TEXT NOT NULL,
  kind TEXT NOT NULL,
  line INTEGER NOT NULL DEFAULT 0,
  column_ INTEGER NOT NULL DEFAULT 0,
  exported INTEGER NOT NULL DEFAULT 0,
  parent TEXT NOT NULL DEFAULT '',
  decorators TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS cache_edges (
  from_id TEXT NOT NULL,
  to_id TEXT NOT NULL,
  type TEXT NOT NULL,
  file TEXT NOT NULL DEFAULT '',
  line INTEGER NOT NULL DEFAULT 0,
  column_ INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (from_id, to_id)
);
`)
	if err != nil {
		return fmt.Errorf("migrate symbol cache schema: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Store replaces the cache's contents with g, recording files as the exact
// candidate set g was built from so Load can tell whether a later run's
// file set still matches.
func (c *Cache) Store(g *Graph, files []string) error {
	if c == nil || c.db == nil {
		return nil
	}

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	manifest, err := json.Marshal(sorted)
	if err != nil {
		return fmt.Errorf("marshal symbol cache manifest: %w", err)
	}

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin symbol cache store: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM cache_nodes`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear symbol cache nodes: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM cache_edges`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear symbol cache edges: %w", err)
	}

	for _, sym := range g.Nodes() {
		decorators, err := json.Marshal(sym.Decorators)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("marshal decorators for %s: %w", sym.ID, err)
		}
		if _, err := tx.Exec(`INSERT INTO cache_nodes
			(id, file, name, kind, line, column_, exported, parent, decorators)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(sym.ID), sym.File, sym.Name, string(sym.Kind), sym.Line, sym.Column,
			boolToInt(sym.Exported), string(sym.Parent), string(decorators),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert symbol cache node %s: %w", sym.ID, err)
		}
		for _, e := range g.OutEdges(sym.ID) {
			if _, err := tx.Exec(`INSERT OR REPLACE INTO cache_edges
				(from_id, to_id, type, file, line, column_) VALUES (?, ?, ?, ?, ?, ?)`,
				string(e.From), string(e.To), string(e.Type), e.File, e.Line, e.Column,
			); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("insert symbol cache edge %s -> %s: %w", e.From, e.To, err)
			}
		}
	}

	if _, err := tx.Exec(`INSERT INTO cache_meta (key, value) VALUES ('files', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, string(manifest)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("store symbol cache manifest: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit symbol cache store: %w", err)
	}
	return nil
}

// Load rebuilds a Graph from the cache if its recorded file manifest
// exactly matches files; returns (nil, nil) on a manifest mismatch or an
// empty cache, telling the caller to fall back to Build.
func (c *Cache) Load(files []string) (*Graph, error) {
	if c == nil || c.db == nil {
		return nil, nil
	}

	var rawManifest string
	err := c.db.QueryRow(`SELECT value FROM cache_meta WHERE key = 'files'`).Scan(&rawManifest)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read symbol cache manifest: %w", err)
	}
	var cached []string
	if err := json.Unmarshal([]byte(rawManifest), &cached); err != nil {
		return nil, fmt.Errorf("unmarshal symbol cache manifest: %w", err)
	}

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	if !equalStrings(cached, sorted) {
		return nil, nil
	}

	g := New()

	nodeRows, err := c.db.Query(`SELECT id, file, name, kind, line, column_, exported, parent, decorators FROM cache_nodes`)
	if err != nil {
		return nil, fmt.Errorf("read symbol cache nodes: %w", err)
	}
	defer nodeRows.Close()
	for nodeRows.Next() {
		var (
			id, file, name, kind, parent, decoratorsJSON string
			line, column, exported                       int
		)
		if err := nodeRows.Scan(&id, &file, &name, &kind, &line, &column, &exported, &parent, &decoratorsJSON); err != nil {
			return nil, fmt.Errorf("scan symbol cache node: %w", err)
		}
		var decorators []string
		_ = json.Unmarshal([]byte(decoratorsJSON), &decorators)
		g.AddNode(&model.Symbol{
			ID: model.SymbolID(id), File: file, Name: name, Kind: model.Kind(kind),
			Line: line, Column: column, Exported: exported != 0,
			Parent: model.SymbolID(parent), Decorators: decorators,
		})
	}
	if err := nodeRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate symbol cache nodes: %w", err)
	}

	edgeRows, err := c.db.Query(`SELECT from_id, to_id, type, file, line, column_ FROM cache_edges`)
	if err != nil {
		return nil, fmt.Errorf("read symbol cache edges: %w", err)
	}
	defer edgeRows.Close()
	for edgeRows.Next() {
		var (
			from, to, typ, file string
			line, column        int
		)
		if err := edgeRows.Scan(&from, &to, &typ, &file, &line, &column); err != nil {
			return nil, fmt.Errorf("scan symbol cache edge: %w", err)
		}
		g.AddEdge(model.Edge{
			From: model.SymbolID(from), To: model.SymbolID(to), Type: model.EdgeType(typ),
			File: file, Line: line, Column: column,
		})
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate symbol cache edges: %w", err)
	}

	return g, nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
