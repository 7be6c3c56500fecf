package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// Manager 存储管理器
type Manager struct {
	db     *sql.DB
	dbPath string
}

// NewManager 创建存储管理器
func NewManager(dataDir string) (*Manager, error) {
	// 确保数据目录存在
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "minitodo.db")

	// 注意：modernc.org/sqlite 的驱动名称是 "sqlite" 而不是 "sqlite3"
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 启用外键约束 (子任务级联删除依赖它)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	m := &Manager{
		db:     db,
		dbPath: dbPath,
	}

	if err := m.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return m, nil
}

// Close 关闭数据库
func (m *Manager) Close() error {
	return m.db.Close()
}

// runMigrations 按版本执行数据库迁移
func (m *Manager) runMigrations() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now', 'localtime'))
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := m.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to query migration version: %w", err)
	}

	migrations := []func() error{
		m.migrationV1,
		m.migrationV2,
		m.migrationV3,
		m.migrationV4,
	}

	for i, migrate := range migrations {
		version := i + 1
		if current >= version {
			continue
		}
		if err := migrate(); err != nil {
			return fmt.Errorf("migration v%d failed: %w", version, err)
		}
		if _, err := m.db.Exec(`INSERT INTO migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("failed to record migration v%d: %w", version, err)
		}
	}

	return nil
}

// migrationV1 初始表结构: 待办/子任务/设置
func (m *Manager) migrationV1() error {
	schema := `
	CREATE TABLE IF NOT EXISTS todos (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		title           TEXT NOT NULL,
		description     TEXT,
		notify_at       TEXT,
		notify_before   INTEGER DEFAULT 0,
		notified        INTEGER DEFAULT 0,
		completed       INTEGER NOT NULL DEFAULT 0,
		sort_order      INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL DEFAULT (datetime('now', 'localtime')),
		updated_at      TEXT NOT NULL DEFAULT (datetime('now', 'localtime'))
	);

	CREATE TABLE IF NOT EXISTS subtasks (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		parent_id       INTEGER NOT NULL,
		title           TEXT NOT NULL,
		completed       INTEGER NOT NULL DEFAULT 0,
		sort_order      INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL DEFAULT (datetime('now', 'localtime')),
		updated_at      TEXT NOT NULL DEFAULT (datetime('now', 'localtime')),
		FOREIGN KEY (parent_id) REFERENCES todos(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS settings (
		key             TEXT PRIMARY KEY,
		value           TEXT NOT NULL,
		updated_at      TEXT NOT NULL DEFAULT (datetime('now', 'localtime'))
	);

	CREATE INDEX IF NOT EXISTS idx_todos_completed ON todos(completed);
	CREATE INDEX IF NOT EXISTS idx_todos_sort_order ON todos(sort_order);
	CREATE INDEX IF NOT EXISTS idx_todos_notify_at ON todos(notify_at);
	CREATE INDEX IF NOT EXISTS idx_subtasks_parent_id ON subtasks(parent_id);
	`
	_, err := m.db.Exec(schema)
	return err
}

// migrationV2 待办增加开始/截止时间
func (m *Manager) migrationV2() error {
	stmts := []string{
		`ALTER TABLE todos ADD COLUMN start_time TEXT`,
		`ALTER TABLE todos ADD COLUMN end_time TEXT`,
	}
	for _, stmt := range stmts {
		if _, err := m.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// migrationV3 待办增加颜色和四象限字段
func (m *Manager) migrationV3() error {
	stmts := []string{
		`ALTER TABLE todos ADD COLUMN color TEXT NOT NULL DEFAULT '#3B82F6'`,
		`ALTER TABLE todos ADD COLUMN quadrant INTEGER NOT NULL DEFAULT 4`,
	}
	for _, stmt := range stmts {
		if _, err := m.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// migrationV4 屏幕配置表
func (m *Manager) migrationV4() error {
	schema := `
	CREATE TABLE IF NOT EXISTS screen_configs (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		config_id       TEXT NOT NULL UNIQUE,
		display_name    TEXT,
		window_x        INTEGER NOT NULL DEFAULT 0,
		window_y        INTEGER NOT NULL DEFAULT 0,
		window_width    INTEGER NOT NULL DEFAULT 380,
		window_height   INTEGER NOT NULL DEFAULT 600,
		is_fixed        INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL DEFAULT (datetime('now', 'localtime')),
		updated_at      TEXT NOT NULL DEFAULT (datetime('now', 'localtime'))
	);

	CREATE INDEX IF NOT EXISTS idx_screen_configs_config_id ON screen_configs(config_id);
	`
	_, err := m.db.Exec(schema)
	return err
}
