package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

func Initialize(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func Migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			currency TEXT DEFAULT 'CHF',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			expires_at DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS csrf_tokens (
			token TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			expires_at DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS raw_products (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			product_type TEXT NOT NULL,
			strain_name TEXT NOT NULL,
			source TEXT,
			quality_notes TEXT DEFAULT '',
			thc_content REAL,
			cbd_content REAL,
			current_amount REAL NOT NULL DEFAULT 0,
			original_amount REAL NOT NULL DEFAULT 0,
			cost REAL,
			purchase_date DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS consumables (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			consumable_type TEXT NOT NULL,
			name TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0,
			grams_per_unit REAL NOT NULL,
			cost_per_unit REAL,
			source_strain TEXT,
			thc_content REAL,
			notes TEXT DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS consumption_entries (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			product_name TEXT NOT NULL,
			amount REAL NOT NULL,
			unit TEXT NOT NULL DEFAULT 'g',
			consumption_method TEXT DEFAULT '',
			consumable_id TEXT,
			units_consumed REAL,
			rating INTEGER,
			notes TEXT DEFAULT '',
			consumed_at DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (consumable_id) REFERENCES consumables(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tolerance_tracking (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			tracking_date DATETIME NOT NULL,
			baseline_amount REAL NOT NULL,
			effectiveness_rating INTEGER NOT NULL,
			tolerance_break_start DATETIME,
			tolerance_break_end DATETIME,
			notes TEXT DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS budget_settings (
			id TEXT PRIMARY KEY,
			user_id INTEGER UNIQUE NOT NULL,
			monthly_budget REAL NOT NULL,
			weekly_budget REAL,
			alert_threshold REAL NOT NULL DEFAULT 80,
			email_alerts BOOLEAN DEFAULT FALSE,
			push_alerts BOOLEAN DEFAULT FALSE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS budget_alerts (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			alert_type TEXT NOT NULL,
			current_spending REAL NOT NULL,
			budget_limit REAL NOT NULL,
			percentage_used REAL NOT NULL,
			alert_date DATETIME DEFAULT CURRENT_TIMESTAMP,
			acknowledged BOOLEAN DEFAULT FALSE,
			acknowledged_at DATETIME,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS mood_tracking (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			consumption_entry_id TEXT NOT NULL,
			pre_mood_energy INTEGER NOT NULL,
			pre_mood_happiness INTEGER NOT NULL,
			pre_mood_stress INTEGER NOT NULL,
			pre_mood_focus INTEGER NOT NULL,
			pre_mood_anxiety INTEGER NOT NULL,
			pre_mood_pain INTEGER NOT NULL,
			post_mood_energy INTEGER,
			post_mood_happiness INTEGER,
			post_mood_stress INTEGER,
			post_mood_focus INTEGER,
			post_mood_anxiety INTEGER,
			post_mood_pain INTEGER,
			effects_onset_minutes INTEGER,
			effects_duration_minutes INTEGER,
			effects_intensity INTEGER,
			experience_rating INTEGER,
			side_effects TEXT DEFAULT '',
			environment TEXT DEFAULT '',
			activity TEXT DEFAULT '',
			mood_notes TEXT DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (consumption_entry_id) REFERENCES consumption_entries(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_csrf_tokens_user_id ON csrf_tokens(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_raw_products_user_id ON raw_products(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_raw_products_strain ON raw_products(strain_name)`,
		`CREATE INDEX IF NOT EXISTS idx_consumables_user_id ON consumables(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_user_id ON consumption_entries(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_consumed_at ON consumption_entries(consumed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_tolerance_user_id ON tolerance_tracking(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tolerance_date ON tolerance_tracking(tracking_date)`,
		`CREATE INDEX IF NOT EXISTS idx_budget_alerts_user_id ON budget_alerts(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_mood_user_id ON mood_tracking(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_mood_entry_id ON mood_tracking(consumption_entry_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}
