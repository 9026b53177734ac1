// Package persistence stores run history in SQLite: per-day aggregate
// stats, the event log, a snapshot of the living population, and run
// metadata. The simulation never reads its own state back mid-run; the
// tables exist for reporting and the status API.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/oakvale/villagesim/internal/engine"
)

// DB wraps a SQLite connection for run history storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS day_stats (
		day INTEGER PRIMARY KEY,
		population INTEGER NOT NULL,
		average_happiness REAL NOT NULL,
		average_health REAL NOT NULL,
		attractiveness REAL NOT NULL,
		treasury REAL NOT NULL,
		food_stored INTEGER NOT NULL,
		deaths_total INTEGER NOT NULL,
		immigrants_total INTEGER NOT NULL,
		emigrants_total INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS villagers (
		name TEXT PRIMARY KEY,
		age INTEGER NOT NULL,
		occupation TEXT NOT NULL,
		health INTEGER NOT NULL,
		happiness INTEGER NOT NULL,
		energy INTEGER NOT NULL,
		money REAL NOT NULL,
		skills_json TEXT NOT NULL,
		inventory_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_day ON events(day);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveDay records one finished day: the aggregate row plus any events the
// day produced.
func (db *DB) SaveDay(stats engine.VillageStats, events []engine.Event) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT OR REPLACE INTO day_stats
		(day, population, average_happiness, average_health, attractiveness,
		 treasury, food_stored, deaths_total, immigrants_total, emigrants_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.Day, stats.Population, stats.AverageHappiness, stats.AverageHealth,
		stats.Attractiveness, stats.Treasury, stats.FoodStored,
		stats.DeathsTotal, stats.ImmigrantsTotal, stats.EmigrantsTotal,
	)
	if err != nil {
		return fmt.Errorf("insert day %d: %w", stats.Day, err)
	}

	for _, e := range events {
		if e.Day != stats.Day {
			continue
		}
		_, err := tx.Exec(
			"INSERT INTO events (day, category, description) VALUES (?, ?, ?)",
			e.Day, e.Category, e.Description,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveVillagers snapshots the living population (full replace).
func (db *DB) SaveVillagers(m *engine.VillageManager) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM villagers"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO villagers
		(name, age, occupation, health, happiness, energy, money,
		 skills_json, inventory_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range m.Villagers() {
		skillsJSON, _ := json.Marshal(v.Skills)
		invJSON, _ := json.Marshal(v.Inventory)
		_, err := stmt.Exec(
			v.Name, v.Age, string(v.Occupation),
			v.Health, v.Happiness, v.Energy, v.Money,
			string(skillsJSON), string(invJSON),
		)
		if err != nil {
			return fmt.Errorf("insert villager %s: %w", v.Name, err)
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in run metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}

// SaveRunState performs a full save at the end of a tick.
func (db *DB) SaveRunState(m *engine.VillageManager) error {
	if err := db.SaveDay(m.Stats, m.RecentEvents(0)); err != nil {
		return fmt.Errorf("save day: %w", err)
	}
	if err := db.SaveVillagers(m); err != nil {
		return fmt.Errorf("save villagers: %w", err)
	}
	if err := db.SaveMeta("village_id", m.ID.String()); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := db.SaveMeta("last_day", fmt.Sprintf("%d", m.Day)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	slog.Debug("run state saved", "day", m.Day, "villagers", m.Population())
	return nil
}

// RecentEvents returns the most recent N stored events, newest first.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT day, category, description FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

// History returns the stored day rows in day order.
func (db *DB) History() ([]engine.VillageStats, error) {
	rows, err := db.conn.Queryx(`SELECT day, population, average_happiness,
		average_health, attractiveness, treasury, food_stored,
		deaths_total, immigrants_total, emigrants_total
		FROM day_stats ORDER BY day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.VillageStats
	for rows.Next() {
		var s engine.VillageStats
		err := rows.Scan(&s.Day, &s.Population, &s.AverageHappiness,
			&s.AverageHealth, &s.Attractiveness, &s.Treasury, &s.FoodStored,
			&s.DeathsTotal, &s.ImmigrantsTotal, &s.EmigrantsTotal)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
