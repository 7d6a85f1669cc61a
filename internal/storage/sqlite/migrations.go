package sqlite

import "database/sql"

// schema sets up the key/value table. It runs on startup to ensure the table exists.
// Values are whole JSON snapshots; there is one row per storage key.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
