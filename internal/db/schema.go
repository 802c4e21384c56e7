package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS inventory (
    item_id      TEXT NOT NULL,
    location     TEXT NOT NULL CHECK (location IN ('1000', '1001')),
    name         TEXT NOT NULL,
    category     TEXT NOT NULL DEFAULT '',
    unit         TEXT NOT NULL DEFAULT '',
    quantity     INTEGER NOT NULL CHECK (quantity >= 0),
    last_updated DATETIME NOT NULL,
    PRIMARY KEY (item_id, location)
);

CREATE TABLE IF NOT EXISTS handovers (
    seq           INTEGER PRIMARY KEY,
    id            TEXT NOT NULL UNIQUE,
    date          DATETIME NOT NULL,
    from_location TEXT NOT NULL CHECK (from_location IN ('1000', '1001')),
    to_location   TEXT NOT NULL CHECK (to_location IN ('1000', '1001')),
    sender_name   TEXT NOT NULL,
    receiver_name TEXT NOT NULL,
    status        TEXT NOT NULL CHECK (status IN ('Draft', 'Completed')),
    summary       TEXT,
    CHECK (from_location <> to_location)
);

CREATE TABLE IF NOT EXISTS handover_lines (
    handover_id TEXT NOT NULL REFERENCES handovers(id),
    position    INTEGER NOT NULL,
    item_id     TEXT NOT NULL,
    item_name   TEXT NOT NULL,
    quantity    INTEGER NOT NULL CHECK (quantity > 0),
    PRIMARY KEY (handover_id, position)
);

CREATE TRIGGER IF NOT EXISTS handovers_append_only
    BEFORE UPDATE OF id, date, from_location, to_location, sender_name, receiver_name, status ON handovers
BEGIN
    SELECT RAISE(ABORT, 'handovers are append-only');
END;

CREATE TRIGGER IF NOT EXISTS handovers_no_delete
    BEFORE DELETE ON handovers
BEGIN
    SELECT RAISE(ABORT, 'handovers are append-only');
END;

CREATE TRIGGER IF NOT EXISTS handover_lines_immutable
    BEFORE UPDATE ON handover_lines
BEGIN
    SELECT RAISE(ABORT, 'handover lines are immutable');
END;
`

// EnsureSchema creates all tables and triggers if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
