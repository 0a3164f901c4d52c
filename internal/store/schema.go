package store

// kvSchema is valid for both sqlite and postgres. Safe to run repeatedly.
const kvSchema = `
CREATE TABLE IF NOT EXISTS kv_entry (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at BIGINT NOT NULL
);
`
