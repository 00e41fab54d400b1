package db

// migrations holds the schema migrations in order. Index i is version i+1.
// Never edit an entry after release; add a new one.
var migrations = []string{
	`
	CREATE TABLE documents (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		path        TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'active',
		remote_id   TEXT,
		frame_count INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);

	CREATE UNIQUE INDEX idx_documents_path ON documents(path);
	`,
	`
	CREATE TABLE presentation_orders (
		document_id TEXT PRIMARY KEY,
		frames_json TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);
	`,
	`
	CREATE TABLE events (
		id            TEXT PRIMARY KEY,
		timestamp     TEXT NOT NULL,
		type          TEXT NOT NULL,
		entity_type   TEXT NOT NULL,
		entity_id     TEXT NOT NULL,
		payload_json  TEXT,
		metadata_json TEXT
	);

	CREATE INDEX idx_events_entity ON events(entity_type, entity_id, timestamp);
	CREATE INDEX idx_events_timestamp ON events(timestamp, id);
	`,
}
