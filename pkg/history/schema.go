package history

// schemaSQL creates the run ledger. Statements are idempotent.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL UNIQUE,
	started_at DATETIME NOT NULL,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	master_path TEXT NOT NULL,
	output_path TEXT,
	precedence TEXT,
	purge_policy TEXT,
	master_rows INTEGER NOT NULL DEFAULT 0,
	existing INTEGER NOT NULL DEFAULT 0,
	removed INTEGER NOT NULL DEFAULT 0,
	newly_added INTEGER NOT NULL DEFAULT 0,
	purged INTEGER NOT NULL DEFAULT 0,
	coverage_matched INTEGER NOT NULL DEFAULT 0,
	total_rows INTEGER NOT NULL DEFAULT 0,
	dry_run INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_inputs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	source TEXT NOT NULL,
	path TEXT,
	row_count INTEGER NOT NULL DEFAULT 0,
	degraded INTEGER NOT NULL DEFAULT 0,
	message TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_run_inputs_run_id ON run_inputs(run_id);
`
