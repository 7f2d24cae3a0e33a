package journal

// Amounts are stored as TEXT to keep every decimal digit.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	years INTEGER NOT NULL,
	investment TEXT NOT NULL,
	start_units INTEGER NOT NULL,
	end_units INTEGER NOT NULL,
	start_total TEXT NOT NULL,
	end_total TEXT NOT NULL,
	cash TEXT NOT NULL,
	capital_gains TEXT NOT NULL,
	annualized_return REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS chart (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	date TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (run_id, date)
);

CREATE TABLE IF NOT EXISTS events (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	seq INTEGER NOT NULL,
	date TEXT NOT NULL,
	kind TEXT NOT NULL,
	units INTEGER NOT NULL,
	amount TEXT NOT NULL,
	cash TEXT NOT NULL,
	message TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_runs_symbol ON runs(symbol);
`
