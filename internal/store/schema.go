package store

// Schema DDL. Uniqueness on (symbol, date) is load-bearing: it makes every
// historical and snapshot write idempotent and safe to retry.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS coins (
		symbol    TEXT PRIMARY KEY,
		full_name TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS historical_data (
		id          BIGSERIAL PRIMARY KEY,
		symbol      TEXT NOT NULL,
		date        DATE NOT NULL,
		open        DOUBLE PRECISION,
		high        DOUBLE PRECISION,
		low         DOUBLE PRECISION,
		close       DOUBLE PRECISION,
		volume_from DOUBLE PRECISION,
		volume_to   DOUBLE PRECISION,
		CONSTRAINT historical_symbol_date_unique UNIQUE (symbol, date),
		CONSTRAINT historical_symbol_fk FOREIGN KEY (symbol)
			REFERENCES coins(symbol)
			ON UPDATE CASCADE
			ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		id             BIGSERIAL PRIMARY KEY,
		symbol         TEXT NOT NULL,
		date           DATE NOT NULL,
		last_price     DOUBLE PRECISION,
		open_24h       DOUBLE PRECISION,
		high_24h       DOUBLE PRECISION,
		low_24h        DOUBLE PRECISION,
		volume_24h     DOUBLE PRECISION,
		volume_24h_to  DOUBLE PRECISION,
		change_pct_24h DOUBLE PRECISION,
		market_cap     DOUBLE PRECISION,
		supply         DOUBLE PRECISION,
		CONSTRAINT snapshots_symbol_date_unique UNIQUE (symbol, date),
		CONSTRAINT snapshots_symbol_fk FOREIGN KEY (symbol)
			REFERENCES coins(symbol)
			ON UPDATE CASCADE
			ON DELETE CASCADE
	)`,
}
