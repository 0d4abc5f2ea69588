package database

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sales (
		id UUID PRIMARY KEY,
		product_type TEXT NOT NULL,
		color TEXT,
		design TEXT NOT NULL,
		size TEXT,
		price NUMERIC(10, 2) NOT NULL,
		cogs NUMERIC(10, 2) NOT NULL,
		payment_method TEXT NOT NULL,
		seller TEXT,
		notes TEXT,
		date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sales_date_idx ON sales (date)`,
	`CREATE TABLE IF NOT EXISTS presales (
		id UUID PRIMARY KEY,
		product_type TEXT NOT NULL,
		color TEXT,
		design TEXT NOT NULL,
		size TEXT,
		price NUMERIC(10, 2) NOT NULL,
		cogs NUMERIC(10, 2) NOT NULL,
		payment_method TEXT NOT NULL,
		seller TEXT,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		sold BOOLEAN NOT NULL DEFAULT FALSE,
		fulfilled_date TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS presales_created_at_idx ON presales (created_at DESC)`,
}

// sqliteSchema stores timestamps as DATETIME so the driver parses them back
// into time.Time, and keeps money as TEXT to avoid float rounding.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS sales (
		id TEXT PRIMARY KEY,
		product_type TEXT NOT NULL,
		color TEXT,
		design TEXT NOT NULL,
		size TEXT,
		price TEXT NOT NULL,
		cogs TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		seller TEXT,
		notes TEXT,
		date DATETIME NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sales_date_idx ON sales (date)`,
	`CREATE TABLE IF NOT EXISTS presales (
		id TEXT PRIMARY KEY,
		product_type TEXT NOT NULL,
		color TEXT,
		design TEXT NOT NULL,
		size TEXT,
		price TEXT NOT NULL,
		cogs TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		seller TEXT,
		notes TEXT,
		created_at DATETIME NOT NULL,
		sold BOOLEAN NOT NULL DEFAULT FALSE,
		fulfilled_date DATETIME
	)`,
	`CREATE INDEX IF NOT EXISTS presales_created_at_idx ON presales (created_at DESC)`,
}
