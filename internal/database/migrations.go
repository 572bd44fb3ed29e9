package database

import (
	"database/sql"

	migrate "github.com/rubenv/sql-migrate"
)

// Schema migrations, applied in order at startup. sql-migrate records applied
// IDs in its own bookkeeping table, so repeated startups are no-ops and the
// stored rows are never touched.
var migrationSource = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "001_create_definitions",
			Up: []string{`
				CREATE TABLE IF NOT EXISTS definitions (
					project_name VARCHAR(255) PRIMARY KEY,
					payload      TEXT NOT NULL,
					checksum     VARCHAR(64) NOT NULL,
					created_at   DATETIME,
					updated_at   DATETIME
				);
			`},
			Down: []string{`DROP TABLE definitions;`},
		},
		{
			Id: "002_create_submissions",
			Up: []string{`
				CREATE TABLE IF NOT EXISTS submissions (
					id           VARCHAR(255) PRIMARY KEY,
					project_name VARCHAR(255) NOT NULL,
					payload      TEXT NOT NULL,
					checksum     VARCHAR(64) NOT NULL,
					created_at   DATETIME,
					FOREIGN KEY (project_name) REFERENCES definitions (project_name)
				);
			`,
				`CREATE INDEX IF NOT EXISTS idx_submissions_project_name ON submissions (project_name);`,
			},
			Down: []string{`DROP TABLE submissions;`},
		},
	},
}

// Migrate applies any pending schema migrations and returns how many ran.
func Migrate(db *sql.DB) (int, error) {
	return migrate.Exec(db, "sqlite3", migrationSource, migrate.Up)
}
