// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"database/sql"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/bitlease/cmd/httpserver"
	"github.com/go-petr/bitlease/internal/middleware"
	"github.com/go-petr/bitlease/pkg/configpkg"
	"github.com/go-petr/bitlease/pkg/dbpkg"
)

// ConfigPath is the location of app.env relative to a package two levels deep.
const ConfigPath = "../../configs"

// LoadConfig loads the configuration from path or fails the test.
func LoadConfig(t *testing.T, path string) configpkg.Config {
	t.Helper()

	config, err := configpkg.Load(path)
	if err != nil {
		t.Fatalf(`configpkg.Load(%q) returned error: %v`, path, err)
	}

	return config
}

// SetupServer returns a Postgres backed test server that cleans up the
// database after the test.
func SetupServer(t *testing.T, path string) *httpserver.Server {
	t.Helper()

	config := LoadConfig(t, path)
	config.LedgerBackend = configpkg.BackendPostgres

	zerolog.SetGlobalLevel(zerolog.FatalLevel)

	logger := middleware.CreateLogger(config)

	db := SetupDB(t, config.DBDriver, config.DBSource)

	gin.SetMode(gin.ReleaseMode)

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		t.Fatalf(`httpserver.New(db, logger, config) returned error: %v`, err)
	}

	return server
}

// flushQuery empties every table and resets the seeded reserves to zero.
const flushQuery = `
TRUNCATE TABLE transfers, entries, borrowers, lenders, sessions, users RESTART IDENTITY;
UPDATE reserves SET pool = 0, interest = 0;
`

// Flush removes all rows written by tests without dropping the schema.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec(flushQuery); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB sets up connection with database for testing and then cleans it.
func SetupDB(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// SetupTX sets up a database transaction to be used in tests.
//
// Once the tests are done it will rollback the transaction.
func SetupTX(t *testing.T, driver, source string) *sql.Tx {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Fatalf("tx.Rollback() failed: %v", err)
		}

		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return tx
}
