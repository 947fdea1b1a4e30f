// Package iostore persists the trek catalog, crew preference data and
// calculation results across SQLite, MySQL and PostgreSQL backends.
package iostore

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/schema"
)

// StoreManagerImpl bundles the three store facets over one shared
// database handle.
type StoreManagerImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend

	catalog *CatalogStoreImpl
	prefs   *PreferenceStoreImpl
	results *ResultStoreImpl
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// NewStoreManager opens one connection for the configured backend,
// ensures the table schemas exist and returns the facet bundle.
func NewStoreManager(backend schema.DatabaseBackend, connStr string) (*StoreManagerImpl, error) {
	db, err := openDatabase(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := createTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &StoreManagerImpl{
		db:      db,
		backend: backend,
		catalog: &CatalogStoreImpl{db: db, backend: backend},
		prefs:   &PreferenceStoreImpl{db: db, backend: backend},
		results: &ResultStoreImpl{db: db, backend: backend},
	}, nil
}

// Catalog returns the catalog facet.
func (mgr *StoreManagerImpl) Catalog() contract.CatalogStore {
	return mgr.catalog
}

// Preferences returns the preference facet.
func (mgr *StoreManagerImpl) Preferences() contract.PreferenceStore {
	return mgr.prefs
}

// Results returns the result facet.
func (mgr *StoreManagerImpl) Results() contract.ResultStore {
	return mgr.results
}

// Close closes the shared connection once for all facets.
func (mgr *StoreManagerImpl) Close() error {
	if mgr.db != nil {
		return mgr.db.Close()
	}
	return nil
}

// Clear removes all stored data for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the tables.
func Clear(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropAllTables("mysql", connStr)

	case schema.PostgreSQLBackend:
		return dropAllTables("pgx", connStr)

	default:
		return fmt.Errorf("unsupported backend for clearing: %s", backend)
	}
}

// dropAllTables connects to the SQL database and drops every trekrank
// table that exists.
func dropAllTables(driverName, connStr string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	for _, table := range allTables {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
