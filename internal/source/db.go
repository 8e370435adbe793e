package source

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	// Source-system drivers: VisitMgt/MPI and the warehouse speak TDS,
	// OASIS speaks Oracle wire protocol.
	_ "github.com/microsoft/go-mssqldb"
	_ "github.com/sijms/go-ora/v2"
)

const (
	// DriverSQLServer is the driver name registered by go-mssqldb.
	DriverSQLServer = "sqlserver"
	// DriverOracle is the driver name registered by go-ora.
	DriverOracle = "oracle"
)

// Open opens a read connection to a source system and verifies it with a
// ping. The pool is kept small: one scheduled run is the only consumer.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", driver, err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s source: %w", driver, err)
	}
	return db, nil
}
