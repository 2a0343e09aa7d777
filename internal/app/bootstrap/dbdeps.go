// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	Pool *pgxpool.Pool
}
