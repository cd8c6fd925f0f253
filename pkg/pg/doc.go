// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool with
// startup retries, goose schema migrations, and SQLSTATE classification
// helpers used by the stores.
//
// Typical startup sequence:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil { ... }
//
// Configuration comes from environment variables via the field tags on
// [Config]; see the struct for variable names and defaults.
package pg
