// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - StoreType: memory, bolt, sqlite or postgres (default: sqlite)
  - StorePath: file path for bolt and sqlite stores
    (default: straw-poll.db, or straw-poll.bolt for bolt)
  - DatabaseURL: PostgreSQL connection string (required for postgres)

# CLI Flags

	-p      Server port
	-store  Store type
	-path   Store file path
	-d      Database URL
	-c      YAML config file

# Environment Variables

Flags fall back to environment variables:

	PORT         → -p
	STORE_TYPE   → -store
	STORE_PATH   → -path
	DATABASE_URL → -d
	CONFIG_FILE  → -c

# Config File

A YAML file fills any field still unset after flags and env:

	port: 3318
	store: sqlite
	path: straw-poll.db
	database_url: postgres://...

Precedence is flags, then environment, then file, then defaults.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided when the store type is postgres
  - StoreType must be one of memory, bolt, sqlite, postgres

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	st, err := store.OpenSQLite(cfg.StorePath)
	// ...
	mux := router.NewRouter(reg)
*/
package cliparse
