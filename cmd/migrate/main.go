package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Applies the SQL files under the migrations directory in lexical order.
// Applied filenames are tracked in schema_migrations so re-runs are safe.
func main() {
	var dirFlag string
	flag.StringVar(&dirFlag, "dir", "migrations", "directory containing .sql migration files")
	flag.Parse()

	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("open database: %w", err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		exitWithError(fmt.Errorf("ping database: %w", err))
	}

	if _, err := db.Exec(`create table if not exists schema_migrations (
		filename text primary key,
		applied_at timestamptz not null default now()
	)`); err != nil {
		exitWithError(fmt.Errorf("ensure migrations table: %w", err))
	}

	files, err := filepath.Glob(filepath.Join(dirFlag, "*.sql"))
	if err != nil {
		exitWithError(fmt.Errorf("list migrations: %w", err))
	}
	sort.Strings(files)

	applied := 0
	for _, file := range files {
		name := filepath.Base(file)

		var exists bool
		if err := db.QueryRow(`select exists(select 1 from schema_migrations where filename = $1)`, name).Scan(&exists); err != nil {
			exitWithError(fmt.Errorf("check migration %s: %w", name, err))
		}
		if exists {
			continue
		}

		script, err := os.ReadFile(file)
		if err != nil {
			exitWithError(fmt.Errorf("read migration %s: %w", name, err))
		}

		tx, err := db.Begin()
		if err != nil {
			exitWithError(fmt.Errorf("begin migration %s: %w", name, err))
		}
		if _, err := tx.Exec(string(script)); err != nil {
			_ = tx.Rollback()
			exitWithError(fmt.Errorf("apply migration %s: %w", name, err))
		}
		if _, err := tx.Exec(`insert into schema_migrations(filename) values ($1)`, name); err != nil {
			_ = tx.Rollback()
			exitWithError(fmt.Errorf("record migration %s: %w", name, err))
		}
		if err := tx.Commit(); err != nil {
			exitWithError(fmt.Errorf("commit migration %s: %w", name, err))
		}
		fmt.Println("applied", name)
		applied++
	}

	fmt.Printf("migrations up to date (%d applied this run)\n", applied)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "migrate:", err)
	os.Exit(1)
}
