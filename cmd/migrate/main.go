// Package main applies the database schema migrations.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/roamdine/platform/internal/platform/migrations"
)

func main() {
	dsn := flag.String("dsn", os.Getenv("DATABASE_DSN"), "postgres connection string")
	dir := flag.String("dir", "", "migrations directory (default: embedded migrations)")
	down := flag.Bool("down", false, "roll back one migration instead of applying all")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("database dsn is required (flag -dsn or DATABASE_DSN)")
	}

	m, err := open(*dir, *dsn)
	if err != nil {
		log.Fatalf("open migrations: %v", err)
	}
	defer m.Close()

	if *down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("schema already up to date")
		return
	}
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("migrations applied")
}

func open(dir, dsn string) (*migrate.Migrate, error) {
	if dir != "" {
		return migrate.New("file://"+dir, dsn)
	}
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", src, dsn)
}
