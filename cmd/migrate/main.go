package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"strings"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/database/seeder"
	"jobboard/internal/logger"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	seed := flag.Bool("seed", false, "run the demo seeders after migrating")
	dir := flag.String("dir", "", "migrations directory (defaults to MIGRATIONS_DIR, then the embedded set)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).Warn("failed to read .env")
	}

	cfg, err := config.LoadMigrate()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.Setup(cfg.Logger)

	if d := strings.TrimSpace(*dir); d != "" {
		cfg.Database.MigrationsDir = d
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := app.Migrate(ctx, db, cfg.Database.MigrationsDir); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if !*seed {
		return
	}
	r := seeder.Runner{Seeders: seeder.Defaults()}
	if err := r.Run(ctx, db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}
