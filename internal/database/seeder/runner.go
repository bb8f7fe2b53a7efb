package seeder

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/database"

	log "github.com/sirupsen/logrus"
)

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return database.ErrNilDB
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := CheckSchema(ctx, db, s.Requires()...); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		log.WithFields(log.Fields{"seeder": s.Name(), "took": time.Since(start)}).Info("seeder finished")
	}
	return nil
}
