package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"

	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Info("seeded", zap.String("seeder", s.Name()))
		}
	}
	return nil
}
