package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	// Migration 2: indexes
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"CREATE INDEX IF NOT EXISTS idx_matches_locus ON match_results(chromosome, position)",
			"CREATE INDEX IF NOT EXISTS idx_matches_display ON match_results(run_id, sort_rank, gene_symbol)",
			"CREATE INDEX IF NOT EXISTS idx_matches_status ON match_results(status)",
			"CREATE INDEX IF NOT EXISTS idx_runs_created ON analysis_runs(created_at DESC)",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"DROP INDEX IF EXISTS idx_matches_locus",
			"DROP INDEX IF EXISTS idx_matches_display",
			"DROP INDEX IF EXISTS idx_matches_status",
			"DROP INDEX IF EXISTS idx_runs_created",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}

		return nil
	})
}
