// Package repositories persists and queries analysis runs.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/genomatch/genomatch/internal/models"
)

// SaveRun inserts a completed run and its match results in one transaction.
func SaveRun(ctx context.Context, db *bun.DB, run *models.AnalysisRun, results []models.MatchResult) error {
	if err := run.Validate(); err != nil {
		return err
	}

	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(run).Exec(ctx); err != nil {
			return err
		}

		if len(results) == 0 {
			return nil
		}

		matches := make([]*models.StoredMatch, 0, len(results))
		for _, r := range results {
			matches = append(matches, models.NewStoredMatch(run.ID, r))
		}
		_, err := tx.NewInsert().Model(&matches).Exec(ctx)
		return err
	})
}

// GetRunMatches returns a run's matches in display order: confirmed risks
// first, then by gene symbol, then insertion order.
func GetRunMatches(ctx context.Context, db *bun.DB, runID string) ([]*models.StoredMatch, error) {
	var matches []*models.StoredMatch
	err := db.NewSelect().
		Model(&matches).
		Join("JOIN analysis_runs AS ar ON ar.id = mr.run_id").
		Where("ar.run_id = ?", runID).
		OrderExpr("mr.sort_rank ASC, mr.gene_symbol ASC, mr.id ASC").
		Scan(ctx)

	return matches, err
}

// GetConfirmedMatches returns only a run's confirmed risks, in display order.
func GetConfirmedMatches(ctx context.Context, db *bun.DB, runID string) ([]*models.StoredMatch, error) {
	var matches []*models.StoredMatch
	err := db.NewSelect().
		Model(&matches).
		Join("JOIN analysis_runs AS ar ON ar.id = mr.run_id").
		Where("ar.run_id = ?", runID).
		Where("mr.status = ?", models.StatusConfirmedRisk).
		OrderExpr("mr.gene_symbol ASC, mr.id ASC").
		Scan(ctx)

	return matches, err
}

// ListRecentRuns returns the most recent runs, newest first.
func ListRecentRuns(ctx context.Context, db *bun.DB, limit int) ([]*models.AnalysisRun, error) {
	var runs []*models.AnalysisRun
	err := db.NewSelect().
		Model(&runs).
		OrderExpr("ar.created_at DESC, ar.id DESC").
		Limit(limit).
		Scan(ctx)

	return runs, err
}

// FindRunByDigests returns the latest completed run for the given input
// pair, or nil when none exists. Lets the caller skip a full re-analysis of
// unchanged uploads.
func FindRunByDigests(ctx context.Context, db *bun.DB, refDigest, genoDigest string) (*models.AnalysisRun, error) {
	run := new(models.AnalysisRun)
	err := db.NewSelect().
		Model(run).
		Where("reference_digest = ?", refDigest).
		Where("genotype_digest = ?", genoDigest).
		Where("status = ?", models.RunStatusCompleted).
		OrderExpr("ar.created_at DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// CompleteRun marks a run finished and records its counters.
func CompleteRun(ctx context.Context, db *bun.DB, run *models.AnalysisRun) error {
	now := time.Now()
	run.EndTime = &now
	run.Status = models.RunStatusCompleted

	_, err := db.NewUpdate().
		Model(run).
		Column("end_time", "status", "match_count", "confirmed_count").
		WherePK().
		Exec(ctx)
	return err
}
