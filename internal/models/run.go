package models

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// Run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// AnalysisRun records one end-to-end analysis: which inputs were processed
// (by content digest), how many rows survived cleaning, and what came out.
type AnalysisRun struct {
	bun.BaseModel `bun:"table:analysis_runs,alias:ar"`

	ID              int64      `bun:"id,pk,autoincrement" json:"id"`
	RunID           string     `bun:"run_id,unique,notnull" json:"run_id"`
	Assembly        string     `bun:"assembly,notnull" json:"assembly"`
	ReferenceDigest string     `bun:"reference_digest,notnull" json:"reference_digest"`
	GenotypeDigest  string     `bun:"genotype_digest,notnull" json:"genotype_digest"`
	ReferenceRows   int        `bun:"reference_rows,default:0" json:"reference_rows"`
	GenotypeRows    int        `bun:"genotype_rows,default:0" json:"genotype_rows"`
	SkippedRows     int        `bun:"skipped_rows,default:0" json:"skipped_rows"`
	MatchCount      int        `bun:"match_count,default:0" json:"match_count"`
	ConfirmedCount  int        `bun:"confirmed_count,default:0" json:"confirmed_count"`
	Status          string     `bun:"status,notnull" json:"status"`
	StartTime       time.Time  `bun:"start_time,notnull" json:"start_time"`
	EndTime         *time.Time `bun:"end_time" json:"end_time,omitempty"`
	CreatedAt       time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	Matches []*StoredMatch `bun:"rel:has-many,join:id=run_id" json:"matches,omitempty"`
}

// Validate checks that required run fields are present.
func (r *AnalysisRun) Validate() error {
	if r.RunID == "" {
		return errors.New("run ID is required")
	}
	if r.ReferenceDigest == "" || r.GenotypeDigest == "" {
		return errors.New("input digests are required")
	}
	if r.Status == "" {
		return errors.New("status is required")
	}
	return nil
}

// StoredMatch is a MatchResult persisted for a run, flattened for querying.
type StoredMatch struct {
	bun.BaseModel `bun:"table:match_results,alias:mr"`

	ID                   int64       `bun:"id,pk,autoincrement" json:"id"`
	RunID                int64       `bun:"run_id,notnull" json:"run_id"`
	GeneSymbol           string      `bun:"gene_symbol,notnull" json:"gene_symbol"`
	VariantName          string      `bun:"variant_name" json:"variant_name"`
	ClinicalSignificance string      `bun:"clinical_significance,notnull" json:"clinical_significance"`
	PhenotypeList        string      `bun:"phenotype_list" json:"phenotype_list"`
	Chromosome           string      `bun:"chromosome,notnull" json:"chromosome"`
	Position             int64       `bun:"position,notnull" json:"position"`
	ReferenceAllele      string      `bun:"reference_allele" json:"reference_allele"`
	RiskAllele           string      `bun:"risk_allele" json:"risk_allele"`
	RsID                 string      `bun:"rsid" json:"rsid"`
	Genotype             string      `bun:"genotype,notnull" json:"genotype"`
	Status               MatchStatus `bun:"status,notnull" json:"status"`
	Zygosity             Zygosity    `bun:"zygosity,notnull" json:"zygosity"`
	IsAmbiguous          bool        `bun:"is_ambiguous,default:false" json:"is_ambiguous"`
	SortRank             int         `bun:"sort_rank,notnull" json:"sort_rank"`
	CreatedAt            time.Time   `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	Run *AnalysisRun `bun:"rel:belongs-to,join:run_id=id" json:"-"`
}

// NewStoredMatch flattens an in-memory MatchResult for persistence.
func NewStoredMatch(runID int64, m MatchResult) *StoredMatch {
	return &StoredMatch{
		RunID:                runID,
		GeneSymbol:           m.Ref.GeneSymbol,
		VariantName:          m.Ref.Name,
		ClinicalSignificance: m.Ref.ClinicalSignificance,
		PhenotypeList:        m.Ref.PhenotypeList,
		Chromosome:           m.Ref.Chromosome,
		Position:             m.Ref.Position,
		ReferenceAllele:      m.Ref.ReferenceAllele,
		RiskAllele:           m.DerivedRiskAllele,
		RsID:                 m.Call.RsID,
		Genotype:             m.Call.Genotype,
		Status:               m.Status,
		Zygosity:             m.Zygosity,
		IsAmbiguous:          m.IsAmbiguous,
		SortRank:             m.SortRank(),
	}
}
