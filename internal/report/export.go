package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/genomatch/genomatch/internal/models"
)

// Export header, matching the on-screen column names.
var exportHeader = []string{"Gene", "Condition", "Zygosity", "ClinVar Status", "Risk Variant", "Your DNA"}

// WriteDelimited writes the view as delimited text with a header row.
// comma is ',' for CSV or '\t' for TSV.
func WriteDelimited(w io.Writer, view View, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range view.Results {
		record := []string{
			r.Ref.GeneSymbol,
			r.Ref.Condition(),
			r.Zygosity.Label(),
			r.Ref.ClinicalSignificance,
			r.DerivedRiskAllele,
			r.Call.Genotype,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}

// ExplanationContexts extracts the fields handed to the explanation
// collaborator, capped at limit rows (0 means no cap).
func ExplanationContexts(view View, limit int) []models.ExplanationContext {
	n := len(view.Results)
	if limit > 0 && n > limit {
		n = limit
	}
	contexts := make([]models.ExplanationContext, 0, n)
	for _, r := range view.Results[:n] {
		contexts = append(contexts, r.Explanation())
	}
	return contexts
}
