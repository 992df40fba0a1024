package models

import (
	"errors"
	"strings"
)

// ReferenceVariant is one retained row of the clinical variant database,
// already filtered to the target assembly and pathogenic significance.
type ReferenceVariant struct {
	GeneSymbol           string `json:"gene_symbol"`
	Name                 string `json:"name"`
	ClinicalSignificance string `json:"clinical_significance"`
	PhenotypeList        string `json:"phenotype_list"`
	Assembly             string `json:"assembly"`
	Chromosome           string `json:"chromosome"`
	Position             int64  `json:"position"`
	ReferenceAllele      string `json:"reference_allele"`
	AlternateAllele      string `json:"alternate_allele"`
}

// Validate checks that a loaded record satisfies the loader's invariants.
func (v *ReferenceVariant) Validate() error {
	if v.Chromosome == "" {
		return errors.New("chromosome is required")
	}
	if v.Position <= 0 {
		return errors.New("position must be positive")
	}
	if !v.IsPathogenic() {
		return errors.New("clinical significance must contain pathogenic")
	}
	return nil
}

// IsPathogenic reports whether the significance text contains "pathogenic".
// This is a substring test: "Likely pathogenic" and "Conflicting
// interpretations of pathogenicity" both qualify.
func (v *ReferenceVariant) IsPathogenic() bool {
	return strings.Contains(strings.ToLower(v.ClinicalSignificance), "pathogenic")
}

// HasConflictingSignificance reports whether submitters disagree on the
// variant's interpretation. Strict report mode hides these.
func (v *ReferenceVariant) HasConflictingSignificance() bool {
	return strings.Contains(strings.ToLower(v.ClinicalSignificance), "conflicting")
}

// Condition returns the display condition text, preferring the phenotype
// list over the raw variant name.
func (v *ReferenceVariant) Condition() string {
	if v.PhenotypeList != "" {
		return v.PhenotypeList
	}
	return v.Name
}

// NormalizeChromosome strips an optional "chr" prefix (any case) and
// surrounding whitespace from a chromosome label.
func NormalizeChromosome(chrom string) string {
	chrom = strings.TrimSpace(chrom)
	if len(chrom) >= 3 && strings.EqualFold(chrom[:3], "chr") {
		chrom = chrom[3:]
	}
	return strings.TrimSpace(chrom)
}
