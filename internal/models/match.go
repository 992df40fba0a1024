package models

// MatchResult is one classified join of a personal genotype call against a
// clinical reference variant. It is a pure derivation of its two inputs; the
// set is recomputed whenever either input table changes.
type MatchResult struct {
	Ref  ReferenceVariant `json:"reference"`
	Call GenotypeCall     `json:"call"`

	// DerivedRiskAllele is resolved from the alternate allele column or, when
	// that is a missing-value placeholder, from the variant name. Empty when
	// neither source yields a base.
	DerivedRiskAllele string      `json:"derived_risk_allele"`
	Status            MatchStatus `json:"match_status"`
	Zygosity          Zygosity    `json:"zygosity"`
	// IsAmbiguous flags strand-flip (palindrome) risk: the apparent allele
	// could be inverted by genotyping strand orientation. Advisory only.
	IsAmbiguous bool `json:"is_ambiguous"`
}

// SortRank is 0 for confirmed risks and 1 otherwise.
func (m *MatchResult) SortRank() int {
	return m.Status.SortRank()
}

// ExplanationContext is the exact slice of a match handed to the explanation
// collaborator. Coordinates and alleles deliberately stay out of it.
type ExplanationContext struct {
	GeneSymbol string
	Condition  string
	Genotype   string
	Zygosity   Zygosity
}

// Explanation returns the fields exposed to the explanation collaborator.
func (m *MatchResult) Explanation() ExplanationContext {
	return ExplanationContext{
		GeneSymbol: m.Ref.GeneSymbol,
		Condition:  m.Ref.Condition(),
		Genotype:   m.Call.Genotype,
		Zygosity:   m.Zygosity,
	}
}
