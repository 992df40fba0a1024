package models

import "errors"

// GenotypeCall is one cleaned row of a personal raw genotype file.
type GenotypeCall struct {
	RsID       string `json:"rsid"`
	Chromosome string `json:"chromosome"`
	Position   int64  `json:"position"`
	// Genotype is 1-2 uppercase nucleotide characters, or a no-call
	// sentinel ("--", "", "NAN").
	Genotype string `json:"genotype"`
}

// IsNoCall reports whether the measurement at this position is absent or
// failed. No-call rows never produce a MatchResult.
func (g *GenotypeCall) IsNoCall() bool {
	switch g.Genotype {
	case "", "--", "NAN":
		return true
	}
	return false
}

// Validate checks that a loaded call satisfies the loader's invariants.
func (g *GenotypeCall) Validate() error {
	if g.Chromosome == "" {
		return errors.New("chromosome is required")
	}
	if g.Position < 0 {
		return errors.New("position must be non-negative")
	}
	return nil
}
