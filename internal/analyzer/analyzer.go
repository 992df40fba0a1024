// Package analyzer joins personal genotype calls against clinical reference
// variants and classifies each match. The whole pipeline is a pure function
// of its two input tables: no errors, no shared state, empty in means empty
// out.
package analyzer

import (
	"sort"
	"strings"

	"github.com/genomatch/genomatch/internal/models"
)

type locus struct {
	chrom string
	pos   int64
}

// Analyze joins calls against refs on (chromosome, position), resolves the
// risk allele per reference row, classifies status and zygosity, flags
// strand ambiguity, and orders the result: confirmed risks first, then by
// gene symbol, stable on join order.
//
// Several reference rows may annotate the same position; each joined row
// produces its own result. No-call genotypes are excluded entirely.
func Analyze(calls []models.GenotypeCall, refs []models.ReferenceVariant) []models.MatchResult {
	if len(calls) == 0 || len(refs) == 0 {
		return nil
	}

	// Hash index over the reference side, probed by the (usually larger)
	// genotype side: O(n+m).
	index := make(map[locus][]int, len(refs))
	for i, r := range refs {
		k := locus{chrom: r.Chromosome, pos: r.Position}
		index[k] = append(index[k], i)
	}

	var results []models.MatchResult
	for _, call := range calls {
		if call.IsNoCall() {
			continue
		}
		for _, i := range index[locus{chrom: call.Chromosome, pos: call.Position}] {
			results = append(results, classify(call, refs[i]))
		}
	}

	sortResults(results)
	return results
}

func classify(call models.GenotypeCall, ref models.ReferenceVariant) models.MatchResult {
	risk := ResolveRiskAllele(ref)

	status := models.StatusPositionMismatch
	zygosity := models.ZygosityUnknown
	// An unresolved (empty) risk allele never counts as a substring hit.
	if risk != "" && strings.Contains(call.Genotype, risk) {
		status = models.StatusConfirmedRisk
		zygosity = classifyZygosity(call.Genotype, risk)
	}

	return models.MatchResult{
		Ref:               ref,
		Call:              call,
		DerivedRiskAllele: risk,
		Status:            status,
		Zygosity:          zygosity,
		IsAmbiguous:       DetectAmbiguity(ref, risk),
	}
}

// classifyZygosity assumes the risk allele was already confirmed present.
// Single-allele calls (mitochondrial, hemizygous X/Y) have no diploid
// zygosity.
func classifyZygosity(genotype, risk string) models.Zygosity {
	if len(genotype) != 2 {
		return models.ZygosityHemizygousOrOther
	}
	if string(genotype[0]) == risk && string(genotype[1]) == risk {
		return models.ZygosityHomozygous
	}
	return models.ZygosityHeterozygous
}

func sortResults(results []models.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].SortRank() != results[j].SortRank() {
			return results[i].SortRank() < results[j].SortRank()
		}
		return results[i].Ref.GeneSymbol < results[j].Ref.GeneSymbol
	})
}
