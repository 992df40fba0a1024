package analyzer

import (
	"regexp"
	"strings"

	"github.com/genomatch/genomatch/internal/models"
)

// Placeholder values some reference exports use for an absent allele.
var missingAlleleSentinels = map[string]bool{
	"":     true,
	"NAN":  true,
	"NA":   true,
	"-":    true,
	".":    true,
	"NONE": true,
}

// First "<base>" after a '>' in a variant name, e.g. the G in "c.123A>G".
var nameAllelePattern = regexp.MustCompile(`>([ACGT])`)

// ResolveRiskAllele resolves the risk allele for a reference variant. It
// prefers the alternate allele column; when that holds a missing-value
// placeholder it scans the free-text variant name for an "A>G"-style change
// and takes the second base. Returns "" when neither source yields a value.
//
// The name scan is a best-effort heuristic over unstructured text, kept
// isolated here so it can be swapped without touching classification.
func ResolveRiskAllele(v models.ReferenceVariant) string {
	allele := strings.ToUpper(strings.TrimSpace(v.AlternateAllele))
	if !missingAlleleSentinels[allele] {
		return allele
	}
	if m := nameAllelePattern.FindStringSubmatch(strings.ToUpper(v.Name)); m != nil {
		return m[1]
	}
	return ""
}
