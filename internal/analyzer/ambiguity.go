package analyzer

import (
	"regexp"
	"strings"

	"github.com/genomatch/genomatch/internal/models"
)

// Self-complementary change directly after a position number in the variant
// name, e.g. "c.123A>T".
var palindromeNamePattern = regexp.MustCompile(`[0-9](A>T|T>A|C>G|G>C)`)

// DetectAmbiguity flags strand-flip (palindrome) risk: when the
// reference/risk pair is A/T or C/G, the genotyping strand orientation could
// invert the apparent allele. The flag is advisory, not exclusionary.
func DetectAmbiguity(v models.ReferenceVariant, riskAllele string) bool {
	if palindromeNamePattern.MatchString(strings.ToUpper(v.Name)) {
		return true
	}
	ref := strings.ToUpper(strings.TrimSpace(v.ReferenceAllele))
	return isPalindromePair(ref, riskAllele)
}

// isPalindromePair reports whether {a, b} is exactly {A, T} or {C, G}.
func isPalindromePair(a, b string) bool {
	switch {
	case a == "A" && b == "T", a == "T" && b == "A":
		return true
	case a == "C" && b == "G", a == "G" && b == "C":
		return true
	}
	return false
}
