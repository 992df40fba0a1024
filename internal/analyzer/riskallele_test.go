package analyzer

import (
	"testing"

	"github.com/genomatch/genomatch/internal/models"
)

func TestResolveRiskAlleleFromColumn(t *testing.T) {
	v := models.ReferenceVariant{AlternateAllele: " t ", Name: "c.123A>G"}
	if got := ResolveRiskAllele(v); got != "T" {
		t.Fatalf("risk allele = %q, want T", got)
	}
}

func TestResolveRiskAlleleFallsBackToName(t *testing.T) {
	tests := []struct {
		alt  string
		name string
		want string
	}{
		{"NA", "c.123A>G", "G"},
		{"nan", "NM_000410.4(HFE):c.845G>A (p.Cys282Tyr)", "A"},
		{"-", "c.665C>T", "T"},
		{".", "c.1096G>A", "A"},
		{"NONE", "c.35delG", ""},
		{"", "c.123A>G", "G"},
	}
	for _, tt := range tests {
		v := models.ReferenceVariant{AlternateAllele: tt.alt, Name: tt.name}
		if got := ResolveRiskAllele(v); got != tt.want {
			t.Errorf("ResolveRiskAllele(alt=%q, name=%q) = %q, want %q", tt.alt, tt.name, got, tt.want)
		}
	}
}

func TestResolveRiskAlleleTakesFirstChangeInName(t *testing.T) {
	v := models.ReferenceVariant{AlternateAllele: "NA", Name: "c.123A>G;c.456C>T"}
	if got := ResolveRiskAllele(v); got != "G" {
		t.Fatalf("risk allele = %q, want first match G", got)
	}
}

func TestDetectAmbiguityByAllelePair(t *testing.T) {
	tests := []struct {
		ref, risk string
		want      bool
	}{
		{"A", "T", true},
		{"T", "A", true},
		{"C", "G", true},
		{"G", "C", true},
		{"A", "G", false},
		{"A", "A", false},
		{"", "T", false}, // absent reference allele never triggers the pair rule
	}
	for _, tt := range tests {
		v := models.ReferenceVariant{ReferenceAllele: tt.ref, Name: "plain description"}
		if got := DetectAmbiguity(v, tt.risk); got != tt.want {
			t.Errorf("DetectAmbiguity(ref=%q, risk=%q) = %v, want %v", tt.ref, tt.risk, got, tt.want)
		}
	}
}

func TestDetectAmbiguityByName(t *testing.T) {
	v := models.ReferenceVariant{ReferenceAllele: "A", Name: "NM_000000.1:c.123A>T"}
	if !DetectAmbiguity(v, "G") {
		t.Fatalf("expected name pattern after digit to flag ambiguity")
	}
	// The change must directly follow a position digit.
	v = models.ReferenceVariant{ReferenceAllele: "A", Name: "promoter A>T variant"}
	if DetectAmbiguity(v, "G") {
		t.Fatalf("pattern without preceding digit must not flag ambiguity")
	}
}
