package analyzer

import (
	"reflect"
	"testing"

	"github.com/genomatch/genomatch/internal/models"
)

func refVariant(gene, chrom string, pos int64, ref, alt string) models.ReferenceVariant {
	return models.ReferenceVariant{
		GeneSymbol:           gene,
		Name:                 "c.100" + ref + ">" + alt,
		ClinicalSignificance: "Pathogenic",
		PhenotypeList:        gene + "-related condition",
		Assembly:             "GRCh37",
		Chromosome:           chrom,
		Position:             pos,
		ReferenceAllele:      ref,
		AlternateAllele:      alt,
	}
}

func call(rsid, chrom string, pos int64, genotype string) models.GenotypeCall {
	return models.GenotypeCall{RsID: rsid, Chromosome: chrom, Position: pos, Genotype: genotype}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	refs := []models.ReferenceVariant{{
		GeneSymbol:           "X",
		ClinicalSignificance: "Pathogenic",
		Chromosome:           "1",
		Position:             100,
		AlternateAllele:      "T",
	}}
	calls := []models.GenotypeCall{call("rs1", "1", 100, "TT")}

	results := Analyze(calls, refs)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Status != models.StatusConfirmedRisk {
		t.Errorf("status = %s, want confirmed risk", r.Status)
	}
	if r.Zygosity != models.ZygosityHomozygous {
		t.Errorf("zygosity = %s, want homozygous", r.Zygosity)
	}
	// No reference allele and an empty name, so neither palindrome rule fires.
	if r.IsAmbiguous {
		t.Errorf("expected unambiguous without a reference allele")
	}
	if r.DerivedRiskAllele != "T" {
		t.Errorf("risk allele = %q, want T", r.DerivedRiskAllele)
	}
}

func TestAnalyzeEmptyInputs(t *testing.T) {
	refs := []models.ReferenceVariant{refVariant("X", "1", 100, "A", "T")}
	if got := Analyze(nil, refs); len(got) != 0 {
		t.Fatalf("empty genotype table must yield empty results, got %d", len(got))
	}
	calls := []models.GenotypeCall{call("rs1", "1", 100, "TT")}
	if got := Analyze(calls, nil); len(got) != 0 {
		t.Fatalf("empty reference table must yield empty results, got %d", len(got))
	}
}

func TestAnalyzeExcludesNoCalls(t *testing.T) {
	refs := []models.ReferenceVariant{
		refVariant("X", "1", 100, "A", "T"),
		refVariant("Y", "1", 200, "C", "G"),
		refVariant("Z", "1", 300, "G", "A"),
	}
	calls := []models.GenotypeCall{
		call("rs1", "1", 100, "--"),
		call("rs2", "1", 200, ""),
		call("rs3", "1", 300, "NAN"),
	}
	if got := Analyze(calls, refs); len(got) != 0 {
		t.Fatalf("no-call rows must not materialize, got %d results", len(got))
	}
}

func TestAnalyzePositionMismatch(t *testing.T) {
	refs := []models.ReferenceVariant{refVariant("X", "1", 100, "A", "T")}
	calls := []models.GenotypeCall{call("rs1", "1", 100, "CC")}

	results := Analyze(calls, refs)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Status != models.StatusPositionMismatch {
		t.Errorf("status = %s, want position mismatch", results[0].Status)
	}
	if results[0].Zygosity != models.ZygosityUnknown {
		t.Errorf("zygosity = %s, want unknown on mismatch", results[0].Zygosity)
	}
}

func TestAnalyzeFanOutAtSharedPosition(t *testing.T) {
	refs := []models.ReferenceVariant{
		refVariant("X", "1", 100, "A", "T"),
		refVariant("X", "1", 100, "A", "G"),
	}
	calls := []models.GenotypeCall{call("rs1", "1", 100, "TG")}

	results := Analyze(calls, refs)
	if len(results) != 2 {
		t.Fatalf("overlapping annotations must fan out, got %d results", len(results))
	}
}

func TestAnalyzeUnresolvableRiskAlleleIsMismatch(t *testing.T) {
	ref := refVariant("X", "1", 100, "A", "NA")
	ref.Name = "no change pattern here"
	calls := []models.GenotypeCall{call("rs1", "1", 100, "AA")}

	results := Analyze(calls, []models.ReferenceVariant{ref})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Status != models.StatusPositionMismatch {
		t.Errorf("undefined risk allele must classify as mismatch, got %s", results[0].Status)
	}
	if results[0].DerivedRiskAllele != "" {
		t.Errorf("risk allele = %q, want empty", results[0].DerivedRiskAllele)
	}
}

func TestAnalyzeOrdering(t *testing.T) {
	refs := []models.ReferenceVariant{
		refVariant("BRCA2", "13", 100, "C", "T"),
		refVariant("BRCA1", "17", 200, "C", "T"),
		refVariant("AAAS", "12", 300, "C", "T"),
	}
	calls := []models.GenotypeCall{
		call("rs1", "13", 100, "TT"),
		call("rs2", "17", 200, "CT"),
		call("rs3", "12", 300, "CC"), // mismatch, sorts last despite gene name
	}

	results := Analyze(calls, refs)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	wantGenes := []string{"BRCA1", "BRCA2", "AAAS"}
	for i, want := range wantGenes {
		if results[i].Ref.GeneSymbol != want {
			t.Errorf("result %d: gene = %s, want %s", i, results[i].Ref.GeneSymbol, want)
		}
	}
	if results[2].Status != models.StatusPositionMismatch {
		t.Errorf("last result must be the mismatch row")
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	refs := []models.ReferenceVariant{
		refVariant("HFE", "6", 26093141, "G", "A"),
		refVariant("MTHFR", "1", 11856378, "G", "A"),
		refVariant("SERPINA1", "14", 94844947, "C", "T"),
	}
	calls := []models.GenotypeCall{
		call("rs1800562", "6", 26093141, "AG"),
		call("rs1801133", "1", 11856378, "AA"),
		call("rs28929474", "14", 94844947, "CC"),
	}

	first := Analyze(calls, refs)
	second := Analyze(calls, refs)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs must yield identical ordered results")
	}
}

func TestClassifyZygosity(t *testing.T) {
	tests := []struct {
		genotype string
		risk     string
		want     models.Zygosity
	}{
		{"GG", "G", models.ZygosityHomozygous},
		{"AG", "G", models.ZygosityHeterozygous},
		{"GA", "G", models.ZygosityHeterozygous},
		{"G", "G", models.ZygosityHemizygousOrOther},
		{"GGG", "G", models.ZygosityHemizygousOrOther},
	}
	for _, tt := range tests {
		if got := classifyZygosity(tt.genotype, tt.risk); got != tt.want {
			t.Errorf("classifyZygosity(%q, %q) = %s, want %s", tt.genotype, tt.risk, got, tt.want)
		}
	}
}
