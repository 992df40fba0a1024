// Package clinvar loads a ClinVar-style variant summary table into the
// canonical reference variant set.
package clinvar

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/genomatch/genomatch/internal/models"
)

// DefaultAssembly is the genome build retained when none is configured.
const DefaultAssembly = "GRCh37"

// Required columns of a variant summary table. Only these are parsed; the
// rest of the (wide) table is ignored to bound memory.
var requiredColumns = []string{
	"GeneSymbol",
	"Name",
	"ClinicalSignificance",
	"PhenotypeList",
	"Assembly",
	"Chromosome",
	"Start",
	"ReferenceAllele",
	"AlternateAllele",
}

// LoadError marks a reference file that could not be loaded at all: an
// unreadable stream or a header missing required columns. It aborts the load
// call but is not fatal to the process.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load reference: %s: %v", e.Reason, e.Err)
	}
	return "load reference: " + e.Reason
}

func (e *LoadError) Unwrap() error { return e.Err }

// Stats reports row counts for observability. Skipped rows never abort a
// load; they are only counted.
type Stats struct {
	TotalRows   int
	Kept        int
	FilteredOut int
	Skipped     int
}

// Load parses a tab-separated variant summary from r, keeping only rows on
// the given assembly whose clinical significance contains "pathogenic"
// (case-insensitive substring). Gzip input is detected by the 2-byte magic
// number, independent of any filename hint. Zero retained rows is valid.
func Load(r io.Reader, assembly string) ([]models.ReferenceVariant, Stats, error) {
	if assembly == "" {
		assembly = DefaultAssembly
	}

	var stats Stats

	plain, err := maybeGunzip(r)
	if err != nil {
		return nil, stats, &LoadError{Reason: "unreadable stream", Err: err}
	}

	sc := bufio.NewScanner(plain)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, stats, &LoadError{Reason: "unreadable stream", Err: err}
		}
		return nil, stats, &LoadError{Reason: "empty file, no header row"}
	}

	cols, err := indexColumns(sc.Text())
	if err != nil {
		return nil, stats, err
	}

	variants := make([]models.ReferenceVariant, 0, 1024)
	for sc.Scan() {
		stats.TotalRows++
		fields := strings.Split(sc.Text(), "\t")

		v, ok := parseRow(fields, cols)
		if !ok {
			stats.Skipped++
			continue
		}
		if !strings.Contains(v.Assembly, assembly) {
			stats.FilteredOut++
			continue
		}
		if !v.IsPathogenic() {
			stats.FilteredOut++
			continue
		}
		v.Chromosome = models.NormalizeChromosome(v.Chromosome)
		variants = append(variants, v)
		stats.Kept++
	}
	if err := sc.Err(); err != nil {
		return nil, stats, &LoadError{Reason: "unreadable stream", Err: err}
	}

	return variants, stats, nil
}

// maybeGunzip sniffs the gzip magic number (1F 8B) and transparently
// decompresses when present.
func maybeGunzip(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		// Too short to hold the magic number; let the parser see it as-is.
		return br, nil
	}
	if magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return gz, nil
	}
	return br, nil
}

// indexColumns maps required column names to their positions in the header.
func indexColumns(header string) (map[string]int, error) {
	names := strings.Split(header, "\t")
	// The first ClinVar column is "#AlleleID"; tolerate a leading marker.
	if len(names) > 0 {
		names[0] = strings.TrimPrefix(names[0], "#")
	}
	idx := make(map[string]int, len(names))
	for i, name := range names {
		idx[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, want := range requiredColumns {
		if _, ok := idx[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, &LoadError{Reason: "missing required columns: " + strings.Join(missing, ", ")}
	}
	return idx, nil
}

func parseRow(fields []string, cols map[string]int) (models.ReferenceVariant, bool) {
	get := func(name string) (string, bool) {
		i := cols[name]
		if i >= len(fields) {
			return "", false
		}
		return fields[i], true
	}

	start, ok := get("Start")
	if !ok {
		return models.ReferenceVariant{}, false
	}
	pos, err := strconv.ParseInt(strings.TrimSpace(start), 10, 64)
	if err != nil || pos < 0 {
		return models.ReferenceVariant{}, false
	}

	var v models.ReferenceVariant
	v.Position = pos
	for name, dst := range map[string]*string{
		"GeneSymbol":           &v.GeneSymbol,
		"Name":                 &v.Name,
		"ClinicalSignificance": &v.ClinicalSignificance,
		"PhenotypeList":        &v.PhenotypeList,
		"Assembly":             &v.Assembly,
		"Chromosome":           &v.Chromosome,
		"ReferenceAllele":      &v.ReferenceAllele,
		"AlternateAllele":      &v.AlternateAllele,
	} {
		val, ok := get(name)
		if !ok {
			return models.ReferenceVariant{}, false
		}
		*dst = val
	}
	return v, true
}
