// Package rawdna loads personal raw genotype exports (23andMe and
// AncestryDNA text formats) into the canonical genotype call set.
package rawdna

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/genomatch/genomatch/internal/models"
)

// FormatError marks a file whose column count matches no supported vendor
// layout. It aborts the load call but is not fatal to the process.
type FormatError struct {
	Columns int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("raw genotype file: unsupported column count %d (want 4 or 5)", e.Columns)
}

// Stats reports row counts for observability. Dropped rows (unparseable
// position, wrong field count) never abort a load; they are only counted.
type Stats struct {
	TotalRows int
	Kept      int
	Dropped   int
}

// Numeric sex/mitochondrial chromosome codes used by some vendors.
var chromRemap = map[string]string{
	"23": "X",
	"24": "Y",
	"25": "MT",
	"M":  "MT",
}

// Load parses a whitespace-delimited, headerless genotype table from r.
// Lines starting with '#' are comments. Four columns are read as
// rsid/chrom/pos/genotype (23andMe); five as rsid/chrom/pos/allele1/allele2
// (AncestryDNA), with the genotype being the two alleles concatenated. A
// five-column file may omit the second allele on a line; the genotype is then
// the first allele alone. The column count is fixed by the first data line;
// any other count there is a FormatError.
func Load(r io.Reader) ([]models.GenotypeCall, Stats, error) {
	var stats Stats

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	calls := make([]models.GenotypeCall, 0, 1024)
	columns := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		if columns == 0 {
			if len(fields) != 4 && len(fields) != 5 {
				return nil, stats, &FormatError{Columns: len(fields)}
			}
			columns = len(fields)
		}

		stats.TotalRows++
		// AncestryDNA rows can omit the second allele; read it as empty.
		if len(fields) != columns && !(columns == 5 && len(fields) == 4) {
			stats.Dropped++
			continue
		}

		pos, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil || pos < 0 {
			stats.Dropped++
			continue
		}

		genotype := fields[3]
		if len(fields) == 5 {
			genotype = fields[3] + fields[4]
		}

		chrom := models.NormalizeChromosome(fields[1])
		if mapped, ok := chromRemap[chrom]; ok {
			chrom = mapped
		}

		calls = append(calls, models.GenotypeCall{
			RsID:       fields[0],
			Chromosome: chrom,
			Position:   pos,
			Genotype:   strings.ToUpper(strings.TrimSpace(genotype)),
		})
		stats.Kept++
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("read genotype file: %w", err)
	}

	return calls, stats, nil
}
